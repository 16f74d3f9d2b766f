package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// AppConfig is the top-level application configuration.
type AppConfig struct {
	// DBPath is the location of the SQLite journal database.
	DBPath string `mapstructure:"db_path" yaml:"db_path"`

	// BackupDir is where `jrnl backup` places database snapshots.
	BackupDir string `mapstructure:"backup_dir" yaml:"backup_dir"`

	// BackupKeep is how many snapshots to retain; older ones are
	// pruned after each backup. Zero keeps everything.
	BackupKeep int `mapstructure:"backup_keep" yaml:"backup_keep"`

	// Editor overrides $EDITOR for import/export round-trips.
	Editor string `mapstructure:"editor" yaml:"editor"`
}

// DefaultConfigPath returns the default path for the configuration
// file, located at ~/.config/jrnl/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "jrnl", "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	dataDir := filepath.Join(home, ".local", "share", "jrnl")
	return &AppConfig{
		DBPath:     filepath.Join(dataDir, "jrnl.db"),
		BackupDir:  filepath.Join(dataDir, "backups"),
		BackupKeep: 10,
	}
}

// LoadConfig reads configuration from the given YAML file path using
// Viper. If the file does not exist, it returns a default
// configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	defaults := defaultAppConfig()
	v.SetDefault("db_path", defaults.DBPath)
	v.SetDefault("backup_dir", defaults.BackupDir)
	v.SetDefault("backup_keep", defaults.BackupKeep)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaults, nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("db_path", cfg.DBPath)
	v.Set("backup_dir", cfg.BackupDir)
	v.Set("backup_keep", cfg.BackupKeep)
	v.Set("editor", cfg.Editor)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
