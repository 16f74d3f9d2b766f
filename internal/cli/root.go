// Package cli maps the jrnl commands onto the core: the item store,
// status engine, views, and codec. It owns argument parsing,
// confirmation prompts, and rendering; all semantics live below it.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"jrnl/internal/model"
	"jrnl/internal/store"
)

// App carries the opened store and configuration through the command
// tree; there is no package-level store handle.
type App struct {
	cfg   *model.AppConfig
	store *store.SQLiteStore
}

// Execute builds the command tree and runs it.
func Execute() {
	app := &App{}
	root := newRootCmd(app)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd(app *App) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "jrnl",
		Short: "A journal of tasks and notes that form a tree",
		Long: `jrnl keeps tasks and notes in a single forest: items nest under
each other, tasks block on their children, and recurring tasks
regenerate themselves (and their subtrees) when completed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				configPath = model.DefaultConfigPath()
			}
			cfg, err := model.LoadConfig(configPath)
			if err != nil {
				return err
			}

			if dir := filepath.Dir(cfg.DBPath); dir != "" {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("creating data directory %s: %w", dir, err)
				}
			}

			s, err := store.NewSQLiteStore(cfg.DBPath)
			if err != nil {
				return err
			}

			app.cfg = cfg
			app.store = s
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if app.store != nil {
				return app.store.Close()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Bare `jrnl` shows the journal, like the original habit
			// of opening the notebook.
			return app.runJournalView(cmd)
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/jrnl/config.yaml)")

	root.AddCommand(newTaskCmd(app), newNoteCmd(app))
	root.AddCommand(newStatusCmds(app)...)
	root.AddCommand(
		newDueCmd(app),
		newRecurCmd(app),
		newTitleCmd(app),
		newMvCmd(app),
		newRmCmd(app),
		newClearCmd(app),
		newLsCmd(app),
		newSearchCmd(app),
		newExportCmd(app),
		newImportCmd(app),
		newEditCmd(app),
		newBackupCmd(app),
		newUICmd(app),
	)

	return root
}
