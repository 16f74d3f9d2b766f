package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"jrnl/internal/backup"
)

func newBackupCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Snapshot the database file",
		Long: `Copy the database file into the backup directory and prune the
oldest snapshots beyond the configured retention count.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Flush WAL contents into the main file before copying.
			if err := app.store.Close(); err != nil {
				return err
			}
			app.store = nil

			path, err := backup.Snapshot(app.cfg.DBPath, app.cfg.BackupDir)
			if err != nil {
				return err
			}
			if err := backup.Prune(app.cfg.BackupDir, app.cfg.BackupKeep); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backed up to %s\n", path)
			return nil
		},
	}
	return cmd
}
