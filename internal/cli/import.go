package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"jrnl/internal/codec"
)

func newImportCmd(app *App) *cobra.Command {
	var under int64

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import items from an indented text file",
		Long: `Import items from an indented text file: one item per line, a
status prefix (. x / \ -) and a tab per nesting level. Blank lines and
lines starting with # are skipped. Top-level lines become roots unless
--under places them beneath an existing item.`,
		Example: `  jrnl import trip.txt
  jrnl import trip.txt --under 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var parentID *int64
			if under != 0 {
				parentID = &under
			}

			roots, err := codec.New(app.store).ImportFromFile(cmd.Context(), args[0], parentID)
			if err != nil {
				rollbackImport(cmd, app, roots)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d top-level item(s) from %s\n", len(roots), args[0])
			return nil
		},
	}

	cmd.Flags().Int64VarP(&under, "under", "u", 0, "attach imported roots under this item")
	return cmd
}

// rollbackImport removes the items a failed import created, keeping
// the journal as it was. Every partially imported item sits under one
// of the returned roots, so the cascade covers them all.
func rollbackImport(cmd *cobra.Command, app *App, roots []int64) {
	if len(roots) == 0 {
		return
	}
	if _, err := app.store.Delete(cmd.Context(), roots); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "could not remove partially imported items %v: %v\n", roots, err)
	}
}
