package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"jrnl/internal/codec"
)

func newExportCmd(app *App) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Export an item and its subtree as indented text",
		Long: `Export an item and its descendants as indented text, one item per
line with a status prefix and a tab per nesting level. Writes to
stdout unless --output is given.`,
		Example: `  jrnl export 2
  jrnl export 2 --output trip.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid item id %q", args[0])
			}

			c := codec.New(app.store)
			if outPath != "" {
				if err := c.ExportToFile(cmd.Context(), id, outPath); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported item %d to %s\n", id, outPath)
				return nil
			}

			text, err := c.EncodeSubtree(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write to a file instead of stdout")
	return cmd
}
