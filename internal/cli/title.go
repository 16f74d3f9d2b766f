package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newTitleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "title <id> <new title>",
		Short:   "Rename an item",
		Example: `  jrnl title 4 "Call the plumber back"`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid item id %q", args[0])
			}
			title := strings.TrimSpace(strings.Join(args[1:], " "))
			if title == "" {
				return fmt.Errorf("title must not be empty")
			}

			if err := app.store.UpdateTitle(cmd.Context(), id, title); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed item %d\n", id)
			return nil
		},
	}
	return cmd
}
