package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"jrnl/internal/view"
)

func newSearchCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "search <pattern>",
		Aliases: []string{"s"},
		Short:   "Search item titles",
		Long: `Search item titles, case-insensitively. * matches any run of
characters and ? matches a single one; a bare word matches anywhere in
the title. Results are grouped by creation date.`,
		Example: `  jrnl search plumber
  jrnl search "report *draft?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pattern := strings.Join(args, " ")

			matches, err := app.store.Search(ctx, pattern)
			if err != nil {
				return err
			}
			if len(matches) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No matches")
				return nil
			}

			all, err := app.store.AllItems(ctx)
			if err != nil {
				return err
			}
			return printDayGroups(cmd.OutOrStdout(), view.GroupByCreationDate(matches), all)
		},
	}
	return cmd
}
