package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRecurCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recur <id>[,<id>...] <Nd|Nw|Nm|Ny|none>",
		Short: "Make tasks recurring, or stop them recurring",
		Long: `Set a recurrence pattern on tasks: a count between 1 and 31 and a
unit of d (days), w (weeks), m (months), or y (years). Completing a
recurring task creates its next occurrence. "none" clears the
pattern.`,
		Example: `  jrnl recur 2,3 4w
  jrnl recur 2 none`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args[:1])
			if err != nil {
				return err
			}
			pattern := args[1]

			updated := 0
			for _, id := range ids {
				if err := app.store.SetRecur(cmd.Context(), id, pattern); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "item %d: %v\n", id, err)
					continue
				}
				updated++
			}
			if updated > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Set recur pattern %q for %d task(s)\n", pattern, updated)
			}
			return nil
		},
	}
	return cmd
}
