package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"jrnl/internal/dates"
	"jrnl/internal/view"
)

func newDueCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "due [<id>[,<id>...] <date>]",
		Aliases: []string{"d"},
		Short:   "Show tasks by due bucket, or change due dates",
		Long: `Without arguments, show open root tasks grouped into due buckets.
With ids and a date (today, tomorrow, eow, eom, eoy, or YYYY-MM-DD),
update the due date of those tasks.`,
		Example: `  jrnl due
  jrnl due 1,2 eom`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return app.runDueView(cmd)
			}
			if len(args) < 2 {
				return fmt.Errorf("usage: due <id>[,<id>...] <date>")
			}

			ids, err := parseIDs(args[:len(args)-1])
			if err != nil {
				return err
			}
			due, err := dates.ParseDue(args[len(args)-1], dates.Today())
			if err != nil {
				return err
			}

			updated := 0
			for _, id := range ids {
				if err := app.store.UpdateDueDate(cmd.Context(), id, due); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "item %d: %v\n", id, err)
					continue
				}
				updated++
			}
			if updated > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Updated due date for %d task(s) to %s\n",
					updated, dates.Format(due))
			}
			return nil
		},
	}
	return cmd
}

// runDueView renders open root tasks bucketed by due date, each with
// its subtree.
func (app *App) runDueView(cmd *cobra.Command) error {
	ctx := cmd.Context()

	roots, err := app.store.RootTasks(ctx)
	if err != nil {
		return err
	}
	all, err := app.store.AllItems(ctx)
	if err != nil {
		return err
	}

	buckets := view.ClassifyByDueBucket(roots, dates.Today())
	out := cmd.OutOrStdout()
	for _, b := range view.BucketDisplayOrder {
		tasks := buckets[b]
		if len(tasks) == 0 {
			continue
		}
		fmt.Fprintln(out, headerFor(string(b)))
		if err := printSubtrees(out, tasks, all, 1); err != nil {
			return err
		}
	}
	return nil
}
