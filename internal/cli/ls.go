package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"jrnl/internal/model"
	"jrnl/internal/tree"
	"jrnl/internal/view"
)

func newLsCmd(app *App) *cobra.Command {
	var (
		byStatus bool
		byDue    bool
		doneView bool
	)

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List the journal, or switch to the status/due/done views",
		Long: `Without flags, list root items grouped by creation date. --status
groups open root tasks by status, --due by due bucket, and --done
shows completed tasks grouped by completion date.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case byStatus:
				return app.runStatusView(cmd)
			case byDue:
				return app.runDueView(cmd)
			case doneView:
				return app.runDoneView(cmd)
			default:
				return app.runJournalView(cmd)
			}
		},
	}

	cmd.Flags().BoolVar(&byStatus, "status", false, "group open root tasks by status")
	cmd.Flags().BoolVar(&byDue, "due", false, "group open root tasks by due bucket")
	cmd.Flags().BoolVar(&doneView, "done", false, "show completed tasks by completion date")
	cmd.MarkFlagsMutuallyExclusive("status", "due", "done")

	return cmd
}

// runJournalView lists root items grouped by creation date, oldest day
// first, each root with its subtree. Completed root tasks stay hidden.
func (app *App) runJournalView(cmd *cobra.Command) error {
	ctx := cmd.Context()

	all, err := app.store.AllItems(ctx)
	if err != nil {
		return err
	}

	f := tree.BuildForest(all)
	roots := make([]model.Item, 0, len(f.Roots))
	for _, r := range f.Roots {
		if r.Status == model.StatusDone {
			continue
		}
		roots = append(roots, r)
	}

	groups := view.GroupByCreationDate(roots)
	if len(groups) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Journal is empty")
		return nil
	}
	return printDayGroups(cmd.OutOrStdout(), groups, all)
}

// runStatusView groups open root tasks by status, each with its
// subtree.
func (app *App) runStatusView(cmd *cobra.Command) error {
	ctx := cmd.Context()

	roots, err := app.store.RootTasks(ctx)
	if err != nil {
		return err
	}
	all, err := app.store.AllItems(ctx)
	if err != nil {
		return err
	}

	groups := view.ClassifyByStatus(roots)
	out := cmd.OutOrStdout()
	for _, st := range view.StatusDisplayOrder {
		tasks := groups[st]
		if len(tasks) == 0 {
			continue
		}
		fmt.Fprintln(out, headerFor(string(st)))
		if err := printSubtrees(out, tasks, all, 1); err != nil {
			return err
		}
	}
	return nil
}

// runDoneView lists completed tasks grouped by completion date.
func (app *App) runDoneView(cmd *cobra.Command) error {
	ctx := cmd.Context()

	done, err := app.store.DoneTasks(ctx)
	if err != nil {
		return err
	}
	if len(done) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No completed tasks")
		return nil
	}
	all, err := app.store.AllItems(ctx)
	if err != nil {
		return err
	}

	groups := view.GroupByCompletionDate(done)
	return printDayGroups(cmd.OutOrStdout(), groups, all)
}
