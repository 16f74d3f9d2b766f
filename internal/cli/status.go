package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"jrnl/internal/model"
	"jrnl/internal/store"
)

// newStatusCmds builds the four status-transition commands. Each
// processes its ids as an independent batch: failures are reported
// per id and do not abort the rest.
func newStatusCmds(app *App) []*cobra.Command {
	var doneNote string

	done := &cobra.Command{
		Use:     "done <id>[,<id>...]",
		Aliases: []string{"x"},
		Short:   "Mark tasks as done",
		Long: `Mark tasks as done. Completion is blocked while a task still has
open direct child tasks. Completing a recurring task creates its next
occurrence, subtree included.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runSetStatus(cmd, args, model.StatusDone, doneNote)
		},
	}
	done.Flags().StringVar(&doneNote, "note", "", "attach a closing note to each completed task")

	undone := &cobra.Command{
		Use:   "undone <id>[,<id>...]",
		Short: "Mark tasks as not done (back to todo)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runSetStatus(cmd, args, model.StatusTodo, "")
		},
	}

	doing := &cobra.Command{
		Use:   "doing <id>[,<id>...]",
		Short: "Mark tasks as in progress",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runSetStatus(cmd, args, model.StatusDoing, "")
		},
	}

	waiting := &cobra.Command{
		Use:   "waiting <id>[,<id>...]",
		Short: "Mark tasks as waiting",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runSetStatus(cmd, args, model.StatusWaiting, "")
		},
	}

	return []*cobra.Command{done, undone, doing, waiting}
}

func (app *App) runSetStatus(cmd *cobra.Command, args []string, target model.Status, noteText string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	results, err := app.store.SetStatus(cmd.Context(), ids, target, noteText)
	if err != nil {
		return err
	}

	updated := reportStatusResults(cmd, results)
	if updated > 0 {
		label := string(target)
		if target == model.StatusTodo {
			label = "undone"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %d task(s) to %s\n", updated, label)
	}
	return nil
}

// reportStatusResults prints per-id failures and recurrence notices,
// returning the number of successful transitions.
func reportStatusResults(cmd *cobra.Command, results []store.StatusResult) int {
	updated := 0
	for _, r := range results {
		switch {
		case errors.Is(r.Err, model.ErrHasIncompleteChildren):
			fmt.Fprintf(cmd.ErrOrStderr(), "task %d not completed: it still has open child tasks\n", r.ID)
		case errors.Is(r.Err, model.ErrNotFound):
			fmt.Fprintf(cmd.ErrOrStderr(), "item %d not found\n", r.ID)
		case errors.Is(r.Err, model.ErrIsNote):
			fmt.Fprintf(cmd.ErrOrStderr(), "item %d is a note and has no status\n", r.ID)
		case r.Err != nil:
			fmt.Fprintf(cmd.ErrOrStderr(), "item %d: %v\n", r.ID, r.Err)
		default:
			updated++
			if r.RecurredID != 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Created recurring task %d\n", r.RecurredID)
			}
		}
	}
	return updated
}
