package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"jrnl/internal/dates"
)

func newTaskCmd(app *App) *cobra.Command {
	var parentID int64

	cmd := &cobra.Command{
		Use:     "task <text>[,<text>...]",
		Aliases: []string{"t"},
		Short:   "Add one or more tasks",
		Long: `Add tasks. Multiple tasks are separated by commas. A title may end
with "@<due>" where <due> is today, tomorrow, eow, eom, eoy, or a
YYYY-MM-DD date; without it the task is due on its creation date.`,
		Example: `  jrnl task "Do homework @tomorrow, Finish report @2025-12-25"
  jrnl task --under 4 "Write the intro section"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var parent *int64
			if parentID != 0 {
				parent = &parentID
			}

			added := 0
			for _, title := range splitTitles(strings.Join(args, " ")) {
				title, due, err := splitDueSuffix(title)
				if err != nil {
					return err
				}
				if _, err := app.store.Create(ctx, title, false, due, parent); err != nil {
					return err
				}
				added++
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %d task(s)\n", added)
			return nil
		},
	}

	cmd.Flags().Int64VarP(&parentID, "under", "u", 0, "parent item id to nest the new task(s) under")
	return cmd
}

// splitDueSuffix peels an optional "@<due>" suffix off a title.
func splitDueSuffix(raw string) (string, *time.Time, error) {
	title, dueKw, found := strings.Cut(raw, "@")
	title = strings.TrimSpace(title)
	if !found {
		return title, nil, nil
	}

	due, err := dates.ParseDue(strings.TrimSpace(dueKw), dates.Today())
	if err != nil {
		return "", nil, err
	}
	return title, &due, nil
}
