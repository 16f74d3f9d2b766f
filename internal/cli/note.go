package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newNoteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "note [<id>[,<id>...]] <text>",
		Aliases: []string{"n"},
		Short:   "Add a note, standalone or under existing items",
		Long: `Add a note. When the first argument is a list of item ids, the note
is attached as a child of each of them; otherwise it is standalone.`,
		Example: `  jrnl note "Remember to check references"
  jrnl note 2,3 "Applies to both of these"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var parents []int64
			if looksLikeIDs(args[0]) && len(args) > 1 {
				var err error
				parents, err = parseIDs(args[:1])
				if err != nil {
					return err
				}
				args = args[1:]
			}

			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return fmt.Errorf("note text must not be empty")
			}

			if len(parents) == 0 {
				if _, err := app.store.Create(ctx, text, true, nil, nil); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Added standalone note")
				return nil
			}

			for _, pid := range parents {
				pid := pid
				if _, err := app.store.Create(ctx, text, true, nil, &pid); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added note to %d item(s)\n", len(parents))
			return nil
		},
	}
	return cmd
}
