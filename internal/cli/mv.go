package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newMvCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mv <id>[,<id>...] <parent-id|->",
		Short: "Move items under a new parent, or to the top level",
		Long: `Move items (with their subtrees) under a new parent. Pass "-" or 0
as the destination to move them to the top level.`,
		Example: `  jrnl mv 4,5 2
  jrnl mv 4 -`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args[:1])
			if err != nil {
				return err
			}

			var parentID *int64
			if dest := args[1]; dest != "-" {
				pid, err := strconv.ParseInt(dest, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid destination %q", dest)
				}
				if pid != 0 {
					parentID = &pid
				}
			}

			moved := 0
			for _, id := range ids {
				if err := app.store.Reparent(cmd.Context(), id, parentID); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "item %d: %v\n", id, err)
					continue
				}
				moved++
			}
			if moved > 0 {
				if parentID == nil {
					fmt.Fprintf(cmd.OutOrStdout(), "Moved %d item(s) to the top level\n", moved)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Moved %d item(s) under %d\n", moved, *parentID)
				}
			}
			return nil
		},
	}
	return cmd
}
