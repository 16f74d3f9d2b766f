package cli

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"jrnl/internal/codec"
)

func newEditCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an item's subtree in your editor",
		Long: `Export an item and its subtree as indented text, open it in your
editor, and replace the subtree with the edited version when the
editor exits. The editor comes from the config file, then $EDITOR,
then vi. Item ids change; statuses, titles, and nesting are kept as
written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid item id %q", args[0])
			}

			orig, err := app.store.Get(ctx, id)
			if err != nil {
				return err
			}

			c := codec.New(app.store)
			text, err := c.EncodeSubtree(ctx, id)
			if err != nil {
				return err
			}

			path := filepath.Join(os.TempDir(), fmt.Sprintf("jrnl-edit-%d.txt", id))
			if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
				return fmt.Errorf("writing edit buffer: %w", err)
			}
			defer os.Remove(path)

			if err := runEditor(app.cfg.Editor, path); err != nil {
				return err
			}

			edited, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading edit buffer: %w", err)
			}
			if string(edited) == text {
				fmt.Fprintln(cmd.OutOrStdout(), "No changes")
				return nil
			}

			roots, err := c.DecodeIndentedText(ctx, string(edited), orig.ParentID)
			if err != nil {
				rollbackImport(cmd, app, roots)
				return err
			}
			if _, err := app.store.Delete(ctx, []int64{id}); err != nil {
				return fmt.Errorf("imported the edited subtree but could not remove the old one (item %d): %w", id, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Replaced subtree of %d with %d top-level item(s)\n", id, len(roots))
			return nil
		},
	}
	return cmd
}

// runEditor opens path in the configured editor, falling back to
// $EDITOR and then vi.
func runEditor(configured, path string) error {
	editor := configured
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "vi"
	}

	ed := exec.Command(editor, path)
	ed.Stdin = os.Stdin
	ed.Stdout = os.Stdout
	ed.Stderr = os.Stderr
	if err := ed.Run(); err != nil {
		return fmt.Errorf("running editor %s: %w", editor, err)
	}
	return nil
}
