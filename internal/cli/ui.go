package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"jrnl/internal/ui/browser"
)

func newUICmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Browse the journal interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := tea.NewProgram(browser.New(app.store, 80, 24), tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}
	return cmd
}
