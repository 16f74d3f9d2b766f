package browser

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"jrnl/internal/dates"
	"jrnl/internal/model"
	"jrnl/internal/theme"
	"jrnl/internal/view"
)

// row is one line in the browser: either a bucket heading or an item
// at some depth in its subtree.
type row struct {
	heading view.Bucket
	item    model.Item
	depth   int
}

func (r row) isHeading() bool { return r.heading != "" }

// FilterValue returns the string used for fuzzy filtering.
func (r row) FilterValue() string {
	if r.isHeading() {
		return string(r.heading)
	}
	return r.item.Title
}

// rowDelegate implements list.ItemDelegate for browser rows.
type rowDelegate struct{}

// Height returns the number of lines each row takes.
func (d rowDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between rows.
func (d rowDelegate) Spacing() int { return 0 }

// Update handles per-row messages (unused).
func (d rowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

// Render draws a single row.
func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	r, ok := item.(row)
	if !ok {
		return
	}

	if r.isHeading() {
		fmt.Fprint(w, theme.HeaderStyle.Render(string(r.heading)))
		return
	}

	line := renderLine(r.item, r.depth)
	if index == m.Index() {
		fmt.Fprint(w, theme.SelectedItemStyle.Render(line))
		return
	}
	fmt.Fprint(w, theme.ListItemStyle.Render(line))
}

// renderLine formats one item with its checkbox, title, and metadata.
func renderLine(it model.Item, depth int) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", depth))

	if it.IsNote() {
		b.WriteString(theme.NoteStyle.Render("- " + it.Title))
		b.WriteString(theme.MetaStyle.Render(fmt.Sprintf(" (id:%d)", it.ID)))
		return b.String()
	}

	checkbox := "[ ]"
	if it.Status == model.StatusDone {
		checkbox = "[x]"
	}
	b.WriteString(theme.StatusStyle(it.Status).Render(checkbox + " " + it.Title))
	b.WriteString(theme.MetaStyle.Render(fmt.Sprintf(" (id:%d)", it.ID)))

	if it.Recur != nil {
		b.WriteString(theme.MetaStyle.Render(" (recur: " + *it.Recur + ")"))
	}

	if it.DueDate != nil && it.Status != model.StatusDone {
		due := dates.Normalize(*it.DueDate)
		today := dates.Today()
		label := " (due: " + dates.Format(due) + ")"
		switch {
		case due.Before(today):
			b.WriteString(theme.OverdueStyle.Render(label))
		case due.Equal(today):
			b.WriteString(theme.DueTodayStyle.Render(label))
		default:
			b.WriteString(theme.MetaStyle.Render(label))
		}
	}

	return b.String()
}
