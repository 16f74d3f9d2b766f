package cli

import (
	"fmt"
	"io"
	"strings"

	"jrnl/internal/dates"
	"jrnl/internal/model"
	"jrnl/internal/theme"
	"jrnl/internal/tree"
	"jrnl/internal/view"
)

// headerFor styles a section heading.
func headerFor(s string) string {
	return theme.HeaderStyle.Render(s)
}

// renderLine formats one item for terminal output.
func renderLine(it model.Item) string {
	if it.IsNote() {
		return theme.NoteStyle.Render("- "+it.Title) +
			theme.MetaStyle.Render(fmt.Sprintf(" (id:%d)", it.ID))
	}

	checkbox := "[ ]"
	if it.Status == model.StatusDone {
		checkbox = "[x]"
	}

	var b strings.Builder
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

// printForest writes a forest depth-first, two spaces of indentation
// per level, starting at baseIndent levels.
func printForest(w io.Writer, f tree.Forest, baseIndent int) {
	f.Walk(func(it model.Item, depth int) {
		fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", baseIndent+depth), renderLine(it))
	})
}

// printSubtrees renders each root with its descendants beneath it.
func printSubtrees(w io.Writer, roots []model.Item, all []model.Item, baseIndent int) error {
	for _, root := range roots {
		sub, err := tree.Closure(all, root.ID)
		if err != nil {
			return err
		}
		f := tree.BuildForest(sub)
		// The closure may surface the root's note parent as absent;
		// pin the walk to the requested root only.
		f.Roots = []model.Item{root}
		printForest(w, f, baseIndent)
	}
	return nil
}

// printDayGroups renders day-grouped items with subtrees.
func printDayGroups(w io.Writer, groups []view.DayGroup, all []model.Item) error {
	for _, g := range groups {
		fmt.Fprintln(w, theme.HeaderStyle.Render(dates.Format(g.Date)))
		if err := printSubtrees(w, g.Items, all, 1); err != nil {
			return err
		}
	}
	return nil
}
