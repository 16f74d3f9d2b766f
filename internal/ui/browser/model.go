// Package browser is the interactive due-bucket view: open root
// tasks grouped by bucket, with their subtrees indented beneath
// them. Mutations go through the status engine, so completion
// blocking and recurrence behave exactly as in the CLI.
package browser

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"jrnl/internal/dates"
	"jrnl/internal/keys"
	"jrnl/internal/model"
	"jrnl/internal/store"
	"jrnl/internal/theme"
	"jrnl/internal/tree"
	"jrnl/internal/view"
)

// rowsLoadedMsg is sent when the bucketed rows have been rebuilt from
// the store.
type rowsLoadedMsg struct {
	rows []list.Item
	err  error
}

// actionDoneMsg is sent after a toggle or delete completed.
type actionDoneMsg struct {
	status string
}

// Model is the browser view component.
type Model struct {
	list   list.Model
	store  *store.SQLiteStore
	keys   *keys.KeyMap
	status string
	width  int
	height int
}

// New creates a browser over the given store.
func New(s *store.SQLiteStore, width, height int) Model {
	km := keys.DefaultKeyMap()

	l := list.New([]list.Item{}, rowDelegate{}, width, height-2)
	l.Title = "jrnl"
	l.SetShowStatusBar(false)
	l.SetShowHelp(true)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle
	l.AdditionalShortHelpKeys = km.Bindings
	l.AdditionalFullHelpKeys = km.Bindings

	return Model{
		list:   l,
		store:  s,
		keys:   km,
		width:  width,
		height: height,
	}
}

// Init loads the initial rows.
func (m Model) Init() tea.Cmd {
	return m.loadRows()
}

// Update handles messages for the browser.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-2)
		return m, nil

	case rowsLoadedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		cmd := m.list.SetItems(msg.rows)
		return m, cmd

	case actionDoneMsg:
		m.status = msg.status
		return m, m.loadRows()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadRows()

		case key.Matches(msg, m.keys.ToggleDone):
			if r, ok := m.list.SelectedItem().(row); ok && !r.isHeading() && !r.item.IsNote() {
				return m, m.toggleDone(r.item)
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if r, ok := m.list.SelectedItem().(row); ok && !r.isHeading() {
				return m, m.deleteSubtree(r.item.ID)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the browser.
func (m Model) View() string {
	out := m.list.View()
	if m.status != "" {
		out += "\n" + theme.HelpStyle.Render(m.status)
	}
	return out
}

// loadRows rebuilds the bucketed row list from the store: open root
// tasks classified by due bucket, each followed by its subtree in
// pre-order.
func (m Model) loadRows() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		ctx := context.Background()

		roots, err := s.RootTasks(ctx)
		if err != nil {
			return rowsLoadedMsg{err: err}
		}
		all, err := s.AllItems(ctx)
		if err != nil {
			return rowsLoadedMsg{err: err}
		}

		buckets := view.ClassifyByDueBucket(roots, dates.Today())

		var rows []list.Item
		for _, b := range view.BucketDisplayOrder {
			tasks := buckets[b]
			if len(tasks) == 0 {
				continue
			}
			rows = append(rows, row{heading: b})
			for _, t := range tasks {
				sub, err := tree.Closure(all, t.ID)
				if err != nil {
					return rowsLoadedMsg{err: err}
				}
				forest := buildRootedForest(sub, t.ID)
				forest.Walk(func(it model.Item, depth int) {
					rows = append(rows, row{item: it, depth: depth})
				})
			}
		}
		return rowsLoadedMsg{rows: rows}
	}
}

// buildRootedForest builds a forest whose single root is rootID.
func buildRootedForest(items []model.Item, rootID int64) tree.Forest {
	f := tree.BuildForest(items)
	for i, r := range f.Roots {
		if r.ID == rootID {
			f.Roots = f.Roots[i : i+1]
			break
		}
	}
	return f
}

// toggleDone flips a task between done and todo through the status
// engine.
func (m Model) toggleDone(it model.Item) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		target := model.StatusDone
		if it.Status == model.StatusDone {
			target = model.StatusTodo
		}

		results, err := s.SetStatus(context.Background(), []int64{it.ID}, target, "")
		if err != nil {
			return actionDoneMsg{status: err.Error()}
		}
		r := results[0]
		switch {
		case errors.Is(r.Err, model.ErrHasIncompleteChildren):
			return actionDoneMsg{status: "blocked: finish its child tasks first"}
		case r.Err != nil:
			return actionDoneMsg{status: r.Err.Error()}
		case r.RecurredID != 0:
			return actionDoneMsg{status: "done; recurring task regenerated"}
		default:
			return actionDoneMsg{status: ""}
		}
	}
}

// deleteSubtree removes an item and its descendants.
func (m Model) deleteSubtree(id int64) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		n, err := s.Delete(context.Background(), []int64{id})
		if err != nil {
			return actionDoneMsg{status: err.Error()}
		}
		if n > 1 {
			return actionDoneMsg{status: "deleted subtree"}
		}
		return actionDoneMsg{status: "deleted"}
	}
}
