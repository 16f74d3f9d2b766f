package model

import "time"

// Status is the closed set of item states. Notes are permanently
// StatusNote; tasks cycle among the other four values.
type Status string

const (
	StatusNote    Status = "note"
	StatusTodo    Status = "todo"
	StatusDoing   Status = "doing"
	StatusWaiting Status = "waiting"
	StatusDone    Status = "done"
)

// TaskStatuses lists the states a task may be in, in display order.
var TaskStatuses = []Status{StatusTodo, StatusDoing, StatusWaiting, StatusDone}

// Valid reports whether s is one of the five known states.
func (s Status) Valid() bool {
	switch s {
	case StatusNote, StatusTodo, StatusDoing, StatusWaiting, StatusDone:
		return true
	}
	return false
}

// IsTask reports whether s belongs to the task state machine.
func (s Status) IsTask() bool {
	return s.Valid() && s != StatusNote
}

// IsOpen reports whether s is an incomplete task state.
func (s Status) IsOpen() bool {
	return s == StatusTodo || s == StatusDoing || s == StatusWaiting
}

// ParseStatus converts a raw string into a Status, reporting whether
// the value is one of the known states.
func ParseStatus(raw string) (Status, bool) {
	s := Status(raw)
	return s, s.Valid()
}

// Kind distinguishes notes from tasks. It is derived from Status and
// never stored separately.
type Kind string

const (
	KindNote Kind = "note"
	KindTask Kind = "task"
)

// Item is the sole persisted entity: a node in the journal forest.
type Item struct {
	ID             int64      `db:"id"`
	Title          string     `db:"title"`
	Status         Status     `db:"status"`
	CreationDate   time.Time  `db:"creation_date"`
	DueDate        *time.Time `db:"due_date"`
	CompletionDate *time.Time `db:"completion_date"`
	Recur          *string    `db:"recur"`
	ParentID       *int64     `db:"parent_id"`
}

// Kind derives the item kind from its status.
func (it Item) Kind() Kind {
	if it.Status == StatusNote {
		return KindNote
	}
	return KindTask
}

// IsNote reports whether the item is a note.
func (it Item) IsNote() bool { return it.Status == StatusNote }

// RootUnder reports whether the item is a display root given its
// parent (nil when the item has no parent). A task nested under
// another task is a child for display purposes; a task under a note,
// or with no parent, is a root. The check is one level up only.
func (it Item) RootUnder(parent *Item) bool {
	if it.ParentID == nil || parent == nil {
		return true
	}
	return parent.IsNote()
}
