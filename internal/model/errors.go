package model

import "errors"

// Domain errors. Store and engine operations wrap these with context;
// callers test with errors.Is.
var (
	// ErrNotFound is returned when a referenced item id does not exist.
	ErrNotFound = errors.New("item not found")

	// ErrInvalidPattern is returned for a malformed recurrence spec.
	ErrInvalidPattern = errors.New("invalid recurrence pattern")

	// ErrHasIncompleteChildren blocks completing a task that still has
	// open direct child tasks.
	ErrHasIncompleteChildren = errors.New("task has incomplete children")

	// ErrIsNote is returned when a status transition is requested for
	// a note; notes never enter the task state machine.
	ErrIsNote = errors.New("item is a note, not a task")

	// ErrDataIntegrity indicates a cycle or orphaned parent reference
	// discovered during traversal. The affected operation is aborted;
	// no automatic repair is attempted.
	ErrDataIntegrity = errors.New("data integrity violation in item tree")
)
