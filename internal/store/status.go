package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"jrnl/internal/model"
	"jrnl/internal/recur"
	"jrnl/internal/tree"
)

// StatusResult reports the outcome of one id in a SetStatus batch.
type StatusResult struct {
	ID  int64
	Err error

	// RecurredID is the id of the regenerated task when completing a
	// recurring item, zero otherwise.
	RecurredID int64
}

// SetStatus transitions a batch of tasks to the target status. Each
// id is processed independently inside its own transaction, so one
// failure neither aborts the batch nor leaves a partially completed
// item behind.
//
// Transitioning to done is rejected while the task has open direct
// child tasks (note children and deeper descendants do not block).
// On success the completion date is set to today, the due date is
// defaulted to today if absent, noteText (when non-empty) is attached
// as a child note, and a recurring task regenerates itself and its
// subtree. Any other target clears the completion date.
func (s *SQLiteStore) SetStatus(ctx context.Context, ids []int64, target model.Status, noteText string) ([]StatusResult, error) {
	if !target.IsTask() {
		return nil, fmt.Errorf("invalid target status %q", target)
	}

	results := make([]StatusResult, 0, len(ids))
	for _, id := range ids {
		recurredID, err := s.setOneStatus(ctx, id, target, noteText)
		results = append(results, StatusResult{ID: id, Err: err, RecurredID: recurredID})
	}
	return results, nil
}

// setOneStatus applies a single transition atomically.
func (s *SQLiteStore) setOneStatus(ctx context.Context, id int64, target model.Status, noteText string) (int64, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning status transaction: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowxContext(ctx,
		"SELECT "+itemColumns+" FROM items WHERE id = ?", id)
	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("item %d: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("loading item %d: %w", id, err)
	}
	if it.IsNote() {
		return 0, fmt.Errorf("item %d: %w", id, model.ErrIsNote)
	}

	today := s.now()

	if target != model.StatusDone {
		// Leaving done (or moving between open states) always clears
		// the completion date.
		_, err = tx.ExecContext(ctx,
			"UPDATE items SET status = ?, completion_date = NULL WHERE id = ?",
			target, id)
		if err != nil {
			return 0, fmt.Errorf("updating status of item %d: %w", id, err)
		}
		if err := tx.Commit(); err != nil {
			return 0, fmt.Errorf("committing status change: %w", err)
		}
		return 0, nil
	}

	// Completion is blocked by open direct child tasks only.
	var open int
	err = tx.GetContext(ctx, &open, `
		SELECT COUNT(*) FROM items
		WHERE parent_id = ? AND status IN ('todo', 'doing', 'waiting')`,
		id)
	if err != nil {
		return 0, fmt.Errorf("checking children of item %d: %w", id, err)
	}
	if open > 0 {
		return 0, fmt.Errorf("item %d has %d open child task(s): %w", id, open, model.ErrHasIncompleteChildren)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE items
		SET status = ?, completion_date = ?, due_date = COALESCE(due_date, ?)
		WHERE id = ?`,
		model.StatusDone, dateArg(today), dateArg(today), id)
	if err != nil {
		return 0, fmt.Errorf("completing item %d: %w", id, err)
	}

	// Regenerate before attaching the closing note: the clone must not
	// inherit a note describing this completion.
	var recurredID int64
	if it.Recur != nil {
		recurredID, err = s.regenerate(ctx, tx, it, today)
		if err != nil {
			return 0, fmt.Errorf("regenerating recurring item %d: %w", id, err)
		}
	}

	if noteText != "" {
		_, err = txInsertItem(ctx, tx, noteText, model.StatusNote, today, nil, nil, &id)
		if err != nil {
			return 0, fmt.Errorf("attaching note to item %d: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing completion: %w", err)
	}
	return recurredID, nil
}

// regenerate creates the next occurrence of a completed recurring
// task: a fresh task with the same title and parent, due at
// advance(today, pattern), carrying the pattern forward, with the
// whole descendant subtree cloned beneath it. The clone holds no
// reference back to the original.
func (s *SQLiteStore) regenerate(ctx context.Context, tx *sqlx.Tx, orig model.Item, today time.Time) (int64, error) {
	nextDue, err := recur.AdvanceString(today, *orig.Recur)
	if err != nil {
		return 0, err
	}

	newID, err := txInsertItem(ctx, tx, orig.Title, model.StatusTodo, today, &nextDue, orig.Recur, orig.ParentID)
	if err != nil {
		return 0, fmt.Errorf("creating next occurrence: %w", err)
	}

	items, err := txAllItems(ctx, tx)
	if err != nil {
		return 0, err
	}
	forest := tree.BuildForest(items)

	if err := s.cloneChildren(ctx, tx, forest, orig.ID, newID, today); err != nil {
		return 0, err
	}
	return newID, nil
}

// cloneChildren recursively copies the children of oldParent under
// newParent. Cloned tasks are reset to todo but keep their due date
// and recurrence; notes are cloned as-is.
func (s *SQLiteStore) cloneChildren(ctx context.Context, tx *sqlx.Tx, forest tree.Forest, oldParent, newParent int64, today time.Time) error {
	for _, child := range forest.Children[oldParent] {
		status := model.StatusTodo
		if child.IsNote() {
			status = model.StatusNote
		}
		newChild, err := txInsertItem(ctx, tx, child.Title, status, today, child.DueDate, child.Recur, &newParent)
		if err != nil {
			return fmt.Errorf("cloning item %d: %w", child.ID, err)
		}
		if err := s.cloneChildren(ctx, tx, forest, child.ID, newChild, today); err != nil {
			return err
		}
	}
	return nil
}

// txInsertItem inserts an item inside a transaction and returns the
// new id.
func txInsertItem(ctx context.Context, tx *sqlx.Tx, title string, status model.Status, creation time.Time, due *time.Time, recurPat *string, parentID *int64) (int64, error) {
	var pid interface{}
	if parentID != nil {
		pid = *parentID
	}
	var rec interface{}
	if recurPat != nil {
		rec = *recurPat
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO items (title, status, creation_date, due_date, recur, parent_id)
		VALUES (?, ?, ?, ?, ?, ?)`,
		title, status, dateArg(creation), dateArgPtr(due), rec, pid,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// txAllItems loads the whole table inside a transaction.
func txAllItems(ctx context.Context, tx *sqlx.Tx) ([]model.Item, error) {
	rows, err := tx.QueryxContext(ctx,
		"SELECT "+itemColumns+" FROM items ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("querying items in transaction: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}
