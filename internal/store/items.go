package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"jrnl/internal/model"
	"jrnl/internal/recur"
	"jrnl/internal/tree"
)

// Create inserts a new item and returns its id. Notes are created
// with status note and no due date; tasks start as todo with dueDate
// defaulting to the creation date. A non-nil parentID must reference
// an existing item.
func (s *SQLiteStore) Create(ctx context.Context, title string, isNote bool, dueDate *time.Time, parentID *int64) (int64, error) {
	if strings.TrimSpace(title) == "" {
		return 0, fmt.Errorf("item title must not be empty")
	}
	if parentID != nil {
		if err := s.checkExists(ctx, *parentID); err != nil {
			return 0, fmt.Errorf("creating item under parent %d: %w", *parentID, err)
		}
	}

	today := s.now()
	status := model.StatusTodo
	var due interface{}
	if isNote {
		status = model.StatusNote
	} else {
		d := today
		if dueDate != nil {
			d = *dueDate
		}
		due = dateArg(d)
	}

	var pid interface{}
	if parentID != nil {
		pid = *parentID
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO items (title, status, creation_date, due_date, parent_id)
		VALUES (?, ?, ?, ?, ?)`,
		strings.TrimSpace(title), status, dateArg(today), due, pid,
	)
	if err != nil {
		return 0, fmt.Errorf("creating item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading new item id: %w", err)
	}
	return id, nil
}

// CreateWithStatus inserts an item in an explicit state; the import
// codec uses it to materialize decoded lines. Tasks default their due
// date to the creation date; imported done tasks get today's
// completion date so the completion invariant holds.
func (s *SQLiteStore) CreateWithStatus(ctx context.Context, title string, status model.Status, parentID *int64) (int64, error) {
	if strings.TrimSpace(title) == "" {
		return 0, fmt.Errorf("item title must not be empty")
	}
	if !status.Valid() {
		return 0, fmt.Errorf("invalid status %q", status)
	}
	if parentID != nil {
		if err := s.checkExists(ctx, *parentID); err != nil {
			return 0, fmt.Errorf("creating item under parent %d: %w", *parentID, err)
		}
	}

	today := s.now()
	var due, completion interface{}
	if status != model.StatusNote {
		due = dateArg(today)
	}
	if status == model.StatusDone {
		completion = dateArg(today)
	}

	var pid interface{}
	if parentID != nil {
		pid = *parentID
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO items (title, status, creation_date, due_date, completion_date, parent_id)
		VALUES (?, ?, ?, ?, ?, ?)`,
		strings.TrimSpace(title), status, dateArg(today), due, completion, pid,
	)
	if err != nil {
		return 0, fmt.Errorf("creating item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading new item id: %w", err)
	}
	return id, nil
}

// Get retrieves a single item by id.
func (s *SQLiteStore) Get(ctx context.Context, id int64) (*model.Item, error) {
	row := s.db.QueryRowxContext(ctx,
		"SELECT "+itemColumns+" FROM items WHERE id = ?", id)

	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("item %d: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting item %d: %w", id, err)
	}
	return &it, nil
}

// UpdateTitle replaces an item's title.
func (s *SQLiteStore) UpdateTitle(ctx context.Context, id int64, title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("item title must not be empty")
	}
	res, err := s.db.ExecContext(ctx,
		"UPDATE items SET title = ? WHERE id = ?", strings.TrimSpace(title), id)
	if err != nil {
		return fmt.Errorf("updating title of item %d: %w", id, err)
	}
	return s.requireRow(res, id)
}

// UpdateDueDate sets an item's due date.
func (s *SQLiteStore) UpdateDueDate(ctx context.Context, id int64, due time.Time) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE items SET due_date = ? WHERE id = ?", dateArg(due), id)
	if err != nil {
		return fmt.Errorf("updating due date of item %d: %w", id, err)
	}
	return s.requireRow(res, id)
}

// SetRecur sets or clears an item's recurrence pattern. The pattern
// must match <count><unit> with count in [1,31] and unit d, w, m, or
// y; the keyword "none" (case-insensitive) or an empty string clears
// the recurrence.
func (s *SQLiteStore) SetRecur(ctx context.Context, id int64, pattern string) error {
	var arg interface{}
	if pattern != "" && !recur.IsClear(pattern) {
		p, err := recur.Parse(pattern)
		if err != nil {
			return err
		}
		arg = p.String()
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE items SET recur = ? WHERE id = ?", arg, id)
	if err != nil {
		return fmt.Errorf("setting recurrence of item %d: %w", id, err)
	}
	return s.requireRow(res, id)
}

// Reparent moves an item under a new parent, or to the top level when
// newParentID is nil. The new parent must exist; the store does not
// check for cycles, callers must not create them.
func (s *SQLiteStore) Reparent(ctx context.Context, id int64, newParentID *int64) error {
	var pid interface{}
	if newParentID != nil {
		if err := s.checkExists(ctx, *newParentID); err != nil {
			return fmt.Errorf("reparenting item %d under %d: %w", id, *newParentID, err)
		}
		pid = *newParentID
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE items SET parent_id = ? WHERE id = ?", pid, id)
	if err != nil {
		return fmt.Errorf("reparenting item %d: %w", id, err)
	}
	return s.requireRow(res, id)
}

// Delete removes the given items and their entire descendant
// subtrees in a single transaction, returning the number of rows
// removed. Parent edges are materialized once and expanded
// breadth-first; cyclic data aborts the operation.
func (s *SQLiteStore) Delete(ctx context.Context, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning delete transaction: %w", err)
	}
	defer tx.Rollback()

	edges, err := loadEdges(ctx, tx)
	if err != nil {
		return 0, err
	}

	closure, err := tree.ClosureIDs(edges, ids)
	if err != nil {
		return 0, fmt.Errorf("expanding delete set: %w", err)
	}

	doomed := make([]interface{}, 0, len(closure))
	placeholders := make([]string, 0, len(closure))
	for id := range closure {
		doomed = append(doomed, id)
		placeholders = append(placeholders, "?")
	}

	res, err := tx.ExecContext(ctx,
		"DELETE FROM items WHERE id IN ("+strings.Join(placeholders, ", ")+")",
		doomed...,
	)
	if err != nil {
		return 0, fmt.Errorf("deleting items: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted items: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing delete: %w", err)
	}
	return int(removed), nil
}

// ClearAll unconditionally empties the store and returns the number
// of rows removed. Confirmation is the caller's responsibility.
func (s *SQLiteStore) ClearAll(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM items")
	if err != nil {
		return 0, fmt.Errorf("clearing all items: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting cleared items: %w", err)
	}
	return int(removed), nil
}

// Search finds items whose title contains the given pattern, with
// shell-style wildcards: * matches any run of characters and ?
// matches a single character. Results are ordered by creation date
// then id, ready for grouping by day.
func (s *SQLiteStore) Search(ctx context.Context, pattern string) ([]model.Item, error) {
	like := "%" + translateWildcards(pattern) + "%"

	rows, err := s.db.QueryxContext(ctx,
		"SELECT "+itemColumns+` FROM items
		 WHERE title LIKE ? ESCAPE '\'
		 ORDER BY creation_date ASC, id ASC`,
		like,
	)
	if err != nil {
		return nil, fmt.Errorf("searching items: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// translateWildcards rewrites a user pattern into a SQL LIKE pattern:
// literal %, _ and \ are escaped, then * becomes % and ? becomes _.
func translateWildcards(pattern string) string {
	var b strings.Builder
	for _, r := range pattern {
		switch r {
		case '\\', '%', '_':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '*':
			b.WriteByte('%')
		case '?':
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// checkExists verifies that an item id is present.
func (s *SQLiteStore) checkExists(ctx context.Context, id int64) error {
	var one int
	err := s.db.GetContext(ctx, &one, "SELECT 1 FROM items WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("checking item %d: %w", id, err)
	}
	return nil
}

// requireRow converts a zero-row update into ErrNotFound.
func (s *SQLiteStore) requireRow(res sql.Result, id int64) error {
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("item %d: %w", id, model.ErrNotFound)
	}
	return nil
}
