package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"jrnl/internal/model"
	"jrnl/internal/tree"
)

// AllItems returns every item, ordered by id ascending. Views and
// the codec load the table once and traverse the in-memory index
// instead of issuing a query per node.
func (s *SQLiteStore) AllItems(ctx context.Context) ([]model.Item, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT "+itemColumns+" FROM items ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("querying all items: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// Subtree returns rootID and all of its transitive descendants,
// ordered by id ascending.
func (s *SQLiteStore) Subtree(ctx context.Context, rootID int64) ([]model.Item, error) {
	if err := s.checkExists(ctx, rootID); err != nil {
		return nil, fmt.Errorf("subtree of item %d: %w", rootID, err)
	}

	items, err := s.AllItems(ctx)
	if err != nil {
		return nil, err
	}

	sub, err := tree.Closure(items, rootID)
	if err != nil {
		return nil, fmt.Errorf("subtree of item %d: %w", rootID, err)
	}
	return sub, nil
}

// Children returns the direct children of an item, in id order.
func (s *SQLiteStore) Children(ctx context.Context, parentID int64) ([]model.Item, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT "+itemColumns+" FROM items WHERE parent_id = ? ORDER BY id ASC",
		parentID)
	if err != nil {
		return nil, fmt.Errorf("querying children of item %d: %w", parentID, err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// RootTasks returns tasks eligible for top-level display: status in
// the given set, and either no parent or a parent that is a note.
// The parent check is one level up only. Results are ordered by due
// date then id.
func (s *SQLiteStore) RootTasks(ctx context.Context, statuses ...model.Status) ([]model.Item, error) {
	if len(statuses) == 0 {
		statuses = []model.Status{model.StatusTodo, model.StatusDoing, model.StatusWaiting}
	}

	placeholders := make([]string, len(statuses))
	args := make([]interface{}, len(statuses))
	for i, st := range statuses {
		placeholders[i] = "?"
		args[i] = string(st)
	}

	query := `
		SELECT ` + prefixColumns("i") + `
		FROM items i
		LEFT JOIN items p ON i.parent_id = p.id
		WHERE i.status IN (` + strings.Join(placeholders, ", ") + `)
		  AND (i.parent_id IS NULL OR p.status = 'note')
		ORDER BY i.due_date ASC, i.id ASC`

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying root tasks: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// DoneTasks returns completed tasks ordered by completion date then
// id, for the completed-tasks view.
func (s *SQLiteStore) DoneTasks(ctx context.Context) ([]model.Item, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT "+itemColumns+` FROM items
		 WHERE status = 'done' AND completion_date IS NOT NULL
		 ORDER BY completion_date ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying completed tasks: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// collectItems drains a result set into a slice.
func collectItems(rows *sqlx.Rows) ([]model.Item, error) {
	var items []model.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// loadEdges materializes the id/parent_id pairs of the whole table
// inside a transaction, for closure expansion.
func loadEdges(ctx context.Context, tx *sqlx.Tx) ([]tree.Edge, error) {
	rows, err := tx.QueryxContext(ctx, "SELECT id, parent_id FROM items")
	if err != nil {
		return nil, fmt.Errorf("loading parent edges: %w", err)
	}
	defer rows.Close()

	var edges []tree.Edge
	for rows.Next() {
		var (
			id  int64
			pid sql.NullInt64
		)
		if err := rows.Scan(&id, &pid); err != nil {
			return nil, fmt.Errorf("scanning parent edge: %w", err)
		}
		e := tree.Edge{ID: id}
		if pid.Valid {
			p := pid.Int64
			e.ParentID = &p
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}

// prefixColumns qualifies the item column list with a table alias.
func prefixColumns(alias string) string {
	cols := strings.Split(itemColumns, ", ")
	for i, c := range cols {
		cols[i] = alias + "." + c
	}
	return strings.Join(cols, ", ")
}
