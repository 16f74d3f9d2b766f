package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"jrnl/internal/dates"
	"jrnl/internal/model"
)

// SQLiteStore owns the persisted item table and enforces its
// structural invariants. All collaborators receive an opened store
// handle; there is no package-level database state.
type SQLiteStore struct {
	db *sqlx.DB

	// now returns the reference date for "today"; tests override it
	// to pin completion and recurrence arithmetic.
	now func() time.Time
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Enable foreign keys.
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLiteStore{db: db, now: dates.Today}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SetClock overrides the store's notion of "today". Intended for
// tests.
func (s *SQLiteStore) SetClock(now func() time.Time) {
	s.now = now
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	// Check if schema_version table exists.
	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// Dates are persisted as YYYY-MM-DD text, the store's single
// canonical form; conversion happens only at this boundary.

func dateArg(t time.Time) string {
	return dates.Format(dates.Normalize(t))
}

func dateArgPtr(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return dateArg(*t)
}

func parseDateCol(s string) (time.Time, error) {
	t, err := dates.Parse(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("scanning date column: %w", err)
	}
	return t, nil
}

func parseDateColPtr(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := parseDateCol(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// scanItem scans an item row from any row-shaped result.
func scanItem(row interface{ Scan(dest ...interface{}) error }) (model.Item, error) {
	var (
		it             model.Item
		status         string
		creationDate   string
		dueDate        sql.NullString
		completionDate sql.NullString
		recurPat       sql.NullString
		parentID       sql.NullInt64
	)

	err := row.Scan(
		&it.ID, &it.Title, &status,
		&creationDate, &dueDate, &completionDate,
		&recurPat, &parentID,
	)
	if err != nil {
		return model.Item{}, fmt.Errorf("scanning item row: %w", err)
	}

	st, ok := model.ParseStatus(status)
	if !ok {
		return model.Item{}, fmt.Errorf("item %d has unknown status %q: %w", it.ID, status, model.ErrDataIntegrity)
	}
	it.Status = st

	if it.CreationDate, err = parseDateCol(creationDate); err != nil {
		return model.Item{}, err
	}
	if it.DueDate, err = parseDateColPtr(dueDate); err != nil {
		return model.Item{}, err
	}
	if it.CompletionDate, err = parseDateColPtr(completionDate); err != nil {
		return model.Item{}, err
	}
	if recurPat.Valid && recurPat.String != "" {
		pat := recurPat.String
		it.Recur = &pat
	}
	if parentID.Valid {
		pid := parentID.Int64
		it.ParentID = &pid
	}

	return it, nil
}

const itemColumns = "id, title, status, creation_date, due_date, completion_date, recur, parent_id"
