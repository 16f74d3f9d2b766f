package testutil

import (
	"testing"
	"time"

	"jrnl/internal/store"
)

// NewTestStore creates an in-memory SQLiteStore with all migrations
// applied. It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// NewTestStoreAt creates an in-memory store whose clock is pinned to
// the given date, so completion and recurrence arithmetic is
// deterministic.
func NewTestStoreAt(t *testing.T, today time.Time) *store.SQLiteStore {
	t.Helper()

	s := NewTestStore(t)
	s.SetClock(func() time.Time { return today })
	return s
}
