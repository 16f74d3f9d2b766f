package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"jrnl/internal/dates"
	"jrnl/internal/model"
	"jrnl/tests/testutil"
)

var day = time.Date(2025, time.September, 22, 0, 0, 0, 0, time.UTC)

func TestCreateTaskDefaults(t *testing.T) {
	s := testutil.NewTestStoreAt(t, day)
	ctx := context.Background()

	id, err := s.Create(ctx, "Write the report", false, nil, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	it, err := s.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if it.Status != model.StatusTodo {
		t.Errorf("status: got %q, want todo", it.Status)
	}
	if !it.CreationDate.Equal(day) {
		t.Errorf("creation date: got %v, want %v", it.CreationDate, day)
	}
	if it.DueDate == nil || !it.DueDate.Equal(day) {
		t.Errorf("due date: got %v, want creation date", it.DueDate)
	}
	if it.CompletionDate != nil {
		t.Errorf("completion date on a new task: got %v, want nil", it.CompletionDate)
	}
}

func TestCreateNoteHasNoDueDate(t *testing.T) {
	s := testutil.NewTestStoreAt(t, day)
	ctx := context.Background()

	id, err := s.Create(ctx, "A thought", true, nil, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	it, err := s.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if it.Status != model.StatusNote {
		t.Errorf("status: got %q, want note", it.Status)
	}
	if it.DueDate != nil {
		t.Errorf("due date on a note: got %v, want nil", it.DueDate)
	}
}

func TestCreateWithExplicitDue(t *testing.T) {
	s := testutil.NewTestStoreAt(t, day)
	ctx := context.Background()

	due := day.AddDate(0, 0, 14)
	id, err := s.Create(ctx, "Renew passport", false, &due, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	it, err := s.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if it.DueDate == nil || !it.DueDate.Equal(due) {
		t.Errorf("due date: got %v, want %v", it.DueDate, due)
	}
}

func TestCreateUnderMissingParent(t *testing.T) {
	s := testutil.NewTestStore(t)

	missing := int64(42)
	if _, err := s.Create(context.Background(), "orphan", false, nil, &missing); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Create under missing parent: got %v, want ErrNotFound", err)
	}
}

func TestCreateEmptyTitle(t *testing.T) {
	s := testutil.NewTestStore(t)

	if _, err := s.Create(context.Background(), "   ", false, nil, nil); err == nil {
		t.Fatal("Create with blank title: expected error")
	}
}

func TestGetNotFound(t *testing.T) {
	s := testutil.NewTestStore(t)

	if _, err := s.Get(context.Background(), 99); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Get missing: got %v, want ErrNotFound", err)
	}
}

func TestUpdateTitle(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	id, _ := s.Create(ctx, "Old title", false, nil, nil)
	if err := s.UpdateTitle(ctx, id, "New title"); err != nil {
		t.Fatalf("UpdateTitle: %v", err)
	}

	it, _ := s.Get(ctx, id)
	if it.Title != "New title" {
		t.Errorf("title: got %q, want %q", it.Title, "New title")
	}

	if err := s.UpdateTitle(ctx, 99, "x"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("UpdateTitle missing: got %v, want ErrNotFound", err)
	}
}

func TestUpdateDueDate(t *testing.T) {
	s := testutil.NewTestStoreAt(t, day)
	ctx := context.Background()

	id, _ := s.Create(ctx, "Task", false, nil, nil)
	due := day.AddDate(0, 1, 0)
	if err := s.UpdateDueDate(ctx, id, due); err != nil {
		t.Fatalf("UpdateDueDate: %v", err)
	}

	it, _ := s.Get(ctx, id)
	if it.DueDate == nil || !it.DueDate.Equal(due) {
		t.Errorf("due date: got %v, want %v", it.DueDate, due)
	}

	if err := s.UpdateDueDate(ctx, 99, due); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("UpdateDueDate missing: got %v, want ErrNotFound", err)
	}
}

func TestSetRecur(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	id, _ := s.Create(ctx, "Water the plants", false, nil, nil)

	if err := s.SetRecur(ctx, id, "1W"); err != nil {
		t.Fatalf("SetRecur: %v", err)
	}
	it, _ := s.Get(ctx, id)
	if it.Recur == nil || *it.Recur != "1w" {
		t.Errorf("recur: got %v, want 1w", it.Recur)
	}

	if err := s.SetRecur(ctx, id, "none"); err != nil {
		t.Fatalf("SetRecur none: %v", err)
	}
	it, _ = s.Get(ctx, id)
	if it.Recur != nil {
		t.Errorf("recur after clearing: got %q, want nil", *it.Recur)
	}

	if err := s.SetRecur(ctx, id, "99d"); !errors.Is(err, model.ErrInvalidPattern) {
		t.Errorf("SetRecur 99d: got %v, want ErrInvalidPattern", err)
	}
	if err := s.SetRecur(ctx, 42, "1d"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("SetRecur missing: got %v, want ErrNotFound", err)
	}
}

func TestReparent(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	parent, _ := s.Create(ctx, "Parent", false, nil, nil)
	child, _ := s.Create(ctx, "Child", false, nil, nil)

	if err := s.Reparent(ctx, child, &parent); err != nil {
		t.Fatalf("Reparent: %v", err)
	}
	it, _ := s.Get(ctx, child)
	if it.ParentID == nil || *it.ParentID != parent {
		t.Errorf("parent id: got %v, want %d", it.ParentID, parent)
	}

	if err := s.Reparent(ctx, child, nil); err != nil {
		t.Fatalf("Reparent to top level: %v", err)
	}
	it, _ = s.Get(ctx, child)
	if it.ParentID != nil {
		t.Errorf("parent id after detaching: got %d, want nil", *it.ParentID)
	}

	missing := int64(42)
	if err := s.Reparent(ctx, child, &missing); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("Reparent under missing: got %v, want ErrNotFound", err)
	}
}

func TestDeleteCascade(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	// root -> mid -> leaf, plus an unrelated sibling tree.
	root, _ := s.Create(ctx, "root", false, nil, nil)
	mid, _ := s.Create(ctx, "mid", false, nil, &root)
	if _, err := s.Create(ctx, "leaf", false, nil, &mid); err != nil {
		t.Fatalf("Create leaf: %v", err)
	}
	other, _ := s.Create(ctx, "other", false, nil, nil)
	otherChild, _ := s.Create(ctx, "other child", true, nil, &other)

	n, err := s.Delete(ctx, []int64{root})
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if n != 3 {
		t.Errorf("deleted count: got %d, want 3", n)
	}

	if _, err := s.Get(ctx, mid); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("descendant survived the cascade: %v", err)
	}
	if _, err := s.Get(ctx, otherChild); err != nil {
		t.Errorf("unrelated subtree was deleted: %v", err)
	}
}

func TestDeleteOverlappingRoots(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	root, _ := s.Create(ctx, "root", false, nil, nil)
	child, _ := s.Create(ctx, "child", false, nil, &root)

	// Passing both the root and a node inside its subtree must not
	// double-count or fail.
	n, err := s.Delete(ctx, []int64{root, child})
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted count: got %d, want 2", n)
	}
}

func TestClearAll(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	s.Create(ctx, "a", false, nil, nil)
	s.Create(ctx, "b", true, nil, nil)

	n, err := s.ClearAll(ctx)
	if err != nil {
		t.Fatalf("ClearAll: %v", err)
	}
	if n != 2 {
		t.Errorf("cleared count: got %d, want 2", n)
	}

	items, err := s.AllItems(ctx)
	if err != nil {
		t.Fatalf("AllItems: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("items after clear: got %d, want 0", len(items))
	}
}

func TestSearch(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	s.Create(ctx, "Buy groceries", false, nil, nil)
	s.Create(ctx, "Buy 100% juice", false, nil, nil)
	s.Create(ctx, "Call the plumber", false, nil, nil)

	tests := []struct {
		pattern string
		want    int
	}{
		{"buy", 2},        // case-insensitive substring
		{"b?y", 2},        // ? is a single character
		{"buy*juice", 1},  // * is a run
		{"100%", 1},       // literal % is not a wildcard
		{"nothing", 0},
	}

	for _, tc := range tests {
		got, err := s.Search(ctx, tc.pattern)
		if err != nil {
			t.Fatalf("Search(%q): %v", tc.pattern, err)
		}
		if len(got) != tc.want {
			t.Errorf("Search(%q): got %d matches, want %d", tc.pattern, len(got), tc.want)
		}
	}
}

func TestDatesSurviveRoundTrip(t *testing.T) {
	s := testutil.NewTestStoreAt(t, day)
	ctx := context.Background()

	due, err := dates.Parse("2025-12-31")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	id, _ := s.Create(ctx, "Year-end review", false, &due, nil)

	it, err := s.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got := dates.Format(*it.DueDate); got != "2025-12-31" {
		t.Errorf("due date round trip: got %s, want 2025-12-31", got)
	}
}
