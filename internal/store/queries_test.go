package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"jrnl/internal/model"
	"jrnl/tests/testutil"
)

func TestRootTasksOneLevelUpRule(t *testing.T) {
	s := testutil.NewTestStoreAt(t, day)
	ctx := context.Background()

	topTask, _ := s.Create(ctx, "Top task", false, nil, nil)
	topNote, _ := s.Create(ctx, "Top note", true, nil, nil)
	underNote, _ := s.Create(ctx, "Task under a note", false, nil, &topNote)
	if _, err := s.Create(ctx, "Task under a task", false, nil, &topTask); err != nil {
		t.Fatalf("Create: %v", err)
	}

	roots, err := s.RootTasks(ctx)
	if err != nil {
		t.Fatalf("RootTasks: %v", err)
	}

	got := make(map[int64]bool, len(roots))
	for _, r := range roots {
		got[r.ID] = true
	}
	if !got[topTask] {
		t.Error("parentless task missing from roots")
	}
	if !got[underNote] {
		t.Error("task under a note missing from roots")
	}
	if got[topNote] {
		t.Error("note listed as a root task")
	}
	if len(roots) != 2 {
		t.Errorf("roots: got %d, want 2", len(roots))
	}
}

func TestRootTasksHideCompleted(t *testing.T) {
	s := testutil.NewTestStoreAt(t, day)
	ctx := context.Background()

	open, _ := s.Create(ctx, "Open", false, nil, nil)
	done, _ := s.Create(ctx, "Done", false, nil, nil)
	s.SetStatus(ctx, []int64{done}, model.StatusDone, "")

	roots, err := s.RootTasks(ctx)
	if err != nil {
		t.Fatalf("RootTasks: %v", err)
	}
	if len(roots) != 1 || roots[0].ID != open {
		t.Errorf("roots: got %+v, want only the open task", roots)
	}

	// Asking for done explicitly still works.
	roots, err = s.RootTasks(ctx, model.StatusDone)
	if err != nil {
		t.Fatalf("RootTasks(done): %v", err)
	}
	if len(roots) != 1 || roots[0].ID != done {
		t.Errorf("done roots: got %+v", roots)
	}
}

func TestRootTasksOrderedByDue(t *testing.T) {
	s := testutil.NewTestStoreAt(t, day)
	ctx := context.Background()

	late := day.AddDate(0, 0, 10)
	early := day.AddDate(0, 0, 2)
	a, _ := s.Create(ctx, "Late", false, &late, nil)
	b, _ := s.Create(ctx, "Early", false, &early, nil)

	roots, err := s.RootTasks(ctx)
	if err != nil {
		t.Fatalf("RootTasks: %v", err)
	}
	if len(roots) != 2 || roots[0].ID != b || roots[1].ID != a {
		t.Errorf("root order: got %+v, want early before late", roots)
	}
}

func TestSubtree(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	root, _ := s.Create(ctx, "root", false, nil, nil)
	child, _ := s.Create(ctx, "child", false, nil, &root)
	s.Create(ctx, "grandchild", true, nil, &child)
	s.Create(ctx, "unrelated", false, nil, nil)

	sub, err := s.Subtree(ctx, root)
	if err != nil {
		t.Fatalf("Subtree: %v", err)
	}
	if len(sub) != 3 {
		t.Errorf("subtree size: got %d, want 3", len(sub))
	}

	if _, err := s.Subtree(ctx, 99); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("Subtree missing: got %v, want ErrNotFound", err)
	}
}

func TestDoneTasksOrderedByCompletion(t *testing.T) {
	s := testutil.NewTestStoreAt(t, day)
	ctx := context.Background()

	// Complete one task today and another three days later; open
	// tasks never appear.
	first, _ := s.Create(ctx, "First", false, nil, nil)
	second, _ := s.Create(ctx, "Second", false, nil, nil)
	s.Create(ctx, "Still open", false, nil, nil)

	s.SetStatus(ctx, []int64{second}, model.StatusDone, "")

	later := day.AddDate(0, 0, 3)
	s.SetClock(func() time.Time { return later })
	s.SetStatus(ctx, []int64{first}, model.StatusDone, "")

	done, err := s.DoneTasks(ctx)
	if err != nil {
		t.Fatalf("DoneTasks: %v", err)
	}
	if len(done) != 2 || done[0].ID != second || done[1].ID != first {
		t.Errorf("done order: got %+v, want second then first", done)
	}
	if done[0].CompletionDate == nil || !done[0].CompletionDate.Equal(day) {
		t.Errorf("completion date: got %v, want %v", done[0].CompletionDate, day)
	}
}
