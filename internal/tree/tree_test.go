package tree

import (
	"errors"
	"testing"

	"jrnl/internal/model"
)

func id64(v int64) *int64 { return &v }

func item(id int64, parent *int64) model.Item {
	return model.Item{ID: id, Title: "item", Status: model.StatusTodo, ParentID: parent}
}

func TestBuildForest(t *testing.T) {
	items := []model.Item{
		item(1, nil),
		item(2, id64(1)),
		item(3, id64(1)),
		item(4, id64(2)),
		item(5, id64(99)), // parent not in input, surfaces as a root
	}

	f := BuildForest(items)

	if got := len(f.Roots); got != 2 {
		t.Fatalf("roots: got %d, want 2", got)
	}
	if f.Roots[0].ID != 1 || f.Roots[1].ID != 5 {
		t.Errorf("root ids: got %d,%d, want 1,5", f.Roots[0].ID, f.Roots[1].ID)
	}
	if got := len(f.Children[1]); got != 2 {
		t.Errorf("children of 1: got %d, want 2", got)
	}
	if got := len(f.Children[2]); got != 1 {
		t.Errorf("children of 2: got %d, want 1", got)
	}
}

func TestWalkPreOrder(t *testing.T) {
	items := []model.Item{
		item(1, nil),
		item(2, id64(1)),
		item(3, id64(2)),
		item(4, id64(1)),
		item(5, nil),
	}

	var order []int64
	var depths []int
	BuildForest(items).Walk(func(it model.Item, depth int) {
		order = append(order, it.ID)
		depths = append(depths, depth)
	})

	wantOrder := []int64{1, 2, 3, 4, 5}
	wantDepth := []int{0, 1, 2, 1, 0}
	for i := range wantOrder {
		if order[i] != wantOrder[i] || depths[i] != wantDepth[i] {
			t.Fatalf("walk[%d]: got id=%d depth=%d, want id=%d depth=%d",
				i, order[i], depths[i], wantOrder[i], wantDepth[i])
		}
	}
}

func TestClosure(t *testing.T) {
	items := []model.Item{
		item(1, nil),
		item(2, id64(1)),
		item(3, id64(2)),
		item(4, nil),
		item(5, id64(4)),
	}

	got, err := Closure(items, 1)
	if err != nil {
		t.Fatalf("Closure: %v", err)
	}

	want := []int64{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("closure size: got %d, want %d", len(got), len(want))
	}
	for i, it := range got {
		if it.ID != want[i] {
			t.Errorf("closure[%d]: got %d, want %d", i, it.ID, want[i])
		}
	}
}

func TestClosureLeaf(t *testing.T) {
	items := []model.Item{item(1, nil), item(2, id64(1))}
	got, err := Closure(items, 2)
	if err != nil {
		t.Fatalf("Closure: %v", err)
	}
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("leaf closure: got %v, want just item 2", got)
	}
}

func TestClosureIDsOverlappingRoots(t *testing.T) {
	// Root 2 sits inside root 1's subtree. That is a legitimate call
	// shape for batch deletes and must merge, not error.
	edges := []Edge{
		{ID: 1, ParentID: nil},
		{ID: 2, ParentID: id64(1)},
		{ID: 3, ParentID: id64(2)},
	}

	got, err := ClosureIDs(edges, []int64{1, 2})
	if err != nil {
		t.Fatalf("ClosureIDs: %v", err)
	}
	for _, id := range []int64{1, 2, 3} {
		if !got[id] {
			t.Errorf("closure missing id %d", id)
		}
	}
}

func TestClosureIDsCycleBackToRoot(t *testing.T) {
	// A longer loop that re-enters the queried root itself: the
	// re-reached node being a queried root must not excuse the cycle.
	edges := []Edge{
		{ID: 1, ParentID: id64(3)},
		{ID: 2, ParentID: id64(1)},
		{ID: 3, ParentID: id64(2)},
	}

	_, err := ClosureIDs(edges, []int64{1})
	if !errors.Is(err, model.ErrDataIntegrity) {
		t.Fatalf("ClosureIDs on a loop through the root: got %v, want ErrDataIntegrity", err)
	}
}

func TestClosureIDsOverlappingRootsWithSubtrees(t *testing.T) {
	// Both queried roots carry children; the merge must include all of
	// them without tripping the cycle check.
	edges := []Edge{
		{ID: 1, ParentID: nil},
		{ID: 2, ParentID: id64(1)},
		{ID: 3, ParentID: id64(2)},
		{ID: 4, ParentID: id64(3)},
	}

	got, err := ClosureIDs(edges, []int64{1, 3})
	if err != nil {
		t.Fatalf("ClosureIDs: %v", err)
	}
	if len(got) != 4 {
		t.Errorf("closure size: got %d, want 4", len(got))
	}
}

func TestClosureIDsCycle(t *testing.T) {
	// 2 and 3 are each other's ancestors. The expansion must abort
	// instead of looping.
	edges := []Edge{
		{ID: 1, ParentID: nil},
		{ID: 2, ParentID: id64(3)},
		{ID: 3, ParentID: id64(2)},
	}

	_, err := ClosureIDs(edges, []int64{2})
	if !errors.Is(err, model.ErrDataIntegrity) {
		t.Fatalf("ClosureIDs on cycle: got %v, want ErrDataIntegrity", err)
	}
}
