// Package tree reconstructs the item forest from flat slices. The
// store materializes items once per logical operation; everything
// here works on that in-memory snapshot, so cascade deletes, views,
// and the codec all share one traversal.
package tree

import (
	"fmt"
	"sort"

	"jrnl/internal/model"
)

// Forest is a partition of a flat item list into display roots and a
// parent→children adjacency list. Input order is preserved within
// each children slice.
type Forest struct {
	Roots    []model.Item
	Children map[int64][]model.Item
}

// BuildForest partitions items into roots (no parent, or parent not
// present in the input) and children grouped by parent id.
func BuildForest(items []model.Item) Forest {
	present := make(map[int64]bool, len(items))
	for _, it := range items {
		present[it.ID] = true
	}

	f := Forest{Children: make(map[int64][]model.Item)}
	for _, it := range items {
		if it.ParentID == nil || *it.ParentID == 0 || !present[*it.ParentID] {
			f.Roots = append(f.Roots, it)
			continue
		}
		f.Children[*it.ParentID] = append(f.Children[*it.ParentID], it)
	}
	return f
}

// Walk visits the forest depth-first in pre-order, reporting each
// item's depth below its root.
func (f Forest) Walk(visit func(it model.Item, depth int)) {
	var rec func(it model.Item, depth int)
	rec = func(it model.Item, depth int) {
		visit(it, depth)
		for _, child := range f.Children[it.ID] {
			rec(child, depth+1)
		}
	}
	for _, root := range f.Roots {
		rec(root, 0)
	}
}

// Closure computes the descendant closure of rootID over items,
// inclusive of the root, ordered by id ascending. Each item is
// expanded at most once, so the walk terminates even on degenerate
// data; if an edge would revisit an already-expanded node the data
// is cyclic and the operation fails with ErrDataIntegrity rather
// than looping or silently truncating.
func Closure(items []model.Item, rootID int64) ([]model.Item, error) {
	ids, err := ClosureIDs(itemEdges(items), []int64{rootID})
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]model.Item, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	out := make([]model.Item, 0, len(ids))
	for id := range ids {
		if it, ok := byID[id]; ok {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Edge is a single parent→child link.
type Edge struct {
	ID       int64
	ParentID *int64
}

func itemEdges(items []model.Item) []Edge {
	edges := make([]Edge, len(items))
	for i, it := range items {
		edges[i] = Edge{ID: it.ID, ParentID: it.ParentID}
	}
	return edges
}

// ClosureIDs expands the given roots breadth-first over parent→child
// edges and returns the full set of reachable ids, roots included.
// Every item has a single parent, so no node can be reached twice
// through edges alone; re-reaching one means the parent chain forms a
// cycle, which aborts with ErrDataIntegrity. Re-reaching a queried
// root is benign only when that root lies inside another queried
// root's subtree (the closures merge); when the re-reached root is an
// ancestor of the node that reached it, the chain has looped back and
// the expansion aborts like any other cycle.
func ClosureIDs(edges []Edge, roots []int64) (map[int64]bool, error) {
	children := make(map[int64][]int64, len(edges))
	parents := make(map[int64]int64, len(edges))
	for _, e := range edges {
		if e.ParentID != nil {
			children[*e.ParentID] = append(children[*e.ParentID], e.ID)
			parents[e.ID] = *e.ParentID
		}
	}
	total := len(edges)

	rootSet := make(map[int64]bool, len(roots))
	seen := make(map[int64]bool, len(roots))
	queue := make([]int64, 0, len(roots))
	for _, id := range roots {
		rootSet[id] = true
		if seen[id] {
			continue
		}
		seen[id] = true
		queue = append(queue, id)
	}

	expanded := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		expanded++
		if expanded > total+len(roots) {
			return nil, fmt.Errorf("closure expansion exceeded item count: %w", model.ErrDataIntegrity)
		}

		for _, child := range children[id] {
			if !seen[child] {
				seen[child] = true
				queue = append(queue, child)
				continue
			}
			if rootSet[child] && !onParentChain(parents, child, id, total) {
				continue
			}
			return nil, fmt.Errorf("item %d reached twice while expanding subtree: %w", child, model.ErrDataIntegrity)
		}
	}
	return seen, nil
}

// onParentChain reports whether anc appears on the parent chain of
// id. A chain longer than the edge count can only be cyclic, which
// counts as a hit.
func onParentChain(parents map[int64]int64, anc, id int64, limit int) bool {
	for steps := 0; steps <= limit; steps++ {
		p, ok := parents[id]
		if !ok {
			return false
		}
		if p == anc {
			return true
		}
		id = p
	}
	return true
}
