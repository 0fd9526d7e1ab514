package revsettest

import (
	"context"

	"github.com/calvinalkan/revset"
)

// fakeRevWalk is an eagerly materialized revset.RevWalk. Real
// implementations stream lazily off disk; this one just slices an
// in-memory buffer, which is sufficient for exercising the revset
// package's operator and evaluator logic.
type fakeRevWalk struct {
	idx          *FakeIndex
	entries      []revset.IndexEntry
	genFromHeads map[revset.Position]int
	cursor       int
}

// Next implements revset.Iterator.
func (w *fakeRevWalk) Next(ctx context.Context) (revset.IndexEntry, bool, error) {
	if w.cursor >= len(w.entries) {
		return revset.IndexEntry{}, false, nil
	}

	e := w.entries[w.cursor]
	w.cursor++

	return e, true, nil
}

// Clone implements revset.RevWalk.
func (w *fakeRevWalk) Clone() revset.RevWalk {
	return &fakeRevWalk{idx: w.idx, entries: w.entries, genFromHeads: w.genFromHeads, cursor: w.cursor}
}

// FilterByGeneration implements revset.RevWalk.
func (w *fakeRevWalk) FilterByGeneration(r revset.GenerationRange) revset.RevWalk {
	var out []revset.IndexEntry
	for _, e := range w.entries {
		if r.Contains(uint32(w.genFromHeads[e.Position])) {
			out = append(out, e)
		}
	}

	return &fakeRevWalk{idx: w.idx, entries: out, genFromHeads: w.genFromHeads}
}

// TakeUntilRoots implements revset.RevWalk: it drops every entry that is a
// strict ancestor of one of roots (i.e. only reachable by walking past a
// root), while keeping the roots themselves and everything not on a path
// through them. This must hold for arbitrary DAG shapes, not just a single
// linear chain, so it is computed from the graph rather than by truncating
// the (arbitrarily ordered) entries slice at the first root encountered.
func (w *fakeRevWalk) TakeUntilRoots(roots []revset.Position) revset.RevWalk {
	if len(roots) == 0 {
		return &fakeRevWalk{idx: w.idx, entries: w.entries, genFromHeads: w.genFromHeads}
	}

	rootSet := make(map[revset.Position]struct{}, len(roots))
	for _, r := range roots {
		rootSet[r] = struct{}{}
	}

	strictAncestorsOfRoots := w.idx.ancestorClosure(roots)

	var out []revset.IndexEntry
	for _, e := range w.entries {
		if _, isStrictAncestor := strictAncestorsOfRoots[e.Position]; isStrictAncestor {
			if _, isRoot := rootSet[e.Position]; !isRoot {
				continue
			}
		}

		out = append(out, e)
	}

	return &fakeRevWalk{idx: w.idx, entries: out, genFromHeads: w.genFromHeads}
}

// DescendantsFilteredByGeneration implements revset.RevWalk: it walks
// forward from roots within this walk's own entry set, computing each
// entry's generation as its shortest distance from any root, and returns
// matches in ascending position order.
func (w *fakeRevWalk) DescendantsFilteredByGeneration(roots []revset.Position, r revset.GenerationRange) revset.RevWalk {
	domain := append([]revset.IndexEntry(nil), w.entries...)
	sortAscending(domain)

	rootSet := make(map[revset.Position]struct{}, len(roots))
	for _, root := range roots {
		rootSet[root] = struct{}{}
	}

	genFromRoots := make(map[revset.Position]int, len(roots))
	for _, root := range roots {
		genFromRoots[root] = 0
	}

	var out []revset.IndexEntry
	for _, e := range domain {
		if _, isRoot := rootSet[e.Position]; isRoot {
			continue // roots themselves are not their own descendants
		}

		best := -1
		for _, pp := range e.ParentPositions {
			if g, ok := genFromRoots[pp]; ok {
				if best == -1 || g+1 < best {
					best = g + 1
				}
			}
		}

		if best == -1 {
			continue
		}

		genFromRoots[e.Position] = best

		if r.Contains(uint32(best)) {
			out = append(out, e)
		}
	}

	return &fakeRevWalk{idx: w.idx, entries: out, genFromHeads: genFromRoots}
}
