package revset

import "context"

// eagerSet is a materialized set of entries already in descending
// position with no duplicates, per the Eager node's invariant (§4.3.1).
type eagerSet struct {
	entries []IndexEntry
}

// newEager wraps entries as an Eager node. entries must already be in
// strictly descending position with no duplicates: this is an invariant of
// the caller (the evaluator), not user input, so a violation panics rather
// than returning an error.
func newEager(entries []IndexEntry) InternalRevset {
	assertDescendingUnique(entries)
	return &eagerSet{entries: entries}
}

func assertDescendingUnique(entries []IndexEntry) {
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Position <= entries[i].Position {
			panic("revset: Eager entries must be strictly descending with no duplicates")
		}
	}
}

func (s *eagerSet) Iterator() Iterator {
	clone := make([]IndexEntry, len(s.entries))
	copy(clone, s.entries)
	return &sliceIterator{entries: clone}
}

func (s *eagerSet) ToPredicateFunc() PredicateFunc {
	return AdaptToPredicateFunc(s.Iterator())
}

// sliceIterator walks a fixed, already-ordered slice.
type sliceIterator struct {
	entries []IndexEntry
	i       int
}

func (it *sliceIterator) Next(ctx context.Context) (IndexEntry, bool, error) {
	if err := ctx.Err(); err != nil {
		return IndexEntry{}, false, err
	}
	if it.i >= len(it.entries) {
		return IndexEntry{}, false, nil
	}
	e := it.entries[it.i]
	it.i++
	return e, true, nil
}
