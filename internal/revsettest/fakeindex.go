// Package revsettest provides in-memory fake collaborators (Index, Store,
// Matcher, Tree) for exercising the revset package without a real backing
// repository.
package revsettest

import (
	"context"
	"fmt"
	"sort"

	"github.com/calvinalkan/revset"
)

// FakeIndex is an in-memory revset.Index over a commit graph built up via
// Builder. Commits are assigned positions in insertion order, so a parent
// always has a smaller position than its children.
type FakeIndex struct {
	entries []revset.IndexEntry
	byID    map[revset.CommitID]revset.Position
}

// NewFakeIndex returns an empty index.
func NewFakeIndex() *FakeIndex {
	return &FakeIndex{byID: make(map[revset.CommitID]revset.Position)}
}

// addCommit records a new commit and returns its assigned position. parents
// must already be present in the index.
func (idx *FakeIndex) addCommit(id revset.CommitID, changeID revset.ChangeID, parents []revset.CommitID) revset.IndexEntry {
	pos := revset.Position(len(idx.entries))

	parentPositions := make([]revset.Position, 0, len(parents))
	for _, p := range parents {
		pp, ok := idx.byID[p]
		if !ok {
			panic(fmt.Sprintf("revsettest: unknown parent commit %x", p))
		}

		parentPositions = append(parentPositions, pp)
	}

	entry := revset.IndexEntry{
		Position:        pos,
		CommitID:        id,
		ChangeID:        changeID,
		NumParents:      len(parents),
		ParentPositions: parentPositions,
	}

	idx.entries = append(idx.entries, entry)
	idx.byID[id] = pos

	return entry
}

// EntryByID implements revset.Index.
func (idx *FakeIndex) EntryByID(ctx context.Context, id revset.CommitID) (revset.IndexEntry, error) {
	pos, ok := idx.byID[id]
	if !ok {
		return revset.IndexEntry{}, revset.ErrNotFound
	}

	return idx.entries[pos], nil
}

// EntryByPosition implements revset.Index.
func (idx *FakeIndex) EntryByPosition(ctx context.Context, pos revset.Position) (revset.IndexEntry, error) {
	if pos < 0 || int(pos) >= len(idx.entries) {
		return revset.IndexEntry{}, revset.ErrNotFound
	}

	return idx.entries[pos], nil
}

// WalkRevs implements revset.Index: it returns the ancestors of heads,
// excluding anything that is also an ancestor of roots.
func (idx *FakeIndex) WalkRevs(ctx context.Context, heads, roots []revset.CommitID) (revset.RevWalk, error) {
	headPositions, err := idx.positionsOf(heads)
	if err != nil {
		return nil, err
	}

	rootPositions, err := idx.positionsOf(roots)
	if err != nil {
		return nil, err
	}

	genFromHeads := idx.ancestorClosure(headPositions)
	excluded := idx.ancestorClosure(rootPositions)

	var out []revset.IndexEntry
	for pos := range genFromHeads {
		if _, skip := excluded[pos]; skip {
			continue
		}

		out = append(out, idx.entries[pos])
	}

	sortDescending(out)

	return &fakeRevWalk{idx: idx, entries: out, genFromHeads: genFromHeads}, nil
}

// Heads implements revset.Index: ids that are not a strict ancestor of any
// other id in the input.
func (idx *FakeIndex) Heads(ctx context.Context, ids []revset.CommitID) ([]revset.CommitID, error) {
	positions, err := idx.positionsOf(ids)
	if err != nil {
		return nil, err
	}

	var out []revset.CommitID
	for i, id := range ids {
		isAncestorOfOther := false

		for j, other := range positions {
			if i == j {
				continue
			}

			if idx.isStrictAncestor(positions[i], other) {
				isAncestorOfOther = true

				break
			}
		}

		if !isAncestorOfOther {
			out = append(out, id)
		}
	}

	return out, nil
}

func (idx *FakeIndex) positionsOf(ids []revset.CommitID) ([]revset.Position, error) {
	out := make([]revset.Position, 0, len(ids))
	for _, id := range ids {
		pos, ok := idx.byID[id]
		if !ok {
			return nil, revset.ErrNotFound
		}

		out = append(out, pos)
	}

	return out, nil
}

// ancestorClosure returns every position reachable by following parent
// edges from starts, mapped to its shortest distance from the nearest start.
func (idx *FakeIndex) ancestorClosure(starts []revset.Position) map[revset.Position]int {
	gen := make(map[revset.Position]int, len(starts))
	queue := make([]revset.Position, 0, len(starts))

	for _, s := range starts {
		if _, ok := gen[s]; !ok {
			gen[s] = 0
			queue = append(queue, s)
		}
	}

	for len(queue) > 0 {
		pos := queue[0]
		queue = queue[1:]

		for _, parent := range idx.entries[pos].ParentPositions {
			next := gen[pos] + 1
			if existing, ok := gen[parent]; !ok || next < existing {
				gen[parent] = next
				queue = append(queue, parent)
			}
		}
	}

	return gen
}

func (idx *FakeIndex) isStrictAncestor(a, b revset.Position) bool {
	if a == b {
		return false
	}

	closure := idx.ancestorClosure([]revset.Position{b})
	_, ok := closure[a]

	return ok
}

func sortDescending(entries []revset.IndexEntry) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].Position > entries[j].Position })
}

func sortAscending(entries []revset.IndexEntry) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].Position < entries[j].Position })
}
