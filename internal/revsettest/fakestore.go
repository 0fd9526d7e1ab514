package revsettest

import (
	"context"

	"github.com/calvinalkan/revset"
)

// FakeStore is an in-memory revset.Store keyed by commit id.
type FakeStore struct {
	commits map[revset.CommitID]revset.Commit
}

// NewFakeStore returns an empty store.
func NewFakeStore() *FakeStore {
	return &FakeStore{commits: make(map[revset.CommitID]revset.Commit)}
}

// GetCommit implements revset.Store.
func (s *FakeStore) GetCommit(ctx context.Context, id revset.CommitID) (revset.Commit, error) {
	c, ok := s.commits[id]
	if !ok {
		return revset.Commit{}, revset.ErrNotFound
	}

	return c, nil
}

// MergeTrees implements revset.Store. It resolves each path by majority
// value across the parent trees; a path with no majority is recorded as
// conflicted in the result tree.
func (s *FakeStore) MergeTrees(ctx context.Context, trees []revset.Tree) (revset.Tree, error) {
	if len(trees) == 0 {
		return &FakeTree{}, nil
	}

	if len(trees) == 1 {
		return trees[0], nil
	}

	paths := make(map[string]struct{})
	for _, t := range trees {
		ft := t.(*FakeTree)
		for path := range ft.files {
			paths[path] = struct{}{}
		}
	}

	merged := &FakeTree{files: make(map[string]string, len(paths))}

	for path := range paths {
		counts := make(map[string]int)
		for _, t := range trees {
			ft := t.(*FakeTree)
			counts[ft.files[path]]++
		}

		winner, conflicted := majority(counts, len(trees))
		merged.files[path] = winner

		if conflicted {
			merged.conflict = true
		}
	}

	return merged, nil
}

func majority(counts map[string]int, total int) (value string, conflicted bool) {
	for v, n := range counts {
		if n > total/2 {
			return v, false
		}
	}

	for v := range counts {
		return v, true
	}

	return "", false
}
