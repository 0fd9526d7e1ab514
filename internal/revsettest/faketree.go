package revsettest

import (
	"context"
	"sort"

	"github.com/calvinalkan/revset"
)

// FakeTree is an in-memory revset.Tree: a flat map of path to content.
type FakeTree struct {
	id       revset.TreeID
	files    map[string]string
	conflict bool
}

// NewFakeTree builds a tree with the given id and file contents.
func NewFakeTree(id revset.TreeID, files map[string]string) *FakeTree {
	cp := make(map[string]string, len(files))
	for k, v := range files {
		cp[k] = v
	}

	return &FakeTree{id: id, files: cp}
}

// ID implements revset.Tree.
func (t *FakeTree) ID() revset.TreeID { return t.id }

// HasConflict implements revset.Tree.
func (t *FakeTree) HasConflict() bool { return t.conflict }

// Diff implements revset.Tree: it compares the two trees' file maps path by
// path, yielding one DiffEntry per path whose content differs (including
// paths present in only one side), filtered by matcher.
func (t *FakeTree) Diff(ctx context.Context, other revset.Tree, matcher revset.Matcher) (revset.DiffIterator, error) {
	ot := other.(*FakeTree)

	paths := make(map[string]struct{}, len(t.files)+len(ot.files))
	for p := range t.files {
		paths[p] = struct{}{}
	}

	for p := range ot.files {
		paths[p] = struct{}{}
	}

	var changed []string
	for p := range paths {
		if matcher.Visit(p) == revset.VisitNothing {
			continue
		}

		if t.files[p] != ot.files[p] {
			changed = append(changed, p)
		}
	}

	sort.Strings(changed)

	return &fakeDiffIterator{paths: changed}, nil
}

type fakeDiffIterator struct {
	paths []string
	i     int
}

func (it *fakeDiffIterator) Next(ctx context.Context) (revset.DiffEntry, bool, error) {
	if it.i >= len(it.paths) {
		return revset.DiffEntry{}, false, nil
	}

	p := it.paths[it.i]
	it.i++

	return revset.DiffEntry{Path: p}, true, nil
}
