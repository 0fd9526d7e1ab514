package revset

import (
	"context"
	"strings"
)

// PredicateBuilder translates leaf FilterPredicate values into
// PredicateFunc closures, consulting Store and Matcher as needed (§4.5).
type PredicateBuilder struct {
	Store Store
}

// Build dispatches on the concrete FilterPredicate kind.
func (b PredicateBuilder) Build(fp FilterPredicate) PredicateFunc {
	switch p := fp.(type) {
	case ParentCountFilter:
		return b.parentCount(p.Range)
	case DescriptionFilter:
		return b.description(p.Needle)
	case AuthorFilter:
		return b.author(p.Needle)
	case CommitterFilter:
		return b.committer(p.Needle)
	case FileFilter:
		return b.file(p.PathPrefixes)
	case HasConflictFilter:
		return b.hasConflict()
	default:
		return func(ctx context.Context, e IndexEntry) (bool, error) { return false, nil }
	}
}

// parentCount needs nothing from the store: NumParents is already on the
// IndexEntry.
func (b PredicateBuilder) parentCount(r Uint32Range) PredicateFunc {
	return func(ctx context.Context, e IndexEntry) (bool, error) {
		return r.Contains(uint32(e.NumParents)), nil
	}
}

func (b PredicateBuilder) description(needle string) PredicateFunc {
	return func(ctx context.Context, e IndexEntry) (bool, error) {
		c, err := b.Store.GetCommit(ctx, e.CommitID)
		if err != nil {
			return false, err
		}
		return strings.Contains(c.Description, needle), nil
	}
}

func (b PredicateBuilder) author(needle string) PredicateFunc {
	return func(ctx context.Context, e IndexEntry) (bool, error) {
		c, err := b.Store.GetCommit(ctx, e.CommitID)
		if err != nil {
			return false, err
		}
		return strings.Contains(c.Author.Name, needle) || strings.Contains(c.Author.Email, needle), nil
	}
}

func (b PredicateBuilder) committer(needle string) PredicateFunc {
	return func(ctx context.Context, e IndexEntry) (bool, error) {
		c, err := b.Store.GetCommit(ctx, e.CommitID)
		if err != nil {
			return false, err
		}
		return strings.Contains(c.Committer.Name, needle) || strings.Contains(c.Committer.Email, needle), nil
	}
}

func (b PredicateBuilder) hasConflict() PredicateFunc {
	return func(ctx context.Context, e IndexEntry) (bool, error) {
		c, err := b.Store.GetCommit(ctx, e.CommitID)
		if err != nil {
			return false, err
		}
		return c.Tree.HasConflict(), nil
	}
}

func (b PredicateBuilder) file(pathPrefixes []string) PredicateFunc {
	matcher := newMatcher(pathPrefixes)
	return func(ctx context.Context, e IndexEntry) (bool, error) {
		return b.hasDiffFromParent(ctx, e, matcher)
	}
}

// hasDiffFromParent implements §4.5's algorithm: fetch the commit's
// parents; for a single parent, take the tree-id-equality fast path when
// the matcher visits everything; otherwise merge the parent trees and diff
// against the commit's tree under the matcher.
func (b PredicateBuilder) hasDiffFromParent(ctx context.Context, e IndexEntry, matcher Matcher) (bool, error) {
	commit, err := b.Store.GetCommit(ctx, e.CommitID)
	if err != nil {
		return false, err
	}

	if len(commit.Parents) == 1 {
		parent, err := b.Store.GetCommit(ctx, commit.Parents[0])
		if err != nil {
			return false, err
		}
		if matcher.Visit("") == VisitAllRecursively {
			return commit.TreeID != parent.TreeID, nil
		}
		if commit.TreeID == parent.TreeID {
			return false, nil
		}
		return b.anyDiff(ctx, parent.Tree, commit.Tree, matcher)
	}

	parentTrees := make([]Tree, 0, len(commit.Parents))
	for _, pid := range commit.Parents {
		parent, err := b.Store.GetCommit(ctx, pid)
		if err != nil {
			return false, err
		}
		parentTrees = append(parentTrees, parent.Tree)
	}
	merged, err := b.Store.MergeTrees(ctx, parentTrees)
	if err != nil {
		return false, err
	}
	return b.anyDiff(ctx, merged, commit.Tree, matcher)
}

func (b PredicateBuilder) anyDiff(ctx context.Context, from, to Tree, matcher Matcher) (bool, error) {
	it, err := from.Diff(ctx, to, matcher)
	if err != nil {
		return false, err
	}
	_, ok, err := it.Next(ctx)
	if err != nil {
		return false, err
	}
	return ok, nil
}

// everythingMatcher visits every path recursively.
type everythingMatcher struct{}

func (everythingMatcher) Visit(path string) MatcherVisit { return VisitAllRecursively }

// prefixMatcher visits a path if it is, or is nested under, one of a fixed
// set of path prefixes.
type prefixMatcher struct {
	prefixes []string
}

func (m prefixMatcher) Visit(path string) MatcherVisit {
	for _, prefix := range m.prefixes {
		if path == prefix {
			return VisitAllRecursively
		}
		if strings.HasPrefix(path, prefix+"/") || strings.HasPrefix(prefix, path+"/") || path == "" {
			return VisitSelectively
		}
	}
	return VisitNothing
}

func newMatcher(pathPrefixes []string) Matcher {
	if len(pathPrefixes) == 0 {
		return everythingMatcher{}
	}
	return prefixMatcher{prefixes: pathPrefixes}
}
