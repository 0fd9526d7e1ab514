package revset

import "context"

// Iterator yields IndexEntry values in strictly descending position with no
// duplicates. Once Next returns an error, the iterator must not be
// advanced further.
type Iterator interface {
	Next(ctx context.Context) (entry IndexEntry, ok bool, err error)
}

// PredicateFunc is a stateful, monotone membership test: it is only valid
// when invoked with entries in strictly descending position, and it may
// advance an internal cursor forward but never rewind.
type PredicateFunc func(ctx context.Context, entry IndexEntry) (bool, error)

// InternalRevset is the contract every operator node satisfies: it can
// produce a descending-position iterator, and it can produce a predicate
// closure usable against a (possibly differently ordered) driving stream.
type InternalRevset interface {
	Iterator() Iterator
	ToPredicateFunc() PredicateFunc
}

// Index is the composite index: the read-only, external view over commit
// graph storage that this package consumes but does not implement.
type Index interface {
	// EntryByID looks up a commit by id. Returns ErrNotFound if absent.
	EntryByID(ctx context.Context, id CommitID) (IndexEntry, error)
	// EntryByPosition looks up a commit by its index position.
	EntryByPosition(ctx context.Context, pos Position) (IndexEntry, error)
	// WalkRevs returns a lazy descending walk of the ancestors of heads,
	// excluding ancestors of roots.
	WalkRevs(ctx context.Context, heads, roots []CommitID) (RevWalk, error)
	// Heads returns the subset of ids that are not ancestors of any other
	// id in the input.
	Heads(ctx context.Context, ids []CommitID) ([]CommitID, error)
}

// RevWalk is a lazy, cloneable walk over ancestors of a head set.
type RevWalk interface {
	Iterator
	// Clone yields an independent cursor at the same state as this walk.
	Clone() RevWalk
	// FilterByGeneration retains entries whose generation (distance from
	// heads) lies in r.
	FilterByGeneration(r GenerationRange) RevWalk
	// TakeUntilRoots stops descending past any of the given root
	// positions, inclusive.
	TakeUntilRoots(roots []Position) RevWalk
	// DescendantsFilteredByGeneration enumerates descendants of roots
	// within this walk whose generation-from-roots lies in r, in
	// ascending position order.
	DescendantsFilteredByGeneration(roots []Position, r GenerationRange) RevWalk
}

// Signature is a commit's author or committer identity and time.
type Signature struct {
	Name  string
	Email string
	Time  int64 // Unix seconds; comparisons use this directly.
}

// Commit is the metadata the store provides for a commit id.
type Commit struct {
	Author      Signature
	Committer   Signature
	Description string
	TreeID      TreeID
	Tree        Tree
	Parents     []CommitID
}

// Store fetches commit metadata. It is the only collaborator filter
// predicates consult for data beyond what IndexEntry already carries.
type Store interface {
	GetCommit(ctx context.Context, id CommitID) (Commit, error)
	// MergeTrees merges zero or more parent trees into the tree a merge
	// commit would record, for the general has_diff_from_parent path.
	MergeTrees(ctx context.Context, trees []Tree) (Tree, error)
}

// MatcherVisit is the tri-state result of Matcher.Visit.
type MatcherVisit int

const (
	VisitNothing MatcherVisit = iota
	VisitSelectively
	VisitAllRecursively
)

// Matcher is a predicate over repository paths.
type Matcher interface {
	Visit(path string) MatcherVisit
}

// DiffEntry is one changed path produced by Tree.Diff.
type DiffEntry struct {
	Path string
}

// DiffIterator yields DiffEntry values; it has no ordering guarantee beyond
// exhaustion.
type DiffIterator interface {
	Next(ctx context.Context) (entry DiffEntry, ok bool, err error)
}

// Tree is a commit's recorded tree, consulted by HasConflict and File
// filter predicates.
type Tree interface {
	ID() TreeID
	HasConflict() bool
	Diff(ctx context.Context, other Tree, matcher Matcher) (DiffIterator, error)
}
