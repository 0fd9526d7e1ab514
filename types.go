// Package revset implements a lazy, composable set-algebra evaluation
// engine over a commit DAG: it takes a resolved expression tree and yields
// a lazily enumerable set of commits ordered by descending index position.
//
// Name resolution (turning symbolic revset text into a ResolvedExpression),
// the commit-graph index's on-disk storage, and the commit object store's
// internals are all out of scope; this package consumes them through the
// Index, Store, Matcher, and Tree interfaces in contract.go.
package revset

import "encoding/hex"

// Position is a dense, totally ordered integer assigned to each commit by
// the index: descendants always have a larger position than their
// ancestors. "Descending order" means greatest position first.
type Position int64

// CommitID is a fixed-width commit identifier.
type CommitID [20]byte

// AsBytes implements idindex.Key.
func (c CommitID) AsBytes() []byte { return c[:] }

func (c CommitID) String() string { return hex.EncodeToString(c[:]) }

// ChangeID is a fixed-width change identifier: stable across commit
// rewrites, unlike CommitID.
type ChangeID [16]byte

// AsBytes implements idindex.Key.
func (c ChangeID) AsBytes() []byte { return c[:] }

func (c ChangeID) String() string { return hex.EncodeToString(c[:]) }

// TreeID is a fixed-width tree object identifier.
type TreeID [20]byte

func (t TreeID) String() string { return hex.EncodeToString(t[:]) }

// IndexEntry is a handle borrowing from the composite index. Equality
// between entries is defined by Position alone.
type IndexEntry struct {
	Position        Position
	CommitID        CommitID
	ChangeID        ChangeID
	NumParents      int
	ParentPositions []Position
}

// Equal reports whether two entries refer to the same index position.
func (e IndexEntry) Equal(other IndexEntry) bool {
	return e.Position == other.Position
}
