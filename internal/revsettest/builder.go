package revsettest

import (
	"github.com/google/uuid"

	"github.com/calvinalkan/revset"
)

// Builder assembles a small commit graph backed by a FakeIndex and
// FakeStore, for use as fixtures in revset package tests.
type Builder struct {
	index *FakeIndex
	store *FakeStore
}

// NewBuilder returns a builder over a fresh, empty index and store.
func NewBuilder() *Builder {
	return &Builder{index: NewFakeIndex(), store: NewFakeStore()}
}

// Index returns the builder's underlying index.
func (b *Builder) Index() *FakeIndex { return b.index }

// Store returns the builder's underlying store.
func (b *Builder) Store() *FakeStore { return b.store }

// CommitOpts configures an optional commit's metadata. A zero-valued Author
// or Committer falls back to a generated signature; the other fields are
// used as given.
type CommitOpts struct {
	Description string
	Author      revset.Signature
	Committer   revset.Signature
	Files       map[string]string
	Conflict    bool
}

// Commit adds a new commit with the given parents and returns its id.
// Metadata is auto-generated; use CommitWith for explicit control.
func (b *Builder) Commit(parents ...revset.CommitID) revset.CommitID {
	return b.CommitWith(CommitOpts{}, parents...)
}

// CommitWith adds a new commit with the given parents and metadata.
func (b *Builder) CommitWith(opts CommitOpts, parents ...revset.CommitID) revset.CommitID {
	id := newCommitID()
	changeID := newChangeID()
	treeID := newTreeID()

	entry := b.index.addCommit(id, changeID, parents)

	if opts.Author == (revset.Signature{}) {
		opts.Author = revset.Signature{Name: "author", Email: "author@example.com", Time: int64(entry.Position)}
	}

	if opts.Committer == (revset.Signature{}) {
		opts.Committer = revset.Signature{Name: "committer", Email: "committer@example.com", Time: int64(entry.Position)}
	}

	tree := NewFakeTree(treeID, opts.Files)
	tree.conflict = opts.Conflict

	b.store.commits[id] = revset.Commit{
		Author:      opts.Author,
		Committer:   opts.Committer,
		Description: opts.Description,
		TreeID:      treeID,
		Tree:        tree,
		Parents:     append([]revset.CommitID(nil), parents...),
	}

	return id
}

func newCommitID() revset.CommitID {
	u := uuid.New()

	var id revset.CommitID
	copy(id[:16], u[:])
	copy(id[16:], u[:4])

	return id
}

func newChangeID() revset.ChangeID {
	u := uuid.New()

	var id revset.ChangeID
	copy(id[:], u[:])

	return id
}

func newTreeID() revset.TreeID {
	u := uuid.New()

	var id revset.TreeID
	copy(id[:16], u[:])
	copy(id[16:], u[:4])

	return id
}
