package revset

import (
	"context"

	"github.com/calvinalkan/revset/idindex"
)

// Revset is the public façade over an evaluated expression tree (§4.6).
type Revset struct {
	root  InternalRevset
	index Index
}

// CommitIDIterator yields commit ids in descending index position.
type CommitIDIterator struct {
	inner Iterator
}

// Next advances the iterator.
func (it *CommitIDIterator) Next(ctx context.Context) (CommitID, bool, error) {
	e, ok, err := it.inner.Next(ctx)
	if err != nil || !ok {
		return CommitID{}, ok, err
	}
	return e.CommitID, true, nil
}

// Iter maps the root operator's iterator to commit ids.
func (r *Revset) Iter() *CommitIDIterator {
	return &CommitIDIterator{inner: r.root.Iterator()}
}

// GraphEdgeKind classifies a GraphEdge as directly present in the revset or
// not.
type GraphEdgeKind int

const (
	// EdgeInSet marks a parent that is itself a member of this revset.
	EdgeInSet GraphEdgeKind = iota
	// EdgeMissing marks a parent that is not a member of this revset. A
	// full topological reconstruction (eliding intermediate commits to
	// find the nearest in-set ancestor) is out of this engine's scope
	// per §4.6; callers that need that get it from the external
	// graph-rendering collaborator.
	EdgeMissing
)

// GraphEdge is one edge from a GraphEntry to a parent position.
type GraphEdge struct {
	Parent Position
	Kind   GraphEdgeKind
}

// GraphEntry is one commit in a graph-shaped iteration of a revset.
type GraphEntry struct {
	CommitID CommitID
	Edges    []GraphEdge
}

// IterGraph materializes the revset's commit ids once to determine
// set membership, then walks the revset again pairing each commit with its
// parent edges. See GraphEdgeKind for the scope of edge reconstruction.
func (r *Revset) IterGraph(ctx context.Context) ([]GraphEntry, error) {
	members := make(map[Position]struct{})
	membershipIt := r.root.Iterator()
	for {
		e, ok, err := membershipIt.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		members[e.Position] = struct{}{}
	}

	var out []GraphEntry
	it := r.root.Iterator()
	for {
		e, ok, err := it.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		edges := make([]GraphEdge, 0, len(e.ParentPositions))
		for _, pp := range e.ParentPositions {
			kind := EdgeMissing
			if _, ok := members[pp]; ok {
				kind = EdgeInSet
			}
			edges = append(edges, GraphEdge{Parent: pp, Kind: kind})
		}
		out = append(out, GraphEntry{CommitID: e.CommitID, Edges: edges})
	}
	return out, nil
}

// IsEmpty reports whether the revset contains no commits.
func (r *Revset) IsEmpty(ctx context.Context) (bool, error) {
	_, ok, err := r.root.Iterator().Next(ctx)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

// ChangeIDIndex is a handle resolving change-id prefixes to commit ids,
// backed by an in-memory idindex.Index materialized from this revset.
type ChangeIDIndex struct {
	idx   *idindex.Index[ChangeID, Position]
	index Index
}

// ChangeIDIndex materializes (change_id, position) for every entry in the
// revset and builds a prefix index over it (§4.6). It rematerializes on
// every call, matching the source's own "TODO: create a persistent lookup"
// (§9) — a reimplementation may cache this lazily, but nothing in this
// engine's scope requires it.
func (r *Revset) ChangeIDIndex(ctx context.Context) (*ChangeIDIndex, error) {
	it := r.root.Iterator()
	var pairs []idindex.Entry[ChangeID, Position]
	for {
		e, ok, err := it.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		pairs = append(pairs, idindex.Entry[ChangeID, Position]{Key: e.ChangeID, Value: e.Position})
	}
	return &ChangeIDIndex{idx: idindex.FromPairs(pairs), index: r.index}, nil
}

// ChangeIDResolution is the result of resolving a change-id prefix.
type ChangeIDResolution struct {
	Kind      idindex.MatchKind
	CommitIDs []CommitID
}

// ResolvePrefix resolves prefix against the change-id index, mapping any
// matched positions back to commit ids via the composite index.
func (c *ChangeIDIndex) ResolvePrefix(ctx context.Context, prefix idindex.HexPrefix) (ChangeIDResolution, error) {
	res := c.idx.ResolvePrefixWith(prefix, func(p Position) Position { return p })
	if res.Kind != idindex.SingleMatch {
		return ChangeIDResolution{Kind: res.Kind}, nil
	}
	ids := make([]CommitID, 0, len(res.Values))
	for _, pos := range res.Values {
		entry, err := c.index.EntryByPosition(ctx, pos)
		if err != nil {
			return ChangeIDResolution{}, err
		}
		ids = append(ids, entry.CommitID)
	}
	return ChangeIDResolution{Kind: idindex.SingleMatch, CommitIDs: ids}, nil
}

// ShortestUniquePrefixLen delegates to the underlying idindex.Index.
func (c *ChangeIDIndex) ShortestUniquePrefixLen(key ChangeID) int {
	return c.idx.ShortestUniquePrefixLen(key)
}
