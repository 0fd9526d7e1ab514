package revset

import "context"

// collectDagRange implements §4.4.1: the set of commits reachable from
// roots to heads. The reachable set is built in ascending position (a
// position is reachable iff it is itself a root, or one of its parent
// positions is already reachable) and the output is reversed to
// descending before being wrapped as an Eager node.
func collectDagRange(ctx context.Context, index Index, roots, heads InternalRevset) (InternalRevset, map[Position]struct{}, error) {
	rootPositions, err := collectPositions(ctx, roots)
	if err != nil {
		return nil, nil, err
	}
	rootSet := make(map[Position]struct{}, len(rootPositions))
	for _, p := range rootPositions {
		rootSet[p] = struct{}{}
	}

	headIDs, err := collectCommitIDs(ctx, heads)
	if err != nil {
		return nil, nil, err
	}

	walk, err := index.WalkRevs(ctx, headIDs, nil)
	if err != nil {
		return nil, nil, err
	}
	walk = walk.TakeUntilRoots(rootPositions)

	ascending, err := materializeAscending(ctx, walk)
	if err != nil {
		return nil, nil, err
	}

	reachable := make(map[Position]struct{})
	var out []IndexEntry
	for _, c := range ascending {
		_, isRoot := rootSet[c.Position]
		reachableViaParent := false
		for _, pp := range c.ParentPositions {
			if _, ok := reachable[pp]; ok {
				reachableViaParent = true
				break
			}
		}
		if isRoot || reachableViaParent {
			reachable[c.Position] = struct{}{}
			out = append(out, c)
		}
	}

	reverseEntries(out)
	return newEager(out), reachable, nil
}

// walkChildren implements §4.4.3: descendants of roots whose direct parent
// set intersects roots, within ancestors of heads.
func walkChildren(ctx context.Context, index Index, roots, heads InternalRevset) (InternalRevset, error) {
	rootPositions, err := collectPositions(ctx, roots)
	if err != nil {
		return nil, err
	}
	rootSet := make(map[Position]struct{}, len(rootPositions))
	for _, p := range rootPositions {
		rootSet[p] = struct{}{}
	}

	headIDs, err := collectCommitIDs(ctx, heads)
	if err != nil {
		return nil, err
	}

	walk, err := index.WalkRevs(ctx, headIDs, nil)
	if err != nil {
		return nil, err
	}
	walk = walk.TakeUntilRoots(rootPositions)

	var out []IndexEntry
	it := Iterator(walk)
	for {
		e, ok, err := it.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		for _, pp := range e.ParentPositions {
			if _, ok := rootSet[pp]; ok {
				out = append(out, e)
				break
			}
		}
	}
	return newEager(out), nil
}

func collectPositions(ctx context.Context, set InternalRevset) ([]Position, error) {
	it := set.Iterator()
	var out []Position
	for {
		e, ok, err := it.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, e.Position)
	}
}

func collectCommitIDs(ctx context.Context, set InternalRevset) ([]CommitID, error) {
	it := set.Iterator()
	var out []CommitID
	for {
		e, ok, err := it.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, e.CommitID)
	}
}

func materializeAscending(ctx context.Context, it Iterator) ([]IndexEntry, error) {
	var out []IndexEntry
	for {
		e, ok, err := it.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		out = append(out, e)
	}
	reverseEntries(out) // it yields descending; §4.4.1 step 3 needs ascending
	return out, nil
}

func reverseEntries(entries []IndexEntry) {
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
}
