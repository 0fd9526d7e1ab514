package revset

import (
	"context"
	"sort"
)

// Evaluate translates a resolved expression tree into a Revset handle,
// against the given store and composite index (§4.4, §6).
func Evaluate(ctx context.Context, store Store, index Index, expr ResolvedExpression) (*Revset, error) {
	ev := &evaluator{store: store, index: index, builder: PredicateBuilder{Store: store}}
	root, err := ev.evaluate(ctx, expr)
	if err != nil {
		return nil, err
	}
	return &Revset{root: root, index: index}, nil
}

type evaluator struct {
	store   Store
	index   Index
	builder PredicateBuilder
}

func (ev *evaluator) evaluate(ctx context.Context, expr ResolvedExpression) (InternalRevset, error) {
	switch e := expr.(type) {
	case Commits:
		return ev.evalCommits(ctx, e)
	case Ancestors:
		return ev.evalAncestors(ctx, e)
	case Range:
		return ev.evalRange(ctx, e)
	case DagRange:
		return ev.evalDagRange(ctx, e)
	case Heads:
		return ev.evalHeads(ctx, e)
	case Roots:
		return ev.evalRoots(ctx, e)
	case Latest:
		return ev.evalLatest(ctx, e)
	case Union:
		return ev.evalUnion(ctx, e)
	case Intersection:
		return ev.evalIntersection(ctx, e)
	case Difference:
		return ev.evalDifference(ctx, e)
	case FilterWithin:
		return ev.evalFilterWithin(ctx, e)
	default:
		panic("revset: unknown ResolvedExpression variant")
	}
}

func (ev *evaluator) evalCommits(ctx context.Context, e Commits) (InternalRevset, error) {
	entries := make([]IndexEntry, 0, len(e.IDs))
	seen := make(map[Position]struct{}, len(e.IDs))
	for _, id := range e.IDs {
		entry, err := ev.index.EntryByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[entry.Position]; ok {
			continue
		}
		seen[entry.Position] = struct{}{}
		entries = append(entries, entry)
	}
	sortDescending(entries)
	return newEager(entries), nil
}

func (ev *evaluator) evalAncestors(ctx context.Context, e Ancestors) (InternalRevset, error) {
	headsSet, err := ev.evaluate(ctx, e.Heads)
	if err != nil {
		return nil, err
	}
	headIDs, err := collectCommitIDs(ctx, headsSet)
	if err != nil {
		return nil, err
	}
	walk, err := ev.index.WalkRevs(ctx, headIDs, nil)
	if err != nil {
		return nil, err
	}
	if !e.Generation.IsFull() {
		genRange, err := e.Generation.toU32()
		if err != nil {
			return nil, err
		}
		walk = walk.FilterByGeneration(genRange)
	}
	return newWalk(walk), nil
}

func (ev *evaluator) evalRange(ctx context.Context, e Range) (InternalRevset, error) {
	rootsSet, err := ev.evaluate(ctx, e.Roots)
	if err != nil {
		return nil, err
	}
	headsSet, err := ev.evaluate(ctx, e.Heads)
	if err != nil {
		return nil, err
	}
	rootIDs, err := collectCommitIDs(ctx, rootsSet)
	if err != nil {
		return nil, err
	}
	headIDs, err := collectCommitIDs(ctx, headsSet)
	if err != nil {
		return nil, err
	}
	walk, err := ev.index.WalkRevs(ctx, headIDs, rootIDs)
	if err != nil {
		return nil, err
	}
	if !e.Generation.IsFull() {
		genRange, err := e.Generation.toU32()
		if err != nil {
			return nil, err
		}
		walk = walk.FilterByGeneration(genRange)
	}
	return newWalk(walk), nil
}

func (ev *evaluator) evalDagRange(ctx context.Context, e DagRange) (InternalRevset, error) {
	rootsSet, err := ev.evaluate(ctx, e.Roots)
	if err != nil {
		return nil, err
	}
	headsSet, err := ev.evaluate(ctx, e.Heads)
	if err != nil {
		return nil, err
	}

	if e.GenerationFromRoots.Start == 1 && e.GenerationFromRoots.End == 2 {
		return walkChildren(ctx, ev.index, rootsSet, headsSet)
	}

	if e.GenerationFromRoots.IsFull() {
		set, _, err := collectDagRange(ctx, ev.index, rootsSet, headsSet)
		return set, err
	}

	rootPositions, err := collectPositions(ctx, rootsSet)
	if err != nil {
		return nil, err
	}
	headIDs, err := collectCommitIDs(ctx, headsSet)
	if err != nil {
		return nil, err
	}
	genRange, err := e.GenerationFromRoots.toU32()
	if err != nil {
		return nil, err
	}

	ancestorsWalk, err := ev.index.WalkRevs(ctx, headIDs, nil)
	if err != nil {
		return nil, err
	}
	descendants := ancestorsWalk.DescendantsFilteredByGeneration(rootPositions, genRange)

	entries, err := materializeInOrder(ctx, descendants)
	if err != nil {
		return nil, err
	}
	reverseEntries(entries) // the walk emits ascending; consumers expect descending
	return newEager(entries), nil
}

func (ev *evaluator) evalHeads(ctx context.Context, e Heads) (InternalRevset, error) {
	cands, err := ev.evaluate(ctx, e.Candidates)
	if err != nil {
		return nil, err
	}
	ids, err := collectCommitIDs(ctx, cands)
	if err != nil {
		return nil, err
	}
	headIDs, err := ev.index.Heads(ctx, ids)
	if err != nil {
		return nil, err
	}
	entries := make([]IndexEntry, 0, len(headIDs))
	for _, id := range headIDs {
		entry, err := ev.index.EntryByID(ctx, id)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	sortDescending(entries)
	return newEager(entries), nil
}

func (ev *evaluator) evalRoots(ctx context.Context, e Roots) (InternalRevset, error) {
	cands, err := ev.evaluate(ctx, e.Candidates)
	if err != nil {
		return nil, err
	}
	candidateEntries, err := materializeInOrder(ctx, cands.Iterator())
	if err != nil {
		return nil, err
	}
	candidateSet := newEager(append([]IndexEntry(nil), candidateEntries...))

	_, reachable, err := collectDagRange(ctx, ev.index, candidateSet, candidateSet)
	if err != nil {
		return nil, err
	}

	var out []IndexEntry
	for _, c := range candidateEntries {
		hasReachableParent := false
		for _, pp := range c.ParentPositions {
			if _, ok := reachable[pp]; ok {
				hasReachableParent = true
				break
			}
		}
		if !hasReachableParent {
			out = append(out, c)
		}
	}
	return newEager(out), nil
}

func (ev *evaluator) evalLatest(ctx context.Context, e Latest) (InternalRevset, error) {
	cands, err := ev.evaluate(ctx, e.Candidates)
	if err != nil {
		return nil, err
	}
	return takeLatestRevset(ctx, cands, e.Count, ev.committerTimestamp)
}

func (ev *evaluator) committerTimestamp(ctx context.Context, entry IndexEntry) (int64, error) {
	commit, err := ev.store.GetCommit(ctx, entry.CommitID)
	if err != nil {
		return 0, err
	}
	return commit.Committer.Time, nil
}

func (ev *evaluator) evalUnion(ctx context.Context, e Union) (InternalRevset, error) {
	a, err := ev.evaluate(ctx, e.A)
	if err != nil {
		return nil, err
	}
	b, err := ev.evaluate(ctx, e.B)
	if err != nil {
		return nil, err
	}
	return newUnion(a, b), nil
}

func (ev *evaluator) evalIntersection(ctx context.Context, e Intersection) (InternalRevset, error) {
	a, err := ev.evaluate(ctx, e.A)
	if err != nil {
		return nil, err
	}
	b, err := ev.evaluate(ctx, e.B)
	if err != nil {
		return nil, err
	}
	return newIntersection(a, b), nil
}

func (ev *evaluator) evalDifference(ctx context.Context, e Difference) (InternalRevset, error) {
	a, err := ev.evaluate(ctx, e.A)
	if err != nil {
		return nil, err
	}
	b, err := ev.evaluate(ctx, e.B)
	if err != nil {
		return nil, err
	}
	return newDifference(a, b), nil
}

func (ev *evaluator) evalFilterWithin(ctx context.Context, e FilterWithin) (InternalRevset, error) {
	cands, err := ev.evaluate(ctx, e.Candidates)
	if err != nil {
		return nil, err
	}
	predSet, err := ev.evaluatePredicateExpr(ctx, e.Predicate)
	if err != nil {
		return nil, err
	}
	return newFilter(cands, predSet), nil
}

func (ev *evaluator) evaluatePredicateExpr(ctx context.Context, rpe ResolvedPredicateExpression) (InternalRevset, error) {
	switch p := rpe.(type) {
	case FilterExpr:
		return newPredicateOnly(ev.builder.Build(p.Predicate)), nil
	case SetExpr:
		return ev.evaluate(ctx, p.Expr)
	case NotInExpr:
		inner, err := ev.evaluatePredicateExpr(ctx, p.Inner)
		if err != nil {
			return nil, err
		}
		return newNotIn(inner), nil
	case UnionPredicateExpr:
		a, err := ev.evaluatePredicateExpr(ctx, p.A)
		if err != nil {
			return nil, err
		}
		b, err := ev.evaluatePredicateExpr(ctx, p.B)
		if err != nil {
			return nil, err
		}
		return newUnionPredicate(a, b), nil
	default:
		panic("revset: unknown ResolvedPredicateExpression variant")
	}
}

func sortDescending(entries []IndexEntry) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].Position > entries[j].Position })
}

func materializeInOrder(ctx context.Context, it Iterator) ([]IndexEntry, error) {
	var out []IndexEntry
	for {
		e, ok, err := it.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, e)
	}
}
