package revset

import "context"

// filterSet is candidates restricted to entries matching predicate
// (§4.3.3). predicate is stored as the InternalRevset that produces it,
// not as an already-materialized PredicateFunc: a predicate built from a
// Set-based expression (SetExpr, or NotIn/UnionPredicate wrapping one) is
// a stateful, monotone cursor (AdaptToPredicateFunc), so a single shared
// instance would be exhausted by the first Iterator()/ToPredicateFunc()
// caller, leaving every later call empty. Each call below builds its own
// fresh predicate from predicate.ToPredicateFunc(), exactly as
// unionSet.ToPredicateFunc rebuilds s.a.ToPredicateFunc()/s.b.ToPredicateFunc()
// per call.
type filterSet struct {
	candidates InternalRevset
	predicate  InternalRevset
}

func newFilter(candidates InternalRevset, predicate InternalRevset) InternalRevset {
	return &filterSet{candidates: candidates, predicate: predicate}
}

func (s *filterSet) Iterator() Iterator {
	return &filterIterator{inner: s.candidates.Iterator(), predicate: s.predicate.ToPredicateFunc()}
}

func (s *filterSet) ToPredicateFunc() PredicateFunc {
	candPred := s.candidates.ToPredicateFunc()
	innerPred := s.predicate.ToPredicateFunc()
	return func(ctx context.Context, e IndexEntry) (bool, error) {
		ok, err := candPred(ctx, e)
		if err != nil || !ok {
			return false, err
		}
		return innerPred(ctx, e)
	}
}

type filterIterator struct {
	inner     Iterator
	predicate PredicateFunc
}

func (it *filterIterator) Next(ctx context.Context) (IndexEntry, bool, error) {
	for {
		e, ok, err := it.inner.Next(ctx)
		if err != nil || !ok {
			return IndexEntry{}, false, err
		}
		keep, err := it.predicate(ctx, e)
		if err != nil {
			return IndexEntry{}, false, err
		}
		if keep {
			return e, true, nil
		}
	}
}
