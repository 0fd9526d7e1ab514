package revset

import "context"

// notInSet is a predicate-only node negating inner's predicate (§4.3.7). It
// has no finite universe to enumerate — the complement of inner within
// "everything" is not materialized — so Iterator rejects direct iteration,
// per §9 "implementations must reject attempts to iterate them directly".
// It is constructible only from evaluatePredicateExpr, inside FilterWithin.
type notInSet struct {
	inner InternalRevset
}

func newNotIn(inner InternalRevset) InternalRevset {
	return &notInSet{inner: inner}
}

func (s *notInSet) Iterator() Iterator {
	return erroringIterator{err: ErrPredicateOnly}
}

func (s *notInSet) ToPredicateFunc() PredicateFunc {
	innerPred := s.inner.ToPredicateFunc()
	return func(ctx context.Context, e IndexEntry) (bool, error) {
		ok, err := innerPred(ctx, e)
		if err != nil {
			return false, err
		}
		return !ok, nil
	}
}

// unionPredicateSet is a predicate-only disjunction of two nodes (§4.3.8).
type unionPredicateSet struct {
	a InternalRevset
	b InternalRevset
}

func newUnionPredicate(a, b InternalRevset) InternalRevset {
	return &unionPredicateSet{a: a, b: b}
}

func (s *unionPredicateSet) Iterator() Iterator {
	return erroringIterator{err: ErrPredicateOnly}
}

func (s *unionPredicateSet) ToPredicateFunc() PredicateFunc {
	aPred, bPred := s.a.ToPredicateFunc(), s.b.ToPredicateFunc()
	return func(ctx context.Context, e IndexEntry) (bool, error) {
		aOK, err := aPred(ctx, e)
		if err != nil {
			return false, err
		}
		bOK, err := bPred(ctx, e)
		if err != nil {
			return false, err
		}
		return aOK || bOK, nil
	}
}

// predicateOnlySet wraps a bare PredicateFunc (a filter-predicate leaf) as
// an InternalRevset, so the evaluator can compose leaf predicates with
// NotIn/UnionPredicate uniformly. It has no natural iterator either: a
// leaf predicate (e.g. "description contains X") has no finite universe of
// its own to enumerate.
type predicateOnlySet struct {
	predicate PredicateFunc
}

func newPredicateOnly(predicate PredicateFunc) InternalRevset {
	return &predicateOnlySet{predicate: predicate}
}

func (s *predicateOnlySet) Iterator() Iterator {
	return erroringIterator{err: ErrPredicateOnly}
}

func (s *predicateOnlySet) ToPredicateFunc() PredicateFunc {
	return s.predicate
}

// erroringIterator immediately fails any Next call; it backs the Iterator
// side of predicate-only nodes.
type erroringIterator struct {
	err error
}

func (it erroringIterator) Next(ctx context.Context) (IndexEntry, bool, error) {
	return IndexEntry{}, false, it.err
}
