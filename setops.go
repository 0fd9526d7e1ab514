package revset

import "context"

// unionSet is the linear sorted-merge union of two descending streams
// (§4.3.4).
type unionSet struct {
	a InternalRevset
	b InternalRevset
}

func newUnion(a, b InternalRevset) InternalRevset {
	return &unionSet{a: a, b: b}
}

func (s *unionSet) Iterator() Iterator {
	return &unionIterator{a: newPeekable(s.a.Iterator()), b: newPeekable(s.b.Iterator())}
}

func (s *unionSet) ToPredicateFunc() PredicateFunc {
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

type unionIterator struct {
	a *peekable
	b *peekable
}

func (it *unionIterator) Next(ctx context.Context) (IndexEntry, bool, error) {
	a, err := it.a.peek(ctx)
	if err != nil {
		return IndexEntry{}, false, err
	}
	b, err := it.b.peek(ctx)
	if err != nil {
		return IndexEntry{}, false, err
	}
	switch {
	case a == nil && b == nil:
		return IndexEntry{}, false, nil
	case b == nil || (a != nil && a.Position > b.Position):
		it.a.consume()
		return *a, true, nil
	case a == nil || b.Position > a.Position:
		it.b.consume()
		return *b, true, nil
	default:
		it.a.consume()
		it.b.consume()
		return *a, true, nil
	}
}

// intersectionSet is the linear sorted-merge intersection of two
// descending streams (§4.3.5).
type intersectionSet struct {
	a InternalRevset
	b InternalRevset
}

func newIntersection(a, b InternalRevset) InternalRevset {
	return &intersectionSet{a: a, b: b}
}

func (s *intersectionSet) Iterator() Iterator {
	return &intersectionIterator{a: newPeekable(s.a.Iterator()), b: newPeekable(s.b.Iterator())}
}

func (s *intersectionSet) ToPredicateFunc() PredicateFunc {
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
		return aOK && bOK, nil
	}
}

type intersectionIterator struct {
	a *peekable
	b *peekable
}

func (it *intersectionIterator) Next(ctx context.Context) (IndexEntry, bool, error) {
	for {
		a, err := it.a.peek(ctx)
		if err != nil {
			return IndexEntry{}, false, err
		}
		if a == nil {
			return IndexEntry{}, false, nil
		}
		b, err := it.b.peek(ctx)
		if err != nil {
			return IndexEntry{}, false, err
		}
		if b == nil {
			return IndexEntry{}, false, nil
		}
		switch {
		case a.Position > b.Position:
			it.a.consume()
		case b.Position > a.Position:
			it.b.consume()
		default:
			it.a.consume()
			it.b.consume()
			return *a, true, nil
		}
	}
}

// differenceSet is a minus b via linear sorted-merge (§4.3.6).
type differenceSet struct {
	a InternalRevset
	b InternalRevset
}

func newDifference(a, b InternalRevset) InternalRevset {
	return &differenceSet{a: a, b: b}
}

func (s *differenceSet) Iterator() Iterator {
	return &differenceIterator{a: newPeekable(s.a.Iterator()), b: newPeekable(s.b.Iterator())}
}

func (s *differenceSet) ToPredicateFunc() PredicateFunc {
	aPred, bPred := s.a.ToPredicateFunc(), s.b.ToPredicateFunc()
	return func(ctx context.Context, e IndexEntry) (bool, error) {
		aOK, err := aPred(ctx, e)
		if err != nil || !aOK {
			return false, err
		}
		bOK, err := bPred(ctx, e)
		if err != nil {
			return false, err
		}
		return !bOK, nil
	}
}

type differenceIterator struct {
	a *peekable
	b *peekable
}

func (it *differenceIterator) Next(ctx context.Context) (IndexEntry, bool, error) {
	for {
		a, err := it.a.peek(ctx)
		if err != nil {
			return IndexEntry{}, false, err
		}
		if a == nil {
			return IndexEntry{}, false, nil
		}
		b, err := it.b.peek(ctx)
		if err != nil {
			return IndexEntry{}, false, err
		}
		switch {
		case b != nil && b.Position > a.Position:
			it.b.consume()
		case b != nil && b.Position == a.Position:
			it.a.consume()
			it.b.consume()
		default:
			it.a.consume()
			return *a, true, nil
		}
	}
}
