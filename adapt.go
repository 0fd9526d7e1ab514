package revset

import "context"

// AdaptToPredicateFunc converts a descending Iterator into the universal
// predicate closure described by §4.3: on query e, advance while the
// peeked entry's position is greater than e.Position; if it then equals
// e.Position, consume it and return true, otherwise return false. This is
// correct exactly when queries arrive in strictly descending position.
func AdaptToPredicateFunc(it Iterator) PredicateFunc {
	var (
		peeked    IndexEntry
		havePeek  bool
		exhausted bool
	)
	return func(ctx context.Context, e IndexEntry) (bool, error) {
		for {
			if exhausted {
				return false, nil
			}
			if !havePeek {
				next, ok, err := it.Next(ctx)
				if err != nil {
					return false, err
				}
				if !ok {
					exhausted = true
					return false, nil
				}
				peeked = next
				havePeek = true
			}
			switch {
			case peeked.Position > e.Position:
				havePeek = false
				continue
			case peeked.Position == e.Position:
				havePeek = false
				return true, nil
			default:
				return false, nil
			}
		}
	}
}

// peekable adapts an Iterator into a one-ahead cursor, shared by the
// merge-based set operators (Union, Intersection, Difference).
type peekable struct {
	it     Iterator
	peeked *IndexEntry
	done   bool
}

func newPeekable(it Iterator) *peekable {
	return &peekable{it: it}
}

func (p *peekable) peek(ctx context.Context) (*IndexEntry, error) {
	if p.peeked != nil || p.done {
		return p.peeked, nil
	}
	e, ok, err := p.it.Next(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		p.done = true
		return nil, nil
	}
	p.peeked = &e
	return p.peeked, nil
}

func (p *peekable) consume() {
	p.peeked = nil
}
