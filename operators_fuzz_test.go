package revset

import (
	"context"
	"testing"
)

// byteStream reads bytes sequentially from fuzz input, returning zero
// values once exhausted so every derived sequence is deterministic for a
// given input. It derives structured values from raw fuzz bytes.
type byteStream struct {
	bytes []byte
	pos   int
}

func newByteStream(b []byte) *byteStream { return &byteStream{bytes: b} }

func (s *byteStream) nextByte() byte {
	if s.pos >= len(s.bytes) {
		return 0
	}

	v := s.bytes[s.pos]
	s.pos++

	return v
}

func (s *byteStream) nextBool() bool { return s.nextByte()&1 == 1 }

// subsetOf derives a descending, deduplicated subset of a chain of size n
// from the stream: each position is included with roughly even odds.
func subsetOf(s *byteStream, n int) []IndexEntry {
	chain := chainEntries(n)

	var out []IndexEntry
	for pos := n - 1; pos >= 0; pos-- {
		if s.nextBool() {
			out = append(out, entryAt(chain, Position(pos)))
		}
	}

	return out
}

// FuzzSetOperators_PredicateMatchesIterator checks the De Morgan property
// from §8 for Union, Intersection and Difference: built from arbitrary
// subsets of a fixed chain, each operator's ToPredicateFunc queried in
// descending position order must agree with its Iterator's membership, and
// the iterator itself must yield strictly descending, unique positions.
func FuzzSetOperators_PredicateMatchesIterator(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{0xff, 0x00, 0xff, 0x00})
	f.Add([]byte{0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01})
	f.Add([]byte{0xaa, 0x55, 0xaa, 0x55, 0xaa, 0x55})

	f.Fuzz(func(t *testing.T, data []byte) {
		const n = 10

		s := newByteStream(data)
		a := subsetOf(s, n)
		b := subsetOf(s, n)

		ctx := context.Background()

		for _, op := range []struct {
			name string
			node InternalRevset
		}{
			{"union", newUnion(newEager(a), newEager(b))},
			{"intersection", newIntersection(newEager(a), newEager(b))},
			{"difference", newDifference(newEager(a), newEager(b))},
		} {
			members := make(map[Position]bool)

			it := op.node.Iterator()

			var lastPos Position = -1
			first := true

			for {
				e, ok, err := it.Next(ctx)
				if err != nil {
					t.Fatalf("%s: iterate: %v", op.name, err)
				}

				if !ok {
					break
				}

				if !first && e.Position >= lastPos {
					t.Fatalf("%s: positions not strictly descending: %d then %d", op.name, lastPos, e.Position)
				}

				first = false
				lastPos = e.Position
				members[e.Position] = true
			}

			pred := op.node.ToPredicateFunc()

			for pos := Position(n - 1); pos >= 0; pos-- {
				ok, err := pred(ctx, IndexEntry{Position: pos})
				if err != nil {
					t.Fatalf("%s: predicate(%d): %v", op.name, pos, err)
				}

				if ok != members[pos] {
					t.Fatalf("%s: predicate(%d) = %v, want %v", op.name, pos, ok, members[pos])
				}
			}
		}
	})
}
