package revset

import (
	"container/heap"
	"context"
	"sort"
)

// latestCandidate pairs an entry with the committer timestamp it was
// selected by.
type latestCandidate struct {
	entry     IndexEntry
	timestamp int64
}

// latestHeap is a min-heap over latestCandidate, ordered so that the
// weakest candidate (oldest timestamp, tie-broken by smallest position) is
// always at the root and evicted first.
type latestHeap []latestCandidate

func (h latestHeap) Len() int { return len(h) }
func (h latestHeap) Less(i, j int) bool {
	if h[i].timestamp != h[j].timestamp {
		return h[i].timestamp < h[j].timestamp
	}
	return h[i].entry.Position < h[j].entry.Position
}
func (h latestHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *latestHeap) Push(x any)   { *h = append(*h, x.(latestCandidate)) }
func (h *latestHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// takeLatestRevset implements §4.4.2: the count candidates with the
// greatest committer timestamp, ties broken by descending position,
// themselves emitted in descending position.
func takeLatestRevset(ctx context.Context, candidates InternalRevset, count int, timestampOf func(ctx context.Context, e IndexEntry) (int64, error)) (InternalRevset, error) {
	if count <= 0 {
		return newEager(nil), nil
	}

	it := candidates.Iterator()
	h := make(latestHeap, 0, count)

	for {
		e, ok, err := it.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		ts, err := timestampOf(ctx, e)
		if err != nil {
			return nil, err
		}
		cand := latestCandidate{entry: e, timestamp: ts}

		if h.Len() < count {
			heap.Push(&h, cand)
			continue
		}
		if less(h[0], cand) {
			h[0] = cand
			heap.Fix(&h, 0)
		}
	}

	out := make([]IndexEntry, len(h))
	for i, c := range h {
		out[i] = c.entry
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position > out[j].Position })
	return newEager(out), nil
}

// less reports whether a has a strictly smaller (timestamp, position) key
// than b — i.e. a is weaker than b under the Latest tie-break rule.
func less(a, b latestCandidate) bool {
	if a.timestamp != b.timestamp {
		return a.timestamp < b.timestamp
	}
	return a.entry.Position < b.entry.Position
}
