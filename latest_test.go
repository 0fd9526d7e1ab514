package revset

import (
	"context"
	"testing"
)

func Test_TakeLatestRevset_Returns_N_Greatest_Timestamps_Descending_Position(t *testing.T) {
	t.Parallel()

	chain := chainEntries(5)
	cands := newEager(pick(chain, 4, 3, 2, 1, 0))

	timestamps := map[Position]int64{4: 10, 3: 50, 2: 50, 1: 5, 0: 100}
	tsFn := func(ctx context.Context, e IndexEntry) (int64, error) {
		return timestamps[e.Position], nil
	}

	got, err := takeLatestRevset(t.Context(), cands, 2, tsFn)
	if err != nil {
		t.Fatalf("takeLatestRevset: %v", err)
	}

	// id_0 has ts 100 (greatest); among the two ts=50 candidates (id_3,
	// id_2), the tie-break is descending position, so id_3 wins the
	// second slot.
	assertPositions(t, drainIterator(t, got.Iterator()), pick(chain, 3, 0))
}

func Test_TakeLatestRevset_Returns_All_Candidates_When_Count_Exceeds_Size(t *testing.T) {
	t.Parallel()

	chain := chainEntries(3)
	cands := newEager(pick(chain, 2, 1, 0))

	tsFn := func(ctx context.Context, e IndexEntry) (int64, error) { return int64(e.Position), nil }

	got, err := takeLatestRevset(t.Context(), cands, 10, tsFn)
	if err != nil {
		t.Fatalf("takeLatestRevset: %v", err)
	}

	assertPositions(t, drainIterator(t, got.Iterator()), pick(chain, 2, 1, 0))
}

func Test_TakeLatestRevset_Returns_Empty_For_NonPositive_Count(t *testing.T) {
	t.Parallel()

	chain := chainEntries(3)
	cands := newEager(pick(chain, 2, 1, 0))

	tsFn := func(ctx context.Context, e IndexEntry) (int64, error) { return 0, nil }

	got, err := takeLatestRevset(t.Context(), cands, 0, tsFn)
	if err != nil {
		t.Fatalf("takeLatestRevset: %v", err)
	}

	if entries := drainIterator(t, got.Iterator()); len(entries) != 0 {
		t.Fatalf("got %d entries, want 0", len(entries))
	}
}
