package revset_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/calvinalkan/revset"
	"github.com/calvinalkan/revset/internal/revsettest"
)

func entry(pos int64) revset.IndexEntry {
	return revset.IndexEntry{Position: revset.Position(pos)}
}

func Test_Eager_Iterates_Entries_In_Descending_Position(t *testing.T) {
	t.Parallel()

	b := revsettest.NewBuilder()
	c0 := b.Commit()
	c1 := b.Commit(c0)
	c2 := b.Commit(c1)

	expr := revset.Commits{IDs: []revset.CommitID{c0, c1, c2}}

	rs, err := revset.Evaluate(t.Context(), b.Store(), b.Index(), expr)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	got := drain(t, rs)
	want := []revset.CommitID{c2, c1, c0}
	assertCommitIDs(t, got, want)
}

func Test_Eager_Deduplicates_Repeated_Commits(t *testing.T) {
	t.Parallel()

	b := revsettest.NewBuilder()
	c0 := b.Commit()

	expr := revset.Commits{IDs: []revset.CommitID{c0, c0, c0}}

	rs, err := revset.Evaluate(t.Context(), b.Store(), b.Index(), expr)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	got := drain(t, rs)
	assertCommitIDs(t, got, []revset.CommitID{c0})
}

func drain(t *testing.T, rs *revset.Revset) []revset.CommitID {
	t.Helper()

	it := rs.Iter()
	var out []revset.CommitID
	for {
		id, ok, err := it.Next(t.Context())
		if err != nil {
			t.Fatalf("iterate: %v", err)
		}
		if !ok {
			return out
		}
		out = append(out, id)
	}
}

func assertCommitIDs(t *testing.T, got, want []revset.CommitID) {
	t.Helper()

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("commit ids mismatch (-want +got):\n%s", diff)
	}
}
