package revset_test

import (
	"testing"

	"github.com/calvinalkan/revset"
	"github.com/calvinalkan/revset/internal/revsettest"
)

// diamondDAG builds:
//
//	a
//	|\
//	b c
//	|/
//	m
//	|
//	d
//	|
//	e
//
// returned in commit-creation order a,b,c,m,d,e (positions 0..5).
func diamondDAG(t *testing.T) (*revsettest.Builder, map[string]revset.CommitID) {
	t.Helper()

	b := revsettest.NewBuilder()
	ids := make(map[string]revset.CommitID)

	ids["a"] = b.Commit()
	ids["b"] = b.Commit(ids["a"])
	ids["c"] = b.Commit(ids["a"])
	ids["m"] = b.Commit(ids["b"], ids["c"])
	ids["d"] = b.Commit(ids["m"])
	ids["e"] = b.Commit(ids["d"])

	return b, ids
}

func evalIDs(t *testing.T, b *revsettest.Builder, expr revset.ResolvedExpression) []revset.CommitID {
	t.Helper()

	rs, err := revset.Evaluate(t.Context(), b.Store(), b.Index(), expr)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	return drain(t, rs)
}

func assertSameSet(t *testing.T, got []revset.CommitID, want ...revset.CommitID) {
	t.Helper()

	gotSet := make(map[revset.CommitID]bool, len(got))
	for _, id := range got {
		gotSet[id] = true
	}

	wantSet := make(map[revset.CommitID]bool, len(want))
	for _, id := range want {
		wantSet[id] = true
	}

	if len(gotSet) != len(wantSet) {
		t.Fatalf("got %d entries %v, want %d entries %v", len(got), got, len(want), want)
	}

	for id := range wantSet {
		if !gotSet[id] {
			t.Errorf("missing %x from result %v", id, got)
		}
	}
}

func Test_Ancestors_Includes_Head_And_All_Reachable_Predecessors(t *testing.T) {
	t.Parallel()

	b, ids := diamondDAG(t)

	got := evalIDs(t, b, revset.Ancestors{
		Heads:      revset.Commits{IDs: []revset.CommitID{ids["d"]}},
		Generation: revset.GenerationRangeFullU64,
	})

	assertSameSet(t, got, ids["a"], ids["b"], ids["c"], ids["m"], ids["d"])
}

func Test_Range_Excludes_Ancestors_Of_Roots(t *testing.T) {
	t.Parallel()

	b, ids := diamondDAG(t)

	got := evalIDs(t, b, revset.Range{
		Roots:      revset.Commits{IDs: []revset.CommitID{ids["a"]}},
		Heads:      revset.Commits{IDs: []revset.CommitID{ids["d"]}},
		Generation: revset.GenerationRangeFullU64,
	})

	assertSameSet(t, got, ids["b"], ids["c"], ids["m"], ids["d"])
}

func Test_DagRange_Full_Includes_Roots_Themselves(t *testing.T) {
	t.Parallel()

	b, ids := diamondDAG(t)

	got := evalIDs(t, b, revset.DagRange{
		Roots:               revset.Commits{IDs: []revset.CommitID{ids["a"]}},
		Heads:               revset.Commits{IDs: []revset.CommitID{ids["d"]}},
		GenerationFromRoots: revset.GenerationRangeFullU64,
	})

	assertSameSet(t, got, ids["a"], ids["b"], ids["c"], ids["m"], ids["d"])
}

func Test_DagRange_Direct_Children_Fast_Path(t *testing.T) {
	t.Parallel()

	b, ids := diamondDAG(t)

	got := evalIDs(t, b, revset.DagRange{
		Roots:               revset.Commits{IDs: []revset.CommitID{ids["a"]}},
		Heads:               revset.Commits{IDs: []revset.CommitID{ids["d"]}},
		GenerationFromRoots: revset.GenerationRangeU64{Start: 1, End: 2},
	})

	assertSameSet(t, got, ids["b"], ids["c"])
}

func Test_DagRange_Bounded_Generation_From_Roots(t *testing.T) {
	t.Parallel()

	b, ids := diamondDAG(t)

	got := evalIDs(t, b, revset.DagRange{
		Roots:               revset.Commits{IDs: []revset.CommitID{ids["a"]}},
		Heads:               revset.Commits{IDs: []revset.CommitID{ids["e"]}},
		GenerationFromRoots: revset.GenerationRangeU64{Start: 2, End: 3},
	})

	assertSameSet(t, got, ids["m"])
}

func Test_Heads_Excludes_Commits_With_A_Descendant_In_Candidates(t *testing.T) {
	t.Parallel()

	b, ids := diamondDAG(t)

	got := evalIDs(t, b, revset.Heads{
		Candidates: revset.Commits{IDs: []revset.CommitID{ids["a"], ids["b"], ids["c"], ids["m"], ids["d"]}},
	})

	assertSameSet(t, got, ids["d"])
}

func Test_Roots_Excludes_Commits_With_An_Ancestor_In_Candidates(t *testing.T) {
	t.Parallel()

	b, ids := diamondDAG(t)

	got := evalIDs(t, b, revset.Roots{
		Candidates: revset.Commits{IDs: []revset.CommitID{ids["b"], ids["c"], ids["m"], ids["d"]}},
	})

	assertSameSet(t, got, ids["b"], ids["c"])
}

func Test_Latest_Picks_Greatest_Committer_Timestamps(t *testing.T) {
	t.Parallel()

	builder := revsettest.NewBuilder()
	old := builder.CommitWith(revsettest.CommitOpts{Committer: revset.Signature{Name: "x", Email: "x@example.com", Time: 1}})
	mid := builder.CommitWith(revsettest.CommitOpts{Committer: revset.Signature{Name: "x", Email: "x@example.com", Time: 2}}, old)
	recent := builder.CommitWith(revsettest.CommitOpts{Committer: revset.Signature{Name: "x", Email: "x@example.com", Time: 3}}, mid)

	got := evalIDs(t, builder, revset.Latest{
		Candidates: revset.Commits{IDs: []revset.CommitID{old, mid, recent}},
		Count:      2,
	})

	assertSameSet(t, got, mid, recent)
}

func Test_FilterWithin_Description_Predicate(t *testing.T) {
	t.Parallel()

	builder := revsettest.NewBuilder()
	fix := builder.CommitWith(revsettest.CommitOpts{Description: "fix: correct off-by-one"})
	feat := builder.CommitWith(revsettest.CommitOpts{Description: "feat: add widget"}, fix)

	got := evalIDs(t, builder, revset.FilterWithin{
		Candidates: revset.Commits{IDs: []revset.CommitID{fix, feat}},
		Predicate:  revset.FilterExpr{Predicate: revset.DescriptionFilter{Needle: "fix:"}},
	})

	assertSameSet(t, got, fix)
}

func Test_FilterWithin_HasConflict_Predicate(t *testing.T) {
	t.Parallel()

	builder := revsettest.NewBuilder()
	clean := builder.CommitWith(revsettest.CommitOpts{})
	conflicted := builder.CommitWith(revsettest.CommitOpts{Conflict: true}, clean)

	got := evalIDs(t, builder, revset.FilterWithin{
		Candidates: revset.Commits{IDs: []revset.CommitID{clean, conflicted}},
		Predicate:  revset.FilterExpr{Predicate: revset.HasConflictFilter{}},
	})

	assertSameSet(t, got, conflicted)
}

func Test_FilterWithin_File_Predicate_Single_Parent_Fast_Path(t *testing.T) {
	t.Parallel()

	builder := revsettest.NewBuilder()
	base := builder.CommitWith(revsettest.CommitOpts{Files: map[string]string{"a.txt": "1"}})
	touchesA := builder.CommitWith(revsettest.CommitOpts{Files: map[string]string{"a.txt": "2"}}, base)
	touchesB := builder.CommitWith(revsettest.CommitOpts{Files: map[string]string{"a.txt": "2", "b.txt": "1"}}, touchesA)

	got := evalIDs(t, builder, revset.FilterWithin{
		Candidates: revset.Commits{IDs: []revset.CommitID{touchesA, touchesB}},
		Predicate:  revset.FilterExpr{Predicate: revset.FileFilter{PathPrefixes: []string{"b.txt"}}},
	})

	assertSameSet(t, got, touchesB)
}

func Test_IsEmpty(t *testing.T) {
	t.Parallel()

	builder := revsettest.NewBuilder()
	c := builder.Commit()

	empty, err := revset.Evaluate(t.Context(), builder.Store(), builder.Index(), revset.Commits{})
	if err != nil {
		t.Fatalf("evaluate empty: %v", err)
	}

	isEmpty, err := empty.IsEmpty(t.Context())
	if err != nil {
		t.Fatalf("IsEmpty: %v", err)
	}

	if !isEmpty {
		t.Error("expected empty revset to report IsEmpty = true")
	}

	nonEmpty, err := revset.Evaluate(t.Context(), builder.Store(), builder.Index(), revset.Commits{IDs: []revset.CommitID{c}})
	if err != nil {
		t.Fatalf("evaluate non-empty: %v", err)
	}

	isEmpty, err = nonEmpty.IsEmpty(t.Context())
	if err != nil {
		t.Fatalf("IsEmpty: %v", err)
	}

	if isEmpty {
		t.Error("expected non-empty revset to report IsEmpty = false")
	}
}

func Test_ChangeIDIndex_ResolvePrefix(t *testing.T) {
	t.Parallel()

	builder := revsettest.NewBuilder()
	c := builder.Commit()

	rs, err := revset.Evaluate(t.Context(), builder.Store(), builder.Index(), revset.Commits{IDs: []revset.CommitID{c}})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	idx, err := rs.ChangeIDIndex(t.Context())
	if err != nil {
		t.Fatalf("ChangeIDIndex: %v", err)
	}

	entry, err := builder.Index().EntryByID(t.Context(), c)
	if err != nil {
		t.Fatalf("entry by id: %v", err)
	}

	n := idx.ShortestUniquePrefixLen(entry.ChangeID)
	if n <= 0 || n > len(entry.ChangeID)*2 {
		t.Fatalf("ShortestUniquePrefixLen = %d, out of range", n)
	}
}
