package revset

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that a commit id passed to Evaluate (directly, or via
// a ResolvedExpression's ids) is not present in the index. The caller is
// responsible for resolving symbolic names before this point, so a missing
// id is treated as an invariant violation of the caller's own input, not a
// recoverable condition this package retries around.
// Callers should use errors.Is(err, ErrNotFound).
var ErrNotFound = errors.New("revset: commit not found in index")

// ErrPredicateOnly reports an attempt to iterate a predicate-only node
// (NotIn, UnionPredicate). These nodes have no finite universe to
// materialize and are constructible only inside FilterWithin.
// Callers should use errors.Is(err, ErrPredicateOnly).
var ErrPredicateOnly = errors.New("revset: node has no iterator (predicate-only)")

// GenerationLowerBoundOverflowError reports that a generation range's
// lower bound does not fit in 32 bits, per §4.4's conversion rule. It is
// fatal for the whole evaluation.
type GenerationLowerBoundOverflowError struct {
	Value uint64
}

func (e *GenerationLowerBoundOverflowError) Error() string {
	return fmt.Sprintf("revset: generation lower bound %d overflows 32 bits", e.Value)
}
