package revset

import "math"

// GenerationInfinite marks the unbounded end of a GenerationRangeU64.
const GenerationInfinite = ^uint64(0)

// GenerationRangeU64 is a half-open generation range [Start, End) as carried
// by a ResolvedExpression, before it has been validated against the
// narrower 32-bit range the index walks operate on.
type GenerationRangeU64 struct {
	Start uint64
	End   uint64
}

// GenerationRangeFullU64 is GENERATION_RANGE_FULL: [0, infinity).
var GenerationRangeFullU64 = GenerationRangeU64{Start: 0, End: GenerationInfinite}

// IsFull reports whether the range is GENERATION_RANGE_FULL, the fast path
// that skips generation bookkeeping entirely.
func (r GenerationRangeU64) IsFull() bool {
	return r.Start == 0 && r.End == GenerationInfinite
}

// toU32 converts a GenerationRangeU64 to the 32-bit range the RevWalk
// interface operates on. A Start that overflows 32 bits is fatal for the
// whole evaluation; an End that overflows saturates to math.MaxUint32.
func (r GenerationRangeU64) toU32() (GenerationRange, error) {
	if r.Start > math.MaxUint32 {
		return GenerationRange{}, &GenerationLowerBoundOverflowError{Value: r.Start}
	}
	end := uint32(math.MaxUint32)
	if r.End != GenerationInfinite {
		if r.End > math.MaxUint32 {
			end = math.MaxUint32
		} else {
			end = uint32(r.End)
		}
	}
	return GenerationRange{Start: uint32(r.Start), End: end}, nil
}

// GenerationRange is a half-open range of generation numbers, as consumed
// by RevWalk.FilterByGeneration and RevWalk.DescendantsFilteredByGeneration.
type GenerationRange struct {
	Start uint32
	End   uint32
}

// GenerationRangeFull is the 32-bit form of GENERATION_RANGE_FULL.
var GenerationRangeFull = GenerationRange{Start: 0, End: math.MaxUint32}

// Contains reports whether gen lies within the half-open range.
func (r GenerationRange) Contains(gen uint32) bool {
	return gen >= r.Start && gen < r.End
}

// Uint32Range is a half-open range of uint32, used by the ParentCount filter
// predicate.
type Uint32Range struct {
	Start uint32
	End   uint32
}

// Contains reports whether n lies within the half-open range.
func (r Uint32Range) Contains(n uint32) bool {
	return n >= r.Start && n < r.End
}
