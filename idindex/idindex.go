// Package idindex implements a sorted-vector prefix index: given a set of
// (key, value) pairs where keys are fixed- or variable-width byte
// identifiers, it answers "what value(s) does this hex prefix resolve to"
// and "how many hex digits of this key are needed to uniquely identify it".
//
// It has no dependency on the revset package; it is a reusable data
// structure in the same spirit as a generic container.
package idindex

import (
	"bytes"
	"sort"
)

// Key is any fixed- or variable-width identifier that can be compared and
// prefix-matched as raw bytes.
type Key interface {
	AsBytes() []byte
}

// Entry is one (key, value) pair stored in an Index.
type Entry[K Key, V any] struct {
	Key   K
	Value V
}

// Index is a vector of Entry sorted by Key's raw byte representation.
// Duplicate keys are allowed; each key may map to more than one value.
type Index[K Key, V any] struct {
	entries []Entry[K, V]
}

// FromPairs builds an Index from pairs, sorted by key. The input slice is
// not mutated.
func FromPairs[K Key, V any](pairs []Entry[K, V]) *Index[K, V] {
	sorted := make([]Entry[K, V], len(pairs))
	copy(sorted, pairs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i].Key.AsBytes(), sorted[j].Key.AsBytes()) < 0
	})
	return &Index[K, V]{entries: sorted}
}

// Len returns the number of stored (key, value) pairs.
func (idx *Index[K, V]) Len() int {
	return len(idx.entries)
}

// ResolvePrefixRange returns every entry whose key matches prefix, in key
// order.
func (idx *Index[K, V]) ResolvePrefixRange(prefix HexPrefix) []Entry[K, V] {
	start := idx.lowerBound(prefix)
	var out []Entry[K, V]
	for i := start; i < len(idx.entries); i++ {
		if !prefix.Matches(idx.entries[i].Key) {
			break
		}
		out = append(out, idx.entries[i])
	}
	return out
}

// MatchKind classifies the result of ResolvePrefixWith.
type MatchKind int

const (
	NoMatch MatchKind = iota
	SingleMatch
	AmbiguousMatch
)

// PrefixResolution is the result of resolving a prefix against an Index.
type PrefixResolution[V any] struct {
	Kind   MatchKind
	Values []V
}

// ResolvePrefixWith resolves prefix against the index. NoMatch if the range
// is empty. SingleMatch if every entry in the range shares the same key
// (their values are mapped through mapFn). AmbiguousMatch if the range
// contains more than one distinct key.
func (idx *Index[K, V]) ResolvePrefixWith(prefix HexPrefix, mapFn func(V) V) PrefixResolution[V] {
	rng := idx.ResolvePrefixRange(prefix)
	if len(rng) == 0 {
		return PrefixResolution[V]{Kind: NoMatch}
	}
	first := rng[0].Key.AsBytes()
	values := make([]V, 0, len(rng))
	for _, e := range rng {
		if !bytes.Equal(e.Key.AsBytes(), first) {
			return PrefixResolution[V]{Kind: AmbiguousMatch}
		}
		values = append(values, mapFn(e.Value))
	}
	return PrefixResolution[V]{Kind: SingleMatch, Values: values}
}

// ShortestUniquePrefixLen returns the minimum number of leading hex digits
// of key that no other distinct key in the index shares. Returns 0 for an
// empty index.
func (idx *Index[K, V]) ShortestUniquePrefixLen(key K) int {
	if len(idx.entries) == 0 {
		return 0
	}
	kb := key.AsBytes()
	i := sort.Search(len(idx.entries), func(j int) bool {
		return bytes.Compare(idx.entries[j].Key.AsBytes(), kb) >= 0
	})

	best := 0
	if i > 0 {
		if n := commonHexLen(kb, idx.entries[i-1].Key.AsBytes()); n > best {
			best = n
		}
	}

	j := i
	for j < len(idx.entries) && bytes.Equal(idx.entries[j].Key.AsBytes(), kb) {
		j++
	}
	if j < len(idx.entries) {
		if n := commonHexLen(kb, idx.entries[j].Key.AsBytes()); n > best {
			best = n
		}
	}

	return best + 1
}

// lowerBound returns the first index whose (prefix-masked) key is not less
// than prefix's own bytes — the start of the candidate range for prefix.
func (idx *Index[K, V]) lowerBound(prefix HexPrefix) int {
	return sort.Search(len(idx.entries), func(i int) bool {
		return bytes.Compare(maskedPrefixBytes(idx.entries[i].Key.AsBytes(), prefix), prefix.bytes) >= 0
	})
}

// commonHexLen counts the number of leading nibbles shared between a and b.
func commonHexLen(a, b []byte) int {
	count := 0
	for i := 0; ; i++ {
		byteIdx := i / 2
		if byteIdx >= len(a) || byteIdx >= len(b) {
			break
		}
		var na, nb byte
		if i%2 == 0 {
			na, nb = a[byteIdx]>>4, b[byteIdx]>>4
		} else {
			na, nb = a[byteIdx]&0x0f, b[byteIdx]&0x0f
		}
		if na != nb {
			break
		}
		count++
	}
	return count
}
