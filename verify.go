// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package radixsa

import (
	"bytes"
	"fmt"
)

// Verify checks that sa is the suffix array of text when comparing suffixes
// on their first depth bytes, or entirely if depth is zero. It checks that
// sa is a permutation of the positions of text, that adjacent suffixes are
// in non-decreasing order, and that suffixes with equal compared prefixes
// appear in ascending position order.
//
// Verification compares adjacent suffixes byte by byte, so it takes time
// proportional to the total length of their common prefixes.
func Verify[T Index](text []byte, sa []T, depth int) error {
	if depth < 0 {
		return ErrInvalidDepth
	}
	n := len(text)
	if len(sa) != n {
		return Error(fmt.Sprintf("length mismatch: got %d positions, want %d", len(sa), n))
	}

	seen := make([]uint64, (n+63)/64)
	for i, p := range sa {
		if uint64(p) >= uint64(n) {
			return Error(fmt.Sprintf("position %d out of range at index %d", uint64(p), i))
		}
		if seen[p/64]&(1<<(p%64)) != 0 {
			return Error(fmt.Sprintf("duplicate position %d at index %d", uint64(p), i))
		}
		seen[p/64] |= 1 << (p % 64)
	}

	for i := 1; i < n; i++ {
		p, q := int(sa[i-1]), int(sa[i])
		switch c := bytes.Compare(prefix(text, p, depth), prefix(text, q, depth)); {
		case c > 0:
			return Error(fmt.Sprintf("suffixes out of order at index %d: %d before %d", i, p, q))
		case c == 0 && p > q:
			return Error(fmt.Sprintf("tied suffixes out of position order at index %d: %d before %d", i, p, q))
		}
	}
	return nil
}

func prefix(text []byte, pos, depth int) []byte {
	s := text[pos:]
	if depth > 0 && len(s) > depth {
		s = s[:depth]
	}
	return s
}
