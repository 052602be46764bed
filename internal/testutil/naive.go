// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package testutil

import (
	"bytes"
	"sort"
)

// NaiveSuffixArray sorts all suffixes of text by direct comparison.
// If depth > 0, only the first depth bytes of each suffix are compared and
// ties are broken by ascending position.
// It runs in O(n^2 log n) worst case and is only meant for small inputs.
func NaiveSuffixArray(text []byte, depth int) []int {
	sa := make([]int, len(text))
	for i := range sa {
		sa[i] = i
	}
	sort.SliceStable(sa, func(i, j int) bool {
		return bytes.Compare(Prefix(text, sa[i], depth), Prefix(text, sa[j], depth)) < 0
	})
	return sa
}

// Prefix returns the suffix of text starting at pos, truncated to depth bytes
// if depth > 0.
func Prefix(text []byte, pos, depth int) []byte {
	s := text[pos:]
	if depth > 0 && len(s) > depth {
		s = s[:depth]
	}
	return s
}
