// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build !no_qsort_lib

package bench

import "sort"

func init() {
	RegisterBuilder("qsort",
		func(text []byte, depth int) (Positions, error) {
			return intArray(qsortDoubling(text, depth)), nil
		})
}

// qsortDoubling is prefix doubling where every pass re-sorts all positions
// with a comparison sort on (rank, rank at offset, position).
// It serves as the baseline that the radix sorter is measured against.
func qsortDoubling(text []byte, depth int) []int {
	n := len(text)
	sa := make([]int, n)
	rank := make([]int, n)
	next := make([]int, n)
	if n == 0 {
		return sa
	}
	if depth >= n {
		depth = 0
	}

	// Ranks start at 1 so that 0 sorts references past the end first.
	for i := range sa {
		sa[i], rank[i] = i, int(text[i])+1
	}
	second := func(i, h int) int {
		if i+h < n {
			return rank[i+h]
		}
		return 0
	}
	sort.Slice(sa, func(a, b int) bool {
		i, j := sa[a], sa[b]
		if rank[i] != rank[j] {
			return rank[i] < rank[j]
		}
		return i < j
	})

	for d := 1; depth == 0 || d < depth; {
		h := d
		if depth > 0 && depth-d < h {
			h = depth - d
		}
		sort.Slice(sa, func(a, b int) bool {
			i, j := sa[a], sa[b]
			if rank[i] != rank[j] {
				return rank[i] < rank[j]
			}
			if ki, kj := second(i, h), second(j, h); ki != kj {
				return ki < kj
			}
			return i < j
		})

		classes := 1
		next[sa[0]] = classes
		for x := 1; x < n; x++ {
			i, j := sa[x-1], sa[x]
			if rank[i] != rank[j] || second(i, h) != second(j, h) {
				classes++
			}
			next[j] = classes
		}
		rank, next = next, rank
		d += h
		if classes == n {
			break
		}
	}
	return sa
}
