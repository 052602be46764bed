// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package radixsa

// initialRanking orders every position by its first byte using a counting
// sort over the 256 byte values.
//
// On return, sa holds the positions grouped by byte value, in ascending
// position order within each group, and rank[i] is the index in sa at which
// the group of text[i] begins. The groups of two or more positions are
// appended to groups and returned. The end-of-text sentinel never needs a
// bucket of its own since no position starts past the end.
func initialRanking[T Index](text []byte, sa, rank []T, groups []span[T]) []span[T] {
	var bucket [256]int
	for _, c := range text {
		bucket[c]++
	}

	var sum int
	for c, cnt := range bucket {
		if cnt > 1 {
			groups = append(groups, span[T]{T(sum), T(sum + cnt)})
		}
		bucket[c] = sum
		sum += cnt
	}

	start := bucket
	for i, c := range text {
		sa[bucket[c]] = T(i)
		rank[i] = T(start[c])
		bucket[c]++
	}
	return groups
}
