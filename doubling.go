// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package radixsa

import (
	"golang.org/x/sync/errgroup"

	"github.com/dsnet/radixsa/internal/radix"
)

// parallelThreshold is the number of unresolved positions in a pass below
// which the pass is refined on the calling goroutine regardless of the
// configured concurrency.
var parallelThreshold = 1 << 15

// PassStats describes the state of a construction after one refinement pass.
type PassStats struct {
	Pass      int // Pass number, starting at 1
	Depth     int // Length of the compared prefix after the pass
	Groups    int // Number of unresolved groups left
	Positions int // Number of positions in the unresolved groups
}

// scratch is radix sort working space, grown to the largest group seen.
type scratch[T Index] struct {
	sa, keys []T
}

func (b *scratch[T]) get(n int) ([]T, []T) {
	if cap(b.sa) < n {
		b.sa = make([]T, n)
		b.keys = make([]T, n)
	}
	return b.sa[:n], b.keys[:n]
}

// sorter holds the working state of a single construction.
//
// The sa array keeps the positions in order of their current rank, and every
// unresolved group is a contiguous run of sa. The rank of a position is the
// index in sa at which its group begins, so ranks stay globally consistent
// when a group is split: the new sub-groups start inside the old range.
type sorter[T Index] struct {
	n       T
	sa      []T // Positions in rank order
	rank    []T // Position to the start of its group in sa
	keys    []T // Second sort key of each sa entry for the current pass
	spare   []span[T]
	scratch []scratch[T] // One per worker
}

func build[T Index](text []byte, conf *Config) []T {
	n := len(text)
	sa := make([]T, n)
	if n == 0 {
		return sa
	}

	workers := conf.Concurrency
	if workers < 1 {
		workers = 1
	}
	s := &sorter[T]{
		n:       T(n),
		sa:      sa,
		rank:    make([]T, n),
		keys:    make([]T, n),
		scratch: make([]scratch[T], workers),
	}

	groups := initialRanking(text, s.sa, s.rank, nil)
	limit := conf.Depth
	for pass, depth := 1, 1; len(groups) > 0 && (limit == 0 || depth < limit); pass++ {
		// In bounded mode the final pass uses a shorter offset so that the
		// refinement lands exactly on the requested depth.
		h := depth
		if limit > 0 && limit-depth < h {
			h = limit - depth
		}
		groups = s.refine(groups, h)
		depth += h

		if conf.Trace != nil {
			conf.Trace(stats(pass, depth, groups))
		}
		if depth >= n && len(groups) > 0 {
			// Distinct suffixes differ in length, so they are always
			// distinguished once the whole text has been compared.
			panic(Error("unresolved suffixes past the end of text"))
		}
	}
	return s.sa
}

// refine splits every group by the rank of the position h bytes further on,
// extending the compared prefix of those groups by h bytes.
// It returns the groups that are still unresolved.
func (s *sorter[T]) refine(groups []span[T], h int) []span[T] {
	// Gather all second keys before any rank is rewritten. References past
	// the end of text use the sentinel 0, which is below every real rank.
	off := T(h)
	var total int
	for _, g := range groups {
		for j := g.lo; j < g.hi; j++ {
			if p := s.sa[j] + off; p < s.n {
				s.keys[j] = s.rank[p] + 1
			} else {
				s.keys[j] = 0
			}
		}
		total += int(g.hi - g.lo)
	}

	next := s.spare[:0]
	if len(s.scratch) > 1 && len(groups) > 1 && total >= parallelThreshold {
		next = s.refineParallel(groups, total, next)
	} else {
		next = s.refineGroups(groups, &s.scratch[0], next)
	}
	s.spare = groups
	return next
}

func (s *sorter[T]) refineGroups(groups []span[T], buf *scratch[T], next []span[T]) []span[T] {
	for _, g := range groups {
		lo, hi := int(g.lo), int(g.hi)
		tv, tk := buf.get(hi - lo)
		radix.Sort(s.sa[lo:hi], s.keys[lo:hi], tv, tk)
		next = s.split(lo, hi, next)
	}
	return next
}

// refineParallel refines contiguous batches of groups on separate goroutines.
// Each group only touches its own range of sa and keys and the ranks of its
// own positions, and all keys were gathered beforehand, so batches never
// observe each other's writes.
func (s *sorter[T]) refineParallel(groups []span[T], total int, next []span[T]) []span[T] {
	batches := partition(groups, total, len(s.scratch))
	results := make([][]span[T], len(batches))

	var eg errgroup.Group
	for i, batch := range batches {
		i, batch := i, batch
		eg.Go(func() (err error) {
			defer errRecover(&err)
			results[i] = s.refineGroups(batch, &s.scratch[i], nil)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		panic(err)
	}
	for _, r := range results {
		next = append(next, r...)
	}
	return next
}

// split assigns new ranks to the sorted group sa[lo:hi] and appends the
// sub-groups of two or more equal keys to next. Sub-groups of size one are
// resolved and dropped from all later passes.
func (s *sorter[T]) split(lo, hi int, next []span[T]) []span[T] {
	start := lo
	for j := lo + 1; j <= hi; j++ {
		if j < hi && s.keys[j] == s.keys[start] {
			continue
		}
		for _, p := range s.sa[start:j] {
			s.rank[p] = T(start)
		}
		if j-start > 1 {
			next = append(next, span[T]{T(start), T(j)})
		}
		start = j
	}
	return next
}

// partition cuts groups into at most parts contiguous batches holding
// roughly the same number of positions.
func partition[T Index](groups []span[T], total, parts int) [][]span[T] {
	target := (total + parts - 1) / parts
	var batches [][]span[T]
	var size, start int
	for i, g := range groups {
		size += int(g.hi - g.lo)
		if size >= target && len(batches) < parts-1 {
			batches = append(batches, groups[start:i+1])
			start, size = i+1, 0
		}
	}
	if start < len(groups) {
		batches = append(batches, groups[start:])
	}
	return batches
}

func stats[T Index](pass, depth int, groups []span[T]) PassStats {
	st := PassStats{Pass: pass, Depth: depth, Groups: len(groups)}
	for _, g := range groups {
		st.Positions += int(g.hi - g.lo)
	}
	return st
}
