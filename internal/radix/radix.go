// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package radix implements a stable least-significant-digit radix sort that
// reorders a slice of values by an accompanying slice of unsigned keys.
//
// For performance reasons, this package lacks strong error checking and
// requires that the caller ensure the scratch buffers are large enough.
package radix

import "math/bits"

// Groups at or below this size are insertion sorted. The per-pass cost of
// a 256-entry histogram dominates for them.
const insertionCutoff = 16

// Key is the set of unsigned integer types that can be used as sort keys.
type Key interface {
	~uint32 | ~uint64
}

// Sort stably reorders vals in ascending order of keys, permuting keys
// alongside so that keys[i] remains the key of vals[i].
// The tmpVals and tmpKeys slices are scratch space and must be at least as
// long as keys. Values with equal keys keep their relative order.
//
// Each pass buckets on one byte of (key - min(keys)), so the number of passes
// is bounded by the spread of the keys rather than by their width.
// Passes where every key shares the same digit are skipped.
func Sort[T Key](vals, keys, tmpVals, tmpKeys []T) {
	n := len(keys)
	if len(vals) != n || len(tmpVals) < n || len(tmpKeys) < n {
		panic("radix: mismatching sizes")
	}
	if n < 2 {
		return
	}
	if n <= insertionCutoff {
		insertionSort(vals, keys)
		return
	}

	lo, hi := keys[0], keys[0]
	for _, k := range keys[1:] {
		if k < lo {
			lo = k
		}
		if k > hi {
			hi = k
		}
	}
	if lo == hi {
		return
	}

	srcV, srcK := vals, keys
	dstV, dstK := tmpVals[:n], tmpKeys[:n]
	nbits := uint(bits.Len64(uint64(hi - lo)))
	for shift := uint(0); shift < nbits; shift += 8 {
		var count [256]int
		for _, k := range srcK {
			count[byte(uint64(k-lo)>>shift)]++
		}
		if count[byte(uint64(srcK[0]-lo)>>shift)] == n {
			continue // Every key has the same digit
		}

		var sum int
		for d, c := range count {
			count[d] = sum
			sum += c
		}
		for i, k := range srcK {
			d := byte(uint64(k-lo) >> shift)
			j := count[d]
			dstV[j], dstK[j] = srcV[i], k
			count[d]++
		}
		srcV, dstV = dstV, srcV
		srcK, dstK = dstK, srcK
	}

	if &srcV[0] != &vals[0] {
		copy(vals, srcV)
		copy(keys, srcK)
	}
}

// insertionSort is a stable sort of vals by keys for short inputs.
func insertionSort[T Key](vals, keys []T) {
	for i := 1; i < len(keys); i++ {
		k, v := keys[i], vals[i]
		j := i
		for ; j > 0 && keys[j-1] > k; j-- {
			keys[j], vals[j] = keys[j-1], vals[j-1]
		}
		keys[j], vals[j] = k, v
	}
}
