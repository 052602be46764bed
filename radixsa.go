// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package radixsa constructs suffix arrays using prefix doubling driven by
// radix sort.
//
// The construction starts by bucketing every position by its first byte and
// then repeatedly refines the buckets that still hold more than one position.
// Each pass doubles the length of the compared prefix by sorting a bucket on
// the rank of the position that far ahead, using a radix sort instead of
// comparisons. Buckets that shrink to a single position are resolved and never
// visited again, so later passes only touch the repetitive regions of the text.
//
// Besides full suffix sorting, the package supports L-mer sorting where
// suffixes are only compared on their first Depth bytes. Suffixes whose first
// Depth bytes are equal are ordered by ascending position.
//
// Positions are stored as uint32 when the text is shorter than 2 GiB and as
// uint64 otherwise, or when 64-bit indexes are requested.
package radixsa

import "math"

// Width selects the integer type of the suffix array positions.
type Width int

const (
	// WidthAuto uses 32-bit positions when the text is short enough.
	WidthAuto Width = iota
	// Width32 requests 32-bit positions. Texts too large to be addressed
	// by them are promoted to 64-bit positions.
	Width32
	// Width64 forces 64-bit positions.
	Width64
)

func (w Width) String() string {
	switch w {
	case WidthAuto:
		return "auto"
	case Width32:
		return "32-bit"
	case Width64:
		return "64-bit"
	default:
		return "invalid"
	}
}

// maxNarrow is the smallest text length that requires 64-bit positions.
// Internal offsets reach up to twice the text length, so only half of the
// uint32 range is usable.
const maxNarrow = 1 << 31

// Config configures the construction of a suffix array.
// The zero value performs a full suffix sort with automatic width selection.
type Config struct {
	// Depth is the number of leading bytes each suffix is compared on.
	// Zero sorts entire suffixes. Depths of at least the text length
	// behave like zero.
	Depth int

	// Width selects the integer type of the positions.
	Width Width

	// Concurrency is the number of goroutines that may refine independent
	// groups of a pass at the same time. Values below 2 run sequentially.
	// The result does not depend on this setting.
	Concurrency int

	// Trace, if non-nil, is called after every refinement pass.
	Trace func(PassStats)
}

// SuffixArray is a permutation of the positions of a text in suffix order.
// It holds either 32-bit or 64-bit positions.
type SuffixArray struct {
	sa32  []uint32
	sa64  []uint64
	depth int
}

// Build constructs the suffix array of text according to conf, which may be
// nil. The text is not modified and is not retained by the result.
func Build(text []byte, conf *Config) (sa *SuffixArray, err error) {
	defer errRecover(&err)

	var c Config
	if conf != nil {
		c = *conf
	}
	if c.Depth < 0 {
		return nil, ErrInvalidDepth
	}
	wide, err := selectWidth(int64(len(text)), c.Width)
	if err != nil {
		return nil, err
	}
	if c.Depth >= len(text) {
		c.Depth = 0
	}

	sa = &SuffixArray{depth: c.Depth}
	if wide {
		sa.sa64 = build[uint64](text, &c)
	} else {
		sa.sa32 = build[uint32](text, &c)
	}
	return sa, nil
}

// BuildSA constructs the suffix array of text directly in the index type T,
// comparing suffixes on at most depth bytes, or entirely if depth is zero.
// It reports ErrTooLarge if text is too long to be addressed by T.
func BuildSA[T Index](text []byte, depth int) (sa []T, err error) {
	defer errRecover(&err)
	if depth < 0 {
		return nil, ErrInvalidDepth
	}
	if uint64(len(text)) > uint64(^T(0))>>1 {
		return nil, ErrTooLarge
	}
	if depth >= len(text) {
		depth = 0
	}
	return build[T](text, &Config{Depth: depth}), nil
}

// selectWidth reports whether a text of n bytes needs 64-bit positions.
func selectWidth(n int64, w Width) (wide bool, err error) {
	switch w {
	case WidthAuto, Width32:
		return n >= maxNarrow, nil
	case Width64:
		return true, nil
	default:
		return false, ErrInvalidWidth
	}
}

// Len reports the number of positions in the suffix array.
func (sa *SuffixArray) Len() int {
	if sa.sa64 != nil {
		return len(sa.sa64)
	}
	return len(sa.sa32)
}

// Wide reports whether the positions are stored as 64-bit integers.
func (sa *SuffixArray) Wide() bool { return sa.sa64 != nil }

// Depth reports the number of bytes suffixes were compared on,
// where zero means entire suffixes.
func (sa *SuffixArray) Depth() int { return sa.depth }

// At returns the position at index i.
func (sa *SuffixArray) At(i int) uint64 {
	if sa.sa64 != nil {
		return sa.sa64[i]
	}
	return uint64(sa.sa32[i])
}

// Uint32s returns the positions if they are stored as 32-bit integers,
// and nil otherwise. The caller owns the returned slice.
func (sa *SuffixArray) Uint32s() []uint32 { return sa.sa32 }

// Uint64s returns the positions as 64-bit integers. If the positions are
// stored as 32-bit integers, they are widened into a new slice.
func (sa *SuffixArray) Uint64s() []uint64 {
	if sa.sa64 != nil {
		return sa.sa64
	}
	sa64 := make([]uint64, len(sa.sa32))
	for i, p := range sa.sa32 {
		sa64[i] = uint64(p)
	}
	return sa64
}

// Ints returns the positions as ints, or nil if some position does not fit.
func (sa *SuffixArray) Ints() []int {
	out := make([]int, sa.Len())
	for i := range out {
		p := sa.At(i)
		if p > math.MaxInt {
			return nil
		}
		out[i] = int(p)
	}
	return out
}
