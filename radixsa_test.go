// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package radixsa

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/dsnet/radixsa/internal/testutil"
)

func TestBuild(t *testing.T) {
	var vectors = []struct {
		input  string // The input text
		depth  int    // Compared prefix length, 0 for full sort
		output []int  // Expected suffix array
	}{{
		input:  "",
		output: []int{},
	}, {
		input:  "x",
		output: []int{0},
	}, {
		input:  "banana",
		output: []int{5, 3, 1, 0, 4, 2},
	}, {
		input:  "banana",
		depth:  2,
		output: []int{5, 1, 3, 0, 2, 4},
	}, {
		input:  "banana",
		depth:  3,
		output: []int{5, 1, 3, 0, 4, 2},
	}, {
		input:  "banana",
		depth:  6,
		output: []int{5, 3, 1, 0, 4, 2},
	}, {
		input:  "banana",
		depth:  100,
		output: []int{5, 3, 1, 0, 4, 2},
	}, {
		input:  "aaaa",
		depth:  1,
		output: []int{0, 1, 2, 3},
	}, {
		input:  "aaaa",
		output: []int{3, 2, 1, 0},
	}, {
		input:  "abab",
		depth:  2,
		output: []int{0, 2, 3, 1},
	}, {
		input:  "mississippi",
		output: []int{10, 7, 4, 1, 0, 9, 8, 6, 3, 5, 2},
	}, {
		input:  "\xff\x00\xff\x00",
		output: []int{3, 1, 2, 0},
	}}

	for i, v := range vectors {
		for _, w := range []Width{WidthAuto, Width32, Width64} {
			sa, err := Build([]byte(v.input), &Config{Depth: v.depth, Width: w})
			if err != nil {
				t.Errorf("test %d, %v: unexpected error: %v", i, w, err)
				continue
			}
			if got, want := sa.Wide(), w == Width64; got != want {
				t.Errorf("test %d, %v: mismatching width: got wide=%v, want wide=%v", i, w, got, want)
			}
			if diff := cmp.Diff(v.output, sa.Ints()); diff != "" {
				t.Errorf("test %d, %v: mismatching suffix array (-want +got):\n%s", i, w, diff)
			}
		}
	}
}

func TestBuildNaive(t *testing.T) {
	r := testutil.NewRand(0)
	var inputs = []struct {
		name string
		data []byte
	}{
		{"random", r.Bytes(3000)},
		{"dna", r.Text(4000, "ACGT")},
		{"binary", r.Text(2000, "\x00\x01")},
		{"zeros", make([]byte, 1500)},
		{"periodic", testutil.Periodic("abcabcabd", 2500)},
		{"repeats", testutil.Repeats(0, 4000)},
		{"resized", testutil.ResizeData([]byte("The quick brown fox jumped over the lazy dog."), 3000)},
	}

	for _, in := range inputs {
		for _, depth := range []int{0, 1, 2, 3, 5, 8, 13, 64} {
			t.Run(fmt.Sprintf("%s/depth:%d", in.name, depth), func(t *testing.T) {
				want := testutil.NaiveSuffixArray(in.data, depth)
				sa, err := Build(in.data, &Config{Depth: depth})
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if diff := cmp.Diff(want, sa.Ints()); diff != "" {
					t.Errorf("mismatching suffix array (-want +got):\n%s", diff)
				}
			})
		}
	}
}

func TestBuildWidthIdempotent(t *testing.T) {
	input := testutil.Repeats(1, 1<<14)
	for _, depth := range []int{0, 4, 7} {
		sa32, err := BuildSA[uint32](input, depth)
		if err != nil {
			t.Fatalf("depth %d, unexpected error: %v", depth, err)
		}
		sa64, err := BuildSA[uint64](input, depth)
		if err != nil {
			t.Fatalf("depth %d, unexpected error: %v", depth, err)
		}
		if len(sa32) != len(sa64) {
			t.Fatalf("depth %d, mismatching length: %d != %d", depth, len(sa32), len(sa64))
		}
		for i := range sa32 {
			if uint64(sa32[i]) != sa64[i] {
				t.Fatalf("depth %d, mismatching position at index %d: %d != %d", depth, i, sa32[i], sa64[i])
			}
		}
		if err := Verify(input, sa32, depth); err != nil {
			t.Errorf("depth %d, verify error: %v", depth, err)
		}
	}
}

func TestBuildConcurrency(t *testing.T) {
	defer func(v int) { parallelThreshold = v }(parallelThreshold)
	parallelThreshold = 1

	r := testutil.NewRand(2)
	for i, input := range [][]byte{
		testutil.Repeats(2, 1<<15),
		r.Text(1<<15, "ab"),
		make([]byte, 5000),
	} {
		for _, depth := range []int{0, 3, 16} {
			want, err := Build(input, &Config{Depth: depth})
			if err != nil {
				t.Fatalf("test %d, unexpected error: %v", i, err)
			}
			for _, workers := range []int{2, 3, 8} {
				got, err := Build(input, &Config{Depth: depth, Concurrency: workers})
				if err != nil {
					t.Fatalf("test %d, unexpected error: %v", i, err)
				}
				if diff := cmp.Diff(want.Uint32s(), got.Uint32s()); diff != "" {
					t.Errorf("test %d, depth %d, workers %d: mismatching suffix array (-want +got):\n%s", i, depth, workers, diff)
				}
			}
		}
	}
}

func TestBuildTrace(t *testing.T) {
	var got []PassStats
	sa, err := Build([]byte("aaaa"), &Config{Trace: func(st PassStats) { got = append(got, st) }})
	assert.Nil(t, err)
	assert.Equal(t, []int{3, 2, 1, 0}, sa.Ints())
	assert.Equal(t, []PassStats{
		{Pass: 1, Depth: 2, Groups: 1, Positions: 3},
		{Pass: 2, Depth: 4, Groups: 0, Positions: 0},
	}, got)

	got = nil
	_, err = Build([]byte("aaaaaaaaaa"), &Config{Depth: 3, Trace: func(st PassStats) { got = append(got, st) }})
	assert.Nil(t, err)
	if assert.Len(t, got, 2) {
		assert.Equal(t, 3, got[1].Depth)
		assert.Equal(t, 8, got[1].Positions) // Positions 0..7 all start with "aaa"
	}
}

func TestBuildErrors(t *testing.T) {
	_, err := Build([]byte("abc"), &Config{Depth: -1})
	assert.Equal(t, ErrInvalidDepth, err)

	_, err = Build([]byte("abc"), &Config{Width: Width(7)})
	assert.Equal(t, ErrInvalidWidth, err)

	_, err = BuildSA[uint64]([]byte("abc"), -2)
	assert.Equal(t, ErrInvalidDepth, err)

	sa, err := Build(nil, nil)
	assert.Nil(t, err)
	assert.Equal(t, 0, sa.Len())
}

func TestSelectWidth(t *testing.T) {
	var vectors = []struct {
		n     int64
		width Width
		wide  bool
		err   error
	}{
		{n: 0, width: WidthAuto, wide: false},
		{n: maxNarrow - 1, width: WidthAuto, wide: false},
		{n: maxNarrow, width: WidthAuto, wide: true},
		{n: maxNarrow - 1, width: Width32, wide: false},
		{n: maxNarrow, width: Width32, wide: true}, // Promoted, never truncated
		{n: maxNarrow + 1, width: Width32, wide: true},
		{n: 1, width: Width64, wide: true},
		{n: 1, width: Width(-1), err: ErrInvalidWidth},
	}

	for i, v := range vectors {
		wide, err := selectWidth(v.n, v.width)
		if err != v.err {
			t.Errorf("test %d, mismatching error: got %v, want %v", i, err, v.err)
		}
		if wide != v.wide {
			t.Errorf("test %d, mismatching width: got wide=%v, want wide=%v", i, wide, v.wide)
		}
	}
}

func TestSuffixArrayAccessors(t *testing.T) {
	sa, err := Build([]byte("banana"), &Config{Width: Width64, Depth: 2})
	assert.Nil(t, err)
	assert.True(t, sa.Wide())
	assert.Nil(t, sa.Uint32s())
	assert.Equal(t, []uint64{5, 1, 3, 0, 2, 4}, sa.Uint64s())
	assert.Equal(t, uint64(3), sa.At(2))
	assert.Equal(t, 2, sa.Depth())

	sa, err = Build([]byte("banana"), nil)
	assert.Nil(t, err)
	assert.False(t, sa.Wide())
	assert.Equal(t, []uint32{5, 3, 1, 0, 4, 2}, sa.Uint32s())
	assert.Equal(t, []uint64{5, 3, 1, 0, 4, 2}, sa.Uint64s())
	assert.Equal(t, 0, sa.Depth())
}

func FuzzBuild(f *testing.F) {
	f.Add([]byte("banana"), uint8(0))
	f.Add([]byte("aaaa"), uint8(1))
	f.Add([]byte("abracadabra"), uint8(3))
	f.Fuzz(func(t *testing.T, data []byte, depth uint8) {
		if len(data) > 1<<12 {
			return
		}
		sa32, err := BuildSA[uint32](data, int(depth))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := Verify(data, sa32, int(depth)); err != nil {
			t.Fatalf("verify error: %v", err)
		}
		sa64, err := BuildSA[uint64](data, int(depth))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i := range sa32 {
			if uint64(sa32[i]) != sa64[i] {
				t.Fatalf("mismatching position at index %d: %d != %d", i, sa32[i], sa64[i])
			}
		}
	})
}

func benchmarkBuild(b *testing.B, input []byte, conf *Config) {
	b.SetBytes(int64(len(input)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Build(input, conf); err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
	}
}

func BenchmarkBuild(b *testing.B) {
	r := testutil.NewRand(0)
	inputs := []struct {
		name string
		data []byte
	}{
		{"random", r.Bytes(1 << 20)},
		{"dna", r.Text(1<<20, "ACGT")},
		{"repeats", testutil.Repeats(0, 1<<20)},
	}
	for _, in := range inputs {
		b.Run(in.name, func(b *testing.B) { benchmarkBuild(b, in.data, nil) })
		b.Run(in.name+"/depth:12", func(b *testing.B) { benchmarkBuild(b, in.data, &Config{Depth: 12}) })
		b.Run(in.name+"/concurrency:4", func(b *testing.B) { benchmarkBuild(b, in.data, &Config{Concurrency: 4}) })
	}
}
