// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/dsnet/radixsa/internal/testutil"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

// TestBuilders checks every registered builder against direct comparison
// sorting of the suffixes on each generated input.
func TestBuilders(t *testing.T) {
	var names []string
	for name := range Builders {
		names = append(names, name)
	}
	sort.Strings(names)
	assert.Subset(t, names, []string{"qsort", "radix32", "radix64", "radixpar"})

	var gens []string
	for name := range Generators {
		gens = append(gens, name)
	}
	sort.Strings(gens)

	for _, name := range names {
		name := name
		t.Run(fmt.Sprintf("Builder:%v", name), func(t *testing.T) {
			t.Parallel()
			for _, g := range gens {
				for _, n := range []int{0, 1, 2, 97, 1500} {
					input, err := LoadInput(g, n)
					if err != nil {
						t.Fatalf("%s:%d: unexpected LoadInput error: %v", g, n, err)
					}
					for _, d := range []int{0, 1, 3, 16, 2000} {
						got, err := Builders[name](input, d)
						if err != nil {
							t.Errorf("%s: unexpected error: %v", getName(g, d, n), err)
							continue
						}
						want := testutil.NaiveSuffixArray(input, d)
						gotInts := make([]int, got.Len())
						for i := range gotInts {
							gotInts[i] = int(got.At(i))
						}
						if diff := cmp.Diff(want, gotInts); diff != "" {
							t.Errorf("%s: mismatching suffix array (-want +got):\n%s", getName(g, d, n), diff)
						}
					}
				}
			}
		})
	}
}

func TestCompareAnswers(t *testing.T) {
	vectors := []struct {
		want, got []int
		fail      bool
	}{
		{want: nil, got: nil},
		{want: []int{2, 0, 1}, got: []int{2, 0, 1}},
		{want: []int{2, 0, 1}, got: []int{2, 1, 0}, fail: true},
		{want: []int{2, 0, 1}, got: []int{2, 0}, fail: true},
	}
	for i, v := range vectors {
		err := compareAnswers(intArray(v.want), intArray(v.got))
		if fail := err != nil; fail != v.fail {
			t.Errorf("test %d, error mismatch: got %v, want fail %v", i, err, v.fail)
		}
	}
	err := compareAnswers(intArray{5, 3, 1}, intArray{5, 1, 3})
	assert.EqualError(t, err, "mismatching position at rank 1: got 1, want 3")
}

func TestGetName(t *testing.T) {
	vectors := []struct {
		file  string
		depth int
		size  int
		name  string
	}{
		{"twain.txt", 0, 1e6, "twain.txt:0:1e6"},
		{"/data/chr1.fa", 32, 1e4, "chr1.fa:32:1e4"},
		{"random", 16, 1 << 20, "random:16:1Mi"},
		{"zeros", 0, 1536, "zeros:0:1.50Ki"},
	}
	for i, v := range vectors {
		if got := getName(v.file, v.depth, v.size); got != v.name {
			t.Errorf("test %d, getName() = %q, want %q", i, got, v.name)
		}
	}
}

func TestLoadInput(t *testing.T) {
	for name := range Generators {
		b, err := LoadInput(name, 1000)
		assert.NoError(t, err, name)
		assert.Len(t, b, 1000, name)
	}

	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "abc.txt"), []byte("abc"), 0664))
	Paths = []string{dir}
	defer func() { Paths = nil }()

	b, err := LoadInput("abc.txt", 7)
	assert.NoError(t, err)
	assert.Len(t, b, 7)
	b, err = LoadInput("abc.txt", -1)
	assert.NoError(t, err)
	assert.Equal(t, "abc", string(b))

	_, err = LoadInput("missing.txt", 10)
	assert.True(t, errors.Is(err, os.ErrNotExist), "got %v", err)
}

func TestBenchmarkSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping timed benchmarks in short mode")
	}
	RegisterBuilder("reversed", func(text []byte, depth int) (Positions, error) {
		p, err := Builders["qsort"](text, depth)
		if err != nil {
			return nil, err
		}
		a := make(intArray, p.Len())
		for i := range a {
			a[len(a)-1-i] = int(p.At(i))
		}
		return a, nil
	})
	defer delete(Builders, "reversed")

	var ticks int
	results, names := BenchmarkSuite(
		[]string{"qsort", "radix32", "reversed"},
		[]string{"repeats", "missing.bin"}, []int{0}, []int{4096},
		func() { ticks++ })

	assert.Equal(t, 6, ticks)
	if assert.Len(t, names, 2) {
		assert.Equal(t, "repeats:0:4Ki", names[0])
	}
	if assert.Len(t, results, 2) {
		assert.NoError(t, results[0][0].Err)
		assert.NoError(t, results[0][1].Err)
		assert.Greater(t, results[0][1].R, 0.0)
		assert.Error(t, results[0][2].Err)
		for _, r := range results[1] {
			assert.Error(t, r.Err)
		}
	}
}
