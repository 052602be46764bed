// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bench compares the performance of various suffix array
// construction implementations and cross-checks their output.
package bench

import (
	"fmt"
	"os"
	"path"
	"regexp"
	"runtime"
	"strings"
	"testing"

	strconv "github.com/dsnet/golib/unitconv"
	"github.com/dsnet/radixsa"
	"github.com/dsnet/radixsa/internal/testutil"
)

// Positions is a constructed suffix array.
type Positions interface {
	Len() int
	At(i int) uint64
}

// intArray adapts positions held in a plain slice.
type intArray []int

func (a intArray) Len() int        { return len(a) }
func (a intArray) At(i int) uint64 { return uint64(a[i]) }

// Builder constructs the suffix array of text, comparing suffixes on their
// first depth bytes or entirely if depth is zero. Suffixes with equal compared
// prefixes must be ordered by ascending position.
type Builder func(text []byte, depth int) (Positions, error)

var (
	Builders map[string]Builder

	// List of search paths for test files.
	Paths []string

	// Generators produce synthetic inputs of a given size. An input file name
	// matching a generator is generated instead of loaded.
	Generators = map[string]func(n int) []byte{
		"random":   func(n int) []byte { return testutil.NewRand(0).Bytes(n) },
		"dna":      func(n int) []byte { return testutil.NewRand(0).Text(n, "ACGT") },
		"repeats":  func(n int) []byte { return testutil.Repeats(0, n) },
		"periodic": func(n int) []byte { return testutil.Periodic("abaababa", n) },
		"zeros":    func(n int) []byte { return make([]byte, n) },
	}
)

func RegisterBuilder(name string, b Builder) {
	if Builders == nil {
		Builders = make(map[string]Builder)
	}
	Builders[name] = b
}

// BenchmarkBuilder benchmarks a single builder on the given input data using
// the selected depth and reports the result.
func BenchmarkBuilder(input []byte, b Builder, depth int) testing.BenchmarkResult {
	return testing.Benchmark(func(tb *testing.B) {
		tb.StopTimer()
		if b == nil {
			tb.Fatalf("unexpected error: nil Builder")
		}
		runtime.GC()
		tb.StartTimer()
		for i := 0; i < tb.N; i++ {
			if _, err := b(input, depth); err != nil {
				tb.Fatalf("unexpected error: %v", err)
			}
			tb.SetBytes(int64(len(input)))
		}
	})
}

type Result struct {
	R   float64 // Rate (MB/s)
	D   float64 // Delta ratio relative to primary benchmark
	Err error   // Non-nil if the output disagrees with the primary builder
}

// BenchmarkSuite runs multiple benchmarks across all builder
// implementations, files, depths, and sizes.
// The first builder is the reference: its output is verified and every other
// builder's output must match it exactly before that builder is timed.
//
// The values returned have the following structure:
//
//	results: [len(files)*len(depths)*len(sizes)][len(builders)]Result
//	names:   [len(files)*len(depths)*len(sizes)]string
func BenchmarkSuite(builders, files []string, depths, sizes []int, tick func()) (results [][]Result, names []string) {
	// Allocate buffers for the result.
	d0 := len(files) * len(depths) * len(sizes)
	d1 := len(builders)
	results = make([][]Result, d0)
	for i := range results {
		results[i] = make([]Result, d1)
	}
	names = make([]string, d0)

	// Run the benchmark for every builder, file, depth, and size.
	var i int
	for _, f := range files {
		for _, d := range depths {
			for _, n := range sizes {
				b, err := LoadInput(f, n)
				names[i] = getName(f, d, len(b))
				var want Positions
				for j, c := range builders {
					if tick != nil {
						tick()
					}
					if err != nil {
						results[i][j].Err = err
						continue
					}
					got, err := Builders[c](b, d)
					if err == nil {
						if j == 0 {
							want, err = got, verifyAnswer(b, got, d)
						} else if want != nil {
							err = compareAnswers(want, got)
						}
					}
					if err != nil {
						results[i][j].Err = fmt.Errorf("%s: %s: %w", names[i], c, err)
						continue
					}
					results[i][j] = benchmarkRate(b, Builders[c], d)
					results[i][j].D = results[i][j].R / results[i][0].R
				}
				i++
			}
		}
	}
	return results, names
}

func benchmarkRate(input []byte, b Builder, depth int) Result {
	result := BenchmarkBuilder(input, b, depth)
	if result.N == 0 {
		return Result{}
	}
	us := (float64(result.T.Nanoseconds()) / 1e3) / float64(result.N)
	rate := float64(result.Bytes) / us
	return Result{R: rate}
}

// LoadInput returns n bytes of the named input, which is either the name of
// a generator or a file to be searched for in Paths.
func LoadInput(name string, n int) ([]byte, error) {
	if gen, ok := Generators[name]; ok {
		if n < 0 {
			n = 1 << 20
		}
		return gen(n), nil
	}
	return testutil.LoadFile(getPath(name), n)
}

func verifyAnswer(input []byte, p Positions, depth int) error {
	vals := make([]uint64, p.Len())
	for i := range vals {
		vals[i] = p.At(i)
	}
	return radixsa.Verify(input, vals, depth)
}

// compareAnswers reports the first rank at which got differs from want.
func compareAnswers(want, got Positions) error {
	if want.Len() != got.Len() {
		return fmt.Errorf("mismatching length: got %d, want %d", got.Len(), want.Len())
	}
	for i := 0; i < want.Len(); i++ {
		if want.At(i) != got.At(i) {
			return fmt.Errorf("mismatching position at rank %d: got %d, want %d", i, got.At(i), want.At(i))
		}
	}
	return nil
}

func getPath(file string) string {
	if path.IsAbs(file) {
		return file
	}
	for _, p := range Paths {
		p = path.Join(p, file)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return file
}

func getName(f string, d, n int) string {
	var sn string
	switch n {
	case 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9, 1e10, 1e11, 1e12:
		s := fmt.Sprintf("%e", float64(n))
		re := regexp.MustCompile("\\.0*e\\+0*")
		sn = re.ReplaceAllString(s, "e")
	default:
		s := strconv.FormatPrefix(float64(n), strconv.Base1024, 2)
		sn = strings.Replace(s, ".00", "", -1)
	}
	return fmt.Sprintf("%s:%d:%s", path.Base(f), d, sn)
}
