// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Benchmark tool to compare performance between multiple suffix array
// construction implementations. Individual implementations are referred
// to as builders. The first builder is the reference that every other
// builder's output is checked against.
//
// Example usage:
//
//	$ radixsa-bench \
//		--builders qsort,radix32,radixpar \
//		--files    repeats,twain.txt      \
//		--depths   0,16                   \
//		--sizes    1e4,1e5,1e6
//
//	BENCHMARK: build
//	        BENCHMARK        | QSORT MB/S | DELTA | RADIX32 MB/S | DELTA  | RADIXPAR MB/S | DELTA
//	  -----------------------+------------+-------+--------------+--------+---------------+---------
//	    repeats:0:1e4        |       2.51 | 1.00x |        41.77 | 16.64x |         40.93 | 16.31x
//	    ...
package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	strconv "github.com/dsnet/golib/unitconv"
	"github.com/dsnet/radixsa/internal/tool/bench"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

const (
	defaultFiles  = "repeats,random,dna,zeros"
	defaultDepths = "0,16"
	defaultSizes  = "1e4,1e5,1e6"
)

// refBuilder is always listed first when present, since it is the simplest
// implementation to trust.
const refBuilder = "qsort"

func defaultBuilders() string {
	var s []string
	hasRef := false
	for k := range bench.Builders {
		if k == refBuilder {
			hasRef = true
			continue
		}
		s = append(s, k)
	}
	sort.Strings(s)
	if hasRef {
		s = append([]string{refBuilder}, s...)
	}
	return strings.Join(s, ",")
}

func main() {
	log := logrus.New()
	if err := newApp(os.Stdout, log).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(stdout io.Writer, log *logrus.Logger) *cli.App {
	return &cli.App{
		Name:      "radixsa-bench",
		Usage:     "compare suffix array builders",
		Writer:    stdout,
		ErrWriter: log.Out,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "builders", Value: defaultBuilders(), Usage: "list of builders to benchmark; the first is the reference"},
			&cli.StringFlag{Name: "paths", Usage: "list of paths to search for test files"},
			&cli.StringFlag{Name: "files", Value: defaultFiles, Usage: "list of input files or generators to benchmark"},
			&cli.StringFlag{Name: "depths", Value: defaultDepths, Usage: "list of depths to benchmark (0 sorts entire suffixes)"},
			&cli.StringFlag{Name: "sizes", Value: defaultSizes, Usage: "list of input sizes to benchmark"},
		},
		HideHelpCommand: true,
		Action: func(c *cli.Context) error {
			return run(c, log)
		},
	}
}

var sep = regexp.MustCompile("[,:]")

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return sep.Split(s, -1)
}

func parseInts(s, what string) ([]int, error) {
	var vals []int
	for _, f := range splitList(s) {
		nf, err := strconv.ParsePrefix(f, strconv.AutoParse)
		if err != nil || nf < 0 || nf != math.Trunc(nf) {
			return nil, fmt.Errorf("invalid %s %q", what, f)
		}
		vals = append(vals, int(nf))
	}
	if len(vals) == 0 {
		return nil, fmt.Errorf("no %ss specified", what)
	}
	return vals, nil
}

func run(c *cli.Context, log *logrus.Logger) error {
	builders := splitList(c.String("builders"))
	for _, b := range builders {
		if _, ok := bench.Builders[b]; !ok {
			return fmt.Errorf("unknown builder %q", b)
		}
	}
	if len(builders) == 0 {
		return fmt.Errorf("no builders specified")
	}
	files := splitList(c.String("files"))
	if len(files) == 0 {
		return fmt.Errorf("no files specified")
	}
	depths, err := parseInts(c.String("depths"), "depth")
	if err != nil {
		return err
	}
	sizes, err := parseInts(c.String("sizes"), "size")
	if err != nil {
		return err
	}
	bench.Paths = splitList(c.String("paths"))

	ts := time.Now()
	w := c.App.Writer
	fmt.Fprintf(w, "BENCHMARK: build\n")

	// Progress ticker.
	var cnt int
	total := len(builders) * len(files) * len(depths) * len(sizes)
	tick := func() {
		cnt++
		log.WithFields(logrus.Fields{"done": cnt, "total": total}).Debug("benchmarking")
	}
	results, names := bench.BenchmarkSuite(builders, files, depths, sizes, tick)
	for _, row := range results {
		for _, r := range row {
			if r.Err != nil {
				log.Warn(r.Err)
			}
		}
	}
	printResults(w, results, names, builders)
	fmt.Fprintf(w, "RUNTIME: %v\n", time.Since(ts))
	return nil
}

func printResults(w io.Writer, results [][]bench.Result, names, builders []string) {
	header := []string{"benchmark"}
	for _, b := range builders {
		header = append(header, b+" MB/s", "delta")
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetBorder(false)
	for j, row := range results {
		cells := make([]string, 1+2*len(builders))
		cells[0] = names[j]
		for i, r := range row {
			switch {
			case r.Err != nil:
				cells[1+2*i] = "FAIL"
			case r.R != 0 && !math.IsNaN(r.R) && !math.IsInf(r.R, 0):
				cells[1+2*i] = fmt.Sprintf("%.2f", r.R)
			}
			if r.D != 0 && !math.IsNaN(r.D) && !math.IsInf(r.D, 0) {
				cells[2+2*i] = fmt.Sprintf("%.2f", r.D) + "x"
			}
		}
		table.Append(cells)
	}
	table.Render()
}
