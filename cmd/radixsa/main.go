// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command radixsa builds the suffix array of a file.
//
// Example usage:
//
//	$ radixsa -L 32 genome.fa.gz genome.sa
//	$ radixsa --format binary --verify twain.txt twain.sa.zst
//
// The input is decompressed according to its extension and one trailing
// line-feed is removed. The output file must not already exist.
package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"runtime"
	"strings"
	"time"

	strconv "github.com/dsnet/golib/unitconv"
	"github.com/dsnet/radixsa"
	"github.com/dsnet/radixsa/saio"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	log := logrus.New()
	if err := newApp(os.Stdout, log).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(stdout io.Writer, log *logrus.Logger) *cli.App {
	return &cli.App{
		Name:      "radixsa",
		Usage:     "build the suffix array of a file",
		ArgsUsage: "INPUT OUTPUT",
		Writer:    stdout,
		ErrWriter: log.Out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "lmer",
				Aliases: []string{"L"},
				Value:   "0",
				Usage:   "compare suffixes on their first `K` bytes only (0 sorts entire suffixes)",
			},
			&cli.BoolFlag{
				Name:    "wide",
				Aliases: []string{"w"},
				Usage:   "always use 64-bit positions",
			},
			&cli.IntFlag{
				Name:    "jobs",
				Aliases: []string{"j"},
				Value:   1,
				Usage:   "number of goroutines used per refinement pass (0 uses every CPU)",
			},
			&cli.StringFlag{
				Name:  "format",
				Value: saio.FormatText.String(),
				Usage: "output format: text or binary",
			},
			&cli.BoolFlag{
				Name:  "verify",
				Usage: "check the suffix array before writing it",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log every refinement pass",
			},
		},
		HideHelpCommand: true,
		Action: func(c *cli.Context) error {
			return run(c, log)
		},
	}
}

// parseDepth parses a depth that may carry an SI or IEC prefix.
// Negative depths are treated as zero.
func parseDepth(s string) (int, error) {
	neg := strings.HasPrefix(s, "-")
	f, err := strconv.ParsePrefix(strings.TrimPrefix(s, "-"), strconv.AutoParse)
	if err != nil || f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, fmt.Errorf("invalid depth %q", s)
	}
	if neg {
		return 0, nil
	}
	return int(f), nil
}

func run(c *cli.Context, log *logrus.Logger) (err error) {
	if c.NArg() != 2 {
		cli.ShowAppHelp(c)
		return errors.New("expected exactly two arguments: INPUT OUTPUT")
	}
	input, output := c.Args().Get(0), c.Args().Get(1)
	if c.Bool("verbose") {
		log.SetLevel(logrus.DebugLevel)
	}

	depth, err := parseDepth(c.String("lmer"))
	if err != nil {
		return err
	}
	format, err := saio.ParseFormat(c.String("format"))
	if err != nil {
		return fmt.Errorf("invalid format %q", c.String("format"))
	}
	jobs := c.Int("jobs")
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	conf := &radixsa.Config{
		Depth:       depth,
		Concurrency: jobs,
		Trace: func(ps radixsa.PassStats) {
			log.WithFields(logrus.Fields{
				"pass":      ps.Pass,
				"depth":     ps.Depth,
				"groups":    ps.Groups,
				"positions": ps.Positions,
			}).Debug("refined")
		},
	}
	if c.Bool("wide") {
		conf.Width = radixsa.Width64
	}

	text, err := saio.ReadInput(input)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"path": input, "bytes": len(text)}).Info("read input")

	// Claim the output before the expensive work, since it must not exist.
	wr, err := saio.Create(output)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			wr.Close()
			os.Remove(output)
		}
	}()

	start := time.Now()
	sa, err := radixsa.Build(text, conf)
	if err != nil {
		return err
	}
	width := radixsa.Width32
	if sa.Wide() {
		width = radixsa.Width64
	}
	log.WithFields(logrus.Fields{
		"width":   width,
		"depth":   sa.Depth(),
		"elapsed": time.Since(start),
	}).Info("built suffix array")

	if c.Bool("verify") {
		if vals := sa.Uint32s(); vals != nil {
			err = radixsa.Verify(text, vals, sa.Depth())
		} else {
			err = radixsa.Verify(text, sa.Uint64s(), sa.Depth())
		}
		if err != nil {
			return err
		}
		log.Info("verified suffix array")
	}

	if err = saio.Write(wr, sa, format); err != nil {
		return err
	}
	if err = wr.Close(); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"path": output, "format": format}).Info("wrote suffix array")
	return nil
}
