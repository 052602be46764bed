// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"runtime"

	"github.com/dsnet/radixsa"
)

func init() {
	RegisterBuilder("radix32",
		func(text []byte, depth int) (Positions, error) {
			return radixsa.Build(text, &radixsa.Config{Depth: depth, Width: radixsa.Width32})
		})
	RegisterBuilder("radix64",
		func(text []byte, depth int) (Positions, error) {
			return radixsa.Build(text, &radixsa.Config{Depth: depth, Width: radixsa.Width64})
		})
	RegisterBuilder("radixpar",
		func(text []byte, depth int) (Positions, error) {
			return radixsa.Build(text, &radixsa.Config{Depth: depth, Concurrency: runtime.NumCPU()})
		})
}
