// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package radixsa

import "runtime"

// Index is the set of unsigned integer types a suffix array can be built in.
// Every position, rank, and group boundary of a construction uses the same
// Index type.
type Index interface {
	~uint32 | ~uint64
}

// Error is the wrapper type for errors specific to this library.
type Error string

func (e Error) Error() string { return "radixsa: " + string(e) }

var (
	ErrInvalidDepth error = Error("invalid depth")
	ErrInvalidWidth error = Error("invalid index width")
	ErrTooLarge     error = Error("input too large for index width")
)

// span is a half-open range [lo, hi) of the suffix array holding one
// unresolved order-class group.
type span[T Index] struct {
	lo, hi T
}

func errRecover(err *error) {
	switch ex := recover().(type) {
	case nil:
		// Do nothing.
	case runtime.Error:
		panic(ex)
	case error:
		*err = ex
	default:
		panic(ex)
	}
}
