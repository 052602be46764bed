// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package saio loads texts and stores suffix arrays.
//
// Files are transparently compressed or decompressed according to their
// extension: ".gz" (gzip), ".zst" (Zstandard), ".xz" (XZ), ".bz2" (BZip2),
// and ".br" (Brotli, reading only).
package saio

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/dsnet/compress/brotli"
	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "saio: " + string(e) }

var (
	ErrExists      error = Error("output file already exists")
	ErrCorrupt     error = Error("suffix array data is corrupted")
	ErrUnsupported error = Error("unsupported format")
)

// Format is the on-disk representation of a suffix array.
type Format int

const (
	// FormatText stores positions as whitespace-separated decimal integers.
	FormatText Format = iota
	// FormatBinary stores a header followed by little-endian fixed-width
	// positions. See WriteBinary.
	FormatBinary
)

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatBinary:
		return "binary"
	default:
		return "invalid"
	}
}

// ParseFormat parses the name of a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "text", "txt":
		return FormatText, nil
	case "binary", "bin":
		return FormatBinary, nil
	default:
		return 0, ErrUnsupported
	}
}

type codec struct {
	newReader func(io.Reader) (io.ReadCloser, error)
	newWriter func(io.Writer) (io.WriteCloser, error) // May be nil
}

var codecs = map[string]codec{
	".gz": {
		newReader: func(r io.Reader) (io.ReadCloser, error) { return gzip.NewReader(r) },
		newWriter: func(w io.Writer) (io.WriteCloser, error) { return gzip.NewWriter(w), nil },
	},
	".zst": {
		newReader: func(r io.Reader) (io.ReadCloser, error) {
			zr, err := zstd.NewReader(r)
			if err != nil {
				return nil, err
			}
			return zstdReader{zr}, nil
		},
		newWriter: func(w io.Writer) (io.WriteCloser, error) { return zstd.NewWriter(w) },
	},
	".xz": {
		newReader: func(r io.Reader) (io.ReadCloser, error) {
			zr, err := xz.NewReader(r)
			if err != nil {
				return nil, err
			}
			return io.NopCloser(zr), nil
		},
		newWriter: func(w io.Writer) (io.WriteCloser, error) { return xz.NewWriter(w) },
	},
	".bz2": {
		newReader: func(r io.Reader) (io.ReadCloser, error) { return bzip2.NewReader(r, nil) },
		newWriter: func(w io.Writer) (io.WriteCloser, error) { return bzip2.NewWriter(w, nil) },
	},
	".br": {
		newReader: func(r io.Reader) (io.ReadCloser, error) { return brotli.NewReader(r, nil) },
	},
}

// zstdReader adapts a zstd.Decoder, whose Close reports no error.
type zstdReader struct{ *zstd.Decoder }

func (zr zstdReader) Close() error {
	zr.Decoder.Close()
	return nil
}

func lookupCodec(path string) (codec, bool) {
	c, ok := codecs[strings.ToLower(filepath.Ext(path))]
	return c, ok
}
