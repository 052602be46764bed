// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package saio

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/exp/mmap"
)

// ReadText parses a suffix array written by WriteText.
func ReadText(r io.Reader) ([]uint64, error) {
	var vals []uint64
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	for sc.Scan() {
		v, err := strconv.ParseUint(sc.Text(), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: value %d: %v", ErrCorrupt, len(vals), err)
		}
		vals = append(vals, v)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return vals, nil
}

func parseHeader(hdr []byte) (width int, n uint64, err error) {
	if len(hdr) < headerSize || string(hdr[:4]) != magic {
		return 0, 0, fmt.Errorf("%w: invalid header", ErrCorrupt)
	}
	width = int(hdr[4])
	if width != 4 && width != 8 {
		return 0, 0, fmt.Errorf("%w: invalid width %d", ErrCorrupt, width)
	}
	return width, binary.LittleEndian.Uint64(hdr[8:]), nil
}

// ReadBinary parses a suffix array written by WriteBinary.
// Positions are widened to 64 bits regardless of the stored width.
func ReadBinary(r io.Reader) ([]uint64, error) {
	br := bufio.NewReaderSize(r, 1<<16)
	var hdr [headerSize]byte
	if _, err := io.ReadFull(br, hdr[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: truncated header", ErrCorrupt)
		}
		return nil, err
	}
	width, n, err := parseHeader(hdr[:])
	if err != nil {
		return nil, err
	}

	// The count is untrusted, so avoid allocating it all up front.
	vals := make([]uint64, 0, min(n, 1<<20))
	var buf [8]byte
	for i := uint64(0); i < n; i++ {
		if _, err := io.ReadFull(br, buf[:width]); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, fmt.Errorf("%w: truncated at value %d of %d", ErrCorrupt, i, n)
			}
			return nil, err
		}
		if width == 4 {
			vals = append(vals, uint64(binary.LittleEndian.Uint32(buf[:4])))
		} else {
			vals = append(vals, binary.LittleEndian.Uint64(buf[:]))
		}
	}
	if _, err := br.ReadByte(); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("%w: trailing data", ErrCorrupt)
		}
		return nil, err
	}
	return vals, nil
}

// BinaryArray is a suffix array in the binary format that is memory-mapped
// from disk rather than loaded.
type BinaryArray struct {
	r     *mmap.ReaderAt
	width int
	n     int
}

// OpenBinary memory-maps an uncompressed file written by WriteBinary.
func OpenBinary(path string) (*BinaryArray, error) {
	if _, ok := lookupCodec(path); ok {
		return nil, fmt.Errorf("%w: cannot map compressed file %s", ErrUnsupported, path)
	}
	r, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	var hdr [headerSize]byte
	if _, err := r.ReadAt(hdr[:], 0); err != nil {
		r.Close()
		return nil, fmt.Errorf("%w: truncated header", ErrCorrupt)
	}
	width, n, err := parseHeader(hdr[:])
	if err != nil {
		r.Close()
		return nil, err
	}
	if size := uint64(r.Len() - headerSize); n > size/uint64(width) || n*uint64(width) != size {
		r.Close()
		return nil, fmt.Errorf("%w: %d values do not match file size %d", ErrCorrupt, n, r.Len())
	}
	return &BinaryArray{r: r, width: width, n: int(n)}, nil
}

// Len reports the number of positions.
func (a *BinaryArray) Len() int { return a.n }

// Wide reports whether the positions are stored as 64-bit integers.
func (a *BinaryArray) Wide() bool { return a.width == 8 }

// At returns the position at index i. It panics if i is out of range.
func (a *BinaryArray) At(i int) uint64 {
	if i < 0 || i >= a.n {
		panic(Error("index out of range"))
	}
	var buf [8]byte
	off := int64(headerSize) + int64(i)*int64(a.width)
	if _, err := a.r.ReadAt(buf[:a.width], off); err != nil {
		panic(err)
	}
	if a.width == 4 {
		return uint64(binary.LittleEndian.Uint32(buf[:4]))
	}
	return binary.LittleEndian.Uint64(buf[:])
}

// Uint64s copies all positions into memory.
func (a *BinaryArray) Uint64s() []uint64 {
	vals := make([]uint64, a.n)
	for i := range vals {
		vals[i] = a.At(i)
	}
	return vals
}

// Close unmaps the file.
func (a *BinaryArray) Close() error { return a.r.Close() }
