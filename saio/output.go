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
	"io/fs"
	"os"
	"strconv"

	"github.com/dsnet/radixsa"
)

const (
	magic      = "RXSA"
	headerSize = 16
)

// Create creates a new file at path for writing a suffix array.
// It never overwrites an existing file; in that case the error wraps
// ErrExists. If the extension names a compression format that can be
// written, the data is compressed accordingly.
//
// The caller must Close the returned writer to flush all data.
func Create(path string) (io.WriteCloser, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0664)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("%w: %s", ErrExists, path)
		}
		return nil, err
	}
	fw := &fileWriter{f: f}
	if c, ok := lookupCodec(path); ok {
		if c.newWriter == nil {
			f.Close()
			os.Remove(path)
			return nil, fmt.Errorf("%w: cannot write %s", ErrUnsupported, path)
		}
		if fw.zw, err = c.newWriter(f); err != nil {
			f.Close()
			os.Remove(path)
			return nil, err
		}
		fw.bw = bufio.NewWriterSize(fw.zw, 1<<16)
	} else {
		fw.bw = bufio.NewWriterSize(f, 1<<16)
	}
	return fw, nil
}

type fileWriter struct {
	bw *bufio.Writer
	zw io.WriteCloser // May be nil
	f  *os.File
}

func (fw *fileWriter) Write(b []byte) (int, error) { return fw.bw.Write(b) }

func (fw *fileWriter) Close() error {
	err := fw.bw.Flush()
	if fw.zw != nil {
		if errz := fw.zw.Close(); err == nil {
			err = errz
		}
	}
	if errf := fw.f.Close(); err == nil {
		err = errf
	}
	return err
}

// WriteText writes every position of sa as a decimal integer followed by a
// single space, and terminates the output with a newline.
func WriteText(w io.Writer, sa *radixsa.SuffixArray) error {
	if vals := sa.Uint32s(); vals != nil {
		return writeText(w, vals)
	}
	return writeText(w, sa.Uint64s())
}

func writeText[T radixsa.Index](w io.Writer, vals []T) error {
	bw := bufio.NewWriterSize(w, 1<<16)
	var buf [24]byte
	for _, v := range vals {
		b := strconv.AppendUint(buf[:0], uint64(v), 10)
		if _, err := bw.Write(append(b, ' ')); err != nil {
			return err
		}
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}
	return bw.Flush()
}

// WriteBinary writes sa in the binary format: a 16-byte header holding the
// magic "RXSA", the value width in bytes (4 or 8), three reserved zero bytes
// and the number of values as a little-endian uint64, followed by the values
// themselves in little-endian order.
func WriteBinary(w io.Writer, sa *radixsa.SuffixArray) error {
	width := 4
	if sa.Wide() {
		width = 8
	}
	var hdr [headerSize]byte
	copy(hdr[:], magic)
	hdr[4] = byte(width)
	binary.LittleEndian.PutUint64(hdr[8:], uint64(sa.Len()))

	bw := bufio.NewWriterSize(w, 1<<16)
	if _, err := bw.Write(hdr[:]); err != nil {
		return err
	}
	var buf [8]byte
	if vals := sa.Uint32s(); vals != nil {
		for _, v := range vals {
			binary.LittleEndian.PutUint32(buf[:4], v)
			if _, err := bw.Write(buf[:4]); err != nil {
				return err
			}
		}
	} else {
		for _, v := range sa.Uint64s() {
			binary.LittleEndian.PutUint64(buf[:], v)
			if _, err := bw.Write(buf[:]); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// Write encodes sa to w using the given format.
func Write(w io.Writer, sa *radixsa.SuffixArray, f Format) error {
	switch f {
	case FormatText:
		return WriteText(w, sa)
	case FormatBinary:
		return WriteBinary(w, sa)
	default:
		return ErrUnsupported
	}
}
