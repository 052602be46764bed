// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package saio

import (
	"fmt"
	"io"
	"os"
)

// Open opens the named file for reading. If the extension names a known
// compression format, the returned reader yields the decompressed stream.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	c, ok := lookupCodec(path)
	if !ok {
		return f, nil
	}
	zr, err := c.newReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("saio: %s: %w", path, err)
	}
	return &fileReader{ReadCloser: zr, f: f}, nil
}

type fileReader struct {
	io.ReadCloser
	f *os.File
}

func (fr *fileReader) Close() error {
	err := fr.ReadCloser.Close()
	if errf := fr.f.Close(); err == nil {
		err = errf
	}
	return err
}

// ReadInput reads the entire text stored at path, decompressing it if needed.
// A single trailing line-feed is removed so that files written by editors
// produce the text their author intended.
func ReadInput(path string) ([]byte, error) {
	if _, ok := lookupCodec(path); !ok {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return TrimLineFeed(b), nil
	}

	rd, err := Open(path)
	if err != nil {
		return nil, err
	}
	b, err := io.ReadAll(rd)
	if errc := rd.Close(); err == nil {
		err = errc
	}
	if err != nil {
		return nil, fmt.Errorf("saio: %s: %w", path, err)
	}
	return TrimLineFeed(b), nil
}

// TrimLineFeed removes exactly one trailing '\n' from b, if present.
func TrimLineFeed(b []byte) []byte {
	if n := len(b); n > 0 && b[n-1] == '\n' {
		return b[:n-1]
	}
	return b
}
