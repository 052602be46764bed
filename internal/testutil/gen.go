// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package testutil

// Repeats generates size bytes of mostly random data in which a large bulk
// of the content is a copy from some distance ago. Such inputs leave many
// long equal-prefix groups for a suffix sorter to resolve.
func Repeats(seed, size int) []byte {
	var b []byte
	r := NewRand(seed)

	randLen := func() (l int) {
		p := r.Float32()
		switch {
		case p <= 0.15: // 4..8
			l = 4 + r.Int()%4
		case p <= 0.30: // 8..16
			l = 8 + r.Int()%8
		case p <= 0.45: // 16..32
			l = 16 + r.Int()%16
		case p <= 0.60: // 32..64
			l = 32 + r.Int()%32
		case p <= 0.75: // 64..128
			l = 64 + r.Int()%64
		case p <= 0.90: // 128..256
			l = 128 + r.Int()%128
		default: // 256..512
			l = 256 + r.Int()%256
		}
		return l
	}

	randDist := func() (d int) {
		for d == 0 || d > len(b) {
			p := r.Float32()
			switch {
			case p <= 0.2: // 1..4
				d = 1 + r.Int()%3
			case p <= 0.4: // 4..16
				d = 4 + r.Int()%12
			case p <= 0.6: // 16..256
				d = 16 + r.Int()%240
			case p <= 0.8: // 256..4096
				d = 256 + r.Int()%3840
			default: // 4096..32768
				d = 4096 + r.Int()%28672
			}
		}
		return d
	}

	writeRand := func(l int) {
		b = append(b, r.Bytes(l)...)
	}
	writeCopy := func(d, l int) {
		for i := 0; i < l; i++ {
			b = append(b, b[len(b)-d])
		}
	}

	writeRand(randLen())
	for len(b) < size {
		switch p := r.Float32(); {
		case p <= 0.1:
			writeRand(randLen())
		default:
			writeCopy(randDist(), randLen())
		}
	}
	return b[:size]
}

// Periodic returns n bytes consisting of pattern repeated.
func Periodic(pattern string, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = pattern[i%len(pattern)]
	}
	return b
}
