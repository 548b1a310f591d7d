/*
Copyright 2011-2017 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package snappy

// Tag bits, spec.md §3.
const (
	tagLiteral = 0x00
	tagCopy1   = 0x01
	tagCopy2   = 0x02
	tagCopy4   = 0x03
)

// blockSize is the maximum size of a source fragment handed to
// encodeBlock in a single call (BLOCK_SIZE in spec.md §3).
const blockSize = 65536

// inputMargin is the number of input bytes encodeBlock keeps between its
// match-search limit and the end of the fragment, so the load32 reads in
// the match search and the load64 read in the match-continuation step
// always stay inside src (spec.md §4.2, "15-byte input margin"; the
// teacher's equivalent constant, inputMargin=16-1, is kept verbatim).
const inputMargin = 16 - 1

// minNonLiteralBlockSize is the smallest fragment worth feeding to
// encodeBlock; anything shorter is emitted as one literal, since a
// useful copy plus the margin above needs at least this many bytes.
const minNonLiteralBlockSize = 1 + 1 + inputMargin

// MaxCompressedLen returns the maximum number of bytes Encode can write
// for a source of length srcLen, per spec.md §4.2: 32 + N + ceil(N/6).
// It returns -1 if srcLen is too large to represent.
func MaxCompressedLen(srcLen int) int {
	if srcLen < 0 {
		return -1
	}

	n := uint64(srcLen)
	n = 32 + n + (n+5)/6

	if n > 0x7FFFFFFF {
		return -1
	}

	return int(n)
}

// emitLiteral writes a literal item carrying lit and returns the number
// of bytes written to dst. dst must have room for the encoded item.
func emitLiteral(dst, lit []byte) int {
	n := len(lit) - 1
	i := 0

	switch {
	case n < 60:
		dst[0] = byte(n)<<2 | tagLiteral
		i = 1
	case n < 1<<8:
		dst[0] = 60<<2 | tagLiteral
		dst[1] = byte(n)
		i = 2
	case n < 1<<16:
		dst[0] = 61<<2 | tagLiteral
		dst[1] = byte(n)
		dst[2] = byte(n >> 8)
		i = 3
	case n < 1<<24:
		dst[0] = 62<<2 | tagLiteral
		dst[1] = byte(n)
		dst[2] = byte(n >> 8)
		dst[3] = byte(n >> 16)
		i = 4
	default:
		dst[0] = 63<<2 | tagLiteral
		dst[1] = byte(n)
		dst[2] = byte(n >> 8)
		dst[3] = byte(n >> 16)
		dst[4] = byte(n >> 24)
		i = 5
	}

	return i + copy(dst[i:], lit)
}

// emitCopy writes one or more copy items totaling length bytes at the
// given offset, per the splitting rule in spec.md §4.2: runs of 64
// (copy-2), then a 60-byte copy-2 if more than 64 remain, then one final
// copy-1 or copy-2 for the tail. offset must be in [1,65535] and length
// in [4,...].
func emitCopy(dst []byte, offset, length int) int {
	i := 0

	for length >= 68 {
		dst[i+0] = 63<<2 | tagCopy2
		dst[i+1] = byte(offset)
		dst[i+2] = byte(offset >> 8)
		i += 3
		length -= 64
	}

	if length > 64 {
		dst[i+0] = 59<<2 | tagCopy2
		dst[i+1] = byte(offset)
		dst[i+2] = byte(offset >> 8)
		i += 3
		length -= 60
	}

	if length >= 12 || offset >= 2048 {
		dst[i+0] = byte(length-1)<<2 | tagCopy2
		dst[i+1] = byte(offset)
		dst[i+2] = byte(offset >> 8)
		return i + 3
	}

	dst[i+0] = byte(offset>>8)<<5 | byte(length-4)<<2 | tagCopy1
	dst[i+1] = byte(offset)
	return i + 2
}

// encodeBlock compresses a single fragment src (minNonLiteralBlockSize
// <= len(src) <= blockSize) into dst, using table as match-finder state.
// table must already be zeroed and sized to match shift (shift =
// shiftForTableLen(len(table))). It returns the number of bytes written.
//
// This is the wire-exact algorithm of spec.md §4.2: a hash-table
// single-candidate match finder with a skip heuristic that coarsens the
// scan over incompressible runs, and match-run continuation that
// updates the hash table at two positions before probing again. Every
// pending literal is written through emitLiteral; there is no 16-byte
// fast literal-copy path.
func encodeBlock(dst, src []byte, table []uint16, shift uint) (d int) {
	sLimit := len(src) - inputMargin
	nextEmit := 0
	s := 1
	nextHash := hash(load32(src, s), shift)

	for {
		skip := 32
		nextS := s
		candidate := 0

		for {
			s = nextS
			bytesBetweenHashLookups := skip >> 5
			nextS = s + bytesBetweenHashLookups
			skip += bytesBetweenHashLookups

			if nextS > sLimit {
				goto emitRemainder
			}

			candidate = int(table[nextHash&uint32(len(table)-1)])
			table[nextHash&uint32(len(table)-1)] = uint16(s)
			nextHash = hash(load32(src, nextS), shift)

			if load32(src, s) == load32(src, candidate) {
				break
			}
		}

		// Bytes [nextEmit, s) are unmatched; emit them as a literal.
		// spec.md §4.2 describes an optional fast path here (tag byte
		// plus one unaligned 16-byte copy when length<=16 and the
		// input margin is intact); the reference encoder this is
		// grounded on (skyportsystems-snappy/encode.go) leaves it
		// unimplemented too ("TODO: implement this fast path") since
		// emitLiteral produces byte-identical output either way — the
		// margin exists for the match-extension load64 below, not for
		// this call.
		d += emitLiteral(dst[d:], src[nextEmit:s])

		for {
			base := s
			s += 4
			t := candidate + 4

			for s < len(src) && src[t] == src[s] {
				s++
				t++
			}

			d += emitCopy(dst[d:], base-candidate, s-base)
			nextEmit = s

			if s >= sLimit {
				goto emitRemainder
			}

			x := load64(src, s-1)
			prevHash := hash(uint32(x), shift)
			table[prevHash&uint32(len(table)-1)] = uint16(s - 1)
			currHash := hash(uint32(x>>8), shift)
			candidate = int(table[currHash&uint32(len(table)-1)])
			table[currHash&uint32(len(table)-1)] = uint16(s)

			if uint32(x>>8) != load32(src, candidate) {
				nextHash = hash(uint32(x>>16), shift)
				s++
				break
			}
		}
	}

emitRemainder:
	if nextEmit < len(src) {
		d += emitLiteral(dst[d:], src[nextEmit:])
	}

	return d
}

// Encode writes the Snappy-compressed form of src into dst (which may be
// nil), starting at index 0 and overwriting any existing contents, and
// returns the result. The returned slice aliases dst's backing array
// when dst has enough capacity, else a new slice is allocated.
func Encode(dst, src []byte) []byte {
	n := MaxCompressedLen(len(src))

	if n < 0 {
		panic(&CodecError{Kind: KindInvalidArgument, Code: ErrOversizeFragment,
			Message: "source too large to encode"})
	}

	if cap(dst) < n {
		dst = make([]byte, n)
	} else {
		dst = dst[:n]
	}

	d := putUvarint32(dst, uint32(len(src)))

	var table []uint16

	for len(src) > 0 {
		p := src
		src = nil

		if len(p) > blockSize {
			p, src = p[:blockSize], p[blockSize:]
		}

		if len(p) < minNonLiteralBlockSize {
			d += emitLiteral(dst[d:], p)
			continue
		}

		if table == nil {
			table = newHashTable(len(p))
		} else {
			zeroTable(table)
		}

		shift := shiftForTableLen(len(table))
		d += encodeBlock(dst[d:], p, table, shift)
	}

	return dst[:d]
}
