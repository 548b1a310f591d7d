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

// Package snappy implements a byte-oriented, general-purpose lossless
// compression codec wire-compatible with Google's Snappy format: a
// single-pass LZ77-style block compressor with a tiny hash table, and a
// tag-driven decoder whose inner loop stays branch-light.
package snappy

// Decode decodes src, the Snappy-compressed form produced by Encode,
// into dst (which may be nil) and returns the decompressed bytes. The
// returned slice aliases dst's backing array when it has enough
// capacity, else a new slice is allocated.
func Decode(dst, src []byte) ([]byte, error) {
	n, hdr, err := GetUncompressedLength(src)
	if err != nil {
		return nil, err
	}

	// dst == nil is handled here too (not just cap(dst) < n): slicing a
	// nil slice to [:0] is itself nil, and NewFlatWriter rejects a nil
	// destination as a programming error, so the n == 0 case must still
	// route through make to produce a non-nil, zero-length buffer.
	if dst == nil || cap(dst) < n {
		dst = make([]byte, n)
	} else {
		dst = dst[:n]
	}

	w := NewFlatWriter(dst)
	w.SetExpectedLength(n)

	switch decode(w, NewBufferSource(src[hdr:])) {
	case decodeOK:
		return dst, nil
	case decodeLengthMismatch:
		return nil, lengthMismatch("declared length %d, decoded %d bytes", n, w.Len())
	default:
		return nil, malformedInput(ErrShortInput, "decode failed: malformed stream")
	}
}

// GetUncompressedLength parses the leading varint of a compressed
// stream without allocating a destination buffer, returning the
// declared length and the number of header bytes consumed.
func GetUncompressedLength(src []byte) (length, headerLen int, err error) {
	u, n, verr := getUvarint32(src)
	if verr != nil {
		return 0, 0, verr
	}

	return int(u), n, nil
}

// IsValidCompressed reports whether src decodes successfully, running
// the decoder with a ValidatingWriter that discards output and tracks
// only length (spec.md §6).
func IsValidCompressed(src []byte) bool {
	n, hdr, err := GetUncompressedLength(src)
	if err != nil {
		return false
	}

	w := NewValidatingWriter()
	w.SetExpectedLength(n)

	return decode(w, NewBufferSource(src[hdr:])).ok()
}
