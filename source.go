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

import "io"

// Source is the byte-source capability consumed by the decoder
// (spec.md §6): peek bytes without consuming them, then skip past
// however many were used. The decoder stitches its own 5-byte tag
// scratch buffer across Peek/Skip calls, so a Source is free to expose
// its bytes in whatever chunks are convenient.
type Source interface {
	// Peek returns the bytes currently available without copying, and
	// their count. It may be called repeatedly without side effects.
	Peek() (data []byte, available int)

	// Skip advances past n bytes previously returned by Peek.
	Skip(n int)

	// Available reports the total remaining byte count, informational
	// only (the decoder does not rely on it for correctness).
	Available() int
}

// BufferSource adapts an in-memory buffer to the Source capability, in
// the style of util/BufferStream.go's offset-tracked buffer.
type BufferSource struct {
	buf []byte
	off int
}

// NewBufferSource wraps buf for sequential decoding. buf is not copied;
// the caller must not mutate it while decoding is in progress.
func NewBufferSource(buf []byte) *BufferSource {
	this := new(BufferSource)
	this.buf = buf
	return this
}

func (this *BufferSource) Peek() ([]byte, int) {
	return this.buf[this.off:], len(this.buf) - this.off
}

func (this *BufferSource) Skip(n int) {
	this.off += n
}

func (this *BufferSource) Available() int {
	return len(this.buf) - this.off
}

// ReaderSource adapts an io.Reader to the Source capability, refilling a
// bounded internal buffer on demand rather than requiring the whole
// compressed stream up front. In the style of
// other_examples' bmatsuo-snappyframed Reader (a fixed-size `src` buffer
// refilled from the wrapped io.Reader), except here Peek hands back
// whatever is currently buffered instead of a fixed frame size, so a
// caller may see anywhere from 1 byte up to chunkSize at a time — this is
// what forces the decoder's tag/extra-byte stitching in block_decode.go
// to be exercised against a real multi-chunk source.
type ReaderSource struct {
	r   io.Reader
	buf []byte
	off int
	end int
	err error
}

// NewReaderSource wraps r, reading at most chunkSize bytes at a time.
// chunkSize must be at least 1; a small chunkSize (well under
// maxTagLength) is useful for forcing tag items to straddle reads in
// tests.
func NewReaderSource(r io.Reader, chunkSize int) *ReaderSource {
	if chunkSize < 1 {
		chunkSize = 1
	}

	this := new(ReaderSource)
	this.r = r
	this.buf = make([]byte, chunkSize)
	return this
}

func (this *ReaderSource) Peek() ([]byte, int) {
	for this.off == this.end {
		if this.err != nil {
			return nil, 0
		}

		n, err := this.r.Read(this.buf)
		this.off = 0
		this.end = n
		this.err = err

		if n == 0 && err != nil {
			return nil, 0
		}
	}

	return this.buf[this.off:this.end], this.end - this.off
}

func (this *ReaderSource) Skip(n int) {
	this.off += n
}

// Available reports only the bytes currently buffered; bytes not yet
// read from the wrapped io.Reader are not counted.
func (this *ReaderSource) Available() int {
	return this.end - this.off
}
