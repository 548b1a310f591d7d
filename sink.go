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

// Sink is the byte-sink capability consumed by compressor entry points
// that flush to an external destination rather than a flat buffer
// (spec.md §6), such as AllocatingWriter.Close.
type Sink interface {
	// Append fully consumes data, copying it if the sink cannot retain
	// the slice itself.
	Append(data []byte)

	// GetAppendBuffer returns a writable region of at least minSize
	// bytes. A sink with no zero-copy region of its own returns scratch
	// (grown if necessary).
	GetAppendBuffer(minSize int, scratch []byte) []byte
}

// BufferSink accumulates appended bytes into a growing in-memory
// buffer, in the style of util/BufferStream.go's Write.
type BufferSink struct {
	buf []byte
}

func NewBufferSink() *BufferSink {
	return new(BufferSink)
}

func (this *BufferSink) Append(data []byte) {
	this.buf = append(this.buf, data...)
}

func (this *BufferSink) GetAppendBuffer(minSize int, scratch []byte) []byte {
	if cap(scratch) >= minSize {
		return scratch[:minSize]
	}

	return make([]byte, minSize)
}

// Bytes returns the accumulated contents. The caller must not retain it
// across a subsequent Append.
func (this *BufferSink) Bytes() []byte {
	return this.buf
}
