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

import (
	"encoding/binary"
	"io"
)

// EncodeStream drives the block compressor (spec.md §4.5) over an
// arbitrarily long io.Reader, writing a sequence of
// length-prefixed compressed blocks to w. Each block is an independent,
// self-contained Encode output (its own varint(U) prefix), fronted by a
// 4-byte little-endian frame length so DecodeStream can read it back
// without knowing the total input size up front.
//
// This is this package's own minimal block framing, not the Snappy
// streaming container format (stream identifier chunk, CRC32C per
// chunk) — that format is out of scope (SPEC_FULL.md Non-goals).
//
// When withChecksum is true, the returned slice holds one xxhash64
// fingerprint per block, computed over the uncompressed bytes; it is
// never written to w.
func EncodeStream(w io.Writer, r io.Reader, listeners []Listener, withChecksum bool) ([]uint64, error) {
	var checksums []uint64
	chunk := make([]byte, blockSize)
	var frameHdr [4]byte
	blockID := 0

	for {
		n, readErr := io.ReadFull(r, chunk)

		if n > 0 {
			notifyListeners(listeners, newEvent(EVT_COMPRESS_BLOCK_START, blockID, int64(n), 0, false))

			compressed := Encode(nil, chunk[:n])
			binary.LittleEndian.PutUint32(frameHdr[:], uint32(len(compressed)))

			if _, err := w.Write(frameHdr[:]); err != nil {
				return checksums, err
			}

			if _, err := w.Write(compressed); err != nil {
				return checksums, err
			}

			if withChecksum {
				checksums = append(checksums, blockChecksum(chunk[:n]))
			}

			notifyListeners(listeners, newEvent(EVT_COMPRESS_BLOCK_END, blockID, int64(len(compressed)), 0, false))
			blockID++
		}

		if readErr == io.EOF || readErr == io.ErrUnexpectedEOF {
			return checksums, nil
		}

		if readErr != nil {
			return checksums, readErr
		}
	}
}

// readerChunkSize is how many compressed bytes DecodeStream pulls from r
// per read, via ReaderSource. It never needs to hold a whole block's
// worth of compressed bytes at once, unlike Decode's all-at-a-time
// BufferSource.
const readerChunkSize = 4096

// DecodeStream reads the framing EncodeStream produces from r and
// writes the decompressed bytes to w. Unlike Decode, it never
// materializes a whole block's compressed bytes as a single []byte:
// each block's bytes are pulled from r through a ReaderSource, which
// exercises the same tag/varint refill-stitching path block_decode.go
// and varint.go use for any chunked Source.
func DecodeStream(w io.Writer, r io.Reader, listeners []Listener) error {
	var frameHdr [4]byte
	blockID := 0

	for {
		if _, err := io.ReadFull(r, frameHdr[:]); err != nil {
			if err == io.EOF {
				return nil
			}

			return err
		}

		frameLen := int64(binary.LittleEndian.Uint32(frameHdr[:]))
		framed := io.LimitReader(r, frameLen)

		notifyListeners(listeners, newEvent(EVT_DECOMPRESS_BLOCK_START, blockID, frameLen, 0, false))

		src := NewReaderSource(framed, readerChunkSize)

		n, err := readUvarint32(src)
		if err != nil {
			return err
		}

		sink := NewBufferSink()
		aw := NewAllocatingWriter(sink)
		aw.SetExpectedLength(int(n))

		if outcome := decode(aw, src); !outcome.ok() {
			return malformedInput(ErrShortInput, "decode failed: malformed stream (block %d)", blockID)
		}

		aw.Close()
		decoded := sink.Bytes()

		if _, err := w.Write(decoded); err != nil {
			return err
		}

		// Drain any bytes this block's frame declared but decode didn't
		// consume, so the next iteration's frame header read lines up.
		if _, err := io.Copy(io.Discard, framed); err != nil {
			return err
		}

		notifyListeners(listeners, newEvent(EVT_DECOMPRESS_BLOCK_END, blockID, int64(len(decoded)), 0, false))
		blockID++
	}
}
