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
	"bytes"
	"math/rand"
	"testing"
)

type recordingListener struct {
	events []*Event
}

func (this *recordingListener) ProcessEvent(evt *Event) {
	this.events = append(this.events, evt)
}

func TestEncodeStreamDecodeStreamRoundtrip(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	original := make([]byte, blockSize*2+12345)
	r.Read(original)

	var compressed bytes.Buffer

	listener := &recordingListener{}
	checksums, err := EncodeStream(&compressed, bytes.NewReader(original), []Listener{listener}, true)
	if err != nil {
		t.Fatalf("EncodeStream: %v", err)
	}

	if len(checksums) != 3 {
		t.Fatalf("got %d block checksum(s), want 3 (two full blocks + a remainder)", len(checksums))
	}

	wantChecksums := []uint64{
		blockChecksum(original[:blockSize]),
		blockChecksum(original[blockSize : 2*blockSize]),
		blockChecksum(original[2*blockSize:]),
	}

	for i, c := range checksums {
		if c != wantChecksums[i] {
			t.Fatalf("block %d checksum=%x, want %x", i, c, wantChecksums[i])
		}
	}

	var decoded bytes.Buffer

	if err := DecodeStream(&decoded, bytes.NewReader(compressed.Bytes()), []Listener{listener}); err != nil {
		t.Fatalf("DecodeStream: %v", err)
	}

	if !bytes.Equal(decoded.Bytes(), original) {
		t.Fatalf("roundtrip mismatch: got %d bytes, want %d bytes", decoded.Len(), len(original))
	}

	var startEvents, endEvents int
	for _, evt := range listener.events {
		switch evt.eventType {
		case EVT_COMPRESS_BLOCK_START, EVT_DECOMPRESS_BLOCK_START:
			startEvents++
		case EVT_COMPRESS_BLOCK_END, EVT_DECOMPRESS_BLOCK_END:
			endEvents++
		}
	}

	if startEvents != 6 || endEvents != 6 {
		t.Fatalf("got %d start / %d end events, want 6 / 6 (3 compress + 3 decompress blocks)", startEvents, endEvents)
	}
}

func TestEncodeStreamEmptyInput(t *testing.T) {
	var compressed bytes.Buffer

	checksums, err := EncodeStream(&compressed, bytes.NewReader(nil), nil, false)
	if err != nil {
		t.Fatalf("EncodeStream: %v", err)
	}

	if len(checksums) != 0 {
		t.Fatalf("got %d checksums for empty input, want 0", len(checksums))
	}

	if compressed.Len() != 0 {
		t.Fatalf("got %d bytes of framed output for empty input, want 0", compressed.Len())
	}

	var decoded bytes.Buffer
	if err := DecodeStream(&decoded, bytes.NewReader(compressed.Bytes()), nil); err != nil {
		t.Fatalf("DecodeStream: %v", err)
	}

	if decoded.Len() != 0 {
		t.Fatalf("decoded %d bytes for empty input, want 0", decoded.Len())
	}
}

func TestEncodeStreamWithoutChecksumReturnsNone(t *testing.T) {
	var compressed bytes.Buffer

	checksums, err := EncodeStream(&compressed, bytes.NewReader([]byte("hello world")), nil, false)
	if err != nil {
		t.Fatalf("EncodeStream: %v", err)
	}

	if checksums != nil {
		t.Fatalf("got %d checksums with withChecksum=false, want none", len(checksums))
	}
}

func TestDecodeStreamRejectsMalformedBlock(t *testing.T) {
	var compressed bytes.Buffer

	if _, err := EncodeStream(&compressed, bytes.NewReader([]byte("fine")), nil, false); err != nil {
		t.Fatalf("EncodeStream: %v", err)
	}

	corrupted := compressed.Bytes()
	// Flip a byte inside the first block's compressed payload (past the
	// 4-byte frame length header) to break its tag stream.
	corrupted[5] ^= 0xff

	var decoded bytes.Buffer
	if err := DecodeStream(&decoded, bytes.NewReader(corrupted), nil); err == nil {
		t.Fatal("DecodeStream accepted a corrupted block, want rejection")
	}
}
