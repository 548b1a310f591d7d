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

import "testing"

func TestMalformedStreamsAreRejected(t *testing.T) {
	cases := []struct {
		name string
		data []byte
	}{
		{"copy with offset 0", []byte{0x05, 0x12, 0x00, 0x00}},
		{"copy with offset 0, long declared length", []byte{0x40, 0x12, 0x00, 0x00}},
		{"varint overflowing 32 bits", []byte{0xfb, 0xff, 0xff, 0xff, 0x7f}},
		{"varint without terminator in 5 bytes", []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x0a}},
		{"truncated varint", []byte{0xf0}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := Decode(nil, c.data); err == nil {
				t.Fatalf("Decode(% x) succeeded, want rejection", c.data)
			}

			if IsValidCompressed(c.data) {
				t.Fatalf("IsValidCompressed(% x) reported true, want false", c.data)
			}
		})
	}
}

func TestCorruptedCompressedStreamIsRejected(t *testing.T) {
	original := []byte("making sure we don't crash with corrupted input")
	compressed := Encode(nil, original)

	corrupted := append([]byte(nil), compressed...)
	corrupted[1]--
	corrupted[3]++

	if _, err := Decode(nil, corrupted); err == nil {
		t.Fatalf("Decode accepted a stream with byte 1 decremented and byte 3 incremented")
	}
}

func TestDeclaredLengthZeroBodyNonEmptyIsRejected(t *testing.T) {
	body := Encode(nil, bytes100000A())

	declareZero := append([]byte(nil), body...)
	declareZero[0] = 0x00

	if _, err := Decode(nil, declareZero); err == nil {
		t.Fatalf("Decode accepted a stream declaring U=0 with a non-empty body")
	}

	if IsValidCompressed(declareZero) {
		t.Fatalf("IsValidCompressed accepted a stream declaring U=0 with a non-empty body")
	}
}

func TestDeclaredLengthWithEmptyBodyIsRejected(t *testing.T) {
	prefix := make([]byte, 5)
	n := putUvarint32(prefix, 100000)

	if _, err := Decode(nil, prefix[:n]); err == nil {
		t.Fatalf("Decode accepted U=100000 with a zero-byte body")
	}
}

func bytes100000A() []byte {
	b := make([]byte, 100000)
	for i := range b {
		b[i] = 'A'
	}
	return b
}
