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
	"testing"

	"github.com/stretchr/testify/require"
)

// buildLiteralStream wraps groups as a sequence of literal items behind
// a varint(U) header, where U is the combined length of groups. Every
// group here is short enough (<60 bytes) for a single-byte literal tag.
func buildLiteralStream(t *testing.T, groups ...string) []byte {
	t.Helper()

	total := 0
	for _, g := range groups {
		total += len(g)
	}

	prefix := make([]byte, maxVarintLen32)
	n := putUvarint32(prefix, uint32(total))

	out := append([]byte(nil), prefix[:n]...)

	for _, g := range groups {
		item := make([]byte, len(g)+5)
		k := emitLiteral(item, []byte(g))
		out = append(out, item[:k]...)
	}

	return out
}

func TestIOVecWriterSpansBoundaries(t *testing.T) {
	// One 22-byte literal item, with destination span lengths chosen
	// so a single Append call must cross the four boundaries between the
	// five spans; the
	// compressed item boundaries have nothing to do with where the
	// spans split.
	want := "ab" + "c" + "1231" + "23123123" + "123bc12"
	stream := buildLiteralStream(t, want)

	n, hdr, err := GetUncompressedLength(stream)
	require.NoError(t, err)

	spanLens := []int{2, 1, 4, 8, 128}
	spans := make([]Span, len(spanLens))
	for i, l := range spanLens {
		spans[i] = Span{Buf: make([]byte, l)}
	}

	w := NewIOVecWriter(spans)
	w.SetExpectedLength(n)

	outcome := decode(w, NewBufferSource(stream[hdr:]))
	require.True(t, outcome.ok(), "decode into IOVecWriter failed: %v", outcome)

	var got []byte
	for _, s := range spans {
		got = append(got, s.Buf...)
	}

	require.Equal(t, want, string(got[:len(want)]))
}

func TestIOVecWriterRejectsOverfill(t *testing.T) {
	// A single literal declaring 8 bytes against 7 bytes of total span
	// capacity must fail, not overrun the destination.
	stream := buildLiteralStream(t, "12345678")

	n, hdr, err := GetUncompressedLength(stream)
	require.NoError(t, err)

	spans := []Span{{Buf: make([]byte, 7)}}
	w := NewIOVecWriter(spans)
	w.SetExpectedLength(n)

	outcome := decode(w, NewBufferSource(stream[hdr:]))
	require.False(t, outcome.ok(), "decode into an undersized IOVecWriter should fail")
}

func TestIOVecWriterSelfCopyCrossesSpans(t *testing.T) {
	// literal "ab" then copy(offset=2, length=6) pattern-replicates
	// "ababab", crossing from the first 3-byte span into the second.
	prefix := make([]byte, maxVarintLen32)
	n := putUvarint32(prefix, 8)

	stream := append([]byte(nil), prefix[:n]...)
	lit := make([]byte, 2+5)
	k := emitLiteral(lit, []byte("ab"))
	stream = append(stream, lit[:k]...)
	stream = append(stream, emitCopyBuf(2, 6)...)

	spans := []Span{{Buf: make([]byte, 3)}, {Buf: make([]byte, 5)}}
	w := NewIOVecWriter(spans)
	w.SetExpectedLength(8)

	outcome := decode(w, NewBufferSource(stream[n:]))
	require.True(t, outcome.ok())

	var got []byte
	for _, s := range spans {
		got = append(got, s.Buf...)
	}

	require.Equal(t, "abababab", string(got))
}

func emitCopyBuf(offset, length int) []byte {
	buf := make([]byte, 5)
	n := emitCopy(buf, offset, length)
	return buf[:n]
}

func TestFlatWriterRejectsOverflow(t *testing.T) {
	w := NewFlatWriter(make([]byte, 4))
	w.SetExpectedLength(10)

	require.True(t, w.Append([]byte("abcd")))
	require.False(t, w.Append([]byte("e")))
}

func TestValidatingWriterTracksLengthOnly(t *testing.T) {
	w := NewValidatingWriter()
	w.SetExpectedLength(10)

	require.True(t, w.Append(make([]byte, 6)))
	require.True(t, w.AppendFromSelf(3, 4))
	require.True(t, w.CheckLength())
}

func TestAllocatingWriterFlushesToSink(t *testing.T) {
	sink := NewBufferSink()
	w := NewAllocatingWriter(sink)
	w.SetExpectedLength(9)

	require.True(t, w.Append([]byte("abc")))
	require.True(t, w.AppendFromSelf(3, 6))
	require.True(t, w.CheckLength())

	n := w.Close()
	require.Equal(t, 9, n)
	require.Equal(t, "abcabcabc", string(sink.Bytes()))
}
