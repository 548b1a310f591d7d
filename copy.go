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

// appendFromSelf implements the incremental copy engine of spec.md §4.3:
// it copies length bytes from buf[cursor-offset:] to buf[cursor:],
// advancing cursor by length. When offset < length this is a pattern
// replication, not a memmove: e.g. offset=1, length=10 on a preceding
// 'a' byte produces "aaaaaaaaaa".
//
// The copy proceeds in chunks of up to offset bytes at a time. Each
// chunk's source range [cursor-offset, cursor-offset+n) and destination
// range [cursor, cursor+n) are adjacent and never overlap (n <= offset),
// so a plain forward copy is correct for that chunk; advancing cursor by
// n before the next chunk means the next source range includes bytes
// the previous chunk just wrote, which is exactly the self-referential
// recursion pattern replication requires. This is byte-exact for every
// offset and length, so it doubles as both the spec's fast path and its
// mandatory byte-at-a-time-equivalent slow fallback — see DESIGN.md for
// why the SSE-shuffle pattern-expansion variant is not implemented.
func appendFromSelf(buf []byte, cursor, offset, length int) (int, *CodecError) {
	if offset <= 0 {
		return cursor, malformedInput(ErrBadOffset, "copy offset %d is invalid", offset)
	}

	if offset > cursor {
		return cursor, malformedInput(ErrBadOffset, "copy offset %d exceeds %d produced bytes", offset, cursor)
	}

	if length < 0 || cursor+length > len(buf) {
		return cursor, outputOverrun("copy of length %d at cursor %d exceeds destination capacity %d", length, cursor, len(buf))
	}

	src := cursor - offset
	remaining := length

	for remaining > 0 {
		n := offset
		if n > remaining {
			n = remaining
		}

		copy(buf[cursor:cursor+n], buf[src:src+n])
		cursor += n
		src += n
		remaining -= n
	}

	return cursor, nil
}
