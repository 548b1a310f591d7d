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

const (
	minTableSize = 1 << 8  // 256
	maxTableSize = 1 << 14 // 16384

	// hashSeed is Snappy's multiplicative hash constant; any constant
	// with similar dispersion would do, but this is the reference value
	// (see spec.md §4.2) and also the one the teacher's SnappyCodec used.
	hashSeed = 0x1e35a7bd
)

// hash disperses the low bits of u across the table, shifted down to
// tableBits significant bits.
func hash(u uint32, shift uint) uint32 {
	return (u * hashSeed) >> shift
}

// tableSizeFor picks the smallest power of two in [minTableSize,
// maxTableSize] that is >= fragmentLen, and returns the corresponding
// shift for hash().
func tableSizeFor(fragmentLen int) (size int, shift uint) {
	size = minTableSize
	shift = 32 - 8

	for size < maxTableSize && size < fragmentLen {
		size <<= 1
		shift--
	}

	return size, shift
}

// newHashTable allocates a hash table sized for the first fragment of a
// multi-block call and reused (re-zeroed) across subsequent blocks of
// the same call, per spec.md §3's lifetime rule.
func newHashTable(firstFragmentLen int) []uint16 {
	size, _ := tableSizeFor(firstFragmentLen)
	return make([]uint16, size)
}

// shiftForTableLen returns the hash() shift matching an already-sized
// table. Encode calls it for every block, including later blocks that
// reuse (re-zeroed, length unchanged) a table allocated for an earlier,
// typically larger, fragment of the same call.
func shiftForTableLen(tableLen int) uint {
	return 32 - uint(log2Floor(uint32(tableLen)))
}

func zeroTable(table []uint16) {
	for i := range table {
		table[i] = 0
	}
}
