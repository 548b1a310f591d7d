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

import "github.com/cespare/xxhash/v2"

// blockChecksum returns the xxhash64 fingerprint of a decompressed
// block, per SPEC_FULL.md §3: a non-wire sidecar used for integrity
// reporting, analogous to io/CompressedStream.go's per-block hasher
// field but never embedded in the compressed bytes themselves.
//
// The teacher hashes with its own hand-rolled util/hash.XXHash32; this
// package uses the well-known github.com/cespare/xxhash/v2 instead,
// matching how the rest of the retrieval pack reaches for that module
// rather than rolling its own.
func blockChecksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}
