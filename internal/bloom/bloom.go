// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package bloom provides a probabilistic set membership filter used to
// accelerate negative lookups against the static fast-path route cache.
package bloom

import "hash/fnv"

// Filter is a bloom filter: a probabilistic data structure that can tell you
// - "Definitely NOT in the set" (100% accurate)
// - "Possibly in the set" (may have false positives)
//
// Used to reject static-path keys that definitely aren't registered before
// paying for a map lookup. Bits can only be set, never cleared; a filter
// covering a mutated key set must be rebuilt from scratch (see Reset).
type Filter struct {
	bits  []uint64 // Bit array (each uint64 holds 64 bits)
	size  uint64   // Total number of bits
	seeds []uint64 // Hash seeds for multiple hash functions
}

// New creates a bloom filter sized for approximately size bits, using
// numHashFuncs independent hash functions derived from a single FNV-1a pass.
func New(size uint64, numHashFuncs int) *Filter {
	bf := &Filter{
		bits:  make([]uint64, (size+63)/64), // Round up to nearest 64-bit boundary
		size:  size,
		seeds: make([]uint64, numHashFuncs),
	}

	for i := range numHashFuncs {
		//nolint:gosec // G115: numHashFuncs is small (typically < 10), overflow impossible
		bf.seeds[i] = uint64(i + 1)
	}

	return bf
}

// hashWithSeed applies a seed to a pre-computed base hash.
// The seed is XORed with the base hash to create different hash functions.
// This avoids repeatedly creating hash.Hash instances.
func (bf *Filter) hashWithSeed(baseHash, seed uint64) uint64 {
	return (baseHash ^ seed) % bf.size
}

// Add adds an element to the bloom filter.
func (bf *Filter) Add(data []byte) {
	h := fnv.New64a()
	h.Write(data)
	baseHash := h.Sum64()

	for _, seed := range bf.seeds {
		pos := bf.hashWithSeed(baseHash, seed)
		bf.bits[pos/64] |= 1 << (pos % 64)
	}
}

// Test reports whether data might be in the filter. A false result is
// definitive; a true result must be confirmed against the authoritative map.
func (bf *Filter) Test(data []byte) bool {
	h := fnv.New64a()
	h.Write(data)
	baseHash := h.Sum64()

	return bf.TestWithPrecomputedHash(baseHash)
}

// TestWithPrecomputedHash checks membership using a hash the caller already
// computed, avoiding a redundant FNV-1a pass over the same key bytes.
func (bf *Filter) TestWithPrecomputedHash(baseHash uint64) bool {
	for _, seed := range bf.seeds {
		pos := bf.hashWithSeed(baseHash, seed)
		if bf.bits[pos/64]&(1<<(pos%64)) == 0 {
			return false // Early exit - definitely not present
		}
	}

	return true
}

// Reset clears the filter in place, discarding all membership bits. Callers
// that need to drop a key re-add the surviving key set afterward — bits
// cannot be selectively unset.
func (bf *Filter) Reset() {
	for i := range bf.bits {
		bf.bits[i] = 0
	}
}
