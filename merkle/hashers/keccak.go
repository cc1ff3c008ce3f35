// Copyright 2016 Google Inc. All Rights Reserved.
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

package hashers

import (
	"sync"

	"golang.org/x/crypto/sha3"

	"github.com/google/merkledb"
)

// DefaultLeafSize is the leaf size used by the default keccak-256 binding.
const DefaultLeafSize = 88

// KeccakHasher is the default HashCapability, using keccak-256 over
// fixed-size leaves. Empty-subtree hashes are memoized lazily, once per
// process, per leaf size.
type KeccakHasher struct {
	leafSize int
}

// NewKeccakHasher returns a KeccakHasher for the given leaf size. Most
// callers should use DefaultKeccakHasher instead.
func NewKeccakHasher(leafSize int) *KeccakHasher {
	if leafSize <= 0 {
		panic("hashers: leaf size must be positive")
	}
	return &KeccakHasher{leafSize: leafSize}
}

// DefaultKeccakHasher returns the keccak-256 / 88-byte-leaf binding used
// by default throughout this module.
func DefaultKeccakHasher() *KeccakHasher {
	return NewKeccakHasher(DefaultLeafSize)
}

// LeafSize implements HashCapability.
func (h *KeccakHasher) LeafSize() int { return h.leafSize }

// HashLeaf implements HashCapability.
func (h *KeccakHasher) HashLeaf(leaf []byte) merkledb.Hash {
	if len(leaf) != h.leafSize {
		panic("hashers: leaf has the wrong size for this capability")
	}
	return keccak256(leaf)
}

// Compress implements HashCapability.
func (h *KeccakHasher) Compress(left, right merkledb.Hash) merkledb.Hash {
	var buf [64]byte
	copy(buf[:32], left[:])
	copy(buf[32:], right[:])
	return keccak256(buf[:])
}

// EmptySubtreeHash implements HashCapability.
func (h *KeccakHasher) EmptySubtreeHash(depth int) merkledb.Hash {
	if depth < 0 || depth > MaxTreeDepth {
		panic("hashers: depth out of range")
	}
	return emptyTreeHashes(h.leafSize)[depth]
}

func keccak256(data []byte) merkledb.Hash {
	var out merkledb.Hash
	d := sha3.NewLegacyKeccak256()
	d.Write(data)
	d.Sum(out[:0])
	return out
}

// emptyMemo holds the lazily-computed, immutable empty-subtree hash table
// for one leaf size. Entry i is the hash of a perfect subtree of depth i
// whose leaves are all zero bytes.
type emptyMemo struct {
	once   sync.Once
	hashes []merkledb.Hash
}

var emptyMemosMu sync.Mutex
var emptyMemos = map[int]*emptyMemo{}

// emptyTreeHashes returns (computing on first use) the MaxTreeDepth+1
// empty-subtree hashes for the given leaf size. The table is process-wide
// and immutable after its first computation.
func emptyTreeHashes(leafSize int) []merkledb.Hash {
	emptyMemosMu.Lock()
	m, ok := emptyMemos[leafSize]
	if !ok {
		m = &emptyMemo{}
		emptyMemos[leafSize] = m
	}
	emptyMemosMu.Unlock()

	m.once.Do(func() {
		hashes := make([]merkledb.Hash, MaxTreeDepth+1)
		hashes[0] = keccak256(make([]byte, leafSize))
		for d := 1; d <= MaxTreeDepth; d++ {
			hashes[d] = keccak256(append(append([]byte{}, hashes[d-1][:]...), hashes[d-1][:]...))
		}
		m.hashes = hashes
	})
	return m.hashes
}
