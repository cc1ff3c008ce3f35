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

// Package merkle implements MiniMerkleTree, a bounded-depth, left-leaning,
// growable in-memory Merkle tree that supports computing roots and Merkle
// paths after trimming a prefix of leaves.
package merkle

import (
	"fmt"
	"math/bits"

	"github.com/google/merkledb"
	"github.com/google/merkledb/merkle/hashers"
)

// MiniMerkleTree is an in-memory Merkle tree of bounded depth (at most
// hashers.MaxTreeDepth). It is left-leaning: during construction its size
// can be larger than the number of supplied leaves, and the remaining
// leaves are treated as all-zero. It grows by doubling when pushed past
// its current capacity, and never shrinks.
//
// The tree is optimized for the case where queries are performed on the
// rightmost leaves while the leftmost leaves are trimmed (cached). Caching
// lets roots and paths be computed in O(max(n, depth)) time, where n is
// the number of untrimmed leaves, using O(depth) extra cache space.
// Trimming forfeits the ability to retrieve paths to the trimmed leaves.
//
// MiniMerkleTree is not safe for concurrent use.
type MiniMerkleTree struct {
	hasher hashers.HashCapability

	hashes         []merkledb.Hash
	binaryTreeSize int
	startIndex     int
	// cache is either empty, or has length depth+1. cache[level] holds
	// the sibling hash needed to reconstruct the path through the
	// trimmed prefix at that level; cache[depth] is the root as of the
	// last trim.
	cache []merkledb.Hash
}

// New builds a MiniMerkleTree from leaves using the default keccak-256 /
// 88-byte-leaf hash capability. See NewWithHasher for the general form.
func New(leaves [][]byte, minTreeSize *int) *MiniMerkleTree {
	return NewWithHasher(hashers.DefaultKeccakHasher(), leaves, minTreeSize)
}

// NewWithHasher builds a MiniMerkleTree from the supplied leaves using the
// given hash capability. If minTreeSize is non-nil and larger than the
// next power of two at or above len(leaves), the tree is padded to
// minTreeSize with implicit zero leaves.
//
// Panics if minTreeSize is supplied and is not a power of two, if any leaf
// has the wrong size for hasher, or if the resulting tree depth exceeds
// hashers.MaxTreeDepth.
func NewWithHasher(hasher hashers.HashCapability, leaves [][]byte, minTreeSize *int) *MiniMerkleTree {
	hashes := make([]merkledb.Hash, len(leaves))
	for i, leaf := range leaves {
		hashes[i] = hasher.HashLeaf(leaf)
	}

	binaryTreeSize := nextPowerOfTwo(len(hashes))
	if minTreeSize != nil {
		if !isPowerOfTwo(*minTreeSize) {
			panic("merkle: min tree size must be a power of two")
		}
		if *minTreeSize > binaryTreeSize {
			binaryTreeSize = *minTreeSize
		}
	}
	if binaryTreeSize == 0 {
		binaryTreeSize = 1
	}

	if depth := treeDepthBySize(binaryTreeSize); depth > hashers.MaxTreeDepth {
		panic(fmt.Sprintf("merkle: tree contains more than 2^%d items; this is not supported", hashers.MaxTreeDepth))
	}

	return &MiniMerkleTree{
		hasher:         hasher,
		hashes:         hashes,
		binaryTreeSize: binaryTreeSize,
		startIndex:     0,
		cache:          nil,
	}
}

// IsEmpty reports whether the tree has no untrimmed leaves and has never
// been trimmed.
func (t *MiniMerkleTree) IsEmpty() bool {
	return t.startIndex == 0 && len(t.hashes) == 0
}

// Root returns the current root hash.
func (t *MiniMerkleTree) Root() merkledb.Hash {
	if len(t.hashes) == 0 {
		depth := treeDepthBySize(t.binaryTreeSize)
		if t.startIndex == 0 {
			return t.hasher.EmptySubtreeHash(depth)
		}
		return t.cache[depth]
	}
	return t.computeRootAndPath(0, nil, nil)
}

// ProofFor returns the root and the Merkle path for the leaf at the given
// 0-based index, relative to the leftmost untrimmed leaf. Panics if index
// is out of range.
func (t *MiniMerkleTree) ProofFor(index int) (merkledb.Hash, []merkledb.Hash) {
	if index < 0 || index >= len(t.hashes) {
		panic(fmt.Sprintf("merkle: index %d out of range for %d leaves", index, len(t.hashes)))
	}
	var path []merkledb.Hash
	root := t.computeRootAndPath(index, nil, &path)
	return root, path
}

// RangeProof returns the root and the Merkle paths for the left and right
// edges of the range [0, length) of untrimmed leaves (0-based, relative to
// the leftmost untrimmed leaf). Panics unless 1 <= length <= number of
// untrimmed leaves.
func (t *MiniMerkleTree) RangeProof(length int) (root merkledb.Hash, left, right []merkledb.Hash) {
	if length < 1 || length > len(t.hashes) {
		panic(fmt.Sprintf("merkle: range length %d out of range for %d leaves", length, len(t.hashes)))
	}
	root = t.computeRootAndPath(length-1, &left, &right)
	return root, left, right
}

// Push appends a leaf to the tree, replacing the leftmost empty leaf. If
// the tree is already full, its logical size doubles.
func (t *MiniMerkleTree) Push(leaf []byte) {
	t.hashes = append(t.hashes, t.hasher.HashLeaf(leaf))
	if t.startIndex+len(t.hashes) > t.binaryTreeSize {
		t.binaryTreeSize *= 2
	}
}

// TrimStart discards the leftmost count leaves, caching the sibling
// hashes needed to keep computing roots and paths through the remainder.
// It does not change the root. Panics if count exceeds the number of
// untrimmed leaves.
func (t *MiniMerkleTree) TrimStart(count int) {
	if count > len(t.hashes) {
		panic("merkle: not enough leaves to trim")
	}
	var newCache []merkledb.Hash
	root := t.computeRootAndPath(count, nil, &newCache)
	t.hashes = append([]merkledb.Hash{}, t.hashes[count:]...)
	t.startIndex += count
	// Record the root last so that a subsequent push on a fully-trimmed
	// tree (which has no untrimmed leaves left) doesn't lose it.
	newCache = append(newCache, root)
	t.cache = newCache
}

// computeRootAndPath is the path algorithm from spec.md §4.2, ported from
// the original MiniMerkleTree::compute_merkle_root_and_path. It walks the
// tree bottom-up, folding in the trim cache at odd start offsets and an
// empty-subtree hash at odd lengths, optionally recording the sibling
// hash needed to authenticate leftPath's and rightPath's requested
// indices along the way.
func (t *MiniMerkleTree) computeRootAndPath(endIndex int, leftPath, rightPath *[]merkledb.Hash) merkledb.Hash {
	depth := treeDepthBySize(t.binaryTreeSize)

	hashes := append([]merkledb.Hash{}, t.hashes...)
	startIndex := t.startIndex

	for level := 0; level < depth; level++ {
		emptyHashAtLevel := t.hasher.EmptySubtreeHash(level)

		if startIndex%2 == 1 {
			hashes = append([]merkledb.Hash{t.cache[level]}, hashes...)
		}
		if len(hashes)%2 == 1 {
			hashes = append(hashes, emptyHashAtLevel)
		}

		recordSibling := func(path *[]merkledb.Hash, index int) {
			if path == nil {
				return
			}
			sibling := ((startIndex+index)^1) - startIndex + startIndex%2
			var hash merkledb.Hash
			if sibling >= 0 && sibling < len(hashes) {
				hash = hashes[sibling]
			}
			*path = append(*path, hash)
		}

		recordSibling(leftPath, 0)
		recordSibling(rightPath, endIndex)

		levelLen := len(hashes) / 2
		for i := 0; i < levelLen; i++ {
			hashes[i] = t.hasher.Compress(hashes[2*i], hashes[2*i+1])
		}
		hashes = hashes[:levelLen]

		endIndex = (endIndex + startIndex%2) / 2
		startIndex /= 2
	}

	return hashes[0]
}

func treeDepthBySize(treeSize int) int {
	return bits.TrailingZeros(uint(treeSize))
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return n
	}
	return 1 << bits.Len(uint(n-1))
}
