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

// Package hashers provides the pluggable hash capability (C1) used by the
// MiniMerkleTree: leaf hashing, pairwise compression, and memoized
// empty-subtree hashes.
package hashers

import "github.com/google/merkledb"

// MaxTreeDepth is the deepest tree any HashCapability needs to serve
// empty-subtree hashes for.
const MaxTreeDepth = 32

// HashCapability is the pluggable hashing primitive required by
// MiniMerkleTree: leaf hashing, pairwise compression, and the hash of an
// empty subtree at a given depth.
type HashCapability interface {
	// LeafSize is the fixed size, in bytes, of leaves this capability
	// hashes.
	LeafSize() int
	// HashLeaf hashes a single leaf's bytes. len(leaf) must equal
	// LeafSize().
	HashLeaf(leaf []byte) merkledb.Hash
	// Compress combines two child hashes into their parent's hash.
	Compress(left, right merkledb.Hash) merkledb.Hash
	// EmptySubtreeHash returns the root hash of a perfect subtree of the
	// given depth whose leaves are all zero bytes. Implementations must
	// memoize this lazily up to depth MaxTreeDepth.
	EmptySubtreeHash(depth int) merkledb.Hash
}
