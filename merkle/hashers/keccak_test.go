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
	"testing"

	"github.com/google/merkledb"
)

func TestEmptySubtreeHashIsDeterministicAndMemoized(t *testing.T) {
	h := DefaultKeccakHasher()

	first := make([]merkledb.Hash, MaxTreeDepth+1)
	for d := 0; d <= MaxTreeDepth; d++ {
		first[d] = h.EmptySubtreeHash(d)
	}

	h2 := DefaultKeccakHasher()
	for d := 0; d <= MaxTreeDepth; d++ {
		got := h2.EmptySubtreeHash(d)
		if got != first[d] {
			t.Errorf("EmptySubtreeHash(%d) not stable across hasher instances: %x != %x", d, got, first[d])
		}
	}
}

func TestEmptySubtreeHashBuildsBottomUp(t *testing.T) {
	h := DefaultKeccakHasher()
	for d := 1; d <= MaxTreeDepth; d++ {
		want := h.Compress(h.EmptySubtreeHash(d-1), h.EmptySubtreeHash(d-1))
		got := h.EmptySubtreeHash(d)
		if got != want {
			t.Errorf("EmptySubtreeHash(%d) = %x, want Compress(EmptySubtreeHash(%d), same) = %x", d, got, d-1, want)
		}
	}
}

func TestEmptySubtreeHashRejectsOutOfRangeDepth(t *testing.T) {
	h := DefaultKeccakHasher()
	for _, d := range []int{-1, MaxTreeDepth + 1} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("EmptySubtreeHash(%d) did not panic", d)
				}
			}()
			h.EmptySubtreeHash(d)
		}()
	}
}

func TestHashLeafRejectsWrongSize(t *testing.T) {
	h := NewKeccakHasher(8)
	defer func() {
		if recover() == nil {
			t.Error("HashLeaf with wrong-sized leaf did not panic")
		}
	}()
	h.HashLeaf(make([]byte, 7))
}

func TestDistinctLeafSizesMemoizeIndependently(t *testing.T) {
	a := NewKeccakHasher(8)
	b := NewKeccakHasher(16)
	if a.EmptySubtreeHash(0) == b.EmptySubtreeHash(0) {
		t.Error("empty-leaf hashes for different leaf sizes collided")
	}
}
