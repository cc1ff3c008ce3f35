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

package storage

import (
	"testing"

	"github.com/google/merkledb"
	"github.com/google/merkledb/storage/memdb"
)

func TestDirectEitherDispatchesToWrappedStore(t *testing.T) {
	inner := memdb.New()
	e := NewDirect(inner)

	if e.IsParallel() {
		t.Fatal("fresh direct Either reports IsParallel")
	}

	patch := merkledb.PatchSet{Manifest: merkledb.Manifest{Version: 1}}
	if err := e.ApplyPatch(patch); err != nil {
		t.Fatalf("ApplyPatch: %v", err)
	}
	m, err := e.TryManifest()
	if err != nil || m == nil || m.Version != 1 {
		t.Fatalf("TryManifest() = %+v, %v, want version 1", m, err)
	}

	if got := e.Join(); got != merkledb.Database(inner) {
		t.Fatalf("Join() on a never-promoted Either = %v, want the wrapped store", got)
	}
}

func TestPromoteToParallelThenJoinRoundTrips(t *testing.T) {
	inner := memdb.New()
	e := NewDirect(inner)
	e.PromoteToParallel(3, 4)
	if !e.IsParallel() {
		t.Fatal("Either did not report IsParallel after promotion")
	}

	key := merkledb.NewNodeKey(3, []byte{0x0a}, true)
	node := merkledb.NewLeafNode([]byte{1}, []byte{2}, merkledb.Hash{7})
	v := uint64(3)
	patch := merkledb.PatchSet{
		Manifest: merkledb.Manifest{Version: 3},
		PatchesByVersion: map[uint64]merkledb.PartialPatchSet{
			3: {Nodes: map[merkledb.NodeKey]merkledb.Node{key: node}},
		},
		UpdatedVersion: &v,
	}
	if err := e.ApplyPatch(patch); err != nil {
		t.Fatalf("ApplyPatch: %v", err)
	}

	got := e.Join()
	if got != merkledb.Database(inner) {
		t.Fatal("Join() after promotion did not return the original inner store")
	}
	storedNode, err := inner.TryNode(key)
	if err != nil {
		t.Fatalf("inner.TryNode: %v", err)
	}
	if storedNode == nil || storedNode.Hash() != node.Hash() {
		t.Fatalf("inner.TryNode(key) after Join = %v, want %v", storedNode, node)
	}
}

func TestPromoteToParallelTwicePanics(t *testing.T) {
	e := NewDirect(memdb.New())
	e.PromoteToParallel(1, 2)
	defer func() {
		if recover() == nil {
			t.Error("second PromoteToParallel call did not panic")
		}
	}()
	e.PromoteToParallel(1, 2)
}
