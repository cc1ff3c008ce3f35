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

package memdb

import (
	"testing"

	"github.com/google/merkledb"
)

func TestApplyPatchThenReadBack(t *testing.T) {
	db := New()
	key := merkledb.NewNodeKey(1, []byte{0x01}, true)
	node := merkledb.NewLeafNode([]byte("k"), []byte("v"), merkledb.Hash{5})
	root := merkledb.Root{Hash: merkledb.Hash{6}}
	v := uint64(1)

	err := db.ApplyPatch(merkledb.PatchSet{
		Manifest: merkledb.Manifest{Version: 1},
		PatchesByVersion: map[uint64]merkledb.PartialPatchSet{
			1: {Root: &root, Nodes: map[merkledb.NodeKey]merkledb.Node{key: node}},
		},
		UpdatedVersion: &v,
	})
	if err != nil {
		t.Fatalf("ApplyPatch: %v", err)
	}

	gotNode, err := db.TryNode(key)
	if err != nil || gotNode == nil || gotNode.Hash() != node.Hash() {
		t.Fatalf("TryNode(key) = %v, %v, want %v", gotNode, err, node)
	}
	gotRoot, err := db.TryRoot(1)
	if err != nil || gotRoot == nil || gotRoot.Hash != root.Hash {
		t.Fatalf("TryRoot(1) = %v, %v, want %+v", gotRoot, err, root)
	}

	missing, err := db.TryNode(merkledb.NewNodeKey(1, []byte{0xff}, true))
	if err != nil || missing != nil {
		t.Fatalf("TryNode(missing) = %v, %v, want nil, nil", missing, err)
	}
}

func TestNodesPreservesOrderAndReportsMissingAsNil(t *testing.T) {
	db := New()
	present := merkledb.NewNodeKey(1, []byte{0x01}, true)
	missing := merkledb.NewNodeKey(1, []byte{0x02}, true)
	node := merkledb.NewLeafNode([]byte("k"), []byte("v"), merkledb.Hash{1})
	v := uint64(1)

	if err := db.ApplyPatch(merkledb.PatchSet{
		Manifest: merkledb.Manifest{Version: 1},
		PatchesByVersion: map[uint64]merkledb.PartialPatchSet{
			1: {Nodes: map[merkledb.NodeKey]merkledb.Node{present: node}},
		},
		UpdatedVersion: &v,
	}); err != nil {
		t.Fatalf("ApplyPatch: %v", err)
	}

	got := db.Nodes([]merkledb.NodeKey{missing, present})
	if len(got) != 2 {
		t.Fatalf("Nodes() returned %d entries, want 2", len(got))
	}
	if got[0] != nil {
		t.Errorf("Nodes()[0] = %v, want nil for missing key", got[0])
	}
	if got[1] == nil || got[1].Hash() != node.Hash() {
		t.Errorf("Nodes()[1] = %v, want %v", got[1], node)
	}
}

func TestPruneRemovesKeysAndOldStaleRecords(t *testing.T) {
	db := New()
	key := merkledb.NewNodeKey(1, []byte{0x01}, true)
	node := merkledb.NewLeafNode([]byte("k"), []byte("v"), merkledb.Hash{1})
	v := uint64(1)

	if err := db.ApplyPatch(merkledb.PatchSet{
		Manifest: merkledb.Manifest{Version: 1},
		PatchesByVersion: map[uint64]merkledb.PartialPatchSet{
			1: {Nodes: map[merkledb.NodeKey]merkledb.Node{key: node}},
		},
		UpdatedVersion:     &v,
		StaleKeysByVersion: map[uint64][]merkledb.NodeKey{1: {key}},
	}); err != nil {
		t.Fatalf("ApplyPatch: %v", err)
	}

	if min := db.MinStaleKeyVersion(); min == nil || *min != 1 {
		t.Fatalf("MinStaleKeyVersion() = %v, want 1", min)
	}

	if err := db.Prune(merkledb.PrunePatchSet{KeysToRemove: []merkledb.NodeKey{key}, MinRetainedVersion: 1}); err != nil {
		t.Fatalf("Prune: %v", err)
	}

	gotNode, err := db.TryNode(key)
	if err != nil || gotNode != nil {
		t.Fatalf("TryNode(key) after Prune = %v, %v, want nil, nil", gotNode, err)
	}
	if min := db.MinStaleKeyVersion(); min != nil {
		t.Fatalf("MinStaleKeyVersion() after Prune = %v, want nil", min)
	}
}
