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

// Package memdb is a reference, in-memory Database and PruneDatabase
// implementation. It exists to drive tests for the write-behind wrapper
// and the tree; it is not a production storage backend (no compaction,
// no persistence across process restarts, one global mutex).
package memdb

import (
	"sync"

	"github.com/google/merkledb"
)

// DB is a reference in-memory Database/PruneDatabase implementation.
type DB struct {
	mu sync.Mutex

	manifest *merkledb.Manifest
	roots    map[uint64]merkledb.Root
	nodes    map[merkledb.NodeKey]merkledb.Node
	stale    map[uint64][]merkledb.NodeKey
}

// New returns an empty DB.
func New() *DB {
	return &DB{
		roots: make(map[uint64]merkledb.Root),
		nodes: make(map[merkledb.NodeKey]merkledb.Node),
		stale: make(map[uint64][]merkledb.NodeKey),
	}
}

// TryManifest implements merkledb.Database.
func (db *DB) TryManifest() (*merkledb.Manifest, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.manifest == nil {
		return nil, nil
	}
	m := db.manifest.Clone()
	return &m, nil
}

// TryRoot implements merkledb.Database.
func (db *DB) TryRoot(version uint64) (*merkledb.Root, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	r, ok := db.roots[version]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

// TryNode implements merkledb.Database.
func (db *DB) TryNode(key merkledb.NodeKey) (merkledb.Node, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	node, ok := db.nodes[key]
	if !ok {
		return nil, nil
	}
	return node, nil
}

// Nodes implements merkledb.Database. As with TryNode, a missing key yields
// a nil entry (see the Database.Nodes doc comment).
func (db *DB) Nodes(keys []merkledb.NodeKey) []merkledb.Node {
	db.mu.Lock()
	defer db.mu.Unlock()
	out := make([]merkledb.Node, len(keys))
	for i, k := range keys {
		out[i] = db.nodes[k]
	}
	return out
}

// ApplyPatch implements merkledb.Database, writing the manifest, every
// per-version root and node set, and recording stale keys against their
// target versions.
func (db *DB) ApplyPatch(patch merkledb.PatchSet) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	m := patch.Manifest.Clone()
	db.manifest = &m

	for version, partial := range patch.PatchesByVersion {
		if partial.Root != nil {
			db.roots[version] = *partial.Root
		}
		for key, node := range partial.Nodes {
			db.nodes[key] = node
		}
	}
	for version, keys := range patch.StaleKeysByVersion {
		if len(keys) == 0 {
			continue
		}
		db.stale[version] = append(db.stale[version], keys...)
	}
	return nil
}

// StartProfiling implements merkledb.Database. memdb doesn't profile; it
// returns a no-op guard.
func (db *DB) StartProfiling(merkledb.ProfiledTreeOperation) merkledb.ProfilingGuard {
	return merkledb.NoopProfilingGuard()
}

// MinStaleKeyVersion implements merkledb.PruneDatabase.
func (db *DB) MinStaleKeyVersion() *uint64 {
	db.mu.Lock()
	defer db.mu.Unlock()
	var min *uint64
	for version, keys := range db.stale {
		if len(keys) == 0 {
			continue
		}
		v := version
		if min == nil || v < *min {
			min = &v
		}
	}
	return min
}

// StaleKeys implements merkledb.PruneDatabase.
func (db *DB) StaleKeys(version uint64) []merkledb.NodeKey {
	db.mu.Lock()
	defer db.mu.Unlock()
	return append([]merkledb.NodeKey{}, db.stale[version]...)
}

// Prune implements merkledb.PruneDatabase, deleting the given keys and
// discarding every version's recorded stale keys at or below
// patch.MinRetainedVersion.
func (db *DB) Prune(patch merkledb.PrunePatchSet) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, key := range patch.KeysToRemove {
		delete(db.nodes, key)
	}
	for version := range db.stale {
		if version <= patch.MinRetainedVersion {
			delete(db.stale, version)
		}
	}
	return nil
}
