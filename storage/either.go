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

// Package storage provides EitherWrapper (C5), a store that dispatches
// uniformly whether or not it has been promoted to write-behind
// persistence, and the wrapper construction glue (storage/parallel,
// storage/memdb, storage/metrics) it sits on top of.
package storage

import (
	"github.com/google/merkledb"
	"github.com/google/merkledb/storage/parallel"
)

// Either wraps a store that is either used directly or has been promoted
// to asynchronous, write-behind persistence via storage/parallel.Wrapper.
// It dispatches every Database (and, when the held store supports it,
// PruneDatabase) call uniformly regardless of which mode it's in.
//
// The zero value is not usable; construct with NewDirect.
type Either struct {
	direct   merkledb.Database
	parallel *parallel.Wrapper
}

// NewDirect wraps store for direct (synchronous) use.
func NewDirect(store merkledb.Database) *Either {
	return &Either{direct: store}
}

// active returns whichever of direct/parallel is currently live.
func (e *Either) active() merkledb.Database {
	if e.parallel != nil {
		return e.parallel
	}
	return e.direct
}

// PromoteToParallel upgrades a directly-used store to a write-behind
// wrapper tracking updatedVersion, with the given command queue/channel
// capacity. It is a one-way transition: once promoted, an Either cannot
// be demoted back to Direct except by Join. Panics if already promoted.
func (e *Either) PromoteToParallel(updatedVersion uint64, capacity int) {
	if e.parallel != nil {
		panic("storage: Either is already promoted to parallel")
	}
	e.parallel = parallel.New(e.direct, updatedVersion, capacity)
	e.direct = nil
}

// IsParallel reports whether this Either currently holds a promoted
// write-behind wrapper rather than a direct store.
func (e *Either) IsParallel() bool {
	return e.parallel != nil
}

// Join recovers the underlying store. If currently promoted, it closes
// the command channel, waits for the background worker to drain and
// exit, and returns the wrapped store (see parallel.Wrapper.Join); the
// Either must not be used after Join returns. If never promoted, it
// returns the store directly.
func (e *Either) Join() merkledb.Database {
	if e.parallel != nil {
		inner := e.parallel.Join()
		e.parallel = nil
		return inner
	}
	return e.direct
}

// TryManifest implements merkledb.Database.
func (e *Either) TryManifest() (*merkledb.Manifest, error) { return e.active().TryManifest() }

// TryRoot implements merkledb.Database.
func (e *Either) TryRoot(version uint64) (*merkledb.Root, error) { return e.active().TryRoot(version) }

// TryNode implements merkledb.Database.
func (e *Either) TryNode(key merkledb.NodeKey) (merkledb.Node, error) { return e.active().TryNode(key) }

// Nodes implements merkledb.Database.
func (e *Either) Nodes(keys []merkledb.NodeKey) []merkledb.Node { return e.active().Nodes(keys) }

// ApplyPatch implements merkledb.Database.
func (e *Either) ApplyPatch(patch merkledb.PatchSet) error { return e.active().ApplyPatch(patch) }

// StartProfiling implements merkledb.Database.
func (e *Either) StartProfiling(op merkledb.ProfiledTreeOperation) merkledb.ProfilingGuard {
	return e.active().StartProfiling(op)
}

// asPruneDatabase returns the active store as a PruneDatabase, panicking
// if it doesn't implement one; every call site below is itself part of
// the PruneDatabase contract, so this is a programming error, not a
// runtime condition callers should expect to recover from.
func (e *Either) asPruneDatabase() merkledb.PruneDatabase {
	pd, ok := e.active().(merkledb.PruneDatabase)
	if !ok {
		panic("storage: Either's active store does not implement PruneDatabase")
	}
	return pd
}

// MinStaleKeyVersion implements merkledb.PruneDatabase.
func (e *Either) MinStaleKeyVersion() *uint64 { return e.asPruneDatabase().MinStaleKeyVersion() }

// StaleKeys implements merkledb.PruneDatabase.
func (e *Either) StaleKeys(version uint64) []merkledb.NodeKey {
	return e.asPruneDatabase().StaleKeys(version)
}

// Prune implements merkledb.PruneDatabase.
func (e *Either) Prune(patch merkledb.PrunePatchSet) error { return e.asPruneDatabase().Prune(patch) }
