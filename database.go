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

package merkledb

// ProfilingGuard is returned by Database.StartProfiling. It scopes a
// timing span; call End() when the profiled operation completes. Go has
// no deterministic destructors, so callers must call End() explicitly
// (typically via defer) rather than relying on the guard going out of
// scope.
type ProfilingGuard interface {
	End()
}

// noopProfilingGuard is a ProfilingGuard that does nothing, used by
// Database implementations that don't profile.
type noopProfilingGuard struct{}

func (noopProfilingGuard) End() {}

// NoopProfilingGuard returns a ProfilingGuard whose End is a no-op.
func NoopProfilingGuard() ProfilingGuard { return noopProfilingGuard{} }

// Database is the narrow storage capability consumed by the write-behind
// wrapper and higher layers. Implementations own the persisted
// representation of manifests, roots, and nodes; this module ships one
// reference implementation (storage/memdb) good enough to drive tests.
type Database interface {
	// TryManifest returns the current manifest, or nil if none has been
	// written yet.
	TryManifest() (*Manifest, error)
	// TryRoot returns the root at the given version, or nil if that
	// version has no stored root.
	TryRoot(version uint64) (*Root, error)
	// TryNode returns the node stored under key, or nil if absent.
	// key.IsLeaf is an expected-shape hint; a mismatch between it and
	// the node actually found is a programming error on the caller's
	// side.
	TryNode(key NodeKey) (Node, error)
	// Nodes performs a batch lookup, returning a slice of the same
	// length as keys, in the same order. Deserialization failures for
	// individual keys surface as a nil entry rather than an error; see
	// DESIGN.md for why this asymmetry with TryNode is kept as
	// specified rather than "fixed".
	Nodes(keys []NodeKey) []Node
	// ApplyPatch persists patch atomically and sequentially with respect
	// to any other call to ApplyPatch.
	ApplyPatch(patch PatchSet) error
	// StartProfiling returns a scoped guard timing the named operation.
	StartProfiling(op ProfiledTreeOperation) ProfilingGuard
}

// PruneDatabase extends Database with destructive pruning of stale node
// versions. Implementations must not let Prune race with ApplyPatch.
type PruneDatabase interface {
	Database

	// MinStaleKeyVersion returns the oldest version with stale keys
	// recorded against it, or nil if there are none.
	MinStaleKeyVersion() *uint64
	// StaleKeys returns the node keys marked stale at the given version.
	StaleKeys(version uint64) []NodeKey
	// Prune destructively removes the given stale keys. Must not be
	// called while writes are in flight; WriteBehindWrapper synchronizes
	// before delegating.
	Prune(patch PrunePatchSet) error
}
