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

// Package parallel implements the write-behind Database wrapper (C4): it
// persists patches on a background worker while serving reads from an
// overlay of the in-flight command queue on top of the wrapped store.
package parallel

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang/glog"
	"golang.org/x/sync/errgroup"

	"github.com/google/merkledb"
)

// pollInterval is how often wait_sync polls the queue for drained
// commands. Not part of the contract; a condition-variable-based
// notification from the worker would be preferable in a future revision.
const pollInterval = 50 * time.Millisecond

// persistenceCommand is exactly what the worker needs to persist one
// patch. refCount plays the role of Rust's Arc strong count: it starts at
// 2 (wrapper + worker hold a logical reference) and the worker atomically
// drops it to 1 once it has applied the patch. The wrapper's queue GC
// evicts any command whose refCount has fallen to 1.
type persistenceCommand struct {
	manifest  merkledb.Manifest
	patch     merkledb.PartialPatchSet
	staleKeys []merkledb.NodeKey
	refCount  int32
}

func (c *persistenceCommand) inFlight() bool {
	return atomic.LoadInt32(&c.refCount) > 1
}

func (c *persistenceCommand) markApplied() {
	atomic.StoreInt32(&c.refCount, 1)
}

// Wrapper wraps a Database, persisting committed patches on a background
// worker goroutine and serving reads from an overlay of the in-flight
// command queue over the wrapped store.
//
// A Wrapper is bound to exactly one tree version at construction time
// (updatedVersion); every patch applied to it must target that version,
// or be manifest-only. This mirrors the upstream recovery mode, where a
// single version receives repeated patches.
//
// Wrapper is safe for concurrent reads and writes in the sense the
// two-actor model requires: one foreground owner issuing ApplyPatch,
// WaitSync, Prune and reads, and the dedicated background worker that is
// the sole mutator of the wrapped store. It additionally guards the
// in-memory queue with a mutex so that concurrent reader goroutines don't
// race with ApplyPatch/queue GC.
type Wrapper struct {
	inner          merkledb.Database
	updatedVersion uint64

	commandCh          chan *persistenceCommand
	closeCommandChOnce sync.Once
	// doneCh is closed by the worker goroutine immediately before it
	// returns, whether normally (commandCh closed) or abnormally (panic,
	// recovered into the errgroup error). It lets WaitSync poll for a dead
	// worker without consuming errgroup's Wait().
	doneCh chan struct{}

	mu       sync.Mutex
	commands []*persistenceCommand

	eg *errgroup.Group
}

// New promotes inner to a write-behind wrapper tracking updatedVersion,
// with a command queue and channel of the given capacity. It spawns the
// background persistence worker immediately.
func New(inner merkledb.Database, updatedVersion uint64, bufferCapacity int) *Wrapper {
	commandCh := make(chan *persistenceCommand, bufferCapacity)
	doneCh := make(chan struct{})

	w := &Wrapper{
		inner:          inner,
		updatedVersion: updatedVersion,
		commandCh:      commandCh,
		doneCh:         doneCh,
		commands:       make([]*persistenceCommand, 0, bufferCapacity),
	}

	eg, _ := errgroup.WithContext(context.Background())
	eg.Go(func() (err error) {
		// Closing commandCh here, not just in Join, makes worker death
		// deterministically observable to a concurrent ApplyPatch: this
		// close happens before close(doneCh) below is observed by any
		// other goroutine, so a racing send either succeeds (worker
		// still alive) or panics on a closed channel (worker already
		// gone), never silently buffering behind a dead worker.
		// closeCommandCh is idempotent, so Join closing the same channel
		// later doesn't double-close.
		defer close(doneCh)
		defer w.closeCommandCh()
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("persistence worker panicked: %v", r)
			}
		}()
		return runPersistence(inner, updatedVersion, commandCh)
	})
	w.eg = eg

	return w
}

// closeCommandCh closes commandCh at most once, whether called by the
// worker on exit or by Join.
func (w *Wrapper) closeCommandCh() {
	w.closeCommandChOnce.Do(func() { close(w.commandCh) })
}

// runPersistence is the worker loop: it serially applies each command it
// receives until commandCh is closed, reconstructing a single-version
// PatchSet from the command the way the upstream recovery path does.
func runPersistence(inner merkledb.Database, updatedVersion uint64, commandCh <-chan *persistenceCommand) error {
	persisted := 0
	for cmd := range commandCh {
		glog.V(1).Infof("persisting patch #%d", persisted)
		patch := merkledb.PatchSet{
			Manifest:           cmd.manifest,
			PatchesByVersion:   map[uint64]merkledb.PartialPatchSet{updatedVersion: cmd.patch},
			UpdatedVersion:     &updatedVersion,
			StaleKeysByVersion: map[uint64][]merkledb.NodeKey{updatedVersion: cmd.staleKeys},
		}
		if err := inner.ApplyPatch(patch); err != nil {
			return fmt.Errorf("persistence worker: apply patch #%d: %w", persisted, err)
		}
		glog.V(1).Infof("persisted patch #%d", persisted)
		cmd.markApplied()
		persisted++
	}
	return nil
}

// gcLocked evicts every command from the front of the queue whose
// refCount shows the worker has already applied and released it. Caller
// must hold w.mu.
func (w *Wrapper) gcLocked() {
	i := 0
	for ; i < len(w.commands); i++ {
		if w.commands[i].inFlight() {
			break
		}
	}
	if i > 0 {
		w.commands = append(w.commands[:0], w.commands[i:]...)
	}
}

// workerDead reports whether the worker goroutine has already exited. A
// worker that exits while the Wrapper is alive is a fatal invariant
// breach; callers that observe this must join to propagate the worker's
// error (if any) and then abort.
func (w *Wrapper) workerDead() bool {
	select {
	case <-w.doneCh:
		return true
	default:
		return false
	}
}

func (w *Wrapper) abortWorkerDead() {
	err := w.eg.Wait()
	if err != nil {
		glog.Errorf("persistence worker failed: %v", err)
		panic(fmt.Sprintf("parallel: persistence worker failed: %v", err))
	}
	panic("parallel: persistence worker exited while wrapper is alive")
}

// TryManifest implements merkledb.Database.
func (w *Wrapper) TryManifest() (*merkledb.Manifest, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.commands) > 0 {
		m := w.commands[len(w.commands)-1].manifest.Clone()
		return &m, nil
	}
	return w.inner.TryManifest()
}

// TryRoot implements merkledb.Database.
func (w *Wrapper) TryRoot(version uint64) (*merkledb.Root, error) {
	if version != w.updatedVersion {
		return w.inner.TryRoot(version)
	}
	w.mu.Lock()
	for i := len(w.commands) - 1; i >= 0; i-- {
		if r := w.commands[i].patch.Root; r != nil {
			root := *r
			w.mu.Unlock()
			return &root, nil
		}
	}
	w.mu.Unlock()
	return w.inner.TryRoot(version)
}

// TryNode implements merkledb.Database.
func (w *Wrapper) TryNode(key merkledb.NodeKey) (merkledb.Node, error) {
	if key.Version != w.updatedVersion {
		return w.inner.TryNode(key)
	}
	w.mu.Lock()
	for i := len(w.commands) - 1; i >= 0; i-- {
		if node, ok := w.commands[i].patch.Nodes[key]; ok {
			w.mu.Unlock()
			if node.IsLeaf() != key.IsLeaf {
				panic(fmt.Sprintf("parallel: node shape mismatch for key %+v", key))
			}
			return node, nil
		}
	}
	w.mu.Unlock()
	return w.inner.TryNode(key)
}

// Nodes implements merkledb.Database.
func (w *Wrapper) Nodes(keys []merkledb.NodeKey) []merkledb.Node {
	nodes := make([]merkledb.Node, len(keys))

	w.mu.Lock()
	for i := len(w.commands) - 1; i >= 0; i-- {
		cmd := w.commands[i]
		for keyIdx, key := range keys {
			if nodes[keyIdx] != nil || key.Version != w.updatedVersion {
				continue
			}
			if node, ok := cmd.patch.Nodes[key]; ok {
				if node.IsLeaf() != key.IsLeaf {
					panic(fmt.Sprintf("parallel: node shape mismatch for key %+v", key))
				}
				nodes[keyIdx] = node
			}
		}
	}
	w.mu.Unlock()

	var missingIdx []int
	var missingKeys []merkledb.NodeKey
	for i, n := range nodes {
		if n == nil {
			missingIdx = append(missingIdx, i)
			missingKeys = append(missingKeys, keys[i])
		}
	}
	if len(missingKeys) == 0 {
		return nodes
	}
	innerNodes := w.inner.Nodes(missingKeys)
	for j, idx := range missingIdx {
		nodes[idx] = innerNodes[j]
	}
	return nodes
}

// StartProfiling implements merkledb.Database by delegating to the
// wrapped store.
func (w *Wrapper) StartProfiling(op merkledb.ProfiledTreeOperation) merkledb.ProfilingGuard {
	return w.inner.StartProfiling(op)
}

// ApplyPatch implements merkledb.Database. patch must target the
// Wrapper's fixed updatedVersion (and only that version), or be
// manifest-only; stale keys must be empty or a singleton for that same
// version. Violating these preconditions is a programming error and
// panics, matching the upstream assert!-based contract.
func (w *Wrapper) ApplyPatch(patch merkledb.PatchSet) error {
	var partial merkledb.PartialPatchSet
	if patch.UpdatedVersion != nil {
		if *patch.UpdatedVersion != w.updatedVersion {
			panic(fmt.Sprintf("parallel: unsupported update: must update predefined version %d", w.updatedVersion))
		}
		if len(patch.PatchesByVersion) != 1 {
			panic(fmt.Sprintf("parallel: unsupported update: must *only* update version %d", w.updatedVersion))
		}
		p, ok := patch.PatchesByVersion[w.updatedVersion]
		if !ok {
			panic("parallel: PatchSet invariant violated: missing patch for the updated version")
		}
		partial = p
	} else {
		if len(patch.PatchesByVersion) != 0 {
			panic(fmt.Sprintf("parallel: manifest-only update must carry no per-version patches, got %+v", patch))
		}
		partial = merkledb.EmptyPartialPatchSet()
	}

	staleByVersion := patch.StaleKeysByVersion
	if len(staleByVersion) != 0 {
		if len(staleByVersion) != 1 {
			panic("parallel: stale keys must target at most one version")
		}
		if _, ok := staleByVersion[w.updatedVersion]; !ok {
			panic("parallel: stale keys must target the wrapper's updated version")
		}
	}
	staleKeys := staleByVersion[w.updatedVersion]

	cmd := &persistenceCommand{
		manifest:  patch.Manifest,
		patch:     partial,
		staleKeys: staleKeys,
		refCount:  2, // wrapper + worker both hold a logical reference
	}

	w.mu.Lock()
	w.gcLocked()
	glog.V(2).Infof("retained commands: %d", len(w.commands))
	w.mu.Unlock()

	w.sendCommand(cmd)

	w.mu.Lock()
	w.commands = append(w.commands, cmd)
	w.mu.Unlock()

	return nil
}

// sendCommand enqueues cmd on commandCh, deterministically detecting a
// dead worker instead of racing doneCh against a buffered send: a send on
// a closed channel always panics, and the worker closes commandCh before
// it closes doneCh (see New), so there is no window where the worker is
// dead but a send can still succeed silently. The recover is scoped to
// just the select so it never catches abortWorkerDead's own panic.
func (w *Wrapper) sendCommand(cmd *persistenceCommand) {
	workerDead := func() (dead bool) {
		defer func() {
			if recover() != nil {
				dead = true
			}
		}()
		select {
		case w.commandCh <- cmd:
			return false
		case <-w.doneCh:
			return true
		}
	}()
	if workerDead {
		w.abortWorkerDead()
	}
}

// WaitSync blocks until every command queued so far has been applied by
// the persistence worker. It also detects a dead worker, which is a
// fatal invariant breach while the Wrapper is alive.
func (w *Wrapper) WaitSync() {
	for {
		w.mu.Lock()
		w.gcLocked()
		empty := len(w.commands) == 0
		w.mu.Unlock()
		if empty {
			return
		}
		if w.workerDead() {
			w.abortWorkerDead()
		}
		time.Sleep(pollInterval)
	}
}

// MinStaleKeyVersion implements merkledb.PruneDatabase.
func (w *Wrapper) MinStaleKeyVersion() *uint64 {
	w.mu.Lock()
	for _, cmd := range w.commands {
		if len(cmd.staleKeys) == 0 {
			w.mu.Unlock()
			v := w.updatedVersion
			return &v
		}
	}
	w.mu.Unlock()
	if inner, ok := w.inner.(merkledb.PruneDatabase); ok {
		return inner.MinStaleKeyVersion()
	}
	return nil
}

// StaleKeys implements merkledb.PruneDatabase.
func (w *Wrapper) StaleKeys(version uint64) []merkledb.NodeKey {
	inner, ok := w.inner.(merkledb.PruneDatabase)
	if !ok {
		panic("parallel: wrapped store does not implement PruneDatabase")
	}
	if version != w.updatedVersion {
		return inner.StaleKeys(version)
	}
	w.mu.Lock()
	var keys []merkledb.NodeKey
	for _, cmd := range w.commands {
		keys = append(keys, cmd.staleKeys...)
	}
	w.mu.Unlock()
	return append(keys, inner.StaleKeys(version)...)
}

// Prune implements merkledb.PruneDatabase. It first fully drains the
// queue (WaitSync) so that pruning never races with an in-flight write,
// then delegates.
func (w *Wrapper) Prune(patch merkledb.PrunePatchSet) error {
	inner, ok := w.inner.(merkledb.PruneDatabase)
	if !ok {
		panic("parallel: wrapped store does not implement PruneDatabase")
	}
	w.WaitSync()
	return inner.Prune(patch)
}

// Join closes the command channel, waits for the worker to drain and
// exit, and returns the wrapped store. The Wrapper must not be used
// after Join returns.
func (w *Wrapper) Join() merkledb.Database {
	w.closeCommandCh()
	w.mu.Lock()
	w.commands = nil
	w.mu.Unlock()
	if err := w.eg.Wait(); err != nil {
		panic(fmt.Sprintf("parallel: persistence worker failed: %v", err))
	}
	return w.inner
}
