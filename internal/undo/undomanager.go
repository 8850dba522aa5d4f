/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package undo keeps a bounded geometry history per canvas object so moves
// and resizes can be reverted.
package undo

import (
	"sync"
	"time"

	"infcanvas/internal/scene"
	"infcanvas/internal/vector"
)

// Snapshot is the geometry an object had before a user change.
// TS is when the snapshot was captured.
type Snapshot struct {
	Object scene.ID
	Pos    vector.Pt
	Size   vector.Size
	TS     time.Time
}

// Config controls depth caps and coalescing behavior.
type Config struct {
	// MaxTotal caps snapshots across all objects; the oldest are pruned first.
	MaxTotal int
	// MaxPerObject limits snapshots kept per object (0 means unlimited).
	MaxPerObject int
	// MinInterval coalesces snapshots captured within the interval for the same
	// object. The older snapshot is kept since it holds the state to go back to.
	MinInterval time.Duration
}

// Manager provides an in-memory undo/redo stack per object.
// It is safe for concurrent use.
type Manager struct {
	cfg Config
	mu  sync.Mutex
	// per-object stacks
	undo map[scene.ID][]Snapshot
	redo map[scene.ID][]Snapshot
	// accounting
	total int
}

func NewManager(cfg Config) *Manager {
	if cfg.MaxTotal <= 0 {
		cfg.MaxTotal = 500
	}
	if cfg.MinInterval < 0 {
		cfg.MinInterval = 0
	}
	return &Manager{cfg: cfg, undo: make(map[scene.ID][]Snapshot), redo: make(map[scene.ID][]Snapshot)}
}

// PushSnapshot records a snapshot for an object and clears its redo stack.
// Within MinInterval of the previous snapshot for the same object nothing new
// is pushed.
func (m *Manager) PushSnapshot(s Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stack := m.undo[s.Object]
	m.redo[s.Object] = nil
	if n := len(stack); n > 0 && s.TS.Sub(stack[n-1].TS) < m.cfg.MinInterval {
		stack[n-1].TS = s.TS
		return
	}
	m.undo[s.Object] = append(stack, s)
	m.total++
	m.enforceCapsLocked(s.Object)
}

// Undo pops the newest snapshot of an object and moves it to the redo stack.
// current is the geometry to restore on Redo.
func (m *Manager) Undo(id scene.ID, current Snapshot) (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.undoLocked(id, current)
}

// UndoLatest undoes the most recent snapshot across all objects. current
// returns the present geometry of the chosen object.
func (m *Manager) UndoLatest(current func(scene.ID) Snapshot) (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var (
		best   scene.ID
		bestTS time.Time
		found  bool
	)
	for id, stack := range m.undo {
		if len(stack) == 0 {
			continue
		}
		ts := stack[len(stack)-1].TS
		if !found || ts.After(bestTS) || (ts.Equal(bestTS) && id > best) {
			best, bestTS, found = id, ts, true
		}
	}
	if !found {
		return Snapshot{}, false
	}
	return m.undoLocked(best, current(best))
}

func (m *Manager) undoLocked(id scene.ID, current Snapshot) (Snapshot, bool) {
	stack := m.undo[id]
	if len(stack) == 0 {
		return Snapshot{}, false
	}
	s := stack[len(stack)-1]
	m.undo[id] = stack[:len(stack)-1]
	if len(m.undo[id]) == 0 {
		delete(m.undo, id)
	}
	m.total--
	current.Object = id
	m.redo[id] = append(m.redo[id], current)
	return s, true
}

// Redo pops from redo and pushes current back onto undo.
func (m *Manager) Redo(id scene.ID, current Snapshot) (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.redo[id]
	if len(r) == 0 {
		return Snapshot{}, false
	}
	s := r[len(r)-1]
	m.redo[id] = r[:len(r)-1]
	current.Object = id
	m.undo[id] = append(m.undo[id], current)
	m.total++
	m.enforceCapsLocked(id)
	return s, true
}

// ClearObject drops all history of an object, typically after it was deleted.
func (m *Manager) ClearObject(id scene.ID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.total -= len(m.undo[id])
	delete(m.undo, id)
	delete(m.redo, id)
	if m.total < 0 {
		m.total = 0
	}
}

// Stats returns current sizes for diagnostics.
func (m *Manager) Stats() (objects int, totalSnapshots int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.undo), m.total
}

func (m *Manager) enforceCapsLocked(id scene.ID) {
	// Per-object depth cap
	if m.cfg.MaxPerObject > 0 {
		stack := m.undo[id]
		if len(stack) > m.cfg.MaxPerObject {
			toDrop := len(stack) - m.cfg.MaxPerObject
			m.total -= toDrop
			m.undo[id] = append([]Snapshot{}, stack[toDrop:]...)
		}
	}
	// Global cap: prune oldest across all objects
	for m.cfg.MaxTotal > 0 && m.total > m.cfg.MaxTotal {
		var (
			oldest   scene.ID
			oldestTS time.Time
			found    bool
		)
		for oid, stack := range m.undo {
			if len(stack) == 0 {
				continue
			}
			if !found || stack[0].TS.Before(oldestTS) {
				oldest, oldestTS, found = oid, stack[0].TS, true
			}
		}
		if !found {
			break
		}
		stack := m.undo[oldest]
		m.total--
		m.undo[oldest] = stack[1:]
		if len(m.undo[oldest]) == 0 {
			delete(m.undo, oldest)
		}
	}
}
