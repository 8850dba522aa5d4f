/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package feature

import (
	"log/slog"
	"time"

	"infcanvas/internal/scene"
	"infcanvas/internal/shortcut"
	"infcanvas/internal/undo"
)

// History records the geometry of user-edited nodes and restores it with
// Ctrl+Z. Ctrl+Y redoes the last undone change.
type History struct {
	Base
	canvas *scene.Canvas
	mgr    *undo.Manager
	now    func() time.Time
	keys   *shortcut.Registry
	undo   *shortcut.Shortcut
	redo   *shortcut.Shortcut
	token  scene.Token
	last   scene.ID
	log    *slog.Logger
}

func NewHistory(d Deps) *History {
	h := &History{
		Base:   NewBase("history", true),
		canvas: d.Canvas,
		mgr:    d.History,
		now:    d.Now,
		keys:   d.Shortcuts,
		log:    d.Log,
	}
	h.undo = bindShortcut(d.Shortcuts, "undo geometry", []string{"Ctrl", "Z"}, func() { h.Undo() })
	h.redo = bindShortcut(d.Shortcuts, "redo geometry", []string{"Ctrl", "Y"}, func() { h.Redo() })
	return h
}

func (h *History) Manager() *undo.Manager { return h.mgr }

func (h *History) Enable() {
	if !h.switchTo(true) {
		return
	}
	h.token = h.canvas.Changed.Connect(h.record)
	setShortcut(h.keys, h.undo, true)
	setShortcut(h.keys, h.redo, true)
}

func (h *History) Disable() {
	if !h.switchTo(false) {
		return
	}
	h.canvas.Changed.Disconnect(h.token)
	setShortcut(h.keys, h.undo, false)
	setShortcut(h.keys, h.redo, false)
}

func (h *History) record(ch scene.Change) {
	h.mgr.PushSnapshot(undo.Snapshot{Object: ch.ID, Pos: ch.Pos, Size: ch.Size, TS: h.now()})
}

func (h *History) current(id scene.ID) undo.Snapshot {
	s := undo.Snapshot{Object: id, TS: h.now()}
	if n, ok := h.canvas.Lookup(id); ok {
		s.Pos, s.Size = n.Global(), n.Size()
	}
	return s
}

// Undo restores the most recent recorded geometry across all nodes.
func (h *History) Undo() bool {
	s, ok := h.mgr.UndoLatest(h.current)
	if !ok {
		return false
	}
	h.last = s.Object
	return h.apply(s)
}

// Redo reapplies the change the last Undo reverted.
func (h *History) Redo() bool {
	if h.last == 0 {
		return false
	}
	s, ok := h.mgr.Redo(h.last, h.current(h.last))
	if !ok {
		return false
	}
	return h.apply(s)
}

// apply moves the node without emitting Changed, so undo does not record
// itself.
func (h *History) apply(s undo.Snapshot) bool {
	n, ok := h.canvas.Lookup(s.Object)
	if !ok {
		h.log.Warn("undo target is gone", "id", uint64(s.Object))
		h.mgr.ClearObject(s.Object)
		return false
	}
	n.UpdateGlobalPos(s.Pos)
	n.Resize(s.Size)
	n.MoveAndShow()
	return true
}
