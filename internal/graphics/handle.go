/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package graphics

import "infcanvas/internal/vector"

// HandleSize is the side length of a handle's hit box in canvas units.
const HandleSize = 8

// Handle is a small draggable control point owned by a resizable shape.
// Positions are canvas-global.
type Handle struct {
	pos     vector.Pt
	cursor  Cursor
	sink    CursorSink
	visible bool

	hovered bool
	token   CursorToken

	listeners []func(vector.Pt)
}

// NewHandle places a handle at p. sink may be nil, in which case hovering
// does not change the cursor.
func NewHandle(sink CursorSink, p vector.Pt, cursor Cursor) *Handle {
	return &Handle{pos: p, cursor: cursor, sink: sink}
}

func (h *Handle) Position() vector.Pt { return h.pos }
func (h *Handle) Cursor() Cursor      { return h.cursor }

// SetPosition moves the handle and always notifies listeners, whether the
// move came from a drag or from the owning shape.
func (h *Handle) SetPosition(p vector.Pt) {
	h.pos = p
	for _, fn := range h.listeners {
		fn(p)
	}
}

// OnPositionChanged subscribes fn to position changes.
func (h *Handle) OnPositionChanged(fn func(vector.Pt)) {
	h.listeners = append(h.listeners, fn)
}

// HitBox is the square centred on the handle that accepts pointer input.
func (h *Handle) HitBox() vector.Bounds {
	half := float32(HandleSize) / 2
	return vector.B(h.pos.X-half, h.pos.X+half, h.pos.Y-half, h.pos.Y+half)
}

// Hit reports whether p falls inside the hit box.
func (h *Handle) Hit(p vector.Pt) bool { return h.HitBox().ContainsPoint(p) }

// HoverEnter pushes the handle cursor. A second enter without a leave is
// ignored so enter and leave stay paired.
func (h *Handle) HoverEnter() {
	if h.hovered {
		return
	}
	h.hovered = true
	if h.sink != nil {
		h.token = h.sink.PushCursor(h.cursor)
	}
}

// HoverLeave removes exactly the entry pushed by the matching HoverEnter.
func (h *Handle) HoverLeave() {
	if !h.hovered {
		return
	}
	h.hovered = false
	if h.sink != nil {
		h.sink.PopCursor(h.token)
	}
	h.token = 0
}

func (h *Handle) Hovered() bool { return h.hovered }

func (h *Handle) Show()         { h.visible = true }
func (h *Handle) Hide()         { h.visible = false }
func (h *Handle) Visible() bool { return h.visible }

// release drops any pending hover and all subscriptions.
func (h *Handle) release() {
	h.HoverLeave()
	h.visible = false
	h.listeners = nil
}
