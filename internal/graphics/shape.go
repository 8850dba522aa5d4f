/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package graphics holds the interactive primitives drawn over canvas
// objects: cursor shapes, handles and the resizable rectangle and line built
// from them. Everything here is headless; frontends read the geometry and
// forward pointer input.
package graphics

import (
	"infcanvas/internal/guard"
	"infcanvas/internal/vector"
)

// ShapeOption configures a shape at construction.
type ShapeOption func(*shape)

// WithoutHandles builds the shape with no handles. It can still be moved as
// a whole.
func WithoutHandles() ShapeOption { return func(s *shape) { s.noHandles = true } }

// WithStroke sets the outline style.
func WithStroke(st vector.Stroke) ShapeOption { return func(s *shape) { s.Stroke = st } }

// shape is the part shared by Rect and Line: the named points, one handle per
// point, the programmatic-move guard and the selection/hover state.
type shape struct {
	Stroke vector.Stroke

	sink      CursorSink
	pts       []vector.Pt
	handles   []*Handle
	noHandles bool

	// raised while the shape itself repositions its handles
	moving guard.Flag

	visible      bool
	selected     bool
	selectionSet bool

	bodyHovered bool
	bodyToken   CursorToken

	dragStart []vector.Pt
	notify    func()
	released  bool
}

func (s *shape) init(sink CursorSink, pts []vector.Pt, cursors []Cursor, opts []ShapeOption, onMove func(i int, p vector.Pt)) {
	s.sink = sink
	s.pts = pts
	s.Stroke = vector.Stroke{Color: vector.Black, Width: 1, Enabled: true}
	for _, o := range opts {
		o(s)
	}
	if s.noHandles {
		return
	}
	s.handles = make([]*Handle, len(pts))
	for i := range pts {
		h := NewHandle(sink, pts[i], cursors[i])
		idx := i
		h.OnPositionChanged(func(p vector.Pt) { onMove(idx, p) })
		s.handles[i] = h
	}
}

// placeHandles moves every handle onto its point without letting the
// resulting notifications feed back into the shape.
func (s *shape) placeHandles() {
	release := s.moving.Enter()
	defer release()
	for i, h := range s.handles {
		h.SetPosition(s.pts[i])
	}
}

func (s *shape) anyHandleHovered() bool {
	for _, h := range s.handles {
		if h.Hovered() {
			return true
		}
	}
	return false
}

func (s *shape) setHandlesVisible(v bool) {
	for _, h := range s.handles {
		if v {
			h.Show()
		} else {
			h.Hide()
		}
	}
}

// HandlesEnabled reports whether the shape was built with handles.
func (s *shape) HandlesEnabled() bool { return !s.noHandles }

// HandleAt returns the index of the visible handle under p, or -1.
func (s *shape) HandleAt(p vector.Pt) int {
	for i, h := range s.handles {
		if h.Visible() && h.Hit(p) {
			return i
		}
	}
	return -1
}

// HandleUnder returns the index of the handle whose hit box contains p, or
// -1. Hidden handles count so the pointer can reveal them; a hidden shape
// has none.
func (s *shape) HandleUnder(p vector.Pt) int {
	if !s.visible || s.released {
		return -1
	}
	for i, h := range s.handles {
		if h.Hit(p) {
			return i
		}
	}
	return -1
}

// HoverHandle moves the pointer hover onto handle i, leaving any other
// hovered handle. i < 0 leaves them all. Handle visibility follows.
func (s *shape) HoverHandle(i int) {
	for j, h := range s.handles {
		if j != i {
			h.HoverLeave()
		}
	}
	if s.released {
		return
	}
	if i >= 0 && i < len(s.handles) {
		s.handles[i].HoverEnter()
	}
	s.setHandlesVisible(s.selected || s.anyHandleHovered())
}

// Show makes the shape visible. Its handles appear while it is selected or
// hovered; a shape that never had a selection set shows them.
func (s *shape) Show() {
	if s.released {
		return
	}
	s.visible = true
	s.setHandlesVisible(s.selected || !s.selectionSet || s.anyHandleHovered())
}

// Hide hides the shape and its handles.
func (s *shape) Hide() {
	s.visible = false
	s.setHandlesVisible(false)
}

func (s *shape) Visible() bool  { return s.visible }
func (s *shape) Selected() bool { return s.selected }

// SetSelected updates the selection state. Handles stay visible while
// selected or while the pointer is over one of them.
func (s *shape) SetSelected(sel bool) {
	s.selected = sel
	s.selectionSet = true
	s.setHandlesVisible(sel || s.anyHandleHovered())
}

// HoverEnter pushes the body cursor.
func (s *shape) HoverEnter() {
	if s.bodyHovered || s.released {
		return
	}
	s.bodyHovered = true
	if s.sink != nil {
		s.bodyToken = s.sink.PushCursor(CursorUpArrow)
	}
}

// HoverLeave pops what HoverEnter pushed.
func (s *shape) HoverLeave() {
	if !s.bodyHovered {
		return
	}
	s.bodyHovered = false
	if s.sink != nil {
		s.sink.PopCursor(s.bodyToken)
	}
	s.bodyToken = 0
}

// BeginDrag snapshots the points so DragBy can work from absolute deltas.
func (s *shape) BeginDrag() {
	s.dragStart = append(s.dragStart[:0], s.pts...)
}

// DragBy places the shape at its drag-start position translated by d. The
// delta is measured from the press, not from the previous event.
func (s *shape) DragBy(d vector.Pt) {
	if s.released {
		return
	}
	if s.dragStart == nil {
		s.BeginDrag()
	}
	for i := range s.pts {
		s.pts[i] = s.dragStart[i].Add(d)
	}
	s.placeHandles()
	s.fire()
}

// EndDrag forgets the drag-start snapshot.
func (s *shape) EndDrag() { s.dragStart = nil }

// Dragging reports whether a body drag is in progress.
func (s *shape) Dragging() bool { return s.dragStart != nil }

// Release drops hover state and listeners. The shape is inert afterwards.
func (s *shape) Release() {
	if s.released {
		return
	}
	s.released = true
	s.HoverLeave()
	s.Hide()
	for _, h := range s.handles {
		h.release()
	}
	s.notify = nil
	s.dragStart = nil
}

func (s *shape) Released() bool { return s.released }

func (s *shape) fire() {
	if s.notify != nil {
		s.notify()
	}
}
