/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package graphics

import "infcanvas/internal/vector"

// Corner names the four points of a Rect.
type Corner int

const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
	BottomRight
)

var cornerCursors = []Cursor{CursorSizeFDiag, CursorSizeBDiag, CursorSizeBDiag, CursorSizeFDiag}

// Rect is an axis-aligned rectangle with a handle on each corner. Its corners
// are always normalized so TopLeft holds the minimum on both axes.
type Rect struct {
	shape
	onChange []func(vector.Bounds)
}

// NewRect builds a rectangle covering b.
func NewRect(sink CursorSink, b vector.Bounds, opts ...ShapeOption) *Rect {
	r := &Rect{}
	r.init(sink, make([]vector.Pt, 4), cornerCursors, opts, func(i int, p vector.Pt) {
		r.onHandleMove(Corner(i), p)
	})
	r.notify = r.changed
	r.UpdateAllPositions(b.TopLeft(), b.BottomRight())
	return r
}

// UpdateAllPositions sets the rectangle from two arbitrary corners and moves
// all four handles onto the result.
func (r *Rect) UpdateAllPositions(p1, p2 vector.Pt) {
	b := vector.NormalizeBounds(p1, p2)
	r.pts[TopLeft] = b.TopLeft()
	r.pts[TopRight] = b.TopRight()
	r.pts[BottomLeft] = b.BottomLeft()
	r.pts[BottomRight] = b.BottomRight()
	r.placeHandles()
}

// Bounds returns the current rectangle.
func (r *Rect) Bounds() vector.Bounds {
	tl, br := r.pts[TopLeft], r.pts[BottomRight]
	return vector.B(tl.X, br.X, tl.Y, br.Y)
}

// Corner returns the stored point for c.
func (r *Rect) Corner(c Corner) vector.Pt { return r.pts[c] }

// Handle returns the handle for c, or nil when handles are disabled.
func (r *Rect) Handle(c Corner) *Handle {
	if r.noHandles {
		return nil
	}
	return r.handles[c]
}

// DragHandle moves the handle at c as a user drag would.
func (r *Rect) DragHandle(c Corner, p vector.Pt) {
	if h := r.Handle(c); h != nil && !r.released {
		h.SetPosition(p)
	}
}

// Hit reports whether p lies on the rectangle's body.
func (r *Rect) Hit(p vector.Pt) bool { return r.Bounds().ContainsPoint(p) }

// OnChange subscribes to geometry changes made by the user, either by
// dragging a handle or by dragging the body. Programmatic UpdateAllPositions
// calls do not fire it.
func (r *Rect) OnChange(fn func(vector.Bounds)) { r.onChange = append(r.onChange, fn) }

// onHandleMove applies the per-corner policy: the dragged handle only
// changes the two coordinates it owns.
func (r *Rect) onHandleMove(c Corner, p vector.Pt) {
	if r.moving.Active() || r.released {
		return
	}
	b := r.Bounds()
	var p1, p2 vector.Pt
	switch c {
	case TopLeft:
		p1, p2 = p, b.BottomRight()
	case TopRight:
		p1, p2 = vector.P(b.Left, p.Y), vector.P(p.X, b.Bottom)
	case BottomLeft:
		p1, p2 = vector.P(p.X, b.Top), vector.P(b.Right, p.Y)
	case BottomRight:
		p1, p2 = b.TopLeft(), p
	default:
		return
	}
	r.UpdateAllPositions(p1, p2)
	r.changed()
}

func (r *Rect) changed() {
	b := r.Bounds()
	for _, fn := range r.onChange {
		fn(b)
	}
}

// Release also drops change subscribers.
func (r *Rect) Release() {
	r.shape.Release()
	r.onChange = nil
}
