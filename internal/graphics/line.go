/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package graphics

import (
	"math"

	"infcanvas/internal/vector"
)

// Endpoint names the two points of a Line.
type Endpoint int

const (
	Start Endpoint = iota
	End
)

var endpointCursors = []Cursor{CursorSizeAll, CursorSizeAll}

// Line is a segment with a handle on each end. Unlike Rect its points are
// never reordered: start stays start.
type Line struct {
	shape
	onChange []func(start, end vector.Pt)
}

func NewLine(sink CursorSink, start, end vector.Pt, opts ...ShapeOption) *Line {
	l := &Line{}
	l.init(sink, make([]vector.Pt, 2), endpointCursors, opts, func(i int, p vector.Pt) {
		l.onHandleMove(Endpoint(i), p)
	})
	l.notify = l.changed
	l.UpdateAllPositions(start, end)
	return l
}

// UpdateAllPositions sets both endpoints and moves the handles onto them.
func (l *Line) UpdateAllPositions(start, end vector.Pt) {
	l.pts[Start] = start
	l.pts[End] = end
	l.placeHandles()
}

func (l *Line) Start() vector.Pt { return l.pts[Start] }
func (l *Line) End() vector.Pt   { return l.pts[End] }

// Bounds is the box spanned by the two endpoints.
func (l *Line) Bounds() vector.Bounds { return vector.NormalizeBounds(l.pts[Start], l.pts[End]) }

// Handle returns the handle for e, or nil when handles are disabled.
func (l *Line) Handle(e Endpoint) *Handle {
	if l.noHandles {
		return nil
	}
	return l.handles[e]
}

// DragHandle moves the handle at e as a user drag would.
func (l *Line) DragHandle(e Endpoint, p vector.Pt) {
	if h := l.Handle(e); h != nil && !l.released {
		h.SetPosition(p)
	}
}

// Hit reports whether p is within tol of the segment.
func (l *Line) Hit(p vector.Pt, tol float32) bool {
	a, b := l.pts[Start], l.pts[End]
	dx, dy := float64(b.X-a.X), float64(b.Y-a.Y)
	px, py := float64(p.X-a.X), float64(p.Y-a.Y)
	lenSq := dx*dx + dy*dy
	t := 0.0
	if lenSq > 0 {
		t = math.Max(0, math.Min(1, (px*dx+py*dy)/lenSq))
	}
	ex, ey := px-t*dx, py-t*dy
	return math.Hypot(ex, ey) <= float64(tol)
}

// OnChange subscribes to user-driven endpoint or body moves.
func (l *Line) OnChange(fn func(start, end vector.Pt)) { l.onChange = append(l.onChange, fn) }

// onHandleMove only updates the endpoint the handle belongs to.
func (l *Line) onHandleMove(e Endpoint, p vector.Pt) {
	if l.moving.Active() || l.released {
		return
	}
	l.pts[e] = p
	l.changed()
}

func (l *Line) changed() {
	for _, fn := range l.onChange {
		fn(l.pts[Start], l.pts[End])
	}
}

func (l *Line) Release() {
	l.shape.Release()
	l.onChange = nil
}
