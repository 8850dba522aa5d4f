/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package interact holds the pointer gesture controllers that sit between
// the canvas input signals and the scene.
package interact

import (
	"log/slog"
	"slices"

	"infcanvas/internal/graphics"
	"infcanvas/internal/scene"
	"infcanvas/internal/vector"
)

// SweepRegion normalizes a sweep from start to end and reports whether it
// selects by containment, which is the case for right-to-left sweeps.
func SweepRegion(start, end vector.Pt) (region vector.Bounds, containOnly bool) {
	return vector.NormalizeBounds(start, end), end.X < start.X
}

// Candidates returns the ids selected by a sweep from start to end, both in
// canvas-global space, in ascending id order.
func Candidates(reg *scene.Registry, start, end vector.Pt) []scene.ID {
	region, containOnly := SweepRegion(start, end)
	var ids []scene.ID
	if containOnly {
		ids = reg.ContainedBy(region)
	} else {
		ids = reg.Overlapping(region)
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}

// DragSelect is the rubber-band selection gesture. Objects entering the band
// get a pseudo-click, objects leaving it get a reset, and on release every
// object still inside is clicked.
type DragSelect struct {
	canvas *scene.Canvas
	log    *slog.Logger
	band   *graphics.Rect

	dragging bool
	start    vector.Pt // canvas-global
	current  []scene.ID
	skip     func(vector.Pt) bool
}

func NewDragSelect(c *scene.Canvas) *DragSelect {
	band := graphics.NewRect(nil, vector.Bounds{}, graphics.WithoutHandles())
	band.Hide()
	return &DragSelect{canvas: c, log: c.Logger().With(slog.String("gesture", "drag_select")), band: band}
}

// Band is the rubber band in viewport coordinates. It is visible only while
// a sweep is in progress.
func (d *DragSelect) Band() *graphics.Rect { return d.band }

func (d *DragSelect) Dragging() bool { return d.dragging }

// SkipWhen installs a test on the viewport press position. Presses it
// accepts belong to someone else and never start a sweep.
func (d *DragSelect) SkipWhen(fn func(p vector.Pt) bool) { d.skip = fn }

// Selection returns the current candidate set.
func (d *DragSelect) Selection() []scene.ID { return slices.Clone(d.current) }

// Press starts a sweep on a left press over empty canvas space.
func (d *DragSelect) Press(ev scene.MouseEvent) {
	if ev.Button != scene.ButtonLeft {
		return
	}
	if _, hit := d.canvas.ObjectAt(ev.Global); hit {
		return
	}
	if d.skip != nil && d.skip(ev.Pos) {
		return
	}
	d.start = ev.Global
	d.current = nil
	d.dragging = true
	p := d.canvas.GlobalToRelative(ev.Global)
	d.band.UpdateAllPositions(p, p)
	d.band.Show()
}

// Move updates the band and sends the pseudo-click deltas.
func (d *DragSelect) Move(ev scene.MouseEvent) {
	if !d.dragging {
		return
	}
	next := Candidates(d.canvas.Registry(), d.start, ev.Global)
	for _, id := range difference(next, d.current) {
		if n, ok := d.canvas.Lookup(id); ok {
			n.PseudoClick()
		}
	}
	for _, id := range difference(d.current, next) {
		if n, ok := d.canvas.Lookup(id); ok {
			n.ResetPseudoClick()
		}
	}
	d.current = next
	d.band.UpdateAllPositions(d.canvas.GlobalToRelative(d.start), d.canvas.GlobalToRelative(ev.Global))
}

// Release clicks every object in the final set and resets the gesture.
func (d *DragSelect) Release(ev scene.MouseEvent) {
	if ev.Button != scene.ButtonLeft {
		return
	}
	if d.dragging && len(d.current) > 0 {
		d.log.Debug("drag select", slog.Int("objects", len(d.current)))
	}
	for _, id := range d.current {
		if n, ok := d.canvas.Lookup(id); ok {
			n.Click()
		}
	}
	d.Reset()
}

// Reset abandons any sweep without clicking.
func (d *DragSelect) Reset() {
	d.dragging = false
	d.current = nil
	d.start = vector.Pt{}
	d.band.Hide()
}

// difference returns the members of a missing from b. Both are sorted.
func difference(a, b []scene.ID) []scene.ID {
	var out []scene.ID
	for _, id := range a {
		if _, found := slices.BinarySearch(b, id); !found {
			out = append(out, id)
		}
	}
	return out
}
