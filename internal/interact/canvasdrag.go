/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package interact

import (
	"infcanvas/internal/scene"
	"infcanvas/internal/vector"
)

// CanvasDrag pans the canvas on a right-button drag and moves the window on
// a middle-button drag. Both recompute from the press state on every move.
// Presses on an object belong to the object and are ignored.
type CanvasDrag struct {
	canvas *scene.Canvas

	panning  bool
	moving   bool
	start    vector.Pt // desktop position of the press
	startOff vector.Pt
	startWin vector.Pt
}

func NewCanvasDrag(c *scene.Canvas) *CanvasDrag { return &CanvasDrag{canvas: c} }

func (d *CanvasDrag) Panning() bool { return d.panning }
func (d *CanvasDrag) Moving() bool  { return d.moving }

// desktop maps a viewport event position to desktop space, which stays put
// while the window moves under the pointer.
func (d *CanvasDrag) desktop(p vector.Pt) vector.Pt { return d.canvas.WindowPos().Add(p) }

func (d *CanvasDrag) Press(ev scene.MouseEvent) {
	if _, hit := d.canvas.ObjectAt(ev.Global); hit {
		return
	}
	switch ev.Button {
	case scene.ButtonRight:
		d.start = d.desktop(ev.Pos)
		d.startOff = d.canvas.Offset()
		d.panning = true
		d.canvas.SelfMoving().Hold()
	case scene.ButtonMiddle:
		d.start = d.desktop(ev.Pos)
		d.startWin = d.canvas.WindowPos()
		d.moving = true
		d.canvas.SelfMoving().Hold()
	}
}

func (d *CanvasDrag) Move(ev scene.MouseEvent) {
	switch {
	case d.panning:
		diff := d.desktop(ev.Pos).Sub(d.start)
		d.canvas.PanTo(d.startOff.Add(diff))
	case d.moving:
		diff := d.desktop(ev.Pos).Sub(d.start)
		d.canvas.MoveWindow(d.startWin.Add(diff))
		d.canvas.RenderAll()
	}
}

// Release ends either gesture, whatever button was released.
func (d *CanvasDrag) Release(scene.MouseEvent) { d.Reset() }

func (d *CanvasDrag) Reset() {
	d.panning = false
	d.moving = false
	d.canvas.SelfMoving().Drop()
}
