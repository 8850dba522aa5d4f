/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package interact

import (
	"testing"

	"infcanvas/internal/scene"
	"infcanvas/internal/vector"
)

func TestCanvasDragPans(t *testing.T) {
	c := newCanvas(t)
	c.SetOffset(vector.P(5, 5))
	d := NewCanvasDrag(c)

	d.Press(press(c, scene.ButtonRight, vector.P(100, 100)))
	if !d.Panning() || !c.SelfMoving().Active() {
		t.Fatalf("pan not started")
	}
	d.Move(press(c, scene.ButtonNone, vector.P(130, 90)))
	if c.Offset() != vector.P(35, -5) {
		t.Fatalf("offset = %v", c.Offset())
	}
	d.Move(press(c, scene.ButtonNone, vector.P(100, 100)))
	if c.Offset() != vector.P(5, 5) {
		t.Fatalf("returning to the start should restore the offset, got %v", c.Offset())
	}
	d.Release(press(c, scene.ButtonRight, vector.P(100, 100)))
	if d.Panning() || c.SelfMoving().Active() {
		t.Fatalf("guard left raised")
	}
}

func TestCanvasDragMovesWindow(t *testing.T) {
	c := newCanvas(t)
	c.MoveWindow(vector.P(200, 200))
	d := NewCanvasDrag(c)

	d.Press(press(c, scene.ButtonMiddle, vector.P(10, 10)))
	d.Move(press(c, scene.ButtonNone, vector.P(30, 25)))
	if c.WindowPos() != vector.P(220, 215) {
		t.Fatalf("window = %v", c.WindowPos())
	}
	d.Move(press(c, scene.ButtonNone, vector.P(10, 10)))
	if c.WindowPos() != vector.P(220, 215) {
		t.Fatalf("pointer back under the press point should not move the window, got %v", c.WindowPos())
	}
	if c.Offset() != (vector.Pt{}) {
		t.Fatalf("window move changed the offset")
	}
	d.Release(press(c, scene.ButtonMiddle, vector.P(10, 10)))
	if d.Moving() || c.SelfMoving().Active() {
		t.Fatalf("gesture not reset")
	}
}

func TestCanvasDragZeroDistanceRelease(t *testing.T) {
	c := newCanvas(t)
	d := NewCanvasDrag(c)
	d.Press(press(c, scene.ButtonRight, vector.P(50, 50)))
	d.Release(press(c, scene.ButtonRight, vector.P(50, 50)))
	if c.SelfMoving().Active() || c.Offset() != (vector.Pt{}) {
		t.Fatalf("zero-distance drag left state behind")
	}
	// A release without a press is harmless.
	d.Release(press(c, scene.ButtonLeft, vector.P(0, 0)))
}

func TestCanvasDragIgnoresPressOnObject(t *testing.T) {
	c := newCanvas(t)
	addBox(t, c, vector.B(10, 50, 10, 50))
	d := NewCanvasDrag(c)
	d.Press(press(c, scene.ButtonRight, vector.P(20, 20)))
	if d.Panning() || c.SelfMoving().Active() {
		t.Fatalf("press on an object started a pan")
	}
}
