/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package graphics

import (
	"testing"

	"infcanvas/internal/vector"
)

func TestLineKeepsDirection(t *testing.T) {
	l := NewLine(nil, vector.Pt{X: 50, Y: 50}, vector.Pt{X: 10, Y: 10})
	if l.Start() != (vector.Pt{X: 50, Y: 50}) || l.End() != (vector.Pt{X: 10, Y: 10}) {
		t.Fatalf("endpoints swapped: %v %v", l.Start(), l.End())
	}
	if l.Bounds() != vector.B(10, 50, 10, 50) {
		t.Fatalf("bounds = %+v", l.Bounds())
	}
}

func TestLineHandleDragMovesOneEnd(t *testing.T) {
	l := NewLine(nil, vector.Pt{X: 0, Y: 0}, vector.Pt{X: 10, Y: 0})
	var got [2]vector.Pt
	l.OnChange(func(s, e vector.Pt) { got = [2]vector.Pt{s, e} })
	l.DragHandle(End, vector.Pt{X: -10, Y: 5})
	if l.Start() != (vector.Pt{X: 0, Y: 0}) || l.End() != (vector.Pt{X: -10, Y: 5}) {
		t.Fatalf("endpoints = %v %v", l.Start(), l.End())
	}
	if got[1] != (vector.Pt{X: -10, Y: 5}) {
		t.Fatalf("change not reported: %v", got)
	}
	if l.Handle(Start).Position() != l.Start() || l.Handle(End).Position() != l.End() {
		t.Fatalf("handles drifted")
	}
}

func TestLineBodyDrag(t *testing.T) {
	l := NewLine(nil, vector.Pt{X: 0, Y: 0}, vector.Pt{X: 10, Y: 10})
	l.BeginDrag()
	l.DragBy(vector.Pt{X: 3, Y: 3})
	l.DragBy(vector.Pt{X: 5, Y: 5})
	l.EndDrag()
	if l.Start() != (vector.Pt{X: 5, Y: 5}) || l.End() != (vector.Pt{X: 15, Y: 15}) {
		t.Fatalf("endpoints = %v %v", l.Start(), l.End())
	}
	if l.Handle(End).Position() != l.End() {
		t.Fatalf("handle drifted")
	}
}

func TestLineHit(t *testing.T) {
	l := NewLine(nil, vector.Pt{X: 0, Y: 0}, vector.Pt{X: 100, Y: 0})
	if !l.Hit(vector.Pt{X: 50, Y: 2}, 3) {
		t.Fatalf("point near the segment should hit")
	}
	if l.Hit(vector.Pt{X: 50, Y: 10}, 3) || l.Hit(vector.Pt{X: 110, Y: 0}, 3) {
		t.Fatalf("far point should miss")
	}
	dot := NewLine(nil, vector.Pt{X: 5, Y: 5}, vector.Pt{X: 5, Y: 5})
	if !dot.Hit(vector.Pt{X: 6, Y: 5}, 2) {
		t.Fatalf("zero-length line should still be hittable")
	}
}
