//go:build fyne && cgo

/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// These tests exercise the fyne canvas widget. They are gated behind the
// "fyne" build tag so headless CI does not need a display. To run locally:
//
//	go test -tags fyne ./internal/ui
package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"

	"infcanvas/internal/scene"
	"infcanvas/internal/vector"
	"infcanvas/internal/widget"
)

func newTestWidget(t *testing.T) (*CanvasWidget, *canvasRenderer) {
	t.Helper()
	test.NewTempApp(t)
	s, err := NewSession(Options{Log: quietLogger()})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	t.Cleanup(s.Close)
	cw := NewCanvasWidget(s)
	r, ok := cw.CreateRenderer().(*canvasRenderer)
	if !ok {
		t.Fatalf("expected canvasRenderer, got %T", cw.CreateRenderer())
	}
	return cw, r
}

func TestCanvasWidget_LayoutResizesCanvas(t *testing.T) {
	cw, r := newTestWidget(t)
	r.Layout(fyne.NewSize(640, 480))
	if got := cw.s.Canvas.Viewport(); got != vector.Sz(640, 480) {
		t.Fatalf("viewport = %v", got)
	}
	if g := cw.s.Features.Chrome.CloseButton().Global(); g != (vector.Pt{X: 619, Y: 1}) {
		t.Fatalf("close button at %v", g)
	}
	if r.bg.Size() != fyne.NewSize(640, 480) {
		t.Fatalf("background size = %v", r.bg.Size())
	}
}

func TestCanvasWidget_DrawsVisibleNodes(t *testing.T) {
	cw, r := newTestWidget(t)
	root := cw.s.Features.Objects.GenerateObject(vector.Pt{})
	widget.NewText(root, scene.Absolute(vector.Pt{X: 100, Y: 100}), "hello", cw.s.Theme, widget.ButtonOptions{})
	r.Refresh()
	texts := 0
	for _, o := range r.Objects() {
		if txt, ok := o.(*canvas.Text); ok && txt.Text == "hello" {
			texts++
			if txt.Position().X != 104 || txt.Position().Y != 100 {
				t.Fatalf("text drawn at %v", txt.Position())
			}
		}
	}
	if texts != 1 {
		t.Fatalf("found %d text objects", texts)
	}
}

func TestCanvasWidget_DragMovesText(t *testing.T) {
	cw, _ := newTestWidget(t)
	root := cw.s.Features.Objects.GenerateObject(vector.Pt{X: -1000, Y: -1000})
	w := widget.NewText(root, scene.Absolute(vector.Pt{X: 100, Y: 100}), "ABC", cw.s.Theme, widget.ButtonOptions{})

	down := &desktop.MouseEvent{Button: desktop.MouseButtonPrimary}
	down.Position = fyne.NewPos(110, 110)
	cw.MouseDown(down)
	drag := &fyne.DragEvent{Dragged: fyne.NewDelta(50, 20)}
	drag.Position = fyne.NewPos(160, 130)
	cw.Dragged(drag)
	cw.DragEnd()
	if g := w.Node().Global(); g != (vector.Pt{X: 150, Y: 120}) {
		t.Fatalf("dragged to %v", g)
	}
	// the trailing MouseUp must not release twice
	up := &desktop.MouseEvent{Button: desktop.MouseButtonPrimary}
	up.Position = fyne.NewPos(160, 130)
	cw.MouseUp(up)
	if cw.pressed != scene.ButtonNone {
		t.Fatalf("press still held")
	}
}

func TestCanvasWidget_Cursor(t *testing.T) {
	cw, _ := newTestWidget(t)
	if cw.Cursor() != desktop.DefaultCursor {
		t.Fatalf("unexpected idle cursor")
	}
}
