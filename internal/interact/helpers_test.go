/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package interact

import (
	"io"
	"log/slog"
	"testing"

	"infcanvas/internal/scene"
	"infcanvas/internal/vector"
)

type recorder struct {
	clicks, pseudo, resets int
}

func (r *recorder) Click()            { r.clicks++ }
func (r *recorder) PseudoClick()      { r.pseudo++ }
func (r *recorder) ResetPseudoClick() { r.resets++ }

func newCanvas(t *testing.T) *scene.Canvas {
	t.Helper()
	l := slog.New(slog.NewTextHandler(io.Discard, nil))
	return scene.New(scene.Options{Name: "test_frame", Logger: l, Viewport: vector.Sz(800, 600)})
}

// addBox attaches a sub-object covering b under a fresh root placed far away
// from the test area.
func addBox(t *testing.T, c *scene.Canvas, b vector.Bounds) (*scene.Node, *recorder) {
	t.Helper()
	root := c.AddObject(scene.NewObject(c, scene.Absolute{X: -1000, Y: -1000}))
	n := root.AddObject(scene.NewSubObject(root, scene.Absolute(b.TopLeft()), b.Size()))
	if n == nil {
		t.Fatalf("sub-object not attached")
	}
	rec := &recorder{}
	n.SetElement(rec)
	return n, rec
}

func press(c *scene.Canvas, btn scene.MouseButton, p vector.Pt) scene.MouseEvent {
	return scene.MouseEvent{Button: btn, Pos: p, Global: c.RelativeToGlobal(p)}
}
