/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package widget

import (
	"bytes"
	"image"
	"log/slog"
	"testing"
	"time"

	"infcanvas/internal/scene"
	"infcanvas/internal/vector"
)

func newCanvas(t *testing.T) (*scene.Canvas, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return scene.New(scene.Options{Name: "test_frame", Logger: l, Viewport: vector.Sz(800, 600)}), &buf
}

func newRoot(t *testing.T, c *scene.Canvas) *scene.Node {
	t.Helper()
	return c.AddObject(scene.NewObject(c, scene.Absolute{X: -1000, Y: -1000}))
}

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

type fakeClipboard struct {
	text string
	img  image.Image
}

func (f *fakeClipboard) SetText(s string) error         { f.text = s; return nil }
func (f *fakeClipboard) SetImage(img image.Image) error { f.img = img; return nil }

func mouse(c *scene.Canvas, btn scene.MouseButton, p vector.Pt) scene.MouseEvent {
	return scene.MouseEvent{Button: btn, Pos: p, Global: c.RelativeToGlobal(p)}
}
