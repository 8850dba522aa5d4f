/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package widget

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"infcanvas/internal/scene"
	"infcanvas/internal/vector"
)

func TestTextMeasuresAndCopies(t *testing.T) {
	c, logs := newCanvas(t)
	root := newRoot(t, c)
	cb := &fakeClipboard{}
	txt := NewText(root, scene.Absolute{}, "ABC", DefaultTheme(), ButtonOptions{Clipboard: cb})
	if txt.Node().Size() != vector.Sz(37, 21) {
		t.Fatalf("measured size = %v", txt.Node().Size())
	}
	acts := txt.Node().Menu()
	if len(acts) != 3 || acts[2].Text != "Copy Text" {
		t.Fatalf("menu = %+v", acts)
	}
	acts[2].Run()
	if cb.text != "ABC" {
		t.Fatalf("clipboard = %q", cb.text)
	}

	bare := NewText(root, scene.Absolute{}, "x", DefaultTheme(), ButtonOptions{Size: vector.Sz(80, 30)})
	if bare.Node().Size() != vector.Sz(80, 30) {
		t.Fatalf("explicit size ignored")
	}
	MenuFor(bare.Node()).Trigger("Copy Text")
	if !strings.Contains(logs.String(), "copy text failed") {
		t.Fatalf("missing clipboard not logged:\n%s", logs.String())
	}
}

func solid(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	return img
}

func TestImageKeepsAspectOnResize(t *testing.T) {
	c, _ := newCanvas(t)
	root := newRoot(t, c)
	cb := &fakeClipboard{}
	im := NewImage(root, scene.Absolute{X: 5, Y: 5}, solid(100, 50), DefaultTheme(), ButtonOptions{Clipboard: cb})
	if im.Node().Size() != vector.Sz(100, 50) {
		t.Fatalf("initial size = %v", im.Node().Size())
	}
	im.Node().Resize(vector.Sz(50, 50))
	if im.Node().Size() != vector.Sz(50, 25) {
		t.Fatalf("resized = %v", im.Node().Size())
	}
	if b := im.Scaled().Bounds(); b.Dx() != 50 || b.Dy() != 25 {
		t.Fatalf("scaled image = %v", b)
	}
	if r, _, _, _ := im.Scaled().At(10, 10).RGBA(); r>>8 < 190 {
		t.Fatalf("rescale lost the color: %d", r>>8)
	}
	MenuFor(im.Node()).Trigger("Copy Image")
	if cb.img != im.Source() {
		t.Fatalf("copy should use the original image")
	}
}

func TestFitAspect(t *testing.T) {
	cases := []struct {
		src  image.Rectangle
		box  vector.Size
		want vector.Size
	}{
		{image.Rect(0, 0, 100, 50), vector.Sz(200, 200), vector.Sz(200, 100)},
		{image.Rect(0, 0, 100, 50), vector.Sz(10, 100), vector.Sz(10, 5)},
		{image.Rect(0, 0, 100, 50), vector.Sz(0, 0), vector.Sz(1, 1)},
		{image.Rect(0, 0, 0, 0), vector.Sz(10, 10), vector.Sz(1, 1)},
	}
	for _, tc := range cases {
		if got := FitAspect(tc.src, tc.box); got != tc.want {
			t.Fatalf("FitAspect(%v, %v) = %v, want %v", tc.src, tc.box, got, tc.want)
		}
	}
}
