/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"infcanvas/internal/graph"
	"infcanvas/internal/graphics"
	"infcanvas/internal/scene"
	"infcanvas/internal/vector"
)

type label struct {
	text     string
	selected bool
}

func (l *label) Text() string   { return l.text }
func (l *label) Selected() bool { return l.selected }

func sampleCanvas(t *testing.T) *scene.Canvas {
	t.Helper()
	l := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := scene.New(scene.Options{Name: "export_frame", Logger: l, Viewport: vector.Sz(200, 100)})
	root := c.AddObject(scene.NewObject(c, scene.Absolute{X: 0, Y: 0}))
	a := root.AddObject(scene.NewSubObject(root, scene.Absolute{X: 10, Y: 10}, vector.Sz(40, 20)))
	a.SetElement(&label{text: "hi", selected: true})
	b := root.AddObject(scene.NewSubObject(root, scene.Absolute{X: 100, Y: 50}, vector.Sz(30, 30)))
	b.ToggleOverlay()
	root.AddObject(scene.NewSubObject(root, scene.Absolute{X: 500, Y: 500}, vector.Sz(10, 10)))
	return c
}

func TestCaptureViewport(t *testing.T) {
	c := sampleCanvas(t)
	snap := Capture(c, nil)
	if len(snap.Items) != 2 {
		t.Fatalf("expected 2 visible items in viewport, got %d", len(snap.Items))
	}
	first := snap.Items[0]
	if first.Text != "hi" || !first.Selected || first.Bounds != vector.B(10, 50, 10, 30) {
		t.Fatalf("first item = %+v", first)
	}
	if !snap.Items[1].Overlay {
		t.Fatalf("second item should carry its overlay")
	}
	if snap.Band != nil {
		t.Fatalf("no band expected")
	}

	c.PanTo(vector.Pt{X: -5, Y: 5})
	snap = Capture(c, nil)
	if got := snap.Items[0].Bounds; got != vector.B(5, 45, 15, 35) {
		t.Fatalf("panned bounds = %+v", got)
	}
}

type connectors struct{ label }

func (connectors) Lines() []*graphics.Line {
	return []*graphics.Line{graphics.NewLine(nil, vector.Pt{X: 0, Y: 0}, vector.Pt{X: 10, Y: 20}, graphics.WithoutHandles())}
}

func (connectors) Dots() []graph.Node {
	return []graph.Node{{Center: vector.Pt{X: 5, Y: 5}, Radius: 4, Merge: true}}
}

func TestCaptureOverlayHandlesAndConnectors(t *testing.T) {
	c := sampleCanvas(t)
	ov := Capture(c, nil).Items[1]
	if ov.OverlayBounds != vector.B(98, 132, 48, 82) || len(ov.Handles) != 4 {
		t.Fatalf("overlay = %+v handles %d", ov.OverlayBounds, len(ov.Handles))
	}
	if ov.Handles[0] != vector.B(94, 102, 44, 52) {
		t.Fatalf("top-left handle box = %+v", ov.Handles[0])
	}

	n, _ := c.ObjectAt(vector.Pt{X: 20, Y: 20})
	n.SetElement(&connectors{})
	c.PanTo(vector.Pt{X: 5, Y: 0})
	it := Capture(c, nil).Items[0]
	if len(it.Lines) != 1 || it.Lines[0] != (Segment{From: vector.Pt{X: 15, Y: 10}, To: vector.Pt{X: 25, Y: 30}}) {
		t.Fatalf("lines = %+v", it.Lines)
	}
	if len(it.Dots) != 1 || it.Dots[0].Center != (vector.Pt{X: 20, Y: 15}) || !it.Dots[0].Solid {
		t.Fatalf("dots = %+v", it.Dots)
	}
	img := RenderPNG(Capture(c, nil), Style{})
	if got := img.RGBAAt(20, 15); got != (color.RGBA{A: 0xff}) {
		t.Fatalf("solid dot center = %v", got)
	}
	var svg bytes.Buffer
	if err := WriteSVG(&svg, Capture(c, nil), Style{}); err != nil {
		t.Fatalf("svg: %v", err)
	}
	for _, want := range []string{"<line ", "<circle ", `class="handle"`} {
		if !strings.Contains(svg.String(), want) {
			t.Fatalf("svg misses %s", want)
		}
	}
}

func TestCaptureBand(t *testing.T) {
	c := sampleCanvas(t)
	band := graphics.NewRect(c, vector.B(0, 60, 0, 40), graphics.WithoutHandles())
	band.Show()
	snap := Capture(c, band)
	if snap.Band == nil || *snap.Band != vector.B(0, 60, 0, 40) {
		t.Fatalf("band = %+v", snap.Band)
	}
	band.Hide()
	if Capture(c, band).Band != nil {
		t.Fatalf("hidden band must not be captured")
	}
}

func TestRenderPNG(t *testing.T) {
	snap := Capture(sampleCanvas(t), nil)
	img := RenderPNG(snap, Style{})
	if img.Bounds() != image.Rect(0, 0, 200, 100) {
		t.Fatalf("image bounds = %v", img.Bounds())
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("background = %v", got)
	}
	if got := img.RGBAAt(10, 10); got != (color.RGBA{0, 0, 0, 255}) {
		t.Fatalf("stroke corner = %v", got)
	}
	// inside the selected box, away from the label
	if got := img.RGBAAt(45, 25); got != (color.RGBA{0xa0, 0xc8, 0xff, 0xff}) {
		t.Fatalf("selected fill = %v", got)
	}
	if got := img.RGBAAt(99, 49); got != (color.RGBA{255, 0, 0, 255}) {
		t.Fatalf("overlay outline = %v", got)
	}

	var buf bytes.Buffer
	if err := WritePNG(&buf, snap, Style{}); err != nil {
		t.Fatalf("write png: %v", err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Fatalf("decode png: %v", err)
	}
}

func TestImageItem(t *testing.T) {
	grey := color.RGBA{0x40, 0x40, 0x40, 0xff}
	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	draw.Draw(src, src.Bounds(), image.NewUniform(grey), image.Point{}, draw.Src)
	snap := Snapshot{Size: vector.Sz(20, 20), Items: []Item{{ID: 1, Bounds: vector.B(2, 10, 2, 10), Image: src}}}
	img := RenderPNG(snap, Style{})
	if got := img.RGBAAt(5, 5); got != grey {
		t.Fatalf("image not drawn: %v", got)
	}
	var buf bytes.Buffer
	if err := WritePDF(&buf, snap, PDFOptions{}); err != nil {
		t.Fatalf("pdf with image: %v", err)
	}
}

func TestWriteSVG(t *testing.T) {
	c := sampleCanvas(t)
	band := graphics.NewRect(c, vector.B(0, 60, 0, 40), graphics.WithoutHandles())
	band.Show()
	snap := Capture(c, band)
	snap.Items[0].Text = "a<b"
	var buf bytes.Buffer
	if err := WriteSVG(&buf, snap, Style{}); err != nil {
		t.Fatalf("write svg: %v", err)
	}
	s := buf.String()
	for _, want := range []string{"viewBox=\"0 0 200 100\"", "id=\"node-2\"", "a&lt;b", "stroke-dasharray"} {
		if !strings.Contains(s, want) {
			t.Fatalf("svg missing %q:\n%s", want, s)
		}
	}
}

func TestExportFiles(t *testing.T) {
	snap := Capture(sampleCanvas(t), nil)
	dir := filepath.Join(t.TempDir(), "out")
	paths := map[string]func(string) error{
		"view.png": func(p string) error { return ExportPNG(p, snap, Style{}) },
		"view.svg": func(p string) error { return ExportSVG(p, snap, Style{}) },
		"view.pdf": func(p string) error { return ExportPDF(p, snap, PDFOptions{Title: "view", Author: "infcanvas"}) },
	}
	for name, write := range paths {
		p := filepath.Join(dir, name)
		if err := write(p); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		st, err := os.Stat(p)
		if err != nil || st.Size() == 0 {
			t.Fatalf("%s not written: %v", name, err)
		}
	}
	data, err := os.ReadFile(filepath.Join(dir, "view.pdf"))
	if err != nil || !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("pdf header missing: %v", err)
	}
}

type painted struct{ c vector.Color }

func (p painted) Background() vector.Color { return p.c }

func TestElementFillWins(t *testing.T) {
	c := sampleCanvas(t)
	n, _ := c.Lookup(3)
	n.SetElement(painted{vector.Color{R: 1, G: 2, B: 3, A: 255}})
	snap := Capture(c, nil)
	img := RenderPNG(snap, Style{})
	if got := img.RGBAAt(115, 65); got != (color.RGBA{1, 2, 3, 255}) {
		t.Fatalf("element fill ignored: %v", got)
	}
}
