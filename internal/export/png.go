/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"infcanvas/internal/vector"
)

// RenderPNG rasterizes snap at one pixel per viewport unit.
func RenderPNG(snap Snapshot, st Style) *image.RGBA {
	st = st.WithDefaults()
	w := int(math.Ceil(float64(snap.Size.W)))
	h := int(math.Ceil(float64(snap.Size.H)))
	img := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: toRGBA(st.Background)}, image.Point{}, draw.Src)

	for _, it := range snap.Items {
		x0, y0, x1, y1 := pixelRect(it.Bounds)
		fill := it.Paint(st)
		fillRect(img, x0, y0, x1, y1, toRGBA(fill))
		if it.Image != nil {
			draw.Draw(img, image.Rect(x0, y0, x1+1, y1+1), it.Image, it.Image.Bounds().Min, draw.Over)
		}
		strokeRect(img, x0, y0, x1, y1, toRGBA(st.Stroke))
		for _, ln := range it.Lines {
			drawLine(img, ln.From, ln.To, toRGBA(st.Stroke))
		}
		for _, d := range it.Dots {
			drawDot(img, d, toRGBA(st.Stroke))
		}
		if it.Overlay {
			ox0, oy0, ox1, oy1 := pixelRect(it.OverlayBounds)
			strokeRect(img, ox0, oy0, ox1, oy1, toRGBA(st.Overlay))
			for _, h := range it.Handles {
				hx0, hy0, hx1, hy1 := pixelRect(h)
				fillRect(img, hx0, hy0, hx1, hy1, toRGBA(st.Overlay))
			}
		}
		if it.Text != "" {
			drawText(img, x0+2, y0+2, it.Text, toRGBA(st.TextColor))
		}
	}
	if snap.Band != nil {
		x0, y0, x1, y1 := pixelRect(*snap.Band)
		strokeRect(img, x0, y0, x1, y1, toRGBA(st.Band))
	}
	return img
}

// WritePNG encodes the rendered snapshot to w.
func WritePNG(w io.Writer, snap Snapshot, st Style) error {
	if err := png.Encode(w, RenderPNG(snap, st)); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// ExportPNG writes snap to path, creating the parent directory.
func ExportPNG(path string, snap Snapshot, st Style) error {
	f, err := create(path)
	if err != nil {
		return err
	}
	if err := WritePNG(f, snap, st); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close png: %w", err)
	}
	return nil
}

func create(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure out dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	return f, nil
}

func pixelRect(b vector.Bounds) (x0, y0, x1, y1 int) {
	x0 = int(math.Round(float64(b.Left)))
	y0 = int(math.Round(float64(b.Top)))
	x1 = int(math.Round(float64(b.Right))) - 1
	y1 = int(math.Round(float64(b.Bottom))) - 1
	return
}

// drawText draws each line with the 7x13 bitmap face; the text is clipped
// by the image, not by the item.
func drawText(img *image.RGBA, x, y int, s string, col color.RGBA) {
	face := basicfont.Face7x13
	d := font.Drawer{Dst: img, Src: image.NewUniform(col), Face: face}
	line := 0
	start := 0
	for i := 0; i <= len(s); i++ {
		if i < len(s) && s[i] != '\n' {
			continue
		}
		d.Dot = fixed.P(x, y+face.Ascent+line*face.Height)
		d.DrawString(s[start:i])
		line++
		start = i + 1
	}
}

func toRGBA(c vector.Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// strokeRect and fillRect write straight into the pixel buffer; SetRGBA
// ignores coordinates outside the image.
func strokeRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	for x := x0; x <= x1; x++ {
		img.SetRGBA(x, y0, col)
		img.SetRGBA(x, y1, col)
	}
	for y := y0; y <= y1; y++ {
		img.SetRGBA(x0, y, col)
		img.SetRGBA(x1, y, col)
	}
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			img.SetRGBA(x, y, col)
		}
	}
}

// drawLine steps one pixel at a time along the longer axis.
func drawLine(img *image.RGBA, from, to vector.Pt, col color.RGBA) {
	dx, dy := float64(to.X-from.X), float64(to.Y-from.Y)
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if steps == 0 {
		img.SetRGBA(int(math.Round(float64(from.X))), int(math.Round(float64(from.Y))), col)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		img.SetRGBA(int(math.Round(float64(from.X)+t*dx)), int(math.Round(float64(from.Y)+t*dy)), col)
	}
}

// drawDot draws a one pixel ring, or a filled disc for solid dots.
func drawDot(img *image.RGBA, d Dot, col color.RGBA) {
	r := float64(d.Radius)
	cx, cy := float64(d.Center.X), float64(d.Center.Y)
	for y := int(math.Floor(cy - r)); y <= int(math.Ceil(cy+r)); y++ {
		for x := int(math.Floor(cx - r)); x <= int(math.Ceil(cx+r)); x++ {
			dist := math.Hypot(float64(x)-cx, float64(y)-cy)
			if dist <= r && (d.Solid || dist >= r-1) {
				img.SetRGBA(x, y, col)
			}
		}
	}
}
