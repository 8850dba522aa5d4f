/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export renders a point-in-time picture of a canvas viewport to
// PNG, SVG or PDF.
//
// A Snapshot is captured in viewport coordinates so every writer works on
// the same flat list of boxes. Only visible registered nodes that overlap the
// viewport are included; embedded children show up through their parent.
package export

import (
	"image"

	"infcanvas/internal/graph"
	"infcanvas/internal/graphics"
	"infcanvas/internal/scene"
	"infcanvas/internal/vector"
)

// Item is one node as it appears on screen.
type Item struct {
	ID       scene.ID
	Name     string
	Kind     scene.Kind
	Bounds   vector.Bounds
	Text     string
	Selected bool
	Image    image.Image
	// Overlay is set while the bounding-box overlay shows. Handles holds
	// the hit boxes of its visible handles.
	Overlay       bool
	OverlayBounds vector.Bounds
	Handles       []vector.Bounds
	// Lines and Dots are drawn content in viewport coordinates.
	Lines []Segment
	Dots  []Dot
	// Fill is the color the element asks for. Zero means the style decides
	// from Selected.
	Fill vector.Color
}

// Segment is a drawn straight line.
type Segment struct{ From, To vector.Pt }

// Dot is a drawn circle. Solid dots are filled with the stroke color.
type Dot struct {
	Center vector.Pt
	Radius float32
	Solid  bool
}

// Paint is the fill color of the item under st, which must have its
// defaults applied.
func (it Item) Paint(st Style) vector.Color {
	switch {
	case it.Fill != (vector.Color{}):
		return it.Fill
	case it.Selected:
		return st.Selected
	}
	return st.Unselected
}

// Snapshot is the captured viewport. Band is set while a rubber band is shown.
type Snapshot struct {
	Size  vector.Size
	Items []Item
	Band  *vector.Bounds
}

// Style holds the paint used by every writer. Zero colors fall back to the
// defaults below.
type Style struct {
	Background vector.Color
	Stroke     vector.Color
	Selected   vector.Color
	Unselected vector.Color
	Overlay    vector.Color
	Band       vector.Color
	TextColor  vector.Color
}

// WithDefaults fills every zero color.
func (s Style) WithDefaults() Style {
	def := func(c *vector.Color, d vector.Color) {
		if *c == (vector.Color{}) {
			*c = d
		}
	}
	def(&s.Background, vector.White)
	def(&s.Stroke, vector.Black)
	def(&s.Selected, vector.Color{R: 0xa0, G: 0xc8, B: 0xff, A: 0xff})
	def(&s.Unselected, vector.Color{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff})
	def(&s.Overlay, vector.Color{R: 0xff, G: 0, B: 0, A: 0xff})
	def(&s.Band, vector.Color{R: 0x33, G: 0x66, B: 0xcc, A: 0xff})
	def(&s.TextColor, vector.Black)
	return s
}

type selectable interface{ Selected() bool }

type texter interface{ Text() string }

type imager interface{ Scaled() image.Image }

type backgrounder interface{ Background() vector.Color }

type liner interface{ Lines() []*graphics.Line }

type dotter interface{ Dots() []graph.Node }

// Capture records the current viewport of c. band may be nil.
func Capture(c *scene.Canvas, band *graphics.Rect) Snapshot {
	vp := c.Viewport()
	snap := Snapshot{Size: vp}
	screen := vector.B(0, vp.W, 0, vp.H)
	reg := c.Registry()
	for _, id := range reg.IDs() {
		n, ok := reg.Lookup(id)
		if !ok || !n.Visible() {
			continue
		}
		b := n.Bounds().Translate(c.Offset())
		if !screen.Overlaps(b) {
			continue
		}
		it := Item{ID: id, Name: n.Name, Kind: n.Kind(), Bounds: b}
		if o := n.Overlay(); o != nil && o.Visible() {
			it.Overlay = true
			it.OverlayBounds = o.Bounds()
			it.Handles = visibleHandles(o)
		}
		origin := b.TopLeft()
		if l, ok := n.Element().(liner); ok {
			for _, ln := range l.Lines() {
				it.Lines = append(it.Lines, Segment{From: origin.Add(ln.Start()), To: origin.Add(ln.End())})
			}
		}
		if d, ok := n.Element().(dotter); ok {
			for _, gn := range d.Dots() {
				it.Dots = append(it.Dots, Dot{Center: origin.Add(gn.Center), Radius: gn.Radius, Solid: gn.Merge})
			}
		}
		switch e := n.Element().(type) {
		case imager:
			it.Image = e.Scaled()
		case texter:
			it.Text = e.Text()
		}
		if s, ok := n.Element().(selectable); ok {
			it.Selected = s.Selected()
		}
		if bg, ok := n.Element().(backgrounder); ok {
			it.Fill = bg.Background()
		}
		snap.Items = append(snap.Items, it)
	}
	if band != nil && band.Visible() {
		b := band.Bounds()
		snap.Band = &b
	}
	return snap
}

func visibleHandles(r *graphics.Rect) []vector.Bounds {
	if !r.HandlesEnabled() {
		return nil
	}
	var out []vector.Bounds
	for c := graphics.TopLeft; c <= graphics.BottomRight; c++ {
		if h := r.Handle(c); h.Visible() {
			out = append(out, h.HitBox())
		}
	}
	return out
}
