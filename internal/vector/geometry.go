/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Basic 2D geometry for the canvas. Coordinates use float32 to line up with
// the UI toolkit; in practice canvas positions are whole pixels, which keeps
// the pan round-trip exact.

// Pt is a 2D point.
type Pt struct{ X, Y float32 }

func P(x, y float32) Pt { return Pt{X: x, Y: y} }

func (p Pt) Add(q Pt) Pt { return Pt{X: p.X + q.X, Y: p.Y + q.Y} }
func (p Pt) Sub(q Pt) Pt { return Pt{X: p.X - q.X, Y: p.Y - q.Y} }

// ManhattanLength is |x| + |y|.
func (p Pt) ManhattanLength() float32 { return abs(p.X) + abs(p.Y) }

// Size is a width/height pair.
type Size struct{ W, H float32 }

func Sz(w, h float32) Size { return Size{W: w, H: h} }

// Grow returns the size enlarged by dw, dh (negative shrinks, clamped at zero).
func (s Size) Grow(dw, dh float32) Size {
	return Size{W: max(s.W+dw, 0), H: max(s.H+dh, 0)}
}

// Bounds is an axis-aligned box stored as edges, which is the shape the
// spatial index and the selection predicates work with.
type Bounds struct {
	Left, Right float32
	Top, Bottom float32
}

// B builds Bounds from edges in left, right, top, bottom order.
func B(left, right, top, bottom float32) Bounds {
	return Bounds{Left: left, Right: right, Top: top, Bottom: bottom}
}

// BoundsOf returns the box with top-left p and size s.
func BoundsOf(p Pt, s Size) Bounds {
	return Bounds{Left: p.X, Right: p.X + s.W, Top: p.Y, Bottom: p.Y + s.H}
}

// NormalizeBounds orders two arbitrary corners into a box whose Left<=Right
// and Top<=Bottom, regardless of the direction they were given in.
func NormalizeBounds(a, b Pt) Bounds {
	return Bounds{
		Left:   min(a.X, b.X),
		Right:  max(a.X, b.X),
		Top:    min(a.Y, b.Y),
		Bottom: max(a.Y, b.Y),
	}
}

func (b Bounds) TopLeft() Pt     { return Pt{b.Left, b.Top} }
func (b Bounds) TopRight() Pt    { return Pt{b.Right, b.Top} }
func (b Bounds) BottomLeft() Pt  { return Pt{b.Left, b.Bottom} }
func (b Bounds) BottomRight() Pt { return Pt{b.Right, b.Bottom} }
func (b Bounds) Width() float32  { return b.Right - b.Left }
func (b Bounds) Height() float32 { return b.Bottom - b.Top }
func (b Bounds) Size() Size      { return Size{W: b.Width(), H: b.Height()} }

// Translate moves the box by d.
func (b Bounds) Translate(d Pt) Bounds {
	return Bounds{Left: b.Left + d.X, Right: b.Right + d.X, Top: b.Top + d.Y, Bottom: b.Bottom + d.Y}
}

// Outset grows the box by m on every side.
func (b Bounds) Outset(m float32) Bounds {
	return Bounds{Left: b.Left - m, Right: b.Right + m, Top: b.Top - m, Bottom: b.Bottom + m}
}

// Overlaps reports whether the two boxes share at least one point. Touching
// edges and zero-area boxes count.
func (b Bounds) Overlaps(o Bounds) bool {
	return max(b.Left, o.Left) <= min(b.Right, o.Right) && max(b.Top, o.Top) <= min(b.Bottom, o.Bottom)
}

// Contains reports whether o lies fully inside b (edges inclusive).
func (b Bounds) Contains(o Bounds) bool {
	return b.Left <= o.Left && b.Right >= o.Right && b.Top <= o.Top && b.Bottom >= o.Bottom
}

// ContainsPoint reports whether p lies inside b (edges inclusive).
func (b Bounds) ContainsPoint(p Pt) bool {
	return b.Left <= p.X && p.X <= b.Right && b.Top <= p.Y && p.Y <= b.Bottom
}

// GlobalToRelative maps a canvas-global point into viewport space.
func GlobalToRelative(p, offset Pt) Pt { return p.Add(offset) }

// RelativeToGlobal maps a viewport point back into canvas-global space.
func RelativeToGlobal(p, offset Pt) Pt { return p.Sub(offset) }

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
