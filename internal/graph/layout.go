/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package graph

import (
	"math"

	"infcanvas/internal/config"
	"infcanvas/internal/vector"
)

// Layout maps grid cells to pixels.
type Layout struct {
	HollowRadius float32
	SolidRadius  float32
	Interval     float32
	ArcRadius    float32
}

// LayoutFrom reads the graph section of the configuration.
func LayoutFrom(cfg config.GraphConfig) Layout {
	return Layout{
		HollowRadius: float32(cfg.NodeHollowRadius),
		SolidRadius:  float32(cfg.NodeSolidRadius),
		Interval:     float32(cfg.NodeInterval),
		ArcRadius:    float32(cfg.ArcRadius),
	}
}

// CellCenter is the pixel center of a grid cell.
func (l Layout) CellCenter(row, col int) vector.Pt {
	return vector.Pt{X: (float32(col) + 0.5) * l.Interval, Y: (float32(row) + 0.5) * l.Interval}
}

// Node is a placed graph node. Merge nodes are drawn solid and smaller.
type Node struct {
	Row, Col int
	Merge    bool
	Center   vector.Pt
	Radius   float32
}

func (l Layout) Node(row, col int, merge bool) Node {
	r := l.HollowRadius
	if merge {
		r = l.SolidRadius
	}
	return Node{Row: row, Col: col, Merge: merge, Center: l.CellCenter(row, col), Radius: r}
}

func (n Node) Top() vector.Pt    { return n.Center.Add(vector.Pt{Y: -n.Radius}) }
func (n Node) Bottom() vector.Pt { return n.Center.Add(vector.Pt{Y: n.Radius}) }
func (n Node) Left() vector.Pt   { return n.Center.Add(vector.Pt{X: -n.Radius}) }
func (n Node) Right() vector.Pt  { return n.Center.Add(vector.Pt{X: n.Radius}) }

// Box is the node's bounding box.
func (n Node) Box() vector.Bounds {
	return vector.B(n.Center.X-n.Radius, n.Center.X+n.Radius, n.Center.Y-n.Radius, n.Center.Y+n.Radius)
}

// Arc is a circular arc. Angles are degrees, 0 at three o'clock, positive
// counter-clockwise on screen.
type Arc struct {
	Center vector.Pt
	Radius float32
	Start  float32
	Span   float32
}

// At returns the point of the arc's circle at angle deg.
func (a Arc) At(deg float32) vector.Pt {
	rad := float64(deg) * math.Pi / 180
	// Screen y grows downward, so counter-clockwise subtracts.
	return vector.Pt{
		X: a.Center.X + a.Radius*float32(math.Cos(rad)),
		Y: a.Center.Y - a.Radius*float32(math.Sin(rad)),
	}
}

func (a Arc) StartPoint() vector.Pt { return a.At(a.Start) }
func (a Arc) EndPoint() vector.Pt   { return a.At(a.Start + a.Span) }

// Segment is a straight connector piece.
type Segment struct{ From, To vector.Pt }

// EdgeKind selects the routing between two nodes.
type EdgeKind int

const (
	// Straight runs vertically between nodes in the same column.
	Straight EdgeKind = iota
	// NewBranch leaves the lower node sideways and turns up into the upper
	// node's column.
	NewBranch
	// Merge leaves the lower node upward and turns sideways into the upper
	// node.
	Merge
)

func (k EdgeKind) String() string {
	switch k {
	case NewBranch:
		return "new_branch"
	case Merge:
		return "merge"
	default:
		return "straight"
	}
}

// Route is the drawn connector: segments plus at most one quarter arc.
type Route struct {
	Segments []Segment
	Arc      *Arc
}

// Connect routes a connector between a and b. The node with the larger row
// is the lower one regardless of argument order.
func (l Layout) Connect(a, b Node, kind EdgeKind) Route {
	lower, upper := b, a
	if a.Row > b.Row {
		lower, upper = a, b
	}
	r := l.ArcRadius
	switch kind {
	case NewBranch:
		cp := vector.Pt{X: upper.Center.X, Y: lower.Center.Y}
		var side Segment
		var arc Arc
		if lower.Col < upper.Col {
			side = Segment{lower.Right(), vector.Pt{X: cp.X - r, Y: cp.Y}}
			arc = Arc{Center: cp.Add(vector.Pt{X: -r, Y: -r}), Radius: r, Start: 0, Span: -90}
		} else {
			side = Segment{lower.Left(), vector.Pt{X: cp.X + r, Y: cp.Y}}
			arc = Arc{Center: cp.Add(vector.Pt{X: r, Y: -r}), Radius: r, Start: 270, Span: -90}
		}
		up := Segment{upper.Bottom(), vector.Pt{X: cp.X, Y: cp.Y - r}}
		return Route{Segments: []Segment{side, up}, Arc: &arc}
	case Merge:
		cp := vector.Pt{X: lower.Center.X, Y: upper.Center.Y}
		up := Segment{lower.Top(), vector.Pt{X: cp.X, Y: cp.Y + r}}
		var side Segment
		var arc Arc
		if lower.Col < upper.Col {
			side = Segment{upper.Left(), vector.Pt{X: cp.X + r, Y: cp.Y}}
			arc = Arc{Center: cp.Add(vector.Pt{X: r, Y: r}), Radius: r, Start: 180, Span: -90}
		} else {
			side = Segment{upper.Right(), vector.Pt{X: cp.X - r, Y: cp.Y}}
			arc = Arc{Center: cp.Add(vector.Pt{X: -r, Y: r}), Radius: r, Start: 90, Span: -90}
		}
		return Route{Segments: []Segment{up, side}, Arc: &arc}
	default:
		return Route{Segments: []Segment{{lower.Top(), upper.Bottom()}}}
	}
}
