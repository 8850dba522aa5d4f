/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package widget

import (
	"infcanvas/internal/graph"
	"infcanvas/internal/graphics"
	"infcanvas/internal/scene"
	"infcanvas/internal/vector"
)

// arcSteps is how many straight pieces approximate a quarter arc.
const arcSteps = 6

// Graph is a Button drawing a commit graph: one dot per row and connectors
// routed by the graph layout. Row 0 is the newest. Connector lines are in
// node-local coordinates and carry no handles.
type Graph struct {
	*Button
	layout  graph.Layout
	parents [][]int
	place   graph.Placement
	dots    []graph.Node
	lines   []*graphics.Line
}

// NewGraph lays out parents (see graph.Assign) and places the result at
// pos. The node is sized to the occupied grid.
func NewGraph(parent scene.Owner, pos scene.Position, theme Theme, l graph.Layout, parents [][]int, opts ButtonOptions) *Graph {
	p := graph.Assign(parents)
	dots := l.Nodes(p, parents)
	if opts.Size == (vector.Size{}) {
		cols := 0
		for _, c := range p.Cols {
			cols = max(cols, c+1)
		}
		opts.Size = vector.Sz(float32(max(cols, 1))*l.Interval, float32(max(len(parents), 1))*l.Interval)
	}
	b := newButton(parent, pos, theme, opts)
	if b == nil {
		return nil
	}
	g := &Graph{Button: b, layout: l, parents: parents, place: p, dots: dots}
	for _, r := range l.Routes(p, dots) {
		for _, s := range r.Segments {
			g.addLine(s.From, s.To)
		}
		if r.Arc != nil {
			g.addArc(*r.Arc)
		}
	}
	b.node.Name = "graph"
	b.node.SetElement(g)
	b.node.AttachResource(g)
	g.Reset()
	return g
}

func (g *Graph) addLine(from, to vector.Pt) {
	g.lines = append(g.lines, graphics.NewLine(nil, from, to, graphics.WithoutHandles()))
}

func (g *Graph) addArc(a graph.Arc) {
	prev := a.StartPoint()
	for i := 1; i <= arcSteps; i++ {
		next := a.At(a.Start + a.Span*float32(i)/arcSteps)
		g.addLine(prev, next)
		prev = next
	}
}

// Dots are the placed rows in node-local coordinates.
func (g *Graph) Dots() []graph.Node { return g.dots }

// Lines are the connector pieces in node-local coordinates.
func (g *Graph) Lines() []*graphics.Line { return g.lines }

func (g *Graph) Placement() graph.Placement { return g.place }

// RowAt returns the row whose dot covers the node-local point p.
func (g *Graph) RowAt(p vector.Pt) (int, bool) {
	for _, d := range g.dots {
		if d.Box().ContainsPoint(p) {
			return d.Row, true
		}
	}
	return 0, false
}

// Close releases the connector lines when the node is deleted.
func (g *Graph) Close() error {
	for _, l := range g.lines {
		l.Release()
	}
	g.lines = nil
	return nil
}
