/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package graph

import "slices"

// Edge connects a node to one of its parents.
type Edge struct {
	From, To int // rows; From < To
	Kind     EdgeKind
}

// Placement is the result of Assign.
type Placement struct {
	Cols  []int
	Edges []Edge
}

// Assign lays out a DAG whose rows are ordered newest first. parents[i]
// lists the rows of node i's parents, at most two, each greater than i.
// First parents continue the child's column; a first parent that is
// already placed gets a new-branch edge. Second parents get the first free
// column over the span and a merge edge. Invalid parent rows are ignored.
func Assign(parents [][]int) Placement {
	n := len(parents)
	lanes := NewLanes(n)
	cols := make([]int, n)
	placed := make([]bool, n)
	var edges []Edge

	place := func(row, col int) {
		cols[row] = col
		placed[row] = true
	}
	valid := func(child, p int) bool { return p > child && p < n }

	for row := range n {
		if placed[row] {
			continue
		}
		col := lanes.FirstFree(row, row)
		place(row, col)
		lanes.Occupy(row, row, col)

		queue := []int{row}
		for len(queue) > 0 {
			slices.Sort(queue)
			cur := queue[0]
			queue = queue[1:]
			ps := parents[cur]

			if len(ps) > 0 && valid(cur, ps[0]) {
				p := ps[0]
				if !placed[p] {
					place(p, cols[cur])
					edges = append(edges, Edge{From: cur, To: p, Kind: Straight})
					lanes.Occupy(cur, p, cols[p])
					queue = append(queue, p)
				} else {
					edges = append(edges, Edge{From: cur, To: p, Kind: NewBranch})
					lanes.Occupy(cur, p, cols[cur])
				}
			}
			if len(ps) > 1 && valid(cur, ps[1]) {
				p := ps[1]
				if !placed[p] {
					place(p, lanes.FirstFree(cur+1, p))
					queue = append(queue, p)
				}
				edges = append(edges, Edge{From: cur, To: p, Kind: Merge})
				lanes.Occupy(cur, p, cols[p])
			}
		}
	}
	return Placement{Cols: cols, Edges: edges}
}

// Nodes places every row of p with l. Rows with two parents are merges.
func (l Layout) Nodes(p Placement, parents [][]int) []Node {
	out := make([]Node, len(p.Cols))
	for row, col := range p.Cols {
		out[row] = l.Node(row, col, len(parents[row]) == 2)
	}
	return out
}

// Routes connects every edge of p.
func (l Layout) Routes(p Placement, nodes []Node) []Route {
	out := make([]Route, 0, len(p.Edges))
	for _, e := range p.Edges {
		out = append(out, l.Connect(nodes[e.From], nodes[e.To], e.Kind))
	}
	return out
}
