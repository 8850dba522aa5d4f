/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package graph holds the layout primitives of the commit graph view: a lane
// occupancy grid, node and arc geometry, and the connector routing between
// two nodes. Nothing in here knows about version control.
package graph

// Lanes is a rows x columns occupancy grid. Columns grow on demand.
type Lanes struct {
	rows [][]bool
}

func NewLanes(rows int) *Lanes { return &Lanes{rows: make([][]bool, max(rows, 0))} }

func (l *Lanes) Rows() int { return len(l.rows) }

// Occupied reports whether the cell is taken. Rows outside the grid read
// as occupied.
func (l *Lanes) Occupied(row, col int) bool {
	if row < 0 || row >= len(l.rows) || col < 0 {
		return true
	}
	l.grow(row, col)
	return l.rows[row][col]
}

func (l *Lanes) grow(row, col int) {
	if n := len(l.rows[row]); col >= n {
		l.rows[row] = append(l.rows[row], make([]bool, col-n+1)...)
	}
}

// FirstFree returns the lowest column that is free in every row between r0
// and r1 inclusive, in either order. It returns -1 for spans outside the
// grid.
func (l *Lanes) FirstFree(r0, r1 int) int {
	lo, hi := min(r0, r1), max(r0, r1)
	if lo < 0 || hi >= len(l.rows) {
		return -1
	}
	for col := 0; ; col++ {
		free := true
		for r := lo; r <= hi; r++ {
			if l.Occupied(r, col) {
				free = false
				break
			}
		}
		if free {
			return col
		}
	}
}

// Occupy marks col taken in every row between r0 and r1 inclusive.
func (l *Lanes) Occupy(r0, r1, col int) {
	if col < 0 {
		return
	}
	lo, hi := max(min(r0, r1), 0), min(max(r0, r1), len(l.rows)-1)
	for r := lo; r <= hi; r++ {
		l.grow(r, col)
		l.rows[r][col] = true
	}
}
