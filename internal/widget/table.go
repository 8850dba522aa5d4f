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
	"log/slog"
	"slices"

	"infcanvas/internal/scene"
	"infcanvas/internal/vector"
)

// CellType selects the widget a table cell renders as.
type CellType int

const (
	CellLineReadOnly CellType = iota
	CellLineEditable
	CellPlainReadOnly
	CellPlainEditable
	CellImage
	// CellWidget cells hold a *scene.Node the table positions but does not
	// own.
	CellWidget
)

// Cell is one table value. Size is a hint; a zero height is computed.
type Cell struct {
	Key   string
	Value any
	Type  CellType
	Size  vector.Size
}

// Row maps header keys to cells.
type Row struct {
	Cells   map[string]*Cell
	Checked bool
}

// MinColumnWidth is the narrowest a table column gets.
const MinColumnWidth = 20

// Table lays out typed cells in rows under a header, optionally with a
// leading checkbox column. Edits in editable cells are written back into
// the Cell values.
type Table struct {
	node     *scene.Node
	theme    Theme
	checkbox bool
	autoSize bool

	header []string
	rows   []*Row
	grid   [][]*scene.Node // [row][column], nil for empty cells
	rowH   []float32
	colW   []float32

	onEdit  []func(row int, c *Cell)
	onCheck []func(row int, checked bool)
}

// NewTable creates a table. A zero size makes the table follow its content.
func NewTable(parent scene.Owner, pos scene.Position, size vector.Size, checkbox bool, theme Theme) *Table {
	n := place(parent, pos, size)
	if n == nil {
		return nil
	}
	t := &Table{node: n, theme: theme, checkbox: checkbox, autoSize: size == (vector.Size{})}
	n.Name = "table"
	n.SetElement(t)
	return t
}

func (t *Table) Node() *scene.Node { return t.node }
func (t *Table) Header() []string  { return slices.Clone(t.header) }
func (t *Table) Rows() []*Row      { return t.rows }

func (t *Table) OnEdit(fn func(row int, c *Cell))       { t.onEdit = append(t.onEdit, fn) }
func (t *Table) OnCheck(fn func(row int, checked bool)) { t.onCheck = append(t.onCheck, fn) }

func (t *Table) offset() int {
	if t.checkbox {
		return 1
	}
	return 0
}

// Columns is the number of columns including the checkbox column.
func (t *Table) Columns() int { return len(t.header) + t.offset() }

// CellNode returns the node rendered at row, col.
func (t *Table) CellNode(row, col int) *scene.Node {
	if row < 0 || row >= len(t.grid) || col < 0 || col >= len(t.grid[row]) {
		return nil
	}
	return t.grid[row][col]
}

func (t *Table) RowHeight(row int) float32   { return t.rowH[row] }
func (t *Table) ColumnWidth(col int) float32 { return t.colW[col] }

// Render replaces the table content. Cells whose key is not in header are
// logged and skipped.
func (t *Table) Render(header []string, rows []*Row) {
	if t.node.Deleted() {
		return
	}
	t.node.RemoveAllObjects()
	t.header = slices.Clone(header)
	t.rows = rows
	t.grid = make([][]*scene.Node, len(rows))

	off := t.offset()
	for r, row := range rows {
		t.grid[r] = make([]*scene.Node, t.Columns())
		if t.checkbox {
			cb := NewCheckbox(t.node, nil, row.Checked)
			cb.OnChange(func(v bool) {
				row.Checked = v
				for _, fn := range t.onCheck {
					fn(r, v)
				}
			})
			t.grid[r][0] = cb.Node()
		}
		for _, cell := range sortedCells(row) {
			col := slices.Index(header, cell.Key)
			if col < 0 {
				t.node.Canvas().Logger().Warn("table cell without column", slog.String("key", cell.Key))
				continue
			}
			t.grid[r][col+off] = t.cellWidget(r, cell)
		}
	}
	t.layout()
}

// sortedCells orders a row's cells by key so rendering is deterministic.
func sortedCells(row *Row) []*Cell {
	keys := make([]string, 0, len(row.Cells))
	for k := range row.Cells {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	out := make([]*Cell, 0, len(keys))
	for _, k := range keys {
		out = append(out, row.Cells[k])
	}
	return out
}

func (t *Table) cellWidget(r int, cell *Cell) *scene.Node {
	text, _ := cell.Value.(string)
	switch cell.Type {
	case CellLineReadOnly, CellLineEditable:
		e := NewLineEdit(t.node, nil, text, cell.Size, cell.Type == CellLineReadOnly, t.theme)
		e.OnChange(func(s string) { t.edited(r, cell, s) })
		return e.Node()
	case CellPlainReadOnly, CellPlainEditable:
		e := NewPlainTextEdit(t.node, nil, text, cell.Size.W, cell.Type == CellPlainReadOnly, t.theme)
		e.OnChange(func(s string) { t.edited(r, cell, s) })
		return e.Node()
	case CellImage:
		img, ok := cell.Value.(image.Image)
		if !ok {
			return nil
		}
		return NewImage(t.node, nil, img, t.theme, ButtonOptions{Size: cell.Size, Fixed: true}).Node()
	case CellWidget:
		n, _ := cell.Value.(*scene.Node)
		return n
	}
	return nil
}

func (t *Table) edited(r int, cell *Cell, s string) {
	cell.Value = s
	t.layout()
	for _, fn := range t.onEdit {
		fn(r, cell)
	}
}

// layout recomputes row heights and column widths and positions every cell
// relative to the table.
func (t *Table) layout() {
	off := t.offset()
	t.rowH = make([]float32, len(t.grid))
	t.colW = make([]float32, t.Columns())
	for c := range t.colW {
		t.colW[c] = MinColumnWidth
	}
	for r, cells := range t.grid {
		for c, n := range cells {
			if n == nil {
				continue
			}
			if c >= off {
				t.rowH[r] = max(t.rowH[r], n.Size().H)
			}
			t.colW[c] = max(t.colW[c], n.Size().W)
		}
	}

	y := t.theme.LineHeight
	for r, cells := range t.grid {
		var x float32
		for c, n := range cells {
			if n != nil {
				n.SetPosition(scene.Relative(t.node.Global, vector.Pt{X: x, Y: y}))
			}
			x += t.colW[c]
		}
		y += t.rowH[r]
	}
	if t.autoSize {
		var w float32
		for _, cw := range t.colW {
			w += cw
		}
		t.node.Resize(vector.Sz(w, y))
	}
	t.node.MoveAndShow()
}
