/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package widget

import (
	"strings"
	"testing"

	"infcanvas/internal/scene"
	"infcanvas/internal/vector"
)

func sampleRows() []*Row {
	return []*Row{
		{Cells: map[string]*Cell{
			"name": {Key: "name", Value: "alpha", Type: CellLineReadOnly},
			"note": {Key: "note", Value: "x", Type: CellPlainEditable, Size: vector.Sz(80, 0)},
		}},
		{Checked: true, Cells: map[string]*Cell{
			"name": {Key: "name", Value: "b", Type: CellLineEditable},
		}},
	}
}

func TestTableLayout(t *testing.T) {
	c, _ := newCanvas(t)
	root := newRoot(t, c)
	tb := NewTable(root, scene.Absolute{X: 100, Y: 100}, vector.Size{}, true, DefaultTheme())
	tb.Render([]string{"name", "note"}, sampleRows())

	if tb.Columns() != 3 {
		t.Fatalf("columns = %d", tb.Columns())
	}
	if tb.RowHeight(0) != 30 || tb.RowHeight(1) != 30 {
		t.Fatalf("row heights %v %v", tb.RowHeight(0), tb.RowHeight(1))
	}
	if tb.ColumnWidth(0) != 20 || tb.ColumnWidth(1) != 51 || tb.ColumnWidth(2) != 80 {
		t.Fatalf("column widths %v %v %v", tb.ColumnWidth(0), tb.ColumnWidth(1), tb.ColumnWidth(2))
	}
	if tb.Node().Size() != vector.Sz(151, 90) {
		t.Fatalf("table size = %v", tb.Node().Size())
	}
	if g := tb.CellNode(1, 1).Global(); g != vector.P(120, 160) {
		t.Fatalf("cell (1,1) at %v", g)
	}
	if tb.CellNode(1, 2) != nil {
		t.Fatalf("missing cell should stay empty")
	}
	if cb := tb.CellNode(1, 0).Element().(*Checkbox); !cb.Checked() {
		t.Fatalf("checkbox should start from the row state")
	}

	// Cells follow the table.
	tb.Node().UpdateGlobalPos(vector.P(0, 0))
	tb.Node().MoveAndShow()
	if g := tb.CellNode(0, 2).Global(); g != vector.P(71, 30) {
		t.Fatalf("cell (0,2) after move at %v", g)
	}
}

func TestTableWritesBackEdits(t *testing.T) {
	c, _ := newCanvas(t)
	root := newRoot(t, c)
	tb := NewTable(root, scene.Absolute{}, vector.Size{}, true, DefaultTheme())
	rows := sampleRows()
	tb.Render([]string{"name", "note"}, rows)
	var edits []string
	var checks []bool
	tb.OnEdit(func(row int, cell *Cell) { edits = append(edits, cell.Key) })
	tb.OnCheck(func(row int, v bool) { checks = append(checks, v) })

	note := tb.CellNode(0, 2).Element().(*PlainTextEdit)
	note.Edit("x\ny\nz")
	if rows[0].Cells["note"].Value != "x\ny\nz" || tb.RowHeight(0) != 47 {
		t.Fatalf("edit not written back: %v height %v", rows[0].Cells["note"].Value, tb.RowHeight(0))
	}
	name := tb.CellNode(0, 1).Element().(*LineEdit)
	if name.Edit("zzz") {
		t.Fatalf("read-only cell accepted an edit")
	}
	tb.CellNode(0, 0).Element().(*Checkbox).Toggle()
	if !rows[0].Checked || len(checks) != 1 || len(edits) != 1 {
		t.Fatalf("checks %v edits %v", checks, edits)
	}
}

func TestTableRerenderReplacesCells(t *testing.T) {
	c, logs := newCanvas(t)
	root := newRoot(t, c)
	tb := NewTable(root, scene.Absolute{}, vector.Sz(300, 300), false, DefaultTheme())
	tb.Render([]string{"name", "note"}, sampleRows())
	before := len(tb.Node().Children())
	tb.Render([]string{"name"}, sampleRows())
	if n := len(tb.Node().Children()); n != before-1 {
		t.Fatalf("children before %d after %d", before, n)
	}
	if !strings.Contains(logs.String(), "table cell without column") {
		t.Fatalf("unknown key not logged")
	}
	if tb.Node().Size() != vector.Sz(300, 300) {
		t.Fatalf("explicitly sized table resized itself")
	}
}
