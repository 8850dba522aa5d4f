/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package widget

import (
	"infcanvas/internal/scene"
	"infcanvas/internal/vector"
)

// FuncArgsTable edits the arguments of one Func: a checkbox per argument,
// a read-only key column and a value column. Edits are written straight
// back into the FuncArg.
type FuncArgsTable struct {
	*Table
	fn *Func
}

var (
	argKeyWidth   float32 = 100
	argValueWidth float32 = 150
)

func NewFuncArgsTable(parent scene.Owner, pos scene.Position, size vector.Size, theme Theme) *FuncArgsTable {
	t := NewTable(parent, pos, size, true, theme)
	if t == nil {
		return nil
	}
	at := &FuncArgsTable{Table: t}
	t.node.Name = "func_args_table"
	t.OnCheck(func(row int, checked bool) {
		if at.fn != nil && row < len(at.fn.Args) {
			at.fn.Args[row].Checked = checked
		}
	})
	t.OnEdit(func(row int, c *Cell) {
		if at.fn != nil && row < len(at.fn.Args) && c.Key == "value" {
			at.fn.Args[row].Value, _ = c.Value.(string)
		}
	})
	return at
}

// Func is the Func currently shown.
func (at *FuncArgsTable) Func() *Func { return at.fn }

// RenderFunc shows the arguments of f.
func (at *FuncArgsTable) RenderFunc(f *Func) {
	at.fn = f
	rows := make([]*Row, 0, len(f.Args))
	for _, a := range f.Args {
		valueType := CellPlainEditable
		if a.ReadOnly {
			valueType = CellPlainReadOnly
		}
		rows = append(rows, &Row{Checked: a.Checked, Cells: map[string]*Cell{
			"key":   {Key: "key", Value: a.Key, Type: CellPlainReadOnly, Size: vector.Sz(argKeyWidth, 0)},
			"value": {Key: "value", Value: a.Value, Type: valueType, Size: vector.Sz(argValueWidth, 0)},
		}})
	}
	at.Render([]string{"key", "value"}, rows)
}

// TreeItem is one visible row of a FuncTree.
type TreeItem struct {
	Func  *Func
	Depth int
}

var funcTreeSize = vector.Sz(300, 300)

// FuncTree lists a forest of Funcs. Clicking a Func runs it; when the
// clicked Func changes, its arguments are shown in a FuncArgsTable placed
// right below the tree.
type FuncTree struct {
	node  *scene.Node
	items []TreeItem
	args  *FuncArgsTable
	last  *Func
}

func NewFuncTree(parent scene.Owner, pos scene.Position, funcs []*Func, theme Theme) *FuncTree {
	n := place(parent, pos, funcTreeSize)
	if n == nil {
		return nil
	}
	ft := &FuncTree{node: n}
	n.Name = "func_tree"
	n.SetElement(ft)

	below := scene.Relative(n.Global, vector.Pt{Y: funcTreeSize.H})
	ft.args = NewFuncArgsTable(parent, below, funcTreeSize, theme)
	if ft.args != nil {
		ft.args.node.Hide()
		// The argument table is a sibling; it goes when the tree goes.
		n.AttachResource(closeFunc(ft.args.node.Delete))
	}

	var walk func(fs []*Func, depth int)
	walk = func(fs []*Func, depth int) {
		for _, f := range fs {
			ft.items = append(ft.items, TreeItem{Func: f, Depth: depth})
			walk(f.Children, depth+1)
		}
	}
	walk(funcs, 0)
	return ft
}

func (ft *FuncTree) Node() *scene.Node         { return ft.node }
func (ft *FuncTree) Items() []TreeItem         { return ft.items }
func (ft *FuncTree) ArgsTable() *FuncArgsTable { return ft.args }
func (ft *FuncTree) Current() *Func            { return ft.last }

// ClickItem runs f and, if it differs from the previous click, shows its
// arguments or hides the argument table when it has none.
func (ft *FuncTree) ClickItem(f *Func) {
	if f == nil {
		return
	}
	f.Click()
	if f == ft.last || ft.args == nil {
		return
	}
	if len(f.Args) > 0 {
		ft.args.RenderFunc(f)
		ft.args.node.Show()
	} else {
		ft.args.node.Hide()
	}
	ft.last = f
}

func (ft *FuncTree) DoubleClickItem(f *Func) {
	if f != nil {
		f.DoubleClick()
	}
}

// Show shows the tree together with its argument table, if one is in use.
func (ft *FuncTree) Show() {
	ft.node.Show()
	if ft.args != nil && ft.last != nil && len(ft.last.Args) > 0 {
		ft.args.node.Show()
	}
}

func (ft *FuncTree) Hide() {
	ft.node.Hide()
	if ft.args != nil {
		ft.args.node.Hide()
	}
}

type closeFunc func()

func (f closeFunc) Close() error {
	f()
	return nil
}
