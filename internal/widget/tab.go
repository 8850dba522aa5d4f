/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package widget

import (
	"log/slog"

	"infcanvas/internal/scene"
	"infcanvas/internal/vector"
)

// Page is one tab. Frontend is whatever the page displays; a page without
// one is rejected.
type Page struct {
	Title    string
	Frontend any
	Funcs    []*Func
	// OnDelete runs when the page is removed.
	OnDelete func()
}

type tabPage struct {
	page *Page
	tree *FuncTree
}

// Tab holds pages. Each page gets a FuncTree placed to the right of the tab;
// only the current page's tree is visible.
type Tab struct {
	node   *scene.Node
	theme  Theme
	pages  []tabPage
	active int
}

func NewTab(parent scene.Owner, pos scene.Position, size vector.Size, theme Theme) *Tab {
	n := place(parent, pos, size)
	if n == nil {
		return nil
	}
	t := &Tab{node: n, theme: theme, active: -1}
	n.Name = "tab"
	n.SetElement(t)
	return t
}

func (t *Tab) Node() *scene.Node { return t.node }
func (t *Tab) Len() int          { return len(t.pages) }

// Current is the active page index, -1 when there are no pages.
func (t *Tab) Current() int { return t.active }

func (t *Tab) Page(i int) (*Page, bool) {
	if i < 0 || i >= len(t.pages) {
		return nil, false
	}
	return t.pages[i].page, true
}

// Tree returns the FuncTree of page i.
func (t *Tab) Tree(i int) *FuncTree {
	if i < 0 || i >= len(t.pages) {
		return nil
	}
	return t.pages[i].tree
}

func (t *Tab) log() *slog.Logger { return t.node.Canvas().Logger() }

// AddPage appends p and returns its index, or -1 if p has no frontend. The
// first page becomes current.
func (t *Tab) AddPage(p *Page) int {
	if p == nil || p.Frontend == nil {
		t.log().Error("frontend is required in the page")
		return -1
	}
	right := scene.Relative(t.node.Global, vector.Pt{X: t.node.Size().W})
	tree := NewFuncTree(t.node, right, p.Funcs, t.theme)
	if tree == nil {
		return -1
	}
	t.pages = append(t.pages, tabPage{page: p, tree: tree})
	idx := len(t.pages) - 1
	if t.active < 0 {
		t.SetCurrent(idx)
	} else {
		tree.Hide()
	}
	return idx
}

// SetCurrent switches to page i, hiding the previous page's tree.
func (t *Tab) SetCurrent(i int) {
	if i < 0 || i >= len(t.pages) {
		t.log().Error("no such page", slog.Int("page", i))
		return
	}
	if t.active >= 0 && t.active < len(t.pages) {
		t.pages[t.active].tree.Hide()
	}
	t.active = i
	t.pages[i].tree.Show()
}

// DeletePage removes page i and its tree. With closeOnEmpty the tab deletes
// itself when the last page goes.
func (t *Tab) DeletePage(i int, closeOnEmpty bool) {
	if i < 0 || i >= len(t.pages) {
		t.log().Error("no such page", slog.Int("page", i))
		return
	}
	tp := t.pages[i]
	if tp.page.OnDelete != nil {
		tp.page.OnDelete()
	}
	t.node.RemoveObject(tp.tree.node)
	t.pages = append(t.pages[:i], t.pages[i+1:]...)

	switch {
	case len(t.pages) == 0:
		t.active = -1
		if closeOnEmpty {
			t.node.Delete()
		}
	case i == t.active:
		t.active = -1
		t.SetCurrent(min(i, len(t.pages)-1))
	case i < t.active:
		t.active--
	}
}

func (t *Tab) DeleteAllPages() {
	for len(t.pages) > 0 {
		t.DeletePage(len(t.pages)-1, false)
	}
}
