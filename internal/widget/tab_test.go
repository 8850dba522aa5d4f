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

func TestTabPages(t *testing.T) {
	c, logs := newCanvas(t)
	root := newRoot(t, c)
	tab := NewTab(root, scene.Absolute{X: 0, Y: 0}, vector.Sz(400, 300), DefaultTheme())

	if tab.AddPage(&Page{Title: "empty"}) != -1 || !strings.Contains(logs.String(), "frontend is required") {
		t.Fatalf("page without frontend accepted")
	}
	var deleted []string
	p0 := &Page{Title: "one", Frontend: "term-1", Funcs: []*Func{NewFunc("a")}, OnDelete: func() { deleted = append(deleted, "one") }}
	p1 := &Page{Title: "two", Frontend: "term-2", OnDelete: func() { deleted = append(deleted, "two") }}
	if tab.AddPage(p0) != 0 || tab.AddPage(p1) != 1 {
		t.Fatalf("page indices wrong")
	}
	if tab.Current() != 0 || !tab.Tree(0).Node().Visible() || tab.Tree(1).Node().Visible() {
		t.Fatalf("only the first page's tree should show")
	}
	if g := tab.Tree(0).Node().Global(); g != vector.P(400, 0) {
		t.Fatalf("tree should sit right of the tab, at %v", g)
	}

	tab.SetCurrent(1)
	if tab.Tree(0).Node().Visible() || !tab.Tree(1).Node().Visible() {
		t.Fatalf("page change did not swap trees")
	}
	tab.SetCurrent(7)
	if tab.Current() != 1 {
		t.Fatalf("bad index changed the page")
	}

	tree1 := tab.Tree(1)
	tab.DeletePage(1, true)
	if tab.Len() != 1 || tab.Current() != 0 || !tab.Tree(0).Node().Visible() || !tree1.Node().Deleted() {
		t.Fatalf("deleting the current page should fall back to page 0")
	}
	tab.DeletePage(0, true)
	if !tab.Node().Deleted() || tab.Current() != -1 {
		t.Fatalf("tab should close when empty")
	}
	if strings.Join(deleted, ",") != "two,one" {
		t.Fatalf("OnDelete order = %v", deleted)
	}
}

func TestTabDeleteAllKeepsTab(t *testing.T) {
	c, _ := newCanvas(t)
	root := newRoot(t, c)
	tab := NewTab(root, scene.Absolute{}, vector.Sz(100, 100), DefaultTheme())
	tab.AddPage(&Page{Frontend: 1})
	tab.AddPage(&Page{Frontend: 2})
	tab.DeleteAllPages()
	if tab.Len() != 0 || tab.Node().Deleted() || len(tab.Node().Children()) != 0 {
		t.Fatalf("delete all: len %d deleted %v children %d", tab.Len(), tab.Node().Deleted(), len(tab.Node().Children()))
	}
}
