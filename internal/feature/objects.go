/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package feature

import (
	"log/slog"

	"infcanvas/internal/scene"
	"infcanvas/internal/shortcut"
	"infcanvas/internal/vector"
	"infcanvas/internal/widget"
)

// ObjectManager spawns root objects and shows the ownership tree (Ctrl+O).
type ObjectManager struct {
	Base
	canvas *scene.Canvas
	theme  widget.Theme
	keys   *shortcut.Registry
	tree   *shortcut.Shortcut
	log    *slog.Logger
}

func NewObjectManager(d Deps) *ObjectManager {
	m := &ObjectManager{
		Base:   NewBase("object_manager", true),
		canvas: d.Canvas,
		theme:  d.Theme,
		keys:   d.Shortcuts,
		log:    d.Log,
	}
	m.tree = bindShortcut(d.Shortcuts, "open object manager", []string{"Ctrl", "O"}, func() { m.RenderTree() })
	return m
}

func (m *ObjectManager) Enable() {
	if m.switchTo(true) {
		setShortcut(m.keys, m.tree, true)
	}
}

func (m *ObjectManager) Disable() {
	if m.switchTo(false) {
		setShortcut(m.keys, m.tree, false)
	}
}

// GenerateObject creates a root object at the global point at and adds it
// to the canvas.
func (m *ObjectManager) GenerateObject(at vector.Pt) *scene.Node {
	return m.canvas.AddObject(scene.NewObject(m.canvas, scene.Absolute(at)))
}

// GenerateAtCursor is GenerateObject at the last pointer position.
func (m *ObjectManager) GenerateAtCursor() *scene.Node {
	return m.GenerateObject(m.canvas.CursorGlobalPos())
}

type owner interface{ Children() []*scene.Node }

// ObjectTree mirrors the ownership tree as Funcs, breadth first. The root
// is named after the canvas.
func (m *ObjectManager) ObjectTree() *widget.Func {
	type item struct {
		fn  *widget.Func
		src owner
	}
	root := widget.NewFunc(m.canvas.Name())
	queue := []item{{root, m.canvas}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, ch := range cur.src.Children() {
			fn := widget.NewFunc(ch.Name)
			cur.fn.Add(fn)
			queue = append(queue, item{fn, ch})
		}
	}
	return root
}

// RenderTree spawns an object at the cursor holding a FuncTree of the
// current ownership tree, the new object included.
func (m *ObjectManager) RenderTree() *widget.FuncTree {
	obj := m.GenerateAtCursor()
	if obj == nil {
		return nil
	}
	ft := widget.NewFuncTree(obj, scene.Absolute(obj.Global()), []*widget.Func{m.ObjectTree()}, m.theme)
	if ft == nil {
		m.log.Error("object tree not rendered")
		return nil
	}
	ft.Show()
	return ft
}
