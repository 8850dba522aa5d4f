/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package feature

import (
	"infcanvas/internal/interact"
	"infcanvas/internal/scene"
	"infcanvas/internal/vector"
	"infcanvas/internal/widget"
)

// mouse holds the three pointer subscriptions a gesture feature makes.
type mouse struct {
	canvas *scene.Canvas
	tokens [3]scene.Token
}

type gesture interface {
	Press(ev scene.MouseEvent)
	Move(ev scene.MouseEvent)
	Release(ev scene.MouseEvent)
}

func (m *mouse) connect(g gesture) {
	m.tokens[0] = m.canvas.MousePressed.Connect(g.Press)
	m.tokens[1] = m.canvas.MouseMoved.Connect(g.Move)
	m.tokens[2] = m.canvas.MouseReleased.Connect(g.Release)
}

func (m *mouse) disconnect() {
	m.canvas.MousePressed.Disconnect(m.tokens[0])
	m.canvas.MouseMoved.Disconnect(m.tokens[1])
	m.canvas.MouseReleased.Disconnect(m.tokens[2])
}

// Pointer routes presses to the widget under the pointer, drives the
// bounding-box overlay handles and reports context menu requests.
type Pointer struct {
	Base
	router *widget.Router
}

func NewPointer(d Deps) *Pointer {
	return &Pointer{Base: NewBase("pointer", true), router: widget.NewRouter(d.Canvas)}
}

func (p *Pointer) Router() *widget.Router { return p.router }

// OnMenu registers a callback for context menu requests.
func (p *Pointer) OnMenu(fn func(n *scene.Node, m widget.Menu, at vector.Pt)) { p.router.OnMenu(fn) }

func (p *Pointer) Enable() {
	if p.switchTo(true) {
		p.router.Connect()
	}
}

func (p *Pointer) Disable() {
	if p.switchTo(false) {
		p.router.Disconnect()
	}
}

// DragSelect runs the rubber band on left drags over empty canvas.
type DragSelect struct {
	Base
	mouse
	ctl *interact.DragSelect
}

func NewDragSelect(d Deps) *DragSelect {
	return &DragSelect{
		Base:  NewBase("drag_select", true),
		mouse: mouse{canvas: d.Canvas},
		ctl:   interact.NewDragSelect(d.Canvas),
	}
}

func (s *DragSelect) Controller() *interact.DragSelect { return s.ctl }

func (s *DragSelect) Enable() {
	if s.switchTo(true) {
		s.connect(s.ctl)
	}
}

func (s *DragSelect) Disable() {
	if s.switchTo(false) {
		s.disconnect()
		s.ctl.Reset()
	}
}

// DragCanvas pans with the right button and moves the window with the
// middle one.
type DragCanvas struct {
	Base
	mouse
	ctl *interact.CanvasDrag
}

func NewDragCanvas(d Deps) *DragCanvas {
	return &DragCanvas{
		Base:  NewBase("drag_canvas", true),
		mouse: mouse{canvas: d.Canvas},
		ctl:   interact.NewCanvasDrag(d.Canvas),
	}
}

func (c *DragCanvas) Controller() *interact.CanvasDrag { return c.ctl }

func (c *DragCanvas) Enable() {
	if c.switchTo(true) {
		c.connect(c.ctl)
	}
}

func (c *DragCanvas) Disable() {
	if c.switchTo(false) {
		c.disconnect()
		c.ctl.Reset()
	}
}
