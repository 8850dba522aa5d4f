/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package feature

import (
	"infcanvas/internal/scene"
	"infcanvas/internal/vector"
	"infcanvas/internal/widget"
)

var (
	closeOffset  = vector.Pt{X: -21, Y: 1}
	closeSize    = vector.Sz(20, 20)
	resizeOffset = vector.Pt{X: -16, Y: -16}
	resizeSize   = vector.Sz(15, 15)
)

// Chrome is the frameless window decoration: a close button pinned to the
// top-right viewport corner and a resize grip at the bottom-right one.
type Chrome struct {
	Base
	canvas  *scene.Canvas
	objects *ObjectManager
	theme   widget.Theme
	onClose func()

	obj   *scene.Node
	close *pinned
	grip  *resizeGrip
}

func NewChrome(d Deps, objects *ObjectManager) *Chrome {
	return &Chrome{
		Base:    NewBase("ui", true),
		canvas:  d.Canvas,
		objects: objects,
		theme:   d.Theme,
		onClose: d.OnClose,
	}
}

func (c *Chrome) Enable() {
	if !c.switchTo(true) {
		return
	}
	cv := c.canvas
	c.obj = c.objects.GenerateObject(cv.RelativeToGlobal(vector.Pt{}))
	c.obj.Name = "window_chrome"

	topRight := func() vector.Pt { return cv.RelativeToGlobal(vector.Pt{X: cv.Viewport().W}) }
	bottomRight := func() vector.Pt {
		vp := cv.Viewport()
		return cv.RelativeToGlobal(vector.Pt{X: vp.W, Y: vp.H})
	}

	onClose := c.onClose
	x := widget.NewText(c.obj, scene.Relative(topRight, closeOffset), "X", c.theme, widget.ButtonOptions{
		Size:     closeSize,
		Fixed:    true,
		OnSelect: widget.Run("close", onClose),
	})
	if x != nil {
		c.close = &pinned{Text: x}
		x.Node().Name = "close_window"
		x.Node().SetElement(c.close)
	}
	g := widget.NewText(c.obj, scene.Relative(bottomRight, resizeOffset), "↘", c.theme, widget.ButtonOptions{
		Size:  resizeSize,
		Fixed: true,
	})
	if g != nil {
		c.grip = &resizeGrip{Text: g, canvas: cv}
		g.Node().Name = "resize_window"
		g.Node().SetElement(c.grip)
	}
}

func (c *Chrome) Disable() {
	if !c.switchTo(false) {
		return
	}
	if c.obj != nil {
		c.canvas.RemoveObject(c.obj)
	}
	c.obj, c.close, c.grip = nil, nil, nil
}

// CloseButton and ResizeGrip return the chrome nodes while enabled.
func (c *Chrome) CloseButton() *scene.Node {
	if c.close == nil {
		return nil
	}
	return c.close.Node()
}

func (c *Chrome) ResizeGrip() *scene.Node {
	if c.grip == nil {
		return nil
	}
	return c.grip.Node()
}

// pinned is a button that clicks but does not follow the pointer. Only a
// direct press and release clicks it; drag-select commits are ignored.
type pinned struct {
	*widget.Text
}

func (p *pinned) Move(scene.MouseEvent) {}
func (p *pinned) Click()                {}

// resizeGrip resizes the viewport by the pointer travel since the press.
type resizeGrip struct {
	*widget.Text
	canvas    *scene.Canvas
	dragging  bool
	press     vector.Pt
	startSize vector.Size
}

func (g *resizeGrip) desktop(p vector.Pt) vector.Pt { return g.canvas.WindowPos().Add(p) }

func (g *resizeGrip) Press(ev scene.MouseEvent) {
	if ev.Button != scene.ButtonLeft {
		return
	}
	g.dragging = true
	g.press = g.desktop(ev.Pos)
	g.startSize = g.canvas.Viewport()
}

func (g *resizeGrip) Move(ev scene.MouseEvent) {
	if !g.dragging {
		return
	}
	d := g.desktop(ev.Pos).Sub(g.press)
	g.canvas.Resize(g.startSize.Grow(d.X, d.Y))
	g.Node().MoveAndShow()
}

func (g *resizeGrip) Release(scene.MouseEvent) { g.dragging = false }
func (g *resizeGrip) Cancel()                  { g.dragging = false }
