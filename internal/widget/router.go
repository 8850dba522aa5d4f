/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package widget

import (
	"infcanvas/internal/graphics"
	"infcanvas/internal/scene"
	"infcanvas/internal/vector"
)

// Router forwards canvas pointer events to the widget under the press. The
// widget keeps receiving moves until the release. A right press on a node
// with menu entries is reported through OnMenu instead.
//
// Bounding-box overlays come first: a left press on an overlay handle
// resizes the node, one on the overlay border outside the node moves it,
// and plain moves keep the handle hover (and so the cursor) current.
// Overlay geometry is in viewport coordinates.
type Router struct {
	canvas *scene.Canvas
	target PointerTarget
	grip   *overlayGrip
	hover  overlayHit
	onMenu []func(n *scene.Node, m Menu, at vector.Pt)
	tokens [3]scene.Token
}

// overlayHit names a spot on a node's overlay: a corner handle, or the
// border when corner is -1.
type overlayHit struct {
	node   *scene.Node
	corner int
}

type overlayGrip struct {
	overlayHit
	press vector.Pt
}

func NewRouter(c *scene.Canvas) *Router { return &Router{canvas: c} }

func (r *Router) OnMenu(fn func(n *scene.Node, m Menu, at vector.Pt)) {
	r.onMenu = append(r.onMenu, fn)
}

// Connect subscribes to the canvas mouse signals.
func (r *Router) Connect() {
	r.tokens[0] = r.canvas.MousePressed.Connect(r.Press)
	r.tokens[1] = r.canvas.MouseMoved.Connect(r.Move)
	r.tokens[2] = r.canvas.MouseReleased.Connect(r.Release)
}

// Disconnect unsubscribes and abandons any gesture in progress, so no
// widget is left holding its drag guard.
func (r *Router) Disconnect() {
	r.canvas.MousePressed.Disconnect(r.tokens[0])
	r.canvas.MouseMoved.Disconnect(r.tokens[1])
	r.canvas.MouseReleased.Disconnect(r.tokens[2])
	r.Cancel()
}

// Cancel drops the captured widget or overlay drag without a release and
// clears the handle hover.
func (r *Router) Cancel() {
	if t := r.target; t != nil {
		r.target = nil
		if c, ok := t.(Canceler); ok {
			c.Cancel()
		} else {
			t.Release(scene.MouseEvent{})
		}
	}
	if g := r.grip; g != nil {
		r.grip = nil
		if ov := g.node.Overlay(); ov != nil {
			ov.EndDrag()
		}
	}
	r.setHover(overlayHit{})
}

// Captured reports whether a widget or an overlay drag holds the pointer.
func (r *Router) Captured() bool { return r.target != nil || r.grip != nil }

// Claims reports whether a left press at the viewport point p would go to
// an overlay rather than to the canvas below it.
func (r *Router) Claims(p vector.Pt) bool {
	if r.grip != nil {
		return true
	}
	if h := r.handleAt(p); h.node != nil {
		return true
	}
	_, hit := r.canvas.ObjectAt(r.canvas.RelativeToGlobal(p))
	return !hit && r.borderAt(p).node != nil
}

func (r *Router) Press(ev scene.MouseEvent) {
	if ev.Button == scene.ButtonLeft {
		if h := r.handleAt(ev.Pos); h.node != nil {
			r.setHover(h)
			r.startGrip(h, ev.Pos)
			return
		}
	}
	n, ok := r.canvas.ObjectAt(ev.Global)
	if !ok {
		if ev.Button == scene.ButtonLeft {
			if h := r.borderAt(ev.Pos); h.node != nil {
				r.startGrip(h, ev.Pos)
			}
		}
		return
	}
	if ev.Button == scene.ButtonRight {
		if m := MenuFor(n); len(m.Actions) > 0 {
			for _, fn := range r.onMenu {
				fn(n, m, ev.Pos)
			}
		}
		return
	}
	if pt, ok := n.Element().(PointerTarget); ok {
		r.target = pt
		pt.Press(ev)
	}
}

func (r *Router) Move(ev scene.MouseEvent) {
	switch {
	case r.grip != nil:
		r.dragGrip(ev.Pos)
	case r.target != nil:
		r.target.Move(ev)
	default:
		r.setHover(r.handleAt(ev.Pos))
	}
}

func (r *Router) Release(ev scene.MouseEvent) {
	if g := r.grip; g != nil {
		r.dragGrip(ev.Pos)
		r.grip = nil
		if ov := g.node.Overlay(); ov != nil {
			ov.EndDrag()
		}
		// snap the overlay back around whatever size the element accepted
		g.node.MoveAndShow()
		r.setHover(r.handleAt(ev.Pos))
		return
	}
	if r.target != nil {
		t := r.target
		r.target = nil
		t.Release(ev)
	}
}

func (r *Router) startGrip(h overlayHit, p vector.Pt) {
	r.grip = &overlayGrip{overlayHit: h, press: p}
	if h.corner < 0 {
		h.node.Overlay().BeginDrag()
	}
}

func (r *Router) dragGrip(p vector.Pt) {
	g := r.grip
	ov := g.node.Overlay()
	if ov == nil || g.node.Deleted() {
		return
	}
	if g.corner >= 0 {
		ov.DragHandle(graphics.Corner(g.corner), p)
	} else {
		ov.DragBy(p.Sub(g.press))
	}
}

// setHover moves the handle hover to h, popping the previous handle's
// cursor before the new one is pushed.
func (r *Router) setHover(h overlayHit) {
	if h == r.hover {
		return
	}
	if prev := r.hover.node; prev != nil {
		if ov := prev.Overlay(); ov != nil {
			ov.HoverHandle(-1)
		}
	}
	r.hover = h
	if h.node != nil {
		h.node.Overlay().HoverHandle(h.corner)
	}
}

// Leave clears the handle hover when the pointer leaves the canvas. A
// gesture in progress keeps its capture.
func (r *Router) Leave() {
	if !r.Captured() {
		r.setHover(overlayHit{})
	}
}

// Hovered returns the node whose overlay handle is under the pointer.
func (r *Router) Hovered() (*scene.Node, bool) { return r.hover.node, r.hover.node != nil }

// handleAt finds the overlay handle under p. Newer nodes win.
func (r *Router) handleAt(p vector.Pt) overlayHit {
	return r.scanOverlays(func(n *scene.Node, ov *graphics.Rect) int {
		return ov.HandleUnder(p)
	})
}

// borderAt finds an overlay whose body holds p outside its node.
func (r *Router) borderAt(p vector.Pt) overlayHit {
	g := r.canvas.RelativeToGlobal(p)
	h := r.scanOverlays(func(n *scene.Node, ov *graphics.Rect) int {
		if ov.Hit(p) && !n.Bounds().ContainsPoint(g) {
			return 0
		}
		return -1
	})
	if h.node != nil {
		h.corner = -1
	}
	return h
}

func (r *Router) scanOverlays(match func(*scene.Node, *graphics.Rect) int) overlayHit {
	ids := r.canvas.Registry().IDs()
	for i := len(ids) - 1; i >= 0; i-- {
		n, ok := r.canvas.Lookup(ids[i])
		if !ok || n.Deleted() {
			continue
		}
		ov := n.Overlay()
		if ov == nil || !ov.Visible() {
			continue
		}
		if c := match(n, ov); c >= 0 {
			return overlayHit{node: n, corner: c}
		}
	}
	return overlayHit{}
}
