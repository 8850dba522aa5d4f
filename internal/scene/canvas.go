/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package scene is the canvas kernel: the Canvas (pan offset, viewport,
// cursor stack, input signals), the Registry arena with its spatial index,
// and the ownership tree of Nodes placed on the canvas.
//
// Everything runs on the UI goroutine. Nothing here locks.
package scene

import (
	"log/slog"
	"slices"

	"infcanvas/internal/graphics"
	"infcanvas/internal/guard"
	applog "infcanvas/internal/log"
	"infcanvas/internal/vector"
)

// Options configures a Canvas.
type Options struct {
	Name          string
	Logger        *slog.Logger
	Viewport      vector.Size
	DefaultCursor graphics.Cursor
}

// Canvas is the top-level scene container. It is the root Owner of the tree.
type Canvas struct {
	name     string
	log      *slog.Logger
	offset   vector.Pt
	viewport vector.Size
	window   vector.Pt
	pointer  vector.Pt

	registry *Registry
	children []*Node
	cursors  *graphics.CursorStack

	// raised while the canvas repositions everything (pan, render-all)
	selfMoving guard.Flag

	MousePressed  Signal[MouseEvent]
	MouseMoved    Signal[MouseEvent]
	MouseReleased Signal[MouseEvent]
	KeyPressed    Signal[KeyEvent]
	Resized       Signal[vector.Size]

	// Changed carries the geometry a node had right before a user edit
	// (handle drag, widget drag). Programmatic moves do not emit.
	Changed Signal[Change]
}

func New(opts Options) *Canvas {
	l := opts.Logger
	if l == nil {
		l = applog.WithComponent("scene")
	}
	name := opts.Name
	if name == "" {
		name = "frame"
	}
	return &Canvas{
		name:     name,
		log:      l,
		viewport: opts.Viewport,
		registry: NewRegistry(l),
		cursors:  graphics.NewCursorStack(opts.DefaultCursor),
	}
}

func (c *Canvas) Name() string            { return c.name }
func (c *Canvas) Logger() *slog.Logger    { return c.log }
func (c *Canvas) Registry() *Registry     { return c.registry }
func (c *Canvas) Canvas() *Canvas         { return c }
func (c *Canvas) Offset() vector.Pt       { return c.offset }
func (c *Canvas) Viewport() vector.Size   { return c.viewport }
func (c *Canvas) WindowPos() vector.Pt    { return c.window }
func (c *Canvas) SelfMoving() *guard.Flag { return &c.selfMoving }

// SetOffset replaces the pan offset. Callers re-render with RenderAll.
func (c *Canvas) SetOffset(o vector.Pt) { c.offset = o }

// PanTo sets the offset and re-renders every node from scratch.
func (c *Canvas) PanTo(o vector.Pt) {
	c.offset = o
	c.RenderAll()
}

func (c *Canvas) GlobalToRelative(p vector.Pt) vector.Pt { return vector.GlobalToRelative(p, c.offset) }
func (c *Canvas) RelativeToGlobal(p vector.Pt) vector.Pt { return vector.RelativeToGlobal(p, c.offset) }

// Resize sets the viewport size and emits Resized.
func (c *Canvas) Resize(s vector.Size) {
	c.viewport = s
	c.Resized.Emit(s)
}

// MoveWindow records the window position on the desktop.
func (c *Canvas) MoveWindow(p vector.Pt) { c.window = p }

// Pointer is the last pointer position seen, viewport-relative.
func (c *Canvas) Pointer() vector.Pt { return c.pointer }

// SetPointer records a pointer position without emitting anything.
func (c *Canvas) SetPointer(p vector.Pt) { c.pointer = p }

// CursorGlobalPos is the last pointer position in canvas-global space.
func (c *Canvas) CursorGlobalPos() vector.Pt { return c.RelativeToGlobal(c.pointer) }

// Cursors exposes the cursor stack.
func (c *Canvas) Cursors() *graphics.CursorStack { return c.cursors }

func (c *Canvas) PushCursor(s graphics.Cursor) graphics.CursorToken { return c.cursors.Push(s) }
func (c *Canvas) PopCursor(tok graphics.CursorToken) {
	if !c.cursors.Remove(tok) {
		c.log.Warn("cursor entry already gone", "token", uint64(tok))
	}
}

// DispatchMousePress is called by the frontend for every button press.
func (c *Canvas) DispatchMousePress(ev MouseEvent) { c.MousePressed.Emit(c.prepare(ev)) }

func (c *Canvas) DispatchMouseMove(ev MouseEvent) { c.MouseMoved.Emit(c.prepare(ev)) }

func (c *Canvas) DispatchMouseRelease(ev MouseEvent) { c.MouseReleased.Emit(c.prepare(ev)) }

func (c *Canvas) DispatchKey(ev KeyEvent) { c.KeyPressed.Emit(ev) }

func (c *Canvas) prepare(ev MouseEvent) MouseEvent {
	c.pointer = ev.Pos
	ev.Global = c.RelativeToGlobal(ev.Pos)
	return ev
}

// AddObject attaches a root object to the canvas and registers it.
func (c *Canvas) AddObject(obj *Node) *Node {
	if obj != nil && obj.kind != KindObject {
		c.log.Warn("non-root node added to canvas", "kind", obj.kind.String(), "name", obj.Name)
	}
	return attach(c, c, &c.children, obj)
}

// RemoveObject detaches and deletes a root object.
func (c *Canvas) RemoveObject(obj *Node) { detach(c, &c.children, obj) }

// RemoveAllObjects deletes every root object and everything below it.
func (c *Canvas) RemoveAllObjects() {
	for _, obj := range slices.Clone(c.children) {
		if !slices.Contains(c.children, obj) {
			continue
		}
		obj.RemoveAllObjects()
		c.RemoveObject(obj)
	}
}

// Children returns a snapshot of the root objects.
func (c *Canvas) Children() []*Node { return slices.Clone(c.children) }

// Lookup resolves a registered id.
func (c *Canvas) Lookup(id ID) (*Node, bool) { return c.registry.Lookup(id) }

// ObjectAt returns the topmost visible node whose indexed bounds contain the
// global point p. Later registrations are on top.
func (c *Canvas) ObjectAt(p vector.Pt) (*Node, bool) {
	ids := c.registry.At(p)
	for i := len(ids) - 1; i >= 0; i-- {
		if n, ok := c.registry.Lookup(ids[i]); ok && n.visible {
			return n, true
		}
	}
	return nil, false
}

// RenderAll recomputes the screen placement of every registered node.
func (c *Canvas) RenderAll() {
	release := c.selfMoving.Enter()
	defer release()
	for _, id := range c.registry.IDs() {
		if n, ok := c.registry.Lookup(id); ok {
			n.MoveAndShow()
		}
	}
}
