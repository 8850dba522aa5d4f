/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"slices"

	"infcanvas/internal/graphics"
	"infcanvas/internal/guard"
	"infcanvas/internal/vector"
)

// Kind distinguishes the three node variants.
type Kind int

const (
	// KindObject is a root container owned directly by the canvas.
	KindObject Kind = iota
	// KindSubObject is a placed, individually positioned widget with a
	// bounding-box overlay.
	KindSubObject
	// KindEmbedded is a widget laid out by its parent, such as a table cell.
	KindEmbedded
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindSubObject:
		return "sub-object"
	case KindEmbedded:
		return "embedded"
	default:
		return "unknown"
	}
}

// OverlayMargin is the gap between a node and its bounding-box overlay.
const OverlayMargin = 2

// Owner is anything that can hold nodes: the canvas or another node. A
// node's owner reference is a back-link only; ownership runs from the
// owner's children list down.
type Owner interface {
	AddObject(child *Node) *Node
	RemoveObject(child *Node)
	Canvas() *Canvas
}

// Node is one entry of the ownership tree.
type Node struct {
	Name string

	kind     Kind
	canvas   *Canvas
	owner    Owner
	children []*Node

	id      ID
	indexed bool

	global vector.Pt
	rel    *RelativePos
	size   vector.Size
	bounds vector.Bounds

	visible bool
	deleted bool

	overlay    *graphics.Rect
	selfMoving guard.Flag

	elem      any
	view      View
	resources []Releaser
}

// NewObject creates a root object at pos. Attach it with Canvas.AddObject.
func NewObject(c *Canvas, pos Position) *Node {
	n := newNode(c, KindObject, pos, vector.Size{})
	if n == nil {
		return nil
	}
	n.Name = "object"
	n.MoveAndShow()
	return n
}

// NewSubObject creates a sub-object of size at pos. It is not attached until
// parent.AddObject is called with it.
func NewSubObject(parent Owner, pos Position, size vector.Size) *Node {
	n := newNode(parent.Canvas(), KindSubObject, pos, size)
	if n == nil {
		return nil
	}
	n.Name = "sub_object"
	n.visible = true
	n.overlay = graphics.NewRect(n.canvas, vector.Bounds{})
	n.overlay.Hide()
	n.overlay.OnChange(n.onOverlayChange)
	n.MoveAndShow()
	return n
}

// NewEmbedded creates a node laid out by its parent. Embedded nodes are kept
// out of the spatial index unless SetIndexed(true) is called before they are
// attached.
func NewEmbedded(parent Owner, size vector.Size) *Node {
	n := newNode(parent.Canvas(), KindEmbedded, Absolute{}, size)
	n.Name = "embedded_object"
	n.visible = true
	n.indexed = false
	return n
}

func newNode(c *Canvas, kind Kind, pos Position, size vector.Size) *Node {
	n := &Node{kind: kind, canvas: c, size: size, indexed: true}
	if !n.setPosition(pos) {
		return nil
	}
	return n
}

func (n *Node) setPosition(pos Position) bool {
	switch p := pos.(type) {
	case Absolute:
		n.rel = nil
		n.global = vector.Pt(p)
	case *RelativePos:
		if p == nil || p.Ref == nil {
			n.canvas.log.Error("relative position without reference", "kind", n.kind.String())
			return false
		}
		n.rel = p
		n.global = p.Resolve()
	default:
		n.canvas.log.Error("unrecognized position type", "kind", n.kind.String())
		return false
	}
	n.syncIndex()
	return true
}

func (n *Node) ID() ID                { return n.id }
func (n *Node) Kind() Kind            { return n.kind }
func (n *Node) Canvas() *Canvas       { return n.canvas }
func (n *Node) Owner() Owner          { return n.owner }
func (n *Node) Global() vector.Pt     { return n.global }
func (n *Node) Size() vector.Size     { return n.size }
func (n *Node) Bounds() vector.Bounds { return n.bounds }
func (n *Node) Visible() bool         { return n.visible }
func (n *Node) Deleted() bool         { return n.deleted }
func (n *Node) Indexed() bool         { return n.indexed }

// Overlay is the bounding-box rectangle, nil for root objects and embedded nodes.
func (n *Node) Overlay() *graphics.Rect { return n.overlay }

// Children returns a snapshot of the direct children.
func (n *Node) Children() []*Node { return slices.Clone(n.children) }

// Position returns the node's position as given at construction, rebased by
// UpdateGlobalPos.
func (n *Node) Position() Position {
	if n.rel != nil {
		return n.rel
	}
	return Absolute(n.global)
}

// SetIndexed decides whether the node enters the spatial index when attached.
// It has no effect on a node that is already attached.
func (n *Node) SetIndexed(v bool) {
	if n.owner == nil {
		n.indexed = v
	}
}

// Element is the widget model wrapping this node.
func (n *Node) Element() any     { return n.elem }
func (n *Node) SetElement(e any) { n.elem = e }

func (n *Node) View() View { return n.view }

// SetView binds the frontend representation and brings it up to date.
func (n *Node) SetView(v View) {
	n.view = v
	if v == nil || n.deleted {
		return
	}
	v.Move(n.canvas.GlobalToRelative(n.global))
	v.Resize(n.size)
	v.SetVisible(n.visible)
}

// AttachResource registers r to be closed when the node is deleted.
func (n *Node) AttachResource(r Releaser) {
	if n.deleted {
		n.canvas.log.Error("attach resource to deleted object", "id", n.id, "name", n.Name)
		_ = r.Close()
		return
	}
	n.resources = append(n.resources, r)
}

// Root walks up the owner chain to the enclosing root object. It returns nil
// for detached nodes.
func (n *Node) Root() *Node {
	cur := n
	for cur != nil {
		if cur.kind == KindObject {
			return cur
		}
		o, ok := cur.owner.(*Node)
		if !ok {
			break
		}
		cur = o
	}
	n.canvas.log.Error("cannot resolve root object", "id", n.id, "name", n.Name)
	return nil
}

// AddObject attaches child, registering it with the canvas when it is
// indexed. It returns child for chaining.
func (n *Node) AddObject(child *Node) *Node {
	if n.deleted {
		n.canvas.log.Error("add to deleted object", "id", n.id, "name", n.Name)
		return child
	}
	return attach(n.canvas, n, &n.children, child)
}

// RemoveObject detaches and deletes child. Removing a node that is not a
// direct child is logged and ignored.
func (n *Node) RemoveObject(child *Node) { detach(n.canvas, &n.children, child) }

// RemoveAllObjects tears down the subtree below n depth-first. It walks a
// snapshot so teardown hooks may remove further nodes.
func (n *Node) RemoveAllObjects() {
	for _, ch := range slices.Clone(n.children) {
		if !slices.Contains(n.children, ch) {
			continue
		}
		ch.RemoveAllObjects()
		n.RemoveObject(ch)
	}
}

// Delete is the terminal transition. Only the first call has an effect.
func (n *Node) Delete() {
	if n.deleted {
		return
	}
	n.deleted = true
	if n.overlay != nil {
		n.overlay.Release()
	}
	if n.owner != nil {
		n.owner.RemoveObject(n)
	}
	n.RemoveAllObjects()
	for _, r := range n.resources {
		if err := r.Close(); err != nil {
			n.canvas.log.Error("release resource failed", "id", n.id, "name", n.Name, "err", err)
		}
	}
	n.resources = nil
	n.visible = false
	if n.view != nil {
		n.view.Release()
	}
}

// SetPosition replaces the node's position. Parents use it to lay out
// embedded children relative to themselves. Invalid positions are logged
// and leave the node where it was.
func (n *Node) SetPosition(pos Position) {
	if !n.deleted {
		n.setPosition(pos)
	}
}

// UpdateGlobalPos moves the node to p. A relative position is rebased onto
// its reference so later reference moves compose. The index entry follows.
func (n *Node) UpdateGlobalPos(p vector.Pt) {
	n.global = p
	if n.rel != nil {
		n.rel.Rebase(p)
	}
	n.syncIndex()
}

// MoveAndShow recomputes the screen position from scratch, places the view
// and the overlay, and applies the visibility flag.
func (n *Node) MoveAndShow() {
	if n.deleted {
		return
	}
	release := n.selfMoving.Enter()
	defer release()

	if n.rel != nil {
		n.global = n.rel.Resolve()
	}
	n.syncIndex()
	screen := n.canvas.GlobalToRelative(n.global)
	if n.view != nil {
		n.view.Move(screen)
		n.view.Resize(n.size)
	}
	n.placeOverlay(screen)
	if n.visible {
		n.Show()
	} else {
		n.Hide()
	}
	// Unregistered children are not reached by RenderAll.
	for _, ch := range n.children {
		if ch.id == 0 {
			ch.MoveAndShow()
		}
	}
}

// SelfMoving is raised while the node repositions itself. Overlay change
// notifications are ignored while it is active.
func (n *Node) SelfMoving() *guard.Flag { return &n.selfMoving }

// RecordChange emits the node's current geometry on Canvas.Changed. Call it
// before applying a user edit.
func (n *Node) RecordChange() {
	if n.id == 0 || n.deleted {
		return
	}
	n.canvas.Changed.Emit(Change{ID: n.id, Pos: n.global, Size: n.size})
}

// ScreenPos is the node position in viewport coordinates.
func (n *Node) ScreenPos() vector.Pt { return n.canvas.GlobalToRelative(n.global) }

func (n *Node) Show() {
	if n.deleted {
		return
	}
	n.visible = true
	if n.view != nil {
		n.view.SetVisible(true)
	}
}

// Hide hides the node together with its overlay.
func (n *Node) Hide() {
	n.visible = false
	if n.view != nil {
		n.view.SetVisible(false)
	}
	if n.overlay != nil {
		n.overlay.Hide()
	}
}

// Resize sets a new size. The element may adjust it through SizeFitter.
func (n *Node) Resize(s vector.Size) {
	if n.deleted {
		return
	}
	n.applySize(s)
	if !n.selfMoving.Active() {
		release := n.selfMoving.Enter()
		n.placeOverlay(n.ScreenPos())
		release()
	}
}

// ToggleOverlay shows or hides the bounding-box overlay.
func (n *Node) ToggleOverlay() {
	if n.overlay == nil || n.deleted {
		return
	}
	if n.overlay.Visible() {
		n.overlay.Hide()
	} else {
		n.overlay.Show()
	}
}

// Menu lists the context menu entries for the node.
func (n *Node) Menu() []Action {
	var acts []Action
	if n.overlay != nil {
		acts = append(acts,
			Action{Text: "Change Size", Run: n.ToggleOverlay},
			Action{Text: "Delete", Run: n.Delete},
		)
	}
	if mp, ok := n.elem.(MenuProvider); ok {
		acts = append(acts, mp.MenuActions()...)
	}
	return acts
}

func (n *Node) Click() {
	if c, ok := n.elem.(Clicker); ok && !n.deleted {
		c.Click()
	}
}

func (n *Node) PseudoClick() {
	if c, ok := n.elem.(PseudoClicker); ok && !n.deleted {
		c.PseudoClick()
	}
}

func (n *Node) ResetPseudoClick() {
	if c, ok := n.elem.(PseudoClicker); ok && !n.deleted {
		c.ResetPseudoClick()
	}
}

func (n *Node) Reset() {
	if r, ok := n.elem.(Resetter); ok && !n.deleted {
		r.Reset()
	}
}

func (n *Node) applySize(s vector.Size) {
	if f, ok := n.elem.(SizeFitter); ok {
		s = f.FitSize(s)
	}
	n.size = s
	if n.view != nil {
		n.view.Resize(s)
	}
	n.syncIndex()
}

func (n *Node) placeOverlay(screen vector.Pt) {
	if n.overlay == nil {
		return
	}
	m := vector.Pt{X: OverlayMargin, Y: OverlayMargin}
	br := screen.Add(vector.Pt{X: n.size.W, Y: n.size.H})
	n.overlay.UpdateAllPositions(screen.Sub(m), br.Add(m))
}

// onOverlayChange follows user drags of the overlay: its top-left minus the
// margin becomes the node position and its inner size the node size.
func (n *Node) onOverlayChange(b vector.Bounds) {
	if n.deleted || n.canvas.selfMoving.Active() || n.selfMoving.Active() {
		return
	}
	n.RecordChange()
	screen := b.TopLeft().Add(vector.Pt{X: OverlayMargin, Y: OverlayMargin})
	n.UpdateGlobalPos(n.canvas.RelativeToGlobal(screen))
	if n.view != nil {
		n.view.Move(screen)
	}
	n.applySize(b.Size().Grow(-2*OverlayMargin, -2*OverlayMargin))
}

func (n *Node) syncIndex() {
	n.bounds = vector.BoundsOf(n.global, n.size)
	if n.id != 0 && !n.deleted {
		n.canvas.registry.Update(n.id, n.bounds)
	}
}

func attach(c *Canvas, owner Owner, list *[]*Node, child *Node) *Node {
	switch {
	case child == nil:
		c.log.Error("add of nil object")
		return nil
	case child.deleted:
		c.log.Error("add of deleted object", "id", child.id, "name", child.Name)
		return child
	case child.owner != nil:
		c.log.Error("object already has an owner", "id", child.id, "name", child.Name)
		return child
	case child.canvas != c:
		c.log.Error("object belongs to another canvas", "name", child.Name)
		return child
	}
	if child.indexed {
		c.registry.Register(child)
	}
	*list = append(*list, child)
	child.owner = owner
	return child
}

func detach(c *Canvas, list *[]*Node, child *Node) {
	i := -1
	if child != nil {
		i = slices.Index(*list, child)
	}
	if i < 0 {
		var id ID
		if child != nil {
			id = child.id
		}
		c.log.Error("failed to remove object", "id", id)
		return
	}
	*list = slices.Delete(*list, i, i+1)
	child.owner = nil
	if child.id != 0 {
		c.registry.Unregister(child.id)
	}
	child.Delete()
}
