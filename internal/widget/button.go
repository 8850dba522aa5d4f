/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package widget

import (
	"infcanvas/internal/interact"
	"infcanvas/internal/scene"
	"infcanvas/internal/vector"
)

// ButtonOptions configures a Button. The zero value is an unselected,
// changeable button.
type ButtonOptions struct {
	Size            vector.Size
	DefaultSelected bool
	// Fixed buttons ignore Select and Unselect unless forced.
	Fixed      bool
	OnSelect   *Func
	OnUnselect *Func
	// Clipboard backs the copy actions of Text and Image.
	Clipboard ClipboardWriter
}

// Button is a selectable node that can be dragged around with the left
// button. A press/release that stays within the click tolerance toggles
// the selection.
type Button struct {
	node  *scene.Node
	theme Theme
	opts  ButtonOptions

	selected bool
	shown    bool // selection state currently displayed

	click    *interact.ClickTracker
	dragging bool
	recorded bool
	press    vector.Pt // desktop position of the press
	start    vector.Pt // node position at the press
}

func NewButton(parent scene.Owner, pos scene.Position, theme Theme, opts ButtonOptions) *Button {
	b := newButton(parent, pos, theme, opts)
	if b == nil {
		return nil
	}
	b.node.Name = "button"
	b.node.SetElement(b)
	b.Reset()
	return b
}

func newButton(parent scene.Owner, pos scene.Position, theme Theme, opts ButtonOptions) *Button {
	n := place(parent, pos, opts.Size)
	if n == nil {
		return nil
	}
	return &Button{
		node:  n,
		theme: theme,
		opts:  opts,
		click: interact.NewClickTracker(theme.MoveTolerance, theme.PressTimeout),
	}
}

func (b *Button) Node() *scene.Node { return b.node }
func (b *Button) Selected() bool    { return b.selected }
func (b *Button) Changeable() bool  { return !b.opts.Fixed }

// Shown is the selection state the button currently displays. It differs
// from Selected while a drag-select preview is active.
func (b *Button) Shown() bool { return b.shown }

// Background is the fill color for the displayed state.
func (b *Button) Background() vector.Color {
	if b.shown {
		return b.theme.Selected
	}
	return b.theme.Unselected
}

// Reset restores the default selection.
func (b *Button) Reset() {
	if b.opts.DefaultSelected {
		b.Select(true)
	} else {
		b.Unselect(true)
	}
}

// Select marks the button selected and runs OnSelect. Fixed buttons only
// change state when forced; the callback runs either way.
func (b *Button) Select(force bool) {
	if b.Changeable() || force {
		b.selected = true
		b.shown = true
	}
	b.syncOverlay()
	if b.opts.OnSelect != nil {
		b.opts.OnSelect.Click()
	}
}

func (b *Button) Unselect(force bool) {
	if b.Changeable() || force {
		b.selected = false
		b.shown = false
	}
	b.syncOverlay()
	if b.opts.OnUnselect != nil {
		b.opts.OnUnselect.Click()
	}
}

// syncOverlay lets the bounding-box handles follow the selection.
func (b *Button) syncOverlay() {
	if ov := b.node.Overlay(); ov != nil {
		ov.SetSelected(b.selected)
	}
}

// Click toggles the selection.
func (b *Button) Click() {
	if b.selected {
		b.Unselect(false)
	} else {
		b.Select(false)
	}
}

// PseudoClick displays the state a click would produce.
func (b *Button) PseudoClick() {
	if b.Changeable() {
		b.shown = !b.selected
	}
}

func (b *Button) ResetPseudoClick() {
	if b.Changeable() {
		b.shown = b.selected
	}
}

func (b *Button) desktop(p vector.Pt) vector.Pt { return b.node.Canvas().WindowPos().Add(p) }

func (b *Button) Press(ev scene.MouseEvent) {
	if ev.Button != scene.ButtonLeft || b.node.Deleted() {
		return
	}
	b.press = b.desktop(ev.Pos)
	b.start = b.node.Global()
	b.dragging = true
	b.recorded = false
	b.click.Press(b.press)
	b.node.SelfMoving().Hold()
}

// Move drags the button, recomputing from the press state.
func (b *Button) Move(ev scene.MouseEvent) {
	if !b.dragging {
		return
	}
	d := b.click.Move(b.desktop(ev.Pos))
	if d == (vector.Pt{}) && !b.recorded {
		return
	}
	if !b.recorded {
		b.node.RecordChange()
		b.recorded = true
	}
	b.node.UpdateGlobalPos(b.start.Add(d))
	b.node.MoveAndShow()
}

func (b *Button) Release(scene.MouseEvent) {
	if !b.dragging {
		return
	}
	clicked := b.click.Release()
	b.dragging = false
	b.node.SelfMoving().Drop()
	if clicked {
		b.Click()
	}
}

// Cancel abandons a press without clicking. The drag guard is dropped and
// the node stays where the last move put it.
func (b *Button) Cancel() {
	if !b.dragging {
		return
	}
	b.dragging = false
	b.click.Release()
	b.node.SelfMoving().Drop()
}

func (b *Button) Dragging() bool { return b.dragging }
