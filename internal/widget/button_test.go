/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package widget

import (
	"testing"
	"time"

	"infcanvas/internal/scene"
	"infcanvas/internal/vector"
)

func TestButtonSelection(t *testing.T) {
	c, _ := newCanvas(t)
	root := newRoot(t, c)
	var selects, unselects int
	b := NewButton(root, scene.Absolute{X: 10, Y: 10}, DefaultTheme(), ButtonOptions{
		Size:       vector.Sz(50, 20),
		OnSelect:   Run("sel", func() { selects++ }),
		OnUnselect: Run("unsel", func() { unselects++ }),
	})
	if b.Selected() || unselects != 1 {
		t.Fatalf("reset should unselect: selected=%v unselects=%d", b.Selected(), unselects)
	}
	b.Click()
	if !b.Selected() || !b.Shown() || selects != 1 || b.Background() != DefaultTheme().Selected {
		t.Fatalf("click should select")
	}
	b.PseudoClick()
	if b.Shown() || !b.Selected() {
		t.Fatalf("pseudo click should preview the unselected state only")
	}
	b.ResetPseudoClick()
	if !b.Shown() {
		t.Fatalf("reset pseudo click should restore")
	}
	b.Node().Click() // through the node hook
	if b.Selected() {
		t.Fatalf("node click should toggle")
	}
}

func TestFixedButtonIgnoresUnforcedChanges(t *testing.T) {
	c, _ := newCanvas(t)
	root := newRoot(t, c)
	var selects int
	b := NewButton(root, scene.Absolute{}, DefaultTheme(), ButtonOptions{
		Size: vector.Sz(10, 10), DefaultSelected: true, Fixed: true,
		OnSelect: Run("sel", func() { selects++ }),
	})
	if !b.Selected() || selects != 1 {
		t.Fatalf("forced default select failed")
	}
	b.Click()
	b.PseudoClick()
	if !b.Selected() || !b.Shown() {
		t.Fatalf("fixed button changed state")
	}
	b.Select(false)
	if selects != 2 {
		t.Fatalf("callback should run even when state is fixed")
	}
}

func TestButtonDragAndClick(t *testing.T) {
	c, _ := newCanvas(t)
	root := newRoot(t, c)
	b := NewButton(root, scene.Absolute{X: 10, Y: 10}, DefaultTheme(), ButtonOptions{Size: vector.Sz(50, 20)})
	clk := &fakeClock{t: time.Unix(0, 0)}
	b.click.WithClock(clk.now)
	var changes []scene.Change
	c.Changed.Connect(func(ch scene.Change) { changes = append(changes, ch) })

	// Quick press and release in place is a click.
	b.Press(mouse(c, scene.ButtonLeft, vector.P(20, 15)))
	if !b.Node().SelfMoving().Active() {
		t.Fatalf("drag should hold the node guard")
	}
	clk.advance(50 * time.Millisecond)
	b.Release(mouse(c, scene.ButtonLeft, vector.P(20, 15)))
	if !b.Selected() || b.Node().SelfMoving().Active() || len(changes) != 0 {
		t.Fatalf("expected a click without a move: selected=%v changes=%v", b.Selected(), changes)
	}

	// A drag moves from the press state and is not a click.
	b.Press(mouse(c, scene.ButtonLeft, vector.P(20, 15)))
	b.Move(mouse(c, scene.ButtonNone, vector.P(30, 15)))
	b.Move(mouse(c, scene.ButtonNone, vector.P(45, 40)))
	if b.Node().Global() != vector.P(35, 35) {
		t.Fatalf("button at %v", b.Node().Global())
	}
	if r, _ := c.Registry().BoundsOf(b.Node().ID()); r != vector.B(35, 85, 35, 55) {
		t.Fatalf("index not synced: %+v", r)
	}
	b.Release(mouse(c, scene.ButtonLeft, vector.P(45, 40)))
	if !b.Selected() {
		t.Fatalf("drag should not toggle")
	}
	if len(changes) != 1 || changes[0].Pos != vector.P(10, 10) {
		t.Fatalf("drag should record the start geometry once: %+v", changes)
	}

	// Slow press in place is not a click.
	b.Press(mouse(c, scene.ButtonLeft, vector.P(40, 40)))
	clk.advance(time.Second)
	b.Release(mouse(c, scene.ButtonLeft, vector.P(40, 40)))
	if !b.Selected() {
		t.Fatalf("slow press toggled")
	}
}

func TestButtonIgnoresOtherButtons(t *testing.T) {
	c, _ := newCanvas(t)
	root := newRoot(t, c)
	b := NewButton(root, scene.Absolute{}, DefaultTheme(), ButtonOptions{Size: vector.Sz(10, 10)})
	b.Press(mouse(c, scene.ButtonRight, vector.P(5, 5)))
	if b.Dragging() {
		t.Fatalf("right press started a drag")
	}
	b.Move(mouse(c, scene.ButtonNone, vector.P(50, 50)))
	b.Release(mouse(c, scene.ButtonRight, vector.P(50, 50)))
	if b.Node().Global() != (vector.Pt{}) || b.Selected() {
		t.Fatalf("button reacted to an untracked gesture")
	}
}

func TestRouterCapturesPress(t *testing.T) {
	c, _ := newCanvas(t)
	root := newRoot(t, c)
	b := NewButton(root, scene.Absolute{X: 10, Y: 10}, DefaultTheme(), ButtonOptions{Size: vector.Sz(50, 20)})
	r := NewRouter(c)
	r.Connect()
	var menus []Menu
	r.OnMenu(func(n *scene.Node, m Menu, at vector.Pt) { menus = append(menus, m) })

	c.DispatchMousePress(scene.MouseEvent{Button: scene.ButtonLeft, Pos: vector.P(15, 15)})
	if !r.Captured() || !b.Dragging() {
		t.Fatalf("press not routed")
	}
	c.DispatchMouseMove(scene.MouseEvent{Pos: vector.P(115, 15)})
	c.DispatchMouseRelease(scene.MouseEvent{Button: scene.ButtonLeft, Pos: vector.P(115, 15)})
	if r.Captured() || b.Node().Global() != vector.P(110, 10) {
		t.Fatalf("drag through router ended at %v", b.Node().Global())
	}

	c.DispatchMousePress(scene.MouseEvent{Button: scene.ButtonRight, Pos: vector.P(115, 15)})
	if len(menus) != 1 || menus[0].Texts()[0] != "Change Size" {
		t.Fatalf("menus = %+v", menus)
	}
	if !menus[0].Trigger("Change Size") || !b.Node().Overlay().Visible() {
		t.Fatalf("Change Size did not show the overlay")
	}
	if menus[0].Trigger("missing") {
		t.Fatalf("unknown entry triggered")
	}

	r.Disconnect()
	c.DispatchMousePress(scene.MouseEvent{Button: scene.ButtonLeft, Pos: vector.P(115, 15)})
	if r.Captured() {
		t.Fatalf("disconnected router still routes")
	}
}
