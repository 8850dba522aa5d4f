/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"strings"

	"infcanvas/internal/vector"
)

type MouseButton int

const (
	ButtonNone MouseButton = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
)

// Modifier is a bit set of held modifier keys.
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
	ModSuper
)

// MouseEvent carries a pointer position in viewport coordinates. Global is
// filled by the canvas when the event is dispatched.
type MouseEvent struct {
	Button    MouseButton
	Pos       vector.Pt
	Global    vector.Pt
	Modifiers Modifier
}

// KeyEvent is a key press. Key is the key name without modifiers, such as
// "V" or "Escape".
type KeyEvent struct {
	Key       string
	Modifiers Modifier
}

// Chord renders the event as a "Ctrl+Shift+V" style string. Modifiers are
// always listed in Ctrl, Shift, Alt, Super order.
func (e KeyEvent) Chord() string {
	var parts []string
	if e.Modifiers&ModCtrl != 0 {
		parts = append(parts, "Ctrl")
	}
	if e.Modifiers&ModShift != 0 {
		parts = append(parts, "Shift")
	}
	if e.Modifiers&ModAlt != 0 {
		parts = append(parts, "Alt")
	}
	if e.Modifiers&ModSuper != 0 {
		parts = append(parts, "Super")
	}
	if e.Key != "" {
		parts = append(parts, e.Key)
	}
	return strings.Join(parts, "+")
}

// Change is a node's geometry before a user edit.
type Change struct {
	ID   ID
	Pos  vector.Pt
	Size vector.Size
}
