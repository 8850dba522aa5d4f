/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"infcanvas/internal/scene"
	"infcanvas/internal/vector"
)

var modifierNames = []struct {
	name  string
	fyne  fyne.KeyModifier
	scene scene.Modifier
}{
	{"Ctrl", fyne.KeyModifierControl, scene.ModCtrl},
	{"Shift", fyne.KeyModifierShift, scene.ModShift},
	{"Alt", fyne.KeyModifierAlt, scene.ModAlt},
	{"Super", fyne.KeyModifierSuper, scene.ModSuper},
}

// shortcutFor parses a "Ctrl+Shift+V" chord into a fyne desktop shortcut.
func shortcutFor(chord string) (*desktop.CustomShortcut, error) {
	parts := strings.Split(chord, "+")
	sc := &desktop.CustomShortcut{}
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if i == len(parts)-1 {
			if p == "" {
				return nil, fmt.Errorf("chord %q has no key", chord)
			}
			sc.KeyName = fyne.KeyName(strings.ToUpper(p[:1]) + p[1:])
			continue
		}
		found := false
		for _, m := range modifierNames {
			if strings.EqualFold(p, m.name) {
				sc.Modifier |= m.fyne
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("chord %q: unknown modifier %q", chord, p)
		}
	}
	return sc, nil
}

// keyEventFor is the inverse of shortcutFor.
func keyEventFor(sc *desktop.CustomShortcut) scene.KeyEvent {
	return scene.KeyEvent{Key: string(sc.KeyName), Modifiers: modifiers(sc.Modifier)}
}

func modifiers(m fyne.KeyModifier) scene.Modifier {
	var out scene.Modifier
	for _, n := range modifierNames {
		if m&n.fyne != 0 {
			out |= n.scene
		}
	}
	return out
}

func mouseButton(b desktop.MouseButton) scene.MouseButton {
	switch b {
	case desktop.MouseButtonPrimary:
		return scene.ButtonLeft
	case desktop.MouseButtonSecondary:
		return scene.ButtonRight
	case desktop.MouseButtonTertiary:
		return scene.ButtonMiddle
	}
	return scene.ButtonNone
}

func toPt(p fyne.Position) vector.Pt { return vector.Pt{X: p.X, Y: p.Y} }

func mouseEvent(ev *desktop.MouseEvent) scene.MouseEvent {
	return scene.MouseEvent{
		Button:    mouseButton(ev.Button),
		Pos:       toPt(ev.Position),
		Modifiers: modifiers(ev.Modifier),
	}
}
