/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package widget implements the composite widgets of the canvas as headless
// models on top of scene nodes. A frontend renders them through scene.View
// and feeds pointer input through PointerTarget.
package widget

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"infcanvas/internal/config"
	"infcanvas/internal/scene"
	"infcanvas/internal/textlayout"
	"infcanvas/internal/vector"
)

// Theme carries the look and the click thresholds shared by all widgets.
type Theme struct {
	Selected   vector.Color
	Unselected vector.Color

	MoveTolerance float32
	PressTimeout  time.Duration

	Fonts textlayout.Provider
	// Padding is added around measured text, per side.
	Padding vector.Size
	// LineHeight is the height of one-line edits and of the table header.
	LineHeight float32
}

func DefaultTheme() Theme {
	t, _ := ThemeFrom(config.Defaults())
	return t
}

// ThemeFrom builds a theme from the user configuration. Unparsable colors
// keep their defaults and are reported in the returned error.
func ThemeFrom(cfg config.AppConfig) (Theme, error) {
	t := Theme{
		Selected:      vector.White,
		Unselected:    vector.Color{R: 240, G: 240, B: 240, A: 255},
		MoveTolerance: float32(cfg.Click.MoveTolerance),
		PressTimeout:  time.Duration(cfg.Click.PressTimeoutMs) * time.Millisecond,
		Fonts:         textlayout.BasicProvider{},
		Padding:       vector.Sz(8, 4),
		LineHeight:    float32(cfg.Text.LineHeight),
	}
	var errs []error
	if c, err := vector.ParseHexColor(cfg.Text.SelectedColor); err == nil {
		t.Selected = c
	} else {
		errs = append(errs, fmt.Errorf("text.selected_color: %w", err))
	}
	if c, err := vector.ParseHexColor(cfg.Text.UnselectedColor); err == nil {
		t.Unselected = c
	} else {
		errs = append(errs, fmt.Errorf("text.unselected_color: %w", err))
	}
	if fonts, err := fontsFor(cfg.Text); err == nil {
		t.Fonts = fonts
	} else {
		errs = append(errs, fmt.Errorf("text.font: %w", err))
	}
	return t, errors.Join(errs...)
}

// fontsFor picks the measuring provider for the configured font. The fixed
// face stays the fallback for unknown families.
func fontsFor(tc config.TextConfig) (textlayout.Provider, error) {
	font := strings.TrimSpace(tc.Font)
	size := float32(tc.FontSize)
	switch strings.ToLower(font) {
	case "", "basic":
		return textlayout.BasicProvider{}, nil
	case "go":
		return textlayout.OTProvider{Lib: textlayout.DefaultLibrary(), Family: textlayout.GoFamily, SizePt: size}, nil
	}
	lib := textlayout.NewFontLibrary()
	if err := lib.LoadTTF("user", 400, false, font); err != nil {
		return textlayout.BasicProvider{}, err
	}
	return textlayout.OTProvider{Lib: lib, Family: "user", SizePt: size}, nil
}

func (t Theme) measure(text string) vector.Size {
	w, h := textlayout.Measure(t.Fonts, text)
	return vector.Sz(w+2*t.Padding.W, h+2*t.Padding.H)
}

// PointerTarget receives the pointer events a frontend routes to a widget
// after a press landed on it.
type PointerTarget interface {
	Press(ev scene.MouseEvent)
	Move(ev scene.MouseEvent)
	Release(ev scene.MouseEvent)
}

// Canceler is a PointerTarget that can abandon a press without it counting
// as a release.
type Canceler interface {
	Cancel()
}

// place creates the node for a widget: a sub-object at pos, or an embedded
// object laid out by its parent when pos is nil.
func place(parent scene.Owner, pos scene.Position, size vector.Size) *scene.Node {
	var n *scene.Node
	if pos == nil {
		n = scene.NewEmbedded(parent, size)
	} else {
		n = scene.NewSubObject(parent, pos, size)
	}
	if n == nil {
		return nil
	}
	return parent.AddObject(n)
}
