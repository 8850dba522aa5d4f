/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package widget

import (
	"infcanvas/internal/scene"
	"infcanvas/internal/textlayout"
	"infcanvas/internal/vector"
)

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// LineEdit is a single-line text field. Pass a nil pos to embed it in the
// parent's layout instead of placing it on the canvas.
type LineEdit struct {
	node     *scene.Node
	text     string
	readOnly bool
	Align    Align

	onChange []func(string)
}

// NewLineEdit creates a line edit. A zero size is measured from the text
// with the theme's line height.
func NewLineEdit(parent scene.Owner, pos scene.Position, text string, size vector.Size, readOnly bool, theme Theme) *LineEdit {
	if size == (vector.Size{}) {
		size = vector.Sz(theme.measure(text).W, theme.LineHeight)
	}
	n := place(parent, pos, size)
	if n == nil {
		return nil
	}
	e := &LineEdit{node: n, text: text, readOnly: readOnly}
	n.Name = "lineedit"
	n.SetElement(e)
	return e
}

func (e *LineEdit) Node() *scene.Node { return e.node }
func (e *LineEdit) Text() string      { return e.text }
func (e *LineEdit) ReadOnly() bool    { return e.readOnly }

// OnChange registers fn for user edits.
func (e *LineEdit) OnChange(fn func(string)) { e.onChange = append(e.onChange, fn) }

// SetText replaces the text without notifying.
func (e *LineEdit) SetText(s string) { e.text = s }

// Edit applies a user edit. Read-only fields reject it.
func (e *LineEdit) Edit(s string) bool {
	if e.readOnly {
		return false
	}
	if s != e.text {
		e.text = s
		for _, fn := range e.onChange {
			fn(s)
		}
	}
	return true
}

// PlainTextEdit is a multi-line field whose height follows its content:
// wrapped line count times the font line height plus the top and bottom
// padding.
type PlainTextEdit struct {
	node     *scene.Node
	theme    Theme
	text     string
	readOnly bool
	width    float32

	onChange []func(string)
}

// NewPlainTextEdit creates a plain text edit. A zero width is measured from
// the text; the height is always computed.
func NewPlainTextEdit(parent scene.Owner, pos scene.Position, text string, width float32, readOnly bool, theme Theme) *PlainTextEdit {
	if width <= 0 {
		width = theme.measure(text).W
	}
	e := &PlainTextEdit{theme: theme, text: text, readOnly: readOnly, width: width}
	n := place(parent, pos, e.fit())
	if n == nil {
		return nil
	}
	e.node = n
	n.Name = "plaintextedit"
	n.SetElement(e)
	return e
}

func (e *PlainTextEdit) Node() *scene.Node { return e.node }
func (e *PlainTextEdit) Text() string      { return e.text }
func (e *PlainTextEdit) ReadOnly() bool    { return e.readOnly }

func (e *PlainTextEdit) OnChange(fn func(string)) { e.onChange = append(e.onChange, fn) }

// SetText replaces the text without notifying and refits the height.
func (e *PlainTextEdit) SetText(s string) {
	e.text = s
	e.UpdateSize()
}

func (e *PlainTextEdit) Edit(s string) bool {
	if e.readOnly {
		return false
	}
	if s != e.text {
		e.SetText(s)
		for _, fn := range e.onChange {
			fn(s)
		}
	}
	return true
}

// UpdateSize refits the node height to the content.
func (e *PlainTextEdit) UpdateSize() {
	if e.node != nil {
		e.node.Resize(e.fit())
	}
}

// FitSize keeps the content height whatever size is requested; only the
// width is taken over.
func (e *PlainTextEdit) FitSize(req vector.Size) vector.Size {
	e.width = req.W
	return e.fit()
}

func (e *PlainTextEdit) fit() vector.Size {
	inner := e.width - 2*e.theme.Padding.W
	box := (&textlayout.WordWrap{Provider: e.theme.Fonts}).Layout(e.text, inner)
	lines := max(len(box.Lines), 1)
	return vector.Sz(e.width, float32(lines)*box.Metrics.LineHeight()+2*e.theme.Padding.H)
}

// Checkbox is a two-state box, 20x20 unless sized otherwise.
type Checkbox struct {
	node    *scene.Node
	checked bool

	onChange []func(bool)
}

var checkboxSize = vector.Sz(20, 20)

func NewCheckbox(parent scene.Owner, pos scene.Position, checked bool) *Checkbox {
	n := place(parent, pos, checkboxSize)
	if n == nil {
		return nil
	}
	cb := &Checkbox{node: n, checked: checked}
	n.Name = "checkbox"
	n.SetElement(cb)
	return cb
}

func (cb *Checkbox) Node() *scene.Node { return cb.node }
func (cb *Checkbox) Checked() bool     { return cb.checked }

func (cb *Checkbox) OnChange(fn func(bool)) { cb.onChange = append(cb.onChange, fn) }

// SetChecked changes the state and notifies when it actually changed.
func (cb *Checkbox) SetChecked(v bool) {
	if v == cb.checked {
		return
	}
	cb.checked = v
	for _, fn := range cb.onChange {
		fn(v)
	}
}

func (cb *Checkbox) Toggle() { cb.SetChecked(!cb.checked) }
