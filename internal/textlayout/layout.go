/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package textlayout measures widget text. Widgets size themselves from
// these metrics when no explicit size is given, so the numbers must be
// deterministic for a given Provider.
package textlayout

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// FontSpec describes a requested font.
type FontSpec struct {
	Family string // logical family name
	SizePt float32
	Weight int // 100..900
	Italic bool
}

// Metrics provides font metrics in pixels for the resolved face.
type Metrics struct {
	Ascent, Descent, LineGap float32
}

// LineHeight is the distance between two baselines.
func (m Metrics) LineHeight() float32 { return m.Ascent + m.Descent + m.LineGap }

// Line is a single laid out line.
type Line struct {
	Text  string
	Width float32
}

// Box is the result of laying out text into a box width.
type Box struct {
	Lines   []Line
	Width   float32
	Height  float32
	Metrics Metrics
}

// Provider maps FontSpec to a concrete font.Face.
type Provider interface {
	Resolve(FontSpec) (font.Face, Metrics)
}

// BasicProvider uses x/image/basicfont Face7x13 for deterministic tests.
type BasicProvider struct{}

func (BasicProvider) Resolve(FontSpec) (font.Face, Metrics) {
	f := basicfont.Face7x13
	return f, metricsOf(f)
}

func metricsOf(f font.Face) Metrics {
	m := f.Metrics()
	return Metrics{
		Ascent:  float32(m.Ascent.Round()),
		Descent: float32(m.Descent.Round()),
		LineGap: float32(m.Height.Round() - m.Ascent.Round() - m.Descent.Round()),
	}
}

// WordWrap breaks text on spaces to fit maxWidth. Newlines always break.
// A maxWidth of zero or less disables wrapping. It does not shape or
// hyphenate; a word wider than the box gets a line of its own.
type WordWrap struct {
	Provider Provider
	Font     FontSpec
}

func NewWordWrap(provider Provider) *WordWrap { return &WordWrap{Provider: provider} }

func (l *WordWrap) Layout(text string, maxWidth float32) Box {
	p := l.Provider
	if p == nil {
		p = BasicProvider{}
	}
	face, met := p.Resolve(l.Font)
	d := &font.Drawer{Face: face}
	box := Box{Metrics: met}

	add := func(s string) {
		w := advance(d, s)
		box.Lines = append(box.Lines, Line{Text: s, Width: w})
		box.Width = max(box.Width, w)
	}
	for _, para := range strings.Split(text, "\n") {
		if maxWidth <= 0 {
			add(para)
			continue
		}
		cur := ""
		for _, word := range strings.Split(para, " ") {
			next := word
			if cur != "" {
				next = cur + " " + word
			}
			if cur != "" && advance(d, next) > maxWidth {
				add(cur)
				next = word
			}
			cur = next
		}
		add(cur)
	}
	box.Height = float32(len(box.Lines)) * met.LineHeight()
	return box
}

func advance(d *font.Drawer, s string) float32 {
	return float32(d.MeasureString(s).Ceil())
}

// Measure returns the unwrapped size of text: the widest line and the
// number of lines times the line height.
func Measure(provider Provider, text string) (w, h float32) {
	box := (&WordWrap{Provider: provider}).Layout(text, 0)
	return box.Width, box.Height
}
