/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package clipboard turns clipboard and drop contents into canvas widgets.
//
// A Bundle is an ordered list of typed payloads. Rendering places one widget
// per payload, stacked top to bottom from the owning object's position.
package clipboard

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"infcanvas/internal/config"
	"infcanvas/internal/scene"
	"infcanvas/internal/widget"
)

var ErrEmpty = errors.New("clipboard is empty")

type Kind int

const (
	KindText Kind = iota
	KindImage
)

func (k Kind) String() string {
	if k == KindImage {
		return "image"
	}
	return "text"
}

type Payload struct {
	Kind  Kind
	Text  string
	Image image.Image
}

// Bundle is one paste or drop. ID only identifies it in logs.
type Bundle struct {
	ID       string
	Payloads []Payload
}

func NewBundle(payloads ...Payload) Bundle {
	return Bundle{ID: uuid.NewString(), Payloads: payloads}
}

// FromContent builds the bundle for a clipboard holding text and/or an image.
// Text comes first; blank text and nil images are skipped.
func FromContent(text string, img image.Image) (Bundle, error) {
	var ps []Payload
	if strings.TrimSpace(text) != "" {
		ps = append(ps, Payload{Kind: KindText, Text: text})
	}
	if img != nil && !img.Bounds().Empty() {
		ps = append(ps, Payload{Kind: KindImage, Image: img})
	}
	if len(ps) == 0 {
		return Bundle{}, ErrEmpty
	}
	return NewBundle(ps...), nil
}

// Provider reads the current clipboard contents.
type Provider interface {
	Read() (Bundle, error)
}

// Memory is a process-local clipboard. It serves the headless frontend and
// the copy actions of widgets.
type Memory struct {
	text string
	img  image.Image
}

func (m *Memory) SetText(s string) error {
	m.text = s
	m.img = nil
	return nil
}

func (m *Memory) SetImage(img image.Image) error {
	if img == nil {
		return fmt.Errorf("set image: %w", ErrEmpty)
	}
	m.img = img
	m.text = ""
	return nil
}

func (m *Memory) Read() (Bundle, error) { return FromContent(m.text, m.img) }

// Converter shrinks pasted images to the thumbnail box before they become
// widgets. Images already inside the box are kept as they are.
type Converter struct {
	Width, Height int
}

func ConverterFrom(cfg config.ConverterConfig) Converter {
	return Converter{Width: cfg.ThumbnailWidth, Height: cfg.ThumbnailHeight}
}

func (c Converter) Thumbnail(img image.Image) image.Image {
	b := img.Bounds()
	if c.Width <= 0 || c.Height <= 0 || (b.Dx() <= c.Width && b.Dy() <= c.Height) {
		return img
	}
	return imaging.Fit(img, c.Width, c.Height, imaging.Lanczos)
}

// Renderer places bundles under canvas objects.
type Renderer struct {
	Theme     widget.Theme
	Converter Converter
	Clipboard widget.ClipboardWriter
	Log       *slog.Logger
}

// Render adds one Text or Image per payload to root, the first at root's
// position and each following one directly below the previous.
func (r *Renderer) Render(root *scene.Node, b Bundle) ([]*scene.Node, error) {
	if root == nil || root.Deleted() {
		return nil, errors.New("render bundle: no target object")
	}
	if len(b.Payloads) == 0 {
		return nil, ErrEmpty
	}
	l := r.Log
	if l == nil {
		l = root.Canvas().Logger()
	}
	opts := widget.ButtonOptions{Clipboard: r.Clipboard}
	at := root.Global()
	var out []*scene.Node
	for i, p := range b.Payloads {
		pos := scene.Absolute(at)
		var n *scene.Node
		switch p.Kind {
		case KindText:
			if t := widget.NewText(root, pos, p.Text, r.Theme, opts); t != nil {
				n = t.Node()
			}
		case KindImage:
			if im := widget.NewImage(root, pos, r.Converter.Thumbnail(p.Image), r.Theme, opts); im != nil {
				n = im.Node()
			}
		}
		if n == nil {
			l.Warn("payload not rendered", "bundle", b.ID, "index", i, "kind", p.Kind.String())
			continue
		}
		out = append(out, n)
		at.Y += n.Size().H
	}
	l.Debug("bundle rendered", "bundle", b.ID, "objects", len(out))
	return out, nil
}
