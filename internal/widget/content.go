/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package widget

import (
	"errors"
	"image"
	"log/slog"

	"golang.org/x/image/draw"

	"infcanvas/internal/scene"
	"infcanvas/internal/vector"
)

// ClipboardWriter is the system clipboard as seen by the copy actions.
type ClipboardWriter interface {
	SetText(s string) error
	SetImage(img image.Image) error
}

var errNoClipboard = errors.New("no clipboard")

// Text is a Button showing a string. Without an explicit size it takes the
// measured size of the text.
type Text struct {
	*Button
	text string
}

func NewText(parent scene.Owner, pos scene.Position, text string, theme Theme, opts ButtonOptions) *Text {
	if opts.Size == (vector.Size{}) {
		opts.Size = theme.measure(text)
	}
	b := newButton(parent, pos, theme, opts)
	if b == nil {
		return nil
	}
	t := &Text{Button: b, text: text}
	b.node.Name = "text"
	b.node.SetElement(t)
	t.Reset()
	return t
}

func (t *Text) Text() string { return t.text }

func (t *Text) MenuActions() []scene.Action {
	return []scene.Action{{Text: "Copy Text", Run: t.copy}}
}

func (t *Text) copy() {
	err := errNoClipboard
	if cb := t.opts.Clipboard; cb != nil {
		err = cb.SetText(t.text)
	}
	if err != nil {
		t.node.Canvas().Logger().Error("copy text failed", slog.Int("id", int(t.node.ID())), slog.Any("err", err))
	}
}

// Image is a Button showing a picture. Resizing keeps the aspect ratio; the
// displayed copy is rescaled with a Catmull-Rom filter.
type Image struct {
	*Button
	src    image.Image
	scaled *image.RGBA
}

func NewImage(parent scene.Owner, pos scene.Position, img image.Image, theme Theme, opts ButtonOptions) *Image {
	if img == nil {
		img = image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	sb := img.Bounds()
	if opts.Size == (vector.Size{}) {
		opts.Size = vector.Sz(float32(sb.Dx()), float32(sb.Dy()))
	}
	b := newButton(parent, pos, theme, opts)
	if b == nil {
		return nil
	}
	im := &Image{Button: b, src: img}
	b.node.Name = "image"
	b.node.SetElement(im)
	// Fit the initial size through the same path as user resizes.
	b.node.Resize(opts.Size)
	im.Reset()
	return im
}

// Source is the original image.
func (im *Image) Source() image.Image { return im.src }

// Scaled is the displayed image, sized to the node.
func (im *Image) Scaled() image.Image {
	if im.scaled == nil {
		return im.src
	}
	return im.scaled
}

// FitSize scales the source into the requested box, keeping its aspect
// ratio, and adopts the result.
func (im *Image) FitSize(req vector.Size) vector.Size {
	size := FitAspect(im.src.Bounds(), req)
	w, h := int(size.W), int(size.H)
	if im.scaled == nil || im.scaled.Bounds().Dx() != w || im.scaled.Bounds().Dy() != h {
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), im.src, im.src.Bounds(), draw.Src, nil)
		im.scaled = dst
	}
	return size
}

// FitAspect returns the largest whole-pixel size with the aspect ratio of
// src that fits into box. It never returns less than 1x1.
func FitAspect(src image.Rectangle, box vector.Size) vector.Size {
	sw, sh := float32(src.Dx()), float32(src.Dy())
	if sw <= 0 || sh <= 0 {
		return vector.Sz(1, 1)
	}
	scale := min(box.W/sw, box.H/sh)
	w := max(float32(int(sw*scale)), 1)
	h := max(float32(int(sh*scale)), 1)
	return vector.Sz(w, h)
}

func (im *Image) MenuActions() []scene.Action {
	return []scene.Action{{Text: "Copy Image", Run: im.copy}}
}

func (im *Image) copy() {
	err := errNoClipboard
	if cb := im.opts.Clipboard; cb != nil {
		err = cb.SetImage(im.src)
	}
	if err != nil {
		im.node.Canvas().Logger().Error("copy image failed", slog.Int("id", int(im.node.ID())), slog.Any("err", err))
	}
}
