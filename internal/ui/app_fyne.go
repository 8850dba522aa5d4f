//go:build fyne && cgo

/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"errors"
	"image"
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"infcanvas/internal/clipboard"
	"infcanvas/internal/crash"
	"infcanvas/internal/export"
	"infcanvas/internal/graphics"
	"infcanvas/internal/guard"
	applog "infcanvas/internal/log"
	"infcanvas/internal/scene"
	"infcanvas/internal/vector"
	cwidget "infcanvas/internal/widget"
)

const (
	textSize   = 13
	textIndent = 4
)

// Run opens the canvas in a frameless window and blocks until it closes.
func Run(opts Options) error {
	l := applog.WithComponent("ui")
	l.Info("starting UI")

	fyneApp := app.NewWithID("infcanvas")
	var w fyne.Window
	if drv, ok := fyneApp.(desktop.App); ok {
		w = drv.CreateSplashWindow()
	} else {
		w = fyneApp.NewWindow("infcanvas")
	}
	clip := &fyneClipboard{w: w}
	if opts.Clipboard == nil {
		opts.Clipboard = clip
	}
	if opts.Copy == nil {
		opts.Copy = clip
	}
	if opts.OnClose == nil {
		opts.OnClose = fyneApp.Quit
	}
	if opts.Log == nil {
		opts.Log = l
	}
	s, err := NewSession(opts)
	if err != nil {
		return err
	}
	defer s.Close()
	defer crash.Recover(s.Canvas)

	cw := NewCanvasWidget(s)
	cw.Attach(w)
	w.SetPadded(false)
	w.SetContent(cw)
	w.Resize(fyneSize(s.Canvas.Viewport()))
	w.ShowAndRun()
	l.Info("UI closed")
	return nil
}

// CanvasWidget shows a session and feeds it the desktop pointer and key
// events. It repaints from a fresh viewport snapshot on every refresh.
type CanvasWidget struct {
	widget.BaseWidget

	s     *Session
	style export.Style

	pressed scene.MouseButton
	last    vector.Pt
	// raised while the window and the canvas agree on a new size
	syncing guard.Flag
}

func NewCanvasWidget(s *Session) *CanvasWidget {
	cw := &CanvasWidget{s: s}
	if bg, err := vector.ParseHexColor(s.Config.General.BackgroundColor); err == nil {
		cw.style.Background = bg
	} else {
		s.Log.Warn("general.background_color", "err", err)
	}
	cw.style.Selected = s.Theme.Selected
	cw.style.Unselected = s.Theme.Unselected
	cw.style = cw.style.WithDefaults()
	cw.ExtendBaseWidget(cw)
	return cw
}

// Attach binds the window side: shortcuts, context menus, drops and the
// window size.
func (cw *CanvasWidget) Attach(w fyne.Window) {
	c := cw.s.Canvas
	for _, chord := range cw.s.Keys.Chords() {
		sc, err := shortcutFor(chord)
		if err != nil {
			cw.s.Log.Warn("shortcut not bound", "chord", chord, "err", err)
			continue
		}
		w.Canvas().AddShortcut(sc, func(fyne.Shortcut) {
			c.DispatchKey(keyEventFor(sc))
			cw.Refresh()
		})
	}
	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		c.DispatchKey(scene.KeyEvent{Key: string(ev.Name)})
		cw.Refresh()
	})
	cw.s.Features.Pointer.OnMenu(func(_ *scene.Node, m cwidget.Menu, at vector.Pt) {
		items := make([]*fyne.MenuItem, 0, len(m.Actions))
		for _, a := range m.Actions {
			run := a.Run
			items = append(items, fyne.NewMenuItem(a.Text, func() {
				if run != nil {
					run()
				}
				cw.Refresh()
			}))
		}
		widget.ShowPopUpMenuAtPosition(fyne.NewMenu(m.Title, items...), w.Canvas(), fyne.NewPos(at.X, at.Y))
	})
	w.SetOnDropped(func(pos fyne.Position, uris []fyne.URI) {
		c.SetPointer(toPt(pos))
		if _, err := cw.s.Features.Render.RenderBundle(bundleFromURIs(uris, cw.s.Log)); err != nil {
			cw.s.Log.Warn("drop not rendered", "err", err)
		}
		cw.Refresh()
	})
	c.Resized.Connect(func(sz vector.Size) {
		if cw.syncing.Active() {
			return
		}
		release := cw.syncing.Enter()
		defer release()
		w.Resize(fyneSize(sz))
	})
	c.Cursors().OnChange(func(graphics.Cursor) { cw.Refresh() })
}

func (cw *CanvasWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &canvasRenderer{cw: cw, bg: canvas.NewRectangle(cw.style.Background)}
	r.rebuild()
	return r
}

// syncViewport follows a window resize made by the user or the OS.
func (cw *CanvasWidget) syncViewport(size fyne.Size) {
	sz := vector.Sz(size.Width, size.Height)
	if cw.syncing.Active() || sz == cw.s.Canvas.Viewport() || sz.W <= 0 || sz.H <= 0 {
		return
	}
	release := cw.syncing.Enter()
	defer release()
	cw.s.Canvas.Resize(sz)
}

func (cw *CanvasWidget) MouseDown(ev *desktop.MouseEvent) {
	me := mouseEvent(ev)
	cw.pressed, cw.last = me.Button, me.Pos
	cw.s.Canvas.DispatchMousePress(me)
	cw.Refresh()
}

// MouseUp and DragEnd both end a press; whichever comes first dispatches
// the release.
func (cw *CanvasWidget) MouseUp(ev *desktop.MouseEvent) {
	cw.last = toPt(ev.Position)
	cw.release()
}

func (cw *CanvasWidget) DragEnd() { cw.release() }

func (cw *CanvasWidget) release() {
	if cw.pressed == scene.ButtonNone {
		return
	}
	btn := cw.pressed
	cw.pressed = scene.ButtonNone
	cw.s.Canvas.DispatchMouseRelease(scene.MouseEvent{Button: btn, Pos: cw.last})
	cw.Refresh()
}

func (cw *CanvasWidget) Dragged(ev *fyne.DragEvent) {
	cw.last = toPt(ev.Position)
	cw.s.Canvas.DispatchMouseMove(scene.MouseEvent{Button: cw.pressed, Pos: cw.last})
	cw.Refresh()
}

func (cw *CanvasWidget) MouseIn(ev *desktop.MouseEvent) { cw.MouseMoved(ev) }

func (cw *CanvasWidget) MouseMoved(ev *desktop.MouseEvent) {
	me := mouseEvent(ev)
	me.Button = cw.pressed
	cw.last = me.Pos
	cw.s.Canvas.DispatchMouseMove(me)
	if cw.pressed != scene.ButtonNone {
		cw.Refresh()
	}
}

func (cw *CanvasWidget) MouseOut() { cw.s.Features.Pointer.Router().Leave() }

// Cursor maps the top of the canvas cursor stack onto the few shapes fyne
// offers.
func (cw *CanvasWidget) Cursor() desktop.Cursor {
	switch cw.s.Canvas.Cursors().Current() {
	case graphics.CursorPointingHand, graphics.CursorOpenHand:
		return desktop.PointerCursor
	case graphics.CursorSizeAll, graphics.CursorSizeFDiag, graphics.CursorSizeBDiag:
		return desktop.CrosshairCursor
	}
	return desktop.DefaultCursor
}

type canvasRenderer struct {
	cw      *CanvasWidget
	bg      *canvas.Rectangle
	objects []fyne.CanvasObject
}

func (r *canvasRenderer) Destroy()                     {}
func (r *canvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *canvasRenderer) MinSize() fyne.Size           { return fyne.NewSize(100, 100) }
func (r *canvasRenderer) Refresh()                     { r.rebuild(); canvas.Refresh(r.cw) }

func (r *canvasRenderer) Layout(size fyne.Size) {
	r.cw.syncViewport(size)
	r.rebuild()
}

// rebuild recreates the drawables from the current viewport. The scene is
// small enough that diffing is not worth it.
func (r *canvasRenderer) rebuild() {
	s := r.cw.s
	st := r.cw.style
	snap := export.Capture(s.Canvas, s.Features.DragSelect.Controller().Band())

	r.bg.FillColor = st.Background
	r.bg.Move(fyne.NewPos(0, 0))
	r.bg.Resize(fyneSize(snap.Size))
	objs := []fyne.CanvasObject{r.bg}

	for _, it := range snap.Items {
		box := canvas.NewRectangle(it.Paint(st))
		box.StrokeColor = st.Stroke
		box.StrokeWidth = 1
		objs = append(objs, place(box, it.Bounds))
		if it.Image != nil {
			img := canvas.NewImageFromImage(it.Image)
			img.FillMode = canvas.ImageFillStretch
			objs = append(objs, place(img, it.Bounds))
		}
		if it.Text != "" {
			for i, line := range strings.Split(it.Text, "\n") {
				txt := canvas.NewText(line, st.TextColor)
				txt.TextSize = textSize
				txt.Move(fyne.NewPos(it.Bounds.Left+textIndent, it.Bounds.Top+float32(i)*textSize*1.5))
				objs = append(objs, txt)
			}
		}
		for _, ln := range it.Lines {
			l := canvas.NewLine(st.Stroke)
			l.StrokeWidth = 1
			l.Position1 = fyne.NewPos(ln.From.X, ln.From.Y)
			l.Position2 = fyne.NewPos(ln.To.X, ln.To.Y)
			objs = append(objs, l)
		}
		for _, d := range it.Dots {
			c := canvas.NewCircle(color.Transparent)
			if d.Solid {
				c.FillColor = st.Stroke
			}
			c.StrokeColor = st.Stroke
			c.StrokeWidth = 1
			r := d.Radius
			objs = append(objs, place(c, vector.B(d.Center.X-r, d.Center.X+r, d.Center.Y-r, d.Center.Y+r)))
		}
		if it.Overlay {
			objs = append(objs, outline(it.OverlayBounds, st.Overlay, 1))
			for _, h := range it.Handles {
				objs = append(objs, place(canvas.NewRectangle(st.Overlay), h))
			}
		}
	}
	if snap.Band != nil {
		objs = append(objs, outline(*snap.Band, st.Band, 1))
	}
	r.objects = objs
}

func outline(b vector.Bounds, c color.Color, width float32) fyne.CanvasObject {
	o := canvas.NewRectangle(color.Transparent)
	o.StrokeColor = c
	o.StrokeWidth = width
	return place(o, b)
}

func place(o fyne.CanvasObject, b vector.Bounds) fyne.CanvasObject {
	o.Move(fyne.NewPos(b.Left, b.Top))
	sz := b.Size()
	o.Resize(fyne.NewSize(sz.W, sz.H))
	return o
}

func fyneSize(s vector.Size) fyne.Size { return fyne.NewSize(s.W, s.H) }

var errImageCopy = errors.New("copying images is not supported by the fyne clipboard")

// fyneClipboard adapts the window clipboard. fyne only carries text.
type fyneClipboard struct{ w fyne.Window }

var (
	_ clipboard.Provider      = (*fyneClipboard)(nil)
	_ cwidget.ClipboardWriter = (*fyneClipboard)(nil)
)

func (f *fyneClipboard) Read() (clipboard.Bundle, error) {
	return clipboard.FromContent(f.w.Clipboard().Content(), nil)
}

func (f *fyneClipboard) SetText(s string) error {
	f.w.Clipboard().SetContent(s)
	return nil
}

func (f *fyneClipboard) SetImage(image.Image) error { return errImageCopy }
