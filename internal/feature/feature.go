/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package feature holds the canvas plug-ins: object management, rendering,
// the pointer gestures, the window chrome, paste and undo.
//
// Features are plain values built from a Deps bundle and collected in a
// Registry owned by the application. Builtin is the static table of the
// features that ship with the canvas; there is no implicit registration.
package feature

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"infcanvas/internal/clipboard"
	"infcanvas/internal/config"
	"infcanvas/internal/scene"
	"infcanvas/internal/shortcut"
	"infcanvas/internal/undo"
	"infcanvas/internal/widget"
)

var ErrDuplicate = errors.New("feature already registered")

// Feature is a switchable part of the canvas behavior. Enable and Disable
// are idempotent.
type Feature interface {
	Name() string
	AutoStart() bool
	Enabled() bool
	Enable()
	Disable()
}

// Base carries the bookkeeping every feature shares.
type Base struct {
	name    string
	auto    bool
	enabled bool
}

func NewBase(name string, autoStart bool) Base { return Base{name: name, auto: autoStart} }

func (b *Base) Name() string    { return b.name }
func (b *Base) AutoStart() bool { return b.auto }
func (b *Base) Enabled() bool   { return b.enabled }

// switchTo records the new state and reports whether it changed.
func (b *Base) switchTo(on bool) bool {
	if b.enabled == on {
		return false
	}
	b.enabled = on
	return true
}

// Deps is everything the built-in features need. Canvas is required; the
// rest falls back to defaults. A zero Config means config.Defaults().
type Deps struct {
	Canvas    *scene.Canvas
	Config    config.AppConfig
	Theme     widget.Theme
	Shortcuts *shortcut.Registry
	Clipboard clipboard.Provider
	Copy      widget.ClipboardWriter
	History   *undo.Manager
	// OnClose runs when the close button is clicked.
	OnClose func()
	Now     func() time.Time
	Log     *slog.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Log == nil {
		d.Log = d.Canvas.Logger()
	}
	if d.Config.ConfigVersion == 0 {
		d.Config = config.Defaults()
	}
	if d.Shortcuts == nil {
		d.Shortcuts = shortcut.NewRegistry(d.Log)
	}
	if d.Theme.Fonts == nil {
		th, err := widget.ThemeFrom(d.Config)
		if err != nil {
			d.Log.Warn("theme colors", "err", err)
		}
		d.Theme = th
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.History == nil {
		h := d.Config.History
		d.History = undo.NewManager(undo.Config{
			MaxTotal:     h.MaxTotal,
			MaxPerObject: h.MaxPerObject,
			MinInterval:  time.Duration(h.CoalesceMs) * time.Millisecond,
		})
	}
	if d.OnClose == nil {
		l := d.Log
		d.OnClose = func() { l.Info("close requested") }
	}
	return d
}

// Set is the typed view of the built-in features.
type Set struct {
	Objects    *ObjectManager
	Render     *Render
	Pointer    *Pointer
	DragSelect *DragSelect
	DragCanvas *DragCanvas
	Chrome     *Chrome
	Paste      *Paste
	History    *History
}

// Builtin builds the shipped features. The order of All is the start
// order: the object manager first, since others spawn objects through it.
func Builtin(d Deps) Set {
	d = d.withDefaults()
	objects := NewObjectManager(d)
	render := NewRender(d, objects)
	pointer := NewPointer(d)
	dragSelect := NewDragSelect(d)
	// overlay handles and borders sit outside their nodes
	dragSelect.ctl.SkipWhen(pointer.router.Claims)
	return Set{
		Objects:    objects,
		Render:     render,
		Pointer:    pointer,
		DragSelect: dragSelect,
		DragCanvas: NewDragCanvas(d),
		Chrome:     NewChrome(d, objects),
		Paste:      NewPaste(d, render),
		History:    NewHistory(d),
	}
}

func (s Set) All() []Feature {
	return []Feature{s.Objects, s.Render, s.Pointer, s.DragSelect, s.DragCanvas, s.Chrome, s.Paste, s.History}
}

// Registry resolves features by name for one canvas.
type Registry struct {
	log    *slog.Logger
	order  []Feature
	byName map[string]Feature
}

func NewRegistry(l *slog.Logger) *Registry {
	if l == nil {
		l = slog.Default()
	}
	return &Registry{log: l, byName: map[string]Feature{}}
}

// Install registers every feature of the set.
func Install(r *Registry, s Set) error {
	var errs []error
	for _, f := range s.All() {
		if err := r.Register(f); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *Registry) Register(f Feature) error {
	if _, ok := r.byName[f.Name()]; ok {
		r.log.Error("feature already registered", "name", f.Name())
		return fmt.Errorf("%w: %s", ErrDuplicate, f.Name())
	}
	r.byName[f.Name()] = f
	r.order = append(r.order, f)
	return nil
}

func (r *Registry) Lookup(name string) (Feature, bool) {
	f, ok := r.byName[name]
	return f, ok
}

// Get resolves name and asserts the concrete feature type.
func Get[T Feature](r *Registry, name string) (T, bool) {
	f, ok := r.byName[name]
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := f.(T)
	return t, ok
}

// AutoStart enables, in registration order, every feature flagged to start
// on its own. It returns how many were started.
func (r *Registry) AutoStart() int {
	n := 0
	for _, f := range r.order {
		if f.AutoStart() && !f.Enabled() {
			f.Enable()
			n++
			r.log.Debug("feature started", "name", f.Name())
		}
	}
	return n
}

// DisableAll stops features in reverse registration order.
func (r *Registry) DisableAll() {
	for i := len(r.order) - 1; i >= 0; i-- {
		r.order[i].Disable()
	}
}

func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	for i, f := range r.order {
		out[i] = f.Name()
	}
	return out
}

// bindShortcut registers a disabled shortcut; the feature flips it on and
// off with its own state. A conflict leaves the feature without the key.
func bindShortcut(keys *shortcut.Registry, name string, chord []string, fn func()) *shortcut.Shortcut {
	s := shortcut.New(name, chord, fn)
	if err := keys.Add(s, false); err != nil {
		return nil
	}
	return s
}

func setShortcut(keys *shortcut.Registry, s *shortcut.Shortcut, on bool) {
	if s == nil {
		return
	}
	if on {
		_ = keys.Enable(s)
	} else {
		_ = keys.Disable(s)
	}
}
