/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package shortcut maps key chords such as "Ctrl+V" to callbacks.
//
// A chord belongs to exactly one Shortcut. Registering a second shortcut on a
// taken chord is rejected, and every operation checks that the shortcut it is
// given is the one the registry holds for that chord.
package shortcut

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"infcanvas/internal/scene"
)

var (
	ErrConflict = errors.New("shortcut conflict")
	ErrUnknown  = errors.New("shortcut not registered")
)

// Shortcut binds a chord to a callback. It fires only while enabled.
type Shortcut struct {
	Name     string
	Callback func()

	chord   string
	enabled bool
}

// New joins keys with "+" into the chord, e.g. New("paste", []string{"Ctrl", "V"}, fn).
func New(name string, keys []string, cb func()) *Shortcut {
	return &Shortcut{Name: name, Callback: cb, chord: strings.Join(keys, "+")}
}

func (s *Shortcut) Chord() string { return s.chord }
func (s *Shortcut) Enabled() bool { return s.enabled }

type Registry struct {
	log     *slog.Logger
	byChord map[string]*Shortcut
	canvas  *scene.Canvas
	token   scene.Token
}

func NewRegistry(l *slog.Logger) *Registry {
	if l == nil {
		l = slog.Default()
	}
	return &Registry{log: l, byChord: map[string]*Shortcut{}}
}

// Add registers s and, when enable is set, enables it right away.
func (r *Registry) Add(s *Shortcut, enable bool) error {
	if prev, ok := r.byChord[s.chord]; ok {
		r.log.Error("shortcut conflict", "name", s.Name, "with", prev.Name, "chord", s.chord)
		return fmt.Errorf("%w: [%s] with [%s]", ErrConflict, s.Name, prev.Name)
	}
	r.byChord[s.chord] = s
	if enable {
		s.enabled = true
	}
	return nil
}

// Remove unregisters s. The callback can no longer fire.
func (r *Registry) Remove(s *Shortcut) error {
	if err := r.verify(s); err != nil {
		return err
	}
	delete(r.byChord, s.chord)
	s.enabled = false
	return nil
}

func (r *Registry) Enable(s *Shortcut) error {
	if err := r.verify(s); err != nil {
		return err
	}
	s.enabled = true
	return nil
}

func (r *Registry) Disable(s *Shortcut) error {
	if err := r.verify(s); err != nil {
		return err
	}
	s.enabled = false
	return nil
}

func (r *Registry) verify(s *Shortcut) error {
	held, ok := r.byChord[s.chord]
	if !ok {
		r.log.Error("shortcut does not exist", "name", s.Name, "chord", s.chord)
		return fmt.Errorf("%w: [%s]", ErrUnknown, s.Name)
	}
	if held != s {
		r.log.Error("shortcut conflict", "name", s.Name, "with", held.Name, "chord", s.chord)
		return fmt.Errorf("%w: [%s] with [%s]", ErrConflict, s.Name, held.Name)
	}
	return nil
}

// Lookup returns the shortcut registered for chord.
func (r *Registry) Lookup(chord string) (*Shortcut, bool) {
	s, ok := r.byChord[chord]
	return s, ok
}

// Trigger runs the callback bound to chord and reports whether one ran.
func (r *Registry) Trigger(chord string) bool {
	s, ok := r.byChord[chord]
	if !ok || !s.enabled || s.Callback == nil {
		return false
	}
	r.log.Debug("shortcut", "name", s.Name, "chord", chord)
	s.Callback()
	return true
}

// Attach listens to the canvas key presses. A registry listens to at most one
// canvas; attaching again moves it.
func (r *Registry) Attach(c *scene.Canvas) {
	r.Detach()
	r.canvas = c
	r.token = c.KeyPressed.Connect(func(ev scene.KeyEvent) { r.Trigger(ev.Chord()) })
}

func (r *Registry) Detach() {
	if r.canvas != nil {
		r.canvas.KeyPressed.Disconnect(r.token)
		r.canvas = nil
	}
}

// Chords lists the registered chords in sorted order.
func (r *Registry) Chords() []string {
	out := make([]string, 0, len(r.byChord))
	for k := range r.byChord {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
