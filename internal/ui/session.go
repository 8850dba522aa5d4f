/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package ui assembles a canvas session and, in fyne builds, shows it in a
// frameless desktop window.
//
// The session is frontend-neutral: the fyne window and the headless demo
// both drive the same canvas, shortcut registry and feature set.
package ui

import (
	"log/slog"

	"infcanvas/internal/clipboard"
	"infcanvas/internal/config"
	"infcanvas/internal/feature"
	applog "infcanvas/internal/log"
	"infcanvas/internal/scene"
	"infcanvas/internal/shortcut"
	"infcanvas/internal/telemetry"
	"infcanvas/internal/vector"
	"infcanvas/internal/widget"
)

// Options configures a session. A zero Config means config.Defaults().
type Options struct {
	Config    config.AppConfig
	Log       *slog.Logger
	Clipboard clipboard.Provider
	Copy      widget.ClipboardWriter
	OnClose   func()
	// Telemetry receives session start and end events. Nil sends nothing.
	Telemetry *telemetry.Client
}

type Session struct {
	Canvas   *scene.Canvas
	Keys     *shortcut.Registry
	Features feature.Set
	Registry *feature.Registry
	Theme    widget.Theme
	Config   config.AppConfig
	Log      *slog.Logger

	telemetry *telemetry.Client
}

// NewSession builds the canvas, installs the built-in features and starts
// the auto-start ones. A theme error is logged and the defaults are used
// for the bad colors.
func NewSession(opts Options) (*Session, error) {
	cfg := opts.Config
	if cfg.ConfigVersion == 0 {
		cfg = config.Defaults()
	}
	l := opts.Log
	if l == nil {
		l = applog.WithComponent("canvas")
	}
	theme, err := widget.ThemeFrom(cfg)
	if err != nil {
		l.Warn("theme", "err", err)
	}
	c := scene.New(scene.Options{
		Name:     "frame",
		Logger:   l,
		Viewport: vector.Sz(float32(cfg.General.WindowWidth), float32(cfg.General.WindowHeight)),
	})
	keys := shortcut.NewRegistry(l)
	keys.Attach(c)

	if opts.Clipboard == nil || opts.Copy == nil {
		mem := &clipboard.Memory{}
		if opts.Clipboard == nil {
			opts.Clipboard = mem
		}
		if opts.Copy == nil {
			opts.Copy = mem
		}
	}
	set := feature.Builtin(feature.Deps{
		Canvas:    c,
		Config:    cfg,
		Theme:     theme,
		Shortcuts: keys,
		Clipboard: opts.Clipboard,
		Copy:      opts.Copy,
		OnClose:   opts.OnClose,
		Log:       l,
	})
	reg := feature.NewRegistry(l)
	if err := feature.Install(reg, set); err != nil {
		return nil, err
	}
	started := reg.AutoStart()
	applog.Success(l, "canvas ready", "features", started, "viewport", c.Viewport())
	opts.Telemetry.Event("session_start", map[string]any{
		"features": started,
		"width":    cfg.General.WindowWidth,
		"height":   cfg.General.WindowHeight,
	})
	return &Session{Canvas: c, Keys: keys, Features: set, Registry: reg, Theme: theme, Config: cfg, Log: l, telemetry: opts.Telemetry}, nil
}

// Close stops every feature and empties the canvas.
func (s *Session) Close() {
	s.telemetry.Event("session_end", map[string]any{"objects": s.Canvas.Registry().Len()})
	s.Registry.DisableAll()
	s.Keys.Detach()
	s.Canvas.RemoveAllObjects()
}
