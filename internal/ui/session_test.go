/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"infcanvas/internal/clipboard"
	"infcanvas/internal/config"
	"infcanvas/internal/scene"
	"infcanvas/internal/telemetry"
	"infcanvas/internal/vector"
)

func quietLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestNewSessionDefaults(t *testing.T) {
	s, err := NewSession(Options{Log: quietLogger()})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	defer s.Close()
	if s.Canvas.Viewport() != vector.Sz(1400, 800) {
		t.Fatalf("viewport = %v", s.Canvas.Viewport())
	}
	if !s.Features.Chrome.Enabled() || s.Features.Chrome.CloseButton() == nil {
		t.Fatalf("chrome not started")
	}
	if got := s.Registry.AutoStart(); got != 0 {
		t.Fatalf("second AutoStart enabled %d features", got)
	}
	if len(s.Keys.Chords()) == 0 {
		t.Fatalf("no shortcuts bound")
	}
}

func TestSessionPasteAndClose(t *testing.T) {
	mem := &clipboard.Memory{}
	if err := mem.SetText("hello"); err != nil {
		t.Fatalf("SetText: %v", err)
	}
	cfg := config.Defaults()
	cfg.General.WindowWidth, cfg.General.WindowHeight = 640, 480
	closed := false
	s, err := NewSession(Options{Config: cfg, Log: quietLogger(), Clipboard: mem, Copy: mem, OnClose: func() { closed = true }})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if s.Canvas.Viewport() != vector.Sz(640, 480) {
		t.Fatalf("viewport = %v", s.Canvas.Viewport())
	}
	before := s.Canvas.Registry().Len()
	s.Canvas.DispatchMouseMove(scene.MouseEvent{Pos: vector.Pt{X: 50, Y: 60}})
	s.Canvas.DispatchKey(scene.KeyEvent{Key: "V", Modifiers: scene.ModCtrl})
	if s.Canvas.Registry().Len() <= before {
		t.Fatalf("paste added nothing")
	}

	at := vector.Pt{X: 625, Y: 5}
	s.Canvas.DispatchMousePress(scene.MouseEvent{Button: scene.ButtonLeft, Pos: at})
	s.Canvas.DispatchMouseRelease(scene.MouseEvent{Button: scene.ButtonLeft, Pos: at})
	if !closed {
		t.Fatalf("close callback not wired")
	}

	s.Close()
	if s.Canvas.Registry().Len() != 0 || len(s.Canvas.Children()) != 0 {
		t.Fatalf("close left %d nodes", s.Canvas.Registry().Len())
	}
	s.Canvas.DispatchKey(scene.KeyEvent{Key: "V", Modifiers: scene.ModCtrl})
	if s.Canvas.Registry().Len() != 0 {
		t.Fatalf("shortcuts still attached after close")
	}
}

func TestSessionReportsTelemetry(t *testing.T) {
	var mu sync.Mutex
	var names []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ev telemetry.Event
		_ = json.NewDecoder(r.Body).Decode(&ev)
		mu.Lock()
		names = append(names, ev.Name)
		mu.Unlock()
	}))
	defer srv.Close()
	tc := telemetry.New(telemetry.Config{OptIn: true, EventsURL: srv.URL, Timeout: time.Second}, quietLogger())

	s, err := NewSession(Options{Log: quietLogger(), Telemetry: tc})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	s.Close()
	if err := tc.Close(context.Background()); err != nil {
		t.Fatalf("telemetry close: %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(names) != 2 || names[0] != "session_start" || names[1] != "session_end" {
		t.Fatalf("events = %v", names)
	}
}
