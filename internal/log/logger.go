/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package log configures the process-wide slog logger.
//
// Records go to the console (a compact text line, or JSON) and optionally to
// a rotating JSON file. Every record carries the app name, version and the
// session id that crash reports also print.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	lj "gopkg.in/natefinch/lumberjack.v2"

	"infcanvas/internal/version"
)

// LevelSuccess sits between Info and Warn. Features log it when a user
// action completed, such as a paste that placed objects.
const LevelSuccess = slog.LevelInfo + 2

// Options controls Init. FromEnv fills it from:
//   - IFC_LOG_LEVEL=debug|info|success|warn|error
//   - IFC_LOG_FORMAT=console|json
//   - IFC_LOG_FILE=<path> (rotated JSON file)
//   - IFC_LOG_SOURCE=true|false
type Options struct {
	Level     string
	Format    string // "console" or "json"
	AddSource bool
	File      string
	// FileLevel is the threshold for the file; empty means Level.
	FileLevel string
	// Rotation limits; zero picks 10 MB and 3 backups.
	MaxSizeMB  int
	MaxBackups int
	// Console is the console destination, stderr when nil.
	Console io.Writer
}

var (
	mu      sync.RWMutex
	current *slog.Logger

	sessionOnce sync.Once
	sessionID   string
)

// Session returns the id of this process run.
func Session() string {
	sessionOnce.Do(func() { sessionID = uuid.NewString() })
	return sessionID
}

// L returns the application logger, initializing it from the environment on
// first use.
func L() *slog.Logger {
	mu.RLock()
	l := current
	mu.RUnlock()
	if l == nil {
		l = Init(FromEnv())
	}
	return l
}

// Init builds the logger, installs it as slog.Default and returns it.
func Init(opts Options) *slog.Logger {
	level := parseLevel(opts.Level)
	var out io.Writer = os.Stderr
	if opts.Console != nil {
		out = opts.Console
	}
	hopts := &slog.HandlerOptions{Level: level, AddSource: opts.AddSource, ReplaceAttr: replaceLevel}

	var console slog.Handler
	if strings.EqualFold(strings.TrimSpace(opts.Format), "json") {
		console = slog.NewJSONHandler(out, hopts)
	} else {
		console = newConsoleHandler(out, level, opts.AddSource)
	}
	h := console
	if path := strings.TrimSpace(opts.File); path != "" {
		fileLevel := level
		if opts.FileLevel != "" {
			fileLevel = parseLevel(opts.FileLevel)
		}
		rot := &lj.Logger{
			Filename:   path,
			MaxSize:    orDefault(opts.MaxSizeMB, 10),
			MaxBackups: orDefault(opts.MaxBackups, 3),
			MaxAge:     28,
			Compress:   true,
		}
		file := slog.NewJSONHandler(rot, &slog.HandlerOptions{Level: fileLevel, AddSource: opts.AddSource, ReplaceAttr: replaceLevel})
		h = fanout{console, file}
	}

	l := slog.New(h).With(
		slog.String("app", "infcanvas"),
		slog.String("ver", version.String()),
		slog.String("session", Session()),
	)
	mu.Lock()
	current = l
	mu.Unlock()
	slog.SetDefault(l)
	return l
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

// FromEnv reads the IFC_LOG_* variables.
func FromEnv() Options {
	src := strings.ToLower(strings.TrimSpace(os.Getenv("IFC_LOG_SOURCE")))
	return Options{
		Level:     envOr("IFC_LOG_LEVEL", "info"),
		Format:    envOr("IFC_LOG_FORMAT", "console"),
		AddSource: src == "1" || src == "true",
		File:      os.Getenv("IFC_LOG_FILE"),
	}
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// WithComponent returns the application logger tagged with a component.
func WithComponent(name string) *slog.Logger { return L().With(slog.String("component", name)) }

// WithOperation annotates the logger with an operation name.
func WithOperation(l *slog.Logger, op string) *slog.Logger { return l.With(slog.String("op", op)) }

// Success logs msg at LevelSuccess.
func Success(l *slog.Logger, msg string, args ...any) {
	l.Log(context.Background(), LevelSuccess, msg, args...)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "success":
		return LevelSuccess
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// replaceLevel names LevelSuccess in JSON output instead of "INFO+2".
func replaceLevel(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		if l, ok := a.Value.Any().(slog.Level); ok && l == LevelSuccess {
			a.Value = slog.StringValue("SUCCESS")
		}
	}
	return a
}

// fanout sends each record to every handler that accepts its level.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var first error
	for _, h := range f {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
