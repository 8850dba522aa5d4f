/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package config loads the user configuration: a YAML file in the user scope,
// merged over the built-in defaults, with IFC_* environment variables as
// read-only overrides on top.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// config_version: bump when the structure changes in a backward-incompatible way.
// Unknown fields are ignored on unmarshal.

type GeneralConfig struct {
	BackgroundColor string `yaml:"background_color"`
	WindowWidth     int    `yaml:"window_width"`
	WindowHeight    int    `yaml:"window_height"`
}

// ClickConfig decides when a press/release pair on a button counts as a click.
type ClickConfig struct {
	MoveTolerance  int `yaml:"move_tolerance"`
	PressTimeoutMs int `yaml:"press_timeout_ms"`
}

type TextConfig struct {
	SelectedColor   string `yaml:"selected_color"`
	UnselectedColor string `yaml:"unselected_color"`
	LineHeight      int    `yaml:"line_height"`
	// Font is "" for the fixed 7x13 face, "go" for the bundled Go Regular,
	// or a path to a TTF/OTF file.
	Font     string `yaml:"font"`
	FontSize int    `yaml:"font_size"`
}

// ConverterConfig sizes thumbnails made from pasted or dropped images.
type ConverterConfig struct {
	ThumbnailWidth  int `yaml:"thumbnail_width"`
	ThumbnailHeight int `yaml:"thumbnail_height"`
}

type GraphConfig struct {
	NodeHollowRadius int `yaml:"node_hollow_radius"`
	NodeSolidRadius  int `yaml:"node_solid_radius"`
	NodeInterval     int `yaml:"node_interval"`
	ArcRadius        int `yaml:"arc_radius"`
}

type HistoryConfig struct {
	MaxPerObject int `yaml:"max_per_object"`
	MaxTotal     int `yaml:"max_total"`
	CoalesceMs   int `yaml:"coalesce_ms"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

// TelemetryConfig controls the opt-in usage events and crash uploads. Nothing
// is sent unless OptIn is set and a URL is configured.
type TelemetryConfig struct {
	OptIn     bool   `yaml:"opt_in"`
	EventsURL string `yaml:"events_url"`
	CrashURL  string `yaml:"crash_url"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

type AppConfig struct {
	ConfigVersion int             `yaml:"config_version"`
	General       GeneralConfig   `yaml:"general"`
	Click         ClickConfig     `yaml:"click"`
	Text          TextConfig      `yaml:"text"`
	Converter     ConverterConfig `yaml:"converter"`
	Graph         GraphConfig     `yaml:"graph"`
	History       HistoryConfig   `yaml:"history"`
	Logging       LoggingConfig   `yaml:"logging"`
	Telemetry     TelemetryConfig `yaml:"telemetry"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		General:       GeneralConfig{BackgroundColor: "#F0F0F0", WindowWidth: 1400, WindowHeight: 800},
		Click:         ClickConfig{MoveTolerance: 3, PressTimeoutMs: 300},
		Text:          TextConfig{SelectedColor: "#FFFFFF", UnselectedColor: "#F0F0F0", LineHeight: 30, FontSize: 13},
		Converter:     ConverterConfig{ThumbnailWidth: 300, ThumbnailHeight: 200},
		Graph:         GraphConfig{NodeHollowRadius: 8, NodeSolidRadius: 4, NodeInterval: 25, ArcRadius: 8},
		History:       HistoryConfig{MaxPerObject: 20, MaxTotal: 500, CoalesceMs: 250},
		Logging:       LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
		Telemetry:     TelemetryConfig{TimeoutMs: 1500},
	}
}

// Env var names used as overrides.
const (
	EnvConfigPath   = "IFC_CONFIG"
	EnvWindowWidth  = "IFC_WINDOW_WIDTH"
	EnvWindowHeight = "IFC_WINDOW_HEIGHT"
	EnvBackground   = "IFC_BACKGROUND"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "IFC_LOG_LEVEL"
	EnvLogFormat = "IFC_LOG_FORMAT"
	EnvLogSource = "IFC_LOG_SOURCE"
	EnvLogFile   = "IFC_LOG_FILE"
	// telemetry
	EnvTelemetryOptIn = "IFC_TELEMETRY_OPT_IN"
	EnvTelemetryURL   = "IFC_TELEMETRY_URL"
	EnvCrashUploadURL = "IFC_CRASH_UPLOAD_URL"
)

// ConfigPath returns the per-user config file path. IFC_CONFIG replaces it.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "InfCanvas")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "InfCanvas")
	default: // linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = filepath.Join(xdg, "infcanvas")
		} else {
			base = filepath.Join(os.Getenv("HOME"), ".config", "infcanvas")
		}
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and merges
// environment overrides. A missing file is not an error; a malformed one is,
// and the defaults plus overrides are returned alongside it.
func Load() (AppConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		cfg := Defaults()
		applyEnvOverrides(&cfg)
		return cfg, err
	}
	return LoadFrom(path)
}

// LoadFrom is Load with an explicit file path.
func LoadFrom(path string) (AppConfig, error) {
	cfg := Defaults()
	var loadErr error
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			loadErr = fmt.Errorf("parse %s: %w", path, err)
		} else {
			mergeInto(&cfg, &fileCfg)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		loadErr = fmt.Errorf("read %s: %w", path, err)
	}
	applyEnvOverrides(&cfg)
	return cfg, loadErr
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if c := strings.TrimSpace(src.General.BackgroundColor); c != "" {
		dst.General.BackgroundColor = c
	}
	setPositive(&dst.General.WindowWidth, src.General.WindowWidth)
	setPositive(&dst.General.WindowHeight, src.General.WindowHeight)
	// a zero tolerance is a legal preference, negative is not
	if src.Click.MoveTolerance > 0 {
		dst.Click.MoveTolerance = src.Click.MoveTolerance
	}
	setPositive(&dst.Click.PressTimeoutMs, src.Click.PressTimeoutMs)
	if c := strings.TrimSpace(src.Text.SelectedColor); c != "" {
		dst.Text.SelectedColor = c
	}
	if c := strings.TrimSpace(src.Text.UnselectedColor); c != "" {
		dst.Text.UnselectedColor = c
	}
	setPositive(&dst.Text.LineHeight, src.Text.LineHeight)
	if f := strings.TrimSpace(src.Text.Font); f != "" {
		dst.Text.Font = f
	}
	setPositive(&dst.Text.FontSize, src.Text.FontSize)
	setPositive(&dst.Converter.ThumbnailWidth, src.Converter.ThumbnailWidth)
	setPositive(&dst.Converter.ThumbnailHeight, src.Converter.ThumbnailHeight)
	setPositive(&dst.Graph.NodeHollowRadius, src.Graph.NodeHollowRadius)
	setPositive(&dst.Graph.NodeSolidRadius, src.Graph.NodeSolidRadius)
	setPositive(&dst.Graph.NodeInterval, src.Graph.NodeInterval)
	setPositive(&dst.Graph.ArcRadius, src.Graph.ArcRadius)
	setPositive(&dst.History.MaxPerObject, src.History.MaxPerObject)
	setPositive(&dst.History.MaxTotal, src.History.MaxTotal)
	setPositive(&dst.History.CoalesceMs, src.History.CoalesceMs)
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
	dst.Telemetry.OptIn = src.Telemetry.OptIn
	if u := strings.TrimSpace(src.Telemetry.EventsURL); u != "" {
		dst.Telemetry.EventsURL = u
	}
	if u := strings.TrimSpace(src.Telemetry.CrashURL); u != "" {
		dst.Telemetry.CrashURL = u
	}
	setPositive(&dst.Telemetry.TimeoutMs, src.Telemetry.TimeoutMs)
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

func setPositive(dst *int, v int) {
	if v > 0 {
		*dst = v
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvWindowWidth)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.General.WindowWidth = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvWindowHeight)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.General.WindowHeight = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvBackground)); v != "" {
		cfg.General.BackgroundColor = v
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTelemetryOptIn)); v != "" {
		cfg.Telemetry.OptIn = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvTelemetryURL)); v != "" {
		cfg.Telemetry.EventsURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvCrashUploadURL)); v != "" {
		cfg.Telemetry.CrashURL = v
	}
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	var env string
	switch key {
	case "general.window_width":
		env = EnvWindowWidth
	case "general.window_height":
		env = EnvWindowHeight
	case "general.background_color":
		env = EnvBackground
	case "logging.level":
		env = EnvLogLevel
	case "logging.format":
		env = EnvLogFormat
	case "logging.source":
		env = EnvLogSource
	case "logging.file":
		env = EnvLogFile
	case "telemetry.opt_in":
		env = EnvTelemetryOptIn
	case "telemetry.events_url":
		env = EnvTelemetryURL
	case "telemetry.crash_url":
		env = EnvCrashUploadURL
	default:
		return "", false
	}
	if os.Getenv(env) != "" {
		return env, true
	}
	return "", false
}
