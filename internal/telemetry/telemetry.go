/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package telemetry sends opt-in anonymous usage events and crash reports.
//
// Nothing leaves the machine unless the user opted in and configured an
// endpoint. Events are queued and posted by one background goroutine; a full
// queue drops events rather than blocking the UI thread.
package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"sync"
	"time"

	"infcanvas/internal/config"
	applog "infcanvas/internal/log"
	"infcanvas/internal/version"
)

const queueSize = 64

type Config struct {
	OptIn     bool
	EventsURL string
	CrashURL  string
	Timeout   time.Duration
}

func FromConfig(c config.TelemetryConfig) Config {
	t := Config{OptIn: c.OptIn, EventsURL: c.EventsURL, CrashURL: c.CrashURL, Timeout: time.Duration(c.TimeoutMs) * time.Millisecond}
	if t.Timeout <= 0 {
		t.Timeout = 1500 * time.Millisecond
	}
	return t
}

// Event is the JSON body of one usage event. Props must not carry personal
// data; sessions send counts and sizes only.
type Event struct {
	Name    string         `json:"name"`
	Time    time.Time      `json:"ts"`
	Version string         `json:"version"`
	OS      string         `json:"os"`
	Arch    string         `json:"arch"`
	Session string         `json:"session"`
	Props   map[string]any `json:"props,omitempty"`
}

// Client posts events and crash reports. A nil *Client is valid and sends
// nothing.
type Client struct {
	cfg  Config
	log  *slog.Logger
	http *http.Client

	queue chan Event
	wg    sync.WaitGroup

	mu     sync.Mutex
	closed bool
	sent   int
}

// New builds a client. The sender goroutine only runs when events are
// enabled.
func New(cfg Config, l *slog.Logger) *Client {
	if l == nil {
		l = applog.WithComponent("telemetry")
	}
	c := &Client{cfg: cfg, log: l, http: &http.Client{Timeout: cfg.Timeout}, queue: make(chan Event, queueSize)}
	if c.Enabled() {
		c.wg.Add(1)
		go c.loop()
	}
	return c
}

// Enabled reports whether usage events are sent.
func (c *Client) Enabled() bool { return c != nil && c.cfg.OptIn && c.cfg.EventsURL != "" }

// Event queues a usage event. It never blocks.
func (c *Client) Event(name string, props map[string]any) {
	if !c.Enabled() || name == "" {
		return
	}
	ev := Event{
		Name:    name,
		Time:    time.Now().UTC(),
		Version: version.String(),
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
		Session: applog.Session(),
		Props:   props,
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.queue <- ev:
	default:
		c.log.Debug("telemetry queue full", slog.String("event", name))
	}
}

// Sent is the number of events the endpoint accepted.
func (c *Client) Sent() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sent
}

// Close stops accepting events and waits for the queue to drain or ctx to
// end, whichever comes first.
func (c *Client) Close(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		close(c.queue)
	}
	c.mu.Unlock()
	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Client) loop() {
	defer c.wg.Done()
	for ev := range c.queue {
		body, err := json.Marshal(ev)
		if err != nil {
			c.log.Debug("telemetry encode failed", slog.Any("err", err))
			continue
		}
		if err := c.post(context.Background(), c.cfg.EventsURL, "application/json", body); err != nil {
			c.log.Debug("telemetry send failed", slog.String("event", ev.Name), slog.Any("err", err))
			continue
		}
		c.mu.Lock()
		c.sent++
		c.mu.Unlock()
	}
}

// UploadCrash posts a crash report synchronously, bounded by the client
// timeout. It is a no-op unless the user opted in and set a crash URL.
func (c *Client) UploadCrash(ctx context.Context, report []byte) error {
	if c == nil || !c.cfg.OptIn || c.cfg.CrashURL == "" {
		return nil
	}
	return c.post(ctx, c.cfg.CrashURL, "text/plain; charset=utf-8", report)
}

func (c *Client) post(ctx context.Context, url, contentType string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	_ = resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("telemetry endpoint returned %s", resp.Status)
	}
	return nil
}

var (
	defaultMu     sync.RWMutex
	defaultClient *Client
)

// SetDefault installs the client used by package-level helpers such as the
// crash handler.
func SetDefault(c *Client) {
	defaultMu.Lock()
	defaultClient = c
	defaultMu.Unlock()
}

func Default() *Client {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultClient
}

// UploadCrash uploads through the default client.
func UploadCrash(report []byte) error {
	c := Default()
	if c == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.Timeout)
	defer cancel()
	return c.UploadCrash(ctx, report)
}
