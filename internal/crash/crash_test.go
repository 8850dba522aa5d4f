/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package crash

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"infcanvas/internal/scene"
	"infcanvas/internal/telemetry"
	"infcanvas/internal/vector"
)

func useTempReportDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old := reportDir
	reportDir = func() string { return dir }
	t.Cleanup(func() { reportDir = old })
	return dir
}

func TestWriteReportDescribesCanvas(t *testing.T) {
	dir := useTempReportDir(t)
	c := scene.New(scene.Options{Name: "main_frame"})
	c.AddObject(scene.NewObject(c, scene.Absolute{}))
	c.SetOffset(vector.Pt{X: 12, Y: -4})

	path, err := writeReport(c, "boom", []byte("stacktrace"))
	if err != nil {
		t.Fatalf("writeReport error: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("report written to %s, want %s", path, dir)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	s := string(b)
	for _, want := range []string{"Infinite Canvas Crash Report", "Canvas: main_frame", "Objects: 1 (next id 2)", "Offset: 12,-4", "Panic: boom", "Session: "} {
		if !strings.Contains(s, want) {
			t.Fatalf("report missing %q:\n%s", want, s)
		}
	}
}

func TestRecoverWritesReportAndExits(t *testing.T) {
	dir := useTempReportDir(t)

	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w
	defer func() {
		_ = w.Close()
		os.Stderr = oldStderr
		_, _ = io.Copy(io.Discard, r)
	}()

	called := 0
	oldExit := exitFn
	exitFn = func(code int) { called = code }
	defer func() { exitFn = oldExit }()

	func() {
		defer Recover(nil)
		panic("boom")
	}()

	files, _ := os.ReadDir(dir)
	var found string
	for _, f := range files {
		if strings.HasPrefix(f.Name(), "crash-") && strings.HasSuffix(f.Name(), ".log") {
			found = filepath.Join(dir, f.Name())
		}
	}
	if found == "" {
		t.Fatalf("expected crash report in %s", dir)
	}
	b, _ := os.ReadFile(found)
	if !bytes.Contains(b, []byte("Panic: boom")) || bytes.Contains(b, []byte("Canvas:")) {
		t.Fatalf("unexpected report: %s", b)
	}
	if called != 2 {
		t.Fatalf("expected exit code 2, got %d", called)
	}
}

func TestRecoverWithoutPanicIsNoop(t *testing.T) {
	called := false
	oldExit := exitFn
	exitFn = func(int) { called = true }
	defer func() { exitFn = oldExit }()

	func() {
		defer Recover(nil)
	}()
	if called {
		t.Fatalf("exit called without a panic")
	}
}

func TestWriteReportUploadsWhenOptedIn(t *testing.T) {
	useTempReportDir(t)
	var got []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = io.ReadAll(r.Body)
	}))
	defer srv.Close()
	telemetry.SetDefault(telemetry.New(telemetry.Config{OptIn: true, CrashURL: srv.URL, Timeout: time.Second}, nil))
	t.Cleanup(func() { telemetry.SetDefault(nil) })

	if _, err := writeReport(nil, "boom", []byte("stack")); err != nil {
		t.Fatalf("writeReport error: %v", err)
	}
	if !bytes.Contains(got, []byte("Panic: boom")) {
		t.Fatalf("uploaded report = %q", got)
	}
}
