/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"bytes"
	"log/slog"
	"testing"

	"infcanvas/internal/vector"
)

func newTestCanvas(t *testing.T) (*Canvas, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return New(Options{Name: "test_frame", Logger: l, Viewport: vector.Sz(800, 600)}), &buf
}

func newRoot(t *testing.T, c *Canvas) *Node {
	t.Helper()
	obj := c.AddObject(NewObject(c, Absolute{}))
	if obj == nil || obj.ID() == 0 {
		t.Fatalf("root object not registered")
	}
	return obj
}

type fakeView struct {
	pos      vector.Pt
	size     vector.Size
	visible  bool
	released int
	moves    int
}

func (v *fakeView) Move(p vector.Pt)     { v.pos = p; v.moves++ }
func (v *fakeView) Resize(s vector.Size) { v.size = s }
func (v *fakeView) SetVisible(b bool)    { v.visible = b }
func (v *fakeView) Release()             { v.released++ }

type closer struct {
	closed int
	hook   func()
}

func (c *closer) Close() error {
	c.closed++
	if c.hook != nil {
		c.hook()
	}
	return nil
}

type clickRecorder struct {
	clicks, pseudo, resets int
}

func (r *clickRecorder) Click()            { r.clicks++ }
func (r *clickRecorder) PseudoClick()      { r.pseudo++ }
func (r *clickRecorder) ResetPseudoClick() { r.resets++ }
