/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package feature

import (
	"errors"
	"log/slog"

	"infcanvas/internal/clipboard"
	"infcanvas/internal/scene"
	"infcanvas/internal/shortcut"
)

var errNoProvider = errors.New("no clipboard provider")

// Paste renders the clipboard contents at the cursor on Ctrl+V.
type Paste struct {
	Base
	provider clipboard.Provider
	render   *Render
	keys     *shortcut.Registry
	key      *shortcut.Shortcut
	log      *slog.Logger
}

func NewPaste(d Deps, render *Render) *Paste {
	p := &Paste{
		Base:     NewBase("clipboard", true),
		provider: d.Clipboard,
		render:   render,
		keys:     d.Shortcuts,
		log:      d.Log,
	}
	p.key = bindShortcut(d.Shortcuts, "get mime from clipboard", []string{"Ctrl", "V"}, func() { _, _ = p.Paste() })
	return p
}

func (p *Paste) Enable() {
	if p.switchTo(true) {
		setShortcut(p.keys, p.key, true)
	}
}

func (p *Paste) Disable() {
	if p.switchTo(false) {
		setShortcut(p.keys, p.key, false)
	}
}

// Paste reads the provider and renders what it holds.
func (p *Paste) Paste() ([]*scene.Node, error) {
	if p.provider == nil {
		p.log.Warn("paste ignored", "err", errNoProvider)
		return nil, errNoProvider
	}
	b, err := p.provider.Read()
	if err != nil {
		if errors.Is(err, clipboard.ErrEmpty) {
			p.log.Info("clipboard is empty")
		} else {
			p.log.Error("read clipboard", "err", err)
		}
		return nil, err
	}
	nodes, err := p.render.RenderBundle(b)
	if err != nil {
		p.log.Error("render clipboard", "bundle", b.ID, "err", err)
		return nil, err
	}
	return nodes, nil
}
