/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package feature

import (
	"infcanvas/internal/clipboard"
	"infcanvas/internal/scene"
	"infcanvas/internal/vector"
)

// Render keeps the screen in sync with the viewport and places content
// bundles on the canvas.
type Render struct {
	Base
	canvas   *scene.Canvas
	objects  *ObjectManager
	renderer *clipboard.Renderer
	token    scene.Token
}

func NewRender(d Deps, objects *ObjectManager) *Render {
	return &Render{
		Base:    NewBase("render", true),
		canvas:  d.Canvas,
		objects: objects,
		renderer: &clipboard.Renderer{
			Theme:     d.Theme,
			Converter: clipboard.ConverterFrom(d.Config.Converter),
			Clipboard: d.Copy,
			Log:       d.Log,
		},
	}
}

func (r *Render) Enable() {
	if r.switchTo(true) {
		r.token = r.canvas.Resized.Connect(func(vector.Size) { r.canvas.RenderAll() })
	}
}

func (r *Render) Disable() {
	if r.switchTo(false) {
		r.canvas.Resized.Disconnect(r.token)
	}
}

// RenderBundle puts b under a new object at the cursor. The object is
// removed again when nothing could be placed.
func (r *Render) RenderBundle(b clipboard.Bundle) ([]*scene.Node, error) {
	root := r.objects.GenerateAtCursor()
	nodes, err := r.renderer.Render(root, b)
	if err != nil || len(nodes) == 0 {
		if root != nil {
			r.canvas.RemoveObject(root)
		}
		return nil, err
	}
	return nodes, nil
}
