/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import "infcanvas/internal/vector"

// View is the frontend representation of a node. All coordinates passed to
// it are viewport-relative. A nil View is valid; the kernel then only keeps
// the model state.
type View interface {
	Move(p vector.Pt)
	Resize(s vector.Size)
	SetVisible(v bool)
	Release()
}

// The interfaces below are optional hooks a node's element may implement.

// Clicker receives committed clicks, including the ones drag-select issues on
// release.
type Clicker interface{ Click() }

// PseudoClicker receives hover-preview notifications during drag-select.
type PseudoClicker interface {
	PseudoClick()
	ResetPseudoClick()
}

// Resetter restores an element to its initial state.
type Resetter interface{ Reset() }

// SizeFitter may adjust a requested size, for example to keep an aspect
// ratio. The returned size is what the node adopts.
type SizeFitter interface {
	FitSize(requested vector.Size) vector.Size
}

// MenuProvider adds entries to a node's context menu.
type MenuProvider interface {
	MenuActions() []Action
}

// Action is one context menu entry.
type Action struct {
	Text string
	Run  func()
}

// Releaser is a resource owned by a node and released when the node is
// deleted, such as an external process handle.
type Releaser interface {
	Close() error
}
