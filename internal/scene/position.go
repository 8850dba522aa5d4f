/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import "infcanvas/internal/vector"

// Position is where a node lives. It is either Absolute or a *RelativePos.
type Position interface {
	Resolve() vector.Pt
	isPosition()
}

// Absolute is a fixed canvas-global point.
type Absolute vector.Pt

func (a Absolute) Resolve() vector.Pt { return vector.Pt(a) }
func (Absolute) isPosition()          {}

// RelativePos anchors a node at a fixed offset from a reference point that
// may itself move, such as a viewport corner. Ref must return a canvas-global
// point.
type RelativePos struct {
	Ref    func() vector.Pt
	Offset vector.Pt
}

func Relative(ref func() vector.Pt, offset vector.Pt) *RelativePos {
	return &RelativePos{Ref: ref, Offset: offset}
}

func (r *RelativePos) Resolve() vector.Pt { return r.Ref().Add(r.Offset) }

// Rebase keeps the reference and recomputes the offset so Resolve returns
// global.
func (r *RelativePos) Rebase(global vector.Pt) { r.Offset = global.Sub(r.Ref()) }

func (*RelativePos) isPosition() {}
