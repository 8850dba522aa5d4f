/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package graphics

// Cursor is a pointer shape requested by a hovered item. Frontends map these
// to whatever their toolkit offers.
type Cursor int

const (
	CursorArrow Cursor = iota
	CursorSizeAll
	CursorSizeFDiag // top-left <-> bottom-right
	CursorSizeBDiag // top-right <-> bottom-left
	CursorUpArrow
	CursorOpenHand
	CursorPointingHand
)

func (c Cursor) String() string {
	switch c {
	case CursorArrow:
		return "arrow"
	case CursorSizeAll:
		return "size-all"
	case CursorSizeFDiag:
		return "size-fdiag"
	case CursorSizeBDiag:
		return "size-bdiag"
	case CursorUpArrow:
		return "up-arrow"
	case CursorOpenHand:
		return "open-hand"
	case CursorPointingHand:
		return "pointing-hand"
	default:
		return "unknown"
	}
}

// CursorToken identifies one pushed entry so the matching leave removes
// exactly that entry, even when hovers overlap.
type CursorToken uint64

// CursorSink is what hoverable items talk to. The canvas implements it with a
// CursorStack.
type CursorSink interface {
	PushCursor(c Cursor) CursorToken
	PopCursor(tok CursorToken)
}

type cursorEntry struct {
	tok    CursorToken
	cursor Cursor
}

// CursorStack is an ordered list of requested cursors; the last entry is the
// one shown. The first entry is the base cursor and is never removed.
type CursorStack struct {
	entries  []cursorEntry
	next     CursorToken
	onChange func(Cursor)
}

func NewCursorStack(base Cursor) *CursorStack {
	return &CursorStack{entries: []cursorEntry{{tok: 0, cursor: base}}, next: 1}
}

// OnChange registers a callback fired whenever the current cursor may have changed.
func (s *CursorStack) OnChange(fn func(Cursor)) { s.onChange = fn }

// Push appends c and returns its token.
func (s *CursorStack) Push(c Cursor) CursorToken {
	tok := s.next
	s.next++
	s.entries = append(s.entries, cursorEntry{tok: tok, cursor: c})
	s.changed()
	return tok
}

// Pop removes the last entry. The base entry stays.
func (s *CursorStack) Pop() {
	if len(s.entries) <= 1 {
		return
	}
	s.entries = s.entries[:len(s.entries)-1]
	s.changed()
}

// Remove drops the entry pushed with tok. It reports false for unknown or
// already removed tokens and for the base entry.
func (s *CursorStack) Remove(tok CursorToken) bool {
	for i := len(s.entries) - 1; i >= 1; i-- {
		if s.entries[i].tok == tok {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			s.changed()
			return true
		}
	}
	return false
}

// Current returns the cursor on top of the stack.
func (s *CursorStack) Current() Cursor { return s.entries[len(s.entries)-1].cursor }

// Depth counts entries including the base.
func (s *CursorStack) Depth() int { return len(s.entries) }

func (s *CursorStack) PushCursor(c Cursor) CursorToken { return s.Push(c) }
func (s *CursorStack) PopCursor(tok CursorToken)       { s.Remove(tok) }

func (s *CursorStack) changed() {
	if s.onChange != nil {
		s.onChange(s.Current())
	}
}
