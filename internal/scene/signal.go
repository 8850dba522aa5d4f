/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

// Token identifies one Connect call so it can be disconnected later.
type Token uint64

type slot[T any] struct {
	tok Token
	fn  func(T)
}

// Signal is a synchronous multi-subscriber notification. The zero value is
// ready to use. Emit runs subscribers in connection order over a snapshot, so
// a subscriber may connect or disconnect while being called.
type Signal[T any] struct {
	next  Token
	slots []slot[T]
}

func (s *Signal[T]) Connect(fn func(T)) Token {
	s.next++
	s.slots = append(s.slots, slot[T]{tok: s.next, fn: fn})
	return s.next
}

// Disconnect removes the subscriber registered under tok.
func (s *Signal[T]) Disconnect(tok Token) bool {
	for i, sl := range s.slots {
		if sl.tok == tok {
			s.slots = append(s.slots[:i:i], s.slots[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Signal[T]) Emit(v T) {
	snapshot := s.slots
	for _, sl := range snapshot {
		sl.fn(v)
	}
}

// Len is the number of connected subscribers.
func (s *Signal[T]) Len() int { return len(s.slots) }
