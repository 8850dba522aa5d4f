/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package guard provides the re-entrancy flags used by the canvas kernel.
//
// The kernel runs on a single UI thread, so a plain counter is enough. A Flag
// is raised with Enter and lowered by the returned release func, which is
// meant to be deferred so every exit path (including panics) clears it.
// Nested Enter calls are counted; the flag stays active until the outermost
// release runs.
package guard

// Flag is a scoped boolean. The zero value is inactive.
type Flag struct {
	depth int
	held  bool
}

// Enter raises the flag and returns the func that lowers it again. Calling
// the release func more than once has no further effect.
func (f *Flag) Enter() (release func()) {
	f.depth++
	done := false
	return func() {
		if done {
			return
		}
		done = true
		if f.depth > 0 {
			f.depth--
		}
	}
}

// Hold raises the flag until Drop is called. It is used for guards that span
// several input events (press ... release) and so cannot be deferred.
// Holding twice is the same as holding once.
func (f *Flag) Hold() {
	if !f.held {
		f.held = true
		f.depth++
	}
}

// Drop lowers a flag raised by Hold. Dropping an unheld flag does nothing.
func (f *Flag) Drop() {
	if f.held {
		f.held = false
		if f.depth > 0 {
			f.depth--
		}
	}
}

// Active reports whether any scope currently holds the flag.
func (f *Flag) Active() bool { return f.depth > 0 }
