/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package interact

import (
	"time"

	"infcanvas/internal/vector"
)

// ClickTracker decides whether a press/release pair was a click: the pointer
// must not travel further than Tolerance (manhattan) and the release must
// come within Timeout of the press.
type ClickTracker struct {
	Tolerance float32
	Timeout   time.Duration

	now      func() time.Time
	start    vector.Pt
	pressed  time.Time
	clicking bool
}

func NewClickTracker(tolerance float32, timeout time.Duration) *ClickTracker {
	return &ClickTracker{Tolerance: tolerance, Timeout: timeout, now: time.Now}
}

// WithClock replaces the time source.
func (c *ClickTracker) WithClock(now func() time.Time) *ClickTracker {
	c.now = now
	return c
}

func (c *ClickTracker) Press(p vector.Pt) {
	c.start = p
	c.pressed = c.now()
	c.clicking = true
}

// Move returns the offset from the press point. Once the pointer has left the
// tolerance the pair can no longer be a click, even if it comes back.
func (c *ClickTracker) Move(p vector.Pt) vector.Pt {
	d := p.Sub(c.start)
	if d.ManhattanLength() > c.Tolerance {
		c.clicking = false
	}
	return d
}

// Release reports whether the gesture was a click and resets the tracker.
func (c *ClickTracker) Release() bool {
	ok := c.clicking && c.now().Sub(c.pressed) <= c.Timeout
	c.clicking = false
	return ok
}

// Pressed reports whether a press is being tracked.
func (c *ClickTracker) Pressed() bool { return c.clicking }
