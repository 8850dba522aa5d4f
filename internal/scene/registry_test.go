/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"slices"
	"testing"

	"infcanvas/internal/vector"
)

func TestRegistryQueries(t *testing.T) {
	c, _ := newTestCanvas(t)
	obj := newRoot(t, c)
	a := obj.AddObject(NewSubObject(obj, Absolute{10, 10}, vector.Sz(40, 40)))
	b := obj.AddObject(NewSubObject(obj, Absolute{100, 100}, vector.Sz(50, 50)))
	r := c.Registry()

	if got := r.Overlapping(vector.B(0, 60, 0, 60)); !slices.Contains(got, a.ID()) || slices.Contains(got, b.ID()) {
		t.Fatalf("Overlapping = %v", got)
	}
	if got := r.ContainedBy(vector.B(0, 60, 0, 60)); !slices.Contains(got, a.ID()) || slices.Contains(got, b.ID()) {
		t.Fatalf("ContainedBy = %v", got)
	}
	if got := r.ContainedBy(vector.B(20, 200, 0, 200)); slices.Contains(got, a.ID()) || !slices.Contains(got, b.ID()) {
		t.Fatalf("partially covered a must not be contained: %v", got)
	}
	if got := r.At(vector.Pt{X: 120, Y: 130}); len(got) != 1 || got[0] != b.ID() {
		t.Fatalf("At = %v", got)
	}
	if got, ok := r.BoundsOf(a.ID()); !ok || got != vector.B(10, 50, 10, 50) {
		t.Fatalf("BoundsOf = %+v %v", got, ok)
	}
}

func TestRegistryIDsAreMonotonic(t *testing.T) {
	c, _ := newTestCanvas(t)
	obj := newRoot(t, c)
	if obj.ID() != 1 {
		t.Fatalf("first id = %d, want 1", obj.ID())
	}
	a := obj.AddObject(NewSubObject(obj, Absolute{}, vector.Sz(1, 1)))
	obj.RemoveObject(a)
	b := obj.AddObject(NewSubObject(obj, Absolute{}, vector.Sz(1, 1)))
	if b.ID() <= a.ID() {
		t.Fatalf("id reused: a=%d b=%d", a.ID(), b.ID())
	}
	if _, ok := c.Lookup(a.ID()); ok {
		t.Fatalf("stale id should not resolve")
	}
	if n, ok := c.Lookup(b.ID()); !ok || n != b {
		t.Fatalf("lookup of b failed")
	}
}

func TestRegistryUnregisterUnknown(t *testing.T) {
	r := NewRegistry(nil)
	if r.Unregister(42) || r.Update(42, vector.Bounds{}) {
		t.Fatalf("unknown id should report false")
	}
	if r.NextID() != 1 || r.Len() != 0 {
		t.Fatalf("fresh registry state wrong")
	}
}
