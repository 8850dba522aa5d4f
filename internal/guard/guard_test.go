/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package guard

import "testing"

func TestEnterRelease(t *testing.T) {
	var f Flag
	if f.Active() {
		t.Fatalf("zero flag should be inactive")
	}
	release := f.Enter()
	if !f.Active() {
		t.Fatalf("flag should be active after Enter")
	}
	release()
	release()
	if f.Active() {
		t.Fatalf("flag should be inactive after release")
	}
}

func TestNestedScopes(t *testing.T) {
	var f Flag
	outer := f.Enter()
	inner := f.Enter()
	inner()
	if !f.Active() {
		t.Fatalf("inner release must not clear the outer scope")
	}
	outer()
	if f.Active() {
		t.Fatalf("outer release should clear the flag")
	}
}

func TestReleasedOnPanic(t *testing.T) {
	var f Flag
	func() {
		defer func() { _ = recover() }()
		defer f.Enter()()
		panic("boom")
	}()
	if f.Active() {
		t.Fatalf("flag leaked across panic")
	}
}

func TestHoldDrop(t *testing.T) {
	var f Flag
	f.Hold()
	f.Hold()
	release := f.Enter()
	release()
	if !f.Active() {
		t.Fatalf("held flag lost by nested scope")
	}
	f.Drop()
	f.Drop()
	if f.Active() {
		t.Fatalf("flag should be inactive after Drop")
	}
}
