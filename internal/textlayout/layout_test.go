/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import "testing"

func TestWordWrap(t *testing.T) {
	l := NewWordWrap(BasicProvider{})
	box := l.Layout("Hello world from Go", 50)
	if len(box.Lines) < 2 {
		t.Fatalf("expected wrapping into multiple lines, got %d", len(box.Lines))
	}
	if box.Width <= 0 || box.Height != float32(len(box.Lines))*13 {
		t.Fatalf("unexpected box size: %+v", box)
	}
	for _, ln := range box.Lines {
		if ln.Text == "" {
			t.Fatalf("wrapping produced an empty line: %+v", box.Lines)
		}
	}
}

func TestWordWrapNewlinesAndEmpty(t *testing.T) {
	l := NewWordWrap(nil)
	if box := l.Layout("", 100); len(box.Lines) != 1 {
		t.Fatalf("empty text should still take one line, got %d", len(box.Lines))
	}
	if box := l.Layout("a\n\nb", 0); len(box.Lines) != 3 {
		t.Fatalf("newlines give %d lines", len(box.Lines))
	}
}

func TestMeasureDeterministic(t *testing.T) {
	w, h := Measure(BasicProvider{}, "ABC")
	if w != 21 || h != 13 {
		t.Fatalf("Measure(ABC) = %v x %v", w, h)
	}
	w2, h2 := Measure(nil, "ABC\nA")
	if w2 != 21 || h2 != 26 {
		t.Fatalf("two lines = %v x %v", w2, h2)
	}
}

func TestOTProviderFallsBack(t *testing.T) {
	p := OTProvider{Lib: DefaultLibrary()}
	_, met := p.Resolve(FontSpec{Family: "Go", SizePt: 12})
	if met.Ascent <= 0 {
		t.Fatalf("Go face metrics = %+v", met)
	}
	_, fb := p.Resolve(FontSpec{Family: "missing"})
	if fb != (Metrics{Ascent: 11, Descent: 2}) {
		t.Fatalf("fallback metrics = %+v", fb)
	}
}

func TestOTProviderDefaultsAndCache(t *testing.T) {
	lib := DefaultLibrary()
	p := OTProvider{Lib: lib, Family: GoFamily, SizePt: 20}
	f1, m1 := p.Resolve(FontSpec{})
	f2, _ := p.Resolve(FontSpec{Family: GoFamily, SizePt: 20})
	if f1 != f2 {
		t.Fatalf("face not cached")
	}
	_, small := p.Resolve(FontSpec{SizePt: 10})
	if small.Ascent >= m1.Ascent {
		t.Fatalf("size default ignored: %+v vs %+v", small, m1)
	}
	w, _ := Measure(p, "wide text")
	bw, _ := Measure(BasicProvider{}, "wide text")
	if w == bw {
		t.Fatalf("measure did not use the Go face")
	}
	if lib.Families() != 1 {
		t.Fatalf("families = %d", lib.Families())
	}
	if err := lib.Load("bad", 400, false, []byte("nope")); err == nil {
		t.Fatalf("garbage font accepted")
	}
}
