/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// GoFamily is the family name of the bundled Go Regular face.
const GoFamily = "Go"

type fontKey struct {
	family string
	weight int
	italic bool
}

type faceKey struct {
	font *opentype.Font
	size float32
	dpi  float64
}

// FontLibrary holds parsed OpenType fonts and the faces made from them.
// Faces are cached per font, size and DPI since every measurement asks for
// one. It is safe for concurrent use.
type FontLibrary struct {
	mu    sync.Mutex
	fonts map[fontKey]*opentype.Font
	faces map[faceKey]font.Face
}

func NewFontLibrary() *FontLibrary {
	return &FontLibrary{fonts: map[fontKey]*opentype.Font{}, faces: map[faceKey]font.Face{}}
}

// DefaultLibrary holds Go Regular under GoFamily.
func DefaultLibrary() *FontLibrary {
	fl := NewFontLibrary()
	// goregular.TTF is a valid font; an error here means a broken module.
	if err := fl.Load(GoFamily, 400, false, goregular.TTF); err != nil {
		panic(err)
	}
	return fl
}

// LoadTTF reads a font file into the library.
func (fl *FontLibrary) LoadTTF(family string, weight int, italic bool, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read font %s: %w", path, err)
	}
	if err := fl.Load(family, weight, italic, data); err != nil {
		return fmt.Errorf("font %s: %w", path, err)
	}
	return nil
}

// Load parses font data. Loading over an existing family, weight and style
// replaces it.
func (fl *FontLibrary) Load(family string, weight int, italic bool, data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	fl.mu.Lock()
	defer fl.mu.Unlock()
	fl.fonts[fontKey{family, weight, italic}] = f
	return nil
}

// Families returns how many distinct families are loaded.
func (fl *FontLibrary) Families() int {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	seen := map[string]bool{}
	for k := range fl.fonts {
		seen[k.family] = true
	}
	return len(seen)
}

// face resolves spec to a cached face. An exact weight and style match wins;
// otherwise any face of the family is used.
func (fl *FontLibrary) face(spec FontSpec, dpi float64) (font.Face, error) {
	if fl == nil {
		return nil, fmt.Errorf("no font library")
	}
	fl.mu.Lock()
	defer fl.mu.Unlock()
	f, ok := fl.fonts[fontKey{spec.Family, spec.Weight, spec.Italic}]
	if !ok {
		for k, cand := range fl.fonts {
			if k.family == spec.Family {
				f, ok = cand, true
				break
			}
		}
	}
	if !ok {
		return nil, fmt.Errorf("font family %q not loaded", spec.Family)
	}
	key := faceKey{f, spec.SizePt, dpi}
	if face, ok := fl.faces[key]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: float64(spec.SizePt), DPI: dpi, Hinting: font.HintingFull})
	if err != nil {
		return nil, err
	}
	fl.faces[key] = face
	return face, nil
}

// OTProvider measures with a FontLibrary. Specs without a family or size
// take Family and SizePt; unknown families go to Fallback.
type OTProvider struct {
	Lib      *FontLibrary
	Family   string
	SizePt   float32
	DPI      float64 // 72 if zero
	Fallback Provider
}

func (p OTProvider) Resolve(spec FontSpec) (font.Face, Metrics) {
	if spec.Family == "" {
		spec.Family = p.Family
	}
	if spec.SizePt <= 0 {
		spec.SizePt = p.SizePt
	}
	if spec.SizePt <= 0 {
		spec.SizePt = 12
	}
	dpi := p.DPI
	if dpi <= 0 {
		dpi = 72
	}
	if face, err := p.Lib.face(spec, dpi); err == nil {
		return face, metricsOf(face)
	}
	fb := p.Fallback
	if fb == nil {
		fb = BasicProvider{}
	}
	return fb.Resolve(spec)
}
