/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package widget

import (
	"path/filepath"
	"strings"
	"testing"

	"infcanvas/internal/config"
	"infcanvas/internal/textlayout"
	"infcanvas/internal/vector"
)

func TestThemeFromDefaults(t *testing.T) {
	th, err := ThemeFrom(config.Defaults())
	if err != nil {
		t.Fatalf("ThemeFrom: %v", err)
	}
	if _, ok := th.Fonts.(textlayout.BasicProvider); !ok {
		t.Fatalf("default fonts = %T", th.Fonts)
	}
	if th.MoveTolerance != 3 || th.LineHeight != 30 || th.Selected != vector.White {
		t.Fatalf("theme = %+v", th)
	}
}

func TestThemeFromGoFont(t *testing.T) {
	cfg := config.Defaults()
	cfg.Text.Font = "Go"
	th, err := ThemeFrom(cfg)
	if err != nil {
		t.Fatalf("ThemeFrom: %v", err)
	}
	if _, ok := th.Fonts.(textlayout.OTProvider); !ok {
		t.Fatalf("fonts = %T", th.Fonts)
	}
	if th.measure("hello") == DefaultTheme().measure("hello") {
		t.Fatalf("Go face measured like the fixed face")
	}
}

func TestThemeFromReportsBadValues(t *testing.T) {
	cfg := config.Defaults()
	cfg.Text.SelectedColor = "nope"
	cfg.Text.Font = filepath.Join(t.TempDir(), "missing.ttf")
	th, err := ThemeFrom(cfg)
	if err == nil || !strings.Contains(err.Error(), "text.selected_color") || !strings.Contains(err.Error(), "text.font") {
		t.Fatalf("err = %v", err)
	}
	if th.Selected != vector.White {
		t.Fatalf("bad color should keep the default")
	}
	if _, ok := th.Fonts.(textlayout.BasicProvider); !ok {
		t.Fatalf("missing font should fall back, got %T", th.Fonts)
	}
}
