/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"github.com/disintegration/imaging"

	"infcanvas/internal/clipboard"
)

// bundleFromURIs turns dropped files into clipboard payloads. Local files
// that decode as images become image payloads; everything else is pasted as
// its URI text.
func bundleFromURIs(uris []fyne.URI, l *slog.Logger) clipboard.Bundle {
	var payloads []clipboard.Payload
	for _, u := range uris {
		if u == nil {
			continue
		}
		if u.Scheme() == "file" {
			img, err := imaging.Open(u.Path())
			if err == nil {
				payloads = append(payloads, clipboard.Payload{Kind: clipboard.KindImage, Image: img})
				continue
			}
			l.Debug("dropped file is not an image", "path", u.Path(), "err", err)
		}
		payloads = append(payloads, clipboard.Payload{Kind: clipboard.KindText, Text: u.String()})
	}
	return clipboard.NewBundle(payloads...)
}
