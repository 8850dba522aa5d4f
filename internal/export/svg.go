/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"infcanvas/internal/vector"
)

// WriteSVG writes snap as a standalone SVG document. Images are drawn as
// their frame only.
func WriteSVG(w io.Writer, snap Snapshot, st Style) error {
	st = st.WithDefaults()
	var buf bytes.Buffer
	wf := func(format string, args ...any) { _, _ = fmt.Fprintf(&buf, format, args...) }

	wf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	wf("<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" width=\"%g\" height=\"%g\" viewBox=\"0 0 %g %g\">\n",
		snap.Size.W, snap.Size.H, snap.Size.W, snap.Size.H)
	wf("  <rect x=\"0\" y=\"0\" width=\"%g\" height=\"%g\" fill=\"%s\"/>\n", snap.Size.W, snap.Size.H, svgColor(st.Background))

	sc := svgColor(st.Stroke)
	for _, it := range snap.Items {
		b := it.Bounds
		fill := it.Paint(st)
		wf("  <rect id=\"node-%d\" x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"%s\" stroke=\"%s\" stroke-width=\"1\"/>\n",
			it.ID, b.Left, b.Top, b.Width(), b.Height(), svgColor(fill), sc)
		for _, ln := range it.Lines {
			wf("  <line x1=\"%g\" y1=\"%g\" x2=\"%g\" y2=\"%g\" stroke=\"%s\" stroke-width=\"1\"/>\n",
				ln.From.X, ln.From.Y, ln.To.X, ln.To.Y, sc)
		}
		for _, d := range it.Dots {
			fill := "none"
			if d.Solid {
				fill = sc
			}
			wf("  <circle cx=\"%g\" cy=\"%g\" r=\"%g\" fill=\"%s\" stroke=\"%s\" stroke-width=\"1\"/>\n",
				d.Center.X, d.Center.Y, d.Radius, fill, sc)
		}
		if it.Overlay {
			o := it.OverlayBounds
			oc := svgColor(st.Overlay)
			wf("  <rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"none\" stroke=\"%s\" stroke-width=\"1\"/>\n",
				o.Left, o.Top, o.Width(), o.Height(), oc)
			for _, h := range it.Handles {
				wf("  <rect class=\"handle\" x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"%s\"/>\n",
					h.Left, h.Top, h.Width(), h.Height(), oc)
			}
		}
		if it.Text != "" {
			for i, line := range strings.Split(it.Text, "\n") {
				wf("  <text x=\"%g\" y=\"%g\" font-family=\"monospace\" font-size=\"13\" fill=\"%s\">%s</text>\n",
					b.Left+2, b.Top+13+float32(i*13), svgColor(st.TextColor), escText(line))
			}
		}
	}
	if snap.Band != nil {
		b := *snap.Band
		wf("  <rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"none\" stroke=\"%s\" stroke-dasharray=\"4 2\"/>\n",
			b.Left, b.Top, b.Width(), b.Height(), svgColor(st.Band))
	}
	wf("</svg>\n")

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

func ExportSVG(path string, snap Snapshot, st Style) error {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, snap, st); err != nil {
		return err
	}
	f, err := create(path)
	if err != nil {
		return err
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		_ = f.Close()
		return fmt.Errorf("write svg: %w", err)
	}
	return f.Close()
}

func svgColor(c vector.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func escText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
