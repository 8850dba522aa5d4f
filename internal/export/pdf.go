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
	"image/png"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"infcanvas/internal/vector"
)

// PDFOptions controls PDF export. One viewport unit maps to one point.
type PDFOptions struct {
	Title  string
	Author string
	Style  Style
}

// WritePDF writes snap as a single-page PDF sized to the viewport.
func WritePDF(w io.Writer, snap Snapshot, opt PDFOptions) error {
	st := opt.Style.WithDefaults()
	pw := float64(max(snap.Size.W, 1))
	ph := float64(max(snap.Size.H, 1))
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: pw, Ht: ph},
	})
	if opt.Title != "" {
		pdf.SetTitle(opt.Title, true)
	}
	if opt.Author != "" {
		pdf.SetAuthor(opt.Author, true)
	}
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPageFormat("", gofpdf.SizeType{Wd: pw, Ht: ph})

	setFillColor(pdf, st.Background)
	pdf.Rect(0, 0, pw, ph, "F")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetLineWidth(1)
	for _, it := range snap.Items {
		b := it.Bounds
		x, y, bw, bh := float64(b.Left), float64(b.Top), float64(b.Width()), float64(b.Height())
		fill := it.Paint(st)
		setFillColor(pdf, fill)
		setDrawColor(pdf, st.Stroke)
		pdf.Rect(x, y, bw, bh, "FD")
		if it.Image != nil {
			if err := placeImage(pdf, fmt.Sprintf("node-%d", it.ID), it, x, y, bw, bh); err != nil {
				return err
			}
		}
		setDrawColor(pdf, st.Stroke)
		for _, ln := range it.Lines {
			pdf.Line(float64(ln.From.X), float64(ln.From.Y), float64(ln.To.X), float64(ln.To.Y))
		}
		for _, d := range it.Dots {
			style := "D"
			if d.Solid {
				setFillColor(pdf, st.Stroke)
				style = "FD"
			}
			pdf.Circle(float64(d.Center.X), float64(d.Center.Y), float64(d.Radius), style)
		}
		if it.Overlay {
			o := it.OverlayBounds
			setDrawColor(pdf, st.Overlay)
			pdf.Rect(float64(o.Left), float64(o.Top), float64(o.Width()), float64(o.Height()), "D")
			setFillColor(pdf, st.Overlay)
			for _, h := range it.Handles {
				pdf.Rect(float64(h.Left), float64(h.Top), float64(h.Width()), float64(h.Height()), "F")
			}
		}
		if it.Text != "" {
			setTextColor(pdf, st.TextColor)
			for i, line := range strings.Split(it.Text, "\n") {
				pdf.Text(x+2, y+12+float64(i)*13, line)
			}
		}
	}
	if snap.Band != nil {
		b := *snap.Band
		setDrawColor(pdf, st.Band)
		pdf.SetDashPattern([]float64{4, 2}, 0)
		pdf.Rect(float64(b.Left), float64(b.Top), float64(b.Width()), float64(b.Height()), "D")
		pdf.SetDashPattern([]float64{}, 0)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func ExportPDF(path string, snap Snapshot, opt PDFOptions) error {
	f, err := create(path)
	if err != nil {
		return err
	}
	if err := WritePDF(f, snap, opt); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close pdf: %w", err)
	}
	return nil
}

// placeImage embeds the item image as PNG, stretched to the item box.
func placeImage(pdf *gofpdf.Fpdf, name string, it Item, x, y, w, h float64) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, it.Image); err != nil {
		return fmt.Errorf("encode image %s: %w", name, err)
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, opts, &buf)
	pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("embed image %s: %w", name, err)
	}
	return nil
}

func setDrawColor(pdf *gofpdf.Fpdf, c vector.Color) {
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}

func setFillColor(pdf *gofpdf.Fpdf, c vector.Color) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}

func setTextColor(pdf *gofpdf.Fpdf, c vector.Color) {
	pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
}
