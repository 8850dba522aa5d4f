/*
 * Copyright (c) 2025 The infcanvas Authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"infcanvas/internal/clipboard"
	"infcanvas/internal/config"
	"infcanvas/internal/crash"
	"infcanvas/internal/export"
	"infcanvas/internal/graph"
	applog "infcanvas/internal/log"
	"infcanvas/internal/scene"
	"infcanvas/internal/telemetry"
	"infcanvas/internal/ui"
	"infcanvas/internal/vector"
	"infcanvas/internal/version"
	"infcanvas/internal/widget"
)

func usage() {
	fmt.Println("infcanvas: frameless infinite canvas")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  infcanvas version|-v|--version          Show version")
	fmt.Println("  infcanvas ui                             Launch the canvas window (build with -tags fyne)")
	fmt.Println("  infcanvas demo [--out file.png|svg|pdf]  Drive a headless session and print the object tree")
	fmt.Println("  infcanvas config [--path]                Print the resolved configuration")
}

func main() {
	// the config already carries the IFC_LOG_* overrides
	cfg, cfgErr := config.Load()
	applog.Init(applog.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
	})
	l := applog.WithComponent("cli")
	if cfgErr != nil {
		l.Warn("config", slog.Any("err", cfgErr))
	}
	tc := telemetry.New(telemetry.FromConfig(cfg.Telemetry), nil)
	telemetry.SetDefault(tc)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = tc.Close(ctx)
	}()

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println(version.String())
			return
		case "ui":
			if err := ui.Run(ui.Options{Config: cfg, Telemetry: tc}); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		case "demo":
			fs := flag.NewFlagSet("demo", flag.ExitOnError)
			out := fs.String("out", "", "export the final viewport to a .png, .svg or .pdf file")
			_ = fs.Parse(args[2:])
			if err := demo(os.Stdout, cfg, *out); err != nil {
				l.Error("demo failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		case "config":
			if len(args) > 2 && args[2] == "--path" {
				p, err := config.ConfigPath()
				if err != nil {
					fmt.Println("Error:", err)
					os.Exit(1)
				}
				fmt.Println(p)
				return
			}
			if err := yaml.NewEncoder(os.Stdout).Encode(cfg); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		}
	}

	usage()
}

// demoHistory is a small branch-and-merge history, newest row first.
var demoHistory = [][]int{{1, 2}, {3}, {3}, {4}, {}}

// demo spawns a few texts and a commit graph, sweeps a rubber band over two of them and prints
// the resulting tree and selection.
func demo(w io.Writer, cfg config.AppConfig, out string) error {
	mem := &clipboard.Memory{}
	s, err := ui.NewSession(ui.Options{Config: cfg, Clipboard: mem, Copy: mem})
	if err != nil {
		return err
	}
	defer s.Close()
	defer crash.Recover(s.Canvas)

	c := s.Canvas
	root := s.Features.Objects.GenerateObject(vector.Pt{X: -1000, Y: -1000})
	for i, label := range []string{"alpha", "beta", "gamma"} {
		at := vector.Pt{X: 40 + float32(i)*160, Y: 60 + float32(i/2)*300}
		if widget.NewText(root, scene.Absolute(at), label, s.Theme, widget.ButtonOptions{}) == nil {
			return fmt.Errorf("text %q not created", label)
		}
	}
	g := widget.NewGraph(root, scene.Absolute{X: 600, Y: 60}, s.Theme, graph.LayoutFrom(cfg.Graph), demoHistory, widget.ButtonOptions{})
	if g == nil {
		return fmt.Errorf("graph not created")
	}
	widget.MenuFor(g.Node()).Trigger("Change Size")
	fmt.Fprintf(w, "graph: %d rows, %d connector lines\n", len(g.Dots()), len(g.Lines()))

	if err := mem.SetText("pasted\nfrom memory"); err != nil {
		return err
	}
	c.SetPointer(vector.Pt{X: 40, Y: 500})
	if _, err := s.Features.Paste.Paste(); err != nil {
		return err
	}

	from, to := vector.Pt{X: 20, Y: 40}, vector.Pt{X: 300, Y: 120}
	c.DispatchMousePress(scene.MouseEvent{Button: scene.ButtonLeft, Pos: from})
	c.DispatchMouseMove(scene.MouseEvent{Button: scene.ButtonLeft, Pos: to})
	if out != "" {
		if err := exportTo(out, export.Capture(c, s.Features.DragSelect.Controller().Band()), cfg); err != nil {
			return err
		}
		fmt.Fprintln(w, "exported", out)
	}
	c.DispatchMouseRelease(scene.MouseEvent{Button: scene.ButtonLeft, Pos: to})

	fmt.Fprintln(w, "objects:")
	printTree(w, s.Features.Objects.ObjectTree(), 1)
	fmt.Fprintln(w, "selected:")
	for _, id := range c.Registry().IDs() {
		n, _ := c.Lookup(id)
		if sel, ok := n.Element().(interface{ Selected() bool }); ok && sel.Selected() {
			fmt.Fprintf(w, "  %d %s\n", id, n.Name)
		}
	}
	return nil
}

func printTree(w io.Writer, f *widget.Func, depth int) {
	fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), f.Name)
	for _, ch := range f.Children {
		printTree(w, ch, depth+1)
	}
}

func exportTo(path string, snap export.Snapshot, cfg config.AppConfig) error {
	st := export.Style{}
	if bg, err := vector.ParseHexColor(cfg.General.BackgroundColor); err == nil {
		st.Background = bg
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return export.ExportPNG(path, snap, st)
	case ".svg":
		return export.ExportSVG(path, snap, st)
	case ".pdf":
		return export.ExportPDF(path, snap, export.PDFOptions{Title: "infcanvas", Author: version.String(), Style: st})
	}
	return fmt.Errorf("unsupported export format %q", filepath.Ext(path))
}
