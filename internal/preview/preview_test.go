// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package preview

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"strings"
	"testing"
)

func TestFit(t *testing.T) {
	tests := []struct {
		name             string
		w, h, cols, rows int
		wantW, wantH     int
	}{
		{"fits", 20, 10, 80, 24, 20, 10},
		{"wide", 800, 600, 80, 24, 64, 48},
		{"width bound", 800, 100, 80, 24, 80, 10},
		{"tall", 100, 1000, 80, 24, 4, 48},
		{"empty image", 0, 10, 80, 24, 0, 0},
		{"no terminal area", 10, 10, 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := Fit(tt.w, tt.h, tt.cols, tt.rows)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("Fit(%d, %d, %d, %d) = %dx%d, want %dx%d",
					tt.w, tt.h, tt.cols, tt.rows, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestRender(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 4))
	for x := range 3 {
		img.SetRGBA(x, 0, color.RGBA{R: 255, A: 255})
		img.SetRGBA(x, 1, color.RGBA{B: 255, A: 255})
		img.SetRGBA(x, 2, color.RGBA{G: 255, A: 255})
		img.SetRGBA(x, 3, color.RGBA{G: 255, A: 255})
	}

	var buf bytes.Buffer
	if err := Render(&buf, img, 80, 24); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("Render() produced %d lines, want 2", len(lines))
	}
	for i, line := range lines {
		if n := strings.Count(line, upperHalf); n != 3 {
			t.Errorf("line %d has %d cells, want 3", i, n)
		}
		if !strings.HasSuffix(line, "\x1b[m") && !strings.HasSuffix(line, "\x1b[0m") {
			t.Errorf("line %d does not end with a reset: %q", i, line)
		}
	}

	// Red on blue for the first row of cells, green on green for the second.
	if !strings.Contains(lines[0], "255;0;0") || !strings.Contains(lines[0], "0;0;255") {
		t.Errorf("first line colors = %q", lines[0])
	}
	if !strings.Contains(lines[1], "0;255;0") {
		t.Errorf("second line colors = %q", lines[1])
	}
}

func TestRender_OddHeight(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 3))

	var buf bytes.Buffer
	if err := Render(&buf, img, 80, 24); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if n := strings.Count(buf.String(), "\n"); n != 2 {
		t.Errorf("lines = %d, want 2", n)
	}
}

func TestRender_Scales(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 400, 300))

	var buf bytes.Buffer
	if err := Render(&buf, img, 40, 10); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 10 {
		t.Errorf("lines = %d, want 10", len(lines))
	}
	if n := strings.Count(lines[0], upperHalf); n != 26 {
		t.Errorf("cells per line = %d, want 26", n)
	}
}

func TestPrint_NotTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "preview")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = f.Close() })

	err = Print(f, image.NewRGBA(image.Rect(0, 0, 1, 1)))
	if !errors.Is(err, ErrNotTerminal) {
		t.Errorf("Print(file) error = %v, want ErrNotTerminal", err)
	}
	if _, _, ok := TerminalSize(f); ok {
		t.Error("TerminalSize(file) ok = true, want false")
	}
}
