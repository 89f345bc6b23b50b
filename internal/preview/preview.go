// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package preview draws images in a terminal using 24-bit ANSI colors.
//
// Each character cell shows two vertically stacked pixels: the upper half
// block takes the top pixel as its foreground color and the bottom pixel as
// its background color.
package preview

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	"github.com/charmbracelet/x/ansi"
	"github.com/disintegration/imaging"
	"golang.org/x/term"
)

// ErrNotTerminal is returned by Print when the output is not a terminal.
var ErrNotTerminal = errors.New("preview: output is not a terminal")

// upperHalf is the glyph drawn in every cell.
const upperHalf = "▀"

// Fit returns the largest pixel size with the aspect ratio of a w x h image
// that fits in cols x rows character cells (two pixels per cell vertically).
// Images smaller than the area are not enlarged.
func Fit(w, h, cols, rows int) (int, int) {
	if w <= 0 || h <= 0 || cols <= 0 || rows <= 0 {
		return 0, 0
	}
	maxW, maxH := cols, rows*2
	if w <= maxW && h <= maxH {
		return w, h
	}

	// Scale by the tighter of the two limits.
	if w*maxH > h*maxW {
		return maxW, max(h*maxW/w, 1)
	}
	return max(w*maxH/h, 1), maxH
}

// Render writes img to w as rows of half-block cells, scaled to fit
// cols x rows. Each line ends with a style reset.
func Render(w io.Writer, img image.Image, cols, rows int) error {
	b := img.Bounds()
	pw, ph := Fit(b.Dx(), b.Dy(), cols, rows)
	if pw == 0 || ph == 0 {
		return nil
	}

	var src image.Image = img
	if pw != b.Dx() || ph != b.Dy() {
		src = imaging.Resize(img, pw, ph, imaging.Box)
	}
	sb := src.Bounds()

	bw := bufio.NewWriter(w)
	for y := 0; y < ph; y += 2 {
		for x := range pw {
			top := rgb(src.At(sb.Min.X+x, sb.Min.Y+y))
			bottom := color.RGBA{A: 0xFF}
			if y+1 < ph {
				bottom = rgb(src.At(sb.Min.X+x, sb.Min.Y+y+1))
			}
			style := ansi.Style{}.ForegroundColor(top).BackgroundColor(bottom)
			if _, err := bw.WriteString(style.String() + upperHalf); err != nil {
				return fmt.Errorf("preview: write: %w", err)
			}
		}
		if _, err := bw.WriteString(ansi.ResetStyle + "\n"); err != nil {
			return fmt.Errorf("preview: write: %w", err)
		}
	}
	return bw.Flush()
}

// TerminalSize reports the size of the terminal attached to f in character
// cells. ok is false when f is not a terminal.
func TerminalSize(f *os.File) (cols, rows int, ok bool) {
	fd := int(f.Fd()) //nolint:gosec // G115: file descriptors fit in int
	if !term.IsTerminal(fd) {
		return 0, 0, false
	}
	cols, rows, err := term.GetSize(fd)
	if err != nil {
		return 0, 0, false
	}
	return cols, rows, true
}

// Print renders img to f, sized to the terminal. One row is kept free for
// the shell prompt.
func Print(f *os.File, img image.Image) error {
	cols, rows, ok := TerminalSize(f)
	if !ok {
		return ErrNotTerminal
	}
	return Render(f, img, cols, max(rows-1, 1))
}

// rgb drops alpha so the terminal shows exactly the stored color.
func rgb(c color.Color) color.RGBA {
	r, g, b, _ := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 0xFF} //nolint:gosec // G115: 16-bit to 8-bit
}
