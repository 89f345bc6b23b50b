// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package softpipe

import (
	"errors"
	"fmt"
	"image/color"
	"math"
)

// ErrInvalidHexColor is returned by HexColor for malformed input.
var ErrInvalidHexColor = errors.New("softpipe: invalid hex color")

// SentinelColor is the value a FragmentState's color starts with.
// Seeing opaque magenta in the output means a fragment stage did not write
// its color.
var SentinelColor = Vec4{X: 1, Y: 0, Z: 1, W: 1}

// Common colors, as fragment stage outputs.
var (
	Black   = Vec4{X: 0, Y: 0, Z: 0, W: 1}
	White   = Vec4{X: 1, Y: 1, Z: 1, W: 1}
	Red     = Vec4{X: 1, Y: 0, Z: 0, W: 1}
	Green   = Vec4{X: 0, Y: 1, Z: 0, W: 1}
	Blue    = Vec4{X: 0, Y: 0, Z: 1, W: 1}
	Magenta = SentinelColor
)

// PackColor converts a normalized (r, g, b, a) color to the framebuffer's
// native 0xRRGGBB encoding.
//
// Each channel is clamped to [0, 1], scaled by 255 and rounded to the
// nearest integer. Alpha is accepted but discarded; the top 8 bits are zero.
func PackColor(c Vec4) uint32 {
	r := uint32(math.Round(clamp255(c.X * 255)))
	g := uint32(math.Round(clamp255(c.Y * 255)))
	b := uint32(math.Round(clamp255(c.Z * 255)))
	return r<<16 | g<<8 | b
}

// UnpackColor converts a packed 0xRRGGBB pixel back to a normalized opaque color.
func UnpackColor(px uint32) Vec4 {
	return Vec4{
		X: float64((px>>16)&0xFF) / 255,
		Y: float64((px>>8)&0xFF) / 255,
		Z: float64(px&0xFF) / 255,
		W: 1,
	}
}

// PixelColor converts a packed pixel to a standard library color.
func PixelColor(px uint32) color.RGBA {
	return color.RGBA{
		R: uint8(px >> 16), //nolint:gosec // G115: truncation intended
		G: uint8(px >> 8),  //nolint:gosec // G115: truncation intended
		B: uint8(px),       //nolint:gosec // G115: truncation intended
		A: 0xFF,
	}
}

// HexColor parses a hex string into a packed pixel.
// Supports formats: "RGB", "RRGGBB", each optionally prefixed with '#'.
func HexColor(hex string) (uint32, error) {
	s := hex
	if s != "" && s[0] == '#' {
		s = s[1:]
	}

	var r, g, b uint32
	switch len(s) {
	case 3:
		if !parseHex(s[0:1], &r) || !parseHex(s[1:2], &g) || !parseHex(s[2:3], &b) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidHexColor, hex)
		}
		r, g, b = r*17, g*17, b*17
	case 6:
		if !parseHex(s[0:2], &r) || !parseHex(s[2:4], &g) || !parseHex(s[4:6], &b) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidHexColor, hex)
		}
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidHexColor, hex)
	}
	return r<<16 | g<<8 | b, nil
}

// parseHex is a helper for hex parsing
func parseHex(s string, val *uint32) bool {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return false
		}
	}
	return true
}

// clamp255 restricts a value to [0, 255] range. NaN maps to 0.
func clamp255(x float64) float64 {
	if x < 0 || math.IsNaN(x) {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}
