// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package softpipe

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"slices"

	"github.com/gogpu/gputypes"
)

// Framebuffer errors.
var (
	// ErrFramebufferSize is returned when caller-provided pixel storage does
	// not match the framebuffer dimensions.
	ErrFramebufferSize = errors.New("softpipe: framebuffer storage size mismatch")

	// ErrUnsupportedFormat is returned by AppendBytes for texture formats
	// other than RGBA8Unorm and BGRA8Unorm.
	ErrUnsupportedFormat = errors.New("softpipe: unsupported texture format")
)

// Framebuffer is a row-major grid of packed 0xRRGGBB pixels.
//
// The storage is owned by the caller: the pipeline only overwrites pixels it
// rasterizes into and never reads them back. Clearing between frames is the
// caller's job.
//
// Framebuffer implements image.Image so it can be handed to any encoder.
type Framebuffer struct {
	width  int
	height int
	pix    []uint32
}

// NewFramebuffer creates a zeroed (black) framebuffer.
func NewFramebuffer(width, height int) *Framebuffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Framebuffer{
		width:  width,
		height: height,
		pix:    make([]uint32, width*height),
	}
}

// NewFramebufferFromPixels wraps existing storage without copying.
// len(pix) must equal width*height.
func NewFramebufferFromPixels(width, height int, pix []uint32) (*Framebuffer, error) {
	if width < 0 || height < 0 || len(pix) != width*height {
		return nil, fmt.Errorf("%w: %dx%d needs %d pixels, got %d", ErrFramebufferSize, width, height, width*height, len(pix))
	}
	return &Framebuffer{width: width, height: height, pix: pix}, nil
}

// Width returns the width in pixels.
func (f *Framebuffer) Width() int {
	return f.width
}

// Height returns the height in pixels.
func (f *Framebuffer) Height() int {
	return f.height
}

// Pixels returns the backing storage. Pixel (x, y) is Pixels()[y*Width()+x].
func (f *Framebuffer) Pixels() []uint32 {
	return f.pix
}

// Pixel returns the packed pixel at (x, y), or 0 outside the framebuffer.
func (f *Framebuffer) Pixel(x, y int) uint32 {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return 0
	}
	return f.pix[y*f.width+x]
}

// SetPixel stores a packed pixel. Out-of-bounds coordinates are ignored.
func (f *Framebuffer) SetPixel(x, y int, px uint32) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	f.pix[y*f.width+x] = px
}

// Clear fills the entire framebuffer with a packed pixel.
func (f *Framebuffer) Clear(px uint32) {
	for i := range f.pix {
		f.pix[i] = px
	}
}

// AppendBytes appends the pixels to dst as 4 bytes per pixel in row-major
// order, laid out for a texture of the given format, and returns the
// extended slice. Alpha is always 0xFF.
//
// Only TextureFormatRGBA8Unorm and TextureFormatBGRA8Unorm are supported;
// any other format returns dst unchanged and ErrUnsupportedFormat.
func (f *Framebuffer) AppendBytes(dst []byte, format gputypes.TextureFormat) ([]byte, error) {
	var ri, bi int
	switch format {
	case gputypes.TextureFormatRGBA8Unorm:
		ri, bi = 0, 2
	case gputypes.TextureFormatBGRA8Unorm:
		ri, bi = 2, 0
	default:
		return dst, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}

	start := len(dst)
	dst = slices.Grow(dst, len(f.pix)*4)[:start+len(f.pix)*4]
	out := dst[start:]
	for i, px := range f.pix {
		o := i * 4
		out[o+ri] = uint8(px >> 16) //nolint:gosec // G115: truncation intended
		out[o+1] = uint8(px >> 8)   //nolint:gosec // G115: truncation intended
		out[o+bi] = uint8(px)       //nolint:gosec // G115: truncation intended
		out[o+3] = 0xFF
	}
	return dst, nil
}

// ToImage converts the framebuffer to an opaque image.RGBA.
func (f *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	// RGBA8Unorm is always supported.
	img.Pix, _ = f.AppendBytes(img.Pix[:0], gputypes.TextureFormatRGBA8Unorm)
	return img
}

// FromImage creates a framebuffer from an image. Alpha is dropped.
func FromImage(img image.Image) *Framebuffer {
	bounds := img.Bounds()
	fb := NewFramebuffer(bounds.Dx(), bounds.Dy())
	for y := 0; y < fb.height; y++ {
		for x := 0; x < fb.width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			fb.pix[y*fb.width+x] = (r>>8)<<16 | (g>>8)<<8 | b>>8
		}
	}
	return fb
}

// At implements the image.Image interface.
func (f *Framebuffer) At(x, y int) color.Color {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return color.RGBA{}
	}
	return PixelColor(f.pix[y*f.width+x])
}

// Bounds implements the image.Image interface.
func (f *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.width, f.height)
}

// ColorModel implements the image.Image interface.
func (f *Framebuffer) ColorModel() color.Model {
	return color.RGBAModel
}
