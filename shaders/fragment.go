// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shaders

import "github.com/gogpu/softpipe"

// Gradient colors each fragment by its screen position:
// (y/Height, x/Width, 0, 1).
type Gradient struct {
	Width, Height float64
}

// NewGradient creates a Gradient spanning a width x height framebuffer.
// Non-positive sizes are treated as 1.
func NewGradient(width, height int) Gradient {
	return Gradient{
		Width:  float64(max(width, 1)),
		Height: float64(max(height, 1)),
	}
}

// Fragment implements softpipe.FragmentShader.
func (g Gradient) Fragment(s *softpipe.FragmentState) {
	p := s.Position()
	s.SetColor(softpipe.Vec4{X: p.Y / g.Height, Y: p.X / g.Width, Z: 0, W: 1})
}

// SolidShader writes one color for every fragment.
type SolidShader struct {
	// Color is the output color.
	Color softpipe.Vec4
}

// Solid creates a SolidShader.
//
// Example:
//
//	fs := shaders.Solid(softpipe.Red)
func Solid(c softpipe.Vec4) SolidShader {
	return SolidShader{Color: c}
}

// SolidHex creates a SolidShader from a hex color string ("#RGB" or
// "#RRGGBB", '#' optional).
func SolidHex(hex string) (SolidShader, error) {
	px, err := softpipe.HexColor(hex)
	if err != nil {
		return SolidShader{}, err
	}
	return SolidShader{Color: softpipe.UnpackColor(px)}, nil
}

// Fragment implements softpipe.FragmentShader.
func (c SolidShader) Fragment(s *softpipe.FragmentState) {
	s.SetColor(c.Color)
}

// Sentinel is a fragment stage that never writes a color. Covered pixels
// show softpipe.SentinelColor, which makes missing shading easy to spot.
type Sentinel struct{}

// Fragment implements softpipe.FragmentShader.
func (Sentinel) Fragment(*softpipe.FragmentState) {}

// Palette colors each fragment by the primitive that produced it, cycling
// through Colors. An empty palette behaves like Sentinel.
type Palette struct {
	Colors []softpipe.Vec4
}

// DefaultPalette returns an eight-color palette with distinct hues.
func DefaultPalette() Palette {
	return Palette{Colors: []softpipe.Vec4{
		{X: 0.90, Y: 0.30, Z: 0.24, W: 1},
		{X: 0.18, Y: 0.80, Z: 0.44, W: 1},
		{X: 0.20, Y: 0.60, Z: 0.86, W: 1},
		{X: 0.95, Y: 0.77, Z: 0.06, W: 1},
		{X: 0.61, Y: 0.35, Z: 0.71, W: 1},
		{X: 0.10, Y: 0.74, Z: 0.61, W: 1},
		{X: 0.90, Y: 0.49, Z: 0.13, W: 1},
		{X: 0.20, Y: 0.29, Z: 0.37, W: 1},
	}}
}

// Fragment implements softpipe.FragmentShader.
func (p Palette) Fragment(s *softpipe.FragmentState) {
	if len(p.Colors) == 0 {
		return
	}
	s.SetColor(p.Colors[s.PrimitiveID()%len(p.Colors)])
}

// Compile-time interface checks.
var (
	_ softpipe.VertexShader   = PassThrough{}
	_ softpipe.VertexShader   = Transform{}
	_ softpipe.VertexShader   = UniformTransform{}
	_ softpipe.FragmentShader = Gradient{}
	_ softpipe.FragmentShader = SolidShader{}
	_ softpipe.FragmentShader = Sentinel{}
	_ softpipe.FragmentShader = Palette{}
)
