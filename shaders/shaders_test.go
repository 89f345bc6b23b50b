// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shaders

import (
	"math"
	"testing"

	"github.com/gogpu/softpipe"
)

func bindGroup(t *testing.T, data []float64) *softpipe.BindGroup {
	t.Helper()
	bg, err := softpipe.NewBindGroup(softpipe.BindGroupEntry{Binding: 0, Buffer: softpipe.NewAttributeBuffer(data)})
	if err != nil {
		t.Fatalf("NewBindGroup() error = %v", err)
	}
	return bg
}

func TestPassThrough(t *testing.T) {
	tests := []struct {
		name       string
		components int
		data       []float64
		vertex     int
		want       softpipe.Vec4
	}{
		{"2D first", 2, []float64{1, 2, 3, 4, 5, 6}, 0, softpipe.Vec4{X: 1, Y: 2, Z: 0, W: 1}},
		{"2D last", 2, []float64{1, 2, 3, 4, 5, 6}, 2, softpipe.Vec4{X: 5, Y: 6, Z: 0, W: 1}},
		{"unknown layout reads pairs", 3, []float64{1, 2, 3, 4, 5, 6}, 1, softpipe.Vec4{X: 3, Y: 4, Z: 0, W: 1}},
		{"4D", 4, []float64{0, 0, 0, 1, 1, 2, 3, 4, 0, 0, 0, 1}, 1, softpipe.Vec4{X: 1, Y: 2, Z: 3, W: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := softpipe.NewVertexState(0, tt.vertex, bindGroup(t, tt.data))
			PassThrough{Components: tt.components}.Vertex(&s)
			if got := s.Position(); got != tt.want {
				t.Errorf("Position() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTransform(t *testing.T) {
	bg := bindGroup(t, []float64{1, 0, 0, 1, -1, 0})

	s := softpipe.NewVertexState(0, 0, bg)
	Transform{Components: 2, Matrix: softpipe.RotateZ(math.Pi / 2)}.Vertex(&s)
	want := softpipe.Vec4{X: 0, Y: 1, Z: 0, W: 1}
	if got := s.Position(); math.Abs(got.X-want.X) > 1e-12 || math.Abs(got.Y-want.Y) > 1e-12 || got.Z != want.Z || got.W != want.W {
		t.Errorf("rotated Position() = %+v, want %+v", got, want)
	}

	// Under a perspective camera the mesh ends up with w = depth.
	m := softpipe.Perspective(math.Pi/2, 1, 0.1, 100).Mul(softpipe.Translate(0, 0, -4))
	s = softpipe.NewVertexState(0, 1, bg)
	Transform{Components: 2, Matrix: m}.Vertex(&s)
	if got := s.Position().W; math.Abs(got-4) > 1e-12 {
		t.Errorf("projected w = %v, want 4", got)
	}
}

func TestGradient(t *testing.T) {
	g := NewGradient(800, 600)
	s := softpipe.NewFragmentState(400.5, 300.5, 0, 1)
	g.Fragment(&s)

	if got := softpipe.PackColor(s.Color()); got != 0x808000 {
		t.Errorf("gradient at (400,300) = %#06x, want 0x808000", got)
	}

	// Zero size must not divide by zero.
	z := NewGradient(0, -5)
	if z.Width != 1 || z.Height != 1 {
		t.Errorf("NewGradient(0, -5) = %+v, want 1x1", z)
	}
}

func TestSolid(t *testing.T) {
	s := softpipe.NewFragmentState(1, 1, 0, 1)
	Solid(softpipe.Red).Fragment(&s)
	if s.Color() != softpipe.Red {
		t.Errorf("Color() = %+v, want red", s.Color())
	}

	h, err := SolidHex("#00ff00")
	if err != nil {
		t.Fatalf("SolidHex() error = %v", err)
	}
	if h.Color != softpipe.Green {
		t.Errorf("SolidHex color = %+v, want green", h.Color)
	}

	if _, err := SolidHex("nope"); err == nil {
		t.Error("SolidHex(\"nope\") should fail")
	}
}

func TestSentinel(t *testing.T) {
	s := softpipe.NewFragmentState(1, 1, 0, 1)
	Sentinel{}.Fragment(&s)
	if s.Color() != softpipe.SentinelColor {
		t.Errorf("Color() = %+v, want sentinel", s.Color())
	}
}

func TestPalette(t *testing.T) {
	p := DefaultPalette()
	if len(p.Colors) != 8 {
		t.Fatalf("DefaultPalette has %d colors, want 8", len(p.Colors))
	}

	// Primitive ids are only set by the pipeline, so draw two triangles and
	// check each one got its own palette entry.
	data := []float64{
		-1, 1, 0, 1, -1, -1,
		1, 1, 1, -1, 0, -1,
	}
	fb := softpipe.NewFramebuffer(40, 40)
	fb.Clear(0xFFFFFF)
	if _, err := softpipe.Draw(6, fb, softpipe.NewAttributeBuffer(data), softpipe.Viewport(40, 40),
		PassThrough{Components: 2}, p); err != nil {
		t.Fatal(err)
	}

	if got, want := fb.Pixel(2, 20), softpipe.PackColor(p.Colors[0]); got != want {
		t.Errorf("left triangle = %#06x, want %#06x", got, want)
	}
	if got, want := fb.Pixel(37, 20), softpipe.PackColor(p.Colors[1]); got != want {
		t.Errorf("right triangle = %#06x, want %#06x", got, want)
	}

	s := softpipe.NewFragmentState(0, 0, 0, 1)
	Palette{}.Fragment(&s)
	if s.Color() != softpipe.SentinelColor {
		t.Error("empty palette should leave the sentinel color")
	}
}

func TestRotatingMeshConcurrentDraw(t *testing.T) {
	// Shader values are shared between workers without synchronization.
	data := []float64{0, 0.5, -0.5, -0.5, 0.5, -0.5}
	vs := Transform{Components: 2, Matrix: softpipe.RotateZ(0.3)}
	fs := NewGradient(128, 128)

	seq := softpipe.NewFramebuffer(128, 128)
	par := softpipe.NewFramebuffer(128, 128)
	vb := softpipe.NewAttributeBuffer(data)

	if _, err := softpipe.Draw(3, seq, vb, softpipe.Viewport(128, 128), vs, fs); err != nil {
		t.Fatal(err)
	}
	if _, err := softpipe.Draw(3, par, vb, softpipe.Viewport(128, 128), vs, fs, softpipe.WithWorkers(4)); err != nil {
		t.Fatal(err)
	}

	for i := range seq.Pixels() {
		if seq.Pixels()[i] != par.Pixels()[i] {
			t.Fatalf("pixel %d differs between sequential and parallel draws", i)
		}
	}
}

func TestUniformTransform(t *testing.T) {
	m := softpipe.Translate(0.25, -0.5, 0)
	bg, err := softpipe.NewBindGroup(
		softpipe.BindGroupEntry{Binding: 0, Buffer: softpipe.NewAttributeBuffer([]float64{1, 1, 2, 2, 3, 3})},
		softpipe.BindGroupEntry{Binding: 1, Buffer: MatrixBuffer(m)},
	)
	if err != nil {
		t.Fatal(err)
	}

	s := softpipe.NewVertexState(0, 2, bg)
	UniformTransform{Binding: 0, Components: 2, MatrixBinding: 1}.Vertex(&s)

	want := softpipe.Vec4{X: 3.25, Y: 2.5, Z: 0, W: 1}
	if got := s.Position(); got != want {
		t.Errorf("Position() = %+v, want %+v", got, want)
	}
}

func TestMatrixBufferRoundTrip(t *testing.T) {
	m := softpipe.Perspective(1, 1.5, 0.1, 10).Mul(softpipe.RotateZ(0.7))
	if got := MatrixFromBuffer(MatrixBuffer(m)); got != m {
		t.Errorf("MatrixFromBuffer(MatrixBuffer(m)) = %v, want %v", got, m)
	}
}
