// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shaders

import "github.com/gogpu/softpipe"

// PassThrough emits the vertex position stored in the attribute buffer
// unchanged.
//
// Components selects the layout of the buffer: 2 for (x, y) pairs, which are
// extended to (x, y, 0, 1), or 4 for full (x, y, z, w) positions. Any other
// value is treated as 2.
type PassThrough struct {
	// Binding is the binding point holding the positions.
	Binding int

	// Components is the number of floats per vertex (2 or 4).
	Components int
}

// Vertex implements softpipe.VertexShader.
func (p PassThrough) Vertex(s *softpipe.VertexState) {
	s.SetPosition(readPosition(s, p.Binding, p.Components))
}

// Transform multiplies every stored vertex position by Matrix.
//
// Example:
//
//	// Rotate a 2D mesh and project it 3 units in front of the camera.
//	m := softpipe.Perspective(math.Pi/3, 4.0/3, 0.1, 100).
//	    Mul(softpipe.Translate(0, 0, -3)).
//	    Mul(softpipe.RotateZ(angle))
//	vs := shaders.Transform{Components: 2, Matrix: m}
type Transform struct {
	Binding    int
	Components int
	Matrix     softpipe.Mat4
}

// Vertex implements softpipe.VertexShader.
func (t Transform) Vertex(s *softpipe.VertexState) {
	s.SetPosition(t.Matrix.MulVec(readPosition(s, t.Binding, t.Components)))
}

func readPosition(s *softpipe.VertexState, binding, components int) softpipe.Vec4 {
	buf := s.Location(binding)
	if components == 4 {
		return buf.Vec4(s.Index())
	}
	x, y := buf.Vec2(s.Index())
	return softpipe.Point2(x, y)
}

// UniformTransform is Transform with the matrix read from a bound buffer of
// 16 row-major floats, so one pipeline can draw many frames with a new bind
// group per frame instead of a new vertex stage.
type UniformTransform struct {
	Binding       int
	Components    int
	MatrixBinding int
}

// Vertex implements softpipe.VertexShader.
func (u UniformTransform) Vertex(s *softpipe.VertexState) {
	m := MatrixFromBuffer(s.Location(u.MatrixBinding))
	s.SetPosition(m.MulVec(readPosition(s, u.Binding, u.Components)))
}

// MatrixBuffer publishes m as an attribute buffer for UniformTransform.
func MatrixBuffer(m softpipe.Mat4) *softpipe.AttributeBuffer {
	return softpipe.NewAttributeBuffer(m[:])
}

// MatrixFromBuffer reads a row-major matrix from the first 16 values of buf.
// It panics if buf holds fewer than 16 values.
func MatrixFromBuffer(buf *softpipe.AttributeBuffer) softpipe.Mat4 {
	var m softpipe.Mat4
	for i := range m {
		m[i] = buf.At(i)
	}
	return m
}
