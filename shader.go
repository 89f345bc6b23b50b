// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package softpipe

// VertexShader is the programmable per-vertex stage.
//
// Vertex is called once per vertex with a fresh state. It reads the
// primitive and vertex ids and any bound attribute buffers, and must write
// the clip-space position with SetPosition. It must not have other side
// effects.
type VertexShader interface {
	Vertex(vs *VertexState)
}

// FragmentShader is the programmable per-pixel stage.
//
// Fragment is called once per covered pixel with a fresh state. It reads the
// pixel-center position and must write the output color with SetColor.
// With more than one pipeline worker, Fragment is called concurrently and
// must be safe for concurrent use.
type FragmentShader interface {
	Fragment(fs *FragmentState)
}

// VertexShaderFunc adapts an ordinary function to the VertexShader interface.
type VertexShaderFunc func(vs *VertexState)

// Vertex calls f(vs).
func (f VertexShaderFunc) Vertex(vs *VertexState) { f(vs) }

// FragmentShaderFunc adapts an ordinary function to the FragmentShader interface.
type FragmentShaderFunc func(fs *FragmentState)

// Fragment calls f(fs).
func (f FragmentShaderFunc) Fragment(fs *FragmentState) { f(fs) }
