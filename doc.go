// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package softpipe is a CPU triangle rasterization pipeline with
// programmable vertex and fragment stages.
//
// # Overview
//
// softpipe mirrors the shape of a hardware graphics pipeline in plain Go:
//
//	attribute buffers -> BindGroup -> VertexShader (per vertex)
//	    -> clip -> perspective divide -> viewport transform
//	    -> bounding box -> edge-function coverage test
//	    -> FragmentShader (per covered pixel) -> Framebuffer
//
// The vertex and fragment stages are interfaces; everything around them is
// fixed-function.
//
// # Quick Start
//
//	vertices := softpipe.NewAttributeBuffer([]float64{
//	    0.0, 0.5,
//	    -0.5, -0.5,
//	    0.5, -0.5,
//	})
//
//	vs := softpipe.VertexShaderFunc(func(s *softpipe.VertexState) {
//	    x, y := s.Location(0).Vec2(s.Index())
//	    s.SetPosition(softpipe.Point2(x, y))
//	})
//	fs := softpipe.FragmentShaderFunc(func(s *softpipe.FragmentState) {
//	    s.SetColor(softpipe.Red)
//	})
//
//	fb := softpipe.NewFramebuffer(800, 600)
//	fb.Clear(0xFFFFFF)
//	_, err := softpipe.Draw(3, fb, vertices, softpipe.Viewport(800, 600), vs, fs)
//
// # Coordinate System
//
// Vertex stages output clip-space positions. After the divide by w, NDC
// x and y in [-1, 1] map to [0, width] x [0, height] with +y pointing up in
// NDC and pixel row 0 at the top. Pixels are sampled at their centers.
//
// # Coverage Rule
//
// A pixel is covered when its center lies on the same side of all three
// triangle edges (edge function >= 0 for all, or < 0 for all). The test runs
// on the triangle's positive-area vertex order, so both winding orders
// rasterize identically, centers on an edge included. There is no face
// culling.
//
// # What the pipeline does not do
//
// There is no frustum clipping, depth buffer, blending or attribute
// interpolation. Later triangles overwrite earlier ones. Primitives with a
// vertex at w <= DefaultWGuard (configurable with WithWGuard) are rejected.
//
// # Logging
//
// Diagnostics go to a Diagnostics sink injected with WithDiagnostics, or to
// the package logger set with SetLogger (silent by default).
package softpipe
