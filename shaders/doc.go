// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package shaders provides ready-made vertex and fragment stages for the
// softpipe pipeline.
//
// Vertex stages read positions from a bound attribute buffer:
//   - PassThrough: positions are already in clip space
//   - Transform: positions are multiplied by a matrix (model, view, projection)
//   - UniformTransform: like Transform, with the matrix taken from a bound buffer
//
// Fragment stages color covered pixels:
//   - Gradient: red follows the row, green follows the column
//   - SolidShader: a single color
//   - Sentinel: writes nothing, so fragments show softpipe.SentinelColor
//   - Palette: one color per primitive, cycling through a list
//
// All stages are immutable values and safe for concurrent use, so they can
// be used with a multi-worker pipeline.
//
// Example:
//
//	vs := shaders.PassThrough{Components: 2}
//	fs := shaders.NewGradient(800, 600)
//	p, err := softpipe.NewPipeline(vs, fs)
package shaders
