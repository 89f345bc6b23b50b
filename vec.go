// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package softpipe

import "math"

// Vec4 is a 4-component homogeneous vector.
//
// Vertex positions are produced in clip space as (x, y, z, w). After the
// perspective divide w is 1 and (x, y, z) are normalized device coordinates.
// Colors reuse the same type as (r, g, b, a) with components in [0, 1].
type Vec4 struct {
	X, Y, Z, W float64
}

// Point2 returns a position vector for a 2D point in the z=0 plane.
func Point2(x, y float64) Vec4 {
	return Vec4{X: x, Y: y, Z: 0, W: 1}
}

// Div returns the vector with every component divided by s.
func (v Vec4) Div(s float64) Vec4 {
	return Vec4{X: v.X / s, Y: v.Y / s, Z: v.Z / s, W: v.W / s}
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vec4) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z) && isFinite(v.W)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
