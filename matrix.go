// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package softpipe

import "github.com/go-gl/mathgl/mgl64"

// Mat4 is a 4x4 matrix stored in row-major order:
//
//	| M[0]  M[1]  M[2]  M[3]  |
//	| M[4]  M[5]  M[6]  M[7]  |
//	| M[8]  M[9]  M[10] M[11] |
//	| M[12] M[13] M[14] M[15] |
//
// Vectors are column vectors, so a transform is applied as m.MulVec(v) and
// a.Mul(b) applies b first.
//
// The arithmetic is done by mgl64, which stores matrices column-major;
// conversion happens at the boundary.
type Mat4 [16]float64

func (m Mat4) gl() mgl64.Mat4 {
	return mgl64.Mat4(m).Transpose()
}

func fromGL(a mgl64.Mat4) Mat4 {
	return Mat4(a.Transpose())
}

// Identity4 returns the identity matrix.
func Identity4() Mat4 {
	return fromGL(mgl64.Ident4())
}

// Viewport returns the matrix that maps normalized device coordinates
// [-1,1]x[-1,1] to pixel coordinates [0,width]x[0,height].
//
// The y axis is flipped: NDC +y points up, pixel row 0 is the top row.
// z and w pass through unchanged.
func Viewport(width, height int) Mat4 {
	hw := float64(width) / 2
	hh := float64(height) / 2
	return Mat4{
		hw, 0, 0, hw,
		0, -hh, 0, hh,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate returns a translation matrix.
func Translate(x, y, z float64) Mat4 {
	return fromGL(mgl64.Translate3D(x, y, z))
}

// Scale returns a scaling matrix.
func Scale(x, y, z float64) Mat4 {
	return fromGL(mgl64.Scale3D(x, y, z))
}

// RotateZ returns a counter-clockwise rotation around the z axis (angle in radians).
func RotateZ(angle float64) Mat4 {
	return fromGL(mgl64.HomogRotate3DZ(angle))
}

// Perspective returns a right-handed perspective projection with an OpenGL
// style clip volume (z in [-w, w]). The camera looks down -z, so points in
// front of it end up with w = -z > 0. fovY is in radians.
func Perspective(fovY, aspect, near, far float64) Mat4 {
	return fromGL(mgl64.Perspective(fovY, aspect, near, far))
}

// Mul multiplies two matrices (m * other).
func (m Mat4) Mul(other Mat4) Mat4 {
	return fromGL(m.gl().Mul4(other.gl()))
}

// MulVec applies the matrix to a column vector.
func (m Mat4) MulVec(v Vec4) Vec4 {
	r := m.gl().Mul4x1(mgl64.Vec4{v.X, v.Y, v.Z, v.W})
	return Vec4{X: r[0], Y: r[1], Z: r[2], W: r[3]}
}
