// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package softpipe

import "math"

// Triangle is a primitive after the viewport transform: three positions in
// pixel coordinates, in submission order.
type Triangle [3]Vec4

// Rect is an inclusive integer pixel rectangle [MinX, MaxX] x [MinY, MaxY].
type Rect struct {
	MinX, MinY, MaxX, MaxY int
}

// Empty reports whether the rectangle contains no pixels.
func (r Rect) Empty() bool {
	return r.MinX > r.MaxX || r.MinY > r.MaxY
}

// Intersect returns the overlap of two rectangles, which may be empty.
func (r Rect) Intersect(o Rect) Rect {
	return Rect{
		MinX: max(r.MinX, o.MinX),
		MinY: max(r.MinY, o.MinY),
		MaxX: min(r.MaxX, o.MaxX),
		MaxY: min(r.MaxY, o.MaxY),
	}
}

// BoundingBox returns the triangle's pixel bounding box: the floor of the
// minimum and maximum x and y, computed independently per axis.
//
// The coordinates must fit in an int; the pipeline itself uses the clamped
// variant so arbitrary finite positions are safe.
func BoundingBox(t Triangle) Rect {
	minX, minY, maxX, maxY := extents(t)
	return Rect{
		MinX: int(math.Floor(minX)),
		MinY: int(math.Floor(minY)),
		MaxX: int(math.Floor(maxX)),
		MaxY: int(math.Floor(maxY)),
	}
}

// clampedBounds is BoundingBox restricted to a width x height framebuffer.
// Clamping happens before the float to int conversion so positions far
// outside the framebuffer cannot overflow.
func clampedBounds(t Triangle, width, height int) Rect {
	minX, minY, maxX, maxY := extents(t)
	minX = math.Max(math.Floor(minX), 0)
	minY = math.Max(math.Floor(minY), 0)
	maxX = math.Min(math.Floor(maxX), float64(width-1))
	maxY = math.Min(math.Floor(maxY), float64(height-1))
	if minX > maxX || minY > maxY {
		return Rect{MinX: 0, MinY: 0, MaxX: -1, MaxY: -1}
	}
	return Rect{MinX: int(minX), MinY: int(minY), MaxX: int(maxX), MaxY: int(maxY)}
}

func extents(t Triangle) (minX, minY, maxX, maxY float64) {
	minX, maxX = t[0].X, t[0].X
	minY, maxY = t[0].Y, t[0].Y
	for _, v := range t[1:] {
		minX = math.Min(minX, v.X)
		maxX = math.Max(maxX, v.X)
		minY = math.Min(minY, v.Y)
		maxY = math.Max(maxY, v.Y)
	}
	return minX, minY, maxX, maxY
}

// EdgeMask evaluates the three edge functions at sample point (px, py).
//
// For each directed edge k from t[k] to t[(k+1)%3],
//
//	E_k(p) = (x1-px)*(y2-y1) - (y1-py)*(x2-x1)
//
// and bit k of the result is set when E_k(p) >= 0.
func EdgeMask(t Triangle, px, py float64) uint8 {
	var mask uint8
	for k := range 3 {
		x1, y1 := t[k].X, t[k].Y
		x2, y2 := t[(k+1)%3].X, t[(k+1)%3].Y
		if (x1-px)*(y2-y1) >= (y1-py)*(x2-x1) {
			mask |= 1 << k
		}
	}
	return mask
}

// Inside reports whether sample point (px, py) is covered by the triangle.
//
// The point is inside when it lies on the same side of all three edges,
// i.e. the edge mask is 0 or 7. The mask is taken on the positive-area
// vertex order, so a triangle and its reverse cover exactly the same
// samples, including samples lying on an edge. A zero-area triangle makes
// every edge function 0 along its line, so the samples on that line are
// covered.
func Inside(t Triangle, px, py float64) bool {
	return covers(canonical(t), px, py)
}

func covers(t Triangle, px, py float64) bool {
	m := EdgeMask(t, px, py)
	return m == 0 || m == 7
}

// canonical returns t in a fixed winding: reversed when its signed area is
// negative. The shoelace sum is computed so that reversing t negates it
// exactly, so both windings of a triangle map to the same vertex order.
func canonical(t Triangle) Triangle {
	if signedArea2(t) < 0 {
		return Triangle{t[2], t[1], t[0]}
	}
	return t
}

// signedArea2 returns twice the signed area of t.
func signedArea2(t Triangle) float64 {
	// Explicit conversions keep the products from being fused.
	cross := func(a, b Vec4) float64 { return float64(a.X*b.Y) - float64(b.X*a.Y) }
	return (cross(t[0], t[1]) + cross(t[1], t[2])) + cross(t[2], t[0])
}

// rasterize shades every pixel of r covered by primitive prim and writes
// the results to fb. r must already be clamped to the framebuffer. It
// returns the number of fragments written.
func rasterize(prim int, t Triangle, r Rect, fb *Framebuffer, fs FragmentShader) int {
	t = canonical(t)
	fragments := 0
	pix := fb.pix
	stride := fb.width
	for y := r.MinY; y <= r.MaxY; y++ {
		py := float64(y) + 0.5
		row := y * stride
		for x := r.MinX; x <= r.MaxX; x++ {
			px := float64(x) + 0.5
			if !covers(t, px, py) {
				continue
			}
			state := NewFragmentState(px, py, 0, 1)
			state.primitiveID = prim
			fs.Fragment(&state)
			pix[row+x] = PackColor(state.Color())
			fragments++
		}
	}
	return fragments
}
