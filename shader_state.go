// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package softpipe

// VertexState is the invocation context of one vertex stage call.
//
// It carries the built-in inputs (primitive id, vertex id, bound buffers)
// and the single built-in output, the clip-space position, which starts at
// the zero vector.
type VertexState struct {
	primitiveID int
	vertexID    int
	position    Vec4
	bindGroup   *BindGroup
}

// NewVertexState creates the context for vertex vertexID (0, 1 or 2) of
// primitive primitiveID.
func NewVertexState(primitiveID, vertexID int, bg *BindGroup) VertexState {
	return VertexState{
		primitiveID: primitiveID,
		vertexID:    vertexID,
		bindGroup:   bg,
	}
}

// PrimitiveID returns the index of the triangle being shaded.
func (s *VertexState) PrimitiveID() int {
	return s.primitiveID
}

// VertexID returns the local index of the vertex within its triangle.
func (s *VertexState) VertexID() int {
	return s.vertexID
}

// Index returns the vertex's index in the draw call's vertex stream,
// PrimitiveID*3 + VertexID.
func (s *VertexState) Index() int {
	return s.primitiveID*3 + s.vertexID
}

// Position returns the clip-space position written so far.
func (s *VertexState) Position() Vec4 {
	return s.position
}

// SetPosition writes the clip-space position.
func (s *VertexState) SetPosition(p Vec4) {
	s.position = p
}

// Location returns the buffer bound at binding. See BindGroup.Location.
func (s *VertexState) Location(binding int) *AttributeBuffer {
	return s.bindGroup.Location(binding)
}

// FragmentState is the invocation context of one fragment stage call.
//
// Position is the pixel center in screen space with z = 0 and w = 1; vertex
// outputs are not interpolated. Color starts at SentinelColor.
type FragmentState struct {
	primitiveID int
	position    Vec4
	color       Vec4
}

// NewFragmentState creates the context for the sample at (x, y, z, w).
func NewFragmentState(x, y, z, w float64) FragmentState {
	return FragmentState{
		position: Vec4{X: x, Y: y, Z: z, W: w},
		color:    SentinelColor,
	}
}

// PrimitiveID returns the index of the triangle that produced the fragment.
func (s *FragmentState) PrimitiveID() int {
	return s.primitiveID
}

// Position returns the screen-space sample position.
func (s *FragmentState) Position() Vec4 {
	return s.position
}

// Color returns the output color written so far.
func (s *FragmentState) Color() Vec4 {
	return s.color
}

// SetColor writes the output color. Components are expected in [0, 1].
func (s *FragmentState) SetColor(c Vec4) {
	s.color = c
}
