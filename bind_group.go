// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package softpipe

import (
	"errors"
	"fmt"
)

// Bind group errors.
var (
	// ErrInvalidBindingPoint is returned when an entry's binding point is
	// outside [0, n) for a group built from n entries.
	ErrInvalidBindingPoint = errors.New("softpipe: invalid binding point")

	// ErrDuplicateBindingPoint is returned when two entries share a binding point.
	ErrDuplicateBindingPoint = errors.New("softpipe: duplicate binding point")
)

// AttributeBuffer is an immutable, shareable stream of float64 attribute data.
//
// The contents are copied once when the buffer is created and never change
// afterwards, so a single *AttributeBuffer can be referenced by any number of
// bind groups, draw calls and goroutines without synchronization.
type AttributeBuffer struct {
	data []float64
}

// NewAttributeBuffer publishes a copy of data as an immutable buffer.
// Later changes to data are not visible through the returned buffer.
func NewAttributeBuffer(data []float64) *AttributeBuffer {
	return &AttributeBuffer{data: append([]float64(nil), data...)}
}

// Len returns the number of float64 values in the buffer.
func (b *AttributeBuffer) Len() int {
	return len(b.data)
}

// At returns the value at index i. It panics if i is out of range.
func (b *AttributeBuffer) At(i int) float64 {
	return b.data[i]
}

// Vec2 reads element i of a tightly packed 2-component stream.
// It panics if the element is out of range.
func (b *AttributeBuffer) Vec2(i int) (x, y float64) {
	return b.data[i*2], b.data[i*2+1]
}

// Vec4 reads element i of a tightly packed 4-component stream.
// It panics if the element is out of range.
func (b *AttributeBuffer) Vec4(i int) Vec4 {
	s := b.data[i*4 : i*4+4]
	return Vec4{X: s[0], Y: s[1], Z: s[2], W: s[3]}
}

// Float64s returns a copy of the buffer contents.
func (b *AttributeBuffer) Float64s() []float64 {
	return append([]float64(nil), b.data...)
}

// BindGroupEntry assigns a buffer to a binding point.
type BindGroupEntry struct {
	Binding int
	Buffer  *AttributeBuffer
}

// BindGroup is a dense, immutable table of attribute buffers indexed by
// binding point. It is the only way shader stages reach vertex data.
type BindGroup struct {
	buffers []*AttributeBuffer
}

// NewBindGroup builds a bind group from n entries.
//
// Every binding point must lie in [0, n) and appear exactly once. A violation
// fails the whole construction with ErrInvalidBindingPoint or
// ErrDuplicateBindingPoint; no partially filled group is returned.
// An entry with a nil buffer binds an empty buffer.
func NewBindGroup(entries ...BindGroupEntry) (*BindGroup, error) {
	n := len(entries)
	buffers := make([]*AttributeBuffer, n)
	for i, e := range entries {
		if e.Binding < 0 || e.Binding >= n {
			return nil, fmt.Errorf("%w: entry %d has binding %d, want [0, %d)", ErrInvalidBindingPoint, i, e.Binding, n)
		}
		if buffers[e.Binding] != nil {
			return nil, fmt.Errorf("%w: binding %d assigned more than once", ErrDuplicateBindingPoint, e.Binding)
		}
		buf := e.Buffer
		if buf == nil {
			buf = &AttributeBuffer{}
		}
		buffers[e.Binding] = buf
	}
	return &BindGroup{buffers: buffers}, nil
}

// Len returns the number of binding points.
func (g *BindGroup) Len() int {
	return len(g.buffers)
}

// Location returns the buffer bound at the given binding point. The returned
// pointer is the one supplied at construction.
//
// Binding layouts are agreed between the data producer and the shaders, so an
// out-of-range binding is a programming error and panics.
func (g *BindGroup) Location(binding int) *AttributeBuffer {
	return g.buffers[binding]
}
