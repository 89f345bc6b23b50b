// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/softpipe"
	"github.com/gogpu/softpipe/shaders"
)

// Perspective camera used for meshes with Depth > 0.
const (
	CameraFovY = math.Pi / 3
	CameraNear = 0.1
	CameraFar  = 100.0
)

// Bind group layout shared by every mesh pipeline.
const (
	bindingVertices = 0
	bindingMatrix   = 1
)

// ErrSizeMismatch is returned when a framebuffer does not match the
// renderer's size.
var ErrSizeMismatch = errors.New("scene: framebuffer size does not match renderer")

// Renderer draws a scene frame by frame. Each mesh gets one pipeline for the
// renderer's lifetime; per frame only its transform changes.
type Renderer struct {
	scene      *Scene
	width      int
	height     int
	background uint32
	meshes     []meshPipeline
}

type meshPipeline struct {
	mesh     *Mesh
	vertices *softpipe.AttributeBuffer
	pipeline *softpipe.Pipeline
}

// NewRenderer prepares s for drawing into width x height framebuffers.
// The size may differ from the scene's own, e.g. when supersampling.
// opts are passed to every mesh pipeline.
func NewRenderer(s *Scene, width, height int, opts ...softpipe.PipelineOption) (*Renderer, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: render size %dx%d must be positive", ErrInvalidScene, width, height)
	}
	bg, _ := softpipe.HexColor(s.Background) // validated above

	r := &Renderer{
		scene:      s,
		width:      width,
		height:     height,
		background: bg,
	}

	for i := range s.Meshes {
		m := &s.Meshes[i]
		fs, err := fragmentStage(m, width, height)
		if err != nil {
			r.Close()
			return nil, err
		}
		vs := shaders.UniformTransform{
			Binding:       bindingVertices,
			Components:    m.Components,
			MatrixBinding: bindingMatrix,
		}
		p, err := softpipe.NewPipeline(vs, fs, opts...)
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("mesh %q: %w", m.Name, err)
		}
		r.meshes = append(r.meshes, meshPipeline{
			mesh:     m,
			vertices: softpipe.NewAttributeBuffer(m.Vertices),
			pipeline: p,
		})
	}
	return r, nil
}

// Close releases every mesh pipeline.
func (r *Renderer) Close() {
	for _, mp := range r.meshes {
		mp.pipeline.Close()
	}
}

// Width returns the render width in pixels.
func (r *Renderer) Width() int { return r.width }

// Height returns the render height in pixels.
func (r *Renderer) Height() int { return r.height }

// Render draws frame into a new framebuffer.
func (r *Renderer) Render(frame int) (*softpipe.Framebuffer, softpipe.DrawStats, error) {
	fb := softpipe.NewFramebuffer(r.width, r.height)
	stats, err := r.RenderInto(fb, frame)
	if err != nil {
		return nil, stats, err
	}
	return fb, stats, nil
}

// RenderInto clears fb to the background and draws every mesh in order, so
// later meshes cover earlier ones. The returned stats are summed over all
// meshes.
func (r *Renderer) RenderInto(fb *softpipe.Framebuffer, frame int) (softpipe.DrawStats, error) {
	if fb.Width() != r.width || fb.Height() != r.height {
		return softpipe.DrawStats{}, fmt.Errorf("%w: got %dx%d, want %dx%d",
			ErrSizeMismatch, fb.Width(), fb.Height(), r.width, r.height)
	}
	fb.Clear(r.background)

	var total softpipe.DrawStats
	for _, mp := range r.meshes {
		bg, err := softpipe.NewBindGroup(
			softpipe.BindGroupEntry{Binding: bindingVertices, Buffer: mp.vertices},
			softpipe.BindGroupEntry{Binding: bindingMatrix, Buffer: shaders.MatrixBuffer(r.Transform(mp.mesh, frame))},
		)
		if err != nil {
			return total, err
		}

		stats, err := mp.pipeline.Draw(fb, bg, mp.mesh.VertexCount())
		if err != nil {
			return total, fmt.Errorf("mesh %q: %w", mp.mesh.Name, err)
		}
		total.Primitives += stats.Primitives
		total.Rejected += stats.Rejected
		total.Fragments += stats.Fragments
	}
	return total, nil
}

// Transform returns the clip-space transform of m at the given frame:
// a rotation of frame*Rotation around z, followed by the camera when the
// mesh has depth.
func (r *Renderer) Transform(m *Mesh, frame int) softpipe.Mat4 {
	t := softpipe.Identity4()
	if m.Rotation != 0 {
		t = softpipe.RotateZ(m.Rotation * float64(frame))
	}
	if m.Depth > 0 {
		aspect := float64(r.width) / float64(r.height)
		camera := softpipe.Perspective(CameraFovY, aspect, CameraNear, CameraFar).
			Mul(softpipe.Translate(0, 0, -m.Depth))
		t = camera.Mul(t)
	}
	return t
}

func fragmentStage(m *Mesh, width, height int) (softpipe.FragmentShader, error) {
	switch m.Fragment {
	case FragmentGradient:
		return shaders.NewGradient(width, height), nil
	case FragmentSolid:
		return shaders.SolidHex(m.Color)
	case FragmentSentinel:
		return shaders.Sentinel{}, nil
	case FragmentPrimitive:
		return shaders.DefaultPalette(), nil
	default:
		return nil, fmt.Errorf("%w: mesh %q: unknown fragment stage %q", ErrInvalidScene, m.Name, m.Fragment)
	}
}
