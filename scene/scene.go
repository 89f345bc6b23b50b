// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package scene describes what the softpipe command renders: framebuffer
// size, background color and a list of meshes, each with its own shading
// and animation.
//
// Scenes are usually loaded from YAML:
//
//	width: 800
//	height: 600
//	background: "#ffffff"
//	meshes:
//	  - name: tri
//	    vertices: [0, 0.5, -0.5, -0.5, 0.5, -0.5]
//	    fragment: gradient
//	    rotation: 0.05
package scene

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/softpipe"
)

// Scene defaults.
const (
	DefaultWidth      = 800
	DefaultHeight     = 600
	DefaultBackground = "#ffffff"
	DefaultFragment   = FragmentGradient
	DefaultColor      = "#000000"
)

// Fragment stage names accepted in Mesh.Fragment.
const (
	FragmentGradient  = "gradient"
	FragmentSolid     = "solid"
	FragmentSentinel  = "sentinel"
	FragmentPrimitive = "primitive"
)

// ErrInvalidScene is wrapped by every validation error.
var ErrInvalidScene = errors.New("scene: invalid scene")

// Scene is a complete render description.
type Scene struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Background string `yaml:"background"`
	Meshes     []Mesh `yaml:"meshes"`
}

// Mesh is one draw call: a triangle list plus the stages that shade it.
type Mesh struct {
	Name string `yaml:"name"`

	// Vertices holds Components floats per vertex, three vertices per triangle.
	Vertices   []float64 `yaml:"vertices"`
	Components int       `yaml:"components"`

	// Fragment selects the fragment stage; Color is used by "solid".
	Fragment string `yaml:"fragment"`
	Color    string `yaml:"color,omitempty"`

	// Rotation is the angle in radians added around z on every frame.
	Rotation float64 `yaml:"rotation,omitempty"`

	// Depth > 0 moves the mesh to z = -Depth and views it through a
	// perspective camera, so vertices reach the divide with w = Depth.
	Depth float64 `yaml:"depth,omitempty"`
}

// VertexCount returns the number of vertices in the mesh.
func (m *Mesh) VertexCount() int {
	if m.Components <= 0 {
		return 0
	}
	return len(m.Vertices) / m.Components
}

// Default returns the built-in scene: one gradient-shaded triangle on white.
func Default() *Scene {
	return &Scene{
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Background: DefaultBackground,
		Meshes: []Mesh{{
			Name: "triangle",
			Vertices: []float64{
				0.0, 0.5,
				-0.5, -0.5,
				0.5, -0.5,
			},
			Components: 2,
			Fragment:   FragmentGradient,
		}},
	}
}

// Load reads a scene from a YAML file, applies defaults and validates it.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene file: %w", err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	softpipe.Logger().Debug("scene loaded",
		"path", path,
		"meshes", len(s.Meshes),
		"width", s.Width,
		"height", s.Height,
	)
	return s, nil
}

// Parse decodes a YAML scene, applies defaults and validates it. Unknown
// fields are rejected.
func Parse(data []byte) (*Scene, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Scene
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parsing scene file: %w", err)
	}

	s.ApplyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Marshal encodes the scene as YAML.
func (s *Scene) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("encoding scene: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding scene: %w", err)
	}
	return buf.Bytes(), nil
}

// ApplyDefaults fills in zero-valued fields.
func (s *Scene) ApplyDefaults() {
	if s.Width == 0 {
		s.Width = DefaultWidth
	}
	if s.Height == 0 {
		s.Height = DefaultHeight
	}
	if s.Background == "" {
		s.Background = DefaultBackground
	}
	for i := range s.Meshes {
		m := &s.Meshes[i]
		if m.Name == "" {
			m.Name = fmt.Sprintf("mesh%d", i)
		}
		if m.Components == 0 {
			m.Components = 2
		}
		if m.Fragment == "" {
			m.Fragment = DefaultFragment
		}
		if m.Color == "" && m.Fragment == FragmentSolid {
			m.Color = DefaultColor
		}
	}
}

// Validate checks the scene and returns every problem found, joined.
func (s *Scene) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidScene}, args...)...))
	}

	if s.Width <= 0 || s.Height <= 0 {
		fail("size %dx%d must be positive", s.Width, s.Height)
	}
	if _, err := softpipe.HexColor(s.Background); err != nil {
		fail("background: %v", err)
	}

	for i := range s.Meshes {
		m := &s.Meshes[i]
		if m.Components != 2 && m.Components != 4 {
			fail("mesh %q: components must be 2 or 4, got %d", m.Name, m.Components)
			continue
		}
		if len(m.Vertices)%m.Components != 0 {
			fail("mesh %q: %d floats is not a whole number of %d-component vertices",
				m.Name, len(m.Vertices), m.Components)
			continue
		}
		if n := m.VertexCount(); n%3 != 0 {
			fail("mesh %q: %d vertices is not a whole number of triangles", m.Name, n)
		}
		switch m.Fragment {
		case FragmentGradient, FragmentSentinel, FragmentPrimitive:
		case FragmentSolid:
			if _, err := softpipe.HexColor(m.Color); err != nil {
				fail("mesh %q: color: %v", m.Name, err)
			}
		default:
			fail("mesh %q: unknown fragment stage %q", m.Name, m.Fragment)
		}
		if m.Depth < 0 || m.Depth >= CameraFar {
			fail("mesh %q: depth %v outside [0, %v)", m.Name, m.Depth, CameraFar)
		}
	}

	return errors.Join(errs...)
}
