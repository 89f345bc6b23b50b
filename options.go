// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package softpipe

// PipelineOption configures a Pipeline during creation.
// Use functional options to customize Pipeline behavior.
//
// Example:
//
//	// Default: sequential, viewport derived from the framebuffer
//	p, err := softpipe.NewPipeline(vs, fs)
//
//	// Tile-parallel rasterization with an injected diagnostics sink
//	p, err := softpipe.NewPipeline(vs, fs,
//	    softpipe.WithWorkers(runtime.GOMAXPROCS(0)),
//	    softpipe.WithDiagnostics(softpipe.SlogDiagnostics(logger)),
//	)
type PipelineOption func(*pipelineOptions)

// DefaultWGuard is the smallest clip-space w a vertex may have before its
// primitive is rejected.
const DefaultWGuard = 1e-9

// pipelineOptions holds optional configuration for Pipeline creation.
type pipelineOptions struct {
	viewport    *Mat4
	diagnostics Diagnostics
	workers     int
	wGuard      float64
}

// defaultOptions returns the default pipeline options.
func defaultOptions() pipelineOptions {
	return pipelineOptions{
		viewport:    nil, // derived from the framebuffer at draw time
		diagnostics: globalDiagnostics{},
		workers:     1,
		wGuard:      DefaultWGuard,
	}
}

// WithViewport sets a fixed viewport matrix.
//
// Without this option every draw call uses Viewport(fb.Width(), fb.Height()).
func WithViewport(m Mat4) PipelineOption {
	return func(o *pipelineOptions) {
		o.viewport = &m
	}
}

// WithDiagnostics injects the sink that receives validation failures and
// per-draw diagnostics. A nil sink restores the package logger.
func WithDiagnostics(d Diagnostics) PipelineOption {
	return func(o *pipelineOptions) {
		if d == nil {
			d = globalDiagnostics{}
		}
		o.diagnostics = d
	}
}

// WithWorkers sets the number of goroutines used for rasterization and
// fragment shading. Values <= 1 select the sequential path.
//
// With more than one worker the framebuffer is split into tiles that are
// rasterized concurrently; the fragment shader must then be safe for
// concurrent use. Output is identical to the sequential path.
func WithWorkers(n int) PipelineOption {
	return func(o *pipelineOptions) {
		o.workers = max(n, 1)
	}
}

// WithWGuard sets the minimum clip-space w accepted by the perspective
// divide. Primitives with any vertex at or below the guard are rejected.
func WithWGuard(guard float64) PipelineOption {
	return func(o *pipelineOptions) {
		o.wGuard = guard
	}
}
