// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package softpipe

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/softpipe/internal/parallel"
)

// Pipeline errors.
var (
	// ErrBadPrimitiveCount is returned when a draw call's vertex count is
	// negative or not a multiple of 3. The draw call writes nothing.
	ErrBadPrimitiveCount = errors.New("softpipe: vertex count is not a multiple of 3")

	// ErrNilArgument is returned when a required stage, framebuffer or bind
	// group is nil.
	ErrNilArgument = errors.New("softpipe: nil argument")
)

// DrawStats summarizes one draw call.
type DrawStats struct {
	// Primitives is the number of triangles submitted.
	Primitives int

	// Rejected is the number of triangles dropped before rasterization
	// because a vertex had a non-finite position or w at or below the guard.
	Rejected int

	// Fragments is the number of pixels written.
	Fragments int
}

// Pipeline binds a vertex stage and a fragment stage to the fixed-function
// stages around them: perspective divide, viewport transform, triangle
// setup, rasterization and framebuffer write.
//
// Draw may be called concurrently on different framebuffers. A pipeline
// created WithWorkers owns goroutines and must be closed.
//
// Example:
//
//	p, err := softpipe.NewPipeline(vs, fs)
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//
//	fb := softpipe.NewFramebuffer(800, 600)
//	fb.Clear(0xFFFFFF)
//	stats, err := p.Draw(fb, bindGroup, 3)
type Pipeline struct {
	vertex   VertexShader
	fragment FragmentShader
	opts     pipelineOptions

	// pool is nil for the sequential path.
	pool *parallel.WorkerPool
}

// NewPipeline creates a pipeline from two shader stages.
func NewPipeline(vs VertexShader, fs FragmentShader, opts ...PipelineOption) (*Pipeline, error) {
	if vs == nil || fs == nil {
		return nil, fmt.Errorf("%w: vertex and fragment shaders must both be set", ErrNilArgument)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	p := &Pipeline{
		vertex:   vs,
		fragment: fs,
		opts:     o,
	}
	if o.workers > 1 {
		p.pool = parallel.NewWorkerPool(o.workers)
	}
	return p, nil
}

// Close releases the pipeline's worker goroutines, if any.
// Close must not be called while a Draw is in progress.
func (p *Pipeline) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

// Workers returns the number of rasterization workers (1 when sequential).
func (p *Pipeline) Workers() int {
	return p.opts.workers
}

// Draw renders vertexCount/3 triangles into fb.
//
// Vertex i of primitive j is shaded with PrimitiveID j and VertexID i; the
// attribute data is whatever bg exposes. Triangles are processed in
// submission order, so where two overlap the later one wins.
//
// A vertexCount that is negative or not a multiple of 3 aborts the whole
// call with ErrBadPrimitiveCount before any shader runs or pixel is written.
func (p *Pipeline) Draw(fb *Framebuffer, bg *BindGroup, vertexCount int) (DrawStats, error) {
	diag := p.opts.diagnostics

	if fb == nil || bg == nil {
		diag.Report(slog.LevelError, "draw call aborted: nil framebuffer or bind group")
		return DrawStats{}, fmt.Errorf("%w: framebuffer and bind group must both be set", ErrNilArgument)
	}
	if vertexCount < 0 || vertexCount%3 != 0 {
		diag.Report(slog.LevelError, "draw call aborted: bad primitive count", "vertices", vertexCount)
		return DrawStats{}, fmt.Errorf("%w: got %d vertices", ErrBadPrimitiveCount, vertexCount)
	}

	viewport := Viewport(fb.width, fb.height)
	if p.opts.viewport != nil {
		viewport = *p.opts.viewport
	}

	stats := DrawStats{Primitives: vertexCount / 3}
	if p.pool == nil {
		p.drawSequential(fb, bg, viewport, &stats)
	} else {
		p.drawTiled(fb, bg, viewport, &stats)
	}

	diag.Report(slog.LevelDebug, "draw call complete",
		"primitives", stats.Primitives,
		"rejected", stats.Rejected,
		"fragments", stats.Fragments,
		"workers", p.opts.workers,
	)
	return stats, nil
}

// drawSequential runs the full per-primitive pipeline one triangle at a time.
func (p *Pipeline) drawSequential(fb *Framebuffer, bg *BindGroup, viewport Mat4, stats *DrawStats) {
	for i := range stats.Primitives {
		tri, ok := p.setup(i, bg, viewport)
		if !ok {
			stats.Rejected++
			continue
		}
		r := clampedBounds(tri, fb.width, fb.height)
		if r.Empty() {
			continue
		}
		stats.Fragments += rasterize(i, tri, r, fb, p.fragment)
	}
}

// drawTiled sets up every triangle first, bins them into framebuffer tiles
// in submission order, then rasterizes the tiles in parallel. Tiles are
// disjoint, so per-pixel overwrite order matches drawSequential.
func (p *Pipeline) drawTiled(fb *Framebuffer, bg *BindGroup, viewport Mat4, stats *DrawStats) {
	grid := parallel.NewTileGrid(fb.width, fb.height)
	if grid.TileCount() == 0 {
		// Nothing can be written, but vertex stages still run so rejected
		// primitives are counted the same way as in the sequential path.
		for i := range stats.Primitives {
			if _, ok := p.setup(i, bg, viewport); !ok {
				stats.Rejected++
			}
		}
		return
	}

	tris := make([]Triangle, 0, stats.Primitives)
	prims := make([]int, 0, stats.Primitives)
	bounds := make([]Rect, 0, stats.Primitives)
	bins := make([][]int, grid.TileCount())

	for i := range stats.Primitives {
		tri, ok := p.setup(i, bg, viewport)
		if !ok {
			stats.Rejected++
			continue
		}
		r := clampedBounds(tri, fb.width, fb.height)
		if r.Empty() {
			continue
		}
		idx := len(tris)
		tris = append(tris, tri)
		prims = append(prims, i)
		bounds = append(bounds, r)
		grid.ForEachOverlapping(r.MinX, r.MinY, r.MaxX, r.MaxY, func(tile int) {
			bins[tile] = append(bins[tile], idx)
		})
	}

	counts := make([]int, grid.TileCount())
	p.pool.Run(grid.TileCount(), func(ti int) {
		tile := grid.Tile(ti)
		area := Rect{MinX: tile.MinX, MinY: tile.MinY, MaxX: tile.MaxX - 1, MaxY: tile.MaxY - 1}
		for _, idx := range bins[ti] {
			r := bounds[idx].Intersect(area)
			if r.Empty() {
				continue
			}
			counts[ti] += rasterize(prims[idx], tris[idx], r, fb, p.fragment)
		}
	})

	for _, n := range counts {
		stats.Fragments += n
	}
}

// setup runs the geometry half of the pipeline for primitive i: vertex
// shading, clipping, perspective divide and viewport transform. It returns
// false if the primitive is rejected.
func (p *Pipeline) setup(i int, bg *BindGroup, viewport Mat4) (Triangle, bool) {
	var clip Triangle
	for v := range 3 {
		state := NewVertexState(i, v, bg)
		p.vertex.Vertex(&state)
		clip[v] = state.Position()
	}

	if !p.clip(i, clip) {
		return Triangle{}, false
	}

	var screen Triangle
	for v := range 3 {
		screen[v] = viewport.MulVec(perspectiveDivide(clip[v]))
		if !screen[v].IsFinite() {
			// A tiny w can still overflow the divide.
			p.opts.diagnostics.Report(slog.LevelDebug, "primitive rejected after divide",
				"primitive", i,
				"vertex", v,
			)
			return Triangle{}, false
		}
	}
	return screen, true
}

// clip is the clipping stage. There is no frustum clipping; the stage only
// rejects primitives the perspective divide cannot map to screen space.
func (p *Pipeline) clip(i int, t Triangle) bool {
	for v, pos := range t {
		if !pos.IsFinite() || pos.W <= p.opts.wGuard {
			p.opts.diagnostics.Report(slog.LevelDebug, "primitive rejected",
				"primitive", i,
				"vertex", v,
				"w", pos.W,
			)
			return false
		}
	}
	return true
}

// perspectiveDivide divides all four components by w. w is read once before
// the division, so the result always has w = 1.
func perspectiveDivide(pos Vec4) Vec4 {
	w := pos.W
	return pos.Div(w)
}

// Draw is the single-call entry point: it binds vertices at binding point 0,
// builds a sequential pipeline from vs and fs with the given viewport, and
// draws vertexCount vertices into fb.
//
// Extra options are applied after the viewport, so WithWorkers and
// WithDiagnostics may be supplied here too.
func Draw(vertexCount int, fb *Framebuffer, vertices *AttributeBuffer, viewport Mat4,
	vs VertexShader, fs FragmentShader, opts ...PipelineOption,
) (DrawStats, error) {
	bg, err := NewBindGroup(BindGroupEntry{Binding: 0, Buffer: vertices})
	if err != nil {
		return DrawStats{}, err
	}

	p, err := NewPipeline(vs, fs, append([]PipelineOption{WithViewport(viewport)}, opts...)...)
	if err != nil {
		return DrawStats{}, err
	}
	defer p.Close()

	return p.Draw(fb, bg, vertexCount)
}
