// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package parallel provides tile-based parallel rasterization infrastructure
// for softpipe.
//
// The framebuffer is divided into 64x64 pixel tiles. Tiles never overlap, so
// each one can be rasterized by a different goroutine while still visiting
// triangles in submission order: a later triangle overwrites an earlier one
// on every pixel they share, exactly as in the sequential path.
//
// A TileGrid is immutable once built and may be read from any number of
// goroutines.
package parallel

// Tile size constants.
const (
	// TileWidth is the width of a tile in pixels.
	TileWidth = 64

	// TileHeight is the height of a tile in pixels.
	TileHeight = 64
)

// Tile is a rectangular pixel region [MinX, MaxX) x [MinY, MaxY).
//
// Edge tiles are smaller when the canvas is not evenly divisible by the
// tile size.
type Tile struct {
	// MinX, MinY is the top-left pixel (inclusive).
	MinX, MinY int

	// MaxX, MaxY is the bottom-right pixel (exclusive).
	MaxX, MaxY int
}

// TileGrid divides a canvas into row-major tiles:
// index = ty * tilesX + tx.
type TileGrid struct {
	tiles  []Tile
	tilesX int
	width  int
	height int
}

// NewTileGrid creates a grid covering a width x height canvas.
// A non-positive dimension yields an empty grid.
func NewTileGrid(width, height int) *TileGrid {
	g := &TileGrid{}
	if width <= 0 || height <= 0 {
		return g
	}

	g.width = width
	g.height = height
	g.tilesX = (width + TileWidth - 1) / TileWidth
	tilesY := (height + TileHeight - 1) / TileHeight
	g.tiles = make([]Tile, 0, g.tilesX*tilesY)

	for ty := range tilesY {
		for tx := range g.tilesX {
			g.tiles = append(g.tiles, Tile{
				MinX: tx * TileWidth,
				MinY: ty * TileHeight,
				MaxX: min((tx+1)*TileWidth, width),
				MaxY: min((ty+1)*TileHeight, height),
			})
		}
	}
	return g
}

// TileCount returns the total number of tiles.
func (g *TileGrid) TileCount() int { return len(g.tiles) }

// Tile returns the tile at a flat index.
func (g *TileGrid) Tile(index int) Tile { return g.tiles[index] }

// ForEachOverlapping calls fn with the flat index of every tile that
// intersects the inclusive pixel rectangle [minX, maxX] x [minY, maxY],
// in row-major order. The rectangle is clamped to the canvas first.
func (g *TileGrid) ForEachOverlapping(minX, minY, maxX, maxY int, fn func(index int)) {
	minX = max(minX, 0)
	minY = max(minY, 0)
	maxX = min(maxX, g.width-1)
	maxY = min(maxY, g.height-1)
	if minX > maxX || minY > maxY {
		return
	}

	for ty := minY / TileHeight; ty <= maxY/TileHeight; ty++ {
		for tx := minX / TileWidth; tx <= maxX/TileWidth; tx++ {
			fn(ty*g.tilesX + tx)
		}
	}
}
