package main

import (
	"errors"
	"fmt"
)

// cell packs the per-grid-cell state: the current surface height, the rate of
// change driving the wave recurrence, and the horizontal components of the
// reconstructed surface normal. The vertical normal component is re-derived
// as sqrt(1 - nx^2 - nz^2) wherever it is needed.
type cell struct {
	height  float32
	vel     float32
	normalX float32
	normalZ float32
}

// waterField holds the double-buffered simulation grid. Every pass reads only
// from read and writes only into write; swap publishes the pass result.
type waterField struct {
	n     int
	read  []cell
	write []cell
}

// newWaterField allocates both grid buffers. A resolution below 3 cannot
// support the neighbor sampling the passes rely on and is rejected.
func newWaterField(n int) (*waterField, error) {
	if n < 3 {
		return nil, fmt.Errorf("water grid resolution %d too small (minimum 3)", n)
	}
	return &waterField{
		n:     n,
		read:  make([]cell, n*n),
		write: make([]cell, n*n),
	}, nil
}

var errFieldBufferSize = errors.New("unexpected field buffer size")

// idx converts grid coordinates into a buffer index without bounds handling.
func (f *waterField) idx(x, y int) int {
	return y*f.n + x
}

// clampIndex constrains a grid coordinate to the valid range. Edge cells
// sample across the boundary with clamped addressing, so the outermost ring
// reuses its own height as the missing neighbor. Deterministic by
// construction; wraparound is not used.
func (f *waterField) clampIndex(v int) int {
	if v < 0 {
		return 0
	}
	if v >= f.n {
		return f.n - 1
	}
	return v
}

// at reads a cell from the read buffer with clamped addressing.
func (f *waterField) at(x, y int) cell {
	return f.read[f.clampIndex(y)*f.n+f.clampIndex(x)]
}

// swap publishes the write buffer as the current read state.
func (f *waterField) swap() {
	f.read, f.write = f.write, f.read
}

// zero clears both buffers, returning the surface to rest.
func (f *waterField) zero() {
	for i := range f.read {
		f.read[i] = cell{}
		f.write[i] = cell{}
	}
}

// cellUV returns the normalized coordinates of a cell center.
func (f *waterField) cellUV(x, y int) (float64, float64) {
	inv := 1.0 / float64(f.n)
	return (float64(x) + 0.5) * inv, (float64(y) + 0.5) * inv
}

// uvToWorld maps normalized fluid coordinates onto the water plane.
func uvToWorld(u, v float64) (float64, float64) {
	return (u - 0.5) * poolSize, (0.5 - v) * poolSize
}

// worldToUV maps a point on the water plane into normalized fluid coordinates.
func worldToUV(x, z float64) (float64, float64) {
	return x/poolSize + 0.5, 0.5 - z/poolSize
}
