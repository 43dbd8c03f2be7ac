package main

import (
	"log"

	"github.com/go-gl/mathgl/mgl32"
)

// engine owns the double-buffered grid and runs the full-grid passes in the
// order the frame loop requests. It is single-threaded: a pass always runs to
// completion and publishes its result before the next one starts. External
// consumers only read the exposed current buffer.
type engine struct {
	grid    *waterField
	damping float32
}

// newEngine allocates the grid buffers. Failure here is fatal to the caller;
// no partially constructed engine is usable.
func newEngine(n int, damping float64) (*engine, error) {
	grid, err := newWaterField(n)
	if err != nil {
		return nil, err
	}
	e := &engine{grid: grid}
	e.SetDamping(damping)
	return e, nil
}

// run executes one pass against the read buffer and swaps the result in.
func (e *engine) run(kind passKind, p passParams) {
	switch kind {
	case passWaveUpdate:
		waveUpdatePass(e.grid, e.damping)
	case passInjectDrop:
		injectDropPass(e.grid, p.u, p.v, p.radius, p.strength)
	case passNormals:
		normalsPass(e.grid)
	case passDisplaceBody:
		displaceBodyPass(e.grid, p.oldCenter, p.newCenter, p.bodyRadius)
	}
	e.grid.swap()
}

// AddDisturbance stamps a radial impulse centered on (u,v). Coordinates
// outside the fluid domain are silently dropped; that is expected boundary
// behavior for pointer input, not an error.
func (e *engine) AddDisturbance(u, v, radius, strength float64) {
	if u < 0 || u > 1 || v < 0 || v > 1 {
		return
	}
	e.run(passInjectDrop, passParams{u: u, v: v, radius: radius, strength: strength})
}

// MoveBody folds the displacement correction for a body that moved from
// oldCenter to newCenter into the height field. Equal centers are an exact
// no-op: the grid is left untouched.
func (e *engine) MoveBody(oldCenter, newCenter mgl32.Vec3, radius float32) {
	if oldCenter == newCenter {
		return
	}
	e.run(passDisplaceBody, passParams{oldCenter: oldCenter, newCenter: newCenter, bodyRadius: radius})
}

// Step advances the wave equation one discrete time step.
func (e *engine) Step() {
	e.run(passWaveUpdate, passParams{})
}

// ReconstructNormals recomputes the normal channels from the current heights.
func (e *engine) ReconstructNormals() {
	e.run(passNormals, passParams{})
}

// SetDamping updates the wave damping factor. The contract expects (0,1);
// out-of-range values are clamped with a warning instead of letting the
// recurrence diverge silently.
func (e *engine) SetDamping(v float64) {
	clamped := v
	if clamped < 0 {
		clamped = 0
	} else if clamped > maxDamping {
		clamped = maxDamping
	}
	if clamped != v {
		log.Printf("damping %.4f outside (0,1); clamped to %.5f", v, clamped)
	}
	e.damping = float32(clamped)
}

// Damping returns the active damping factor.
func (e *engine) Damping() float32 {
	return e.damping
}

// Resolution returns the grid side length in cells.
func (e *engine) Resolution() int {
	return e.grid.n
}

// Cells exposes the most recently completed grid state. Read-only by
// contract; only engine passes may mutate the buffers.
func (e *engine) Cells() []cell {
	return e.grid.read
}

// HeightAt reads the current height channel with clamped addressing.
func (e *engine) HeightAt(x, y int) float32 {
	return e.grid.at(x, y).height
}

// VelocityAt reads the current velocity channel with clamped addressing.
func (e *engine) VelocityAt(x, y int) float32 {
	return e.grid.at(x, y).vel
}

// NormalAt reads the stored horizontal normal components.
func (e *engine) NormalAt(x, y int) (float32, float32) {
	c := e.grid.at(x, y)
	return c.normalX, c.normalZ
}

// Reset returns the whole surface to rest.
func (e *engine) Reset() {
	e.grid.zero()
}
