package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// passKind enumerates the full-grid computations the engine can run. Each
// kind maps to one pure function that reads the read buffer and fills the
// write buffer; the orchestrator selects the pass and swaps afterwards.
type passKind int

const (
	passWaveUpdate passKind = iota
	passInjectDrop
	passNormals
	passDisplaceBody
)

// passParams carries the per-invocation inputs of the parameterized passes.
type passParams struct {
	// Drop injection.
	u, v     float64
	radius   float64
	strength float64

	// Body displacement.
	oldCenter  mgl32.Vec3
	newCenter  mgl32.Vec3
	bodyRadius float32
}

// waveUpdatePass advances the height field one discrete time step of the
// damped wave recurrence. Neighbor heights are averaged with clamped edge
// addressing, the velocity channel is relaxed toward that average, and the
// height integrates the new velocity. Normal channels pass through.
func waveUpdatePass(f *waterField, damping float32) {
	n := f.n
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			c := f.read[f.idx(x, y)]
			avg := (f.at(x-1, y).height + f.at(x+1, y).height +
				f.at(x, y-1).height + f.at(x, y+1).height) * 0.25
			vel := (c.vel + 2*(avg-c.height)) * damping
			f.write[f.idx(x, y)] = cell{
				height:  c.height + vel,
				vel:     vel,
				normalX: c.normalX,
				normalZ: c.normalZ,
			}
		}
	}
}

// injectDropPass stamps a smooth radial impulse into the height channel
// around (u,v). The pulse is 0 at the rim and strength at the center; cells
// farther than radius from the center are copied through untouched.
func injectDropPass(f *waterField, u, v, radius, strength float64) {
	copy(f.write, f.read)
	if radius <= 0 {
		return
	}
	n := f.n
	x0 := f.clampIndex(int((u-radius)*float64(n)) - 1)
	x1 := f.clampIndex(int((u+radius)*float64(n)) + 1)
	y0 := f.clampIndex(int((v-radius)*float64(n)) - 1)
	y1 := f.clampIndex(int((v+radius)*float64(n)) + 1)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			cu, cv := f.cellUV(x, y)
			dist := math.Hypot(cu-u, cv-v)
			d := math.Max(0, 1-dist/radius)
			if d <= 0 {
				continue
			}
			drop := 0.5 - math.Cos(d*math.Pi)*0.5
			f.write[f.idx(x, y)].height += float32(drop * strength)
		}
	}
}

// normalsPass rebuilds the stored horizontal normal components from forward
// height differences: two tangent vectors carry the height deltas as their
// vertical component, and their cross product is normalized.
func normalsPass(f *waterField) {
	n := f.n
	delta := float32(1.0 / float64(n))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			c := f.read[f.idx(x, y)]
			hx := f.at(x+1, y).height - c.height
			hz := f.at(x, y+1).height - c.height
			// cross((0, hz, delta), (delta, hx, 0))
			nx := -delta * hx
			ny := delta * delta
			nz := -delta * hz
			invLen := float32(1 / math.Sqrt(float64(nx*nx+ny*ny+nz*nz)))
			f.write[f.idx(x, y)] = cell{
				height:  c.height,
				vel:     c.vel,
				normalX: nx * invLen,
				normalZ: nz * invLen,
			}
		}
	}
}

// columnVolume approximates the water column height a sphere at center
// occupies above the cell at (wx, wz). The falloff keeps the column near the
// full diameter under the body and drops it sharply past the rim.
func columnVolume(wx, wz float64, center mgl32.Vec3, radius float64) float64 {
	dx := wx - float64(center.X())
	dz := wz - float64(center.Z())
	t := math.Sqrt(dx*dx+dz*dz) / radius
	falloff := math.Exp(-math.Pow(1.5*t, 6))
	cy := float64(center.Y())
	yMin := math.Min(0, cy-falloff)
	yMax := math.Min(math.Max(0, cy+falloff), yMin+2*falloff)
	return (yMax - yMin) * displacementScale
}

// displaceBodyPass applies the signed height correction for a body that
// moved between two centers: water rises over the vacated footprint and
// falls under the newly occupied one. Heuristic, not exact displacement.
func displaceBodyPass(f *waterField, oldCenter, newCenter mgl32.Vec3, radius float32) {
	copy(f.write, f.read)
	r := float64(radius)
	if r <= 0 {
		return
	}
	n := f.n
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			u, v := f.cellUV(x, y)
			wx, wz := uvToWorld(u, v)
			delta := columnVolume(wx, wz, oldCenter, r) - columnVolume(wx, wz, newCenter, r)
			if delta != 0 {
				f.write[f.idx(x, y)].height += float32(delta)
			}
		}
	}
}
