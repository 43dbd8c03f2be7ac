package main

import "math"

// heightField is the read-only view external consumers get of the water
// grid. The engine satisfies it.
type heightField interface {
	Resolution() int
	HeightAt(x, y int) float32
	NormalAt(x, y int) (float32, float32)
}

// refractionRatio is the air-to-water index ratio used when bending light
// through the surface.
const refractionRatio = 0.75

// causticsMap accumulates the light-focusing pattern the surface projects
// onto the pool floor. One ray per surface cell is refracted through the
// reconstructed normal and splatted where it hits the floor plane, so a calm
// surface produces uniform intensity 1 everywhere.
type causticsMap struct {
	n         int
	intensity []float32
}

func newCausticsMap(n int) *causticsMap {
	return &causticsMap{n: n, intensity: make([]float32, n*n)}
}

// project recomputes the floor intensity from the current grid state.
func (c *causticsMap) project(src heightField) {
	for i := range c.intensity {
		c.intensity[i] = 0
	}
	n := src.Resolution()
	if n != c.n {
		return
	}
	inv := 1.0 / float64(n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			nx, nz := src.NormalAt(x, y)
			rx, ry, rz := refractDown(float64(nx), float64(nz))
			if ry >= 0 {
				continue
			}
			u := (float64(x) + 0.5) * inv
			v := (float64(y) + 0.5) * inv
			wx, wz := uvToWorld(u, v)
			// March from the surface point down to the floor plane.
			h := float64(src.HeightAt(x, y))
			span := (h + poolHeight) / -ry
			hu, hv := worldToUV(wx+rx*span, wz+rz*span)
			fx := int(hu * float64(n))
			fy := int(hv * float64(n))
			if fx < 0 || fx >= n || fy < 0 || fy >= n {
				continue
			}
			c.intensity[fy*n+fx]++
		}
	}
}

// at reads the accumulated floor intensity for a cell.
func (c *causticsMap) at(x, y int) float32 {
	if x < 0 || x >= c.n || y < 0 || y >= c.n {
		return 0
	}
	return c.intensity[y*c.n+x]
}

// refractDown bends a straight-down light ray through a surface normal with
// the given horizontal components. Returns the refracted direction; total
// internal reflection degenerates to a grazing ray that the caller drops.
func refractDown(nx, nz float64) (float64, float64, float64) {
	ny := math.Sqrt(math.Max(0, 1-nx*nx-nz*nz))
	// Incident direction d = (0,-1,0); cos(theta_i) = -d.n = ny.
	k := 1 - refractionRatio*refractionRatio*(1-ny*ny)
	if k < 0 {
		return nx, 0, nz
	}
	scale := refractionRatio*ny - math.Sqrt(k)
	rx := scale * nx
	ry := -refractionRatio + scale*ny
	rz := scale * nz
	return rx, ry, rz
}
