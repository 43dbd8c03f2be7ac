package main

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/crazy3lf/colorconv"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const paletteSize = 256

type vec3 struct {
	x, y, z float64
}

// Lighting for the top-down view.
var lightDir = normalize3(0.35, 0.85, 0.4)

type floatColor struct {
	r, g, b float64
}

// surfaceShader turns the grid state into the RGBA frame uploaded to the
// screen. Shading is row-parallel; the simulation itself never is.
type surfaceShader struct {
	n       int
	frame   []byte
	palette [paletteSize]floatColor
	workers int
}

func newSurfaceShader(n int) *surfaceShader {
	s := &surfaceShader{
		n:       n,
		frame:   make([]byte, n*n*4),
		workers: runtime.NumCPU(),
	}
	for i := range s.palette {
		v := 0.25 + 0.75*float64(i)/float64(paletteSize-1)
		r, g, b, _ := colorconv.HSVToRGB(207, 0.62, v)
		s.palette[i] = floatColor{float64(r) / 255, float64(g) / 255, float64(b) / 255}
	}
	return s
}

// shade fills the frame buffer from the current grid, caustics, and body
// state.
func (s *surfaceShader) shade(src heightField, floor *causticsMap, body *sphere) {
	var wg sync.WaitGroup
	wg.Add(s.workers)
	for w := 0; w < s.workers; w++ {
		go func(offset int) {
			defer wg.Done()
			for y := offset; y < s.n; y += s.workers {
				s.shadeRow(y, src, floor)
			}
		}(w)
	}
	wg.Wait()
	s.drawBody(body)
}

func (s *surfaceShader) shadeRow(y int, src heightField, floor *causticsMap) {
	for x := 0; x < s.n; x++ {
		nx, nz := src.NormalAt(x, y)
		ny := math.Sqrt(math.Max(0, 1-float64(nx*nx+nz*nz)))
		diffuse := math.Max(0, float64(nx)*lightDir.x+ny*lightDir.y+float64(nz)*lightDir.z)

		h := float64(src.HeightAt(x, y))
		depth := clampF(1+h*1.5, 0.55, 1.45)

		water := s.palette[int(clampF(diffuse, 0, 1)*(paletteSize-1))]
		caustic := clampF(float64(floor.at(x, y)), 0, 3)
		floorShade := (0.35 + 0.4*caustic) * depth

		// Floor seen through the water, tinted by the surface color.
		r := water.r*0.6 + floorShade*water.r*0.55
		g := water.g*0.6 + floorShade*water.g*0.55
		b := water.b*0.6 + floorShade*0.45

		base := (y*s.n + x) * 4
		s.frame[base] = byte(clampF(r, 0, 1) * 255)
		s.frame[base+1] = byte(clampF(g, 0, 1) * 255)
		s.frame[base+2] = byte(clampF(b, 0, 1) * 255)
		s.frame[base+3] = 255
	}
}

// drawBody overlays the sphere as a lit disc at its projected position,
// tinted cooler once the center sinks below the rest surface.
func (s *surfaceShader) drawBody(body *sphere) {
	u, v := worldToUV(float64(body.position.X()), float64(body.position.Z()))
	cx := u * float64(s.n)
	cy := v * float64(s.n)
	r := float64(body.radius) / poolSize * float64(s.n)
	sub := float64(body.submergedRatio())

	x0 := int(cx - r)
	x1 := int(cx + r)
	y0 := int(cy - r)
	y1 := int(cy + r)
	for y := y0; y <= y1; y++ {
		if y < 0 || y >= s.n {
			continue
		}
		for x := x0; x <= x1; x++ {
			if x < 0 || x >= s.n {
				continue
			}
			dx := (float64(x) + 0.5 - cx) / r
			dy := (float64(y) + 0.5 - cy) / r
			d2 := dx*dx + dy*dy
			if d2 > 1 {
				continue
			}
			ny := math.Sqrt(1 - d2)
			shade := math.Max(0.15, dx*lightDir.x+ny*lightDir.y-dy*lightDir.z)
			grey := 0.55 + 0.45*shade
			base := (y*s.n + x) * 4
			s.frame[base] = byte(clampF(grey*(1-0.35*sub), 0, 1) * 255)
			s.frame[base+1] = byte(clampF(grey*(1-0.2*sub), 0, 1) * 255)
			s.frame[base+2] = byte(clampF(grey, 0, 1) * 255)
			s.frame[base+3] = 255
		}
	}
}

// Draw projects the caustics, shades the surface, and uploads the frame.
func (g *Game) Draw(screen *ebiten.Image) {
	g.caustics.project(g.eng)
	g.shader.shade(g.eng, g.caustics, g.body)
	screen.WritePixels(g.shader.frame)

	if *debugFlag {
		msg := fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nSim: %.2f ms\nGravity: %v",
			ebiten.ActualFPS(), ebiten.ActualTPS(),
			g.lastSimDuration.Seconds()*1000, g.body.gravityEnabled)
		ebitenutil.DebugPrint(screen, msg)
	}
}

// Layout reports the logical screen size used by Ebiten.
func (g *Game) Layout(_, _ int) (int, int) { return g.n, g.n }

func normalize3(x, y, z float64) vec3 {
	l := math.Sqrt(x*x + y*y + z*z)
	return vec3{x / l, y / l, z / l}
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
