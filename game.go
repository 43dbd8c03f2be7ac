package main

import (
	"log"
	"time"
)

// Game runs the frame pipeline: pointer commands and wind issue injections,
// the sphere integrates and folds its displacement in, then the wave update
// and normal reconstruction complete the grid state the renderer consumes.
type Game struct {
	n    int
	eng  *engine
	body *sphere
	ctrl *controller
	gust *wind

	caustics *causticsMap
	shader   *surfaceShader
	gpu      *clWaveSolver

	commands      []pointerCommand
	pointerInside bool

	lastTick        time.Time
	lastSimDuration time.Duration
}

// newGame constructs the engine and its collaborators. A grid allocation
// failure propagates as a startup error.
func newGame() (*Game, error) {
	n := *resolutionFlag
	eng, err := newEngine(n, *dampingFlag)
	if err != nil {
		return nil, err
	}
	g := &Game{
		n:        n,
		eng:      eng,
		body:     newSphere(sphereRadius),
		ctrl:     newController(),
		gust:     newWind(*windFlag),
		caustics: newCausticsMap(n),
		shader:   newSurfaceShader(n),
	}
	if *openCLFlag {
		if solver, err := newCLWaveSolver(n); err != nil {
			log.Printf("OpenCL solver unavailable, using CPU passes: %v", err)
		} else {
			log.Printf("OpenCL solver enabled (device: %s)", solver.DeviceName())
			g.gpu = solver
		}
	}
	return g, nil
}

// Update advances one frame of the ordered pipeline. Every pass is a full,
// blocking grid computation; nothing below runs concurrently.
func (g *Game) Update() error {
	now := time.Now()
	if g.lastTick.IsZero() {
		g.lastTick = now
	}
	dt := now.Sub(g.lastTick).Seconds() * defaultTPS
	g.lastTick = now
	if dt <= 0 || dt > defaultTPS/4 {
		dt = 1
	}

	g.handleKeys()
	for _, cmd := range g.pollPointer() {
		g.ctrl.apply(cmd, g.eng, g.body)
	}

	g.gust.blow(dt, g.eng)

	simStart := time.Now()
	g.body.integrate(float32(dt))
	if moved := g.body.position.Sub(g.body.prevPosition); moved.Len() > bodyMoveEpsilon {
		g.eng.MoveBody(g.body.prevPosition, g.body.position, g.body.radius)
	}
	g.body.prevPosition = g.body.position

	g.stepWave()
	g.eng.ReconstructNormals()
	g.lastSimDuration = time.Since(simStart)
	return nil
}

// stepWave runs the wave update on the GPU when available, falling back to
// the CPU pass permanently after any solver error.
func (g *Game) stepWave() {
	if g.gpu != nil {
		if err := g.gpu.Step(g.eng.grid, g.eng.Damping(), 1); err != nil {
			log.Printf("OpenCL step failed, reverting to CPU passes: %v", err)
			g.gpu.Close()
			g.gpu = nil
		} else {
			return
		}
	}
	g.eng.Step()
}
