package main

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// pollPointer converts the current ebiten pointer state into the frame's
// command queue. Commands are produced once per tick, before any pass runs,
// so host input can never mutate interaction state mid-pipeline.
func (g *Game) pollPointer() []pointerCommand {
	px, py := ebiten.CursorPosition()
	inside := px >= 0 && px < g.n && py >= 0 && py < g.n
	if !inside {
		if g.pointerInside {
			g.pointerInside = false
			return append(g.commands[:0], pointerCommand{kind: pointerLeave})
		}
		return g.commands[:0]
	}
	g.pointerInside = true

	// The view is top-down, so the pointer ray intersects the water plane at
	// the cell under the cursor.
	u := (float64(px) + 0.5) / float64(g.n)
	v := (float64(py) + 0.5) / float64(g.n)
	wx, wz := uvToWorld(u, v)

	cmds := g.commands[:0]
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		cmds = append(cmds, pointerCommand{kind: pointerDown, worldX: wx, worldZ: wz})
	} else {
		cmds = append(cmds, pointerCommand{kind: pointerMove, worldX: wx, worldZ: wz})
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		cmds = append(cmds, pointerCommand{kind: pointerUp, worldX: wx, worldZ: wz})
	}
	g.commands = cmds
	return cmds
}

// handleKeys processes the runtime toggles.
func (g *Game) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.body.gravityEnabled = !g.body.gravityEnabled
		if !g.body.gravityEnabled {
			g.body.velocity = mgl32.Vec3{}
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.eng.Reset()
		g.body.position = mgl32.Vec3{sphereStartX, sphereStartY, sphereStartZ}
		g.body.prevPosition = g.body.position
		g.body.velocity = mgl32.Vec3{}
	}
}
