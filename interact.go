package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// disturber receives the injections the controller produces. The engine
// satisfies it; tests substitute a recorder.
type disturber interface {
	AddDisturbance(u, v, radius, strength float64)
}

// pointerCommandKind tags the discrete pointer events applied at the start of
// each frame. Host callbacks never mutate interaction state directly; they
// are folded into command values so nothing changes mid-pipeline.
type pointerCommandKind int

const (
	pointerDown pointerCommandKind = iota
	pointerMove
	pointerUp
	pointerLeave
)

// pointerCommand is one queued pointer event with its position on the water
// plane.
type pointerCommand struct {
	kind   pointerCommandKind
	worldX float64
	worldZ float64
}

// controller is the gesture state machine: Idle, Dragging-body, or
// Disturbing. While lastU/lastV are valid, pointer moves compose a trail of
// injections instead of single stamps.
type controller struct {
	strength float64
	radius   float64

	draggingBody bool
	lastU, lastV float64
	hasLast      bool
}

func newController() *controller {
	return &controller{strength: interactStrength, radius: dropRadius}
}

// apply advances the state machine for one pointer command, issuing
// injections and body updates as side effects.
func (c *controller) apply(cmd pointerCommand, dst disturber, body *sphere) {
	switch cmd.kind {
	case pointerDown:
		c.pointerDown(cmd, dst, body)
	case pointerMove:
		c.pointerMove(cmd, dst, body)
	case pointerUp, pointerLeave:
		c.release(body)
	}
}

func (c *controller) pointerDown(cmd pointerCommand, dst disturber, body *sphere) {
	if body.contains(cmd.worldX, cmd.worldZ) {
		c.draggingBody = true
		c.hasLast = false
		body.dragging = true
		body.velocity = mgl32.Vec3{}
		return
	}
	u, v := worldToUV(cmd.worldX, cmd.worldZ)
	if !validUV(u, v) {
		c.hasLast = false
		return
	}
	dst.AddDisturbance(u, v, c.radius, c.strength)
	c.lastU, c.lastV = u, v
	c.hasLast = true
}

func (c *controller) pointerMove(cmd pointerCommand, dst disturber, body *sphere) {
	if c.draggingBody {
		body.dragTo(cmd.worldX, cmd.worldZ)
		return
	}
	if body.contains(cmd.worldX, cmd.worldZ) {
		// No ripples directly under the hovered body.
		c.hasLast = false
		return
	}
	u, v := worldToUV(cmd.worldX, cmd.worldZ)
	if !validUV(u, v) {
		c.hasLast = false
		return
	}
	if !c.hasLast {
		return
	}
	c.injectTrail(u, v, dst)
	c.lastU, c.lastV = u, v
}

// injectTrail subdivides the segment from the last injected position into
// evenly spaced stamps. Strength grows with pointer speed up to the
// configured ceiling, so slow moves leave a faint wake and fast ones a
// full-strength one.
func (c *controller) injectTrail(u, v float64, dst disturber) {
	dist := math.Hypot(u-c.lastU, v-c.lastV)
	if dist == 0 {
		return
	}
	strength := math.Min(c.strength, trailFloor+dist*c.strength*trailBoost)
	// The tiny bias keeps float noise on an exact multiple of the spacing
	// from spilling into an extra segment.
	count := int(math.Ceil(dist/trailSpacing - 1e-9))
	for i := 1; i <= count; i++ {
		t := float64(i) / float64(count)
		dst.AddDisturbance(c.lastU+(u-c.lastU)*t, c.lastV+(v-c.lastV)*t, c.radius, strength)
	}
}

func (c *controller) release(body *sphere) {
	if c.draggingBody {
		c.draggingBody = false
		body.dragging = false
		body.velocity = mgl32.Vec3{}
	}
	c.hasLast = false
}

// validUV reports whether the coordinates land inside the fluid domain.
func validUV(u, v float64) bool {
	return u >= 0 && u <= 1 && v >= 0 && v <= 1
}
