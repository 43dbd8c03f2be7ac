package main

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

type injection struct {
	u, v, radius, strength float64
}

// injectionRecorder captures controller output instead of running passes.
type injectionRecorder struct {
	calls []injection
}

func (r *injectionRecorder) AddDisturbance(u, v, radius, strength float64) {
	r.calls = append(r.calls, injection{u, v, radius, strength})
}

// farBody returns a sphere parked outside the pool so it never intercepts
// pointer input.
func farBody() *sphere {
	s := newSphere(sphereRadius)
	s.position = mgl32.Vec3{10, 0, 10}
	s.prevPosition = s.position
	return s
}

func moveAtUV(u, v float64) pointerCommand {
	wx, wz := uvToWorld(u, v)
	return pointerCommand{kind: pointerMove, worldX: wx, worldZ: wz}
}

func downAtUV(u, v float64) pointerCommand {
	wx, wz := uvToWorld(u, v)
	return pointerCommand{kind: pointerDown, worldX: wx, worldZ: wz}
}

func TestPointerDownInjectsSingleDrop(t *testing.T) {
	c := newController()
	rec := &injectionRecorder{}
	body := farBody()

	c.apply(downAtUV(0.3, 0.7), rec, body)
	require.Len(t, rec.calls, 1)
	require.InDelta(t, 0.3, rec.calls[0].u, 1e-9)
	require.InDelta(t, 0.7, rec.calls[0].v, 1e-9)
	require.Equal(t, dropRadius, rec.calls[0].radius)
	require.Equal(t, interactStrength, rec.calls[0].strength)
	require.True(t, c.hasLast)
}

func TestTrailSubdivision(t *testing.T) {
	c := newController()
	rec := &injectionRecorder{}
	body := farBody()

	c.apply(downAtUV(0.1, 0.1), rec, body)
	rec.calls = nil
	c.apply(moveAtUV(0.1, 0.25), rec, body)

	require.Len(t, rec.calls, 10, "a 0.15 segment subdivides into ceil(0.15/0.015) drops")

	dist := 0.15
	wantStrength := math.Min(interactStrength, trailFloor+dist*interactStrength*trailBoost)
	for i, call := range rec.calls {
		wantV := 0.1 + dist*float64(i+1)/10
		require.InDelta(t, 0.1, call.u, 1e-9)
		require.InDelta(t, wantV, call.v, 1e-9)
		require.InDelta(t, wantStrength, call.strength, 1e-9)
		require.Equal(t, dropRadius, call.radius)
	}
	require.InDelta(t, 0.25, c.lastV, 1e-9)
}

func TestSlowTrailUsesReducedStrength(t *testing.T) {
	c := newController()
	rec := &injectionRecorder{}
	body := farBody()

	c.apply(downAtUV(0.5, 0.5), rec, body)
	rec.calls = nil
	c.apply(moveAtUV(0.5, 0.505), rec, body)

	require.Len(t, rec.calls, 1)
	want := trailFloor + 0.005*interactStrength*trailBoost
	require.Less(t, want, interactStrength)
	require.InDelta(t, want, rec.calls[0].strength, 1e-9)
}

func TestMoveWithoutDownDoesNotInject(t *testing.T) {
	c := newController()
	rec := &injectionRecorder{}
	body := farBody()

	c.apply(moveAtUV(0.4, 0.4), rec, body)
	require.Empty(t, rec.calls)
	require.False(t, c.hasLast)
}

func TestPointerUpEndsTrail(t *testing.T) {
	c := newController()
	rec := &injectionRecorder{}
	body := farBody()

	c.apply(downAtUV(0.2, 0.2), rec, body)
	c.apply(pointerCommand{kind: pointerUp}, rec, body)
	rec.calls = nil
	c.apply(moveAtUV(0.4, 0.4), rec, body)
	require.Empty(t, rec.calls)
}

func TestOutOfDomainMoveResetsSession(t *testing.T) {
	c := newController()
	rec := &injectionRecorder{}
	body := farBody()

	c.apply(downAtUV(0.9, 0.9), rec, body)
	require.True(t, c.hasLast)

	// Past the pool edge: u maps above 1.
	c.apply(pointerCommand{kind: pointerMove, worldX: poolHalf + 0.5, worldZ: 0}, rec, body)
	require.False(t, c.hasLast)

	rec.calls = nil
	c.apply(moveAtUV(0.5, 0.5), rec, body)
	require.Empty(t, rec.calls, "session must restart with a pointer-down")
}

func TestDownOnBodyStartsDragWithoutRipples(t *testing.T) {
	c := newController()
	rec := &injectionRecorder{}
	body := newSphere(sphereRadius)
	body.position = mgl32.Vec3{0, 0.1, 0}
	body.velocity = mgl32.Vec3{0, -0.05, 0}

	c.apply(pointerCommand{kind: pointerDown, worldX: 0.01, worldZ: 0.01}, rec, body)
	require.True(t, c.draggingBody)
	require.True(t, body.dragging)
	require.Equal(t, mgl32.Vec3{}, body.velocity)
	require.Empty(t, rec.calls)

	c.apply(pointerCommand{kind: pointerMove, worldX: 0.3, worldZ: -0.3}, rec, body)
	require.InDelta(t, 0.3, float64(body.position.X()), 1e-6)
	require.InDelta(t, -0.3, float64(body.position.Z()), 1e-6)
	require.Empty(t, rec.calls)

	c.apply(pointerCommand{kind: pointerUp}, rec, body)
	require.False(t, c.draggingBody)
	require.False(t, body.dragging)
}

func TestHoverOverBodySuppressesTrail(t *testing.T) {
	c := newController()
	rec := &injectionRecorder{}
	body := newSphere(sphereRadius)
	body.position = mgl32.Vec3{0, 0, 0}

	c.apply(downAtUV(0.1, 0.5), rec, body)
	require.True(t, c.hasLast)
	rec.calls = nil

	// Straight over the body's footprint.
	c.apply(pointerCommand{kind: pointerMove, worldX: 0, worldZ: 0}, rec, body)
	require.Empty(t, rec.calls)
	require.False(t, c.hasLast)
}

func TestPointerLeaveReleasesEverything(t *testing.T) {
	c := newController()
	rec := &injectionRecorder{}
	body := newSphere(sphereRadius)
	body.position = mgl32.Vec3{0, 0.1, 0}

	c.apply(pointerCommand{kind: pointerDown, worldX: 0, worldZ: 0}, rec, body)
	require.True(t, c.draggingBody)

	c.apply(pointerCommand{kind: pointerLeave}, rec, body)
	require.False(t, c.draggingBody)
	require.False(t, body.dragging)
	require.Equal(t, mgl32.Vec3{}, body.velocity)
}
