package main

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, n int) *engine {
	t.Helper()
	e, err := newEngine(n, defaultDamping)
	require.NoError(t, err)
	return e
}

func TestEngineRejectsTinyGrid(t *testing.T) {
	_, err := newEngine(2, defaultDamping)
	require.Error(t, err)
}

func TestRestInvariant(t *testing.T) {
	e := newTestEngine(t, 64)
	for i := 0; i < 200; i++ {
		e.Step()
	}
	for _, c := range e.Cells() {
		require.Zero(t, c.height)
		require.Zero(t, c.vel)
	}
}

func TestDampingZeroKillsVelocity(t *testing.T) {
	e := newTestEngine(t, 64)
	e.AddDisturbance(0.5, 0.5, 0.1, 0.5)
	e.Step()
	nonzero := false
	for _, c := range e.Cells() {
		if c.vel != 0 {
			nonzero = true
			break
		}
	}
	require.True(t, nonzero, "expected the drop to produce velocity")

	e.SetDamping(0)
	e.Step()
	for _, c := range e.Cells() {
		require.Zero(t, c.vel)
	}
}

func TestSetDampingClamps(t *testing.T) {
	e := newTestEngine(t, 16)
	e.SetDamping(1.5)
	require.Equal(t, float32(maxDamping), e.Damping())
	e.SetDamping(-0.2)
	require.Equal(t, float32(0), e.Damping())
	e.SetDamping(0.9)
	require.Equal(t, float32(0.9), e.Damping())
}

func TestOutOfBoundsInjectionIgnored(t *testing.T) {
	e := newTestEngine(t, 64)
	e.AddDisturbance(1.5, 0.5, 0.1, 0.5)
	e.AddDisturbance(0.5, -0.1, 0.1, 0.5)
	for _, c := range e.Cells() {
		require.Zero(t, c.height)
	}
}

func TestInjectionLocality(t *testing.T) {
	e := newTestEngine(t, 128)
	const radius = 0.05
	e.AddDisturbance(0.5, 0.5, radius, 0.1)

	n := e.Resolution()
	center := e.HeightAt(n/2, n/2)
	require.Greater(t, center, float32(0))

	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			u, v := e.grid.cellUV(x, y)
			dist := math.Hypot(u-0.5, v-0.5)
			h := e.HeightAt(x, y)
			if dist >= radius {
				require.Zerof(t, h, "cell (%d,%d) outside the drop radius moved", x, y)
			}
		}
	}
}

func TestNoOpBodyMoveLeavesGridUntouched(t *testing.T) {
	e := newTestEngine(t, 64)
	e.AddDisturbance(0.4, 0.6, 0.1, 0.3)
	e.Step()

	before := make([]cell, len(e.Cells()))
	copy(before, e.Cells())

	center := mgl32.Vec3{0.1, 0.05, -0.2}
	e.MoveBody(center, center, sphereRadius)
	require.Equal(t, before, e.Cells())
}

func TestBodyMoveApproximatelyConservesVolume(t *testing.T) {
	e := newTestEngine(t, 128)
	oldCenter := mgl32.Vec3{-0.2, 0, 0}
	newCenter := mgl32.Vec3{-0.1, 0, 0}
	e.MoveBody(oldCenter, newCenter, sphereRadius)

	var sum, sumAbs float64
	for _, c := range e.Cells() {
		sum += float64(c.height)
		sumAbs += math.Abs(float64(c.height))
	}
	require.Greater(t, sumAbs, 0.0, "displacement should perturb the surface")
	require.InDelta(t, 0.0, sum, sumAbs*0.05, "rise and fall should roughly cancel")
}

func TestFrameOrderingProducesCenteredRipple(t *testing.T) {
	e := newTestEngine(t, 128)
	const radius = 0.1
	e.AddDisturbance(0.5, 0.5, radius, 0.2)
	e.Step()
	e.ReconstructNormals()

	n := e.Resolution()
	cx := n / 2
	offset := int(math.Ceil(radius * float64(n)))
	require.Greater(t, e.HeightAt(cx, cx), e.HeightAt(cx+offset, cx))

	flat := true
	for y := cx - offset; y <= cx+offset && flat; y++ {
		for x := cx - offset; x <= cx+offset; x++ {
			nx, nz := e.NormalAt(x, y)
			if nx != 0 || nz != 0 {
				flat = false
				break
			}
		}
	}
	require.False(t, flat, "normals around the drop should tilt")
}

func TestEdgeCellsStayFinite(t *testing.T) {
	e := newTestEngine(t, 32)
	e.AddDisturbance(0.02, 0.02, 0.1, 0.5)
	for i := 0; i < 100; i++ {
		e.Step()
	}
	for _, c := range e.Cells() {
		require.False(t, math.IsNaN(float64(c.height)))
		require.False(t, math.IsInf(float64(c.height), 0))
	}
}

func TestResetReturnsToRest(t *testing.T) {
	e := newTestEngine(t, 32)
	e.AddDisturbance(0.5, 0.5, 0.1, 0.5)
	e.Step()
	e.Reset()
	for _, c := range e.Cells() {
		require.Equal(t, cell{}, c)
	}
}
