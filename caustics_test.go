package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalmSurfaceGivesUniformCaustics(t *testing.T) {
	e := newTestEngine(t, 64)
	e.ReconstructNormals()

	c := newCausticsMap(e.Resolution())
	c.project(e)
	for i, v := range c.intensity {
		require.Equalf(t, float32(1), v, "cell %d should receive exactly its own ray", i)
	}
}

func TestRippleFocusesCaustics(t *testing.T) {
	e := newTestEngine(t, 64)
	e.AddDisturbance(0.5, 0.5, 0.15, 0.8)
	e.Step()
	e.ReconstructNormals()

	c := newCausticsMap(e.Resolution())
	c.project(e)

	uniform := true
	for _, v := range c.intensity {
		if v != 1 {
			uniform = false
			break
		}
	}
	require.False(t, uniform, "a disturbed surface should redistribute light")
}

func TestCausticsResolutionMismatchIsIgnored(t *testing.T) {
	e := newTestEngine(t, 32)
	c := newCausticsMap(16)
	c.project(e)
	for _, v := range c.intensity {
		require.Zero(t, v)
	}
}
