package main

// Simulation and rendering configuration constants. These values define the
// grid resolution, pool geometry, wave behavior, and the tuning coefficients
// for the sphere and pointer interaction.
const (
	defaultResolution = 128
	windowScale       = 5
	defaultTPS        = 60.0

	// Pool geometry: the water plane spans [-poolHalf, poolHalf] in x and z
	// at rest height y=0, with the floor at y = -poolHeight.
	poolSize   = 2.0
	poolHalf   = poolSize / 2
	poolHeight = 1.0

	// Wave equation tuning. Damping must stay inside (0,1); values at or
	// above 1 make the recurrence diverge.
	defaultDamping = 0.995
	maxDamping     = 0.99999

	// Sphere rigid body. Accelerations are in world units per tick squared,
	// drag factors are per-tick velocity multipliers. Keep the radius small
	// relative to poolSize: the displacement heuristic exaggerates columns
	// when the body footprint approaches the grid spacing.
	sphereRadius    = 0.25
	gravityPerTick  = -0.002
	buoyancyPerTick = 0.005
	airDrag         = 0.999
	waterDrag       = 0.92
	bounceFactor    = 0.3
	dragCeilingY    = poolHeight
	bodyMoveEpsilon = 1e-5
	sphereStartX    = -0.4
	sphereStartY    = 0.6
	sphereStartZ    = -0.2

	// displacementScale converts an occupied column height into a water
	// height correction. Empirical; changing it changes the visual volume
	// the sphere appears to push around.
	displacementScale = 0.1

	// Pointer interaction.
	dropRadius       = 0.03
	interactStrength = 0.08
	trailSpacing     = 0.015
	trailBoost       = 8.0
	trailFloor       = 0.01

	// Ambient wind.
	windRadius    = 0.06
	windStrength  = 0.004
	windWaveSpeed = 0.05
)
