package main

import "flag"

// Command-line flags that control optional rendering, simulation, and runtime
// behavior.
var (
	// resolutionFlag selects the square grid resolution.
	resolutionFlag = flag.Int("resolution", defaultResolution, "water grid resolution (cells per side)")

	// dampingFlag overrides the wave damping factor; values outside (0,1) are clamped.
	dampingFlag = flag.Float64("damping", defaultDamping, "wave damping factor (0-1)")

	// windFlag toggles the ambient wind disturbances.
	windFlag = flag.Bool("wind", true, "enable ambient wind ripples")

	// openCLFlag enables the GPU wave solver when built with -tags opencl.
	openCLFlag = flag.Bool("opencl", false, "use the OpenCL wave solver (requires a build with -tags opencl)")

	// debugFlag enables the FPS and simulation overlay.
	debugFlag = flag.Bool("debug", false, "show FPS and simulation timing overlay")

	// recordDefaultPGO captures a CPU profile into default.pgo while the pool runs.
	recordDefaultPGO = flag.Bool("record-default-pgo", false, "capture default.pgo while the simulation runs")
)
