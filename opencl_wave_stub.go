//go:build !opencl

package main

import "errors"

type clWaveSolver struct{}

func newCLWaveSolver(n int) (*clWaveSolver, error) {
	return nil, errors.New("OpenCL support is not enabled; rebuild with -tags opencl")
}

func (s *clWaveSolver) Step(f *waterField, damping float32, steps int) error {
	return errors.New("OpenCL solver unavailable")
}

func (s *clWaveSolver) Close() {}

func (s *clWaveSolver) DeviceName() string { return "" }
