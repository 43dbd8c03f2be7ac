//go:build opencl

package main

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/jgillich/go-opencl/cl"
)

// clWaveSolver runs batches of wave update steps on an OpenCL device. Each
// grid cell travels as a float4 (height, velocity, normalX, normalZ); the
// kernel applies the same clamped-neighbor recurrence as waveUpdatePass and
// passes the normal channels through.
type clWaveSolver struct {
	context    *cl.Context
	queue      *cl.CommandQueue
	program    *cl.Program
	kernel     *cl.Kernel
	srcBuf     *cl.MemObject
	dstBuf     *cl.MemObject
	n          int
	deviceName string
}

const waveKernelSource = `__kernel void wave_step(
    const int n,
    const float damping,
    __global const float4* src,
    __global float4* dst)
{
    int idx = get_global_id(0);
    int size = n * n;
    if (idx >= size) {
        return;
    }
    int x = idx % n;
    int y = idx / n;
    int xm = max(x - 1, 0);
    int xp = min(x + 1, n - 1);
    int ym = max(y - 1, 0);
    int yp = min(y + 1, n - 1);
    float4 c = src[idx];
    float avg = (src[y * n + xm].x + src[y * n + xp].x +
                 src[ym * n + x].x + src[yp * n + x].x) * 0.25f;
    float vel = (c.y + 2.0f * (avg - c.x)) * damping;
    dst[idx] = (float4)(c.x + vel, vel, c.z, c.w);
}`

// newCLWaveSolver picks a GPU device (falling back to CPU devices), builds
// the kernel, and allocates the two device-side grid buffers.
func newCLWaveSolver(n int) (*clWaveSolver, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		msg := "querying OpenCL platforms"
		if strings.Contains(err.Error(), "-1001") {
			msg += ": no ICD loader reported any platforms; install OpenCL drivers and verify with `clinfo`"
		}
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	if len(platforms) == 0 {
		return nil, errors.New("no OpenCL platforms available")
	}
	var device *cl.Device
	for _, p := range platforms {
		devices, derr := p.GetDevices(cl.DeviceTypeGPU)
		if derr != nil && derr != cl.ErrDeviceNotFound {
			continue
		}
		if len(devices) > 0 {
			device = devices[0]
			break
		}
	}
	if device == nil {
		for _, p := range platforms {
			devices, derr := p.GetDevices(cl.DeviceTypeCPU)
			if derr != nil && derr != cl.ErrDeviceNotFound {
				continue
			}
			if len(devices) > 0 {
				device = devices[0]
				break
			}
		}
	}
	if device == nil {
		return nil, errors.New("no suitable OpenCL devices found")
	}

	context, err := cl.CreateContext([]*cl.Device{device})
	if err != nil {
		return nil, fmt.Errorf("creating OpenCL context: %w", err)
	}
	queue, err := context.CreateCommandQueue(device, 0)
	if err != nil {
		context.Release()
		return nil, fmt.Errorf("creating OpenCL command queue: %w", err)
	}
	program, err := context.CreateProgramWithSource([]string{waveKernelSource})
	if err != nil {
		queue.Release()
		context.Release()
		return nil, fmt.Errorf("creating OpenCL program: %w", err)
	}
	if err := program.BuildProgram([]*cl.Device{device}, ""); err != nil {
		program.Release()
		queue.Release()
		context.Release()
		if buildErr, ok := err.(cl.BuildError); ok {
			return nil, fmt.Errorf("building OpenCL program: %s", string(buildErr))
		}
		return nil, fmt.Errorf("building OpenCL program: %w", err)
	}
	kernel, err := program.CreateKernel("wave_step")
	if err != nil {
		program.Release()
		queue.Release()
		context.Release()
		return nil, fmt.Errorf("creating OpenCL kernel: %w", err)
	}
	byteSize := n * n * int(unsafe.Sizeof(cell{}))
	srcBuf, err := context.CreateEmptyBuffer(cl.MemReadWrite, byteSize)
	if err != nil {
		kernel.Release()
		program.Release()
		queue.Release()
		context.Release()
		return nil, fmt.Errorf("allocating source buffer: %w", err)
	}
	dstBuf, err := context.CreateEmptyBuffer(cl.MemReadWrite, byteSize)
	if err != nil {
		srcBuf.Release()
		kernel.Release()
		program.Release()
		queue.Release()
		context.Release()
		return nil, fmt.Errorf("allocating destination buffer: %w", err)
	}

	return &clWaveSolver{
		context:    context,
		queue:      queue,
		program:    program,
		kernel:     kernel,
		srcBuf:     srcBuf,
		dstBuf:     dstBuf,
		n:          n,
		deviceName: device.Name(),
	}, nil
}

// Step uploads the current read buffer, runs the requested number of wave
// updates ping-ponging between the device buffers, and publishes the result
// through the field's write buffer and swap, matching the CPU pass exactly.
func (s *clWaveSolver) Step(f *waterField, damping float32, steps int) error {
	if steps <= 0 {
		return nil
	}
	size := s.n * s.n
	if f.n != s.n || len(f.read) != size || len(f.write) != size {
		return errFieldBufferSize
	}
	byteLen := size * int(unsafe.Sizeof(cell{}))
	if _, err := s.queue.EnqueueWriteBuffer(s.srcBuf, false, 0, byteLen, unsafe.Pointer(&f.read[0]), nil); err != nil {
		return fmt.Errorf("writing grid buffer: %w", err)
	}
	global := []int{size}
	for step := 0; step < steps; step++ {
		if err := s.kernel.SetArgs(int32(s.n), damping, s.srcBuf, s.dstBuf); err != nil {
			return fmt.Errorf("setting kernel arguments: %w", err)
		}
		if _, err := s.queue.EnqueueNDRangeKernel(s.kernel, nil, global, nil, nil); err != nil {
			return fmt.Errorf("enqueueing kernel: %w", err)
		}
		s.srcBuf, s.dstBuf = s.dstBuf, s.srcBuf
	}
	if _, err := s.queue.EnqueueReadBuffer(s.srcBuf, true, 0, byteLen, unsafe.Pointer(&f.write[0]), nil); err != nil {
		return fmt.Errorf("reading grid buffer: %w", err)
	}
	f.swap()
	return nil
}

// Close releases all device resources.
func (s *clWaveSolver) Close() {
	if s.dstBuf != nil {
		s.dstBuf.Release()
		s.dstBuf = nil
	}
	if s.srcBuf != nil {
		s.srcBuf.Release()
		s.srcBuf = nil
	}
	if s.kernel != nil {
		s.kernel.Release()
		s.kernel = nil
	}
	if s.program != nil {
		s.program.Release()
		s.program = nil
	}
	if s.queue != nil {
		s.queue.Release()
		s.queue = nil
	}
	if s.context != nil {
		s.context.Release()
		s.context = nil
	}
}

// DeviceName reports the selected OpenCL device.
func (s *clWaveSolver) DeviceName() string {
	return s.deviceName
}
