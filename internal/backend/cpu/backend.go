// Package cpu implements the CPU compute backend. Element-wise kernels are
// pure Go; the matrix-multiplication cores (MatMul and the im2col/col2im
// convolution paths) are delegated to gonum BLAS.
package cpu

import (
	"github.com/axon-rl/axon/internal/tensor"
)

// CPUBackend implements tensor.Backend on the host CPU.
type CPUBackend struct {
	device tensor.Device
}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{device: tensor.CPU}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}
