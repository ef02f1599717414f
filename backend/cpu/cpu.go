package cpu

import (
	internalcpu "github.com/axon-rl/axon/internal/backend/cpu"
	"github.com/axon-rl/axon/tensor"
)

// Backend is the CPU backend implementation.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
//
// Example:
//
//	backend := cpu.New()
//	mlp, err := nn.NewMLP(cfg, backend)
func New() *Backend {
	return internalcpu.New()
}
