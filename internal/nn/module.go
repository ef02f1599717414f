// Package nn implements the neural-network building blocks of the Axon
// library.
//
// The package has two levels. The lower level is a set of layer primitives
// in the usual framework vocabulary:
//   - Module interface: base interface for all components
//   - Parameter: learnable tensors, trained by an external framework
//   - Dense, Conv2D, ConvTranspose2D, LayerNorm, activations
//   - Sequential: ordered pipeline container
//
// The upper level is the configurable blocks RL models are assembled from:
// MLP, CNN and CNNTranspose. Each consumes a declarative config exactly
// once at construction, producing a frozen pipeline of primitives; the only
// operation afterwards is forward evaluation.
package nn

import (
	"github.com/axon-rl/axon/internal/tensor"
)

// Module is the base interface for all neural network components.
//
// Modules compose into pipelines:
//
//	model := nn.NewSequential(
//	    nn.NewDense(4, 8, true, nil, backend),
//	    nn.NewReLU[B](),
//	)
//
// Type parameter B must satisfy the tensor.Backend interface.
type Module[B tensor.Backend] interface {
	// Forward computes the module's output for the given input tensor.
	// Input shape requirements are per module; shape violations panic.
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// Parameters returns all learnable parameters of this module,
	// including those of nested modules. Modules without learnable state
	// return nil.
	Parameters() []*Parameter[B]
}
