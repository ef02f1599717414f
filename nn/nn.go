package nn

import (
	"github.com/axon-rl/axon/internal/nn"
	"github.com/axon-rl/axon/internal/tensor"
)

// ErrInvalidConfig marks a block configuration rejected at construction.
var ErrInvalidConfig = nn.ErrInvalidConfig

// Module is the base interface for all neural network components.
type Module[B tensor.Backend] = nn.Module[B]

// Parameter represents a learnable tensor, trained externally.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// NewParameter creates a parameter wrapping an initialized tensor.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}

// Blocks

// MLPConfig declares a multi-layer perceptron block.
type MLPConfig = nn.MLPConfig

// MLP is a block of N dense layers.
type MLP[B tensor.Backend] = nn.MLP[B]

// NewMLP validates the config and builds the dense pipeline.
//
// Example:
//
//	mlp, err := nn.NewMLP(nn.MLPConfig{
//	    InputDim:   4,
//	    HiddenDims: []int{8, 8},
//	    OutputDim:  2,
//	}, backend)
func NewMLP[B tensor.Backend](cfg MLPConfig, backend B) (*MLP[B], error) {
	return nn.NewMLP[B](cfg, backend)
}

// CNNConfig declares a stack of 2D convolutions.
type CNNConfig = nn.CNNConfig

// CNN is a block of N Conv2D layers over channels-last feature maps.
type CNN[B tensor.Backend] = nn.CNN[B]

// NewCNN validates the config and builds the convolution pipeline.
//
// Example:
//
//	cnn, err := nn.NewCNN(nn.CNNConfig{
//	    InputDims: [3]int{84, 84, 4},
//	    FilterSpecs: []nn.FilterSpec{
//	        {Filters: 16, Kernel: nn.Square(8), Stride: nn.Square(4)},
//	        {Filters: 32, Kernel: nn.Square(4), Stride: nn.Square(2)},
//	    },
//	}, backend)
func NewCNN[B tensor.Backend](cfg CNNConfig, backend B) (*CNN[B], error) {
	return nn.NewCNN[B](cfg, backend)
}

// CNNTransposeConfig declares a stack of 2D transposed convolutions.
type CNNTransposeConfig = nn.CNNTransposeConfig

// CNNTranspose is the decoder-side mirror of CNN.
type CNNTranspose[B tensor.Backend] = nn.CNNTranspose[B]

// NewCNNTranspose validates the config and builds the pipeline.
func NewCNNTranspose[B tensor.Backend](cfg CNNTransposeConfig, backend B) (*CNNTranspose[B], error) {
	return nn.NewCNNTranspose[B](cfg, backend)
}

// Declarative specs

// Dim2 is a per-axis (width, height) pair for kernels and strides.
type Dim2 = nn.Dim2

// Square returns a Dim2 with both axes set to n.
func Square(n int) Dim2 {
	return nn.Square(n)
}

// FilterSpec declares one convolutional layer of a conv block.
type FilterSpec = nn.FilterSpec

// Activation selects an activation function by name or as a direct
// element-wise function.
type Activation = nn.Activation

// Act selects an activation by name.
func Act(name string) Activation {
	return nn.Act(name)
}

// ActFn selects a custom element-wise activation function.
func ActFn(fn func(float32) float32) Activation {
	return nn.ActFn(fn)
}

// BoolPtr returns a pointer to v, for optional config bools.
func BoolPtr(v bool) *bool {
	return nn.BoolPtr(v)
}

// Layer primitives

// Dense is a fully connected layer.
type Dense[B tensor.Backend] = nn.Dense[B]

// NewDense creates a Dense layer. A nil activation leaves it linear.
func NewDense[B tensor.Backend](inFeatures, outFeatures int, useBias bool, activation Module[B], backend B) *Dense[B] {
	return nn.NewDense(inFeatures, outFeatures, useBias, activation, backend)
}

// Conv2D is a 2D convolutional layer with "same" padding.
type Conv2D[B tensor.Backend] = nn.Conv2D[B]

// NewConv2D creates a Conv2D layer from a filter spec.
func NewConv2D[B tensor.Backend](inChannels int, spec FilterSpec, useBias bool, activation Module[B], backend B) *Conv2D[B] {
	return nn.NewConv2D(inChannels, spec, useBias, activation, backend)
}

// ConvTranspose2D is the learned upsampling counterpart of Conv2D.
type ConvTranspose2D[B tensor.Backend] = nn.ConvTranspose2D[B]

// NewConvTranspose2D creates a ConvTranspose2D layer from a filter spec.
func NewConvTranspose2D[B tensor.Backend](inChannels int, spec FilterSpec, useBias bool, activation Module[B], backend B) *ConvTranspose2D[B] {
	return nn.NewConvTranspose2D(inChannels, spec, useBias, activation, backend)
}

// LayerNorm normalizes activations over configured trailing axes.
type LayerNorm[B tensor.Backend] = nn.LayerNorm[B]

// NewLayerNorm creates a LayerNorm over the given trailing-axes shape.
func NewLayerNorm[B tensor.Backend](normalizedShape tensor.Shape, epsilon float32, backend B) *LayerNorm[B] {
	return nn.NewLayerNorm(normalizedShape, epsilon, backend)
}

// Sequential chains modules into an ordered pipeline.
type Sequential[B tensor.Backend] = nn.Sequential[B]

// NewSequential creates a Sequential from the given modules.
func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return nn.NewSequential(modules...)
}

// Activations

// ReLU applies f(x) = max(0, x) element-wise.
type ReLU[B tensor.Backend] = nn.ReLU[B]

// NewReLU creates a ReLU activation module.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return nn.NewReLU[B]()
}

// Sigmoid applies f(x) = 1 / (1 + exp(-x)) element-wise.
type Sigmoid[B tensor.Backend] = nn.Sigmoid[B]

// NewSigmoid creates a Sigmoid activation module.
func NewSigmoid[B tensor.Backend]() *Sigmoid[B] {
	return nn.NewSigmoid[B]()
}

// Tanh applies the hyperbolic tangent element-wise.
type Tanh[B tensor.Backend] = nn.Tanh[B]

// NewTanh creates a Tanh activation module.
func NewTanh[B tensor.Backend]() *Tanh[B] {
	return nn.NewTanh[B]()
}

// SiLU applies f(x) = x * sigmoid(x) element-wise.
type SiLU[B tensor.Backend] = nn.SiLU[B]

// NewSiLU creates a SiLU (swish) activation module.
func NewSiLU[B tensor.Backend]() *SiLU[B] {
	return nn.NewSiLU[B]()
}

// Initializers

// Xavier returns a Glorot-uniform initialized tensor.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Xavier(fanIn, fanOut, shape, backend)
}
