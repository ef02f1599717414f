package nn

import (
	"fmt"

	"github.com/axon-rl/axon/internal/tensor"
)

// Conv2D is a 2D convolutional layer over channels-last feature maps with
// fixed "same" padding: output spatial size equals ceil(input/stride) per
// axis, so stride 1 preserves spatial dimensions.
//
//   - input:  [N, W, H, C_in]
//   - weight: [K_w, K_h, C_in, filters], Xavier-initialized
//   - bias:   [filters], zero-initialized, optional
//   - output: [N, ceil(W/S_w), ceil(H/S_h), filters]
//
// An optional fused activation is applied to the layer output.
type Conv2D[B tensor.Backend] struct {
	inChannels int
	filters    int
	kernel     Dim2
	stride     Dim2

	weight     *Parameter[B]
	bias       *Parameter[B] // nil without bias
	activation Module[B]     // nil for a linear layer
	backend    B
}

// NewConv2D creates a Conv2D layer from a filter spec. The spec must be
// valid; block constructors validate before building.
func NewConv2D[B tensor.Backend](inChannels int, spec FilterSpec, useBias bool, activation Module[B], backend B) *Conv2D[B] {
	if inChannels <= 0 {
		panic(fmt.Sprintf("conv2d: invalid input channels %d", inChannels))
	}
	if err := spec.validate(0); err != nil {
		panic(fmt.Sprintf("conv2d: %v", err))
	}

	shape := tensor.Shape{spec.Kernel.W, spec.Kernel.H, inChannels, spec.Filters}
	fanIn := spec.Kernel.W * spec.Kernel.H * inChannels
	fanOut := spec.Kernel.W * spec.Kernel.H * spec.Filters
	weight := NewParameter("weight", Xavier(fanIn, fanOut, shape, backend))

	var bias *Parameter[B]
	if useBias {
		bias = NewParameter("bias", Zeros(tensor.Shape{spec.Filters}, backend))
	}

	return &Conv2D[B]{
		inChannels: inChannels,
		filters:    spec.Filters,
		kernel:     spec.Kernel,
		stride:     spec.Stride,
		weight:     weight,
		bias:       bias,
		activation: activation,
		backend:    backend,
	}
}

// Forward convolves the input feature map.
//
// Input: [N, W, H, C_in]. Output: [N, W', H', filters].
func (c *Conv2D[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	shape := input.Shape()
	if len(shape) != 4 {
		panic(fmt.Sprintf("conv2d: expected 4D input [N,W,H,C], got shape %v", shape))
	}
	if shape[3] != c.inChannels {
		panic(fmt.Sprintf("conv2d: input channels %d != expected %d", shape[3], c.inChannels))
	}

	params := tensor.ConvParams{
		StrideW: c.stride.W,
		StrideH: c.stride.H,
		PadW:    samePadding(shape[1], c.kernel.W, c.stride.W),
		PadH:    samePadding(shape[2], c.kernel.H, c.stride.H),
	}

	raw := c.backend.Conv2D(input.Raw(), c.weight.Tensor().Raw(), params)
	output := tensor.New[float32, B](raw, c.backend)

	if c.bias != nil {
		// [filters] broadcasts against [N, W', H', filters].
		output = output.Add(c.bias.Tensor())
	}

	if c.activation != nil {
		output = c.activation.Forward(output)
	}
	return output
}

// samePadding computes the (leading, trailing) zero padding that makes
// out = ceil(in/stride), with the extra unit on the trailing side when the
// total is odd.
func samePadding(in, kernel, stride int) [2]int {
	out := (in + stride - 1) / stride
	total := max((out-1)*stride+kernel-in, 0)
	return [2]int{total / 2, total - total/2}
}

// OutputDims returns the output spatial dims for the given input dims.
func (c *Conv2D[B]) OutputDims(inW, inH int) (int, int) {
	return (inW + c.stride.W - 1) / c.stride.W, (inH + c.stride.H - 1) / c.stride.H
}

// Parameters returns the layer's learnable parameters.
func (c *Conv2D[B]) Parameters() []*Parameter[B] {
	params := []*Parameter[B]{c.weight}
	if c.bias != nil {
		params = append(params, c.bias)
	}
	return params
}

// Filters returns the number of output filters.
func (c *Conv2D[B]) Filters() int {
	return c.filters
}

// Kernel returns the kernel size.
func (c *Conv2D[B]) Kernel() Dim2 {
	return c.kernel
}

// Stride returns the stride.
func (c *Conv2D[B]) Stride() Dim2 {
	return c.stride
}

// Activation returns the fused activation module, or nil for linear.
func (c *Conv2D[B]) Activation() Module[B] {
	return c.activation
}

// Bias returns the bias parameter, or nil without bias.
func (c *Conv2D[B]) Bias() *Parameter[B] {
	return c.bias
}

// String describes the layer.
func (c *Conv2D[B]) String() string {
	return fmt.Sprintf("Conv2D(in=%d, filters=%d, kernel=%dx%d, stride=%dx%d, bias=%v)",
		c.inChannels, c.filters, c.kernel.W, c.kernel.H, c.stride.W, c.stride.H, c.bias != nil)
}
