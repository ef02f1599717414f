package nn

import (
	"fmt"

	"github.com/axon-rl/axon/internal/tensor"
)

// ConvTranspose2D is the learned upsampling counterpart of Conv2D, with the
// matching "same" padding policy: output spatial size is input*stride per
// axis.
//
//   - input:  [N, W, H, C_in]
//   - weight: [K_w, K_h, C_in, filters], Xavier-initialized
//   - bias:   [filters], zero-initialized, optional
//   - output: [N, W*S_w, H*S_h, filters]
type ConvTranspose2D[B tensor.Backend] struct {
	inChannels int
	filters    int
	kernel     Dim2
	stride     Dim2

	weight     *Parameter[B]
	bias       *Parameter[B] // nil without bias
	activation Module[B]     // nil for a linear layer
	backend    B
}

// NewConvTranspose2D creates a ConvTranspose2D layer from a filter spec.
func NewConvTranspose2D[B tensor.Backend](inChannels int, spec FilterSpec, useBias bool, activation Module[B], backend B) *ConvTranspose2D[B] {
	if inChannels <= 0 {
		panic(fmt.Sprintf("conv_transpose2d: invalid input channels %d", inChannels))
	}
	if err := spec.validate(0); err != nil {
		panic(fmt.Sprintf("conv_transpose2d: %v", err))
	}

	shape := tensor.Shape{spec.Kernel.W, spec.Kernel.H, inChannels, spec.Filters}
	fanIn := spec.Kernel.W * spec.Kernel.H * inChannels
	fanOut := spec.Kernel.W * spec.Kernel.H * spec.Filters
	weight := NewParameter("weight", Xavier(fanIn, fanOut, shape, backend))

	var bias *Parameter[B]
	if useBias {
		bias = NewParameter("bias", Zeros(tensor.Shape{spec.Filters}, backend))
	}

	return &ConvTranspose2D[B]{
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

// Forward applies the transposed convolution.
//
// Input: [N, W, H, C_in]. Output: [N, W*S_w, H*S_h, filters].
func (c *ConvTranspose2D[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	shape := input.Shape()
	if len(shape) != 4 {
		panic(fmt.Sprintf("conv_transpose2d: expected 4D input [N,W,H,C], got shape %v", shape))
	}
	if shape[3] != c.inChannels {
		panic(fmt.Sprintf("conv_transpose2d: input channels %d != expected %d", shape[3], c.inChannels))
	}

	params := tensor.ConvParams{
		StrideW: c.stride.W,
		StrideH: c.stride.H,
		PadW:    sameTransposePadding(c.kernel.W, c.stride.W),
		PadH:    sameTransposePadding(c.kernel.H, c.stride.H),
		OutW:    shape[1] * c.stride.W,
		OutH:    shape[2] * c.stride.H,
	}

	raw := c.backend.ConvTranspose2D(input.Raw(), c.weight.Tensor().Raw(), params)
	output := tensor.New[float32, B](raw, c.backend)

	if c.bias != nil {
		output = output.Add(c.bias.Tensor())
	}

	if c.activation != nil {
		output = c.activation.Forward(output)
	}
	return output
}

// sameTransposePadding is the crop that inverts samePadding: the adjoint of
// a "same"-padded convolution from [in*stride] down to [in] crops
// max(kernel-stride, 0) in total, leading side first.
func sameTransposePadding(kernel, stride int) [2]int {
	total := max(kernel-stride, 0)
	return [2]int{total / 2, total - total/2}
}

// OutputDims returns the output spatial dims for the given input dims.
func (c *ConvTranspose2D[B]) OutputDims(inW, inH int) (int, int) {
	return inW * c.stride.W, inH * c.stride.H
}

// Parameters returns the layer's learnable parameters.
func (c *ConvTranspose2D[B]) Parameters() []*Parameter[B] {
	params := []*Parameter[B]{c.weight}
	if c.bias != nil {
		params = append(params, c.bias)
	}
	return params
}

// Filters returns the number of output filters.
func (c *ConvTranspose2D[B]) Filters() int {
	return c.filters
}

// Kernel returns the kernel size.
func (c *ConvTranspose2D[B]) Kernel() Dim2 {
	return c.kernel
}

// Stride returns the stride.
func (c *ConvTranspose2D[B]) Stride() Dim2 {
	return c.stride
}

// Activation returns the fused activation module, or nil for linear.
func (c *ConvTranspose2D[B]) Activation() Module[B] {
	return c.activation
}

// Bias returns the bias parameter, or nil without bias.
func (c *ConvTranspose2D[B]) Bias() *Parameter[B] {
	return c.bias
}

// String describes the layer.
func (c *ConvTranspose2D[B]) String() string {
	return fmt.Sprintf("ConvTranspose2D(in=%d, filters=%d, kernel=%dx%d, stride=%dx%d, bias=%v)",
		c.inChannels, c.filters, c.kernel.W, c.kernel.H, c.stride.W, c.stride.H, c.bias != nil)
}
