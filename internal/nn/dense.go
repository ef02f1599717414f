package nn

import (
	"fmt"

	"github.com/axon-rl/axon/internal/tensor"
)

// Dense is a fully connected layer computing y = x @ W + b, optionally
// followed by a fused activation.
//
//   - x: [batch, in_features]
//   - W: [in_features, out_features], Xavier-initialized
//   - b: [out_features], zero-initialized, optional
//   - y: [batch, out_features]
type Dense[B tensor.Backend] struct {
	inFeatures  int
	outFeatures int
	weight      *Parameter[B]
	bias        *Parameter[B] // nil without bias
	activation  Module[B]     // nil for a linear layer
	backend     B
}

// NewDense creates a Dense layer. A nil activation leaves the layer linear.
func NewDense[B tensor.Backend](inFeatures, outFeatures int, useBias bool, activation Module[B], backend B) *Dense[B] {
	if inFeatures <= 0 || outFeatures <= 0 {
		panic(fmt.Sprintf("dense: invalid features in=%d, out=%d", inFeatures, outFeatures))
	}

	weight := NewParameter("weight", Xavier(inFeatures, outFeatures, tensor.Shape{inFeatures, outFeatures}, backend))

	var bias *Parameter[B]
	if useBias {
		bias = NewParameter("bias", Zeros(tensor.Shape{outFeatures}, backend))
	}

	return &Dense[B]{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      weight,
		bias:        bias,
		activation:  activation,
		backend:     backend,
	}
}

// Forward computes y = activation(x @ W + b).
//
// Input shape: [batch, in_features]. Output: [batch, out_features].
func (d *Dense[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	shape := input.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("dense: expected 2D input [batch, features], got shape %v", shape))
	}
	if shape[1] != d.inFeatures {
		panic(fmt.Sprintf("dense: expected input with %d features, got %d", d.inFeatures, shape[1]))
	}

	output := input.MatMul(d.weight.Tensor())

	if d.bias != nil {
		// [out] broadcasts against [batch, out].
		output = output.Add(d.bias.Tensor())
	}

	if d.activation != nil {
		output = d.activation.Forward(output)
	}
	return output
}

// Parameters returns the layer's learnable parameters.
func (d *Dense[B]) Parameters() []*Parameter[B] {
	params := []*Parameter[B]{d.weight}
	if d.bias != nil {
		params = append(params, d.bias)
	}
	return params
}

// InFeatures returns the number of input features.
func (d *Dense[B]) InFeatures() int {
	return d.inFeatures
}

// OutFeatures returns the number of output features.
func (d *Dense[B]) OutFeatures() int {
	return d.outFeatures
}

// Activation returns the fused activation module, or nil for linear.
func (d *Dense[B]) Activation() Module[B] {
	return d.activation
}

// Bias returns the bias parameter, or nil without bias.
func (d *Dense[B]) Bias() *Parameter[B] {
	return d.bias
}

// Weight returns the weight parameter.
func (d *Dense[B]) Weight() *Parameter[B] {
	return d.weight
}

// String describes the layer.
func (d *Dense[B]) String() string {
	return fmt.Sprintf("Dense(in=%d, out=%d, bias=%v)", d.inFeatures, d.outFeatures, d.bias != nil)
}
