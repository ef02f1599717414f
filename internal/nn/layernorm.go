package nn

import (
	"github.com/axon-rl/axon/internal/tensor"
)

// normEpsilon is the numerical-stability constant the blocks pass to their
// normalization steps. 1e-5 rather than the keras default of 1e-3, so
// outputs stay numerically aligned with the torch renditions of the same
// blocks.
const normEpsilon = 1e-5

// LayerNorm normalizes activations to zero mean and unit variance over the
// trailing axes covered by normalizedShape, then applies a learnable gain
// and offset of that same shape:
//
//	y = gain * (x - mean) / sqrt(var + eps) + offset
//
// A dense feature vector normalizes over its last axis
// (normalizedShape = {features}); a channels-last feature map normalizes
// jointly over channel and both spatial axes
// (normalizedShape = {W, H, C}).
type LayerNorm[B tensor.Backend] struct {
	gain            *Parameter[B]
	offset          *Parameter[B]
	normalizedShape tensor.Shape
	epsilon         float32
	backend         B
}

// NewLayerNorm creates a LayerNorm over the given trailing-axes shape.
// Gain is initialized to ones, offset to zeros.
func NewLayerNorm[B tensor.Backend](normalizedShape tensor.Shape, epsilon float32, backend B) *LayerNorm[B] {
	return &LayerNorm[B]{
		gain:            NewParameter("gain", Ones(normalizedShape, backend)),
		offset:          NewParameter("offset", Zeros(normalizedShape, backend)),
		normalizedShape: normalizedShape.Clone(),
		epsilon:         epsilon,
		backend:         backend,
	}
}

// Forward normalizes the input over the configured trailing axes.
func (l *LayerNorm[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	raw := l.backend.LayerNorm(input.Raw(), l.gain.Tensor().Raw(), l.offset.Tensor().Raw(),
		len(l.normalizedShape), l.epsilon)
	return tensor.New[float32, B](raw, l.backend)
}

// Parameters returns the learnable gain and offset.
func (l *LayerNorm[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{l.gain, l.offset}
}

// NormalizedShape returns the trailing-axes shape being normalized.
func (l *LayerNorm[B]) NormalizedShape() tensor.Shape {
	return l.normalizedShape
}

// Epsilon returns the numerical-stability constant.
func (l *LayerNorm[B]) Epsilon() float32 {
	return l.epsilon
}
