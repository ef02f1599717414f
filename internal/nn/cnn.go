package nn

import (
	"fmt"

	"github.com/axon-rl/axon/internal/tensor"
)

// CNNConfig declares a stack of 2D convolutions over channels-last feature
// maps. Padding is fixed to "same". All layers share the activation, bias
// and layer-norm settings.
type CNNConfig struct {
	// InputDims is the incoming feature-map shape: width, height,
	// channels. All three must be > 0.
	InputDims [3]int `json:"input_dims"`

	// FilterSpecs lists the convolution layers in order. Must not be
	// empty.
	FilterSpecs []FilterSpec `json:"filter_specs"`

	// UseLayerNorm inserts a layer-normalization step, taken jointly over
	// channel and both spatial axes, between each convolution's output
	// and its activation.
	UseLayerNorm bool `json:"use_layernorm"`

	// Activation is applied after each convolution. Defaults to "relu".
	Activation Activation `json:"activation"`

	// UseBias applies to every convolution. Defaults to true.
	UseBias *bool `json:"use_bias"`
}

// CNN is a block of N Conv2D layers built from a CNNConfig.
//
// There is no flattening and no dense layer at the end: the output stays a
// 3D feature map. Inputs are cast to float32 before the first layer
// regardless of the caller-supplied precision.
//
// Forward input shape: [batch, W, H, C]. Output: [batch, W', H', C_out].
type CNN[B tensor.Backend] struct {
	pipeline   *Sequential[B]
	inputDims  [3]int
	outputDims [3]int
	backend    B
}

// NewCNN validates the config and builds the convolution pipeline.
func NewCNN[B tensor.Backend](cfg CNNConfig, backend B) (*CNN[B], error) {
	if err := validateInputDims(cfg.InputDims); err != nil {
		return nil, err
	}
	if len(cfg.FilterSpecs) == 0 {
		return nil, fmt.Errorf("%w: filter_specs must not be empty", ErrInvalidConfig)
	}
	for i, spec := range cfg.FilterSpecs {
		if err := spec.validate(i); err != nil {
			return nil, err
		}
	}

	act, err := resolve[B](cfg.Activation.or("relu"))
	if err != nil {
		return nil, fmt.Errorf("activation: %w", err)
	}

	useBias := true
	if cfg.UseBias != nil {
		useBias = *cfg.UseBias
	}

	pipeline := NewSequential[B]()
	w, h, c := cfg.InputDims[0], cfg.InputDims[1], cfg.InputDims[2]

	for _, spec := range cfg.FilterSpecs {
		if cfg.UseLayerNorm {
			// Activation moves behind the normalization step, which is
			// taken jointly over the three trailing axes of the map.
			conv := NewConv2D(c, spec, useBias, nil, backend)
			pipeline.Add(conv)
			w, h = conv.OutputDims(w, h)
			c = spec.Filters
			pipeline.Add(NewLayerNorm(tensor.Shape{w, h, c}, normEpsilon, backend))
			if act != nil {
				pipeline.Add(act)
			}
		} else {
			conv := NewConv2D(c, spec, useBias, act, backend)
			pipeline.Add(conv)
			w, h = conv.OutputDims(w, h)
			c = spec.Filters
		}
	}

	return &CNN[B]{
		pipeline:   pipeline,
		inputDims:  cfg.InputDims,
		outputDims: [3]int{w, h, c},
		backend:    backend,
	}, nil
}

// Forward evaluates the block. The input is cast to float32 first.
//
// Input: [batch, W, H, C]. Output: [batch, W', H', C_out].
func (c *CNN[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return c.pipeline.Forward(castFloat32(input, c.backend))
}

// Parameters returns the learnable parameters of all layers in order.
func (c *CNN[B]) Parameters() []*Parameter[B] {
	return c.pipeline.Parameters()
}

// Pipeline returns the block's layer pipeline for inspection.
func (c *CNN[B]) Pipeline() *Sequential[B] {
	return c.pipeline
}

// InputDims returns the expected input map dims (width, height, channels).
func (c *CNN[B]) InputDims() [3]int {
	return c.inputDims
}

// OutputDims returns the output map dims (width, height, channels).
func (c *CNN[B]) OutputDims() [3]int {
	return c.outputDims
}

// validateInputDims checks a conv block's 3D input shape.
func validateInputDims(dims [3]int) error {
	for i, d := range dims {
		if d <= 0 {
			return fmt.Errorf("%w: input_dims[%d] must be > 0, got %d", ErrInvalidConfig, i, d)
		}
	}
	return nil
}

// castFloat32 pins the pipeline input to float32, independent of the
// precision of the buffer the caller wrapped.
func castFloat32[B tensor.Backend](x *tensor.Tensor[float32, B], backend B) *tensor.Tensor[float32, B] {
	if x.DType() == tensor.Float32 {
		return x
	}
	return tensor.New[float32, B](backend.Cast(x.Raw(), tensor.Float32), backend)
}
