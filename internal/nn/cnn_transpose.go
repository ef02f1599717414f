package nn

import (
	"fmt"

	"github.com/axon-rl/axon/internal/tensor"
)

// CNNTransposeConfig declares a stack of 2D transposed convolutions, the
// decoder-side mirror of CNNConfig. Padding is fixed to "same".
//
// The last layer in FilterSpecs is special-cased by position: it is never
// activated and never layer-normed, whatever the shared settings say, and
// it always carries a bias, because without a normalization step it needs
// its own additive term.
type CNNTransposeConfig struct {
	// InputDims is the incoming feature-map shape: width, height,
	// channels. All three must be > 0.
	InputDims [3]int `json:"input_dims"`

	// FilterSpecs lists the transposed-convolution layers in order.
	// Must not be empty.
	FilterSpecs []FilterSpec `json:"filter_specs"`

	// UseLayerNorm inserts a layer-normalization step, taken jointly over
	// channel and both spatial axes, between each non-final layer's
	// output and its activation.
	UseLayerNorm bool `json:"use_layernorm"`

	// Activation is applied after each non-final layer.
	// Defaults to "relu".
	Activation Activation `json:"activation"`

	// UseBias applies to every layer; the final layer has bias regardless.
	// Defaults to true.
	UseBias *bool `json:"use_bias"`
}

// CNNTranspose is a block of N ConvTranspose2D layers built from a
// CNNTransposeConfig.
//
// As with CNN there is no reshaping at either end: input and output are 3D
// feature maps, and inputs are cast to float32 before the first layer.
//
// Forward input shape: [batch, W, H, C]. Output: [batch, W', H', C_out].
type CNNTranspose[B tensor.Backend] struct {
	pipeline   *Sequential[B]
	inputDims  [3]int
	outputDims [3]int
	backend    B
}

// NewCNNTranspose validates the config and builds the pipeline.
func NewCNNTranspose[B tensor.Backend](cfg CNNTransposeConfig, backend B) (*CNNTranspose[B], error) {
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

	for i, spec := range cfg.FilterSpecs {
		final := i == len(cfg.FilterSpecs)-1

		// The final layer is never activated, and always biased.
		layerAct := act
		if cfg.UseLayerNorm || final {
			layerAct = nil
		}
		conv := NewConvTranspose2D(c, spec, useBias || final, layerAct, backend)
		pipeline.Add(conv)
		w, h = conv.OutputDims(w, h)
		c = spec.Filters

		if cfg.UseLayerNorm && !final {
			pipeline.Add(NewLayerNorm(tensor.Shape{w, h, c}, normEpsilon, backend))
			if act != nil {
				pipeline.Add(act)
			}
		}
	}

	return &CNNTranspose[B]{
		pipeline:   pipeline,
		inputDims:  cfg.InputDims,
		outputDims: [3]int{w, h, c},
		backend:    backend,
	}, nil
}

// Forward evaluates the block. The input is cast to float32 first.
//
// Input: [batch, W, H, C]. Output: [batch, W', H', C_out].
func (c *CNNTranspose[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return c.pipeline.Forward(castFloat32(input, c.backend))
}

// Parameters returns the learnable parameters of all layers in order.
func (c *CNNTranspose[B]) Parameters() []*Parameter[B] {
	return c.pipeline.Parameters()
}

// Pipeline returns the block's layer pipeline for inspection.
func (c *CNNTranspose[B]) Pipeline() *Sequential[B] {
	return c.pipeline
}

// InputDims returns the expected input map dims (width, height, channels).
func (c *CNNTranspose[B]) InputDims() [3]int {
	return c.inputDims
}

// OutputDims returns the output map dims (width, height, channels).
func (c *CNNTranspose[B]) OutputDims() [3]int {
	return c.outputDims
}
