package nn

import (
	"fmt"

	"github.com/axon-rl/axon/internal/tensor"
)

// MLPConfig declares a multi-layer perceptron block.
//
// All hidden layers share the activation, bias and layer-norm settings.
// When OutputDim is set, one extra output layer is appended with its own
// activation; the output layer never receives layer normalization.
type MLPConfig struct {
	// InputDim is the input feature width. Must be > 0.
	InputDim int `json:"input_dim"`

	// HiddenDims lists the hidden layer widths, in order. May be empty,
	// in which case OutputDim alone defines a single-layer network.
	HiddenDims []int `json:"hidden_dims"`

	// HiddenUseLayerNorm inserts a layer-normalization step between each
	// hidden layer's output and its activation.
	HiddenUseLayerNorm bool `json:"hidden_use_layernorm"`

	// HiddenActivation is applied after each hidden layer.
	// Defaults to "relu".
	HiddenActivation Activation `json:"hidden_activation"`

	// OutputDim, when > 0, appends a final output layer of that width.
	// Zero means no dedicated output layer: the block's output width is
	// the last hidden width.
	OutputDim int `json:"output_dim"`

	// OutputActivation is applied by the output layer, if any.
	// Defaults to "linear".
	OutputActivation Activation `json:"output_activation"`

	// UseBias applies to every dense layer, including the output layer.
	// Defaults to true.
	UseBias *bool `json:"use_bias"`
}

// MLP is a block of N dense layers built from an MLPConfig.
//
// Forward input shape: [batch, input_dim]. Output: [batch, output width].
type MLP[B tensor.Backend] struct {
	pipeline  *Sequential[B]
	inputDim  int
	outputDim int
}

// NewMLP validates the config and builds the dense pipeline. The config is
// consumed exactly once; the returned block is immutable apart from its
// externally trained parameters.
func NewMLP[B tensor.Backend](cfg MLPConfig, backend B) (*MLP[B], error) {
	if cfg.InputDim <= 0 {
		return nil, fmt.Errorf("%w: input_dim must be > 0, got %d", ErrInvalidConfig, cfg.InputDim)
	}
	if len(cfg.HiddenDims) == 0 && cfg.OutputDim <= 0 {
		return nil, fmt.Errorf("%w: no hidden_dims and no output_dim: the block would have no layers", ErrInvalidConfig)
	}
	if cfg.OutputDim < 0 {
		return nil, fmt.Errorf("%w: output_dim must be >= 0, got %d", ErrInvalidConfig, cfg.OutputDim)
	}
	for i, dim := range cfg.HiddenDims {
		if dim <= 0 {
			return nil, fmt.Errorf("%w: hidden_dims[%d] must be > 0, got %d", ErrInvalidConfig, i, dim)
		}
	}

	hiddenAct, err := resolve[B](cfg.HiddenActivation.or("relu"))
	if err != nil {
		return nil, fmt.Errorf("hidden_activation: %w", err)
	}
	outputAct, err := resolve[B](cfg.OutputActivation.or("linear"))
	if err != nil {
		return nil, fmt.Errorf("output_activation: %w", err)
	}

	useBias := true
	if cfg.UseBias != nil {
		useBias = *cfg.UseBias
	}

	pipeline := NewSequential[B]()
	inDim := cfg.InputDim

	for _, dim := range cfg.HiddenDims {
		if cfg.HiddenUseLayerNorm {
			// Activation moves behind the normalization step.
			pipeline.Add(NewDense(inDim, dim, useBias, nil, backend))
			pipeline.Add(NewLayerNorm(tensor.Shape{dim}, normEpsilon, backend))
			if hiddenAct != nil {
				pipeline.Add(hiddenAct)
			}
		} else {
			pipeline.Add(NewDense(inDim, dim, useBias, hiddenAct, backend))
		}
		inDim = dim
	}

	outputDim := inDim
	if cfg.OutputDim > 0 {
		// The output layer is never layer-normed.
		pipeline.Add(NewDense(inDim, cfg.OutputDim, useBias, outputAct, backend))
		outputDim = cfg.OutputDim
	}

	return &MLP[B]{
		pipeline:  pipeline,
		inputDim:  cfg.InputDim,
		outputDim: outputDim,
	}, nil
}

// Forward evaluates the block.
//
// Input: [batch, input_dim]. Output: [batch, OutputDim()].
func (m *MLP[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return m.pipeline.Forward(input)
}

// Parameters returns the learnable parameters of all layers in order.
func (m *MLP[B]) Parameters() []*Parameter[B] {
	return m.pipeline.Parameters()
}

// Pipeline returns the block's layer pipeline for inspection.
func (m *MLP[B]) Pipeline() *Sequential[B] {
	return m.pipeline
}

// InputDim returns the expected input feature width.
func (m *MLP[B]) InputDim() int {
	return m.inputDim
}

// OutputDim returns the block's output feature width.
func (m *MLP[B]) OutputDim() int {
	return m.outputDim
}
