package nn

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/axon-rl/axon/internal/tensor"
)

// Activation selects an activation function for a block, either by name or
// as a direct element-wise function. When Fn is set it wins over Name.
// The zero value means "linear" (identity).
//
// Recognized names: "linear", "relu", "tanh", "sigmoid", "silu" (alias
// "swish"). Unknown names are rejected at block construction.
//
// In JSON configs an activation is a plain string:
//
//	{"activation": "relu"}
type Activation struct {
	Name string
	Fn   func(float32) float32
}

// Act selects an activation by name.
func Act(name string) Activation {
	return Activation{Name: name}
}

// ActFn selects a custom element-wise activation function.
func ActFn(fn func(float32) float32) Activation {
	return Activation{Fn: fn}
}

// UnmarshalJSON decodes an activation from its JSON string form.
func (a *Activation) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &a.Name)
}

// MarshalJSON encodes the activation name. Function-valued activations
// cannot round-trip through JSON.
func (a Activation) MarshalJSON() ([]byte, error) {
	if a.Fn != nil {
		return nil, fmt.Errorf("cannot encode a function-valued activation")
	}
	return json.Marshal(a.Name)
}

// or returns a with fallback as its default when a is the zero value.
func (a Activation) or(fallback string) Activation {
	if a.Name == "" && a.Fn == nil {
		return Act(fallback)
	}
	return a
}

// resolve maps the activation spec to a module, once, at construction.
// A nil module means identity ("linear"): no pipeline step is emitted.
func resolve[B tensor.Backend](a Activation) (Module[B], error) {
	if a.Fn != nil {
		return &Elementwise[B]{Fn: a.Fn}, nil
	}

	switch strings.ToLower(a.Name) {
	case "", "linear":
		return nil, nil
	case "relu":
		return NewReLU[B](), nil
	case "tanh":
		return NewTanh[B](), nil
	case "sigmoid":
		return NewSigmoid[B](), nil
	case "silu", "swish":
		return NewSiLU[B](), nil
	default:
		return nil, fmt.Errorf("%w: unknown activation %q", ErrInvalidConfig, a.Name)
	}
}

// ReLU applies f(x) = max(0, x) element-wise.
type ReLU[B tensor.Backend] struct{}

// NewReLU creates a ReLU activation module.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return &ReLU[B]{}
}

// Forward applies the activation.
func (r *ReLU[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return tensor.New[float32, B](input.Backend().ReLU(input.Raw()), input.Backend())
}

// Parameters returns nil; activations have no learnable state.
func (r *ReLU[B]) Parameters() []*Parameter[B] {
	return nil
}

// Sigmoid applies f(x) = 1 / (1 + exp(-x)) element-wise.
type Sigmoid[B tensor.Backend] struct{}

// NewSigmoid creates a Sigmoid activation module.
func NewSigmoid[B tensor.Backend]() *Sigmoid[B] {
	return &Sigmoid[B]{}
}

// Forward applies the activation.
func (s *Sigmoid[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return tensor.New[float32, B](input.Backend().Sigmoid(input.Raw()), input.Backend())
}

// Parameters returns nil; activations have no learnable state.
func (s *Sigmoid[B]) Parameters() []*Parameter[B] {
	return nil
}

// Tanh applies the hyperbolic tangent element-wise.
type Tanh[B tensor.Backend] struct{}

// NewTanh creates a Tanh activation module.
func NewTanh[B tensor.Backend]() *Tanh[B] {
	return &Tanh[B]{}
}

// Forward applies the activation.
func (t *Tanh[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return tensor.New[float32, B](input.Backend().Tanh(input.Raw()), input.Backend())
}

// Parameters returns nil; activations have no learnable state.
func (t *Tanh[B]) Parameters() []*Parameter[B] {
	return nil
}

// SiLU applies f(x) = x * sigmoid(x) element-wise.
type SiLU[B tensor.Backend] struct{}

// NewSiLU creates a SiLU (swish) activation module.
func NewSiLU[B tensor.Backend]() *SiLU[B] {
	return &SiLU[B]{}
}

// Forward applies the activation.
func (s *SiLU[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return tensor.New[float32, B](input.Backend().SiLU(input.Raw()), input.Backend())
}

// Parameters returns nil; activations have no learnable state.
func (s *SiLU[B]) Parameters() []*Parameter[B] {
	return nil
}

// Elementwise applies a caller-supplied element-wise function, backing the
// function-valued activation variant.
type Elementwise[B tensor.Backend] struct {
	Fn func(float32) float32
}

// Forward applies the function element-wise.
func (e *Elementwise[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return tensor.New[float32, B](input.Backend().Map(input.Raw(), e.Fn), input.Backend())
}

// Parameters returns nil; activations have no learnable state.
func (e *Elementwise[B]) Parameters() []*Parameter[B] {
	return nil
}
