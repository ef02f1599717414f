package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axon-rl/axon/internal/backend/cpu"
	"github.com/axon-rl/axon/internal/tensor"
)

func TestLayerNorm_Module(t *testing.T) {
	backend := cpu.New()
	norm := NewLayerNorm(tensor.Shape{4}, normEpsilon, backend)

	input, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{1, 4}, backend)
	require.NoError(t, err)

	// Fresh gain/offset are identity, so the output is plain normalization.
	out := norm.Forward(input).Data()
	var sum float32
	for _, v := range out {
		sum += v
	}
	assert.InDelta(t, 0, sum, 1e-5)
	assert.InDelta(t, -1.3416, out[0], 1e-3)
	assert.InDelta(t, 1.3416, out[3], 1e-3)
}

func TestLayerNorm_Parameters(t *testing.T) {
	backend := cpu.New()
	norm := NewLayerNorm(tensor.Shape{4, 4, 16}, normEpsilon, backend)

	params := norm.Parameters()
	require.Len(t, params, 2)
	for _, p := range params {
		assert.True(t, p.Tensor().Shape().Equal(tensor.Shape{4, 4, 16}))
	}

	// Gain starts at one, offset at zero.
	assert.Equal(t, float32(1), params[0].Tensor().Data()[0])
	assert.Equal(t, float32(0), params[1].Tensor().Data()[0])

	assert.True(t, norm.NormalizedShape().Equal(tensor.Shape{4, 4, 16}))
	assert.Equal(t, float32(normEpsilon), norm.Epsilon())
}

func TestSequential(t *testing.T) {
	backend := cpu.New()

	seq := NewSequential[*cpu.CPUBackend](
		NewDense(4, 8, true, nil, backend),
		NewReLU[*cpu.CPUBackend](),
		NewDense(8, 2, true, nil, backend),
	)

	assert.Equal(t, 3, seq.Len())
	assert.Len(t, seq.Parameters(), 4)

	input := tensor.Randn[float32](tensor.Shape{5, 4}, backend)
	out := seq.Forward(input)
	assert.True(t, out.Shape().Equal(tensor.Shape{5, 2}))

	assert.Panics(t, func() { seq.Module(3) })
}

func TestParameter(t *testing.T) {
	backend := cpu.New()

	p := NewParameter("weight", tensor.Ones[float32](tensor.Shape{2, 2}, backend))
	assert.Equal(t, "weight", p.Name())
	assert.Nil(t, p.Grad())

	grad := tensor.Full[float32](tensor.Shape{2, 2}, 0.5, backend)
	p.SetGrad(grad)
	require.NotNil(t, p.Grad())

	p.ZeroGrad()
	assert.Nil(t, p.Grad())
}
