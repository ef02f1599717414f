package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axon-rl/axon/internal/backend/cpu"
	"github.com/axon-rl/axon/internal/tensor"
)

func TestDense_Forward(t *testing.T) {
	backend := cpu.New()
	dense := NewDense(2, 2, true, nil, backend)

	// W = [[1, 2], [3, 4]] stored [in, out]; b = [10, 20].
	copy(dense.Weight().Tensor().Data(), []float32{1, 2, 3, 4})
	copy(dense.Bias().Tensor().Data(), []float32{10, 20})

	input, err := tensor.FromSlice([]float32{1, 1}, tensor.Shape{1, 2}, backend)
	require.NoError(t, err)

	out := dense.Forward(input)
	require.True(t, out.Shape().Equal(tensor.Shape{1, 2}))
	assert.Equal(t, []float32{14, 26}, out.Data())
}

func TestDense_FusedActivation(t *testing.T) {
	backend := cpu.New()
	dense := NewDense(1, 1, false, NewReLU[*cpu.CPUBackend](), backend)

	copy(dense.Weight().Tensor().Data(), []float32{-1})

	input, err := tensor.FromSlice([]float32{2}, tensor.Shape{1, 1}, backend)
	require.NoError(t, err)

	// Linear output would be -2; ReLU clips it.
	out := dense.Forward(input)
	assert.Equal(t, []float32{0}, out.Data())
}

func TestDense_Parameters(t *testing.T) {
	backend := cpu.New()

	withBias := NewDense(3, 4, true, nil, backend)
	assert.Len(t, withBias.Parameters(), 2)
	assert.True(t, withBias.Weight().Tensor().Shape().Equal(tensor.Shape{3, 4}))
	assert.True(t, withBias.Bias().Tensor().Shape().Equal(tensor.Shape{4}))

	withoutBias := NewDense(3, 4, false, nil, backend)
	assert.Len(t, withoutBias.Parameters(), 1)
	assert.Nil(t, withoutBias.Bias())
}

func TestDense_ShapeChecks(t *testing.T) {
	backend := cpu.New()
	dense := NewDense(4, 2, true, nil, backend)

	bad3D := tensor.Zeros[float32](tensor.Shape{1, 2, 4}, backend)
	assert.Panics(t, func() { dense.Forward(bad3D) })

	badWidth := tensor.Zeros[float32](tensor.Shape{1, 3}, backend)
	assert.Panics(t, func() { dense.Forward(badWidth) })
}

func TestXavier_Bounds(t *testing.T) {
	backend := cpu.New()

	// Glorot-uniform values stay within +-sqrt(6/(fanIn+fanOut)).
	w := Xavier(8, 8, tensor.Shape{8, 8}, backend)
	bound := float32(0.6124) + 1e-4 // sqrt(6/16)
	for _, v := range w.Data() {
		assert.LessOrEqual(t, v, bound)
		assert.GreaterOrEqual(t, v, -bound)
	}
}
