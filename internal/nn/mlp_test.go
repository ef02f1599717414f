package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axon-rl/axon/internal/backend/cpu"
	"github.com/axon-rl/axon/internal/tensor"
)

func TestNewMLP_PipelineStructure(t *testing.T) {
	backend := cpu.New()

	mlp, err := NewMLP(MLPConfig{
		InputDim:           4,
		HiddenDims:         []int{8, 8},
		HiddenUseLayerNorm: true,
		OutputDim:          2,
	}, backend)
	require.NoError(t, err)

	// Two hidden (dense, norm, act) groups plus the bare output layer.
	p := mlp.Pipeline()
	require.Equal(t, 7, p.Len())

	for i := 0; i < 2; i++ {
		dense, ok := p.Module(3 * i).(*Dense[*cpu.CPUBackend])
		require.True(t, ok, "module %d", 3*i)
		assert.Nil(t, dense.Activation(), "normed dense %d carries no fused activation", i)

		_, ok = p.Module(3*i + 1).(*LayerNorm[*cpu.CPUBackend])
		assert.True(t, ok, "module %d", 3*i+1)

		_, ok = p.Module(3*i + 2).(*ReLU[*cpu.CPUBackend])
		assert.True(t, ok, "module %d", 3*i+2)
	}

	out, ok := p.Module(6).(*Dense[*cpu.CPUBackend])
	require.True(t, ok)
	assert.Equal(t, 2, out.OutFeatures())
	assert.Nil(t, out.Activation(), "output layer defaults to linear")

	assert.Equal(t, 4, mlp.InputDim())
	assert.Equal(t, 2, mlp.OutputDim())
}

func TestMLP_Forward(t *testing.T) {
	backend := cpu.New()

	mlp, err := NewMLP(MLPConfig{
		InputDim:           4,
		HiddenDims:         []int{8, 8},
		HiddenUseLayerNorm: true,
		OutputDim:          2,
	}, backend)
	require.NoError(t, err)

	input := tensor.Randn[float32](tensor.Shape{3, 4}, backend)
	out := mlp.Forward(input)
	assert.True(t, out.Shape().Equal(tensor.Shape{3, 2}))
}

func TestNewMLP_NoNorm(t *testing.T) {
	backend := cpu.New()

	mlp, err := NewMLP(MLPConfig{
		InputDim:   4,
		HiddenDims: []int{8, 8},
	}, backend)
	require.NoError(t, err)

	// Without normalization the activation fuses into each dense layer.
	p := mlp.Pipeline()
	require.Equal(t, 2, p.Len())
	for i := 0; i < 2; i++ {
		dense, ok := p.Module(i).(*Dense[*cpu.CPUBackend])
		require.True(t, ok)
		assert.IsType(t, &ReLU[*cpu.CPUBackend]{}, dense.Activation())
	}

	// No output layer: the block ends at the last hidden width.
	assert.Equal(t, 8, mlp.OutputDim())
}

func TestNewMLP_SingleOutputLayer(t *testing.T) {
	backend := cpu.New()

	mlp, err := NewMLP(MLPConfig{
		InputDim:  4,
		OutputDim: 2,
	}, backend)
	require.NoError(t, err)

	p := mlp.Pipeline()
	require.Equal(t, 1, p.Len())

	dense := p.Module(0).(*Dense[*cpu.CPUBackend])
	assert.Equal(t, 4, dense.InFeatures())
	assert.Equal(t, 2, dense.OutFeatures())
	assert.Nil(t, dense.Activation())
}

func TestNewMLP_OutputActivation(t *testing.T) {
	backend := cpu.New()

	mlp, err := NewMLP(MLPConfig{
		InputDim:         4,
		OutputDim:        2,
		OutputActivation: Act("tanh"),
	}, backend)
	require.NoError(t, err)

	dense := mlp.Pipeline().Module(0).(*Dense[*cpu.CPUBackend])
	assert.IsType(t, &Tanh[*cpu.CPUBackend]{}, dense.Activation())
}

func TestNewMLP_NoBias(t *testing.T) {
	backend := cpu.New()

	mlp, err := NewMLP(MLPConfig{
		InputDim:   4,
		HiddenDims: []int{8},
		OutputDim:  2,
		UseBias:    BoolPtr(false),
	}, backend)
	require.NoError(t, err)

	// Weights only: one per dense layer.
	assert.Len(t, mlp.Parameters(), 2)
}

func TestNewMLP_Errors(t *testing.T) {
	backend := cpu.New()

	tests := []struct {
		name string
		cfg  MLPConfig
	}{
		{"zero input dim", MLPConfig{OutputDim: 2}},
		{"no layers at all", MLPConfig{InputDim: 4}},
		{"negative output dim", MLPConfig{InputDim: 4, HiddenDims: []int{8}, OutputDim: -1}},
		{"zero hidden dim", MLPConfig{InputDim: 4, HiddenDims: []int{8, 0}, OutputDim: 2}},
		{"unknown hidden activation", MLPConfig{InputDim: 4, HiddenDims: []int{8}, HiddenActivation: Act("gelu")}},
		{"unknown output activation", MLPConfig{InputDim: 4, OutputDim: 2, OutputActivation: Act("softmax")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMLP(tt.cfg, backend)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestMLP_CustomActivationFn(t *testing.T) {
	backend := cpu.New()

	mlp, err := NewMLP(MLPConfig{
		InputDim:         1,
		OutputDim:        1,
		OutputActivation: ActFn(func(v float32) float32 { return v * 10 }),
	}, backend)
	require.NoError(t, err)

	dense := mlp.Pipeline().Module(0).(*Dense[*cpu.CPUBackend])
	copy(dense.Weight().Tensor().Data(), []float32{1})

	input, err := tensor.FromSlice([]float32{3}, tensor.Shape{1, 1}, backend)
	require.NoError(t, err)
	assert.Equal(t, []float32{30}, mlp.Forward(input).Data())
}
