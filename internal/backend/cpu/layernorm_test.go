package cpu

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axon-rl/axon/internal/tensor"
)

func TestLayerNorm_RowNormalization(t *testing.T) {
	backend := New()

	x := raw(t, []float32{1, 2, 3, 4, 2, 4, 6, 8}, tensor.Shape{2, 4})
	gain := raw(t, onesSlice(4), tensor.Shape{4})
	offset := raw(t, make([]float32, 4), tensor.Shape{4})

	out := backend.LayerNorm(x, gain, offset, 1, 1e-5)
	require.True(t, out.Shape().Equal(tensor.Shape{2, 4}))
	data := out.AsFloat32()

	// Each row independently: zero mean, unit variance.
	for r := 0; r < 2; r++ {
		row := data[r*4 : (r+1)*4]
		var mean, sq float64
		for _, v := range row {
			mean += float64(v)
		}
		mean /= 4
		for _, v := range row {
			d := float64(v) - mean
			sq += d * d
		}
		assert.InDelta(t, 0, mean, 1e-6)
		assert.InDelta(t, 1, sq/4, 1e-4)
	}

	// Row [1,2,3,4]: mean 2.5, biased std sqrt(1.25).
	invStd := 1 / math.Sqrt(1.25+1e-5)
	assert.InDelta(t, -1.5*invStd, data[0], 1e-5)
	assert.InDelta(t, 1.5*invStd, data[3], 1e-5)
}

func TestLayerNorm_GainOffset(t *testing.T) {
	backend := New()

	x := raw(t, []float32{1, 2, 3, 4}, tensor.Shape{1, 4})
	gain := raw(t, []float32{2, 2, 2, 2}, tensor.Shape{4})
	offset := raw(t, []float32{10, 10, 10, 10}, tensor.Shape{4})

	plainGain := raw(t, onesSlice(4), tensor.Shape{4})
	plainOffset := raw(t, make([]float32, 4), tensor.Shape{4})

	scaled := backend.LayerNorm(x, gain, offset, 1, 1e-5).AsFloat32()
	plain := backend.LayerNorm(x, plainGain, plainOffset, 1, 1e-5).AsFloat32()

	for i := range scaled {
		assert.InDelta(t, 2*plain[i]+10, scaled[i], 1e-5)
	}
}

func TestLayerNorm_TrailingAxes(t *testing.T) {
	backend := New()

	// Normalize a [N, W, H, C] map over its last three axes, the conv
	// block configuration.
	x := raw(t, []float32{1, 2, 3, 4, 5, 6, 7, 8, 1, 1, 1, 1, 1, 1, 1, 1}, tensor.Shape{2, 2, 2, 2})
	gain := raw(t, onesSlice(8), tensor.Shape{2, 2, 2})
	offset := raw(t, make([]float32, 8), tensor.Shape{2, 2, 2})

	out := backend.LayerNorm(x, gain, offset, 3, 1e-5)
	data := out.AsFloat32()

	// First sample normalizes to zero mean; the constant second sample
	// collapses to all zeros.
	var mean float64
	for _, v := range data[:8] {
		mean += float64(v)
	}
	assert.InDelta(t, 0, mean/8, 1e-6)
	for _, v := range data[8:] {
		assert.InDelta(t, 0, v, 1e-2)
	}
}

func TestLayerNorm_ShapeMismatch(t *testing.T) {
	backend := New()

	x := raw(t, []float32{1, 2, 3, 4}, tensor.Shape{1, 4})
	gain := raw(t, onesSlice(3), tensor.Shape{3})
	offset := raw(t, make([]float32, 3), tensor.Shape{3})

	assert.Panics(t, func() { backend.LayerNorm(x, gain, offset, 1, 1e-5) })
}
