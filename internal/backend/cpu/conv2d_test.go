package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axon-rl/axon/internal/tensor"
)

func TestConv2D_Valid(t *testing.T) {
	backend := New()

	// 3x3 single-channel input, 2x2 kernel, no padding, stride 1.
	input := raw(t, []float32{1, 2, 3, 4, 5, 6, 7, 8, 9}, tensor.Shape{1, 3, 3, 1})
	kernel := raw(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2, 1, 1})

	out := backend.Conv2D(input, kernel, tensor.ConvParams{StrideW: 1, StrideH: 1})
	require.True(t, out.Shape().Equal(tensor.Shape{1, 2, 2, 1}))

	// out(ow,oh) = sum over the 2x2 patch weighted by the kernel.
	assert.Equal(t, []float32{37, 47, 67, 77}, out.AsFloat32())
}

func TestConv2D_SamePadding(t *testing.T) {
	backend := New()

	// All-ones 4x4 input with an all-ones 3x3 kernel and pad 1 on every
	// side: each output counts the in-bounds cells of its patch.
	input := raw(t, onesSlice(16), tensor.Shape{1, 4, 4, 1})
	kernel := raw(t, onesSlice(9), tensor.Shape{3, 3, 1, 1})

	out := backend.Conv2D(input, kernel, tensor.ConvParams{
		StrideW: 1, StrideH: 1,
		PadW: [2]int{1, 1}, PadH: [2]int{1, 1},
	})
	require.True(t, out.Shape().Equal(tensor.Shape{1, 4, 4, 1}))

	expected := []float32{
		4, 6, 6, 4,
		6, 9, 9, 6,
		6, 9, 9, 6,
		4, 6, 6, 4,
	}
	assert.Equal(t, expected, out.AsFloat32())
}

func TestConv2D_StridedShape(t *testing.T) {
	backend := New()

	// 16 -> ceil(16/2) = 8 per spatial axis under "same" padding {0, 1}.
	input := raw(t, make([]float32, 2*16*16*3), tensor.Shape{2, 16, 16, 3})
	kernel := raw(t, make([]float32, 3*3*3*32), tensor.Shape{3, 3, 3, 32})

	out := backend.Conv2D(input, kernel, tensor.ConvParams{
		StrideW: 2, StrideH: 2,
		PadW: [2]int{0, 1}, PadH: [2]int{0, 1},
	})
	assert.True(t, out.Shape().Equal(tensor.Shape{2, 8, 8, 32}))
}

func TestConv2D_ChannelMismatch(t *testing.T) {
	backend := New()

	input := raw(t, make([]float32, 1*4*4*3), tensor.Shape{1, 4, 4, 3})
	kernel := raw(t, make([]float32, 2*2*4*8), tensor.Shape{2, 2, 4, 8})

	assert.Panics(t, func() {
		backend.Conv2D(input, kernel, tensor.ConvParams{StrideW: 1, StrideH: 1})
	})
}

func onesSlice(n int) []float32 {
	s := make([]float32, n)
	for i := range s {
		s[i] = 1
	}
	return s
}
