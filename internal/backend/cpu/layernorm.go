package cpu

import (
	"fmt"
	"math"

	"github.com/axon-rl/axon/internal/tensor"
)

// LayerNorm normalizes x to zero mean and unit variance over its trailing
// normAxes axes, then applies the learnable gain and offset:
//
//	y = gain * (x - mean) / sqrt(var + eps) + offset
//
// gain and offset must have the shape of the normalized trailing axes, so
// normalizing a [N, W, H, C] map over its last three axes takes [W, H, C]
// parameters. Variance is the biased estimate, matching the framework
// layer-norm definitions the blocks are calibrated against.
func (cpu *CPUBackend) LayerNorm(x, gain, offset *tensor.RawTensor, normAxes int, eps float32) *tensor.RawTensor {
	requireFloat32("layernorm", x)
	requireFloat32("layernorm", gain)
	requireFloat32("layernorm", offset)

	shape := x.Shape()
	if normAxes <= 0 || normAxes > len(shape) {
		panic(fmt.Sprintf("layernorm: cannot normalize %d trailing axes of a %dD tensor", normAxes, len(shape)))
	}

	normShape := shape[len(shape)-normAxes:]
	if !gain.Shape().Equal(tensor.Shape(normShape)) || !offset.Shape().Equal(tensor.Shape(normShape)) {
		panic(fmt.Sprintf("layernorm: gain/offset shapes %v/%v do not match normalized axes %v",
			gain.Shape(), offset.Shape(), normShape))
	}

	inner := tensor.Shape(normShape).NumElements()
	outer := x.NumElements() / inner

	out, err := tensor.NewRaw(shape, tensor.Float32, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("layernorm: %v", err))
	}

	xData := x.AsFloat32()
	gainData := gain.AsFloat32()
	offsetData := offset.AsFloat32()
	outData := out.AsFloat32()

	for o := 0; o < outer; o++ {
		row := xData[o*inner : (o+1)*inner]

		var sum float64
		for _, v := range row {
			sum += float64(v)
		}
		mean := sum / float64(inner)

		var sqSum float64
		for _, v := range row {
			d := float64(v) - mean
			sqSum += d * d
		}
		invStd := 1.0 / math.Sqrt(sqSum/float64(inner)+float64(eps))

		dst := outData[o*inner : (o+1)*inner]
		for i, v := range row {
			dst[i] = gainData[i]*float32((float64(v)-mean)*invStd) + offsetData[i]
		}
	}

	return out
}
