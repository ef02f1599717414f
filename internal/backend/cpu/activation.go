package cpu

import (
	"math"

	"github.com/axon-rl/axon/internal/tensor"
)

// ReLU applies f(x) = max(0, x) element-wise.
func (cpu *CPUBackend) ReLU(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.Map(x, func(v float32) float32 {
		if v < 0 {
			return 0
		}
		return v
	})
}

// Sigmoid applies f(x) = 1 / (1 + exp(-x)) element-wise.
func (cpu *CPUBackend) Sigmoid(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.Map(x, sigmoid)
}

// Tanh applies the hyperbolic tangent element-wise.
func (cpu *CPUBackend) Tanh(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.Map(x, func(v float32) float32 {
		return float32(math.Tanh(float64(v)))
	})
}

// SiLU applies f(x) = x * sigmoid(x) element-wise.
func (cpu *CPUBackend) SiLU(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.Map(x, func(v float32) float32 {
		return v * sigmoid(v)
	})
}

// Map applies an arbitrary element-wise function.
func (cpu *CPUBackend) Map(x *tensor.RawTensor, fn func(float32) float32) *tensor.RawTensor {
	requireFloat32("map", x)

	out, err := tensor.NewRaw(x.Shape(), tensor.Float32, cpu.device)
	if err != nil {
		panic(err)
	}

	xData := x.AsFloat32()
	outData := out.AsFloat32()
	for i, v := range xData {
		outData[i] = fn(v)
	}
	return out
}

func sigmoid(v float32) float32 {
	return float32(1.0 / (1.0 + math.Exp(float64(-v))))
}
