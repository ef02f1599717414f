package cpu

import (
	"fmt"

	"github.com/axon-rl/axon/internal/tensor"
)

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binaryOp("add", a, b, func(x, y float32) float32 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binaryOp("sub", a, b, func(x, y float32) float32 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binaryOp("mul", a, b, func(x, y float32) float32 { return x * y })
}

// Div performs element-wise division with broadcasting.
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binaryOp("div", a, b, func(x, y float32) float32 { return x / y })
}

// binaryOp applies op element-wise over a and b, broadcasting as needed.
func (cpu *CPUBackend) binaryOp(name string, a, b *tensor.RawTensor, op func(x, y float32) float32) *tensor.RawTensor {
	requireFloat32(name, a)
	requireFloat32(name, b)

	outShape, expanded, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	out, err := tensor.NewRaw(outShape, tensor.Float32, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	aData := a.AsFloat32()
	bData := b.AsFloat32()
	outData := out.AsFloat32()

	if !expanded {
		for i := range outData {
			outData[i] = op(aData[i], bData[i])
		}
		return out
	}

	// Broadcast path: walk the output index space and map each position
	// back into a and b, treating size-1 and missing dimensions as fixed.
	aIndex := newBroadcastIndexer(a.Shape(), outShape)
	bIndex := newBroadcastIndexer(b.Shape(), outShape)
	idx := make([]int, len(outShape))

	for i := range outData {
		outData[i] = op(aData[aIndex.at(idx)], bData[bIndex.at(idx)])
		increment(idx, outShape)
	}
	return out
}

// broadcastIndexer maps an output coordinate to a flat offset in a source
// tensor whose shape broadcasts to the output shape.
type broadcastIndexer struct {
	strides []int // per output axis; 0 where the source dimension is 1 or missing
}

func newBroadcastIndexer(src, out tensor.Shape) broadcastIndexer {
	srcStrides := src.ComputeStrides()
	strides := make([]int, len(out))
	offset := len(out) - len(src)
	for i := range out {
		if i < offset {
			continue
		}
		if src[i-offset] != 1 {
			strides[i] = srcStrides[i-offset]
		}
	}
	return broadcastIndexer{strides: strides}
}

func (b broadcastIndexer) at(idx []int) int {
	flat := 0
	for i, v := range idx {
		flat += v * b.strides[i]
	}
	return flat
}

// increment advances a multi-dimensional index in row-major order.
func increment(idx []int, shape tensor.Shape) {
	for i := len(idx) - 1; i >= 0; i-- {
		idx[i]++
		if idx[i] < shape[i] {
			return
		}
		idx[i] = 0
	}
}

func requireFloat32(name string, t *tensor.RawTensor) {
	if t.DType() != tensor.Float32 {
		panic(fmt.Sprintf("%s: unsupported dtype %s (cast to float32 first)", name, t.DType()))
	}
}
