package cpu

import (
	"fmt"

	"github.com/axon-rl/axon/internal/tensor"
)

// Cast converts x to a different data type. Casting to the tensor's own
// type returns x unchanged.
func (cpu *CPUBackend) Cast(x *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	if x.DType() == dtype {
		return x
	}

	out, err := tensor.NewRaw(x.Shape(), dtype, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("cast: %v", err))
	}

	switch {
	case x.DType() == tensor.Float64 && dtype == tensor.Float32:
		src, dst := x.AsFloat64(), out.AsFloat32()
		for i, v := range src {
			dst[i] = float32(v)
		}
	case x.DType() == tensor.Float32 && dtype == tensor.Float64:
		src, dst := x.AsFloat32(), out.AsFloat64()
		for i, v := range src {
			dst[i] = float64(v)
		}
	case x.DType() == tensor.Int32 && dtype == tensor.Float32:
		src, dst := x.AsInt32(), out.AsFloat32()
		for i, v := range src {
			dst[i] = float32(v)
		}
	case x.DType() == tensor.Uint8 && dtype == tensor.Float32:
		src, dst := x.AsUint8(), out.AsFloat32()
		for i, v := range src {
			dst[i] = float32(v)
		}
	default:
		panic(fmt.Sprintf("cast: unsupported conversion %s -> %s", x.DType(), dtype))
	}

	return out
}
