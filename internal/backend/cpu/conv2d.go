package cpu

import (
	"fmt"

	"github.com/axon-rl/axon/internal/tensor"
)

// Conv2D performs 2D convolution over a channels-last input using im2col.
//
// Input shape:  [N, W, H, C_in]
// Kernel shape: [K_w, K_h, C_in, C_out]
// Output shape: [N, W', H', C_out]
//
// where per spatial axis: out = (in + pad0 + pad1 - kernel)/stride + 1.
//
// The im2col transform lowers the convolution to one GEMM: each output
// position becomes a row of K_w*K_h*C_in patch values, multiplied against
// the kernel viewed as a [K_w*K_h*C_in, C_out] matrix. With channels-last
// layout the GEMM result is already in output order, so no rearrangement
// pass is needed afterwards.
func (cpu *CPUBackend) Conv2D(input, kernel *tensor.RawTensor, p tensor.ConvParams) *tensor.RawTensor {
	n, w, h, cIn := convOperandDims("conv2d", input, kernel)
	kShape := kernel.Shape()
	kw, kh, cOut := kShape[0], kShape[1], kShape[3]

	outW := (w+p.PadW[0]+p.PadW[1]-kw)/p.StrideW + 1
	outH := (h+p.PadH[0]+p.PadH[1]-kh)/p.StrideH + 1
	if outW <= 0 || outH <= 0 {
		panic(fmt.Sprintf("conv2d: invalid output dims %dx%d (input %dx%d, kernel %dx%d, stride %dx%d)",
			outW, outH, w, h, kw, kh, p.StrideW, p.StrideH))
	}

	out, err := tensor.NewRaw(tensor.Shape{n, outW, outH, cOut}, tensor.Float32, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("conv2d: %v", err))
	}

	colWidth := kw * kh * cIn
	colHeight := n * outW * outH
	colBuf := make([]float32, colHeight*colWidth)
	im2col(colBuf, input.AsFloat32(), n, w, h, cIn, kw, kh, outW, outH, p)

	// [N*W'*H', K_w*K_h*C_in] @ [K_w*K_h*C_in, C_out] -> [N*W'*H', C_out]
	gemm(colHeight, colWidth, cOut, colBuf, kernel.AsFloat32(), out.AsFloat32())
	return out
}

// im2col unrolls input patches into rows of colBuf, one row per output
// position, zero-filling where the patch reaches into padding.
func im2col(colBuf, in []float32, n, w, h, cIn, kw, kh, outW, outH int, p tensor.ConvParams) {
	colWidth := kw * kh * cIn
	row := 0

	for img := 0; img < n; img++ {
		base := img * w * h * cIn
		for ow := 0; ow < outW; ow++ {
			wStart := ow*p.StrideW - p.PadW[0]
			for oh := 0; oh < outH; oh++ {
				hStart := oh*p.StrideH - p.PadH[0]
				buf := row * colWidth

				for dw := 0; dw < kw; dw++ {
					iw := wStart + dw
					for dh := 0; dh < kh; dh++ {
						ih := hStart + dh
						if iw >= 0 && iw < w && ih >= 0 && ih < h {
							src := base + (iw*h+ih)*cIn
							copy(colBuf[buf:buf+cIn], in[src:src+cIn])
						}
						// Out-of-bounds stays zero (padding).
						buf += cIn
					}
				}
				row++
			}
		}
	}
}

// convOperandDims validates conv operand shapes and returns the input dims.
func convOperandDims(name string, input, kernel *tensor.RawTensor) (n, w, h, cIn int) {
	requireFloat32(name, input)
	requireFloat32(name, kernel)

	inShape := input.Shape()
	kShape := kernel.Shape()
	if len(inShape) != 4 {
		panic(fmt.Sprintf("%s: input must be 4D [N,W,H,C], got %dD", name, len(inShape)))
	}
	if len(kShape) != 4 {
		panic(fmt.Sprintf("%s: kernel must be 4D [K_w,K_h,C_in,C_out], got %dD", name, len(kShape)))
	}
	if inShape[3] != kShape[2] {
		panic(fmt.Sprintf("%s: input channels %d != kernel channels %d", name, inShape[3], kShape[2]))
	}
	return inShape[0], inShape[1], inShape[2], inShape[3]
}
