package cpu

import (
	"fmt"

	"github.com/axon-rl/axon/internal/tensor"
)

// ConvTranspose2D performs the transposed (upsampling) counterpart of
// Conv2D, as the adjoint of a convolution with the same geometry.
//
// Input shape:  [N, W, H, C_in]
// Kernel shape: [K_w, K_h, C_in, C_out]
// Output shape: [N, W', H', C_out]
//
// where per spatial axis: out = (in-1)*stride + kernel - pad0 - pad1,
// unless ConvParams fixes the output size explicitly.
//
// The lowering mirrors im2col in reverse: one GEMM expands every input
// position into its K_w*K_h*C_out contributions, which a col2im pass then
// scatter-adds into the output, dropping whatever falls into the cropped
// padding region.
func (cpu *CPUBackend) ConvTranspose2D(input, kernel *tensor.RawTensor, p tensor.ConvParams) *tensor.RawTensor {
	n, w, h, cIn := convOperandDims("conv_transpose2d", input, kernel)
	kShape := kernel.Shape()
	kw, kh, cOut := kShape[0], kShape[1], kShape[3]

	outW := p.OutW
	if outW == 0 {
		outW = (w-1)*p.StrideW + kw - p.PadW[0] - p.PadW[1]
	}
	outH := p.OutH
	if outH == 0 {
		outH = (h-1)*p.StrideH + kh - p.PadH[0] - p.PadH[1]
	}
	if outW <= 0 || outH <= 0 {
		panic(fmt.Sprintf("conv_transpose2d: invalid output dims %dx%d (input %dx%d, kernel %dx%d, stride %dx%d)",
			outW, outH, w, h, kw, kh, p.StrideW, p.StrideH))
	}

	out, err := tensor.NewRaw(tensor.Shape{n, outW, outH, cOut}, tensor.Float32, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("conv_transpose2d: %v", err))
	}

	// Permute kernel [K_w, K_h, C_in, C_out] -> [C_in, K_w*K_h*C_out] so a
	// single GEMM produces each input position's full contribution row.
	kData := kernel.AsFloat32()
	kT := make([]float32, len(kData))
	for dw := 0; dw < kw; dw++ {
		for dh := 0; dh < kh; dh++ {
			for ci := 0; ci < cIn; ci++ {
				src := ((dw*kh+dh)*cIn + ci) * cOut
				dst := (ci*kw*kh + dw*kh + dh) * cOut
				copy(kT[dst:dst+cOut], kData[src:src+cOut])
			}
		}
	}

	// [N*W*H, C_in] @ [C_in, K_w*K_h*C_out] -> [N*W*H, K_w*K_h*C_out]
	rowWidth := kw * kh * cOut
	cols := make([]float32, n*w*h*rowWidth)
	gemm(n*w*h, cIn, rowWidth, input.AsFloat32(), kT, cols)

	col2im(out.AsFloat32(), cols, n, w, h, kw, kh, cOut, outW, outH, p)
	return out
}

// col2im scatter-adds contribution rows into the output feature map.
func col2im(out, cols []float32, n, w, h, kw, kh, cOut, outW, outH int, p tensor.ConvParams) {
	rowWidth := kw * kh * cOut
	row := 0

	for img := 0; img < n; img++ {
		base := img * outW * outH * cOut
		for iw := 0; iw < w; iw++ {
			for ih := 0; ih < h; ih++ {
				buf := row * rowWidth

				for dw := 0; dw < kw; dw++ {
					ow := iw*p.StrideW + dw - p.PadW[0]
					for dh := 0; dh < kh; dh++ {
						oh := ih*p.StrideH + dh - p.PadH[0]
						if ow >= 0 && ow < outW && oh >= 0 && oh < outH {
							dst := base + (ow*outH+oh)*cOut
							for co := 0; co < cOut; co++ {
								out[dst+co] += cols[buf+co]
							}
						}
						buf += cOut
					}
				}
				row++
			}
		}
	}
}
