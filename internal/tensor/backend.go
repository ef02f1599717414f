package tensor

// ConvParams describes the geometry of a 2D convolution or transposed
// convolution over a channels-last [N, W, H, C] tensor. Strides and zero
// padding are given per spatial axis; padding may be asymmetric, with the
// leading amount at index 0 and the trailing amount at index 1 (the layout
// "same"-padding produces for even kernels).
type ConvParams struct {
	StrideW int
	StrideH int
	PadW    [2]int
	PadH    [2]int

	// OutW and OutH fix the output spatial size of a transposed
	// convolution, which the other parameters alone do not determine when
	// the kernel is smaller than the stride. Zero means derive from the
	// general formula (in-1)*stride + kernel - pad0 - pad1. Ignored by
	// Conv2D.
	OutW int
	OutH int
}

// Backend defines the interface compute backends must implement. Backends
// handle the actual computation for tensor operations; everything above
// them is layout and bookkeeping.
//
// Implementations:
//   - cpu: pure Go with gonum BLAS for the matrix-multiplication cores
type Backend interface {
	// Element-wise binary operations with NumPy-style broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// MatMul multiplies [M, K] @ [K, N] -> [M, N].
	MatMul(a, b *RawTensor) *RawTensor

	// Conv2D convolves a channels-last input [N, W, H, C_in] with a kernel
	// [K_w, K_h, C_in, C_out], producing [N, W', H', C_out].
	Conv2D(input, kernel *RawTensor, p ConvParams) *RawTensor

	// ConvTranspose2D applies the transposed (upsampling) counterpart of
	// Conv2D. Input [N, W, H, C_in], kernel [K_w, K_h, C_in, C_out],
	// output [N, W*StrideW, H*StrideH, C_out] under "same" padding.
	ConvTranspose2D(input, kernel *RawTensor, p ConvParams) *RawTensor

	// LayerNorm normalizes x to zero mean and unit variance over its
	// trailing normAxes axes, then applies the learnable gain and offset,
	// whose shapes match the normalized trailing axes.
	LayerNorm(x, gain, offset *RawTensor, normAxes int, eps float32) *RawTensor

	// Element-wise activations.
	ReLU(x *RawTensor) *RawTensor
	Sigmoid(x *RawTensor) *RawTensor
	Tanh(x *RawTensor) *RawTensor
	SiLU(x *RawTensor) *RawTensor

	// Map applies an arbitrary element-wise function.
	Map(x *RawTensor, fn func(float32) float32) *RawTensor

	// Cast converts x to a different data type.
	Cast(x *RawTensor, dtype DataType) *RawTensor

	// Metadata
	Name() string
	Device() Device
}
