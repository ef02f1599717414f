// Copyright 2026 The Axon Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the CPU compute backend.
//
// # Overview
//
// The CPU backend implements every tensor operation in pure Go, with the
// matrix-multiplication cores (MatMul and the im2col/col2im convolution
// lowerings) delegated to gonum BLAS.
//
// # Basic Usage
//
//	import (
//	    "github.com/axon-rl/axon/backend/cpu"
//	    "github.com/axon-rl/axon/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    t := tensor.Zeros[float32](tensor.Shape{3, 4}, backend)
//	    _ = t
//	}
package cpu
