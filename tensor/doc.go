// Copyright 2026 The Axon Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides type-safe tensors for the Axon building-block
// library.
//
// # Overview
//
// Tensors are the currency the Axon blocks trade in. This package provides:
//   - Generic type-safe tensors (Tensor[T, B])
//   - NumPy-style broadcasting
//   - The Backend interface compute backends implement
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
//
//	    a := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//	    b := tensor.Randn[float32](tensor.Shape{2, 3}, backend)
//	    sum := a.Add(b)
//	    _ = sum
//	}
package tensor
