// Copyright 2026 The Axon Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the neural-network building blocks of the Axon
// library.
//
// # Overview
//
// The package exposes two levels. Layer primitives:
//   - Dense, Conv2D, ConvTranspose2D, LayerNorm, activations
//   - Sequential: ordered pipeline container
//   - Module / Parameter: the interfaces external trainers work against
//
// And the configurable blocks RL models are assembled from:
//   - MLP: a stack of dense layers
//   - CNN: a stack of 2D convolutions (channels-last, "same" padding)
//   - CNNTranspose: the decoder-side mirror of CNN
//
// Each block consumes its config exactly once at construction and builds a
// frozen pipeline; the only operation afterwards is forward evaluation.
//
// # Basic Usage
//
//	import (
//	    "github.com/axon-rl/axon/backend/cpu"
//	    "github.com/axon-rl/axon/nn"
//	    "github.com/axon-rl/axon/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    mlp, err := nn.NewMLP(nn.MLPConfig{
//	        InputDim:   4,
//	        HiddenDims: []int{256, 256},
//	        OutputDim:  2,
//	    }, backend)
//	    if err != nil {
//	        panic(err)
//	    }
//
//	    obs := tensor.Randn[float32](tensor.Shape{32, 4}, backend)
//	    logits := mlp.Forward(obs) // [32, 2]
//	    _ = logits
//	}
package nn
