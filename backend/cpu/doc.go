// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the CPU execution kernels of the training framework.
//
// # Overview
//
// The backend is a flat set of stateless kernels:
//   - Elementwise and reduction primitives (Add, Minus, Multiply, Maximum, Sum)
//   - Activations (Rectlin, Logistic, Softmax)
//   - Losses (binary/multiclass cross-entropy, squared error, absolute error)
//   - Bias broadcast and reduction, batch normalization
//   - Matrix multiply (gonum BLAS or naive) and 2D transpose
//   - Momentum gradient descent
//   - Uniform, normal and dropout-mask initialization
//   - Classification accuracy and regression error
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/kernels/backend/cpu"
//	    "github.com/born-ml/kernels/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New[float32]()
//	    gen := cpu.NewGenerator(42)
//
//	    w := tensor.MustZeros[float32](tensor.Shape{784, 10})
//	    _ = backend.NormalDistribution(gen, w, 0, 0.01)
//	}
//
// # Contracts
//
// Outputs are pre-allocated by the caller. Every size and shape precondition
// is checked before anything is written and reported as ErrSizeMismatch or
// ErrDimensionMismatch. Backward kernels that document an in-place output
// read the upstream gradient from that same buffer.
//
// # Thread Safety
//
// A Backend holds no mutable state and is safe for concurrent use. A
// Generator may be shared across goroutines; fills are reproducible for a
// fixed seed and call order.
package cpu
