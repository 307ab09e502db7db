// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the dense array passed to the CPU kernels.
//
// # Overview
//
// Kernels depend only on the Array capability:
//   - Size and Shape for precondition checks
//   - Data for direct element access
//   - Fill for constant initialization
//
// Dense is the contiguous row-major implementation. By convention the first
// dimension is the batch dimension and Size()/Shape()[0] is the feature width.
//
// # Basic Usage
//
//	import "github.com/born-ml/kernels/tensor"
//
//	func main() {
//	    x := tensor.MustNew(tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6})
//	    y := tensor.MustZeros[float32](tensor.Shape{2, 3})
//	    _ = x.Shape().FeatureDim() // 3
//	    y.Fill(1)
//	}
//
// Arrays are owned by the caller. Kernels never allocate, resize or retain them.
package tensor
