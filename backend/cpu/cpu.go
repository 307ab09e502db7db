// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/kernels/internal/backend/cpu"
	"github.com/born-ml/kernels/internal/parallel"
	"github.com/born-ml/kernels/internal/rng"
	"github.com/born-ml/kernels/tensor"
)

// Backend runs the CPU kernels over element type T.
type Backend[T tensor.Float] = internalcpu.Backend[T]

// Config configures a Backend.
type Config = internalcpu.Config

// ParallelConfig controls the worker fan-out of each kernel call.
type ParallelConfig = parallel.Config

// Generator is a caller-owned, concurrency-safe random generator for the
// distribution kernels.
type Generator = rng.Generator

// Algorithm selects the GEMM implementation used by MatrixMultiply.
type Algorithm = internalcpu.Algorithm

// GEMM algorithms.
const (
	AlgorithmBLAS  = internalcpu.AlgorithmBLAS
	AlgorithmNaive = internalcpu.AlgorithmNaive
)

// ActivationKind names an activation function.
type ActivationKind = internalcpu.ActivationKind

// Activation kinds.
const (
	ActivationRectlin  = internalcpu.ActivationRectlin
	ActivationLogistic = internalcpu.ActivationLogistic
	ActivationSoftmax  = internalcpu.ActivationSoftmax
)

// Activation is the forward/backward kernel pair of one activation.
type Activation[T tensor.Float] = internalcpu.Activation[T]

// LossKind names a loss function.
type LossKind = internalcpu.LossKind

// Loss kinds.
const (
	LossCrossEntropyBinary = internalcpu.LossCrossEntropyBinary
	LossCrossEntropyMulti  = internalcpu.LossCrossEntropyMulti
	LossSquareMean         = internalcpu.LossSquareMean
	LossAbsMean            = internalcpu.LossAbsMean
)

// Loss pairs a scalar forward reduction with its per-element gradient.
type Loss[T tensor.Float] = internalcpu.Loss[T]

// Errors returned by kernels. Use errors.Is to test for them.
var (
	ErrSizeMismatch      = internalcpu.ErrSizeMismatch
	ErrDimensionMismatch = internalcpu.ErrDimensionMismatch
	ErrEmptyBatch        = internalcpu.ErrEmptyBatch
	ErrNotImplemented    = internalcpu.ErrNotImplemented
	ErrInvalidArgument   = internalcpu.ErrInvalidArgument
)

// ShapeError details a size or dimension precondition violation.
type ShapeError = internalcpu.ShapeError

// NotImplementedError is returned by kernels without an implementation.
type NotImplementedError = internalcpu.NotImplementedError

// DefaultConfig returns a config using every available CPU.
func DefaultConfig() Config {
	return internalcpu.DefaultConfig()
}

// DefaultParallelConfig returns the default worker fan-out.
func DefaultParallelConfig() ParallelConfig {
	return parallel.DefaultConfig()
}

// SequentialConfig returns a fan-out config that never spawns goroutines.
func SequentialConfig() ParallelConfig {
	return parallel.Sequential()
}

// New creates a CPU backend.
//
// Example:
//
//	import (
//	    "github.com/born-ml/kernels/backend/cpu"
//	    "github.com/born-ml/kernels/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New[float32]()
//	    x := tensor.MustNew(tensor.Shape{1, 3}, []float32{-1, 0, 2})
//	    y := tensor.MustZeros[float32](tensor.Shape{1, 3})
//	    _ = backend.RectlinApply(x, y, 0)
//	}
func New[T tensor.Float]() *Backend[T] {
	return internalcpu.New[T]()
}

// NewWithConfig creates a CPU backend with the given config.
func NewWithConfig[T tensor.Float](cfg Config) *Backend[T] {
	return internalcpu.NewWithConfig[T](cfg)
}

// NewGenerator creates a random generator with a fixed seed.
func NewGenerator(seed uint64) *Generator {
	return rng.New(seed)
}

// NewGeneratorFromTime creates a random generator seeded from the wall clock.
func NewGeneratorFromTime() *Generator {
	return rng.NewFromTime()
}
