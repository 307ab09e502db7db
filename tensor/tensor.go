// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/kernels/internal/tensor"
)

// Type aliases for public API

// Float is the constraint for kernel element types: float32 or float64.
type Float = tensor.Float

// DataType represents the runtime element type of an array.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
)

// Shape represents the dimensions of an array.
// Example: Shape{32, 784} is a batch of 32 samples with 784 features each.
type Shape = tensor.Shape

// Array is the capability the kernels consume: Size, Shape, Data and Fill.
type Array[T Float] = tensor.Array[T]

// Dense is a contiguous row-major array.
type Dense[T Float] = tensor.Dense[T]

// New wraps data with the given shape without copying it.
func New[T Float](shape Shape, data []T) (*Dense[T], error) {
	return tensor.New(shape, data)
}

// Zeros allocates a zero-filled array.
func Zeros[T Float](shape Shape) (*Dense[T], error) {
	return tensor.Zeros[T](shape)
}

// Full allocates an array with every element set to value.
func Full[T Float](shape Shape, value T) (*Dense[T], error) {
	return tensor.Full(shape, value)
}

// MustNew is like New but panics on error.
func MustNew[T Float](shape Shape, data []T) *Dense[T] {
	return tensor.MustNew(shape, data)
}

// MustZeros is like Zeros but panics on error.
func MustZeros[T Float](shape Shape) *Dense[T] {
	return tensor.MustZeros[T](shape)
}
