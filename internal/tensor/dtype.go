// Package tensor provides the dense array consumed by the CPU kernels.
//
// Kernels only rely on the narrow Array contract; Dense is the contiguous,
// row-major implementation used by callers and tests.
package tensor

import "unsafe"

// Float is the constraint for kernel element types.
// Each kernel call operates over exactly one element type.
type Float interface {
	~float32 | ~float64
}

// DataType represents runtime type information for a Float element type.
type DataType int

// Supported element types.
const (
	Float32 DataType = iota
	Float64
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32:
		return 4
	case Float64:
		return 8
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "unknown"
	}
}

// DataTypeOf infers the DataType of T from its width, so named float types
// map to their underlying type.
func DataTypeOf[T Float]() DataType {
	var zero T
	if unsafe.Sizeof(zero) == 4 {
		return Float32
	}
	return Float64
}
