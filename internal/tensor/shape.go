package tensor

import "fmt"

// Shape represents the dimensions of a dense array.
// By convention the first dimension is the batch dimension.
type Shape []int

// NumElements returns the total number of elements described by the shape.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 1 // Scalar has 1 element
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks that no dimension is negative.
// Zero-sized dimensions are allowed so that an empty batch is representable.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim < 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be >= 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// BatchSize returns the leading (batch) dimension, or 0 for a rank-0 shape.
func (s Shape) BatchSize() int {
	if len(s) == 0 {
		return 0
	}
	return s[0]
}

// FeatureDim returns the per-sample width: NumElements / BatchSize.
// It returns 0 when the batch is empty.
func (s Shape) FeatureDim() int {
	batch := s.BatchSize()
	if batch == 0 {
		return 0
	}
	return s.NumElements() / batch
}
