package tensor

import "fmt"

// Array is the capability kernels consume. Implementations own their storage;
// kernels read and write through Data and never resize.
type Array[T Float] interface {
	// Size returns the number of elements. Size() == Shape().NumElements().
	Size() int
	// Shape returns the dimensions. Callers must not mutate the result.
	Shape() Shape
	// Data returns the contiguous row-major backing slice.
	Data() []T
	// Fill sets every element to value.
	Fill(value T)
}

// Dense is a contiguous row-major array of T.
type Dense[T Float] struct {
	shape Shape
	data  []T
}

// Compile-time check that Dense implements Array.
var _ Array[float32] = (*Dense[float32])(nil)

// New wraps data with the given shape. The slice is not copied.
func New[T Float](shape Shape, data []T) (*Dense[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), shape, shape.NumElements())
	}
	return &Dense[T]{shape: shape.Clone(), data: data}, nil
}

// Zeros allocates a zero-filled array with the given shape.
func Zeros[T Float](shape Shape) (*Dense[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	return &Dense[T]{shape: shape.Clone(), data: make([]T, shape.NumElements())}, nil
}

// Full allocates an array with every element set to value.
func Full[T Float](shape Shape, value T) (*Dense[T], error) {
	d, err := Zeros[T](shape)
	if err != nil {
		return nil, err
	}
	d.Fill(value)
	return d, nil
}

// MustNew is like New but panics on error. Intended for tests and literals.
func MustNew[T Float](shape Shape, data []T) *Dense[T] {
	d, err := New(shape, data)
	if err != nil {
		panic(err)
	}
	return d
}

// MustZeros is like Zeros but panics on error.
func MustZeros[T Float](shape Shape) *Dense[T] {
	d, err := Zeros[T](shape)
	if err != nil {
		panic(err)
	}
	return d
}

// Size returns the number of elements.
func (d *Dense[T]) Size() int {
	return len(d.data)
}

// Shape returns the array's shape.
func (d *Dense[T]) Shape() Shape {
	return d.shape
}

// Data returns the backing slice.
// WARNING: Direct access to underlying memory.
func (d *Dense[T]) Data() []T {
	return d.data
}

// DType returns the runtime element type.
func (d *Dense[T]) DType() DataType {
	return DataTypeOf[T]()
}

// At returns the element at linear index i.
func (d *Dense[T]) At(i int) T {
	return d.data[i]
}

// Set stores v at linear index i.
func (d *Dense[T]) Set(i int, v T) {
	d.data[i] = v
}

// Fill sets every element to value.
func (d *Dense[T]) Fill(value T) {
	for i := range d.data {
		d.data[i] = value
	}
}

// Clone returns a deep copy.
func (d *Dense[T]) Clone() *Dense[T] {
	data := make([]T, len(d.data))
	copy(data, d.data)
	return &Dense[T]{shape: d.shape.Clone(), data: data}
}

// String implements fmt.Stringer.
func (d *Dense[T]) String() string {
	return fmt.Sprintf("Dense[%s]%v%v", d.DType(), d.shape, d.data)
}
