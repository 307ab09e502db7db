package cpu

import (
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/kernels/internal/parallel"
	"github.com/born-ml/kernels/internal/tensor"
)

// binaryOperands checks that left, right and output have the same size and
// returns their backing slices.
func binaryOperands[T tensor.Float](op string, left, right, output tensor.Array[T]) (l, r, o []T, err error) {
	if err := checkSize(op, "right", left.Size(), right.Size()); err != nil {
		return nil, nil, nil, err
	}
	if err := checkSize(op, "output", left.Size(), output.Size()); err != nil {
		return nil, nil, nil, err
	}
	return left.Data(), right.Data(), output.Data(), nil
}

// Add computes output[i] = left[i] + right[i].
func (b *Backend[T]) Add(left, right, output tensor.Array[T]) error {
	l, r, o, err := binaryOperands("add", left, right, output)
	if err != nil {
		return err
	}
	parallel.ForRange(len(o), func(s, e int) {
		addRange(o[s:e], l[s:e], r[s:e])
	}, b.cfg)
	return nil
}

// Minus computes output[i] = left[i] - right[i].
func (b *Backend[T]) Minus(left, right, output tensor.Array[T]) error {
	l, r, o, err := binaryOperands("minus", left, right, output)
	if err != nil {
		return err
	}
	parallel.ForRange(len(o), func(s, e int) {
		subRange(o[s:e], l[s:e], r[s:e])
	}, b.cfg)
	return nil
}

// Multiply computes output[i] = left[i] * right[i].
func (b *Backend[T]) Multiply(left, right, output tensor.Array[T]) error {
	l, r, o, err := binaryOperands("multiply", left, right, output)
	if err != nil {
		return err
	}
	parallel.ForRange(len(o), func(s, e int) {
		mulRange(o[s:e], l[s:e], r[s:e])
	}, b.cfg)
	return nil
}

// MultiplyScalar computes output[i] = left[i] * scalar.
func (b *Backend[T]) MultiplyScalar(left, output tensor.Array[T], scalar T) error {
	if err := checkSize("multiply scalar", "output", left.Size(), output.Size()); err != nil {
		return err
	}
	l, o := left.Data(), output.Data()
	parallel.ForRange(len(o), func(s, e int) {
		for i := s; i < e; i++ {
			o[i] = l[i] * scalar
		}
	}, b.cfg)
	return nil
}

// Maximum computes output[i] = max(left[i], right[i]).
func (b *Backend[T]) Maximum(left, right, output tensor.Array[T]) error {
	l, r, o, err := binaryOperands("maximum", left, right, output)
	if err != nil {
		return err
	}
	parallel.ForRange(len(o), func(s, e int) {
		maxRange(o[s:e], l[s:e], r[s:e])
	}, b.cfg)
	return nil
}

// Sum returns the sequential sum of every element of input.
func (b *Backend[T]) Sum(input tensor.Array[T]) T {
	data := input.Data()
	if d, ok := any(data).([]float64); ok {
		return T(floats.Sum(d))
	}
	var sum T
	for _, v := range data {
		sum += v
	}
	return sum
}

func addRange[T tensor.Float](dst, a, b []T) {
	for i := range dst {
		dst[i] = a[i] + b[i]
	}
}

func subRange[T tensor.Float](dst, a, b []T) {
	for i := range dst {
		dst[i] = a[i] - b[i]
	}
}

func mulRange[T tensor.Float](dst, a, b []T) {
	for i := range dst {
		dst[i] = a[i] * b[i]
	}
}

func maxRange[T tensor.Float](dst, a, b []T) {
	for i := range dst {
		dst[i] = max(a[i], b[i])
	}
}
