package cpu

import (
	"errors"
	"fmt"

	"github.com/born-ml/kernels/internal/tensor"
)

// Common errors.
var (
	ErrSizeMismatch      = errors.New("size mismatch")
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrEmptyBatch        = errors.New("empty batch")
	ErrNotImplemented    = errors.New("not implemented")
	ErrInvalidArgument   = errors.New("invalid argument")
)

// ShapeError reports a precondition violation between kernel arguments.
// It unwraps to ErrSizeMismatch or ErrDimensionMismatch.
type ShapeError struct {
	Op   string // Kernel name (e.g. "add")
	Arg  string // Offending argument or derived dimension
	Want int    // Expected size or dimension
	Got  int    // Actual size or dimension
	Err  error  // ErrSizeMismatch or ErrDimensionMismatch
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %v: %s: want %d, got %d", e.Op, e.Err, e.Arg, e.Want, e.Got)
}

// Unwrap returns the sentinel error.
func (e *ShapeError) Unwrap() error {
	return e.Err
}

// NotImplementedError is returned by kernels that exist in the capability
// set but have no implementation. The output argument is left untouched.
type NotImplementedError struct {
	Op string
}

// Error implements the error interface.
func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, ErrNotImplemented)
}

// Unwrap returns ErrNotImplemented.
func (e *NotImplementedError) Unwrap() error {
	return ErrNotImplemented
}

func checkSize(op, arg string, want, got int) error {
	if want != got {
		return &ShapeError{Op: op, Arg: arg, Want: want, Got: got, Err: ErrSizeMismatch}
	}
	return nil
}

func checkDim(op, arg string, want, got int) error {
	if want != got {
		return &ShapeError{Op: op, Arg: arg, Want: want, Got: got, Err: ErrDimensionMismatch}
	}
	return nil
}

// rows returns the batch size and per-sample width of a.
// A zero batch yields (0, 0, nil); a rank-0 array is rejected.
func rows[T tensor.Float](op string, a tensor.Array[T]) (batch, dim int, err error) {
	shape := a.Shape()
	if len(shape) == 0 {
		return 0, 0, &ShapeError{Op: op, Arg: "rank", Want: 1, Got: 0, Err: ErrDimensionMismatch}
	}
	return shape.BatchSize(), shape.FeatureDim(), nil
}

// nonEmptyRows is rows with an empty batch reported as ErrEmptyBatch.
func nonEmptyRows[T tensor.Float](op string, a tensor.Array[T]) (batch, dim int, err error) {
	batch, dim, err = rows(op, a)
	if err != nil {
		return 0, 0, err
	}
	if batch == 0 {
		return 0, 0, fmt.Errorf("%s: %w", op, ErrEmptyBatch)
	}
	return batch, dim, nil
}
