package cpu

import (
	"fmt"

	"github.com/born-ml/kernels/internal/gemm"
	"github.com/born-ml/kernels/internal/parallel"
	"github.com/born-ml/kernels/internal/tensor"
)

// Algorithm selects the GEMM implementation used by MatrixMultiply.
type Algorithm = gemm.Algorithm

// Supported GEMM algorithms.
const (
	AlgorithmBLAS  = gemm.BLAS
	AlgorithmNaive = gemm.Naive
)

// matrixDims views a as a (rows, size/rows) matrix.
func matrixDims[T tensor.Float](op, arg string, a tensor.Array[T]) (r, c int, err error) {
	r, c, err = rows(op, a)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", arg, err)
	}
	return r, c, nil
}

// MatrixMultiply computes output = alpha*op(left)*op(right) + beta*output.
//
// left and right are viewed as matrices of shape (shape[0], size/shape[0]);
// transa/transb transpose them. The contraction dimensions must agree
// (ErrDimensionMismatch) and output must hold dimLeft*dimRight elements
// (ErrSizeMismatch).
func (b *Backend[T]) MatrixMultiply(left, right, output tensor.Array[T], transa, transb bool, alpha, beta T, algorithm Algorithm) error {
	const op = "matrix multiply"
	leftRows, leftCols, err := matrixDims(op, "left", left)
	if err != nil {
		return err
	}
	rightRows, rightCols, err := matrixDims(op, "right", right)
	if err != nil {
		return err
	}

	dimLeft, dimCommonLeft := leftRows, leftCols
	if transa {
		dimLeft, dimCommonLeft = leftCols, leftRows
	}
	dimRight, dimCommonRight := rightCols, rightRows
	if transb {
		dimRight, dimCommonRight = rightRows, rightCols
	}

	if err := checkDim(op, "common", dimCommonLeft, dimCommonRight); err != nil {
		return err
	}
	if err := checkSize(op, "output", dimLeft*dimRight, output.Size()); err != nil {
		return err
	}

	if err := gemm.Gemm(transa, transb, dimLeft, dimRight, dimCommonLeft,
		alpha, left.Data(), right.Data(), beta, output.Data(), algorithm, b.cfg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Transpose2D writes output[j,i] = input[i,j] for a (rows, cols) input and a
// (cols, rows) output.
func (b *Backend[T]) Transpose2D(input, output tensor.Array[T]) error {
	const op = "transpose 2d"
	inShape, outShape := input.Shape(), output.Shape()
	if err := checkDim(op, "input rank", 2, len(inShape)); err != nil {
		return err
	}
	if err := checkDim(op, "output rank", 2, len(outShape)); err != nil {
		return err
	}
	dimLeft, dimRight := inShape[0], inShape[1]
	if err := checkDim(op, "output cols", dimLeft, outShape[1]); err != nil {
		return err
	}
	if err := checkDim(op, "output rows", dimRight, outShape[0]); err != nil {
		return err
	}

	in, out := input.Data(), output.Data()
	parallel.ForRange(dimLeft*dimRight, func(s, e int) {
		for idx := s; idx < e; idx++ {
			i, j := idx/dimRight, idx%dimRight
			out[j*dimLeft+i] = in[idx]
		}
	}, b.cfg)
	return nil
}
