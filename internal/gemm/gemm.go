// Package gemm provides the general matrix-multiply-accumulate primitive
// used by the CPU backend:
//
//	C = alpha * op(A) * op(B) + beta * C
//
// All matrices are dense and row-major. op(X) is X or X transposed.
package gemm

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/gonum"

	"github.com/born-ml/kernels/internal/parallel"
	"github.com/born-ml/kernels/internal/tensor"
)

// Algorithm selects the GEMM implementation.
type Algorithm int

// Supported algorithms.
const (
	// BLAS dispatches to gonum's pure Go Sgemm/Dgemm.
	BLAS Algorithm = iota
	// Naive is a row-parallel triple loop.
	Naive
)

// String returns a human-readable algorithm name.
func (a Algorithm) String() string {
	switch a {
	case BLAS:
		return "blas"
	case Naive:
		return "naive"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// ErrBadLength is returned when a buffer is too short for its declared dimensions.
var ErrBadLength = errors.New("gemm: buffer length does not match dimensions")

var impl gonum.Implementation

// Gemm computes c = alpha*op(a)*op(b) + beta*c where op(a) is m×k, op(b) is
// k×n and c is m×n. When transA is set, a is stored k×m; when transB is set,
// b is stored n×k. As in BLAS, beta == 0 overwrites c without reading it.
func Gemm[T tensor.Float](transA, transB bool, m, n, k int, alpha T, a, b []T, beta T, c []T,
	algo Algorithm, cfg parallel.Config,
) error {
	if m < 0 || n < 0 || k < 0 {
		return fmt.Errorf("gemm: negative dimension m=%d n=%d k=%d", m, n, k)
	}
	if len(a) != m*k || len(b) != k*n || len(c) != m*n {
		return fmt.Errorf("%w: a=%d (want %d), b=%d (want %d), c=%d (want %d)",
			ErrBadLength, len(a), m*k, len(b), k*n, len(c), m*n)
	}
	if m == 0 || n == 0 {
		return nil
	}
	if k == 0 {
		scale(c, beta)
		return nil
	}

	if algo == BLAS && gemmBLAS(transA, transB, m, n, k, alpha, a, b, beta, c) {
		return nil
	}
	gemmNaive(transA, transB, m, n, k, alpha, a, b, beta, c, cfg)
	return nil
}

// gemmBLAS reports false when T is not exactly float32 or float64.
func gemmBLAS[T tensor.Float](transA, transB bool, m, n, k int, alpha T, a, b []T, beta T, c []T) bool {
	tA, lda := blas.NoTrans, k
	if transA {
		tA, lda = blas.Trans, m
	}
	tB, ldb := blas.NoTrans, n
	if transB {
		tB, ldb = blas.Trans, k
	}

	switch cs := any(c).(type) {
	case []float32:
		impl.Sgemm(tA, tB, m, n, k, float32(alpha), any(a).([]float32), lda,
			any(b).([]float32), ldb, float32(beta), cs, n)
	case []float64:
		impl.Dgemm(tA, tB, m, n, k, float64(alpha), any(a).([]float64), lda,
			any(b).([]float64), ldb, float64(beta), cs, n)
	default:
		return false
	}
	return true
}

// gemmNaive performs C[i,j] = alpha * sum_p op(A)[i,p] * op(B)[p,j] + beta * C[i,j],
// parallel over rows of C.
func gemmNaive[T tensor.Float](transA, transB bool, m, n, k int, alpha T, a, b []T, beta T, c []T,
	cfg parallel.Config,
) {
	parallel.ForRange(m, func(start, end int) {
		for i := start; i < end; i++ {
			for j := 0; j < n; j++ {
				var sum T
				for p := 0; p < k; p++ {
					var av, bv T
					if transA {
						av = a[p*m+i]
					} else {
						av = a[i*k+p]
					}
					if transB {
						bv = b[j*k+p]
					} else {
						bv = b[p*n+j]
					}
					sum += av * bv
				}
				idx := i*n + j
				if beta == 0 {
					c[idx] = alpha * sum
				} else {
					c[idx] = alpha*sum + beta*c[idx]
				}
			}
		}
	}, cfg)
}

func scale[T tensor.Float](c []T, beta T) {
	for i := range c {
		if beta == 0 {
			c[i] = 0
		} else {
			c[i] *= beta
		}
	}
}
