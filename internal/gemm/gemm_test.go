package gemm

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/kernels/internal/parallel"
)

// transpose returns the rows×cols row-major matrix x transposed.
func transpose(x []float64, rows, cols int) []float64 {
	out := make([]float64, len(x))
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out[j*rows+i] = x[i*cols+j]
		}
	}
	return out
}

func TestGemm_Product2x3x2(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5, 6}    // 2x3
	b := []float64{7, 8, 9, 10, 11, 12} // 3x2
	want := []float64{58, 64, 139, 154}

	for _, algo := range []Algorithm{BLAS, Naive} {
		t.Run(algo.String(), func(t *testing.T) {
			c := make([]float64, 4)
			require.NoError(t, Gemm(false, false, 2, 2, 3, 1, a, b, 0, c, algo, parallel.DefaultConfig()))
			assert.InDeltaSlice(t, want, c, 1e-12)
		})
	}
}

func TestGemm_AlphaBeta(t *testing.T) {
	a := []float32{1, 0, 0, 1} // identity
	b := []float32{1, 2, 3, 4}

	for _, algo := range []Algorithm{BLAS, Naive} {
		t.Run(algo.String(), func(t *testing.T) {
			c := []float32{1, 1, 1, 1}
			require.NoError(t, Gemm(false, false, 2, 2, 2, 2, a, b, 3, c, algo, parallel.Sequential()))
			assert.InDeltaSlice(t, []float32{5, 7, 9, 11}, c, 1e-6)
		})
	}
}

func TestGemm_TransposeCombinations(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	m, n, k := 5, 4, 3
	a := make([]float64, m*k)
	b := make([]float64, k*n)
	for i := range a {
		a[i] = r.Float64()
	}
	for i := range b {
		b[i] = r.Float64()
	}

	want := make([]float64, m*n)
	require.NoError(t, Gemm(false, false, m, n, k, 1, a, b, 0, want, Naive, parallel.Sequential()))

	at := transpose(a, m, k)
	bt := transpose(b, k, n)

	cases := []struct {
		name           string
		transA, transB bool
		a, b           []float64
	}{
		{"NN", false, false, a, b},
		{"TN", true, false, at, b},
		{"NT", false, true, a, bt},
		{"TT", true, true, at, bt},
	}

	for _, tc := range cases {
		for _, algo := range []Algorithm{BLAS, Naive} {
			t.Run(tc.name+"/"+algo.String(), func(t *testing.T) {
				c := make([]float64, m*n)
				cfg := parallel.Config{Enabled: true, NumWorkers: 3, MinChunkSize: 1}
				require.NoError(t, Gemm(tc.transA, tc.transB, m, n, k, 1, tc.a, tc.b, 0, c, algo, cfg))
				assert.InDeltaSlice(t, want, c, 1e-12)
			})
		}
	}
}

func TestGemm_BadLength(t *testing.T) {
	c := make([]float64, 4)
	err := Gemm(false, false, 2, 2, 3, 1, make([]float64, 5), make([]float64, 6), 0, c, BLAS, parallel.Sequential())
	require.ErrorIs(t, err, ErrBadLength)
}

func TestGemm_ZeroInnerDimension(t *testing.T) {
	c := []float64{1, 2, 3, 4}
	require.NoError(t, Gemm(false, false, 2, 2, 0, 1, []float64(nil), []float64(nil), 0.5, c, BLAS, parallel.Sequential()))
	assert.Equal(t, []float64{0.5, 1, 1.5, 2}, c)
}

type myFloat float32

func TestGemm_NamedTypeFallsBackToNaive(t *testing.T) {
	a := []myFloat{1, 2}
	b := []myFloat{3, 4}
	c := make([]myFloat, 1)
	require.NoError(t, Gemm(false, false, 1, 1, 2, 1, a, b, 0, c, BLAS, parallel.Sequential()))
	assert.Equal(t, myFloat(11), c[0])
}

func BenchmarkGemm(b *testing.B) {
	const size = 128
	x := make([]float32, size*size)
	y := make([]float32, size*size)
	for i := range x {
		x[i] = float32(i%7) * 0.5
		y[i] = float32(i%5) * 0.25
	}
	out := make([]float32, size*size)

	for _, algo := range []Algorithm{BLAS, Naive} {
		b.Run(algo.String(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = Gemm(false, false, size, size, size, 1, x, y, 0, out, algo, parallel.DefaultConfig())
			}
		})
	}
}
