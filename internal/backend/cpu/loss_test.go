package cpu

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/kernels/internal/mathutil"
)

func TestBackend_CrossEntropyBinaryApply(t *testing.T) {
	b := newTestBackend[float64]()

	t.Run("HandComputed", func(t *testing.T) {
		in := dense[float64]([]int{2, 1}, 0.5, 0.5)
		tg := dense[float64]([]int{2, 1}, 1, 0)
		loss, err := b.CrossEntropyBinaryApply(in, tg)
		require.NoError(t, err)
		assert.InDelta(t, math.Ln2, loss, 1e-12)
	})

	t.Run("InputEqualsTargetIsPositive", func(t *testing.T) {
		in := dense[float64]([]int{2, 2}, 0.2, 0.4, 0.6, 0.8)
		loss, err := b.CrossEntropyBinaryApply(in, in)
		require.NoError(t, err)
		assert.Greater(t, loss, 0.0)
	})

	t.Run("SaturatedInputStaysFinite", func(t *testing.T) {
		in := dense[float64]([]int{2, 1}, 0, 1)
		tg := dense[float64]([]int{2, 1}, 1, 0)
		loss, err := b.CrossEntropyBinaryApply(in, tg)
		require.NoError(t, err)
		assert.InDelta(t, 50, loss, 1e-12)
	})
}

func TestBackend_CrossEntropyMultiApply(t *testing.T) {
	b := newTestBackend[float64]()
	in := dense[float64]([]int{2, 3}, 0.7, 0.2, 0.1, 0.1, 0.1, 0.8)
	tg := dense[float64]([]int{2, 3}, 1, 0, 0, 0, 0, 1)

	loss, err := b.CrossEntropyMultiApply(in, tg)
	require.NoError(t, err)
	assert.InDelta(t, -(math.Log(0.7)+math.Log(0.8))/2, loss, 1e-12)
}

func TestBackend_SquareMean(t *testing.T) {
	b := newTestBackend[float32]()
	in := dense[float32]([]int{2, 2}, 1, 2, 3, 4)

	t.Run("Equal", func(t *testing.T) {
		loss, err := b.SquareMeanApply(in, in)
		require.NoError(t, err)
		assert.Equal(t, float32(0), loss)

		grad := dense[float32]([]int{2, 2}, 9, 9, 9, 9)
		require.NoError(t, b.SquareMeanDerivative(in, in, grad))
		assert.Equal(t, []float32{0, 0, 0, 0}, grad.Data())
	})

	t.Run("Known", func(t *testing.T) {
		tg := dense[float32]([]int{2, 2}, 0, 2, 3, 2)
		loss, err := b.SquareMeanApply(in, tg)
		require.NoError(t, err)
		// (1 + 0 + 0 + 4) / (2*2)
		assert.InDelta(t, 1.25, loss, 1e-6)
	})
}

func TestBackend_AbsMean(t *testing.T) {
	b := newTestBackend[float64]()

	t.Run("Apply", func(t *testing.T) {
		in := dense[float64]([]int{2, 2}, 1, -2, 3, 4)
		tg := dense[float64]([]int{2, 2}, 0, 2, 3, 2)
		loss, err := b.AbsMeanApply(in, tg)
		require.NoError(t, err)
		assert.InDelta(t, 3.5, loss, 1e-12)
	})

	t.Run("DerivativeSign", func(t *testing.T) {
		in := dense[float64]([]int{3, 1}, 2, 1, 1)
		tg := dense[float64]([]int{3, 1}, 1, 1, 2)
		out := zeros[float64](3, 1)
		require.NoError(t, b.AbsMeanDerivative(in, tg, out))
		assert.Equal(t, []float64{1, 0, -1}, out.Data())
	})
}

func TestBackend_DifferenceDerivatives(t *testing.T) {
	b := newTestBackend[float64]()
	in := dense[float64]([]int{2, 2}, 0.9, 0.1, 0.3, 0.7)
	tg := dense[float64]([]int{2, 2}, 1, 0, 0, 1)
	want := []float64{0.9 - 1, 0.1, 0.3, 0.7 - 1}

	for name, fn := range map[string]func(in, tg, out *denseF64) error{
		"CrossEntropyBinary": func(in, tg, out *denseF64) error { return b.CrossEntropyBinaryDerivative(in, tg, out) },
		"CrossEntropyMulti":  func(in, tg, out *denseF64) error { return b.CrossEntropyMultiDerivative(in, tg, out) },
		"SquareMean":         func(in, tg, out *denseF64) error { return b.SquareMeanDerivative(in, tg, out) },
	} {
		t.Run(name, func(t *testing.T) {
			out := zeros[float64](2, 2)
			require.NoError(t, fn(in, tg, out))
			assert.InDeltaSlice(t, want, out.Data(), 1e-12)

			require.ErrorIs(t, fn(in, tg, zeros[float64](3)), ErrSizeMismatch)
		})
	}
}

func TestBackend_LossPreconditions(t *testing.T) {
	b := newTestBackend[float32]()

	_, err := b.CrossEntropyBinaryApply(zeros[float32](2, 2), zeros[float32](2, 3))
	require.ErrorIs(t, err, ErrSizeMismatch)

	for kind := LossCrossEntropyBinary; kind <= LossAbsMean; kind++ {
		loss, err := b.Loss(kind)
		require.NoError(t, err)
		_, err = loss.Apply(zeros[float32](0, 3), zeros[float32](0, 3))
		require.ErrorIsf(t, err, ErrEmptyBatch, "%v", kind)
	}
}

func TestBackend_LossParallelMatchesSequential(t *testing.T) {
	par := newTestBackend[float64]()
	seq := newSequentialBackend[float64]()

	n := 4096
	in := make([]float64, n)
	tg := make([]float64, n)
	for i := range in {
		in[i] = 0.05 + 0.9*float64(i%97)/97
		tg[i] = float64(i % 2)
	}
	input := dense[float64]([]int{64, 64}, in...)
	target := dense[float64]([]int{64, 64}, tg...)

	for kind := LossCrossEntropyBinary; kind <= LossAbsMean; kind++ {
		t.Run(kind.String(), func(t *testing.T) {
			lp, err := par.Loss(kind)
			require.NoError(t, err)
			ls, err := seq.Loss(kind)
			require.NoError(t, err)

			got, err := lp.Apply(input, target)
			require.NoError(t, err)
			want, err := ls.Apply(input, target)
			require.NoError(t, err)
			assert.InDelta(t, want, got, 1e-9)
			assert.Equal(t, kind, lp.Kind())
		})
	}
}

func TestBackend_CrossEntropyMatchesReference(t *testing.T) {
	b := newTestBackend[float64]()
	in := dense[float64]([]int{4, 2}, 0.1, 0.9, 0.3, 0.7, 0.5, 0.5, 0.99, 0.01)
	tg := dense[float64]([]int{4, 2}, 0, 1, 1, 0, 1, 0, 1, 0)

	want := 0.0
	for i := range in.Data() {
		x, y := in.At(i), tg.At(i)
		want += -mathutil.SafeLog(x)*y - mathutil.SafeLog(1-x)*(1-y)
	}
	want /= 4

	got, err := b.CrossEntropyBinaryApply(in, tg)
	require.NoError(t, err)
	assert.InDelta(t, want, got, 1e-12)
}

func TestBackend_LossUnknownKind(t *testing.T) {
	_, err := newTestBackend[float64]().Loss(LossKind(-1))
	require.ErrorIs(t, err, ErrInvalidArgument)
}
