package cpu

import (
	"math"

	"github.com/born-ml/kernels/internal/parallel"
	"github.com/born-ml/kernels/internal/tensor"
)

// BatchNormForward normalizes every feature over the batch and applies the
// affine transform. For feature i:
//
//	mean         = avg_j input[j,i]
//	inputVar[i]  = avg_j (input[j,i]-mean)^2
//	inputHat[j,i] = (input[j,i]-mean) / sqrt(inputVar[i]+epsilon)
//	output[j,i]  = gamma[i]*inputHat[j,i] + beta[i]
//
// inputVar and inputHat are overwritten; BatchNormBackward consumes them.
func (b *Backend[T]) BatchNormForward(input, gamma, beta, inputVar, inputHat, output tensor.Array[T], epsilon T) error {
	const op = "batch norm forward"
	batch, dim, err := nonEmptyRows(op, input)
	if err != nil {
		return err
	}
	for _, c := range []struct {
		arg  string
		want int
		got  int
	}{
		{"gamma", dim, gamma.Size()},
		{"beta", dim, beta.Size()},
		{"input_var", dim, inputVar.Size()},
		{"input_hat", input.Size(), inputHat.Size()},
		{"output", input.Size(), output.Size()},
	} {
		if err := checkSize(op, c.arg, c.want, c.got); err != nil {
			return err
		}
	}

	in, g, bt := input.Data(), gamma.Data(), beta.Data()
	vr, hat, out := inputVar.Data(), inputHat.Data(), output.Data()
	n := T(batch)
	parallel.ForRange(dim, func(s, e int) {
		for i := s; i < e; i++ {
			var mean T
			for j := 0; j < batch; j++ {
				mean += in[j*dim+i]
			}
			mean /= n

			var variance T
			for j := 0; j < batch; j++ {
				d := in[j*dim+i] - mean
				variance += d * d
			}
			variance /= n
			vr[i] = variance

			divider := T(math.Sqrt(float64(variance + epsilon)))
			for j := 0; j < batch; j++ {
				idx := j*dim + i
				hat[idx] = (in[idx] - mean) / divider
				out[idx] = g[i]*hat[idx] + bt[i]
			}
		}
	}, b.cfg)
	return nil
}

// BatchNormBackward back-propagates upstream through batch normalization.
//
// For feature i it first accumulates
//
//	gammaUpdate[i] += sum_j inputHat[j,i]*upstream[j,i]
//	betaUpdate[i]  += sum_j upstream[j,i]
//
// and then, using the accumulated values,
//
//	output[j,i] = gamma[i] * (upstream[j,i] - (inputHat[j,i]*gammaUpdate[i] + betaUpdate[i])/batch)
//	              / sqrt(inputVar[i]+epsilon)
//
// With zeroed update buffers this is the exact batch-norm input gradient.
// Pre-existing values in gammaUpdate/betaUpdate also enter the correction
// term. output may alias upstream.
func (b *Backend[T]) BatchNormBackward(upstream, inputHat, inputVar, gamma, gammaUpdate, betaUpdate, output tensor.Array[T], epsilon T) error {
	const op = "batch norm backward"
	batch, dim, err := nonEmptyRows(op, upstream)
	if err != nil {
		return err
	}
	for _, c := range []struct {
		arg  string
		want int
		got  int
	}{
		{"input_hat", upstream.Size(), inputHat.Size()},
		{"input_var", dim, inputVar.Size()},
		{"gamma", dim, gamma.Size()},
		{"gamma_update", dim, gammaUpdate.Size()},
		{"beta_update", dim, betaUpdate.Size()},
		{"output", upstream.Size(), output.Size()},
	} {
		if err := checkSize(op, c.arg, c.want, c.got); err != nil {
			return err
		}
	}

	dy, hat, vr, g := upstream.Data(), inputHat.Data(), inputVar.Data(), gamma.Data()
	gu, bu, out := gammaUpdate.Data(), betaUpdate.Data(), output.Data()
	n := T(batch)
	parallel.ForRange(dim, func(s, e int) {
		for i := s; i < e; i++ {
			for j := 0; j < batch; j++ {
				idx := j*dim + i
				gu[i] += hat[idx] * dy[idx]
				bu[i] += dy[idx]
			}

			scale := g[i] / T(math.Sqrt(float64(vr[i]+epsilon)))
			for j := 0; j < batch; j++ {
				idx := j*dim + i
				xhat := (hat[idx]*gu[i] + bu[i]) / n
				out[idx] = scale * (dy[idx] - xhat)
			}
		}
	}, b.cfg)
	return nil
}
