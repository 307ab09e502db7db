package cpu

import (
	"fmt"
	"log/slog"

	"github.com/born-ml/kernels/internal/parallel"
	"github.com/born-ml/kernels/internal/tensor"
)

// GradientDescent applies one momentum SGD step with weight decay:
//
//	gradient[i] /= batchSize
//	velocity[i]  = velocity[i]*momentumCoef - learningRate*(gradient[i] + decay*weight[i])
//	weight[i]   += velocity[i]
//
// weight, gradient and velocity are all updated in place.
func (b *Backend[T]) GradientDescent(weight, gradient, velocity tensor.Array[T], momentumCoef, learningRate, decay T, batchSize int) error {
	const op = "gradient descent"
	if err := checkSize(op, "gradient", weight.Size(), gradient.Size()); err != nil {
		return err
	}
	if err := checkSize(op, "velocity", gradient.Size(), velocity.Size()); err != nil {
		return err
	}
	switch {
	case batchSize == 0:
		return fmt.Errorf("%s: %w", op, ErrEmptyBatch)
	case batchSize < 0:
		return fmt.Errorf("%s: batch size %d: %w", op, batchSize, ErrInvalidArgument)
	}

	b.logger.Debug(op,
		slog.Int("weight_size", weight.Size()),
		slog.Float64("momentum_coef", float64(momentumCoef)),
		slog.Float64("learning_rate", float64(learningRate)),
		slog.Float64("decay", float64(decay)),
		slog.Int("batch_size", batchSize))

	w, g, v := weight.Data(), gradient.Data(), velocity.Data()
	n := T(batchSize)
	parallel.ForRange(len(v), func(s, e int) {
		for i := s; i < e; i++ {
			g[i] /= n
			v[i] = v[i]*momentumCoef - learningRate*(g[i]+decay*w[i])
			w[i] += v[i]
		}
	}, b.cfg)
	return nil
}
