package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/kernels/internal/parallel"
	"github.com/born-ml/kernels/internal/rng"
	"github.com/born-ml/kernels/internal/tensor"
)

func checkGenerator(op string, gen *rng.Generator) error {
	if gen == nil {
		return fmt.Errorf("%s: nil generator: %w", op, ErrInvalidArgument)
	}
	return nil
}

func checkFinite[T tensor.Float](op string, params ...T) error {
	for _, p := range params {
		if math.IsNaN(float64(p)) || math.IsInf(float64(p), 0) {
			return fmt.Errorf("%s: parameter %v: %w", op, p, ErrInvalidArgument)
		}
	}
	return nil
}

// UniformDistribution fills output with independent draws from U[low, high).
func (b *Backend[T]) UniformDistribution(gen *rng.Generator, output tensor.Array[T], low, high T) error {
	const op = "uniform distribution"
	if err := checkGenerator(op, gen); err != nil {
		return err
	}
	if err := checkFinite(op, low, high); err != nil {
		return err
	}
	if low > high {
		return fmt.Errorf("%s: low %v > high %v: %w", op, low, high, ErrInvalidArgument)
	}
	rng.Uniform(gen, output.Data(), low, high, b.cfg)
	return nil
}

// NormalDistribution fills output with independent draws from N(loc, scale^2).
func (b *Backend[T]) NormalDistribution(gen *rng.Generator, output tensor.Array[T], loc, scale T) error {
	const op = "normal distribution"
	if err := checkGenerator(op, gen); err != nil {
		return err
	}
	if err := checkFinite(op, loc, scale); err != nil {
		return err
	}
	if scale < 0 {
		return fmt.Errorf("%s: negative scale %v: %w", op, scale, ErrInvalidArgument)
	}
	rng.Normal(gen, output.Data(), loc, scale, b.cfg)
	return nil
}

// ConstantDistribution fills output with value.
func (b *Backend[T]) ConstantDistribution(output tensor.Array[T], value T) error {
	output.Fill(value)
	return nil
}

// MakeBinaryMask builds a dropout mask: output is filled from U[low, high)
// and then binarized to output[i] = 1 if output[i] < keep, else 0.
func (b *Backend[T]) MakeBinaryMask(gen *rng.Generator, output tensor.Array[T], low, high, keep T) error {
	if err := b.UniformDistribution(gen, output, low, high); err != nil {
		return fmt.Errorf("make binary mask: %w", err)
	}
	out := output.Data()
	parallel.ForRange(len(out), func(s, e int) {
		for i := s; i < e; i++ {
			if out[i] < keep {
				out[i] = 1
			} else {
				out[i] = 0
			}
		}
	}, b.cfg)
	return nil
}
