package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/kernels/internal/parallel"
	"github.com/born-ml/kernels/internal/tensor"
)

// RectlinApply computes the leaky rectifier
//
//	output[i] = max(input[i], 0) + slope*min(input[i], 0)
//
// slope == 0 is the plain ReLU.
func (b *Backend[T]) RectlinApply(input, output tensor.Array[T], slope T) error {
	if err := checkSize("rectlin apply", "output", input.Size(), output.Size()); err != nil {
		return err
	}
	in, out := input.Data(), output.Data()
	parallel.ForRange(len(out), func(s, e int) {
		for i := s; i < e; i++ {
			out[i] = max(in[i], 0) + slope*min(in[i], 0)
		}
	}, b.cfg)
	return nil
}

// RectlinDerivative back-propagates through the leaky rectifier.
//
// output is read and written: on entry it holds the upstream gradient, on
// return output[i] = output[i] * (input[i] > 0 ? 1 : slope).
func (b *Backend[T]) RectlinDerivative(input, output tensor.Array[T], slope T) error {
	if err := checkSize("rectlin derivative", "output", input.Size(), output.Size()); err != nil {
		return err
	}
	in, out := input.Data(), output.Data()
	parallel.ForRange(len(out), func(s, e int) {
		for i := s; i < e; i++ {
			var factor T
			if in[i] > 0 {
				factor = 1
			} else if in[i] <= 0 {
				factor = slope
			}
			out[i] *= factor
		}
	}, b.cfg)
	return nil
}

// LogisticApply computes output[i] = 1 / (1 + exp(-input[i])).
func (b *Backend[T]) LogisticApply(input, output tensor.Array[T]) error {
	if err := checkSize("logistic apply", "output", input.Size(), output.Size()); err != nil {
		return err
	}
	in, out := input.Data(), output.Data()
	parallel.ForRange(len(out), func(s, e int) {
		for i := s; i < e; i++ {
			out[i] = T(1 / (math.Exp(-float64(in[i])) + 1))
		}
	}, b.cfg)
	return nil
}

// LogisticDerivative has no implementation. The gradient of the logistic
// output is folded into the cross-entropy derivative instead; calling this
// always fails with ErrNotImplemented and leaves output untouched.
func (b *Backend[T]) LogisticDerivative(input, output tensor.Array[T]) error {
	if err := checkSize("logistic derivative", "output", input.Size(), output.Size()); err != nil {
		return err
	}
	return &NotImplementedError{Op: "logistic derivative"}
}

// SoftmaxApply normalizes each batch row:
//
//	output[i,j] = exp(input[i,j]) / sum_k exp(input[i,k])
//
// The row maximum is subtracted before exponentiation. The result is the
// same, but large logits no longer overflow to Inf/NaN.
func (b *Backend[T]) SoftmaxApply(input, output tensor.Array[T]) error {
	const op = "softmax apply"
	if err := checkSize(op, "output", input.Size(), output.Size()); err != nil {
		return err
	}
	batch, dim, err := rows(op, input)
	if err != nil {
		return err
	}
	in, out := input.Data(), output.Data()
	parallel.ForRange(batch, func(s, e int) {
		for i := s; i < e; i++ {
			softmaxRow(out[i*dim:(i+1)*dim], in[i*dim:(i+1)*dim])
		}
	}, b.cfg)
	return nil
}

func softmaxRow[T tensor.Float](dst, src []T) {
	if len(src) == 0 {
		return
	}
	maxVal := src[0]
	for _, v := range src[1:] {
		maxVal = max(maxVal, v)
	}

	var sum T
	for j, v := range src {
		ev := T(math.Exp(float64(v - maxVal)))
		dst[j] = ev
		sum += ev
	}
	for j := range dst {
		dst[j] /= sum
	}
}

// SoftmaxDerivative has no implementation; see LogisticDerivative.
func (b *Backend[T]) SoftmaxDerivative(input, output tensor.Array[T]) error {
	if err := checkSize("softmax derivative", "output", input.Size(), output.Size()); err != nil {
		return err
	}
	return &NotImplementedError{Op: "softmax derivative"}
}

// ActivationKind names an activation function.
type ActivationKind int

// Supported activations.
const (
	ActivationRectlin ActivationKind = iota
	ActivationLogistic
	ActivationSoftmax
)

// String returns the activation name.
func (k ActivationKind) String() string {
	switch k {
	case ActivationRectlin:
		return "rectlin"
	case ActivationLogistic:
		return "logistic"
	case ActivationSoftmax:
		return "softmax"
	default:
		return fmt.Sprintf("ActivationKind(%d)", int(k))
	}
}

// Activation is the forward/backward kernel pair of one activation function.
//
// Derivative multiplies output in place: on entry output holds the upstream
// gradient. Variants with SupportsDerivative() == false return a
// *NotImplementedError from Derivative instead of producing a zero gradient.
type Activation[T tensor.Float] interface {
	Kind() ActivationKind
	Apply(input, output tensor.Array[T]) error
	Derivative(input, output tensor.Array[T]) error
	SupportsDerivative() bool
}

// Activation returns the kernel pair for kind. slope is only used by
// ActivationRectlin.
func (b *Backend[T]) Activation(kind ActivationKind, slope T) (Activation[T], error) {
	switch kind {
	case ActivationRectlin:
		return rectlin[T]{b: b, slope: slope}, nil
	case ActivationLogistic:
		return logistic[T]{b: b}, nil
	case ActivationSoftmax:
		return softmax[T]{b: b}, nil
	default:
		return nil, fmt.Errorf("activation %v: %w", kind, ErrInvalidArgument)
	}
}

type rectlin[T tensor.Float] struct {
	b     *Backend[T]
	slope T
}

func (a rectlin[T]) Kind() ActivationKind { return ActivationRectlin }
func (a rectlin[T]) SupportsDerivative() bool { return true }

func (a rectlin[T]) Apply(input, output tensor.Array[T]) error {
	return a.b.RectlinApply(input, output, a.slope)
}

func (a rectlin[T]) Derivative(input, output tensor.Array[T]) error {
	return a.b.RectlinDerivative(input, output, a.slope)
}

type logistic[T tensor.Float] struct {
	b *Backend[T]
}

func (a logistic[T]) Kind() ActivationKind { return ActivationLogistic }
func (a logistic[T]) SupportsDerivative() bool { return false }

func (a logistic[T]) Apply(input, output tensor.Array[T]) error {
	return a.b.LogisticApply(input, output)
}

func (a logistic[T]) Derivative(input, output tensor.Array[T]) error {
	return a.b.LogisticDerivative(input, output)
}

type softmax[T tensor.Float] struct {
	b *Backend[T]
}

func (a softmax[T]) Kind() ActivationKind { return ActivationSoftmax }
func (a softmax[T]) SupportsDerivative() bool { return false }

func (a softmax[T]) Apply(input, output tensor.Array[T]) error {
	return a.b.SoftmaxApply(input, output)
}

func (a softmax[T]) Derivative(input, output tensor.Array[T]) error {
	return a.b.SoftmaxDerivative(input, output)
}
