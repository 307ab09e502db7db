package cpu

import (
	"fmt"

	"github.com/born-ml/kernels/internal/mathutil"
	"github.com/born-ml/kernels/internal/parallel"
	"github.com/born-ml/kernels/internal/tensor"
)

// lossOperands checks input/target sizes and returns the batch size.
func lossOperands[T tensor.Float](op string, input, target tensor.Array[T]) (batch int, err error) {
	if err := checkSize(op, "target", input.Size(), target.Size()); err != nil {
		return 0, err
	}
	batch, _, err = nonEmptyRows(op, input)
	return batch, err
}

// CrossEntropyBinaryApply returns
//
//	(1/batch) * sum_i [ -log(input[i])*target[i] - log(1-input[i])*(1-target[i]) ]
//
// with logarithms clamped by mathutil.SafeLog.
func (b *Backend[T]) CrossEntropyBinaryApply(input, target tensor.Array[T]) (T, error) {
	batch, err := lossOperands("cross entropy binary apply", input, target)
	if err != nil {
		return 0, err
	}
	in, tg := input.Data(), target.Data()
	total := parallel.Reduce(len(in), func(s, e int) T {
		var private T
		for i := s; i < e; i++ {
			private += -mathutil.SafeLog(in[i])*tg[i] - mathutil.SafeLog(1-in[i])*(1-tg[i])
		}
		return private
	}, b.cfg)
	return total / T(batch), nil
}

// CrossEntropyMultiApply returns -(1/batch) * sum_i log(input[i]) * target[i].
func (b *Backend[T]) CrossEntropyMultiApply(input, target tensor.Array[T]) (T, error) {
	batch, err := lossOperands("cross entropy multi apply", input, target)
	if err != nil {
		return 0, err
	}
	in, tg := input.Data(), target.Data()
	total := parallel.Reduce(len(in), func(s, e int) T {
		var private T
		for i := s; i < e; i++ {
			private += mathutil.SafeLog(in[i]) * tg[i]
		}
		return private
	}, b.cfg)
	return -total / T(batch), nil
}

// SquareMeanApply returns sum_{i,j} (input[i,j]-target[i,j])^2 / (2*batch).
func (b *Backend[T]) SquareMeanApply(input, target tensor.Array[T]) (T, error) {
	batch, err := lossOperands("square mean apply", input, target)
	if err != nil {
		return 0, err
	}
	in, tg := input.Data(), target.Data()
	total := parallel.Reduce(len(in), func(s, e int) T {
		var private T
		for i := s; i < e; i++ {
			d := in[i] - tg[i]
			private += d * d
		}
		return private
	}, b.cfg)
	return total / T(2*batch), nil
}

// AbsMeanApply returns sum_{i,j} |input[i,j]-target[i,j]| / batch.
func (b *Backend[T]) AbsMeanApply(input, target tensor.Array[T]) (T, error) {
	batch, err := lossOperands("abs mean apply", input, target)
	if err != nil {
		return 0, err
	}
	in, tg := input.Data(), target.Data()
	total := parallel.Reduce(len(in), func(s, e int) T {
		var private T
		for i := s; i < e; i++ {
			private += abs(in[i] - tg[i])
		}
		return private
	}, b.cfg)
	return total / T(batch), nil
}

// differenceDerivative writes output = input - target.
//
// Binary cross-entropy after a logistic output, multiclass cross-entropy
// after a softmax output, and squared error after a linear output all have
// this gradient with respect to the pre-activation.
func (b *Backend[T]) differenceDerivative(op string, input, target, output tensor.Array[T]) error {
	if err := b.Minus(input, target, output); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CrossEntropyBinaryDerivative writes output = input - target.
func (b *Backend[T]) CrossEntropyBinaryDerivative(input, target, output tensor.Array[T]) error {
	return b.differenceDerivative("cross entropy binary derivative", input, target, output)
}

// CrossEntropyMultiDerivative writes output = input - target.
func (b *Backend[T]) CrossEntropyMultiDerivative(input, target, output tensor.Array[T]) error {
	return b.differenceDerivative("cross entropy multi derivative", input, target, output)
}

// SquareMeanDerivative writes output = input - target.
func (b *Backend[T]) SquareMeanDerivative(input, target, output tensor.Array[T]) error {
	return b.differenceDerivative("square mean derivative", input, target, output)
}

// AbsMeanDerivative writes output = sign(input - target), with ties mapped to 0.
func (b *Backend[T]) AbsMeanDerivative(input, target, output tensor.Array[T]) error {
	in, tg, out, err := binaryOperands("abs mean derivative", input, target, output)
	if err != nil {
		return err
	}
	parallel.ForRange(len(out), func(s, e int) {
		for i := s; i < e; i++ {
			switch {
			case in[i] > tg[i]:
				out[i] = 1
			case in[i] < tg[i]:
				out[i] = -1
			default:
				out[i] = 0
			}
		}
	}, b.cfg)
	return nil
}

func abs[T tensor.Float](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

// LossKind names a loss function.
type LossKind int

// Supported losses.
const (
	LossCrossEntropyBinary LossKind = iota
	LossCrossEntropyMulti
	LossSquareMean
	LossAbsMean
)

// String returns the loss name.
func (k LossKind) String() string {
	switch k {
	case LossCrossEntropyBinary:
		return "cross_entropy_binary"
	case LossCrossEntropyMulti:
		return "cross_entropy_multi"
	case LossSquareMean:
		return "square_mean"
	case LossAbsMean:
		return "abs_mean"
	default:
		return fmt.Sprintf("LossKind(%d)", int(k))
	}
}

// Loss pairs a scalar forward reduction with its per-element gradient.
type Loss[T tensor.Float] interface {
	Kind() LossKind
	Apply(input, target tensor.Array[T]) (T, error)
	Derivative(input, target, output tensor.Array[T]) error
}

type lossPair[T tensor.Float] struct {
	kind       LossKind
	apply      func(input, target tensor.Array[T]) (T, error)
	derivative func(input, target, output tensor.Array[T]) error
}

func (l lossPair[T]) Kind() LossKind { return l.kind }

func (l lossPair[T]) Apply(input, target tensor.Array[T]) (T, error) {
	return l.apply(input, target)
}

func (l lossPair[T]) Derivative(input, target, output tensor.Array[T]) error {
	return l.derivative(input, target, output)
}

// Loss returns the kernel pair for kind.
func (b *Backend[T]) Loss(kind LossKind) (Loss[T], error) {
	switch kind {
	case LossCrossEntropyBinary:
		return lossPair[T]{kind, b.CrossEntropyBinaryApply, b.CrossEntropyBinaryDerivative}, nil
	case LossCrossEntropyMulti:
		return lossPair[T]{kind, b.CrossEntropyMultiApply, b.CrossEntropyMultiDerivative}, nil
	case LossSquareMean:
		return lossPair[T]{kind, b.SquareMeanApply, b.SquareMeanDerivative}, nil
	case LossAbsMean:
		return lossPair[T]{kind, b.AbsMeanApply, b.AbsMeanDerivative}, nil
	default:
		return nil, fmt.Errorf("loss %v: %w", kind, ErrInvalidArgument)
	}
}
