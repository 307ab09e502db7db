package cpu

import (
	"github.com/born-ml/kernels/internal/parallel"
	"github.com/born-ml/kernels/internal/tensor"
)

// BiasForward broadcasts bias over the batch: output[i,j] = input[i,j] + bias[j].
func (b *Backend[T]) BiasForward(input, bias, output tensor.Array[T]) error {
	const op = "bias forward"
	if err := checkSize(op, "output", input.Size(), output.Size()); err != nil {
		return err
	}
	batch, dim, err := rows(op, input)
	if err != nil {
		return err
	}
	if batch == 0 {
		return nil
	}
	if err := checkSize(op, "bias", dim, bias.Size()); err != nil {
		return err
	}

	in, bs, out := input.Data(), bias.Data(), output.Data()
	parallel.ForRange(batch, func(s, e int) {
		for i := s; i < e; i++ {
			addRange(out[i*dim:(i+1)*dim], in[i*dim:(i+1)*dim], bs)
		}
	}, b.cfg)
	return nil
}

// BiasBackwardUpdate accumulates the upstream gradient over the batch:
//
//	update[j] += sum_i input[i,j]
//
// update is never reset; callers zero it when they do not want accumulation.
func (b *Backend[T]) BiasBackwardUpdate(input, update tensor.Array[T]) error {
	const op = "bias backward update"
	batch, dim, err := rows(op, input)
	if err != nil {
		return err
	}
	if batch == 0 {
		return nil
	}
	if err := checkSize(op, "update", dim, update.Size()); err != nil {
		return err
	}

	in, up := input.Data(), update.Data()
	parallel.ForRange(dim, func(s, e int) {
		for j := s; j < e; j++ {
			var sum T
			for i := 0; i < batch; i++ {
				sum += in[i*dim+j]
			}
			up[j] += sum
		}
	}, b.cfg)
	return nil
}
