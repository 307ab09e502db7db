package cpu

import (
	"github.com/born-ml/kernels/internal/parallel"
	"github.com/born-ml/kernels/internal/tensor"
)

// EvaluateClassify returns the fraction of rows whose argmax in output (first
// maximum wins) hits a 1 in the one-hot target.
func (b *Backend[T]) EvaluateClassify(output, target tensor.Array[T]) (float64, error) {
	const op = "evaluate classify"
	if err := checkSize(op, "target", output.Size(), target.Size()); err != nil {
		return 0, err
	}
	batch, dim, err := nonEmptyRows(op, output)
	if err != nil {
		return 0, err
	}
	if dim == 0 {
		return 0, nil
	}

	out, tg := output.Data(), target.Data()
	correct := parallel.Reduce(batch, func(s, e int) int {
		hits := 0
		for i := s; i < e; i++ {
			row := out[i*dim : (i+1)*dim]
			maxIndex := 0
			for j := 1; j < dim; j++ {
				if row[maxIndex] < row[j] {
					maxIndex = j
				}
			}
			if tg[i*dim+maxIndex] == 1 {
				hits++
			}
		}
		return hits
	}, b.cfg)
	return float64(correct) / float64(batch), nil
}

// EvaluateRegress returns the mean over the batch of the summed absolute
// error of each sample: sum_{i,j} |output[i,j]-target[i,j]| / batch.
//
// Every feature position contributes, and each row is counted once.
func (b *Backend[T]) EvaluateRegress(output, target tensor.Array[T]) (float64, error) {
	const op = "evaluate regress"
	if err := checkSize(op, "target", output.Size(), target.Size()); err != nil {
		return 0, err
	}
	batch, _, err := nonEmptyRows(op, output)
	if err != nil {
		return 0, err
	}

	out, tg := output.Data(), target.Data()
	total := parallel.Reduce(len(out), func(s, e int) float64 {
		var private float64
		for i := s; i < e; i++ {
			private += float64(abs(out[i] - tg[i]))
		}
		return private
	}, b.cfg)
	return total / float64(batch), nil
}
