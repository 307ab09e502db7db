package cpu_test

import (
	"errors"
	"fmt"

	"github.com/born-ml/kernels/backend/cpu"
	"github.com/born-ml/kernels/tensor"
)

func Example_softmax() {
	backend := cpu.New[float64]()
	logits := tensor.MustNew(tensor.Shape{1, 2}, []float64{0, 0})
	probs := tensor.MustZeros[float64](tensor.Shape{1, 2})

	if err := backend.SoftmaxApply(logits, probs); err != nil {
		panic(err)
	}
	fmt.Println(probs.Data())
	// Output: [0.5 0.5]
}

func Example_matrixMultiply() {
	backend := cpu.New[float32]()
	a := tensor.MustNew(tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6})
	b := tensor.MustNew(tensor.Shape{3, 2}, []float32{7, 8, 9, 10, 11, 12})
	c := tensor.MustZeros[float32](tensor.Shape{2, 2})

	if err := backend.MatrixMultiply(a, b, c, false, false, 1, 0, cpu.AlgorithmBLAS); err != nil {
		panic(err)
	}
	fmt.Println(c.Data())

	err := backend.MatrixMultiply(a, a, c, false, false, 1, 0, cpu.AlgorithmBLAS)
	fmt.Println(errors.Is(err, cpu.ErrDimensionMismatch))
	// Output:
	// [58 64 139 154]
	// true
}

func Example_loss() {
	backend := cpu.New[float64]()
	loss, err := backend.Loss(cpu.LossAbsMean)
	if err != nil {
		panic(err)
	}

	input := tensor.MustNew(tensor.Shape{3, 1}, []float64{2, 1, 1})
	target := tensor.MustNew(tensor.Shape{3, 1}, []float64{1, 1, 2})
	grad := tensor.MustZeros[float64](tensor.Shape{3, 1})

	value, _ := loss.Apply(input, target)
	_ = loss.Derivative(input, target, grad)
	fmt.Println(value, grad.Data())
	// Output: 0.6666666666666666 [1 0 -1]
}

func Example_notImplemented() {
	backend := cpu.New[float32]()
	x := tensor.MustNew(tensor.Shape{1, 1}, []float32{0})
	g := tensor.MustNew(tensor.Shape{1, 1}, []float32{1})

	err := backend.LogisticDerivative(x, g)
	fmt.Println(err, errors.Is(err, cpu.ErrNotImplemented))
	// Output: logistic derivative: not implemented true
}
