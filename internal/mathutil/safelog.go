// Package mathutil holds numerically safe scalar helpers shared by kernels.
package mathutil

import (
	"math"

	"github.com/born-ml/kernels/internal/tensor"
)

// SafeLogFloor is the smallest argument SafeLog passes to math.Log.
// SafeLog(x) == -50 for every x <= SafeLogFloor.
var SafeLogFloor = math.Exp(-50)

// SafeLog returns log(max(x, e^-50)). It is finite for zero, negative and
// NaN inputs; +Inf stays +Inf.
func SafeLog[T tensor.Float](x T) T {
	v := float64(x)
	if !(v > SafeLogFloor) {
		return -50
	}
	return T(math.Log(v))
}
