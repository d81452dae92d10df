//go:build !fastmath

package vocoder

import "math"

func expFn(x float64) float64 {
	return math.Exp(x)
}
