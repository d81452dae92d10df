//go:build fastmath

package vocoder

import "github.com/meko-christian/algo-approx"

// expFn only runs when the reaction time changes, never per sample.
func expFn(x float64) float64 {
	return approx.FastExp(x)
}
