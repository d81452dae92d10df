package core

import "math"

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// ClipBlock hard-clips every sample of buf into [lo, hi] in place with
// Clamp and returns how many samples were changed. NaN samples are replaced
// by 0 and counted.
func ClipBlock(buf []float64, lo, hi float64) int {
	clipped := 0

	for i, x := range buf {
		y := 0.0
		if !math.IsNaN(x) {
			y = Clamp(x, lo, hi)
		}

		if y != x {
			buf[i] = y
			clipped++
		}
	}

	return clipped
}

// FlushDenormals converts tiny denormal-like values to exact zero.
// Envelope followers decay towards zero forever; flushing keeps the hot
// loop off the slow denormal path.
func FlushDenormals(x float64) float64 {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0
	}

	return x
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}
