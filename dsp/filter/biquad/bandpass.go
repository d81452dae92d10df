package biquad

import "math"

// Bandpass computes constant-peak-gain (CPG) band-pass coefficients.
// Unlike the constant-skirt-gain variant where peak gain equals Q, the CPG
// peak gain at the center frequency is always 1.0 regardless of Q, so
// summed filter-bank bands do not amplify.
//
// A zero Coefficients value is returned when freq lies outside (0, Nyquist)
// or q is not positive.
func Bandpass(freq, q, sampleRate float64) Coefficients {
	if q <= 0 || sampleRate <= 0 {
		return Coefficients{}
	}

	w0 := 2 * math.Pi * freq / sampleRate
	if w0 <= 0 || w0 >= math.Pi {
		return Coefficients{}
	}

	cw := math.Cos(w0)
	sw := math.Sin(w0)
	alpha := sw / (2 * q)

	inv := 1.0 / (1 + alpha)

	return Coefficients{
		B0: alpha * inv,
		B1: 0,
		B2: -alpha * inv,
		A1: -2 * cw * inv,
		A2: (1 - alpha) * inv,
	}
}
