// Package testutil holds deterministic signals and comparison helpers shared
// by the vocoder, pipeline and CLI tests.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)

	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}

	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)

	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return out
}

// Sawtooth generates a naive (aliasing) sawtooth in [-amplitude, amplitude).
// Its dense harmonic spectrum makes it a typical vocoder carrier.
func Sawtooth(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)

	phase := 0.0
	inc := freqHz / sampleRate

	for i := range out {
		out[i] = amplitude * (2*phase - 1)

		phase += inc
		if phase >= 1 {
			phase--
		}
	}

	return out
}

// Silence returns length zero samples.
func Silence(length int) []float64 {
	return make([]float64, length)
}
