// Package biquad provides biquad (second-order IIR) filter runtime primitives.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients]. Multiple sections can be
// cascaded via [Chain]. [Bandpass] designs the constant-peak-gain band-pass
// sections used by the vocoder filter banks.
package biquad
