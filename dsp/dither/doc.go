// Package dither converts normalized float samples to signed PCM integers.
//
// A Quantizer scales by 2^(bits-1) - 0.5 and floors, so 0 maps to 0,
// +1 to the largest code and -1 to the smallest. Optional dither noise and
// error-feedback noise shaping trade a higher noise floor for decorrelated
// quantization error.
package dither
