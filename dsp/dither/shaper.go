package dither

// NoiseShaper filters quantization error back into the signal. Per sample:
//
//	shaped := s.Shape(scaled)
//	q := floor(shaped + dither)
//	s.RecordError(float64(q) - shaped)
type NoiseShaper interface {
	Shape(input float64) float64
	RecordError(quantizationError float64)
	Reset()
}

// FIRShaper is an error-feedback shaper with FIR coefficients over a ring
// buffer of past errors.
type FIRShaper struct {
	coeffs  []float64
	history []float64
	pos     int
}

// NewFIRShaper copies coeffs. Nil or empty coeffs pass input through.
func NewFIRShaper(coeffs []float64) *FIRShaper {
	s := &FIRShaper{coeffs: append([]float64(nil), coeffs...)}
	if len(coeffs) > 0 {
		s.history = make([]float64, len(coeffs))
	}

	return s
}

// Order returns the number of coefficients.
func (s *FIRShaper) Order() int { return len(s.coeffs) }

// Shape subtracts weighted past errors from input.
func (s *FIRShaper) Shape(input float64) float64 {
	order := len(s.coeffs)
	if order == 0 {
		return input
	}

	for i, c := range s.coeffs {
		input -= c * s.history[(order+s.pos-i)%order]
	}

	s.pos = (s.pos + 1) % order

	return input
}

// RecordError stores the error of the sample last passed to Shape.
func (s *FIRShaper) RecordError(quantizationError float64) {
	if len(s.coeffs) == 0 {
		return
	}

	s.history[s.pos] = quantizationError
}

// Reset clears the error history.
func (s *FIRShaper) Reset() {
	clear(s.history)
	s.pos = 0
}
