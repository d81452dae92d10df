package biquad

// Chain is an ordered cascade of biquad sections processed in series.
// The vocoder uses it to stack identical band-pass sections so that each
// band gets a steeper skirt without changing its center frequency.
type Chain struct {
	sections []Section
}

// NewChain creates a cascade with one Section per coefficient set.
func NewChain(coeffs []Coefficients) *Chain {
	c := &Chain{}
	c.setSections(coeffs)

	return c
}

// Cascade returns n copies of coeffs, ready to be passed to NewChain.
func Cascade(coeffs Coefficients, n int) []Coefficients {
	if n <= 0 {
		return nil
	}

	out := make([]Coefficients, n)
	for i := range out {
		out[i] = coeffs
	}

	return out
}

// ProcessBlock filters buf in place through every section in order.
// Consecutive calls continue from the previous delay-line state.
func (c *Chain) ProcessBlock(buf []float64) {
	for i := range c.sections {
		c.sections[i].ProcessBlock(buf)
	}
}

// Reset clears all section states.
func (c *Chain) Reset() {
	for i := range c.sections {
		c.sections[i].Reset()
	}
}

// UpdateCoefficients replaces the filter coefficients. With an unchanged
// section count the delay lines are kept, so retuning between blocks does
// not restart the filter from silence. Otherwise the sections are rebuilt
// with zero state.
func (c *Chain) UpdateCoefficients(coeffs []Coefficients) {
	if len(coeffs) != len(c.sections) {
		c.setSections(coeffs)
		return
	}

	for i := range c.sections {
		c.sections[i].Coefficients = coeffs[i]
	}
}

func (c *Chain) setSections(coeffs []Coefficients) {
	c.sections = make([]Section, len(coeffs))
	for i := range coeffs {
		c.sections[i].Coefficients = coeffs[i]
	}
}
