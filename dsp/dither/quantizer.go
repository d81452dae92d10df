package dither

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Quantizer converts samples in [-1, 1] to signed integers of a fixed bit
// depth. Results are always limited to the representable range.
type Quantizer struct {
	sampleRate      float64
	bitDepth        int
	ditherType      DitherType
	ditherAmplitude float64
	preset          Preset
	shaper          NoiseShaper
	rng             *rand.Rand

	bitMul  float64
	limitLo int
	limitHi int
}

// NewQuantizer creates a Quantizer. The default is 16 bit with neither
// dither nor noise shaping, which is a plain deterministic floor quantizer.
func NewQuantizer(sampleRate float64, opts ...Option) (*Quantizer, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("dither: sample rate must be > 0 and finite: %g", sampleRate)
	}

	cfg := defaultConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	shaper := cfg.shaper
	if shaper == nil {
		shaper = NewFIRShaper(cfg.preset.Coefficients(sampleRate))
	}

	rng := cfg.rng
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	q := &Quantizer{
		sampleRate:      sampleRate,
		bitDepth:        cfg.bitDepth,
		ditherType:      cfg.ditherType,
		ditherAmplitude: cfg.ditherAmplitude,
		preset:          cfg.preset,
		shaper:          shaper,
		rng:             rng,
	}

	q.bitMul = math.Exp2(float64(q.bitDepth-1)) - 0.5
	q.limitLo = -int(math.Round(q.bitMul + 0.5))
	q.limitHi = int(math.Round(q.bitMul - 0.5))

	return q, nil
}

// Quantize converts one sample. NaN is treated as silence.
func (q *Quantizer) Quantize(input float64) int {
	if math.IsNaN(input) {
		input = 0
	}

	shaped := q.shaper.Shape(q.bitMul * input)

	result := min(q.limitHi, q.quantize(shaped))

	q.shaper.RecordError(float64(result) - shaped)

	return result
}

// QuantizeBlock converts src into dst, reusing dst's capacity, and returns
// a slice of len(src) integers.
func (q *Quantizer) QuantizeBlock(dst []int, src []float64) []int {
	if cap(dst) < len(src) {
		dst = make([]int, len(src))
	}

	dst = dst[:len(src)]
	for i, v := range src {
		dst[i] = q.Quantize(v)
	}

	return dst
}

// Reset clears the noise shaper history.
func (q *Quantizer) Reset() {
	q.shaper.Reset()
}

// floor keeps 0 at 0 and maps +1 exactly onto the top code.
func (q *Quantizer) quantize(x float64) int {
	switch q.ditherType {
	case DitherRectangular:
		x += q.ditherAmplitude * (q.rng.Float64()*2 - 1)
	case DitherTriangular:
		x += q.ditherAmplitude * (q.rng.Float64() - q.rng.Float64())
	case DitherGaussian:
		x += q.ditherAmplitude * q.rng.NormFloat64()
	}

	// Limit before the conversion so huge values cannot overflow int.
	x = math.Max(float64(q.limitLo), math.Min(float64(q.limitHi)+0.5, x))

	// Mid-riser: the code boundary sits at 0, so any negative input lands on
	// -1 or below. This is a constant half-LSB offset towards negative.
	return int(math.Floor(x))
}

// BitDepth returns the target bit depth.
func (q *Quantizer) BitDepth() int { return q.bitDepth }

// DitherType returns the dither noise type.
func (q *Quantizer) DitherType() DitherType { return q.ditherType }

// Preset returns the noise-shaping preset.
func (q *Quantizer) Preset() Preset { return q.preset }

// SampleRate returns the configured sample rate.
func (q *Quantizer) SampleRate() float64 { return q.sampleRate }

// Range returns the smallest and largest output codes.
func (q *Quantizer) Range() (lo, hi int) { return q.limitLo, q.limitHi }
