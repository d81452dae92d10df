package vocoder

import "math"

const (
	lowestBandEdge  = 80.0    // Hz
	highestBandEdge = 12000.0 // Hz

	// usableFraction keeps the top band edge below Nyquist at any rate.
	usableFraction = 0.45
)

// bandLayout describes geometrically spaced bands between lo and hi.
// Every band spans the same ratio, so all bands share one Q.
type bandLayout struct {
	centers []float64
	q       float64
	hi      float64
}

func newBandLayout(bands int, sampleRate float64) bandLayout {
	hi := math.Min(highestBandEdge, usableFraction*sampleRate)
	lo := math.Min(lowestBandEdge, hi/16)

	step := math.Pow(hi/lo, 1/float64(bands))
	half := math.Sqrt(step)

	centers := make([]float64, bands)
	for i := range centers {
		centers[i] = lo * math.Pow(step, float64(i)+0.5)
	}

	return bandLayout{
		centers: centers,
		q:       1 / (half - 1/half),
		hi:      hi,
	}
}

// analysisCenter maps a synthesis band onto the modulator frequency whose
// envelope drives it. A ratio of 2 reads the envelope one octave lower, which
// moves the modulator formants up by an octave. Zero means the band falls
// outside the usable range and stays silent.
func (l bandLayout) analysisCenter(band int, formantShift float64) float64 {
	f := l.centers[band] / formantShift
	if f >= l.hi {
		return 0
	}

	return f
}
