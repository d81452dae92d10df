package vocoder

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vocoder/dsp/core"
	"github.com/cwbudde/algo-vocoder/dsp/filter/biquad"
)

// ChannelEngine is the built-in Engine: a bank of log-spaced band-pass
// filters analyzes the modulator, per-band envelope followers track its
// amplitude, and the envelopes weight matching bands of the carrier.
//
// Each band cascades FiltersPerBand constant-peak-gain sections, so the
// center gain stays at unity while the skirts steepen.
type ChannelEngine struct {
	sampleRate     float64
	bands          int
	filtersPerBand int
	layout         bandLayout

	// Analysis (modulator) and synthesis (carrier) filter banks.
	analysis  []*biquad.Chain
	synthesis []*biquad.Chain

	// Per-band envelope followers.
	envelopes    []float64
	envCoeff     float64
	reactionTime float64
	formantShift float64

	// Scratch blocks for one band's filtered modulator and carrier.
	modBuf, carBuf []float64

	closed bool
}

// blockSize bounds the scratch buffers; Process walks longer inputs in
// blocks of this many frames.
const blockSize = 1024

// NewChannelEngine creates an engine with the default reaction time and
// formant shift.
func NewChannelEngine(bands, filtersPerBand, sampleRate int) (*ChannelEngine, error) {
	if err := ValidateBands(bands); err != nil {
		return nil, err
	}

	if err := ValidateFiltersPerBand(filtersPerBand); err != nil {
		return nil, err
	}

	if err := ValidateSampleRate(sampleRate); err != nil {
		return nil, err
	}

	sr := float64(sampleRate)
	e := &ChannelEngine{
		sampleRate:     sr,
		bands:          bands,
		filtersPerBand: filtersPerBand,
		layout:         newBandLayout(bands, sr),
		analysis:       make([]*biquad.Chain, bands),
		synthesis:      make([]*biquad.Chain, bands),
		envelopes:      make([]float64, bands),
		modBuf:         make([]float64, blockSize),
		carBuf:         make([]float64, blockSize),
		reactionTime:   DefaultReactionTime,
		formantShift:   DefaultFormantShift,
	}

	for i, fc := range e.layout.centers {
		e.synthesis[i] = biquad.NewChain(biquad.Cascade(biquad.Bandpass(fc, e.layout.q, sr), filtersPerBand))
	}

	for i, coeffs := range e.analysisCoefficients(e.formantShift) {
		e.analysis[i] = biquad.NewChain(coeffs)
	}

	e.envCoeff = envelopeCoeff(e.reactionTime, sr)

	return e, nil
}

// envelopeCoeff returns the one-pole smoothing factor whose time constant is
// the reaction time.
func envelopeCoeff(reactionTime, sampleRate float64) float64 {
	return expFn(-1 / (reactionTime * sampleRate))
}

func (e *ChannelEngine) analysisCoefficients(formantShift float64) [][]biquad.Coefficients {
	out := make([][]biquad.Coefficients, e.bands)
	for i := range out {
		fc := e.layout.analysisCenter(i, formantShift)

		var c biquad.Coefficients
		if fc > 0 {
			c = biquad.Bandpass(fc, e.layout.q, e.sampleRate)
		}

		out[i] = biquad.Cascade(c, e.filtersPerBand)
	}

	return out
}

// Process implements Engine.
func (e *ChannelEngine) Process(carrier, modulator, output []float64) error {
	if e.closed {
		return errEngineClosed
	}

	n := len(output)
	if n == 0 {
		return errEmptyBlock
	}

	if len(carrier) < n || len(modulator) < n {
		return fmt.Errorf("input shorter than output block: carrier=%d modulator=%d frames=%d",
			len(carrier), len(modulator), n)
	}

	for start := 0; start < n; start += blockSize {
		end := min(start+blockSize, n)
		e.processBlock(carrier[start:end], modulator[start:end], output[start:end])
	}

	return nil
}

// processBlock runs the bank band by band. Each band filters the whole block
// before its envelope follower weights the carrier, and the bands are summed
// into out in ascending order.
func (e *ChannelEngine) processBlock(carrier, modulator, out []float64) {
	clear(out)

	mod := e.modBuf[:len(out)]
	car := e.carBuf[:len(out)]
	coeff := e.envCoeff

	for b := range e.bands {
		copy(mod, modulator)
		e.analysis[b].ProcessBlock(mod)

		copy(car, carrier)
		e.synthesis[b].ProcessBlock(car)

		env := e.envelopes[b]
		for i, m := range mod {
			level := math.Abs(m)
			env = core.FlushDenormals(level + (env-level)*coeff)
			out[i] += env * car[i]
		}

		e.envelopes[b] = env
	}
}

// Reset clears all filter and envelope history. Configuration is kept.
func (e *ChannelEngine) Reset() {
	for i := range e.envelopes {
		e.envelopes[i] = 0
	}

	for i := range e.analysis {
		e.analysis[i].Reset()
	}

	for i := range e.synthesis {
		e.synthesis[i].Reset()
	}
}

// ReactionTime returns the envelope reaction time in seconds.
func (e *ChannelEngine) ReactionTime() float64 { return e.reactionTime }

// SetReactionTime sets the envelope reaction time in seconds.
func (e *ChannelEngine) SetReactionTime(seconds float64) error {
	if err := ValidateReactionTime(seconds); err != nil {
		return err
	}

	e.reactionTime = seconds
	e.envCoeff = envelopeCoeff(seconds, e.sampleRate)

	return nil
}

// FormantShift returns the formant shift ratio.
func (e *ChannelEngine) FormantShift() float64 { return e.formantShift }

// SetFormantShift retunes the analysis bank. Filter state is preserved so a
// change between blocks does not click.
func (e *ChannelEngine) SetFormantShift(ratio float64) error {
	if err := ValidateFormantShift(ratio); err != nil {
		return err
	}

	coeffs := e.analysisCoefficients(ratio)
	for i := range e.analysis {
		e.analysis[i].UpdateCoefficients(coeffs[i])
	}

	e.formantShift = ratio

	return nil
}

// Bands returns the number of bands.
func (e *ChannelEngine) Bands() int { return e.bands }

// FiltersPerBand returns the number of cascaded sections per band.
func (e *ChannelEngine) FiltersPerBand() int { return e.filtersPerBand }

// SampleRate returns the sample rate in Hz.
func (e *ChannelEngine) SampleRate() float64 { return e.sampleRate }

// CenterFrequencies returns a copy of the synthesis band centers in Hz.
func (e *ChannelEngine) CenterFrequencies() []float64 {
	out := make([]float64, len(e.layout.centers))
	copy(out, e.layout.centers)

	return out
}

// Close releases the filter banks. Process fails afterwards.
func (e *ChannelEngine) Close() error {
	e.closed = true
	e.analysis = nil
	e.synthesis = nil
	e.envelopes = nil
	e.modBuf, e.carBuf = nil, nil

	return nil
}
