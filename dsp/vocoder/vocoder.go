package vocoder

import (
	"fmt"
	"io"

	"github.com/cwbudde/algo-vocoder/dsp/core"
)

// Vocoder is a parameter-safe owner of one Engine.
//
// Every mutation is validated before the engine sees it, so the
// configuration reported by Config is always within range. Output buffers
// are sized from the requested frame count only.
type Vocoder struct {
	cfg    Config
	engine Engine
}

// New creates a Vocoder. It fails with ErrInvalidConfig when bands,
// filtersPerBand or sampleRate is out of range or an option is rejected.
// No engine outlives a failed New.
func New(bands, filtersPerBand, sampleRate int, opts ...Option) (*Vocoder, error) {
	o := defaultOptions()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&o); err != nil {
			return nil, err
		}
	}

	cfg := Config{
		Bands:          bands,
		FiltersPerBand: filtersPerBand,
		SampleRate:     sampleRate,
		ReactionTime:   o.reactionTime,
		FormantShift:   o.formantShift,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	engine, err := o.factory(bands, filtersPerBand, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("%w: engine initialization: %w", ErrInvalidConfig, err)
	}

	v := &Vocoder{
		cfg:    DefaultConfig(sampleRate),
		engine: engine,
	}
	v.cfg.Bands = bands
	v.cfg.FiltersPerBand = filtersPerBand

	if err := v.SetReactionTime(cfg.ReactionTime); err != nil {
		_ = v.Close()
		return nil, err
	}

	if err := v.SetFormantShift(cfg.FormantShift); err != nil {
		_ = v.Close()
		return nil, err
	}

	return v, nil
}

// Config returns the current configuration.
func (v *Vocoder) Config() Config { return v.cfg }

// ReactionTime returns the envelope reaction time in seconds.
func (v *Vocoder) ReactionTime() float64 { return v.cfg.ReactionTime }

// FormantShift returns the formant shift ratio.
func (v *Vocoder) FormantShift() float64 { return v.cfg.FormantShift }

// SetReactionTime updates the envelope reaction time. Out-of-range values
// are rejected with ErrInvalidConfig and leave the vocoder unchanged.
func (v *Vocoder) SetReactionTime(seconds float64) error {
	if v.engine == nil {
		return ErrClosed
	}

	if err := ValidateReactionTime(seconds); err != nil {
		return err
	}

	if err := v.engine.SetReactionTime(seconds); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	v.cfg.ReactionTime = seconds

	return nil
}

// SetFormantShift updates the formant shift ratio. Out-of-range values are
// rejected with ErrInvalidConfig and leave the vocoder unchanged.
func (v *Vocoder) SetFormantShift(ratio float64) error {
	if v.engine == nil {
		return ErrClosed
	}

	if err := ValidateFormantShift(ratio); err != nil {
		return err
	}

	if err := v.engine.SetFormantShift(ratio); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	v.cfg.FormantShift = ratio

	return nil
}

// Reset clears the engine's filter history so the next Process call starts
// an independent run. Configuration is kept.
func (v *Vocoder) Reset() {
	if v.engine != nil {
		v.engine.Reset()
	}
}

// Process vocodes the first frames samples of carrier and modulator and
// returns a new buffer of exactly frames samples. Inputs may be longer than
// frames. Engine rejections (frames < 1, short inputs) are reported as
// ErrInvalidInput.
func (v *Vocoder) Process(carrier, modulator []float64, frames int) ([]float64, error) {
	return v.ProcessInto(nil, carrier, modulator, frames)
}

// ProcessInto is like Process but reuses dst's capacity when possible. The
// returned slice always has length frames; dst's own length is ignored.
func (v *Vocoder) ProcessInto(dst, carrier, modulator []float64, frames int) ([]float64, error) {
	if v.engine == nil {
		return nil, ErrClosed
	}

	out := core.EnsureLen(dst, frames)

	if err := v.engine.Process(carrier, modulator, out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return out, nil
}

// Close releases the engine. It is safe to call more than once.
func (v *Vocoder) Close() error {
	engine := v.engine
	if engine == nil {
		return nil
	}

	v.engine = nil

	if c, ok := engine.(io.Closer); ok {
		return c.Close()
	}

	return nil
}
