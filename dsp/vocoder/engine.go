package vocoder

// Engine is the filter-bank capability a Vocoder drives.
//
// Process analyzes len(output) frames of carrier and modulator and writes
// exactly one output sample per frame. It returns an error instead of
// processing when output is empty or either input holds fewer than
// len(output) samples. Successive calls continue from the filter history
// left by the previous call. output must not overlap either input.
//
// Engines that hold releasable resources also implement io.Closer; the
// owning Vocoder calls Close exactly once.
type Engine interface {
	Process(carrier, modulator, output []float64) error
	Reset()

	ReactionTime() float64
	SetReactionTime(seconds float64) error
	FormantShift() float64
	SetFormantShift(ratio float64) error
}

// EngineFactory creates an engine with default reaction time and formant
// shift. It must not return a usable engine together with an error.
type EngineFactory func(bands, filtersPerBand, sampleRate int) (Engine, error)

func newChannelEngine(bands, filtersPerBand, sampleRate int) (Engine, error) {
	e, err := NewChannelEngine(bands, filtersPerBand, sampleRate)
	if err != nil {
		return nil, err
	}

	return e, nil
}
