package vocoder

import (
	"fmt"
	"math"
)

// Parameter ranges. All bounds are inclusive.
const (
	MinBands          = 4
	MaxBands          = 96
	MinFiltersPerBand = 1
	MaxFiltersPerBand = 8

	MinReactionTime = 0.002 // seconds
	MaxReactionTime = 2.0   // seconds
	MinFormantShift = 0.25
	MaxFormantShift = 4.0
)

// Defaults used by New and by the vocshell command.
const (
	DefaultBands          = 24
	DefaultFiltersPerBand = 4
	DefaultReactionTime   = 0.03
	DefaultFormantShift   = 1.0
)

// Config is a snapshot of a vocoder configuration. Only ReactionTime and
// FormantShift can change after construction.
type Config struct {
	Bands          int
	FiltersPerBand int
	SampleRate     int
	ReactionTime   float64 // seconds
	FormantShift   float64 // frequency ratio, 2.0 moves formants up one octave
}

// DefaultConfig returns the default configuration at the given sample rate.
func DefaultConfig(sampleRate int) Config {
	return Config{
		Bands:          DefaultBands,
		FiltersPerBand: DefaultFiltersPerBand,
		SampleRate:     sampleRate,
		ReactionTime:   DefaultReactionTime,
		FormantShift:   DefaultFormantShift,
	}
}

// Validate reports the first field outside its range, wrapped in
// ErrInvalidConfig.
func (c Config) Validate() error {
	if err := ValidateBands(c.Bands); err != nil {
		return err
	}

	if err := ValidateFiltersPerBand(c.FiltersPerBand); err != nil {
		return err
	}

	if err := ValidateSampleRate(c.SampleRate); err != nil {
		return err
	}

	if err := ValidateReactionTime(c.ReactionTime); err != nil {
		return err
	}

	return ValidateFormantShift(c.FormantShift)
}

// ValidateBands checks the band count.
func ValidateBands(n int) error {
	if n < MinBands || n > MaxBands {
		return fmt.Errorf("%w: bands must be in [%d, %d]: %d",
			ErrInvalidConfig, MinBands, MaxBands, n)
	}

	return nil
}

// ValidateFiltersPerBand checks the number of cascaded sections per band.
func ValidateFiltersPerBand(n int) error {
	if n < MinFiltersPerBand || n > MaxFiltersPerBand {
		return fmt.Errorf("%w: filters per band must be in [%d, %d]: %d",
			ErrInvalidConfig, MinFiltersPerBand, MaxFiltersPerBand, n)
	}

	return nil
}

// ValidateSampleRate checks that the sample rate is positive.
func ValidateSampleRate(sr int) error {
	if sr <= 0 {
		return fmt.Errorf("%w: sample rate must be > 0: %d", ErrInvalidConfig, sr)
	}

	return nil
}

// ValidateReactionTime checks the envelope reaction time in seconds.
func ValidateReactionTime(seconds float64) error {
	if !inRange(seconds, MinReactionTime, MaxReactionTime) {
		return fmt.Errorf("%w: reaction time must be in [%g, %g] s: %g",
			ErrInvalidConfig, MinReactionTime, MaxReactionTime, seconds)
	}

	return nil
}

// ValidateFormantShift checks the formant shift ratio.
func ValidateFormantShift(ratio float64) error {
	if !inRange(ratio, MinFormantShift, MaxFormantShift) {
		return fmt.Errorf("%w: formant shift must be in [%g, %g]: %g",
			ErrInvalidConfig, MinFormantShift, MaxFormantShift, ratio)
	}

	return nil
}

// inRange is false for NaN because both comparisons fail.
func inRange(v, lo, hi float64) bool {
	return v >= lo && v <= hi && !math.IsInf(v, 0)
}
