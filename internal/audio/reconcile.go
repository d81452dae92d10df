package audio

import (
	"fmt"
	"log/slog"
)

// Pair holds a carrier and modulator with equal channel count, sample rate
// and frame count.
type Pair struct {
	Carrier   *Stream
	Modulator *Stream

	// Limiting is the shorter input, RoleNone when both had equal length.
	Limiting Role
	// DroppedFrames is the number of frames cut from the longer input.
	DroppedFrames int
}

// Frames returns the common frame count.
func (p *Pair) Frames() int { return p.Carrier.Frames() }

// SampleRate returns the common sample rate.
func (p *Pair) SampleRate() int { return p.Carrier.SampleRate }

// Release drops both sample buffers. It is safe to call more than once.
func (p *Pair) Release() {
	if p.Carrier != nil {
		p.Carrier.Samples = nil
	}

	if p.Modulator != nil {
		p.Modulator.Samples = nil
	}
}

// Reconcile checks that carrier and modulator are mono with the same sample
// rate and truncates the longer one. The truncation is logged at Info with
// the limiting stream. A nil logger uses slog.Default.
func Reconcile(logger *slog.Logger, carrier, modulator *Stream) (Pair, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if carrier == nil || modulator == nil {
		return Pair{}, fmt.Errorf("%w: missing input stream", ErrIO)
	}

	for _, in := range []struct {
		role Role
		s    *Stream
	}{{RoleCarrier, carrier}, {RoleModulator, modulator}} {
		if in.s.Channels != 1 {
			return Pair{}, fmt.Errorf("%w: %s has %d channels, only mono input is supported",
				ErrChannelMismatch, in.role, in.s.Channels)
		}
	}

	if carrier.SampleRate != modulator.SampleRate {
		return Pair{}, fmt.Errorf("%w: carrier is %d Hz, modulator is %d Hz",
			ErrSampleRateMismatch, carrier.SampleRate, modulator.SampleRate)
	}

	p := Pair{Carrier: carrier, Modulator: modulator}

	cf, mf := carrier.Frames(), modulator.Frames()

	switch {
	case cf > mf:
		p.Limiting, p.DroppedFrames = RoleModulator, cf-mf
		carrier.Truncate(mf)
	case mf > cf:
		p.Limiting, p.DroppedFrames = RoleCarrier, mf-cf
		modulator.Truncate(cf)
	}

	if p.Limiting != RoleNone {
		logger.Info("inputs differ in length, truncating to the shorter one",
			"limiting", p.Limiting.String(),
			"carrier_frames", cf,
			"modulator_frames", mf,
			"dropped_frames", p.DroppedFrames,
		)
	}

	return p, nil
}
