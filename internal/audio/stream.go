// Package audio loads, reconciles and writes the PCM streams that feed the
// vocoder pipeline.
package audio

import "fmt"

// Stream is decoded audio. Samples are interleaved and normalized to
// [-1, 1).
type Stream struct {
	Samples    []float64
	Channels   int
	SampleRate int
	BitDepth   int // of the source file, 0 if synthesized
}

// Frames returns the number of sample frames.
func (s *Stream) Frames() int {
	if s == nil || s.Channels <= 0 {
		return 0
	}

	return len(s.Samples) / s.Channels
}

// Truncate shortens the stream to at most frames frames.
func (s *Stream) Truncate(frames int) {
	if frames < s.Frames() {
		s.Samples = s.Samples[:frames*s.Channels]
	}
}

// Role names a stream's part in cross-synthesis.
type Role int

const (
	RoleNone Role = iota
	RoleCarrier
	RoleModulator
)

func (r Role) String() string {
	switch r {
	case RoleNone:
		return "none"
	case RoleCarrier:
		return "carrier"
	case RoleModulator:
		return "modulator"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}
