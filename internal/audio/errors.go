package audio

import "errors"

var (
	// ErrIO reports a file that could not be opened, decoded or written.
	ErrIO = errors.New("audio: I/O error")
	// ErrChannelMismatch reports an input that is not mono.
	ErrChannelMismatch = errors.New("audio: channel mismatch")
	// ErrSampleRateMismatch reports inputs with different sample rates.
	ErrSampleRateMismatch = errors.New("audio: sample rate mismatch")
)
