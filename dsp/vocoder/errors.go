package vocoder

import "errors"

var (
	// ErrInvalidConfig is returned when a construction or parameter-update
	// argument is outside its documented range.
	ErrInvalidConfig = errors.New("vocoder: invalid configuration")

	// ErrInvalidInput is returned when the engine rejects a processing call.
	ErrInvalidInput = errors.New("vocoder: invalid input")

	// ErrClosed is returned by operations on a Vocoder after Close.
	ErrClosed = errors.New("vocoder: closed")
)

var (
	errEmptyBlock   = errors.New("output block must hold at least one frame")
	errEngineClosed = errors.New("engine has been released")
)
