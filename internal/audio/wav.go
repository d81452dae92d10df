package audio

import (
	"errors"
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	wavFormatPCM        = 1
	wavFormatExtensible = 0xFFFE
)

// Load opens and decodes a WAV file. Failures wrap ErrIO.
func Load(path string) (*Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}

	return s, nil
}

// Decode reads integer PCM WAV data of 8, 16, 24 or 32 bits.
func Decode(r io.ReadSeeker) (*Stream, error) {
	dec := wav.NewDecoder(r)

	dec.ReadInfo()

	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading WAV header: %w", ErrIO, err)
	}

	if dec.NumChans == 0 {
		return nil, fmt.Errorf("%w: not a WAV file", ErrIO)
	}

	if dec.WavAudioFormat != wavFormatPCM && dec.WavAudioFormat != wavFormatExtensible {
		return nil, fmt.Errorf("%w: unsupported WAV format tag %d", ErrIO, dec.WavAudioFormat)
	}

	if dec.SampleRate == 0 {
		return nil, fmt.Errorf("%w: sample rate is 0", ErrIO)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: reading PCM data: %w", ErrIO, err)
	}

	bits := int(dec.BitDepth)

	samples, err := normalize(buf.Data, bits)
	if err != nil {
		return nil, err
	}

	channels := int(dec.NumChans)

	return &Stream{
		Samples:    samples[:len(samples)-len(samples)%channels],
		Channels:   channels,
		SampleRate: int(dec.SampleRate),
		BitDepth:   bits,
	}, nil
}

// normalize maps integer PCM onto [-1, 1). 8-bit WAV data is unsigned.
func normalize(data []int, bits int) ([]float64, error) {
	var (
		offset int
		scale  float64
	)

	switch bits {
	case 8:
		offset, scale = 128, 1.0/128
	case 16:
		scale = 1.0 / (1 << 15)
	case 24:
		scale = 1.0 / (1 << 23)
	case 32:
		scale = 1.0 / (1 << 31)
	default:
		return nil, fmt.Errorf("%w: unsupported bit depth %d", ErrIO, bits)
	}

	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = float64(v-offset) * scale
	}

	return out, nil
}

// EncodePCM16 writes mono 16-bit PCM. Values outside the int16 range are
// the caller's responsibility.
func EncodePCM16(ws io.WriteSeeker, samples []int, sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be > 0: %d", ErrIO, sampleRate)
	}

	enc := wav.NewEncoder(ws, sampleRate, 16, 1, wavFormatPCM)

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           samples,
		SourceBitDepth: 16,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("%w: encoding PCM: %w", ErrIO, err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("%w: finalizing WAV header: %w", ErrIO, err)
	}

	return nil
}

// WritePCM16 creates path and writes samples as a mono 16-bit WAV file. A
// partially written file is removed.
func WritePCM16(path string, samples []int, sampleRate int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %w", ErrIO, cerr)
		}

		if err != nil {
			err = errors.Join(err, removeIfExists(path))
		}
	}()

	return EncodePCM16(f, samples, sampleRate)
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing partial output: %w", err)
	}

	return nil
}
