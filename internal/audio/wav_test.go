package audio

import (
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWAV(t *testing.T, path string, data []int, sampleRate, bits, channels int) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)

	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, bits, channels, 1)
	require.NoError(t, enc.Write(&goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bits,
	}))
	require.NoError(t, enc.Close())
}

func TestLoadNormalizesBitDepths(t *testing.T) {
	tests := []struct {
		name string
		bits int
		data []int
		want []float64
	}{
		{"8 bit unsigned", 8, []int{128, 255, 0, 192}, []float64{0, 127.0 / 128, -1, 0.5}},
		{"16 bit", 16, []int{0, 32767, -32768, 16384}, []float64{0, 32767.0 / 32768, -1, 0.5}},
		{"24 bit", 24, []int{0, -8388608, 4194304}, []float64{0, -1, 0.5}},
		{"32 bit", 32, []int{0, -2147483648, 1073741824}, []float64{0, -1, 0.5}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "in.wav")
			writeWAV(t, path, tc.data, 22050, tc.bits, 1)

			s, err := Load(path)
			require.NoError(t, err)

			assert.Equal(t, 1, s.Channels)
			assert.Equal(t, 22050, s.SampleRate)
			assert.Equal(t, tc.bits, s.BitDepth)
			assert.Equal(t, len(tc.want), s.Frames())
			assert.InDeltaSlice(t, tc.want, s.Samples, 1e-12)
		})
	}
}

func TestLoadStereoKeepsInterleaving(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stereo.wav")
	writeWAV(t, path, []int{0, 16384, -16384, 0, 8192, 8192}, 48000, 16, 2)

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2, s.Channels)
	assert.Equal(t, 3, s.Frames())
	assert.InDeltaSlice(t, []float64{0, 0.5, -0.5, 0, 0.25, 0.25}, s.Samples, 1e-12)
}

func TestLoadFailures(t *testing.T) {
	dir := t.TempDir()

	garbage := filepath.Join(dir, "garbage.wav")
	require.NoError(t, os.WriteFile(garbage, []byte("definitely not a RIFF file at all"), 0o600))

	empty := filepath.Join(dir, "empty.wav")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))

	for _, path := range []string{filepath.Join(dir, "missing.wav"), garbage, empty, dir} {
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrIO, path)
	}
}

func TestWritePCM16RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	samples := []int{0, 1, -1, 32767, -32768, 1234}

	require.NoError(t, WritePCM16(path, samples, 44100))

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1, s.Channels)
	assert.Equal(t, 16, s.BitDepth)
	assert.Equal(t, 44100, s.SampleRate)
	require.Equal(t, len(samples), s.Frames())

	for i, v := range samples {
		assert.InDelta(t, float64(v)/32768, s.Samples[i], 1e-12, "sample %d", i)
	}
}

func TestWritePCM16Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.wav")
	require.NoError(t, WritePCM16(path, nil, 8000))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestWritePCM16Failures(t *testing.T) {
	dir := t.TempDir()

	err := WritePCM16(filepath.Join(dir, "no", "such", "dir.wav"), []int{0}, 44100)
	require.ErrorIs(t, err, ErrIO)

	bad := filepath.Join(dir, "bad-rate.wav")
	err = WritePCM16(bad, []int{0}, 0)
	require.ErrorIs(t, err, ErrIO)

	_, statErr := os.Stat(bad)
	assert.ErrorIs(t, statErr, os.ErrNotExist, "partial output must be removed")
}
