package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-vocoder/dsp/dither"
	"github.com/cwbudde/algo-vocoder/dsp/vocoder"
)

func TestDefault(t *testing.T) {
	job := Default()

	assert.Equal(t, 24, job.Vocoder.Bands)
	assert.Equal(t, 4, job.Vocoder.FiltersPerBand)
	assert.InDelta(t, 0.03, job.Vocoder.ReactionTime, 0)
	assert.InDelta(t, 1.0, job.Vocoder.FormantShift, 0)
	assert.InDelta(t, 12.0, job.OutputGain, 0)
	assert.Equal(t, dither.DitherNone, job.Dither.Type)
	assert.Equal(t, dither.PresetNone, job.Dither.Shaping)
	require.NoError(t, job.ValidateSettings())

	// Paths are missing, so the default job alone is not runnable.
	require.ErrorIs(t, job.Validate(), ErrInvalidJob)
}

func TestParseOverlaysDefaults(t *testing.T) {
	job, err := Parse([]byte(`
carrier: synth.wav
output_gain: 6
vocoder:
  bands: 32
  formant_shift: 1.5
dither:
  type: triangular
  shaping: 9fc
  seed: 7
logging:
  level: debug
metrics:
  textfile: /tmp/vocoder.prom
`))
	require.NoError(t, err)

	assert.Equal(t, "synth.wav", job.Carrier)
	assert.Empty(t, job.Modulator)
	assert.InDelta(t, 6.0, job.OutputGain, 0)
	assert.Equal(t, 32, job.Vocoder.Bands)
	assert.Equal(t, vocoder.DefaultFiltersPerBand, job.Vocoder.FiltersPerBand)
	assert.InDelta(t, vocoder.DefaultReactionTime, job.Vocoder.ReactionTime, 0)
	assert.InDelta(t, 1.5, job.Vocoder.FormantShift, 0)
	assert.Equal(t, dither.DitherTriangular, job.Dither.Type)
	assert.Equal(t, dither.Preset9FC, job.Dither.Shaping)
	require.NotNil(t, job.Dither.Seed)
	assert.Equal(t, uint64(7), *job.Dither.Seed)
	assert.Equal(t, "debug", job.Logging.Level)
	assert.Equal(t, "/tmp/vocoder.prom", job.Metrics.Textfile)
}

func TestParseEmptyDocument(t *testing.T) {
	job, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), job)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown key", "bandz: 4\n"},
		{"malformed", "vocoder: [1, 2\n"},
		{"bands out of range", "vocoder:\n  bands: 200\n"},
		{"filters out of range", "vocoder:\n  filters_per_band: 0\n"},
		{"reaction time out of range", "vocoder:\n  reaction_time: 5\n"},
		{"formant shift out of range", "vocoder:\n  formant_shift: 0.1\n"},
		{"zero gain", "output_gain: 0\n"},
		{"negative gain", "output_gain: -3\n"},
		{"unknown dither", "dither:\n  type: blue\n"},
		{"unknown shaping", "dither:\n  shaping: 99x\n"},
		{"unknown level", "logging:\n  level: loud\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			require.ErrorIs(t, err, ErrInvalidJob)
		})
	}
}

func TestVocoderErrorsKeepCause(t *testing.T) {
	_, err := Parse([]byte("vocoder:\n  bands: 3\n"))
	require.ErrorIs(t, err, vocoder.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "bands")
	assert.Equal(t, 1, strings.Count(err.Error(), "vocoder:"), "message repeats its prefix: %s", err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.yaml")
	require.NoError(t, os.WriteFile(path, []byte("carrier: a.wav\nmodulator: b.wav\noutput: c.wav\n"), 0o600))

	job, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, job.Validate())

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, ErrInvalidJob)
	assert.Contains(t, err.Error(), "missing.yaml")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("vocoder:\n  bands: 1000\n"), 0o600))

	_, err = Load(bad)
	require.ErrorIs(t, err, ErrInvalidJob)
	assert.Contains(t, err.Error(), "bad.yaml")
}

func TestValidateRequiresPaths(t *testing.T) {
	job := Default()
	job.Carrier, job.Modulator, job.Output = "c.wav", "m.wav", "  "

	err := job.Validate()
	require.ErrorIs(t, err, ErrInvalidJob)
	assert.Contains(t, err.Error(), "output path")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"error", slog.LevelError},
	}

	for _, tc := range tests {
		got, err := ParseLevel(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := ParseLevel("verbose")
	require.Error(t, err)
}
