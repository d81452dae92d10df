package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-vocoder/dsp/dither"
	"github.com/cwbudde/algo-vocoder/dsp/vocoder"
)

// DefaultOutputGain is the make-up gain applied before clipping. Band
// envelopes multiply two band-limited signals, so the raw sum is quiet.
const DefaultOutputGain = 12.0

// ErrInvalidJob reports a job that cannot be run.
var ErrInvalidJob = errors.New("config: invalid job")

// Job is one cross-synthesis run.
type Job struct {
	Carrier    string  `yaml:"carrier"`
	Modulator  string  `yaml:"modulator"`
	Output     string  `yaml:"output"`
	OutputGain float64 `yaml:"output_gain"`

	Vocoder VocoderConfig `yaml:"vocoder"`
	Dither  DitherConfig  `yaml:"dither"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// VocoderConfig holds the filter bank parameters.
type VocoderConfig struct {
	Bands          int     `yaml:"bands"`
	FiltersPerBand int     `yaml:"filters_per_band"`
	ReactionTime   float64 `yaml:"reaction_time"` // seconds
	FormantShift   float64 `yaml:"formant_shift"`
}

// DitherConfig selects the 16-bit quantization flavor.
type DitherConfig struct {
	Type    dither.DitherType `yaml:"type"`
	Shaping dither.Preset     `yaml:"shaping"`
	Seed    *uint64           `yaml:"seed,omitempty"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// MetricsConfig enables the Prometheus textfile.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// Default returns the job the CLI runs without a config file or flags.
func Default() Job {
	return Job{
		OutputGain: DefaultOutputGain,
		Vocoder: VocoderConfig{
			Bands:          vocoder.DefaultBands,
			FiltersPerBand: vocoder.DefaultFiltersPerBand,
			ReactionTime:   vocoder.DefaultReactionTime,
			FormantShift:   vocoder.DefaultFormantShift,
		},
		Dither: DitherConfig{
			Type:    dither.DitherNone,
			Shaping: dither.PresetNone,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads path on top of Default and validates the settings. Input and
// output paths may be left for the caller to fill in.
func Load(path string) (Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Job{}, fmt.Errorf("%w: failed to read config file %s: %w", ErrInvalidJob, path, err)
	}

	job, err := Parse(data)
	if err != nil {
		return Job{}, fmt.Errorf("%w (%s)", err, path)
	}

	return job, nil
}

// Parse decodes YAML on top of Default. Unknown keys are rejected.
func Parse(data []byte) (Job, error) {
	job := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&job); err != nil && !errors.Is(err, io.EOF) {
		return Job{}, fmt.Errorf("%w: failed to parse config: %w", ErrInvalidJob, err)
	}

	if err := job.ValidateSettings(); err != nil {
		return Job{}, err
	}

	return job, nil
}

// Validate checks that the job is complete and runnable.
func (j *Job) Validate() error {
	for _, p := range []struct{ name, value string }{
		{"carrier", j.Carrier},
		{"modulator", j.Modulator},
		{"output", j.Output},
	} {
		if strings.TrimSpace(p.value) == "" {
			return fmt.Errorf("%w: %s path is required", ErrInvalidJob, p.name)
		}
	}

	return j.ValidateSettings()
}

// ValidateSettings checks everything except the file paths.
func (j *Job) ValidateSettings() error {
	if err := j.Vocoder.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJob, err)
	}

	if j.OutputGain <= 0 || math.IsNaN(j.OutputGain) || math.IsInf(j.OutputGain, 0) {
		return fmt.Errorf("%w: output_gain must be > 0 and finite, got %g", ErrInvalidJob, j.OutputGain)
	}

	if !j.Dither.Type.Valid() {
		return fmt.Errorf("%w: dither: invalid type %v", ErrInvalidJob, j.Dither.Type)
	}

	if !j.Dither.Shaping.Valid() {
		return fmt.Errorf("%w: dither: invalid shaping %v", ErrInvalidJob, j.Dither.Shaping)
	}

	if _, err := ParseLevel(j.Logging.Level); err != nil {
		return fmt.Errorf("%w: logging: %w", ErrInvalidJob, err)
	}

	return nil
}

// Validate checks the vocoder parameters against the engine ranges.
func (v *VocoderConfig) Validate() error {
	if err := vocoder.ValidateBands(v.Bands); err != nil {
		return err
	}

	if err := vocoder.ValidateFiltersPerBand(v.FiltersPerBand); err != nil {
		return err
	}

	if err := vocoder.ValidateReactionTime(v.ReactionTime); err != nil {
		return err
	}

	return vocoder.ValidateFormantShift(v.FormantShift)
}

// ParseLevel maps debug, info, warn or error (any case) to a slog level.
// An empty string is info.
func ParseLevel(s string) (slog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}

	return level, nil
}
