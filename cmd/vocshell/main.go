// Command vocshell imposes the spectral envelope of a modulator recording
// onto a carrier recording with a channel vocoder.
//
// Usage:
//
//	vocshell -c carrier.wav -m modulator.wav -o output.wav [flags]
//
// Without arguments it prints usage.
//
// Examples:
//
//	vocshell -c synth.wav -m voice.wav -o robot.wav
//	vocshell -c synth.wav -m voice.wav -o robot.wav -b 32 -f 6 -r 0.01
//	vocshell -config job.yaml -s 1.5
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-vocoder/dsp/dither"
	"github.com/cwbudde/algo-vocoder/dsp/vocoder"
	"github.com/cwbudde/algo-vocoder/internal/config"
	"github.com/cwbudde/algo-vocoder/internal/metrics"
	"github.com/cwbudde/algo-vocoder/internal/pipeline"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type cliFlags struct {
	carrier, modulator, output string

	bands, filtersPerBand      int
	reactionTime, formantShift float64

	configPath  string
	ditherType  string
	shaping     string
	logLevel    string
	metricsFile string
}

func newFlagSet(f *cliFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("vocshell", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&f.carrier, "c", "", "carrier `file` (required)")
	fs.StringVar(&f.modulator, "m", "", "modulator `file` (required)")
	fs.StringVar(&f.output, "o", "", "output `file` (required)")
	fs.IntVar(&f.bands, "b", vocoder.DefaultBands,
		fmt.Sprintf("number of `bands` [%d, %d]", vocoder.MinBands, vocoder.MaxBands))
	fs.IntVar(&f.filtersPerBand, "f", vocoder.DefaultFiltersPerBand,
		fmt.Sprintf("`filters` per band [%d, %d]", vocoder.MinFiltersPerBand, vocoder.MaxFiltersPerBand))
	fs.Float64Var(&f.reactionTime, "r", vocoder.DefaultReactionTime,
		fmt.Sprintf("envelope reaction time in `seconds` [%g, %g]", vocoder.MinReactionTime, vocoder.MaxReactionTime))
	fs.Float64Var(&f.formantShift, "s", vocoder.DefaultFormantShift,
		fmt.Sprintf("formant shift `ratio` [%g, %g], 2 is one octave up", vocoder.MinFormantShift, vocoder.MaxFormantShift))
	fs.StringVar(&f.configPath, "config", "", "YAML job `file`; explicit flags override it")
	fs.StringVar(&f.ditherType, "dither", dither.DitherNone.String(),
		"dither `type`: none, rectangular, triangular, gaussian")
	fs.StringVar(&f.shaping, "shaping", dither.PresetNone.String(),
		"noise shaping `preset`: none, efb, 2sc, 3fc, 9fc, sbm, sharp")
	fs.StringVar(&f.logLevel, "log-level", "", "log `level`: debug, info, warn, error (default info)")
	fs.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus metrics to `file`")

	return fs
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintf(w, "Usage: vocshell -c carrier -m modulator -o output [flags]\n\n")
	fmt.Fprintf(w, "Imposes the spectral envelope of the modulator onto the carrier.\n")
	fmt.Fprintf(w, "Inputs must be mono WAV files with the same sample rate; the longer\n")
	fmt.Fprintf(w, "one is truncated. The output is 16-bit mono WAV.\n\n")
	fmt.Fprintf(w, "Flags:\n")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fs.SetOutput(io.Discard)
	fmt.Fprintf(w, "\nExamples:\n")
	fmt.Fprintf(w, "  vocshell -c synth.wav -m voice.wav -o robot.wav\n")
	fmt.Fprintf(w, "  vocshell -c synth.wav -m voice.wav -o robot.wav -b 32 -f 6 -r 0.01\n")
	fmt.Fprintf(w, "  vocshell -config job.yaml -s 1.5\n")
}

func run(args []string, stdout, stderr io.Writer) int {
	var f cliFlags

	fs := newFlagSet(&f)

	if len(args) == 0 {
		printUsage(stdout, fs)
		return 0
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(stdout, fs)
			return 0
		}

		fmt.Fprintf(stderr, "error: %v\n\n", err)
		printUsage(stderr, fs)

		return 1
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "error: unexpected argument %q (every option takes the form -flag value)\n", fs.Arg(0))
		return 1
	}

	job, err := buildJob(fs, &f)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	level, _ := config.ParseLevel(job.Logging.Level)
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	var m *metrics.Metrics
	if job.Metrics.Textfile != "" {
		m = metrics.New()
	}

	res, err := pipeline.New(
		pipeline.WithLogger(logger),
		pipeline.WithMetrics(m),
	).Run(job)

	if m != nil {
		if werr := m.WriteTextfile(job.Metrics.Textfile); werr != nil {
			logger.Warn("could not write metrics", "error", werr)
		}
	}

	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	printSummary(stdout, res)
	fmt.Fprintln(stdout, "Success.")

	return 0
}

// buildJob layers defaults, the optional YAML file and the flags that were
// set explicitly, in that order.
func buildJob(fs *flag.FlagSet, f *cliFlags) (config.Job, error) {
	job := config.Default()

	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return config.Job{}, err
		}

		job = loaded
	}

	var err error

	fs.Visit(func(fl *flag.Flag) {
		if err != nil {
			return
		}

		switch fl.Name {
		case "c":
			job.Carrier = f.carrier
		case "m":
			job.Modulator = f.modulator
		case "o":
			job.Output = f.output
		case "b":
			job.Vocoder.Bands = f.bands
		case "f":
			job.Vocoder.FiltersPerBand = f.filtersPerBand
		case "r":
			job.Vocoder.ReactionTime = f.reactionTime
		case "s":
			job.Vocoder.FormantShift = f.formantShift
		case "dither":
			job.Dither.Type, err = dither.ParseDitherType(f.ditherType)
		case "shaping":
			job.Dither.Shaping, err = dither.ParsePreset(f.shaping)
		case "log-level":
			job.Logging.Level = f.logLevel
		case "metrics-file":
			job.Metrics.Textfile = f.metricsFile
		}
	})

	if err != nil {
		return config.Job{}, err
	}

	if err := job.Validate(); err != nil {
		return config.Job{}, fmt.Errorf("%w (see vocshell -h)", err)
	}

	return job, nil
}

func printSummary(w io.Writer, res pipeline.Result) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Output\t%s\n", res.Output)
	fmt.Fprintf(tw, "Frames\t%d\n", res.Frames)
	fmt.Fprintf(tw, "Sample rate\t%d Hz\n", res.SampleRate)
	fmt.Fprintf(tw, "Peak\t%.2f dBFS\n", res.PeakDBFS)
	fmt.Fprintf(tw, "Clipped\t%d samples\n", res.Clipped)

	if res.DroppedFrames > 0 {
		fmt.Fprintf(tw, "Limited by\t%s (%d frames dropped)\n", res.Limiting, res.DroppedFrames)
	}

	_ = tw.Flush()
}
