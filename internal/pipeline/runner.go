package pipeline

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cwbudde/algo-vocoder/dsp/dither"
	"github.com/cwbudde/algo-vocoder/dsp/vocoder"
	"github.com/cwbudde/algo-vocoder/internal/audio"
	"github.com/cwbudde/algo-vocoder/internal/config"
	"github.com/cwbudde/algo-vocoder/internal/metrics"
)

// Result summarizes a successful run.
type Result struct {
	Output        string
	Frames        int
	SampleRate    int
	PeakDBFS      float64 // after output gain, before clipping
	Clipped       int
	Limiting      audio.Role
	DroppedFrames int
	Elapsed       time.Duration
}

// Runner executes jobs. It holds no per-run state and may be reused.
type Runner struct {
	logger      *slog.Logger
	metrics     *metrics.Metrics
	onState     func(State)
	vocoderOpts []vocoder.Option
	now         func() time.Time
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger. The default is slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMetrics records runs in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Runner) { r.metrics = m }
}

// WithStateHook calls fn on every state a run enters, including the
// terminal one.
func WithStateHook(fn func(State)) Option {
	return func(r *Runner) { r.onState = fn }
}

// WithVocoderOptions appends options to every vocoder.New call.
func WithVocoderOptions(opts ...vocoder.Option) Option {
	return func(r *Runner) { r.vocoderOpts = append(r.vocoderOpts, opts...) }
}

// New creates a Runner.
func New(opts ...Option) *Runner {
	r := &Runner{
		logger: slog.Default(),
		now:    time.Now,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	return r
}

// Run executes job. Every error is a *StageError. Nothing is retried and
// the output file exists only if Run succeeds.
func (r *Runner) Run(job config.Job) (Result, error) {
	tr := &tracker{r: r, state: StateIdle, started: r.now(), entered: r.now()}
	res := Result{Output: job.Output}

	r.logger.Info("starting vocoder run",
		"carrier", job.Carrier,
		"modulator", job.Modulator,
		"output", job.Output,
	)

	tr.enter(StateIngesting)

	carrier, err := audio.Load(job.Carrier)
	if err != nil {
		return res, tr.fail(fmt.Errorf("carrier: %w", err))
	}

	modulator, err := audio.Load(job.Modulator)
	if err != nil {
		return res, tr.fail(fmt.Errorf("modulator: %w", err))
	}

	tr.enter(StateReconciling)

	pair, err := audio.Reconcile(r.logger, carrier, modulator)
	if err != nil {
		return res, tr.fail(err)
	}
	defer pair.Release()

	res.Frames = pair.Frames()
	res.SampleRate = pair.SampleRate()
	res.Limiting = pair.Limiting
	res.DroppedFrames = pair.DroppedFrames
	r.metrics.AddDropped(pair.DroppedFrames)

	tr.enter(StateConfiguring)

	v, err := r.newVocoder(job.Vocoder, res.SampleRate)
	if err != nil {
		return res, tr.fail(err)
	}
	defer v.Close()

	q, err := newQuantizer(job, res.SampleRate)
	if err != nil {
		return res, tr.fail(err)
	}

	tr.enter(StateProcessing)

	out, err := v.Process(pair.Carrier.Samples, pair.Modulator.Samples, res.Frames)
	if err != nil {
		return res, tr.fail(err)
	}

	r.metrics.AddFrames(len(out))

	// The inputs are no longer needed; drop them before allocating PCM.
	pair.Release()

	tr.enter(StateFinalizing)

	pcm, stats := finalize(out, job.OutputGain, q)
	res.PeakDBFS, res.Clipped = stats.peakDBFS, stats.clipped
	r.metrics.AddClipped(stats.clipped)
	r.metrics.SetPeak(stats.peakDBFS)

	if err := audio.WritePCM16(job.Output, pcm, res.SampleRate); err != nil {
		return res, tr.fail(err)
	}

	res.Elapsed = tr.succeed()

	r.logger.Info("vocoder run finished",
		"output", res.Output,
		"frames", res.Frames,
		"sample_rate", res.SampleRate,
		"peak_dbfs", res.PeakDBFS,
		"clipped", res.Clipped,
		"elapsed", res.Elapsed,
	)

	return res, nil
}

func (r *Runner) newVocoder(cfg config.VocoderConfig, sampleRate int) (*vocoder.Vocoder, error) {
	opts := make([]vocoder.Option, 0, 2+len(r.vocoderOpts))
	opts = append(opts,
		vocoder.WithReactionTime(cfg.ReactionTime),
		vocoder.WithFormantShift(cfg.FormantShift),
	)
	opts = append(opts, r.vocoderOpts...)

	return vocoder.New(cfg.Bands, cfg.FiltersPerBand, sampleRate, opts...)
}

func newQuantizer(job config.Job, sampleRate int) (*dither.Quantizer, error) {
	if job.OutputGain <= 0 || math.IsNaN(job.OutputGain) || math.IsInf(job.OutputGain, 0) {
		return nil, fmt.Errorf("%w: output gain must be > 0 and finite, got %g", config.ErrInvalidJob, job.OutputGain)
	}

	opts := []dither.Option{
		dither.WithBitDepth(16),
		dither.WithDitherType(job.Dither.Type),
		dither.WithPreset(job.Dither.Shaping),
	}

	if job.Dither.Seed != nil {
		opts = append(opts, dither.WithSeed(*job.Dither.Seed))
	}

	return dither.NewQuantizer(float64(sampleRate), opts...)
}

// tracker walks one run through its states.
type tracker struct {
	r       *Runner
	state   State
	started time.Time
	entered time.Time
}

func (t *tracker) enter(next State) {
	now := t.r.now()
	if t.state != StateIdle {
		t.r.metrics.ObserveStage(t.state.String(), now.Sub(t.entered))
	}

	t.r.logger.Debug("pipeline state", "from", t.state.String(), "to", next.String())

	t.state, t.entered = next, now

	if t.r.onState != nil {
		t.r.onState(next)
	}
}

func (t *tracker) fail(err error) error {
	stage := t.state
	t.enter(StateFailed)
	t.r.metrics.RunFailed(stage.String(), t.r.now())

	serr := &StageError{Stage: stage, Err: err}
	t.r.logger.Error("vocoder run failed", "stage", stage.String(), "error", err)

	return serr
}

func (t *tracker) succeed() time.Duration {
	t.enter(StateSuccess)

	now := t.r.now()
	t.r.metrics.RunSucceeded(now)

	return now.Sub(t.started)
}
