package vocoder

import "fmt"

// Option configures a Vocoder at construction time.
type Option func(*options) error

type options struct {
	reactionTime float64
	formantShift float64
	factory      EngineFactory
}

func defaultOptions() options {
	return options{
		reactionTime: DefaultReactionTime,
		formantShift: DefaultFormantShift,
		factory:      newChannelEngine,
	}
}

// WithReactionTime sets the initial envelope reaction time in seconds.
func WithReactionTime(seconds float64) Option {
	return func(o *options) error {
		if err := ValidateReactionTime(seconds); err != nil {
			return err
		}

		o.reactionTime = seconds

		return nil
	}
}

// WithFormantShift sets the initial formant shift ratio.
func WithFormantShift(ratio float64) Option {
	return func(o *options) error {
		if err := ValidateFormantShift(ratio); err != nil {
			return err
		}

		o.formantShift = ratio

		return nil
	}
}

// WithEngineFactory replaces the built-in ChannelEngine.
func WithEngineFactory(f EngineFactory) Option {
	return func(o *options) error {
		if f == nil {
			return fmt.Errorf("%w: engine factory must not be nil", ErrInvalidConfig)
		}

		o.factory = f

		return nil
	}
}
