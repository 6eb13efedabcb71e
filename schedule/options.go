package schedule

import "github.com/joeycumines/go-sim8bit/telemetry"

// options holds configuration for Scheduler creation.
type options struct {
	logger telemetry.Logger
}

// Option configures a Scheduler.
type Option interface {
	apply(*options)
}

type optionFunc func(*options)

func (f optionFunc) apply(o *options) { f(o) }

// WithLogger attaches a telemetry.Logger the Scheduler uses to report
// submit/tick activity at debug level. A nil logger is equivalent to
// omitting the option.
func WithLogger(logger telemetry.Logger) Option {
	return optionFunc(func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	})
}

// resolveOptions applies Option values over a default configuration,
// skipping nil options.
func resolveOptions(opts []Option) *options {
	cfg := &options{logger: telemetry.NoOp()}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.apply(cfg)
	}
	return cfg
}
