package wire

import "github.com/joeycumines/go-sim8bit/telemetry"

// netOptions holds configuration for NewNet.
type netOptions struct {
	logger telemetry.Logger
}

// NetOption configures a Net.
type NetOption interface {
	apply(*netOptions)
}

type netOptionFunc func(*netOptions)

func (f netOptionFunc) apply(o *netOptions) { f(o) }

// WithLogger attaches a telemetry.Logger the Net uses to report ownership
// transitions at debug level. A nil logger is equivalent to omitting the
// option.
func WithLogger(logger telemetry.Logger) NetOption {
	return netOptionFunc(func(o *netOptions) {
		if logger != nil {
			o.logger = logger
		}
	})
}

func resolveNetOptions(opts []NetOption) *netOptions {
	cfg := &netOptions{logger: telemetry.NoOp()}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.apply(cfg)
	}
	return cfg
}
