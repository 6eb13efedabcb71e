package sram

import "github.com/joeycumines/go-sim8bit/telemetry"

// options holds configuration for New.
type options struct {
	capacity uint64
	timing   Timing
	logger   telemetry.Logger
	image    map[uint64]byte
}

// Option configures an SRAM.
type Option interface {
	apply(*options)
}

type optionFunc func(*options)

func (f optionFunc) apply(o *options) { f(o) }

// WithCapacity bounds the addressable range to capacity locations, wrapping
// any address bus bit above that range via modulo (spec §13, decision 2: the
// part is generalized by parameter rather than hard-coded to 32 KiB). A
// capacity of 0 (the default) means "use the full range of the supplied
// address bus".
func WithCapacity(capacity uint64) Option {
	return optionFunc(func(o *options) { o.capacity = capacity })
}

// WithTiming overrides the datasheet timing constants. The default is
// Default62256Timing.
func WithTiming(t Timing) Option {
	return optionFunc(func(o *options) { o.timing = t })
}

// WithLogger attaches a telemetry.Logger the SRAM uses to report each read
// it drives onto the data bus and each committed write, at debug level.
// Timing faults are raised as panics, not logged. A nil logger is
// equivalent to omitting the option.
func WithLogger(logger telemetry.Logger) Option {
	return optionFunc(func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	})
}

// WithImage seeds the memory array from image, keyed by address. The map is
// copied; mutating it after New returns has no effect on the SRAM.
func WithImage(image map[uint64]byte) Option {
	return optionFunc(func(o *options) { o.image = image })
}

func resolveOptions(opts []Option) *options {
	cfg := &options{
		timing: Default62256Timing,
		logger: telemetry.NoOp(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.apply(cfg)
	}
	return cfg
}
