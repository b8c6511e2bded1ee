package geochem

import (
	"runtime"

	"go.uber.org/zap"
)

// Options holds configuration for the Parser.
type Options struct {
	logger      *zap.Logger
	parallelism int
}

func defaultOptions() *Options {
	return &Options{
		logger:      zap.NewNop(),
		parallelism: runtime.GOMAXPROCS(0),
	}
}

// Option configures the Parser.
type Option func(*Options)

// WithLogger sets the logger used for parse progress (default: no-op).
func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithParallelism caps how many worksheets are loaded and validated
// concurrently (default: GOMAXPROCS). Values below 1 force sequential
// parsing.
func WithParallelism(n int) Option {
	return func(o *Options) {
		if n < 1 {
			n = 1
		}
		o.parallelism = n
	}
}
