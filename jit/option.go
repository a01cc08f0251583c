package jit

import (
	"github.com/ardnew/jitcalc/lang"
	"github.com/ardnew/jitcalc/log"
)

// DefaultCapacity is the size in bytes of the code buffer when no capacity
// is configured.
const DefaultCapacity = 1024

type config struct {
	logger   log.Logger
	capacity int
	policy   lang.Policy
}

// Option configures compilation.
type Option func(*config)

func makeConfig(opts ...Option) config {
	cfg := config{capacity: DefaultCapacity, policy: lang.DefaultPolicy}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// WithPolicy selects how emitted code handles out-of-range intermediates.
func WithPolicy(p lang.Policy) Option {
	return func(c *config) { c.policy = p }
}

// WithCapacity sets the code buffer size in bytes. Non-positive values select
// [DefaultCapacity].
func WithCapacity(n int) Option {
	return func(c *config) {
		if n <= 0 {
			n = DefaultCapacity
		}

		c.capacity = n
	}
}

// WithLogger sets the logger for compilation and invocation traces.
func WithLogger(logger log.Logger) Option {
	return func(c *config) { c.logger = logger }
}
