package calc

import (
	"github.com/ardnew/jitcalc/jit"
	"github.com/ardnew/jitcalc/lang"
	"github.com/ardnew/jitcalc/log"
)

// Option configures an [Interpreter].
type Option func(*Interpreter)

// WithPolicy selects how out-of-range intermediates are handled in both
// modes.
func WithPolicy(p lang.Policy) Option {
	return func(in *Interpreter) { in.policy = p }
}

// WithCapacity sets the JIT code buffer size in bytes. Non-positive values
// select [jit.DefaultCapacity].
func WithCapacity(n int) Option {
	return func(in *Interpreter) {
		if n <= 0 {
			n = jit.DefaultCapacity
		}

		in.capacity = n
	}
}

// WithLogger sets the logger for per-stage traces.
func WithLogger(logger log.Logger) Option {
	return func(in *Interpreter) { in.logger = logger }
}

// WithMetrics records every interpretation in m.
func WithMetrics(m *Metrics) Option {
	return func(in *Interpreter) { in.metrics = m }
}
