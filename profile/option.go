package profile

// Profiler holds the settings of one profiling run.
type Profiler struct {
	mode  string
	path  string
	quiet bool
}

// Option configures a [Profiler].
type Option func(Profiler) Profiler

// Make returns a Profiler configured by opts.
func Make(opts ...Option) Profiler {
	var p Profiler

	for _, opt := range opts {
		if opt != nil {
			p = opt(p)
		}
	}

	return p
}

// Mode returns the profiling mode, or "" if profiling is disabled.
func (p Profiler) Mode() string { return p.mode }

// Start begins profiling and returns the handle that ends it.
//
// If build tag pprof is unset, or the mode is empty or unknown, Start returns
// a no-op implementation. Both Start and Stop are always safely callable.
func (p Profiler) Start() interface{ Stop() } {
	if p.mode == "" {
		return ignore{}
	}

	return start(p)
}

// WithMode returns a functional option for setting a profiler's mode.
func WithMode(mode string) Option {
	return func(p Profiler) Profiler {
		p.mode = mode

		return p
	}
}

// WithPath returns a functional option for setting a profiler's output path.
func WithPath(path string) Option {
	return func(p Profiler) Profiler {
		p.path = path

		return p
	}
}

// WithQuiet returns a functional option for setting a profiler's quiet flag.
func WithQuiet(quiet bool) Option {
	return func(p Profiler) Profiler {
		p.quiet = quiet

		return p
	}
}

type ignore struct{}

func (ignore) Stop() {}
