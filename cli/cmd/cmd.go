package cmd

import (
	"context"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/jitcalc/calc"
	"github.com/ardnew/jitcalc/jit"
	"github.com/ardnew/jitcalc/lang"
	"github.com/ardnew/jitcalc/log"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type (
	streamsKey struct{}
	engineKey  struct{}
	metricsKey struct{}
)

// Streams are the standard streams of a command.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// WithStreams returns a new context.Context whose commands use s instead of
// the process's standard streams. Nil fields keep the process's stream.
func WithStreams(ctx context.Context, s Streams) context.Context {
	return context.WithValue(ctx, streamsKey{}, s)
}

func streamsFrom(ctx context.Context) Streams {
	s, _ := ctx.Value(streamsKey{}).(Streams)

	if s.In == nil {
		s.In = os.Stdin
	}

	if s.Out == nil {
		s.Out = os.Stdout
	}

	if s.Err == nil {
		s.Err = os.Stderr
	}

	return s
}

// Engine holds the flags shared by every command that evaluates expressions.
type Engine struct {
	JIT      bool   `default:"${jit}"      help:"Compile expressions to native code."            negatable:""`
	Policy   string `default:"${policy}"   help:"Out-of-range intermediate handling (${enum})." enum:"${policyEnum}"`
	Capacity int    `default:"${capacity}" help:"JIT code buffer size in bytes."`
}

// Vars returns the kong variables interpolated into the [Engine] flags.
func (Engine) Vars() kong.Vars {
	return kong.Vars{
		"jit":        strconv.FormatBool(jit.Supported),
		"policy":     lang.DefaultPolicy.String(),
		"policyEnum": strings.Join(slices.Collect(lang.Policies()), ","),
		"capacity":   strconv.Itoa(jit.DefaultCapacity),
	}
}

// WithEngine returns a new context.Context carrying the parsed engine flags.
func WithEngine(ctx context.Context, e Engine) context.Context {
	return context.WithValue(ctx, engineKey{}, e)
}

// WithMetrics returns a new context.Context whose interpreters record into m.
func WithMetrics(ctx context.Context, m *calc.Metrics) context.Context {
	return context.WithValue(ctx, metricsKey{}, m)
}

func engineFrom(ctx context.Context) Engine {
	e, ok := ctx.Value(engineKey{}).(Engine)
	if !ok {
		return Engine{
			JIT:      jit.Supported,
			Policy:   lang.DefaultPolicy.String(),
			Capacity: jit.DefaultCapacity,
		}
	}

	return e
}

// Interpreter returns a [calc.Interpreter] configured by e.
func (e Engine) Interpreter(ctx context.Context) *calc.Interpreter {
	policy, ok := lang.ParsePolicy(e.Policy)
	if !ok {
		policy = lang.DefaultPolicy
	}

	m, _ := ctx.Value(metricsKey{}).(*calc.Metrics)

	return calc.New(
		calc.WithPolicy(policy),
		calc.WithCapacity(e.Capacity),
		calc.WithLogger(log.Default()),
		calc.WithMetrics(m),
	)
}
