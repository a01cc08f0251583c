package calc

import (
	"context"
	"log/slog"
	"time"

	"github.com/ardnew/jitcalc/jit"
	"github.com/ardnew/jitcalc/lang"
	"github.com/ardnew/jitcalc/log"
)

// Mode names used in logs and metric labels.
const (
	ModeTree = "tree"
	ModeJIT  = "jit"
)

// ModeName returns the name of the execution mode selected by useJIT.
func ModeName(useJIT bool) string {
	if useJIT {
		return ModeJIT
	}

	return ModeTree
}

// Interpreter runs lines through the tokenizer, the parser, and either the
// tree evaluator or the JIT compiler.
//
// An Interpreter is immutable and safe for concurrent use.
type Interpreter struct {
	logger   log.Logger
	metrics  *Metrics
	capacity int
	policy   lang.Policy
}

// New returns an Interpreter configured by opts.
func New(opts ...Option) *Interpreter {
	in := &Interpreter{
		capacity: jit.DefaultCapacity,
		policy:   lang.DefaultPolicy,
	}

	return in.apply(opts...)
}

func (in *Interpreter) apply(opts ...Option) *Interpreter {
	for _, opt := range opts {
		if opt != nil {
			opt(in)
		}
	}

	return in
}

// With returns a copy of in with opts applied.
func (in *Interpreter) With(opts ...Option) *Interpreter {
	c := *in

	return c.apply(opts...)
}

// Policy returns the arithmetic policy.
func (in *Interpreter) Policy() lang.Policy { return in.policy }

// Capacity returns the JIT code buffer size in bytes.
func (in *Interpreter) Capacity() int { return in.capacity }

// Metrics returns the metrics collector, or nil.
func (in *Interpreter) Metrics() *Metrics { return in.metrics }

// Interpret evaluates one line. With useJIT the expression is compiled to
// machine code and executed; otherwise the tree is walked. Both modes apply
// the same policy and report the same errors, except that only JIT mode can
// fail with [jit.ErrCodegen] errors.
func (in *Interpreter) Interpret(
	ctx context.Context,
	line string,
	useJIT bool,
) (v lang.Number, err error) {
	mode := ModeName(useJIT)
	start := time.Now()

	defer func() {
		in.metrics.observe(mode, err, time.Since(start))

		if err != nil {
			in.logger.DebugContext(ctx, "interpret failed",
				slog.String("mode", mode),
				slog.Any("error", err))
		}
	}()

	root, err := in.Parse(ctx, line)
	if err != nil {
		return 0, err
	}

	if !useJIT {
		v, err = lang.Eval(root, in.policy)
		if err != nil {
			return 0, err
		}

		in.logger.TraceContext(ctx, "evaluated",
			slog.String("mode", mode),
			slog.Int("result", int(v)))

		return v, nil
	}

	prog, err := in.compile(root)
	if err != nil {
		return 0, err
	}

	v, err = prog.Run(ctx)
	if err != nil {
		return 0, err
	}

	in.logger.TraceContext(ctx, "evaluated",
		slog.String("mode", mode),
		slog.Int("result", int(v)))

	return v, nil
}

// Parse tokenizes and parses line.
func (in *Interpreter) Parse(ctx context.Context, line string) (*lang.Node, error) {
	tokens, err := lang.Tokenize(line)
	if err != nil {
		return nil, err
	}

	in.logger.TraceContext(ctx, "tokenized", slog.Int("tokens", len(tokens)))

	root, err := lang.Parse(tokens)
	if err != nil {
		return nil, err
	}

	in.logger.TraceContext(ctx, "parsed",
		slog.Int("nodes", root.Count()),
		slog.Int("depth", root.Depth()))

	return root, nil
}

// Compile parses line and compiles it to machine code without running it.
func (in *Interpreter) Compile(ctx context.Context, line string) (*jit.Program, error) {
	root, err := in.Parse(ctx, line)
	if err != nil {
		return nil, err
	}

	return in.compile(root)
}

func (in *Interpreter) compile(root *lang.Node) (*jit.Program, error) {
	prog, err := jit.Compile(root,
		jit.WithPolicy(in.policy),
		jit.WithCapacity(in.capacity),
		jit.WithLogger(in.logger))
	if err != nil {
		return nil, err
	}

	in.metrics.compiled(prog.Size())

	return prog, nil
}

// Interpret evaluates line with a new [Interpreter] configured by opts.
func Interpret(line string, useJIT bool, opts ...Option) (lang.Number, error) {
	return New(opts...).Interpret(context.Background(), line, useJIT)
}
