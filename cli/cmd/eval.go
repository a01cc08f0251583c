package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ardnew/jitcalc/calc"
	"github.com/ardnew/jitcalc/lang"
	"github.com/ardnew/jitcalc/log"
)

// Eval evaluates each expression argument, or each line of stdin when no
// arguments are given, and prints one result per line.
type Eval struct {
	Expr []string `arg:"" help:"Expressions to evaluate (default: lines of stdin). Unquoted fragments of one expression are joined." name:"expr" optional:""`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	eng := engineFrom(ctx)
	in := eng.Interpreter(ctx)
	s := streamsFrom(ctx)

	if len(e.Expr) > 0 {
		for _, line := range expressions(e.Expr) {
			if err := evalLine(ctx, s, in, line, eng.JIT); err != nil {
				return err
			}
		}

		return nil
	}

	scanner := bufio.NewScanner(s.In)
	for scanner.Scan() {
		if err := evalLine(ctx, s, in, scanner.Text(), eng.JIT); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return ErrReadInput.Wrap(err)
	}

	return nil
}

// expressions returns args as separate expressions unless some argument is
// only a fragment of one, as in "jitcalc 2 + 3", and all of them joined by
// spaces parse as a single expression.
func expressions(args []string) []string {
	if len(args) < 2 {
		return args
	}

	for _, arg := range args {
		_, err := lang.ParseString(arg)
		if err == nil || errors.Is(err, lang.ErrEmptyInput) {
			continue
		}

		joined := strings.Join(args, " ")
		if _, err := lang.ParseString(joined); err == nil {
			return []string{joined}
		}

		break
	}

	return args
}

// evalLine prints the value of line, or a caret snippet locating its error.
// Blank lines are skipped.
func evalLine(
	ctx context.Context,
	s Streams,
	in *calc.Interpreter,
	line string,
	useJIT bool,
) error {
	if strings.TrimSpace(line) == "" {
		return nil
	}

	v, err := in.Interpret(ctx, line, useJIT)
	if err != nil {
		if snippet := lang.WrapError(err).Format(line); snippet != "" {
			_, _ = fmt.Fprint(s.Err, snippet)
		}

		return ErrEvaluate.
			With(
				slog.String("expr", line),
				slog.String("mode", calc.ModeName(useJIT)),
			).
			Wrap(err)
	}

	log.TraceContext(ctx, "eval",
		slog.String("expr", line),
		slog.Int("result", int(v)))

	if _, err := fmt.Fprintln(s.Out, v); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

// IsEvaluate reports whether err is an expression failure already reported
// to the user with a snippet.
func IsEvaluate(err error) bool {
	return errors.Is(err, ErrEvaluate)
}
