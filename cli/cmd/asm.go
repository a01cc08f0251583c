package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/jitcalc/lang"
)

// Asm compiles an expression and prints the generated instructions without
// running them.
type Asm struct {
	Hex bool `help:"Include the encoded bytes of each instruction." short:"x"`

	Expr string `arg:"" help:"Expression to compile" name:"expr"`
}

// Run executes the asm command.
func (a *Asm) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s := streamsFrom(ctx)

	prog, err := engineFrom(ctx).Interpreter(ctx).Compile(ctx, a.Expr)
	if err != nil {
		if snippet := lang.WrapError(err).Format(a.Expr); snippet != "" {
			_, _ = fmt.Fprint(s.Err, snippet)
		}

		return ErrEvaluate.
			With(slog.String("expr", a.Expr)).
			Wrap(err)
	}

	if err := prog.WriteListing(s.Out, a.Hex); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
