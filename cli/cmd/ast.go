package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/jitcalc/lang"
)

// AST parses an expression and prints its syntax tree.
type AST struct {
	Format string `default:"tree" enum:"tree,json,yaml" help:"Output format (${enum})." short:"F"`
	Indent int    `default:"2"                          help:"Indent width for JSON and YAML output" short:"i"`

	Expr string `arg:"" help:"Expression to parse" name:"expr"`
}

// Run executes the ast command.
func (a *AST) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s := streamsFrom(ctx)

	root, err := engineFrom(ctx).Interpreter(ctx).Parse(ctx, a.Expr)
	if err != nil {
		if snippet := lang.WrapError(err).Format(a.Expr); snippet != "" {
			_, _ = fmt.Fprint(s.Err, snippet)
		}

		return ErrEvaluate.
			With(slog.String("expr", a.Expr)).
			Wrap(err)
	}

	switch a.Format {
	case "json":
		err = root.FormatJSON(ctx, s.Out, a.Indent)

	case "yaml":
		err = root.FormatYAML(ctx, s.Out, a.Indent)

	default:
		err = root.Print(s.Out)
	}

	if err != nil {
		return ErrWriteOutput.
			With(slog.String("format", a.Format)).
			Wrap(err)
	}

	return nil
}
