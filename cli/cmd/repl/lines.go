package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// LinePrompt is printed before each line read by [Lines].
const LinePrompt = "> "

// Lines runs the REPL without a terminal: it prompts on w, reads lines from
// r until EOF or "quit", and prints the value of each expression. Failed
// expressions print nothing and are logged at debug level.
func Lines(ctx context.Context, r io.Reader, w io.Writer, cfg Config) error {
	in := cfg.interpreter()
	scanner := bufio.NewScanner(r)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if _, err := io.WriteString(w, LinePrompt); err != nil {
			return err
		}

		if !scanner.Scan() {
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())

		switch line {
		case "":
			continue

		case "quit":
			return nil
		}

		v, err := in.Interpret(ctx, line, cfg.JIT)
		if err != nil {
			cfg.Logger.DebugContext(ctx, "ignored",
				slog.String("expr", line),
				slog.Any("error", err))

			continue
		}

		if _, err := fmt.Fprintln(w, v); err != nil {
			return err
		}
	}
}
