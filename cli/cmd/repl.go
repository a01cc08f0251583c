package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/ardnew/jitcalc/cli/cmd/repl"
	"github.com/ardnew/jitcalc/log"
)

// Repl starts an interactive session. Input that is not a terminal is read
// line by line instead.
type Repl struct {
	Plain bool `help:"Read plain lines even from a terminal."`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	eng := engineFrom(ctx)
	s := streamsFrom(ctx)

	cfg := repl.Config{
		Interpreter: eng.Interpreter(ctx),
		Logger:      log.Default(),
		HistoryPath: historyPath(ctx),
		JIT:         eng.JIT,
	}

	if r.Plain || !isTerminal(s.In) {
		return repl.Lines(ctx, s.In, s.Out, cfg)
	}

	return repl.Run(ctx, cfg)
}

// historyPath returns the history file in the cache directory, or "" when no
// cache directory is configured.
func historyPath(ctx context.Context) string {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ""
	}

	dir, ok := ktx.Model.Vars()[CacheIdentifier]
	if !ok || dir == "" {
		return ""
	}

	return filepath.Join(dir, repl.HistoryFile)
}

func isTerminal(r any) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
