package log_test

import (
	"log/slog"
	"os"

	"github.com/ardnew/jitcalc/log"
)

func Example() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelDebug),
		log.WithTimeLayout("none"))

	logger.Debug("compiled", slog.Int("bytes", 42))
	// Output: level=DEBUG msg=compiled bytes=42
}

func Example_json() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatJSON),
		log.WithTimeLayout("none"))

	logger.Warn("overflow", slog.String("policy", "checked"))
	// Output: {"level":"WARN","msg":"overflow","policy":"checked"}
}
