// Package log is a small structured logging layer over [log/slog].
//
// A [Logger] is built once with functional options and is safe for
// concurrent use:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("RFC3339Nano"))
//
//	logger.Debug("compiled", slog.Int("bytes", 42))
//
// The package also keeps a default logger, reconfigured with [Config] and
// used by the package-level functions ([Debug], [Info], ...). Commands
// configure it from flags before doing any work.
//
// Levels are [LevelTrace], [LevelDebug], [LevelInfo], [LevelWarn] and
// [LevelError]. Trace is reserved for per-stage pipeline detail (token
// counts, emitted instructions) and is printed as "TRACE".
//
// Output is [FormatText] (optionally colorized with [WithPretty]) or
// [FormatJSON].
package log
