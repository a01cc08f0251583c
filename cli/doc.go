// Package cli contains the command line interface for jitcalc.
//
// # Usage
//
// Expressions given as arguments are evaluated by the default eval command:
//
//	jitcalc '2 + 3 * 4' '(7 - 2) * 9'
//
// Without arguments, eval reads one expression per line from stdin. The other
// commands are repl, ast, asm, init and version.
//
// # Configuration
//
// Flag defaults are read from config.yaml in the user configuration directory
// ($XDG_CONFIG_HOME/jitcalc on Linux). The init command writes the current
// flag values there:
//
//	jitcalc --no-jit --policy=saturate init
//
// # Evaluation Options
//
//   - --jit: Compile expressions to native code (default on amd64)
//   - --policy: Out-of-range intermediate handling (checked, wrap, saturate)
//   - --capacity: JIT code buffer size in bytes
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/jitcalc/pprof)
package cli
