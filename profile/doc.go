// Package profile provides optional runtime profiling for jitcalc.
//
// Profiling uses [github.com/pkg/profile] and must be enabled at build time
// with the "pprof" build tag:
//
//	go build -tags pprof .
//
// Without the tag, [Modes] is empty and every [Profiler] is a no-op.
//
// A profiler is configured with options and started once:
//
//	p := profile.Make(profile.WithMode("cpu"), profile.WithPath("/tmp/prof"))
//	defer p.Start().Stop()
//
// Profile files are written to the path with names matching the mode
// (cpu.pprof, mem.pprof) and can be inspected with go tool pprof:
//
//	go tool pprof -http=: /tmp/prof/cpu.pprof
//
// The default output directory is the pprof directory under the user cache
// directory, for example $XDG_CACHE_HOME/jitcalc/pprof.
//
// Importing the package with the tag also registers the [net/http/pprof]
// handlers on the default HTTP mux.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
