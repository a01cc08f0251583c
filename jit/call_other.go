//go:build !(amd64 && (linux || darwin))

package jit

import (
	"log/slog"
	"runtime"
)

// Supported reports whether generated code can be executed on this platform.
const Supported = false

func call(uintptr) (uintptr, error) {
	return 0, ErrUnsupportedPlatform.With(
		slog.String("os", runtime.GOOS),
		slog.String("arch", runtime.GOARCH))
}
