//go:build !(linux || darwin)

package jit

import (
	"log/slog"
	"os"
	"runtime"
)

func pageSize() int { return os.Getpagesize() }

func mapWritable(int) ([]byte, error) {
	return nil, ErrUnsupportedPlatform.With(slog.String("os", runtime.GOOS))
}

var protectExecutable = func([]byte) error {
	return ErrUnsupportedPlatform.With(slog.String("os", runtime.GOOS))
}

func unmap([]byte) error { return nil }
