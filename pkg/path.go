package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// DirMode is the permission mode for directories created by [MkdirAll].
const DirMode os.FileMode = 0o700

// Prefix returns the base name used for the configuration and cache
// directories.
//
// By default, Prefix is the base name of the executable file unless it matches
// one of the following substitution rules:
//   - "__debug_bin" (default output of the dlv debugger): replaced with [Name]
//   - "^\.+" (dot-prefixed names): remove the dot prefix
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(
	func() string {
		return prefixOf(executable())
	},
)

func executable() string {
	if exe, err := os.Executable(); err == nil {
		return exe
	}

	return os.Args[0]
}

func prefixOf(path string) string {
	id := filepath.Base(path)
	id = strings.TrimSuffix(id, filepath.Ext(id))

	for _, sub := range []struct {
		rex *regexp.Regexp
		rep string
	}{
		{regexp.MustCompile(`^__debug_bin\d*$`), Name}, // default output from dlv
		{regexp.MustCompile(`^\.+`), ""},               // remove leading dot(s)
	} {
		id = sub.rex.ReplaceAllString(id, sub.rep)
	}

	if id == "" {
		return Name
	}

	return id
}

// userDir returns the directory from base, falling back to fallback under the
// home directory, then to the working directory.
func userDir(base func() (string, error), fallback string) string {
	dir, err := base()
	if err == nil {
		return filepath.Join(dir, Prefix())
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, fallback, Prefix())
	}

	if wd, err := os.Getwd(); err == nil {
		return filepath.Join(wd, Prefix())
	}

	return Prefix()
}

// ConfigDir returns the configuration directory path.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(
	func() string { return userDir(os.UserConfigDir, ".config") },
)

// CacheDir returns the cache directory path used for transient files such as
// the REPL history and profiles.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(
	func() string { return userDir(os.UserCacheDir, ".cache") },
)

// MkdirAll creates the configuration and cache directories.
func MkdirAll() error {
	for _, dir := range []string{ConfigDir(), CacheDir()} {
		if err := os.MkdirAll(dir, DirMode); err != nil {
			return err
		}
	}

	return nil
}
