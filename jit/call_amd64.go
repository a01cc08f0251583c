//go:build amd64 && (linux || darwin)

package jit

import "github.com/ebitengine/purego"

// Supported reports whether generated code can be executed on this platform.
const Supported = true

// call invokes the zero-argument function at entry through the platform C
// calling convention. r1 is rax on return.
func call(entry uintptr) (uintptr, error) {
	r1, _, _ := purego.SyscallN(entry)

	return r1, nil
}
