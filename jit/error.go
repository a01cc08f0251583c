package jit

import "github.com/ardnew/jitcalc/lang"

// ErrCodegen is the category of every failure raised while generating,
// mapping or invoking native code.
var ErrCodegen = lang.NewError("code generation")

// Predefined errors (sentinel values).
var (
	ErrCodeBufferOverflow  = ErrCodegen.Sub("code buffer overflow")
	ErrMemoryProtection    = ErrCodegen.Sub("memory protection failure")
	ErrMemoryAllocation    = ErrCodegen.Sub("memory allocation failure")
	ErrBufferState         = ErrCodegen.Sub("invalid buffer state")
	ErrUnsupportedPlatform = ErrCodegen.Sub("unsupported platform")
	ErrCorruptResult       = ErrCodegen.Sub("corrupt result")
	ErrUnboundLabel        = ErrCodegen.Sub("unbound label")
)
