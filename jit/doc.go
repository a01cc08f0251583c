// Package jit compiles expression trees to x86-64 machine code and runs it.
//
// [Compile] walks a [lang.Node] tree and emits a stack-machine function: each
// literal is pushed, each operator pops its two operands into rax and rcx,
// combines them, brings the result back into range according to the
// [lang.Policy], and pushes it. The finished [Program] carries the code and a
// human-readable listing.
//
// [Program.Run] copies the code into a fresh [Buffer], an anonymous mapping
// that is writable while filled and then sealed read+execute, calls it as a
// native function without arguments, and unmaps it before returning.
//
// Division by zero and checked overflow branch to small stubs that return
// sentinel values outside 0..255; Run maps them back to [lang.ErrDivisionByZero]
// and [lang.ErrOverflow], so callers see the same errors as [lang.Eval].
//
// Execution requires linux or darwin on amd64 ([Supported]). Compilation and
// listings work everywhere.
package jit
