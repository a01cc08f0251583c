// Package repl implements the interactive read-eval-print loop.
//
// [Run] drives a terminal UI with two input modes. Eval mode evaluates each
// submitted expression; Esc switches to control mode, which accepts the
// commands listed by "help". Submitted lines of both modes are kept in a
// [History] file.
//
// [Lines] is the fallback for non-terminal input: a "> " prompt per line and
// no output for failed expressions.
package repl
