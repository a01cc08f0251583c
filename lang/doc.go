// Package lang implements the arithmetic expression language: tokenizing,
// parsing, the expression tree, and tree-walking evaluation.
//
// # Grammar
//
// Informal EBNF:
//
//	expression → term (('+' | '-') term)*
//	term       → factor (('*' | '/') factor)*
//	factor     → Number
//	Number     → [0-9]+   (value at most 255)
//
// Only ASCII space separates tokens. '*' and '/' bind tighter than '+' and
// '-', and all four are left-associative, so "8 - 3 - 2" is 3.
//
// # Numbers
//
// Every literal, intermediate and result is a [Number] (an unsigned byte).
// A [Policy] decides what an out-of-range intermediate becomes: an
// [ErrOverflow] failure (checked), its low byte (wrap), or the nearest bound
// (saturate).
//
// # Errors
//
// All failures are [*Error] values derived from the sentinels in this
// package. Use errors.Is with either the sentinel ([ErrExpectedNumber]) or its
// category ([ErrParse]). [Error.Format] renders a caret under the offending
// column of the input line.
package lang
