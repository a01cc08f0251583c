// Package calc is the entry point for evaluating expression lines.
//
// [Interpret] tokenizes and parses a line, then either walks the tree or
// compiles it to native code and calls it:
//
//	v, err := calc.Interpret("2 + 3 * 4", true) // 14
//
//	in := calc.New(calc.WithPolicy(lang.PolicyWrap))
//	v, err = in.Interpret(ctx, "200 + 100", false) // 44
//
// An [Interpreter] holds the configuration (policy, code buffer capacity,
// logger, [Metrics]) for repeated use.
package calc
