package lang

//go:generate go tool stringer --linecomment --type Policy --output policy_string.go

import (
	"iter"
	"log/slog"
	"strings"
)

// Policy decides what happens to an intermediate result outside
// 0..[MaxNumber]. Division by zero is an error under every policy.
type Policy int

const (
	PolicyChecked  Policy = iota // checked
	PolicyWrap                   // wrap
	PolicySaturate               // saturate
)

// DefaultPolicy rejects out-of-range results.
const DefaultPolicy = PolicyChecked

// Policies yields the names of all defined policies.
func Policies() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, p := range []Policy{PolicyChecked, PolicyWrap, PolicySaturate} {
			if !yield(p.String()) {
				return
			}
		}
	}
}

// ParsePolicy returns the policy named by s, ignoring case.
func ParsePolicy(s string) (Policy, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, p := range []Policy{PolicyChecked, PolicyWrap, PolicySaturate} {
		if s == p.String() {
			return p, true
		}
	}

	return DefaultPolicy, false
}

// Narrow converts an exact integer result to a [Number].
//
//   - checked: values outside the range are [ErrOverflow].
//   - wrap: keeps the low 8 bits (two's complement for negatives).
//   - saturate: clamps to 0..[MaxNumber].
func (p Policy) Narrow(v int) (Number, error) {
	if 0 <= v && v <= MaxNumber {
		return Number(v), nil
	}

	switch p {
	case PolicyWrap:
		return Number(uint8(v)), nil //nolint:gosec // truncation intended

	case PolicySaturate:
		if v < 0 {
			return 0, nil
		}

		return MaxNumber, nil

	default:
		return 0, ErrOverflow.With(slog.Int("result", v),
			slog.String("policy", p.String()))
	}
}

// Apply computes a op b under the policy.
func (p Policy) Apply(op Op, a, b Number) (Number, error) {
	x, y := int(a), int(b)

	switch op {
	case OpAdd:
		return p.Narrow(x + y)

	case OpSub:
		return p.Narrow(x - y)

	case OpMul:
		return p.Narrow(x * y)

	case OpDiv:
		if y == 0 {
			return 0, ErrDivisionByZero.With(slog.Int("dividend", x))
		}

		// The quotient of two in-range operands is always in range.
		return Number(x / y), nil

	default:
		return 0, ErrMalformedTree.With(slog.String("op", op.String()))
	}
}
