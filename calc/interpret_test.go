package calc

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"

	"github.com/expr-lang/expr"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/jitcalc/jit"
	"github.com/ardnew/jitcalc/lang"
	"github.com/ardnew/jitcalc/log"
)

// modes returns the execution modes runnable on this platform.
func modes() []bool {
	if jit.Supported {
		return []bool{false, true}
	}

	return []bool{false}
}

func TestInterpret(t *testing.T) {
	tests := []struct {
		line string
		want lang.Number
	}{
		{"2 + 3 * 4", 14},
		{"8 - 3 - 2", 3},
		{"8 / 4 / 2", 1},
		{"1+1", 2},
		{" 1 + 1 ", 2},
		{"255", 255},
		{"0", 0},
		{"10 / 3", 3},
		{"5 * 0 + 7", 7},
	}

	for _, useJIT := range modes() {
		for _, tt := range tests {
			t.Run(ModeName(useJIT)+"/"+tt.line, func(t *testing.T) {
				got, err := Interpret(tt.line, useJIT)
				require.NoError(t, err)
				require.Equal(t, tt.want, got)
			})
		}
	}
}

func TestInterpret_Errors(t *testing.T) {
	tests := []struct {
		line string
		want error
	}{
		{"", lang.ErrEmptyInput},
		{"   ", lang.ErrEmptyInput},
		{"1 & 2", lang.ErrUnexpectedCharacter},
		{"1 +", lang.ErrExpectedNumber},
		{"+ 1", lang.ErrExpectedNumber},
		{"1 2", lang.ErrUnexpectedTrailingTokens},
		{"256", lang.ErrNumberTooLarge},
		{"1/0", lang.ErrDivisionByZero},
		{"200+100", lang.ErrOverflow},
		{"0 - 1", lang.ErrOverflow},
	}

	for _, useJIT := range modes() {
		for _, tt := range tests {
			t.Run(ModeName(useJIT)+"/"+tt.line, func(t *testing.T) {
				_, err := Interpret(tt.line, useJIT)
				require.ErrorIs(t, err, tt.want)
			})
		}
	}
}

func TestInterpret_EmptyInputOnly(t *testing.T) {
	_, err := Interpret("   ", false)
	require.ErrorIs(t, err, lang.ErrEmptyInput)
	require.NotErrorIs(t, err, lang.ErrUnexpectedCharacter)
	require.NotErrorIs(t, err, lang.ErrParse)
	require.Empty(t, err.Error())
}

func TestInterpret_Policies(t *testing.T) {
	tests := []struct {
		policy lang.Policy
		want   lang.Number
		err    error
	}{
		{lang.PolicyChecked, 0, lang.ErrOverflow},
		{lang.PolicyWrap, 44, nil},
		{lang.PolicySaturate, 255, nil},
	}

	for _, useJIT := range modes() {
		for _, tt := range tests {
			t.Run(ModeName(useJIT)+"/"+tt.policy.String(), func(t *testing.T) {
				got, err := Interpret("200+100", useJIT, WithPolicy(tt.policy))
				if tt.err != nil {
					require.ErrorIs(t, err, tt.err)

					return
				}

				require.NoError(t, err)
				require.Equal(t, tt.want, got)
			})
		}
	}
}

func TestInterpret_EveryLiteral(t *testing.T) {
	in := New()

	for _, useJIT := range modes() {
		for n := range lang.MaxNumber + 1 {
			got, err := in.Interpret(t.Context(), fmt.Sprint(n), useJIT)
			require.NoError(t, err)
			require.EqualValues(t, n, got)
		}
	}
}

func TestInterpret_Repeatable(t *testing.T) {
	in := New()

	for _, useJIT := range modes() {
		first, err := in.Interpret(t.Context(), "17 * 3 - 4 / 2", useJIT)
		require.NoError(t, err)

		for range 20 {
			again, err := in.Interpret(t.Context(), "17 * 3 - 4 / 2", useJIT)
			require.NoError(t, err)
			require.Equal(t, first, again)
		}
	}
}

func TestInterpret_LongExpression(t *testing.T) {
	line := strings.Repeat("1 + ", 200) + "1"

	_, err := Interpret(line, true)
	require.ErrorIs(t, err, jit.ErrCodeBufferOverflow)

	got, err := Interpret(line, false)
	require.NoError(t, err)
	require.EqualValues(t, 201, got)

	if jit.Supported {
		got, err = Interpret(line, true, WithCapacity(16384))
		require.NoError(t, err)
		require.EqualValues(t, 201, got)
	}
}

// randomExpr builds a well-formed expression of n operands.
func randomExpr(r *rand.Rand, n int, ops string) string {
	var b strings.Builder

	for i := range n {
		if i > 0 {
			b.WriteString(" ")
			b.WriteByte(ops[r.IntN(len(ops))])
			b.WriteString(" ")
		}

		b.WriteString(fmt.Sprint(r.IntN(lang.MaxNumber + 1)))
	}

	return b.String()
}

func TestInterpret_ModesAgree(t *testing.T) {
	if !jit.Supported {
		t.Skip("native execution not supported on this platform")
	}

	r := rand.New(rand.NewPCG(1, 2))

	for _, policy := range []lang.Policy{lang.PolicyChecked, lang.PolicyWrap, lang.PolicySaturate} {
		in := New(WithPolicy(policy))

		for range 200 {
			line := randomExpr(r, 1+r.IntN(12), "+-*/")

			tree, treeErr := in.Interpret(t.Context(), line, false)
			native, jitErr := in.Interpret(t.Context(), line, true)

			if treeErr != nil {
				require.Error(t, jitErr, "%s: %q", policy, line)
				require.Equal(t, outcome(treeErr), outcome(jitErr), "%s: %q", policy, line)
				for _, sentinel := range []error{lang.ErrOverflow, lang.ErrDivisionByZero} {
					require.Equal(t,
						errors.Is(treeErr, sentinel), errors.Is(jitErr, sentinel),
						"%s: %q: %v", policy, line, sentinel)
				}

				continue
			}

			require.NoError(t, jitErr, "%s: %q", policy, line)
			require.Equal(t, tree, native, "%s: %q", policy, line)
		}
	}
}

// TestInterpret_WrapOracle checks wrap-mode results against an independent
// evaluator. Addition, subtraction and multiplication commute with reduction
// modulo 256, so the exact result reduced once must match.
func TestInterpret_WrapOracle(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	in := New(WithPolicy(lang.PolicyWrap))

	for range 300 {
		line := randomExpr(r, 1+r.IntN(10), "+-*")

		out, err := expr.Eval(line, nil)
		require.NoError(t, err, line)

		exact, ok := out.(int)
		require.True(t, ok, "oracle returned %T for %q", out, line)

		want := lang.Number(uint8(exact)) //nolint:gosec // reduction intended

		for _, useJIT := range modes() {
			got, err := in.Interpret(t.Context(), line, useJIT)
			require.NoError(t, err, line)
			require.Equal(t, want, got, "%s: %q", ModeName(useJIT), line)
		}
	}
}

func TestInterpreter_Concurrent(t *testing.T) {
	in := New(WithMetrics(NewMetrics()))

	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for _, useJIT := range modes() {
				got, err := in.Interpret(t.Context(), fmt.Sprintf("%d + 1", i), useJIT)
				if err != nil || int(got) != i+1 {
					t.Errorf("Interpret(%d + 1) = %d, %v", i, got, err)
				}
			}
		}()
	}

	wg.Wait()
}

func TestInterpreter_With(t *testing.T) {
	base := New(WithPolicy(lang.PolicyChecked), WithCapacity(0))
	wrapped := base.With(WithPolicy(lang.PolicyWrap), WithCapacity(2048))

	require.Equal(t, lang.PolicyChecked, base.Policy())
	require.Equal(t, jit.DefaultCapacity, base.Capacity())
	require.Equal(t, lang.PolicyWrap, wrapped.Policy())
	require.Equal(t, 2048, wrapped.Capacity())
}

func TestInterpreter_Compile(t *testing.T) {
	prog, err := New().Compile(t.Context(), "1 + 2")
	require.NoError(t, err)
	require.Positive(t, prog.Size())

	_, err = New().Compile(t.Context(), "1 +")
	require.ErrorIs(t, err, lang.ErrExpectedNumber)
}

func TestInterpreter_Logging(t *testing.T) {
	var buf bytes.Buffer

	in := New(WithLogger(log.Make(&buf,
		log.WithLevel(log.LevelTrace),
		log.WithFormat(log.FormatJSON))))

	_, err := in.Interpret(t.Context(), "2 * 3", false)
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, `"msg":"tokenized"`)
	require.Contains(t, out, `"tokens":3`)
	require.Contains(t, out, `"msg":"parsed"`)
	require.Contains(t, out, `"result":6`)

	buf.Reset()

	_, err = in.Interpret(t.Context(), "2 *", false)
	require.Error(t, err)
	require.Contains(t, buf.String(), `"msg":"interpret failed"`)
}
