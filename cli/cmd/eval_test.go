package cmd

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/ardnew/jitcalc/jit"
	"github.com/ardnew/jitcalc/lang"
)

func TestEval_Args(t *testing.T) {
	out, errOut, err := run(t,
		&Eval{Expr: []string{"2 + 3 * 4", "  ", "255 / 5"}},
		treeEngine(lang.PolicyChecked), "")
	if err != nil {
		t.Fatalf("Eval.Run() error = %v", err)
	}

	if out != "14\n51\n" {
		t.Errorf("output = %q, want %q", out, "14\n51\n")
	}

	if errOut != "" {
		t.Errorf("stderr = %q, want none", errOut)
	}
}

func TestEval_UnquotedArgs(t *testing.T) {
	out, _, err := run(t,
		&Eval{Expr: []string{"2", "+", "3", "*", "4"}},
		treeEngine(lang.PolicyChecked), "")
	if err != nil {
		t.Fatalf("Eval.Run() error = %v", err)
	}

	if out != "14\n" {
		t.Errorf("output = %q, want %q", out, "14\n")
	}
}

func TestExpressions(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"empty", nil, nil},
		{"single", []string{"1 +"}, []string{"1 +"}},
		{"separate", []string{"1 + 2", "3"}, []string{"1 + 2", "3"}},
		{"blank_is_not_a_fragment", []string{"1", " ", "2"}, []string{"1", " ", "2"}},
		{"fragments", []string{"2", "+", "3"}, []string{"2 + 3"}},
		{"mixed_fragments", []string{"2 +", "3 * 4"}, []string{"2 + 3 * 4"}},
		{"join_fails", []string{"1 + 1", "12 + 3 $ 4", "5"}, []string{"1 + 1", "12 + 3 $ 4", "5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := expressions(tt.args); !slices.Equal(got, tt.want) {
				t.Errorf("expressions(%q) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}

func TestEval_Stdin(t *testing.T) {
	out, _, err := run(t, &Eval{},
		treeEngine(lang.PolicyWrap), "200 + 100\n\n0 - 1\n")
	if err != nil {
		t.Fatalf("Eval.Run() error = %v", err)
	}

	if out != "44\n255\n" {
		t.Errorf("output = %q, want %q", out, "44\n255\n")
	}
}

func TestEval_FirstFailure(t *testing.T) {
	out, errOut, err := run(t,
		&Eval{Expr: []string{"1 + 1", "12 + 3 $ 4", "5"}},
		treeEngine(lang.PolicyChecked), "")

	if !errors.Is(err, ErrEvaluate) || !errors.Is(err, lang.ErrUnexpectedCharacter) {
		t.Fatalf("Eval.Run() error = %v, want %v", err, lang.ErrUnexpectedCharacter)
	}

	if out != "2\n" {
		t.Errorf("output = %q, want %q", out, "2\n")
	}

	want := "unexpected character (char=\"$\")\n  | 12 + 3 $ 4\n  |        ^\n"
	if errOut != want {
		t.Errorf("stderr = %q, want %q", errOut, want)
	}
}

func TestEval_ArithmeticError(t *testing.T) {
	tests := []struct {
		expr    string
		wantErr error
		wantOut string
	}{
		{"9 / (0)", lang.ErrUnexpectedCharacter, "^"},
		{"9 / 0", lang.ErrDivisionByZero, "division by zero"},
	}

	for _, tt := range tests {
		_, errOut, err := run(t, &Eval{Expr: []string{tt.expr}},
			treeEngine(lang.PolicyChecked), "")

		if !errors.Is(err, tt.wantErr) {
			t.Errorf("%q: error = %v, want %v", tt.expr, err, tt.wantErr)
		}

		if !strings.Contains(errOut, tt.wantOut) {
			t.Errorf("%q: stderr = %q, missing %q", tt.expr, errOut, tt.wantOut)
		}
	}
}

func TestEval_JIT(t *testing.T) {
	if !jit.Supported {
		t.Skip("native execution not supported on this platform")
	}

	eng := treeEngine(lang.PolicySaturate)
	eng.JIT = true

	out, _, err := run(t, &Eval{Expr: []string{"250 + 10", "3 - 9", "7 * 6"}}, eng, "")
	if err != nil {
		t.Fatalf("Eval.Run() error = %v", err)
	}

	if out != "255\n0\n42\n" {
		t.Errorf("output = %q, want %q", out, "255\n0\n42\n")
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestEval_ReadError(t *testing.T) {
	ctx := WithStreams(WithEngine(t.Context(), treeEngine(lang.PolicyChecked)),
		Streams{In: failingReader{}})

	if err := (&Eval{}).Run(ctx); !errors.Is(err, ErrReadInput) {
		t.Errorf("Eval.Run() error = %v, want %v", err, ErrReadInput)
	}
}
