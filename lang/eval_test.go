package lang

import (
	"errors"
	"fmt"
	"testing"
)

func TestEval(t *testing.T) {
	tests := []struct {
		input string
		want  Number
	}{
		{"0", 0},
		{"255", 255},
		{"1+1", 2},
		{" 1 + 1 ", 2},
		{"2 + 3 * 4", 14},
		{"8 - 3 - 2", 3},
		{"8 / 4 / 2", 1},
		{"7 / 2", 3},
		{"3 - 3", 0},
		{"15 * 17", 255},
		{"100 / 3 * 3", 99},
		{"0 / 5", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			root, err := ParseString(tt.input)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			got, err := Eval(root, DefaultPolicy)
			if err != nil {
				t.Fatalf("Eval(%q) error: %v", tt.input, err)
			}

			if got != tt.want {
				t.Errorf("Eval(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestEval_EveryLiteral(t *testing.T) {
	for n := range MaxNumber + 1 {
		root, err := ParseString(fmt.Sprint(n))
		if err != nil {
			t.Fatalf("parse %d: %v", n, err)
		}

		if got, err := Eval(root, DefaultPolicy); err != nil || int(got) != n {
			t.Fatalf("Eval(%d) = %d, %v", n, got, err)
		}
	}
}

func TestEval_Policies(t *testing.T) {
	tests := []struct {
		input string
		want  map[Policy]Number // missing policy means ErrOverflow
	}{
		{"200 + 100", map[Policy]Number{PolicyWrap: 44, PolicySaturate: 255}},
		{"1 - 2", map[Policy]Number{PolicyWrap: 255, PolicySaturate: 0}},
		{"16 * 16", map[Policy]Number{PolicyWrap: 0, PolicySaturate: 255}},
		{"0 - 255", map[Policy]Number{PolicyWrap: 1, PolicySaturate: 0}},
		{"250 + 10 - 20", map[Policy]Number{PolicyWrap: 240, PolicySaturate: 235}},
		{"255 + 0", map[Policy]Number{PolicyChecked: 255, PolicyWrap: 255, PolicySaturate: 255}},
	}

	for _, tt := range tests {
		for _, policy := range []Policy{PolicyChecked, PolicyWrap, PolicySaturate} {
			t.Run(tt.input+"/"+policy.String(), func(t *testing.T) {
				root, err := ParseString(tt.input)
				if err != nil {
					t.Fatal(err)
				}

				got, err := Eval(root, policy)

				want, ok := tt.want[policy]
				if !ok {
					if !errors.Is(err, ErrOverflow) {
						t.Errorf("Eval = %d, %v; want %v", got, err, ErrOverflow)
					}

					return
				}

				if err != nil || got != want {
					t.Errorf("Eval = %d, %v; want %d", got, err, want)
				}
			})
		}
	}
}

func TestEval_DivisionByZero(t *testing.T) {
	for _, policy := range []Policy{PolicyChecked, PolicyWrap, PolicySaturate} {
		for _, input := range []string{"1 / 0", "0 / 0", "7 / 0 + 1", "9 / 3 / 0"} {
			t.Run(input+"/"+policy.String(), func(t *testing.T) {
				root, err := ParseString(input)
				if err != nil {
					t.Fatal(err)
				}

				_, err = Eval(root, policy)
				if !errors.Is(err, ErrDivisionByZero) || !errors.Is(err, ErrArithmetic) {
					t.Errorf("Eval = %v, want %v", err, ErrDivisionByZero)
				}
			})
		}
	}
}

func TestEval_RightOperandFirst(t *testing.T) {
	// The left operand overflows and the right divides by zero. Evaluating
	// right first reports the division.
	root, err := ParseString("200 * 2 + 1 / 0")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Eval(root, PolicyChecked); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("Eval = %v, want %v", err, ErrDivisionByZero)
	}
}

func TestEval_ErrorPosition(t *testing.T) {
	root, err := ParseString("1 + 9 / 0")
	if err != nil {
		t.Fatal(err)
	}

	_, err = Eval(root, DefaultPolicy)

	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *Error, got %T", err)
	}

	if pos, ok := e.Position(); !ok || pos != 6 {
		t.Errorf("position = %d, want 6", pos)
	}
}

func TestEval_Malformed(t *testing.T) {
	tests := []struct {
		name string
		root *Node
	}{
		{"nil", nil},
		{"missing child", NewBinary(OpAdd, NewLiteral(1, 0), nil, 1)},
		{"bad kind", &Node{Kind: NodeKind(9)}},
		{"bad op", NewBinary(Op(9), NewLiteral(1, 0), NewLiteral(2, 2), 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Eval(tt.root, DefaultPolicy); !errors.Is(err, ErrMalformedTree) {
				t.Errorf("Eval = %v, want %v", err, ErrMalformedTree)
			}

			if err := Validate(tt.root); !errors.Is(err, ErrMalformedTree) {
				t.Errorf("Validate = %v, want %v", err, ErrMalformedTree)
			}
		})
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		input string
		want  Policy
		ok    bool
	}{
		{"checked", PolicyChecked, true},
		{"WRAP", PolicyWrap, true},
		{" saturate ", PolicySaturate, true},
		{"clamp", DefaultPolicy, false},
	}

	for _, tt := range tests {
		got, ok := ParsePolicy(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParsePolicy(%q) = %v, %v; want %v, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestPolicy_Narrow(t *testing.T) {
	tests := []struct {
		v    int
		wrap Number
		sat  Number
	}{
		{-1, 255, 0},
		{-256, 0, 0},
		{256, 0, 255},
		{300, 44, 255},
		{65025, 1, 255},
	}

	for _, tt := range tests {
		if got, _ := PolicyWrap.Narrow(tt.v); got != tt.wrap {
			t.Errorf("wrap(%d) = %d, want %d", tt.v, got, tt.wrap)
		}

		if got, _ := PolicySaturate.Narrow(tt.v); got != tt.sat {
			t.Errorf("saturate(%d) = %d, want %d", tt.v, got, tt.sat)
		}

		if _, err := PolicyChecked.Narrow(tt.v); !errors.Is(err, ErrOverflow) {
			t.Errorf("checked(%d) = %v, want %v", tt.v, err, ErrOverflow)
		}
	}
}
