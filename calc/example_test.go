package calc_test

import (
	"context"
	"fmt"

	"github.com/ardnew/jitcalc/calc"
	"github.com/ardnew/jitcalc/lang"
)

func Example() {
	v, err := calc.Interpret("2 + 3 * 4", false)
	fmt.Println(v, err)

	_, err = calc.Interpret("7 / 0", false)
	fmt.Println(err)
	// Output:
	// 14 <nil>
	// division by zero
}

func ExampleInterpreter_Interpret() {
	in := calc.New(calc.WithPolicy(lang.PolicySaturate))

	for _, line := range []string{"200 + 100", "3 - 9", "6 * 7"} {
		v, err := in.Interpret(context.Background(), line, false)
		fmt.Println(line, "=", v, err)
	}
	// Output:
	// 200 + 100 = 255 <nil>
	// 3 - 9 = 0 <nil>
	// 6 * 7 = 42 <nil>
}
