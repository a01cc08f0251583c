package cmd

import (
	"context"
	"fmt"

	"github.com/ardnew/jitcalc/jit"
	"github.com/ardnew/jitcalc/pkg"
)

// Version prints the program version.
type Version struct {
	Verbose bool `help:"Also print native code support." short:"v"`
}

// Run executes the version command.
func (v *Version) Run(ctx context.Context) error {
	s := streamsFrom(ctx)

	if _, err := fmt.Fprintln(s.Out, pkg.Name, pkg.Version); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	if v.Verbose {
		if _, err := fmt.Fprintln(s.Out, "jit:", jit.Supported); err != nil {
			return ErrWriteOutput.Wrap(err)
		}
	}

	return nil
}
