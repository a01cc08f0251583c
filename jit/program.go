package jit

import (
	"context"
	"io"
	"iter"
	"log/slog"
	"slices"

	"github.com/ardnew/jitcalc/lang"
)

// Program is compiled machine code ready to be mapped and run.
// It is immutable and safe for concurrent use; each [Program.Run] maps its
// own buffer.
type Program struct {
	code    []byte
	listing []Instruction
	config  config
}

// Size returns the length of the machine code in bytes.
func (p *Program) Size() int { return len(p.code) }

// Code returns a copy of the machine code.
func (p *Program) Code() []byte { return slices.Clone(p.code) }

// Policy returns the arithmetic policy the code was generated for.
func (p *Program) Policy() lang.Policy { return p.config.policy }

// Listing yields the instructions of the program in order.
func (p *Program) Listing() iter.Seq[Instruction] {
	return func(yield func(Instruction) bool) {
		for _, ins := range p.listing {
			if !yield(ins) {
				return
			}
		}
	}
}

// WriteListing writes the program's listing to w. See [WriteListing].
func (p *Program) WriteListing(w io.Writer, hex bool) error {
	return WriteListing(w, p.Listing(), hex)
}

// Run maps the program into a fresh buffer, seals it executable, calls it,
// and unmaps it before returning.
//
// The native call cannot be interrupted; ctx is only checked before mapping.
func (p *Program) Run(ctx context.Context) (lang.Number, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	buf, err := NewBuffer(p.config.capacity)
	if err != nil {
		return 0, err
	}

	defer func() {
		if err := buf.Release(); err != nil {
			p.config.logger.WarnContext(ctx, "release code buffer",
				slog.Any("error", err))
		}
	}()

	if err := buf.Append(p.code); err != nil {
		return 0, err
	}

	if err := buf.Seal(); err != nil {
		return 0, err
	}

	rax, err := buf.Call()
	if err != nil {
		return 0, err
	}

	p.config.logger.TraceContext(ctx, "native call",
		slog.Int64("rax", int64(rax)), //nolint:gosec // rax is signed
		slog.Int("mapped", buf.Mapped()))

	return p.result(int64(rax)) //nolint:gosec // rax is signed
}

// result converts the value left in rax to a Number or an error.
func (p *Program) result(rax int64) (lang.Number, error) {
	switch {
	case rax == trapOverflow:
		return 0, lang.ErrOverflow.With(slog.String("policy", p.config.policy.String()))

	case rax == trapDivisionByZero:
		return 0, lang.ErrDivisionByZero

	case rax < 0 || rax > lang.MaxNumber:
		return 0, ErrCorruptResult.With(slog.Int64("rax", rax))

	default:
		return lang.Number(rax), nil
	}
}

// Run compiles root and runs it once.
func Run(ctx context.Context, root *lang.Node, opts ...Option) (lang.Number, error) {
	prog, err := Compile(root, opts...)
	if err != nil {
		return 0, err
	}

	return prog.Run(ctx)
}
