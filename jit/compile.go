package jit

import (
	"log/slog"

	"github.com/ardnew/jitcalc/lang"
)

// Values returned by the trap stubs. Neither is a valid [lang.Number].
const (
	trapOverflow       = -1
	trapDivisionByZero = -2
)

// Compile translates the tree rooted at root into x86-64 machine code.
//
// The generated function takes no arguments and returns its result in rax.
// It evaluates the tree on the native stack:
//
//	push rbp; mov rbp, rsp      prologue
//	push imm32                  each literal
//	<right> <left>              each operator, operands first
//	pop rax; pop rcx
//	add | sub | imul | div      div is guarded by test rcx, rcx; jz
//	<normalize>                 per policy, skipped for div
//	push rax
//	pop rax; mov rsp, rbp; pop rbp; ret
//
// Code that does not fit the configured capacity is [ErrCodeBufferOverflow].
func Compile(root *lang.Node, opts ...Option) (*Program, error) {
	cfg := makeConfig(opts...)

	if err := lang.Validate(root); err != nil {
		return nil, err
	}

	g := &codegen{
		asm:    NewAssembler(),
		policy: cfg.policy,
		traps:  make(map[int32]Label, 2),
	}

	g.function(root)

	code, listing, err := g.asm.Finish()
	if err != nil {
		return nil, err
	}

	cfg.logger.Trace("compiled",
		slog.Int("nodes", root.Count()),
		slog.Int("instructions", len(listing)),
		slog.Int("bytes", len(code)),
		slog.String("policy", cfg.policy.String()))

	if len(code) > cfg.capacity {
		return nil, ErrCodeBufferOverflow.With(
			slog.Int("size", len(code)),
			slog.Int("capacity", cfg.capacity))
	}

	return &Program{
		code:    code,
		listing: listing,
		config:  cfg,
	}, nil
}

type codegen struct {
	asm    *Assembler
	traps  map[int32]Label
	policy lang.Policy
}

func (g *codegen) function(root *lang.Node) {
	a := g.asm

	a.Push(RBP)
	a.Mov(RBP, RSP)

	g.node(root)

	a.Pop(RAX)
	g.epilogue()

	// Stubs are emitted in a fixed order so output is deterministic.
	for _, code := range []int32{trapOverflow, trapDivisionByZero} {
		if l, ok := g.traps[code]; ok {
			a.Bind(l)
			a.MovImm32(RAX, code)
			g.epilogue()
		}
	}
}

func (g *codegen) epilogue() {
	g.asm.Mov(RSP, RBP)
	g.asm.Pop(RBP)
	g.asm.Ret()
}

// trap returns the label of the stub returning code, allocating it on first
// use.
func (g *codegen) trap(code int32) Label {
	if l, ok := g.traps[code]; ok {
		return l
	}

	name := "overflow"
	if code == trapDivisionByZero {
		name = "divzero"
	}

	l := g.asm.NewLabel(name)
	g.traps[code] = l

	return l
}

func (g *codegen) node(n *lang.Node) {
	a := g.asm

	if n.Kind == lang.NodeLiteral {
		a.PushImm32(int32(n.Value))

		return
	}

	g.node(n.Right)
	g.node(n.Left)

	a.Pop(RAX)
	a.Pop(RCX)

	switch n.Op {
	case lang.OpAdd:
		a.Add(RAX, RCX)

	case lang.OpSub:
		a.Sub(RAX, RCX)

	case lang.OpMul:
		a.Imul(RAX, RCX)

	case lang.OpDiv:
		a.Test(RCX, RCX)
		a.Jz(g.trap(trapDivisionByZero))
		a.Cqo()
		a.Idiv(RCX)
	}

	if n.Op != lang.OpDiv {
		g.normalize()
	}

	a.Push(RAX)
}

// normalize brings rax back into 0..255 according to the policy.
func (g *codegen) normalize() {
	a := g.asm

	switch g.policy {
	case lang.PolicyWrap:
		a.MovzxRAX8()

	case lang.PolicySaturate:
		a.CmpRAX(lang.MaxNumber)
		a.MovImm32Zext(RCX, lang.MaxNumber)
		a.Cmovg(RAX, RCX)
		a.Xor32(RCX, RCX)
		a.Test(RAX, RAX)
		a.Cmovl(RAX, RCX)

	default:
		// Unsigned compare also catches negative results.
		a.CmpRAX(lang.MaxNumber)
		a.Ja(g.trap(trapOverflow))
	}
}
