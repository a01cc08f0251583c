package jit

import (
	"encoding/binary"
	"strconv"
)

// Reg is one of the eight legacy x86-64 general-purpose registers. The
// encoders below never emit REX.B/REX.R, so r8-r15 are not representable.
type Reg byte

const (
	RAX Reg = iota
	RCX
	RDX
	RBX
	RSP
	RBP
	RSI
	RDI
)

var regNames = [...]string{"rax", "rcx", "rdx", "rbx", "rsp", "rbp", "rsi", "rdi"}

func (r Reg) String() string { return regNames[r&7] }

// 32-bit names, for instructions that zero-extend into the full register.
var reg32Names = [...]string{"eax", "ecx", "edx", "ebx", "esp", "ebp", "esi", "edi"}

const rexW = 0x48

// modrm encodes a register-direct ModRM byte.
func modrm(reg, rm Reg) byte { return 0xC0 | byte(reg&7)<<3 | byte(rm&7) }

func imm32(v int32) []byte {
	return binary.LittleEndian.AppendUint32(nil, uint32(v))
}

func (a *Assembler) Push(r Reg) { a.Emit("push "+r.String(), 0x50+byte(r)) }

func (a *Assembler) Pop(r Reg) { a.Emit("pop "+r.String(), 0x58+byte(r)) }

// PushImm32 pushes v sign-extended to 64 bits.
func (a *Assembler) PushImm32(v int32) {
	a.Emit("push "+strconv.Itoa(int(v)), append([]byte{0x68}, imm32(v)...)...)
}

// Mov copies src into dst.
func (a *Assembler) Mov(dst, src Reg) {
	a.Emit("mov "+dst.String()+", "+src.String(), rexW, 0x89, modrm(src, dst))
}

// MovImm32 loads v sign-extended to 64 bits into dst.
func (a *Assembler) MovImm32(dst Reg, v int32) {
	a.Emit("mov "+dst.String()+", "+strconv.Itoa(int(v)),
		append([]byte{rexW, 0xC7, modrm(0, dst)}, imm32(v)...)...)
}

// MovImm32Zext loads v into the low half of dst, zeroing the upper half.
func (a *Assembler) MovImm32Zext(dst Reg, v uint32) {
	a.Emit("mov "+reg32Names[dst&7]+", "+strconv.FormatUint(uint64(v), 10),
		append([]byte{0xB8 + byte(dst&7)}, imm32(int32(v))...)...) //nolint:gosec // bit pattern
}

func (a *Assembler) Add(dst, src Reg) {
	a.Emit("add "+dst.String()+", "+src.String(), rexW, 0x01, modrm(src, dst))
}

func (a *Assembler) Sub(dst, src Reg) {
	a.Emit("sub "+dst.String()+", "+src.String(), rexW, 0x29, modrm(src, dst))
}

// Imul sets dst to the low 64 bits of dst*src.
func (a *Assembler) Imul(dst, src Reg) {
	a.Emit("imul "+dst.String()+", "+src.String(), rexW, 0x0F, 0xAF, modrm(dst, src))
}

// Cqo sign-extends rax into rdx:rax.
func (a *Assembler) Cqo() { a.Emit("cqo", rexW, 0x99) }

// Idiv divides rdx:rax by src, leaving the quotient in rax.
func (a *Assembler) Idiv(src Reg) {
	a.Emit("idiv "+src.String(), rexW, 0xF7, modrm(7, src))
}

func (a *Assembler) Test(x, y Reg) {
	a.Emit("test "+x.String()+", "+y.String(), rexW, 0x85, modrm(y, x))
}

// Xor32 clears or toggles the low half of dst, zeroing the upper half.
func (a *Assembler) Xor32(dst, src Reg) {
	a.Emit("xor "+reg32Names[dst&7]+", "+reg32Names[src&7], 0x31, modrm(src, dst))
}

// CmpRAX compares rax with v sign-extended to 64 bits.
func (a *Assembler) CmpRAX(v int32) {
	a.Emit("cmp rax, "+strconv.Itoa(int(v)), append([]byte{rexW, 0x3D}, imm32(v)...)...)
}

// MovzxRAX8 zero-extends al into rax.
func (a *Assembler) MovzxRAX8() { a.Emit("movzx eax, al", 0x0F, 0xB6, 0xC0) }

// Cmovg copies src into dst if the last comparison was signed greater.
func (a *Assembler) Cmovg(dst, src Reg) {
	a.Emit("cmovg "+dst.String()+", "+src.String(), rexW, 0x0F, 0x4F, modrm(dst, src))
}

// Cmovl copies src into dst if the last comparison was signed less.
func (a *Assembler) Cmovl(dst, src Reg) {
	a.Emit("cmovl "+dst.String()+", "+src.String(), rexW, 0x0F, 0x4C, modrm(dst, src))
}

// Ja jumps to l if the last comparison was unsigned above.
func (a *Assembler) Ja(l Label) { a.jump("ja", l, 0x0F, 0x87) }

// Jz jumps to l if the zero flag is set.
func (a *Assembler) Jz(l Label) { a.jump("jz", l, 0x0F, 0x84) }

func (a *Assembler) Jmp(l Label) { a.jump("jmp", l, 0xE9) }

func (a *Assembler) Ret() { a.Emit("ret", 0xC3) }
