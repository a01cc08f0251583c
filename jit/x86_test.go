package jit

import (
	"bytes"
	"testing"
)

func TestEncoding(t *testing.T) {
	tests := []struct {
		text string
		emit func(*Assembler)
		want []byte
	}{
		{"push rbp", func(a *Assembler) { a.Push(RBP) }, []byte{0x55}},
		{"push rax", func(a *Assembler) { a.Push(RAX) }, []byte{0x50}},
		{"pop rax", func(a *Assembler) { a.Pop(RAX) }, []byte{0x58}},
		{"pop rcx", func(a *Assembler) { a.Pop(RCX) }, []byte{0x59}},
		{"pop rbp", func(a *Assembler) { a.Pop(RBP) }, []byte{0x5D}},
		{"push 200", func(a *Assembler) { a.PushImm32(200) }, []byte{0x68, 0xC8, 0, 0, 0}},
		{"mov rbp, rsp", func(a *Assembler) { a.Mov(RBP, RSP) }, []byte{0x48, 0x89, 0xE5}},
		{"mov rsp, rbp", func(a *Assembler) { a.Mov(RSP, RBP) }, []byte{0x48, 0x89, 0xEC}},
		{"mov rax, -1", func(a *Assembler) { a.MovImm32(RAX, -1) }, []byte{0x48, 0xC7, 0xC0, 0xFF, 0xFF, 0xFF, 0xFF}},
		{"mov rax, -2", func(a *Assembler) { a.MovImm32(RAX, -2) }, []byte{0x48, 0xC7, 0xC0, 0xFE, 0xFF, 0xFF, 0xFF}},
		{"mov ecx, 255", func(a *Assembler) { a.MovImm32Zext(RCX, 255) }, []byte{0xB9, 0xFF, 0, 0, 0}},
		{"add rax, rcx", func(a *Assembler) { a.Add(RAX, RCX) }, []byte{0x48, 0x01, 0xC8}},
		{"sub rax, rcx", func(a *Assembler) { a.Sub(RAX, RCX) }, []byte{0x48, 0x29, 0xC8}},
		{"imul rax, rcx", func(a *Assembler) { a.Imul(RAX, RCX) }, []byte{0x48, 0x0F, 0xAF, 0xC1}},
		{"cqo", func(a *Assembler) { a.Cqo() }, []byte{0x48, 0x99}},
		{"idiv rcx", func(a *Assembler) { a.Idiv(RCX) }, []byte{0x48, 0xF7, 0xF9}},
		{"test rcx, rcx", func(a *Assembler) { a.Test(RCX, RCX) }, []byte{0x48, 0x85, 0xC9}},
		{"test rax, rax", func(a *Assembler) { a.Test(RAX, RAX) }, []byte{0x48, 0x85, 0xC0}},
		{"xor ecx, ecx", func(a *Assembler) { a.Xor32(RCX, RCX) }, []byte{0x31, 0xC9}},
		{"cmp rax, 255", func(a *Assembler) { a.CmpRAX(255) }, []byte{0x48, 0x3D, 0xFF, 0, 0, 0}},
		{"movzx eax, al", func(a *Assembler) { a.MovzxRAX8() }, []byte{0x0F, 0xB6, 0xC0}},
		{"cmovg rax, rcx", func(a *Assembler) { a.Cmovg(RAX, RCX) }, []byte{0x48, 0x0F, 0x4F, 0xC1}},
		{"cmovl rax, rcx", func(a *Assembler) { a.Cmovl(RAX, RCX) }, []byte{0x48, 0x0F, 0x4C, 0xC1}},
		{"ret", func(a *Assembler) { a.Ret() }, []byte{0xC3}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			a := NewAssembler()
			tt.emit(a)

			code, listing, err := a.Finish()
			if err != nil {
				t.Fatal(err)
			}

			if !bytes.Equal(code, tt.want) {
				t.Errorf("code = % x, want % x", code, tt.want)
			}

			if len(listing) != 1 || listing[0].Text != tt.text {
				t.Errorf("listing = %+v, want %q", listing, tt.text)
			}
		})
	}
}

func TestJumpFixups(t *testing.T) {
	a := NewAssembler()

	back := a.NewLabel("back")
	fwd := a.NewLabel("fwd")

	a.Bind(back) // 0
	a.Jz(fwd)    // 0..5
	a.Ja(back)   // 6..11
	a.Jmp(fwd)   // 12..16
	a.Bind(fwd)  // 17
	a.Ret()

	code, listing, err := a.Finish()
	if err != nil {
		t.Fatal(err)
	}

	// Displacements are relative to the end of each jump: +11, -12, +0.
	want := []byte{
		0x0F, 0x84, 0x0B, 0x00, 0x00, 0x00,
		0x0F, 0x87, 0xF4, 0xFF, 0xFF, 0xFF,
		0xE9, 0x00, 0x00, 0x00, 0x00,
		0xC3,
	}

	if !bytes.Equal(code, want) {
		t.Errorf("code\n got: % x\nwant: % x", code, want)
	}

	texts := make([]string, len(listing))
	for i, ins := range listing {
		texts[i] = ins.Text
	}

	wantTexts := []string{"back:", "jz fwd", "ja back", "jmp fwd", "fwd:", "ret"}
	for i := range wantTexts {
		if i >= len(texts) || texts[i] != wantTexts[i] {
			t.Fatalf("listing = %q, want %q", texts, wantTexts)
		}
	}

	if !listing[0].IsLabel() || listing[4].Offset != 17 {
		t.Errorf("label entries wrong: %+v", listing)
	}

	// Listing bytes reflect the patched displacement.
	if !bytes.Equal(listing[1].Bytes, want[0:6]) {
		t.Errorf("listing bytes = % x", listing[1].Bytes)
	}
}

func TestUnboundLabel(t *testing.T) {
	a := NewAssembler()
	a.Jmp(a.NewLabel("nowhere"))

	if _, _, err := a.Finish(); err == nil {
		t.Fatal("expected error for unbound label")
	}
}
