package jit

import (
	"encoding/binary"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"strings"
)

// Label names a code offset that jumps may target before it is known.
type Label int

// Instruction is one entry of an assembly listing.
// A label definition has no Bytes and its Text ends with ':'.
type Instruction struct {
	Text   string
	Bytes  []byte
	Offset int
}

// IsLabel reports whether the entry marks a label rather than code.
func (i Instruction) IsLabel() bool { return len(i.Bytes) == 0 }

// fixup is a rel32 placeholder at offset at that must point to label.
type fixup struct {
	at    int
	label Label
}

// Assembler accumulates machine code and its listing.
//
// Jumps are emitted with zero rel32 displacements and patched in [Assembler.Finish]
// once every label has been bound.
type Assembler struct {
	code   []byte
	text   []string
	starts []int // listing entry i covers code[starts[i]:starts[i+1]]
	names  []string
	bound  []int // offset per label, -1 while unbound
	fixups []fixup
}

// NewAssembler returns an empty Assembler.
func NewAssembler() *Assembler {
	return &Assembler{code: make([]byte, 0, DefaultCapacity)}
}

// Len returns the number of bytes emitted so far.
func (a *Assembler) Len() int { return len(a.code) }

// Emit appends one instruction with its mnemonic.
func (a *Assembler) Emit(text string, b ...byte) {
	a.text = append(a.text, text)
	a.starts = append(a.starts, len(a.code))
	a.code = append(a.code, b...)
}

// NewLabel allocates an unbound label.
func (a *Assembler) NewLabel(name string) Label {
	a.names = append(a.names, name)
	a.bound = append(a.bound, -1)

	return Label(len(a.bound) - 1)
}

// Bind sets the label to the current offset. Binding a label twice panics.
func (a *Assembler) Bind(l Label) {
	if a.bound[l] >= 0 {
		panic("jit: label " + a.names[l] + " bound twice")
	}

	a.bound[l] = len(a.code)
	a.Emit(a.names[l] + ":")
}

// jump emits opcode followed by a rel32 displacement to l.
func (a *Assembler) jump(text string, l Label, opcode ...byte) {
	b := append(opcode, 0, 0, 0, 0)
	a.Emit(text+" "+a.names[l], b...)
	a.fixups = append(a.fixups, fixup{at: len(a.code) - 4, label: l})
}

// Finish patches every jump and returns the code and its listing.
// The Assembler must not be used afterwards.
func (a *Assembler) Finish() ([]byte, []Instruction, error) {
	for _, f := range a.fixups {
		target := a.bound[f.label]
		if target < 0 {
			return nil, nil, ErrUnboundLabel.With(slog.String("label", a.names[f.label]))
		}

		// rel32 is relative to the end of the displacement field.
		rel := int32(target - (f.at + 4)) //nolint:gosec // code size is bounded
		binary.LittleEndian.PutUint32(a.code[f.at:], uint32(rel))
	}

	listing := make([]Instruction, len(a.text))
	for i, text := range a.text {
		end := len(a.code)
		if i+1 < len(a.starts) {
			end = a.starts[i+1]
		}

		start := a.starts[i]
		listing[i] = Instruction{
			Text:   text,
			Bytes:  a.code[start:end:end],
			Offset: start,
		}
	}

	return a.code, listing, nil
}

// WriteListing writes one line per instruction: the offset, optionally the
// encoded bytes in hex, and the mnemonic. Labels are written on their own
// line.
func WriteListing(w io.Writer, listing iter.Seq[Instruction], hex bool) error {
	for ins := range listing {
		var err error

		switch {
		case ins.IsLabel():
			_, err = fmt.Fprintf(w, "%04x %s\n", ins.Offset, ins.Text)

		case hex:
			_, err = fmt.Fprintf(w, "%04x   %-22s %s\n", ins.Offset, hexBytes(ins.Bytes), ins.Text)

		default:
			_, err = fmt.Fprintf(w, "%04x   %s\n", ins.Offset, ins.Text)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

func hexBytes(b []byte) string {
	var sb strings.Builder

	for i, c := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}

		fmt.Fprintf(&sb, "%02x", c)
	}

	return sb.String()
}
