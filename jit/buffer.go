package jit

import (
	"log/slog"
	"unsafe"
)

type phase int

const (
	phaseWritable phase = iota
	phaseSealed
	phaseReleased
)

func (p phase) String() string {
	switch p {
	case phaseWritable:
		return "writable"
	case phaseSealed:
		return "sealed"
	default:
		return "released"
	}
}

// Buffer is a page-aligned anonymous memory mapping holding machine code.
//
// A Buffer moves through three phases, in order:
//
//   - writable: mapped read+write; [Buffer.Append] copies code in.
//   - sealed: [Buffer.Seal] changed protection to read+execute;
//     [Buffer.Call] may invoke the code.
//   - released: [Buffer.Release] unmapped the memory.
//
// The mapping is never writable and executable at the same time. Calling a
// method in the wrong phase is [ErrBufferState]. A Buffer is not safe for
// concurrent use.
type Buffer struct {
	mem      []byte
	size     int
	capacity int
	phase    phase
}

// NewBuffer maps a writable buffer able to hold capacity bytes of code. The
// mapping is rounded up to a whole number of pages.
func NewBuffer(capacity int) (*Buffer, error) {
	if capacity <= 0 {
		return nil, ErrMemoryAllocation.With(slog.Int("capacity", capacity))
	}

	page := pageSize()
	mapped := (capacity + page - 1) / page * page

	mem, err := mapWritable(mapped)
	if err != nil {
		return nil, ErrMemoryAllocation.Wrap(err).With(slog.Int("size", mapped))
	}

	return &Buffer{mem: mem, capacity: capacity}, nil
}

func (b *Buffer) state(want phase, op string) error {
	if b.phase != want {
		return ErrBufferState.With(
			slog.String("op", op),
			slog.String("phase", b.phase.String()))
	}

	return nil
}

// Len returns the number of code bytes written.
func (b *Buffer) Len() int { return b.size }

// Cap returns the number of code bytes the buffer accepts.
func (b *Buffer) Cap() int { return b.capacity }

// Mapped returns the size of the underlying mapping, zero once released.
func (b *Buffer) Mapped() int { return len(b.mem) }

// Append copies code to the end of the buffer.
func (b *Buffer) Append(code []byte) error {
	if err := b.state(phaseWritable, "append"); err != nil {
		return err
	}

	if b.size+len(code) > b.capacity {
		return ErrCodeBufferOverflow.With(
			slog.Int("size", b.size+len(code)),
			slog.Int("capacity", b.capacity))
	}

	b.size += copy(b.mem[b.size:], code)

	return nil
}

// Seal makes the buffer read+execute. No further writes are possible.
func (b *Buffer) Seal() error {
	if err := b.state(phaseWritable, "seal"); err != nil {
		return err
	}

	if err := protectExecutable(b.mem); err != nil {
		return ErrMemoryProtection.Wrap(err)
	}

	b.phase = phaseSealed

	return nil
}

// Call invokes the code at the start of the buffer as a function with no
// arguments and returns rax.
func (b *Buffer) Call() (uintptr, error) {
	if err := b.state(phaseSealed, "call"); err != nil {
		return 0, err
	}

	if b.size == 0 {
		return 0, ErrBufferState.With(slog.String("op", "call"),
			slog.String("reason", "empty"))
	}

	return call(uintptr(unsafe.Pointer(&b.mem[0])))
}

// Release unmaps the buffer. Releasing an already released buffer does
// nothing.
func (b *Buffer) Release() error {
	if b.phase == phaseReleased {
		return nil
	}

	mem := b.mem
	b.mem, b.phase = nil, phaseReleased

	if err := unmap(mem); err != nil {
		return ErrMemoryAllocation.Wrap(err).With(slog.String("op", "munmap"))
	}

	return nil
}
