package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Error categories. Every sentinel below belongs to exactly one of these, and
// errors.Is reports true for both the sentinel and its category.
var (
	ErrTokenize   = NewError("tokenize")
	ErrParse      = NewError("parse")
	ErrArithmetic = NewError("arithmetic")
)

// Predefined errors (sentinel values).
var (
	ErrUnexpectedCharacter = ErrTokenize.Sub("unexpected character")
	ErrNumberTooLarge      = ErrTokenize.Sub("number too large")
	// ErrEmptyInput has no message; callers print nothing for it.
	ErrEmptyInput = ErrTokenize.Sub("")

	ErrExpectedNumber           = ErrParse.Sub("expected number")
	ErrUnexpectedTrailingTokens = ErrParse.Sub("unexpected trailing tokens")
	// ErrMalformedTree is reported for hand-built trees the parser would
	// never produce.
	ErrMalformedTree = ErrParse.Sub("malformed syntax tree")

	ErrDivisionByZero = ErrArithmetic.Sub("division by zero")
	ErrOverflow       = ErrArithmetic.Sub("overflow")
)

// NoPos is the position of an error not tied to a source column.
const NoPos = -1

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
//
// Errors are immutable. The refining methods ([Error.With],
// [Error.WithPosition], [Error.Wrap]) return copies that still match the
// sentinel they were derived from.
type Error struct {
	err    error       // Wrapped error (for errors.Unwrap)
	kind   *Error      // Sentinel this error was derived from
	parent *Error      // Category of a sentinel, nil for categories
	msg    string
	attrs  []slog.Attr // Attributes for structured logging
	pos    int         // Byte offset in the source line, or NoPos
}

// NewError creates a new sentinel Error with a message.
func NewError(msg string) *Error {
	e := &Error{msg: msg, pos: NoPos}
	e.kind = e

	return e
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	var ee *Error
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err, pos: NoPos}
}

// Sub creates a new sentinel Error in the category of e.
func (e *Error) Sub(msg string) *Error {
	s := NewError(msg)
	s.parent = e.kind

	return s
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg>: <err>" // base and wrapped error both set
	//   2. "<msg>"        // wrapped error is nil
	//   3. "<err>"        // base error message is empty
	//   4. ""             // no fields are set
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from, or that
// sentinel's category.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.kind == nil {
		return false
	}

	for k := e.kind; k != nil; k = k.parent {
		if k == t.kind {
			return true
		}
	}

	return false
}

// Position returns the byte offset the error refers to.
func (e *Error) Position() (int, bool) {
	return e.pos, e.pos != NoPos
}

// Attrs returns a copy of the attributes attached to e.
func (e *Error) Attrs() []slog.Attr {
	return append([]slog.Attr(nil), e.attrs...)
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+3)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	if e.pos != NoPos {
		attrs = append(attrs, slog.Int("pos", e.pos))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	c := e.clone()
	c.err = err

	return c
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	c := e.clone()
	c.attrs = make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(c.attrs, e.attrs)
	copy(c.attrs[len(e.attrs):], attrs)

	return c
}

// WithPosition records the byte offset in the source line that caused the
// error.
func (e *Error) WithPosition(pos int) *Error {
	c := e.clone()
	c.pos = pos

	return c
}

func (e *Error) clone() *Error {
	return &Error{
		err:    e.err,
		kind:   e.kind,
		parent: e.parent,
		msg:    e.msg,
		attrs:  e.attrs, // Share attrs
		pos:    e.pos,
	}
}

// Format renders the error for display against the line it came from:
//
//	unexpected character (char="&")
//	  | 1 & 2
//	  |   ^
//
// The snippet is omitted when the position is unknown or outside source.
// An error with no message (such as [ErrEmptyInput]) renders as "".
func (e *Error) Format(source string) string {
	msg := e.Error()
	if msg == "" {
		return ""
	}

	var b strings.Builder

	b.WriteString(msg)

	if len(e.attrs) > 0 {
		b.WriteString(" (")

		for i, a := range e.attrs {
			if i > 0 {
				b.WriteByte(' ')
			}

			b.WriteString(a.Key)
			b.WriteByte('=')
			b.WriteString(strconv.Quote(a.Value.Resolve().String()))
		}

		b.WriteByte(')')
	}

	b.WriteByte('\n')

	if e.pos != NoPos && e.pos <= len(source) {
		b.WriteString("  | ")
		b.WriteString(source)
		b.WriteString("\n  | ")
		b.WriteString(strings.Repeat(" ", e.pos))
		b.WriteString("^\n")
	}

	return b.String()
}
