package lang

//go:generate go tool stringer --linecomment --type Kind --output kind_string.go

import (
	"log/slog"
	"strconv"
)

// Number is the value of every literal, intermediate and result.
type Number uint8

// MaxNumber is the largest representable [Number].
const MaxNumber = 1<<8 - 1

// Kind identifies the lexical class of a [Token].
type Kind int

const (
	KindNumber   Kind = iota // number
	KindPlus                 // +
	KindMinus                // -
	KindAsterisk             // *
	KindSlash                // /
)

// Token is one lexeme of an expression.
type Token struct {
	Kind  Kind
	Value Number // Literal value, for KindNumber only
	Pos   int    // Byte offset in the line
	Width int    // Byte length of the lexeme
}

// End returns the byte offset just past the token.
func (t Token) End() int { return t.Pos + t.Width }

func (t Token) String() string {
	if t.Kind == KindNumber {
		return strconv.Itoa(int(t.Value))
	}

	return t.Kind.String()
}

// operators maps operator bytes to their kind. The zero Kind (KindNumber)
// marks every other byte.
var operators = [256]Kind{
	'+': KindPlus,
	'-': KindMinus,
	'*': KindAsterisk,
	'/': KindSlash,
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

// Tokenize splits line into tokens.
//
// The scan is byte-oriented ASCII: runs of digits become one [KindNumber]
// token, each of "+-*/" becomes one operator token, and spaces (0x20 only)
// separate tokens. Any other byte is [ErrUnexpectedCharacter]. A literal
// above [MaxNumber] is [ErrNumberTooLarge]. A line without tokens is
// [ErrEmptyInput].
func Tokenize(line string) ([]Token, error) {
	tokens := make([]Token, 0, len(line)/2+1)

	for i := 0; i < len(line); {
		c := line[i]

		switch {
		case c == ' ':
			i++

		case isDigit(c):
			start, v := i, 0
			for ; i < len(line) && isDigit(line[i]); i++ {
				// Stop accumulating once out of range so long runs cannot
				// overflow int.
				if v <= MaxNumber {
					v = v*10 + int(line[i]-'0')
				}
			}

			if v > MaxNumber {
				return nil, ErrNumberTooLarge.WithPosition(start).
					With(slog.String("literal", line[start:i]))
			}

			tokens = append(tokens, Token{
				Kind:  KindNumber,
				Value: Number(v),
				Pos:   start,
				Width: i - start,
			})

		case operators[c] != KindNumber:
			tokens = append(tokens, Token{Kind: operators[c], Pos: i, Width: 1})
			i++

		default:
			return nil, ErrUnexpectedCharacter.WithPosition(i).
				With(slog.String("char", line[i:i+1]))
		}
	}

	if len(tokens) == 0 {
		return nil, ErrEmptyInput
	}

	return tokens, nil
}
