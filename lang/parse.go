package lang

import "log/slog"

// ParseString tokenizes and parses one line.
func ParseString(line string) (*Node, error) {
	tokens, err := Tokenize(line)
	if err != nil {
		return nil, err
	}

	return Parse(tokens)
}

// Parse builds the expression tree for tokens.
//
// The grammar, with both operator levels folding to the left:
//
//	expression → term (('+' | '-') term)*
//	term       → factor (('*' | '/') factor)*
//	factor     → Number
//
// Tokens left over after a complete expression are
// [ErrUnexpectedTrailingTokens]. An empty sequence is [ErrEmptyInput].
func Parse(tokens []Token) (*Node, error) {
	if len(tokens) == 0 {
		return nil, ErrEmptyInput
	}

	cur := NewCursor(tokens)

	root, err := expression(cur)
	if err != nil {
		return nil, err
	}

	if tok, ok := cur.Peek(); ok {
		return nil, ErrUnexpectedTrailingTokens.WithPosition(tok.Pos).
			With(slog.String("token", tok.String()),
				slog.Int("remaining", cur.Remaining()))
	}

	return root, nil
}

// expression parses: term (('+' | '-') term)*.
func expression(cur *Cursor) (*Node, error) {
	return fold(cur, term, KindPlus, KindMinus)
}

// term parses: factor (('*' | '/') factor)*.
func term(cur *Cursor) (*Node, error) {
	return fold(cur, factor, KindAsterisk, KindSlash)
}

// fold parses operand (op operand)* for the two operator kinds of one
// precedence level, building a left-leaning tree.
func fold(
	cur *Cursor,
	operand func(*Cursor) (*Node, error),
	a, b Kind,
) (*Node, error) {
	left, err := operand(cur)
	if err != nil {
		return nil, err
	}

	for {
		tok, ok := cur.Peek()
		if !ok || (tok.Kind != a && tok.Kind != b) {
			return left, nil
		}

		cur.Next()

		right, err := operand(cur)
		if err != nil {
			return nil, err
		}

		op, _ := opOf(tok.Kind)
		left = NewBinary(op, left, right, tok.Pos)
	}
}

// factor parses: Number.
func factor(cur *Cursor) (*Node, error) {
	pos := cur.Offset()

	tok, ok := cur.Next()
	if !ok {
		return nil, ErrExpectedNumber.WithPosition(pos).
			With(slog.String("found", "end of input"))
	}

	if tok.Kind != KindNumber {
		return nil, ErrExpectedNumber.WithPosition(tok.Pos).
			With(slog.String("found", tok.String()))
	}

	return NewLiteral(tok.Value, tok.Pos), nil
}
