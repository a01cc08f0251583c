package lang

// Cursor is a forward-only reader over a token sequence.
// It never backtracks; the parser decides everything with one token of
// lookahead.
type Cursor struct {
	tokens []Token
	next   int
}

// NewCursor returns a Cursor positioned before the first token.
func NewCursor(tokens []Token) *Cursor {
	return &Cursor{tokens: tokens}
}

// Peek returns the next token without consuming it.
func (c *Cursor) Peek() (Token, bool) {
	if c.Done() {
		return Token{}, false
	}

	return c.tokens[c.next], true
}

// Next consumes and returns the next token.
func (c *Cursor) Next() (Token, bool) {
	tok, ok := c.Peek()
	if ok {
		c.next++
	}

	return tok, ok
}

// Done reports whether every token has been consumed.
func (c *Cursor) Done() bool { return c.next >= len(c.tokens) }

// Remaining returns the number of unconsumed tokens.
func (c *Cursor) Remaining() int { return len(c.tokens) - c.next }

// Offset returns the byte offset of the next token, or the offset just past
// the last token once all are consumed.
func (c *Cursor) Offset() int {
	if tok, ok := c.Peek(); ok {
		return tok.Pos
	}

	if len(c.tokens) == 0 {
		return 0
	}

	return c.tokens[len(c.tokens)-1].End()
}
