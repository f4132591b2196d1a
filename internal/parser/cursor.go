package parser

import "github.com/stladder/stladder/internal/lexer"

// TokenCursor is a cursor over a pre-tokenised token stream. Advance moves
// it forward in place; backtracking (Mark/ResetTo) saves and restores the
// current token index.
type TokenCursor struct {
	tokens []lexer.Token
	pos    int
}

// NewTokenCursor builds a cursor over the full token stream, including
// the trailing EOF token.
func NewTokenCursor(tokens []lexer.Token) *TokenCursor {
	return &TokenCursor{tokens: tokens}
}

// Current returns the token at the cursor.
func (c *TokenCursor) Current() lexer.Token {
	return c.tokens[c.pos]
}

// Peek returns the token n positions ahead of the cursor (Peek(0) == Current()).
func (c *TokenCursor) Peek(n int) lexer.Token {
	i := c.pos + n
	if i >= len(c.tokens) {
		return c.tokens[len(c.tokens)-1]
	}
	return c.tokens[i]
}

// Advance moves the cursor forward one token and returns the token it was on.
func (c *TokenCursor) Advance() lexer.Token {
	tok := c.Current()
	if !c.IsEOF() {
		c.pos++
	}
	return tok
}

// Is reports whether the current token has type tt.
func (c *TokenCursor) Is(tt lexer.TokenType) bool { return c.Current().Type == tt }

// IsAny reports whether the current token's type is one of types.
func (c *TokenCursor) IsAny(types ...lexer.TokenType) bool {
	cur := c.Current().Type
	for _, tt := range types {
		if cur == tt {
			return true
		}
	}
	return false
}

// PeekIs reports whether the token n ahead has type tt.
func (c *TokenCursor) PeekIs(n int, tt lexer.TokenType) bool { return c.Peek(n).Type == tt }

// IsEOF reports whether the cursor is at the end of the stream.
func (c *TokenCursor) IsEOF() bool { return c.Current().Type == lexer.EOF }

// Mark returns an opaque position usable with ResetTo.
func (c *TokenCursor) Mark() int { return c.pos }

// ResetTo rewinds the cursor to a position previously returned by Mark.
func (c *TokenCursor) ResetTo(mark int) { c.pos = mark }

// Position returns the source position of the current token.
func (c *TokenCursor) Position() lexer.Position { return c.Current().Pos }
