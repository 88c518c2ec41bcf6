// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsontree

import (
	"unicode/utf8"

	"github.com/creachadair/jsontree/internal/buffer"
)

// A TokenStream is the sequence of tokens produced by [Lex], together with
// the source text they refer to and a read cursor. The tokens are immutable;
// only the cursor changes, forward by Advance and backward by Rewind.
//
// A TokenStream is not safe for concurrent use by multiple goroutines.
type TokenStream struct {
	src  []byte
	toks buffer.Buffer[Token]
	pos  int     // index of the next token to read
	eof  LineCol // location of the end of the input
}

// Len reports the total number of tokens in s.
func (s *TokenStream) Len() int { return s.toks.Len() }

// At returns the token at index i of s. It panics if i is out of range.
func (s *TokenStream) At(i int) Token { return s.toks.At(i) }

// Tokens returns a view of all the tokens in s, in input order. The caller
// must not modify the contents of the slice.
func (s *TokenStream) Tokens() []Token { return s.toks.Items() }

// Pos reports the index of the next token Advance will return.
func (s *TokenStream) Pos() int { return s.pos }

// Reset moves the cursor of s back to the first token.
func (s *TokenStream) Reset() { s.pos = 0 }

// Advance returns the token at the cursor and moves the cursor forward.
// If no tokens remain, it returns false. Running out of tokens is not an
// error of the stream; it is for the caller to decide whether a token was
// required.
func (s *TokenStream) Advance() (Token, bool) {
	if s.pos >= s.toks.Len() {
		return Token{}, false
	}
	tok := s.toks.At(s.pos)
	s.pos++
	return tok, true
}

// Rewind moves the cursor back by one token, so that the next call to
// Advance returns the most recently advanced token again. It panics if the
// cursor is at the start of the stream.
func (s *TokenStream) Rewind() {
	if s.pos == 0 {
		panic("jsontree: rewind at start of token stream")
	}
	s.pos--
}

// Last returns the most recently advanced token, or false if the cursor is
// at the start of the stream.
func (s *TokenStream) Last() (Token, bool) {
	if s.pos == 0 {
		return Token{}, false
	}
	return s.toks.At(s.pos - 1), true
}

// Text returns a view of the undecoded text of tok, which must be a token
// of s. The caller must not modify the contents of the slice.
func (s *TokenStream) Text(tok Token) []byte { return s.src[tok.Pos:tok.End:tok.End] }

// Source returns the complete source text of s.
func (s *TokenStream) Source() []byte { return s.src }

// EndOfInput reports the location just past the last character of the
// source text.
func (s *TokenStream) EndOfInput() LineCol { return s.eof }

// Locate reports the complete location of tok, which must be a token of s.
// The Last position of the result is the location of the final character of
// the lexeme.
func (s *TokenStream) Locate(tok Token) Location {
	text := s.Text(tok)
	line, col := tok.Line, tok.Column-1
	for i := 0; i < len(text); {
		ch, nb := utf8.DecodeRune(text[i:])
		i += nb
		switch ch {
		case '\r':
			if i < len(text) && text[i] == '\n' {
				i++
			}
			fallthrough
		case '\n':
			line, col = line+1, 0
		default:
			col++
		}
	}
	return Location{Span: tok.Span, First: tok.LineCol, Last: LineCol{Line: line, Column: col}}
}
