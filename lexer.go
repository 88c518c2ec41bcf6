// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsontree

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/creachadair/jsontree/internal/buffer"
)

// LexErrorKind enumerates the kinds of lexical errors reported by [Lex].
// Each kind is itself an error, so a *LexError can be matched with errors.Is.
type LexErrorKind byte

// Constants defining the valid LexErrorKind values.
const (
	EmptyFile             LexErrorKind = iota + 1 // input has no content
	ExpectedEndOfString                           // string not closed before end of input
	InvalidBooleanLiteral                         // malformed true or false
	InvalidNullLiteral                            // malformed null
	UnexpectedCharacter                           // character cannot start a token
	UnexpectedEndOfInput                          // input ended inside a number
)

var lexErrorStr = [...]string{
	0:                     "no error",
	EmptyFile:             "expected JSON content",
	ExpectedEndOfString:   "expected end-of-string double quotes",
	InvalidBooleanLiteral: "invalid Boolean literal",
	InvalidNullLiteral:    "invalid null literal",
	UnexpectedCharacter:   "unexpected character",
	UnexpectedEndOfInput:  "unexpected end of input",
}

// Error satisfies the error interface.
func (k LexErrorKind) Error() string {
	if int(k) >= len(lexErrorStr) {
		return fmt.Sprintf("lexical error %d", k)
	}
	return lexErrorStr[k]
}

// LexError is the concrete type of errors reported by the lexer.
type LexError struct {
	Kind     LexErrorKind
	Location LineCol
	Offset   int  // byte offset of the error in the source
	Got      rune // the offending character, for UnexpectedCharacter
}

// Error satisfies the error interface.
func (e *LexError) Error() string {
	if e.Kind == UnexpectedCharacter {
		return fmt.Sprintf("at %s: %v %q", e.Location, e.Kind, e.Got)
	}
	return fmt.Sprintf("at %s: %v", e.Location, e.Kind)
}

// Unwrap supports error wrapping. It returns the kind of e.
func (e *LexError) Unwrap() error { return e.Kind }

// LexReader reads r to completion and lexes the result as with [Lex].
func LexReader(r io.Reader) (*TokenStream, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Lex(src)
}

// Lex scans src from left to right and returns a stream of the tokens it
// contains. Scanning stops at the first lexical error, which is returned as
// a *LexError along with a stream holding the tokens found before it.
//
// The stream retains src, and the caller must not modify src while the
// stream or any value derived from its text is in use.
func Lex(src []byte) (*TokenStream, error) {
	lx := &lexer{src: src, line: 1}
	err := lx.run()
	if err != nil {
		lx.skip() // find the end of the input
	}
	return &TokenStream{src: src, toks: lx.toks, eof: lx.next()}, err
}

type lexer struct {
	src  []byte
	pos  int // offset of the next unread byte
	toks buffer.Buffer[Token]

	// Line and column of the most recently read character. The column is 0
	// immediately after a line break.
	line, col int
}

func (l *lexer) run() error {
	if len(l.src) == 0 {
		return l.fail(EmptyFile, l.next())
	}
	for {
		start := l.pos
		ch, ok := l.rune()
		if !ok {
			return nil // end of input
		} else if isSpace(ch) {
			continue
		}
		at := l.here()

		// Handle punctuation.
		if t, ok := selfDelim(ch); ok {
			l.emit(t, start, at)
			continue
		}

		var err error
		switch {
		case ch == '"':
			err = l.scanString(start, at)
		case isNumStart(ch):
			err = l.scanNumber(start, at)
		case ch == 't':
			err = l.scanLiteral(start, at, Boolean, "rue", InvalidBooleanLiteral)
		case ch == 'f':
			err = l.scanLiteral(start, at, Boolean, "alse", InvalidBooleanLiteral)
		case ch == 'n':
			err = l.scanLiteral(start, at, Null, "ull", InvalidNullLiteral)
		default:
			return &LexError{Kind: UnexpectedCharacter, Location: at, Offset: start, Got: ch}
		}
		if err != nil {
			return err
		}
	}
}

// scanString consumes the remainder of a string whose open quote is at start.
// Backslash escapes are not interpreted.
func (l *lexer) scanString(start int, at LineCol) error {
	for {
		ch, ok := l.rune()
		if !ok {
			return l.fail(ExpectedEndOfString, l.next())
		} else if ch == '"' {
			l.emit(String, start, at)
			return nil
		}
	}
}

// scanNumber consumes the remainder of a number whose first character is at
// start. Any decimal point makes the number a Double.
func (l *lexer) scanNumber(start int, at LineCol) error {
	typ := Integer
	for l.pos < len(l.src) {
		if c := l.src[l.pos]; c == '.' {
			typ = Double
		} else if !isDigit(c) {
			break
		}
		l.rune()
	}

	// A number cut off by the end of input may not end with a sign or point.
	if l.pos == len(l.src) {
		if c := l.src[l.pos-1]; c == '-' || c == '.' {
			return l.fail(UnexpectedEndOfInput, l.next())
		}
	}
	l.emit(typ, start, at)
	return nil
}

// scanLiteral matches rest against the input one byte at a time, following
// the first character of a constant at start.
func (l *lexer) scanLiteral(start int, at LineCol, typ TokenType, rest string, kind LexErrorKind) error {
	for i := 0; i < len(rest); i++ {
		if l.pos >= len(l.src) || l.src[l.pos] != rest[i] {
			return &LexError{Kind: kind, Location: at, Offset: start}
		}
		l.rune()
	}
	l.emit(typ, start, at)
	return nil
}

func (l *lexer) emit(typ TokenType, start int, at LineCol) {
	l.toks.Append(Token{Type: typ, Span: Span{Pos: start, End: l.pos}, LineCol: at})
}

// rune reads the next character from the input and updates the line and
// column. A CR LF pair is consumed as a single line break.
func (l *lexer) rune() (rune, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	ch, nb := utf8.DecodeRune(l.src[l.pos:])
	l.pos += nb
	switch ch {
	case '\r':
		if l.pos < len(l.src) && l.src[l.pos] == '\n' {
			l.pos++
		}
		fallthrough
	case '\n':
		l.line++
		l.col = 0
	default:
		l.col++
	}
	return ch, true
}

// skip reads the remainder of the input.
func (l *lexer) skip() {
	for {
		if _, ok := l.rune(); !ok {
			return
		}
	}
}

// here reports the location of the most recently read character.
func (l *lexer) here() LineCol { return LineCol{Line: l.line, Column: l.col} }

// next reports the location of the next unread character, or of the end of
// the input if all of it has been read.
func (l *lexer) next() LineCol { return LineCol{Line: l.line, Column: l.col + 1} }

func (l *lexer) fail(kind LexErrorKind, loc LineCol) error {
	return &LexError{Kind: kind, Location: loc, Offset: l.pos}
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isNumStart(ch rune) bool { return ch == '-' || ('0' <= ch && ch <= '9') }
func isDigit(c byte) bool     { return '0' <= c && c <= '9' }
