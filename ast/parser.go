// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"io"

	"github.com/creachadair/jsontree"
	"github.com/creachadair/mds/value"

	"go4.org/mem"
)

// ParseReader reads r to completion and parses a single JSON value from it,
// as with [ParseBytes].
func ParseReader(r io.Reader) (*Value, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseBytes(src)
}

// ParseBytes lexes src and parses a single JSON value from the result.
// If lexing fails, ParseBytes returns a nil value and the *jsontree.LexError
// without attempting to parse. Otherwise the results are as for [Parse].
func ParseBytes(src []byte) (*Value, error) {
	ts, err := jsontree.Lex(src)
	if err != nil {
		return nil, err
	}
	return Parse(ts)
}

// Parse parses a single JSON value from the tokens of ts, beginning at its
// cursor, and returns the root of the resulting tree. All the remaining
// tokens of ts must belong to the value.
//
// Parsing stops at the first syntax error, which is returned as a
// *SyntaxError along with whatever part of the tree was built before the
// error was found. A tree returned with an error is incomplete: it is safe
// to inspect, but it does not represent the input.
func Parse(ts *jsontree.TokenStream) (*Value, error) {
	p := &parser{ts: ts}
	root := p.parseValue()
	if root != nil {
		root.IsRoot = true
	}
	if p.err == nil {
		if tok, ok := ts.Advance(); ok {
			p.fail(UnexpectedToken, tok)
		}
	}
	if p.err != nil {
		return root, p.err
	}
	return root, nil
}

// A parser holds the state of a recursive-descent parse. Once err is set,
// no further productions are started, and those in progress return the
// values they have built so far.
type parser struct {
	ts  *jsontree.TokenStream
	err *SyntaxError
}

// parseValue consumes a single value of any type.
func (p *parser) parseValue() *Value {
	if p.err != nil {
		return nil
	}
	tok, ok := p.ts.Advance()
	if !ok {
		p.failEOF(NoTokenFound)
		return nil
	}
	switch tok.Type {
	case jsontree.LBrace:
		return p.parseObject(tok)
	case jsontree.LSquare:
		return p.parseArray(tok)
	case jsontree.String:
		return p.parseString(tok)
	case jsontree.Integer:
		return p.parseInteger(tok)
	case jsontree.Double:
		return p.parseDouble(tok)
	case jsontree.Boolean:
		return p.parseBoolean(tok)
	case jsontree.Null:
		return p.parseNull(tok)
	}
	p.fail(UnexpectedToken, tok)
	return nil
}

// parseObject consumes zero or more key:value members and the closing brace.
// Precondition: open is the "{" token.
func (p *parser) parseObject(open jsontree.Token) *Value {
	obj := &Value{Kind: Object, span: open.Span}
	if tok, ok := p.ts.Advance(); !ok {
		p.failEOF(ExpectedEndOfObjectBrace)
		return obj
	} else if tok.Type == jsontree.RBrace {
		obj.span.End = tok.End
		return obj // empty object
	}
	p.ts.Rewind()

	for {
		// Parse a single member: "key": value
		key, ok := p.ts.Advance()
		if !ok {
			p.failEOF(ExpectedEndOfObjectBrace)
			return obj
		} else if key.Type != jsontree.String {
			p.fail(ExpectedObjectKey, key)
			return obj
		}
		if tok, ok := p.ts.Advance(); !ok {
			p.failEOF(ExpectedEndOfObjectBrace)
			return obj
		} else if tok.Type != jsontree.Colon {
			p.fail(ExpectedColon, tok)
			return obj
		}
		if m := p.parseValue(); m != nil {
			m.Key = value.Just(p.unquote(key))
			obj.elts.Append(m)
		}
		if p.err != nil {
			return obj
		}

		// Check whether we have more members (",") or are done ("}").
		tok, ok := p.ts.Advance()
		if !ok {
			p.failEOF(ExpectedEndOfObjectBrace)
			return obj
		}
		switch tok.Type {
		case jsontree.RBrace:
			obj.span.End = tok.End
			return obj
		case jsontree.Comma:
			continue
		}
		p.fail(ExpectedComma, tok)
		return obj
	}
}

// parseArray consumes zero or more comma-separated values and the closing
// bracket.
// Precondition: open is the "[" token.
func (p *parser) parseArray(open jsontree.Token) *Value {
	arr := &Value{Kind: Array, span: open.Span}
	if tok, ok := p.ts.Advance(); !ok {
		p.failEOF(ExpectedEndOfArrayBrace)
		return arr
	} else if tok.Type == jsontree.RSquare {
		arr.span.End = tok.End
		return arr // empty array
	}
	p.ts.Rewind()

	for {
		if elt := p.parseValue(); elt != nil {
			arr.elts.Append(elt)
		}
		if p.err != nil {
			return arr
		}

		tok, ok := p.ts.Advance()
		if !ok {
			p.failEOF(ExpectedEndOfArrayBrace)
			return arr
		}
		switch tok.Type {
		case jsontree.RSquare:
			arr.span.End = tok.End
			return arr
		case jsontree.Comma:
			continue
		}
		p.fail(ExpectedComma, tok)
		return arr
	}
}

func (p *parser) parseString(tok jsontree.Token) *Value {
	return &Value{Kind: String, span: tok.Span, s: p.unquote(tok)}
}

// parseInteger converts the text of tok to a 32-bit integer. If the text is
// not entirely consumed by the conversion, or does not fit, it reports an
// error but still returns the value of the longest convertible prefix.
func (p *parser) parseInteger(tok jsontree.Token) *Value {
	v := &Value{Kind: Integer, span: tok.Span}
	text := mem.B(p.ts.Text(tok))
	n := numericPrefix(text, false)
	if n > 0 {
		z, err := mem.ParseInt(text.SliceTo(n), 10, 32)
		v.z = int32(z)
		if err != nil {
			p.fail(InvalidIntegerLiteral, tok)
		}
	}
	if n < text.Len() {
		p.fail(InvalidIntegerLiteral, tok)
	}
	return v
}

// parseDouble converts the text of tok to a float64, with the same handling
// of unconverted text as parseInteger.
func (p *parser) parseDouble(tok jsontree.Token) *Value {
	v := &Value{Kind: Double, span: tok.Span}
	text := mem.B(p.ts.Text(tok))
	n := numericPrefix(text, true)
	if n > 0 {
		f, err := mem.ParseFloat(text.SliceTo(n), 64)
		v.f = f
		if err != nil {
			p.fail(InvalidDoubleLiteral, tok)
		}
	}
	if n < text.Len() {
		p.fail(InvalidDoubleLiteral, tok)
	}
	return v
}

// parseBoolean relies on the lexer having checked the whole literal.
func (p *parser) parseBoolean(tok jsontree.Token) *Value {
	return &Value{Kind: Bool, span: tok.Span, b: p.ts.Text(tok)[0] == 't'}
}

func (p *parser) parseNull(tok jsontree.Token) *Value {
	return &Value{Kind: Null, span: tok.Span}
}

// unquote returns the text of a string token without its quotation marks.
func (p *parser) unquote(tok jsontree.Token) string {
	text := p.ts.Text(tok)
	return string(text[1 : len(text)-1])
}

func (p *parser) fail(kind ErrorKind, tok jsontree.Token) {
	if p.err == nil {
		p.err = &SyntaxError{Kind: kind, Token: tok, Location: tok.LineCol}
	}
}

func (p *parser) failEOF(kind ErrorKind) {
	if p.err == nil {
		last, _ := p.ts.Last()
		p.err = &SyntaxError{Kind: kind, Token: last, Location: p.ts.EndOfInput(), eof: true}
	}
}

// numericPrefix reports the length of the longest prefix of text that is a
// base-10 number: an optional minus sign and digits, followed (if frac is
// true) by a decimal point and more digits. At least one digit is required,
// otherwise the result is 0.
func numericPrefix(text mem.RO, frac bool) int {
	i, nd := 0, 0
	if i < text.Len() && text.At(i) == '-' {
		i++
	}
	for i < text.Len() && isDigit(text.At(i)) {
		i++
		nd++
	}
	if frac && i < text.Len() && text.At(i) == '.' {
		j, nf := i+1, 0
		for j < text.Len() && isDigit(text.At(j)) {
			j++
			nf++
		}
		if nd+nf > 0 {
			i, nd = j, nd+nf
		}
	}
	if nd == 0 {
		return 0
	}
	return i
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }
