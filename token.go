// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsontree

import (
	"fmt"
	"strings"
)

// TokenType is the type of a lexical token in the JSON grammar.
type TokenType byte

// Constants defining the valid TokenType values.
const (
	Invalid TokenType = iota // invalid token
	Null                     // constant: null
	String                   // quoted string
	Integer                  // number: integer with no fraction
	Double                   // number with a decimal point
	Boolean                  // constant: true or false
	LBrace                   // left brace "{"
	RBrace                   // right brace "}"
	LSquare                  // left square bracket "["
	RSquare                  // right square bracket "]"
	Comma                    // comma ","
	Colon                    // colon ":"
)

var tokenStr = [...]string{
	Invalid: "invalid token",
	Null:    "null",
	String:  "string",
	Integer: "integer",
	Double:  "double",
	Boolean: "boolean",
	LBrace:  `"{"`,
	RBrace:  `"}"`,
	LSquare: `"["`,
	RSquare: `"]"`,
	Comma:   `","`,
	Colon:   `":"`,
}

func (t TokenType) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[v]
}

// IsValue reports whether t is a scalar value token.
func (t TokenType) IsValue() bool { return t >= Null && t <= Boolean }

// A Token is a single lexical token, recorded by the span of its lexeme in
// the source and the line and column where it begins. Tokens do not carry
// copies of their text; use [TokenStream.Text] to recover it.
type Token struct {
	Type TokenType
	Span
	LineCol
}

func (t Token) String() string {
	return fmt.Sprintf("%v at %v", t.Type, t.LineCol)
}

var self = [...]TokenType{LBrace, RBrace, LSquare, RSquare, Comma, Colon}

func selfDelim(ch rune) (TokenType, bool) {
	i := strings.IndexRune("{}[],:", ch)
	if i >= 0 {
		return self[i], true
	}
	return Invalid, false
}
