// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"fmt"

	"github.com/creachadair/jsontree"
)

// ErrorKind enumerates the kinds of syntax errors reported by [Parse].
// Each kind is itself an error, so a *SyntaxError can be matched with
// errors.Is.
type ErrorKind byte

// Constants defining the valid ErrorKind values.
const (
	NoTokenFound             ErrorKind = iota + 1 // input ended where a value was required
	InvalidIntegerLiteral                         // integer text did not fully convert
	InvalidDoubleLiteral                          // number text did not fully convert
	ExpectedObjectKey                             // object member does not begin with a string
	ExpectedEndOfObjectBrace                      // input ended inside an object
	ExpectedEndOfArrayBrace                       // input ended inside an array
	ExpectedColon                                 // missing ":" after an object key
	ExpectedComma                                 // missing "," between elements
	UnexpectedToken                               // token cannot begin a value
)

var errorStr = [...]string{
	0:                        "no error",
	NoTokenFound:             "expected token but none found",
	InvalidIntegerLiteral:    "invalid integer literal",
	InvalidDoubleLiteral:     "invalid double literal",
	ExpectedObjectKey:        "expected object key",
	ExpectedEndOfObjectBrace: "expected end-of-object brace",
	ExpectedEndOfArrayBrace:  "expected end-of-array brace",
	ExpectedColon:            "expected colon after object key",
	ExpectedComma:            "expected comma",
	UnexpectedToken:          "unexpected token",
}

// Error satisfies the error interface.
func (k ErrorKind) Error() string {
	if int(k) >= len(errorStr) {
		return fmt.Sprintf("syntax error %d", k)
	}
	return errorStr[k]
}

// SyntaxError is the concrete type of errors reported by the parser.
type SyntaxError struct {
	Kind ErrorKind

	// The token at which the error was detected. If the input ended before a
	// required token, this is the last token read, or a zero Token if there
	// were none.
	Token jsontree.Token

	// The location of the error. If the input ended before a required token,
	// this is the end of the input; otherwise it is the start of Token.
	Location jsontree.LineCol

	eof bool
}

// AtEOF reports whether e was caused by running out of tokens.
func (e *SyntaxError) AtEOF() bool { return e.eof }

// Error satisfies the error interface.
func (e *SyntaxError) Error() string {
	if e.eof {
		return fmt.Sprintf("at %s: %v, got end of input", e.Location, e.Kind)
	}
	return fmt.Sprintf("at %s: %v, got %v", e.Location, e.Kind, e.Token.Type)
}

// Unwrap supports error wrapping. It returns the kind of e.
func (e *SyntaxError) Unwrap() error { return e.Kind }
