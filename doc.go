// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jsontree implements a lexical analyzer for JSON text.
//
// # Lexing
//
// Lex scans a complete input from left to right and returns a TokenStream
// holding every token it found. Each Token records its type, the byte span
// of its lexeme in the source, and the line and column where it begins:
//
//	ts, err := jsontree.Lex(input)
//	if err != nil {
//	   log.Fatalf("Lex failed: %v", err)
//	}
//	for _, tok := range ts.Tokens() {
//	   log.Printf("%v %q", tok, ts.Text(tok))
//	}
//
// Lexing stops at the first error, which has concrete type *LexError. The
// stream returned alongside it holds the tokens found before the error.
//
// Tokens do not copy their text. A stream retains its source, and the text of
// a token is a view of that source, recovered with TokenStream.Text.
//
// # Strings and numbers
//
// A string is everything from an opening double quote to the next double
// quote. Backslash escapes are not interpreted, so a string cannot contain an
// escaped quotation mark. A number is a digit or minus sign followed by any
// run of digits and decimal points. If it contains a
// decimal point it is a Double, otherwise an Integer. The lexer does not
// check the internal shape of a number; that is done when its value is
// converted (see package ast).
//
// # Locations
//
// Lines and columns are 1-based. Columns count characters, not bytes, and a
// CR LF pair is a single line break. Locations of errors that occur at the end
// of the input refer to the position just past the last character, as
// reported by TokenStream.EndOfInput.
//
// # Parsing
//
// The ast package consumes a TokenStream and builds a tree of values from it
// by recursive descent.
package jsontree
