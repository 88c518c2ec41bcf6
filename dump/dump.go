// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package dump renders JSON trees and token streams as human-readable text.
//
// A tree is printed in a yaml-like layout, one value per line:
//
//	- {2}
//	  - name: Dennis
//	  - tags: [2]
//	    - x
//	    - (null)
//
// Object members are labelled by their keys. Strings are printed as their
// raw text, and quoted only when needed to show them on a single line or to
// tell them apart from values of other kinds.
package dump

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/creachadair/jsontree"
	"github.com/creachadair/jsontree/ast"
	"github.com/creachadair/jsontree/internal/escape"
	"github.com/fatih/color"

	"go4.org/mem"
)

// A Printer carries the settings for rendering trees and tokens.
// A zero value is ready for use with default settings.
type Printer struct {
	// The number of spaces to indent each level of a tree. If zero, the
	// default is 2.
	Indent int

	// If true, render object keys and token types in color.
	Color bool
}

func (p Printer) indent() int {
	if p.Indent <= 0 {
		return 2
	}
	return p.Indent
}

func (p Printer) paint(attr color.Attribute) *color.Color {
	c := color.New(attr)
	if p.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// Tree renders the tree rooted at v to w with default settings.
func Tree(w io.Writer, v *ast.Value) error {
	var p Printer
	return p.Tree(w, v)
}

// Tree renders the tree rooted at v to w using the settings from p.
func (p Printer) Tree(w io.Writer, v *ast.Value) error {
	bw := bufio.NewWriter(w)
	key := p.paint(color.FgCyan)
	step := p.indent()
	err := ast.Walk(v, func(v *ast.Value, depth int) error {
		bw.WriteString(strings.Repeat(" ", depth*step))
		bw.WriteString("- ")
		if v.Key.Present() {
			bw.WriteString(key.Sprint(string(escape.Display(mem.S(v.Key.Get())))))
			bw.WriteString(": ")
		}
		bw.WriteString(Payload(v))
		return bw.WriteByte('\n')
	})
	if err != nil {
		return err
	}
	return bw.Flush()
}

// Payload returns the display text for the contents of v, without its key.
// A container is shown by its delimiters and the number of its children.
func Payload(v *ast.Value) string {
	switch v.Kind {
	case ast.Null:
		return "(null)"
	case ast.Bool:
		return strconv.FormatBool(v.Bool())
	case ast.Integer:
		return strconv.Itoa(int(v.Int()))
	case ast.Double:
		s := strconv.FormatFloat(v.Float(), 'g', -1, 64)
		if !strings.ContainsAny(s, ".eIN") {
			s += ".0" // distinguish from an integer
		}
		return s
	case ast.String:
		s := v.Str()
		if markerRE.MatchString(s) {
			return string(escape.Quote(mem.S(s)))
		}
		return string(escape.Display(mem.S(s)))
	case ast.Array:
		if v.Len() == 0 {
			return "[]"
		}
		return fmt.Sprintf("[%d]", v.Len())
	case ast.Object:
		if v.Len() == 0 {
			return "{}"
		}
		return fmt.Sprintf("{%d}", v.Len())
	default:
		panic(fmt.Sprintf("unknown value kind %v", v.Kind))
	}
}

// Tokens renders a table of the tokens in ts to w with default settings.
func Tokens(w io.Writer, ts *jsontree.TokenStream) error {
	var p Printer
	return p.Tokens(w, ts)
}

// Tokens renders a table of the tokens in ts to w using the settings from p.
// Each row gives the location of a token, its type, and its lexeme. The
// lexeme of a string is shown with its control characters escaped.
func (p Printer) Tokens(w io.Writer, ts *jsontree.TokenStream) error {
	tw := tabwriter.NewWriter(w, 4, 4, 1, ' ', 0)
	typ := p.paint(color.FgYellow)
	for _, tok := range ts.Tokens() {
		text := mem.B(ts.Text(tok))
		var lexeme []byte
		if tok.Type == jsontree.String {
			lexeme = escape.Quote(text.Slice(1, text.Len()-1))
		} else {
			lexeme = mem.Append(nil, text)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", ts.Locate(tok), typ.Sprint(tokenName(tok.Type)), lexeme)
	}
	return tw.Flush()
}

// markerRE matches string payloads that would print the same as a value of
// another kind.
var markerRE = regexp.MustCompile(`^(\(null\)|true|false|-?\d+(\.\d+)?(e[-+]\d+)?|\[\d*\]|\{\d*\})$`)

func tokenName(t jsontree.TokenType) string {
	if t.IsValue() {
		return t.String()
	}
	return "punct"
}
