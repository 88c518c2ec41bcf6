// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jpath implements a parser for a subset of JSONPath expressions that
// denote a single value, and their evaluation against a tree.
package jpath

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/creachadair/jsontree/ast"
	"github.com/creachadair/jsontree/ast/cursor"
)

/*
Grammar:

  expr = root steps
  root = "$"
 steps = step [steps]
  step = "." name
  step = "[" value "]"
  name = WORD
 value = "'" QTEXT "'"
 value = INDEX

  WORD = RE `\w+`
 QTEXT = RE `[^']*`
 INDEX = RE `-?\d+`

This is the subset of the grammar in

  https://www.ietf.org/archive/id/draft-goessner-dispatch-jsonpath-00.html

whose expressions select at most one value. Wildcards, recursive descent,
slices, filters and scripts are not supported.
*/

// An Expr is a parsed JSONPath expression.
type Expr []Step

// Parse parses s as a JSONPath expression.
func Parse(s string) (Expr, error) {
	t, ok := strings.CutPrefix(s, "$")
	if !ok {
		return nil, errors.New("missing root marker")
	}
	var steps Expr
	for t != "" {
		step, rest, err := parseStep(t)
		if err != nil {
			return nil, fmt.Errorf("at offset %d: %w", len(s)-len(t), err)
		}
		steps = append(steps, step)
		t = rest
	}
	return steps, nil
}

// MustParse parses s as a JSONPath expression, and panics on error.
func MustParse(s string) Expr {
	e, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("jpath: %v", err))
	}
	return e
}

func (e Expr) String() string {
	var buf strings.Builder
	buf.WriteString("$")
	for _, s := range e {
		switch s.Op {
		case Name:
			fmt.Fprint(&buf, ".", s.Key)
		case QName:
			fmt.Fprintf(&buf, "['%s']", s.Key)
		case Index:
			fmt.Fprintf(&buf, "[%d]", s.Index)
		}
	}
	return buf.String()
}

// Path returns the steps of e as path elements for cursor.Cursor.Down.
func (e Expr) Path() []any {
	path := make([]any, len(e))
	for i, s := range e {
		if s.Op == Index {
			path[i] = s.Index
		} else {
			path[i] = s.Key
		}
	}
	return path
}

// Eval returns the value selected by e starting from root.
func (e Expr) Eval(root *ast.Value) (*ast.Value, error) {
	return cursor.Path(root, e.Path()...)
}

func parseStep(s string) (_ Step, rest string, _ error) {
	if strings.HasPrefix(s, "..") {
		return Step{}, s, errors.New("recursive descent is not supported")
	}
	if t, ok := strings.CutPrefix(s, "."); ok {
		if strings.HasPrefix(t, "*") {
			return Step{}, s, errors.New("wildcards are not supported")
		}
		m := wordRE.FindStringSubmatch(t)
		if m == nil {
			return Step{}, s, errors.New("invalid .name")
		}
		return Step{Op: Name, Key: m[1]}, t[len(m[0]):], nil
	}
	if t, ok := strings.CutPrefix(s, "["); ok {
		step, u, err := parseValue(t)
		if err != nil {
			return Step{}, t, err
		}
		u, ok := strings.CutPrefix(u, "]")
		if !ok {
			return Step{}, u, errors.New("missing close bracket")
		}
		return step, u, nil
	}
	return Step{}, s, errors.New("invalid path step")
}

func parseValue(s string) (_ Step, rest string, _ error) {
	if m := quoteRE.FindStringSubmatch(s); m != nil {
		return Step{Op: QName, Key: m[1]}, s[len(m[0]):], nil
	}
	if m := indexRE.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return Step{}, s, fmt.Errorf("invalid index: %w", err)
		}
		return Step{Op: Index, Index: n}, s[len(m[0]):], nil
	}
	return Step{}, s, fmt.Errorf("invalid value: %q", s)
}

var (
	wordRE  = regexp.MustCompile(`^(\w+)`)
	indexRE = regexp.MustCompile(`^(-?\d+)`)
	quoteRE = regexp.MustCompile(`^'([^']*)'`)
)

// An Op is a path operator.
type Op byte

const (
	Invalid Op = iota // invalid operator
	Name              // unquoted member name (.name)
	QName             // quoted member name (['name'])
	Index             // array or object index ([n])
)

var opText = [...]string{
	Invalid: "invalid",
	Name:    "name",
	QName:   "qname",
	Index:   "index",
}

func (o Op) String() string {
	if int(o) < len(opText) {
		return opText[o]
	}
	return opText[Invalid]
}

// A Step is a single step of a JSONPath expression.
type Step struct {
	Op    Op
	Key   string // for Name and QName
	Index int    // for Index
}
