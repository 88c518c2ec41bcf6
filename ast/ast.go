// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ast defines a tree representation for JSON values, and a
// recursive-descent parser that constructs trees from a token stream.
package ast

import (
	"fmt"

	"github.com/creachadair/jsontree"
	"github.com/creachadair/jsontree/internal/buffer"
	"github.com/creachadair/mds/value"
)

// Kind is the type tag of a Value.
type Kind byte

// Constants defining the valid Kind values.
const (
	Null    Kind = iota // the constant null
	Bool                // true or false
	Integer             // a 32-bit signed integer
	Double              // a 64-bit floating-point number
	String              // a string, with escapes not decoded
	Array               // a sequence of values
	Object              // a sequence of keyed values
)

var kindStr = [...]string{
	Null:    "Null",
	Bool:    "Bool",
	Integer: "Integer",
	Double:  "Double",
	String:  "String",
	Array:   "Array",
	Object:  "Object",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return fmt.Sprintf("Kind(%d)", k)
	}
	return kindStr[k]
}

// A Value is a node in the tree of a JSON value. The Kind of a value
// determines which of its accessors is meaningful: the payload accessors
// return zero values for other kinds, and only an Array or Object has
// children.
//
// The children of an Object are its members, in the order they occurred in
// the input. Each member carries its key; keys are not required to be unique,
// and a repeated key yields one member per occurrence.
type Value struct {
	Kind   Kind
	Key    value.Maybe[string] // present iff this value is an object member
	IsRoot bool                // whether this is the root of a parsed tree

	span jsontree.Span
	b    bool
	z    int32
	f    float64
	s    string
	elts buffer.Buffer[*Value]
}

// Span reports the span of source text covered by v.
func (v *Value) Span() jsontree.Span { return v.span }

// Bool reports the value of a Bool, or false.
func (v *Value) Bool() bool { return v.Kind == Bool && v.b }

// Int reports the value of an Integer, or 0.
func (v *Value) Int() int32 {
	if v.Kind != Integer {
		return 0
	}
	return v.z
}

// Float reports the value of a Double, or 0.
func (v *Value) Float() float64 {
	if v.Kind != Double {
		return 0
	}
	return v.f
}

// Str reports the contents of a String, or "". The contents are the raw text
// between the quotation marks; escape sequences are not decoded.
func (v *Value) Str() string {
	if v.Kind != String {
		return ""
	}
	return v.s
}

// Len reports the number of children of v.
func (v *Value) Len() int { return v.elts.Len() }

// At returns the child of v at index i. It panics if i is out of range.
func (v *Value) At(i int) *Value { return v.elts.At(i) }

// Children returns a view of the children of v in order. The caller must not
// modify the contents of the slice.
func (v *Value) Children() []*Value { return v.elts.Items() }

// Find returns the first member of v whose key equals key, or nil.
func (v *Value) Find(key string) *Value {
	for _, m := range v.elts.Items() {
		if m.Key.Present() && m.Key.Get() == key {
			return m
		}
	}
	return nil
}

func (v *Value) String() string {
	switch v.Kind {
	case Null:
		return "Null"
	case Bool:
		return fmt.Sprintf("Bool(%v)", v.b)
	case Integer:
		return fmt.Sprintf("Integer(%d)", v.z)
	case Double:
		return fmt.Sprintf("Double(%v)", v.f)
	case String:
		return fmt.Sprintf("String(%q)", v.s)
	default:
		return fmt.Sprintf("%v(len=%d)", v.Kind, v.elts.Len())
	}
}

// Release tears down the tree rooted at v, children first. Afterward v and
// its former descendants have no children and no string payloads. It is not
// necessary to call Release; it exists to drop a large tree's storage early,
// for example a partial tree returned alongside a syntax error.
func (v *Value) Release() {
	for _, c := range v.elts.Items() {
		c.Release()
	}
	v.elts.Reset()
	v.s = ""
}

// Walk visits v and each of its descendants in depth-first order, parents
// before children, calling f with each value and its depth below v. If f
// reports an error, the walk stops and that error is returned.
func Walk(v *Value, f func(v *Value, depth int) error) error {
	return walk(v, 0, f)
}

func walk(v *Value, depth int, f func(*Value, int) error) error {
	if err := f(v, depth); err != nil {
		return err
	}
	for _, c := range v.elts.Items() {
		if err := walk(c, depth+1, f); err != nil {
			return err
		}
	}
	return nil
}
