// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/creachadair/jsontree"
	"github.com/creachadair/jsontree/ast"
	"github.com/google/go-cmp/cmp"
)

const testJSON = `{
  "list": [
    {
      "x": 1
    },
    {
      "x": 2
    }
  ],
  "y": {
    "hello": "there"
  },
  "o": [
    "hi",
    "yourself"
  ],
  "xyz": {
    "p": true,
    "d": 2.5,
    "q": null
  }
}`

func mustParse(t *testing.T, s string) *ast.Value {
	t.Helper()
	v, err := ast.ParseBytes([]byte(s))
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	return v
}

func TestAccessors(t *testing.T) {
	v := mustParse(t, testJSON)
	if v.Kind != ast.Object || v.Len() != 4 {
		t.Fatalf("Root: got %v, want Object(len=4)", v)
	}

	xyz := v.Find("xyz")
	tests := []struct {
		v    *ast.Value
		kind ast.Kind
		str  string
	}{
		{v.Find("list").At(0).Find("x"), ast.Integer, "Integer(1)"},
		{v.Find("y").Find("hello"), ast.String, `String("there")`},
		{v.Find("o"), ast.Array, "Array(len=2)"},
		{xyz.Find("p"), ast.Bool, "Bool(true)"},
		{xyz.Find("d"), ast.Double, "Double(2.5)"},
		{xyz.Find("q"), ast.Null, "Null"},
	}
	for _, tc := range tests {
		if tc.v.Kind != tc.kind {
			t.Errorf("Kind: got %v, want %v", tc.v.Kind, tc.kind)
		}
		if got := tc.v.String(); got != tc.str {
			t.Errorf("String: got %q, want %q", got, tc.str)
		}
		if !tc.v.Key.Present() && tc.kind != ast.Array {
			t.Errorf("Value %v: member has no key", tc.v)
		}
		if tc.v.IsRoot {
			t.Errorf("Value %v: non-root is marked as root", tc.v)
		}
	}

	// Payload accessors report zero values for the wrong kind.
	d := xyz.Find("d")
	if d.Int() != 0 || d.Bool() || d.Str() != "" {
		t.Errorf("Double: got int %d, bool %v, str %q; want zeroes", d.Int(), d.Bool(), d.Str())
	}
	if got := v.Find("list").At(1).Find("x").Int(); got != 2 {
		t.Errorf("list[1].x: got %d, want 2", got)
	}
	if got := v.Find("nonesuch"); got != nil {
		t.Errorf("Find nonesuch: got %v, want nil", got)
	}

	// Array elements have no keys.
	for i, e := range v.Find("o").Children() {
		if e.Key.Present() {
			t.Errorf("o[%d]: unexpected key %q", i, e.Key.Get())
		}
	}
}

func TestFindDuplicate(t *testing.T) {
	v := mustParse(t, `{"a": 1, "b": 2, "a": 3}`)
	if v.Len() != 3 {
		t.Fatalf("Len: got %d, want 3", v.Len())
	}
	if got := v.Find("a").Int(); got != 1 {
		t.Errorf("Find a: got %d, want 1", got)
	}
	var keys []string
	for _, m := range v.Children() {
		keys = append(keys, m.Key.Get())
	}
	if diff := cmp.Diff([]string{"a", "b", "a"}, keys); diff != "" {
		t.Errorf("Keys (-want, +got):\n%s", diff)
	}
}

func TestSpans(t *testing.T) {
	const input = ` {"k": [true, "s"]} `
	v := mustParse(t, input)

	text := func(v *ast.Value) string {
		sp := v.Span()
		return input[sp.Pos:sp.End]
	}
	tests := []struct {
		v    *ast.Value
		want string
	}{
		{v, `{"k": [true, "s"]}`},
		{v.Find("k"), `[true, "s"]`},
		{v.Find("k").At(0), `true`},
		{v.Find("k").At(1), `"s"`},
	}
	for _, tc := range tests {
		if got := text(tc.v); got != tc.want {
			t.Errorf("Span of %v: got %#q, want %#q", tc.v, got, tc.want)
		}
	}
	if got, want := v.Span(), (jsontree.Span{Pos: 1, End: 19}); got != want {
		t.Errorf("Root span: got %v, want %v", got, want)
	}
}

func TestWalk(t *testing.T) {
	v := mustParse(t, `{"a": [1, {"b": null}], "c": "d"}`)

	var got []string
	if err := ast.Walk(v, func(v *ast.Value, depth int) error {
		got = append(got, strings.Repeat(".", depth)+v.Kind.String())
		return nil
	}); err != nil {
		t.Fatalf("Walk: unexpected error: %v", err)
	}
	want := []string{
		"Object",
		".Array",
		"..Integer",
		"..Object",
		"...Null",
		".String",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Walk (-want, +got):\n%s", diff)
	}

	errStop := errors.New("stop")
	var n int
	err := ast.Walk(v, func(v *ast.Value, _ int) error {
		n++
		if v.Kind == ast.Integer {
			return errStop
		}
		return nil
	})
	if err != errStop {
		t.Errorf("Walk: got error %v, want %v", err, errStop)
	}
	if n != 3 {
		t.Errorf("Walk: visited %d values, want 3", n)
	}
}

func TestRelease(t *testing.T) {
	v := mustParse(t, `[{"a": "x"}, ["y", "z"]]`)
	inner := v.At(1)
	s := inner.At(0)

	v.Release()
	if v.Len() != 0 || v.Children() != nil {
		t.Errorf("Release: root still has %d children", v.Len())
	}
	if inner.Len() != 0 {
		t.Errorf("Release: inner array still has %d children", inner.Len())
	}
	if s.Str() != "" {
		t.Errorf("Release: string payload is %q, want empty", s.Str())
	}

	// Releasing a partial tree is safe.
	p, err := ast.ParseBytes([]byte(`{"a": [1, 2`))
	if err == nil {
		t.Fatal("Parse: got nil error, want error")
	}
	p.Release()
}
