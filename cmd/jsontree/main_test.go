// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	code           int
	stdout, stderr string
}

func runWith(t *testing.T, input string, args ...string) result {
	t.Helper()
	var stdout, stderr strings.Builder
	code := run(args, strings.NewReader(input), &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestTree(t *testing.T) {
	r := runWith(t, `{"a": [1, 2]}`, "tree")
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Equal(t, "- {1}\n  - a: [2]\n    - 1\n    - 2\n", r.stdout)
	assert.Empty(t, r.stderr)
}

func TestStdin(t *testing.T) {
	tests := [][]string{
		{"-"},
		{"tree", "-"},
		{"tree"},
	}
	for _, args := range tests {
		r := runWith(t, `[1]`, args...)
		require.Equal(t, exitOK, r.code, "args %q: %s", args, r.stderr)
		assert.Equal(t, "- [1]\n  - 1\n", r.stdout)
	}

	r := runWith(t, `[1]`, "tokens", "-")
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Equal(t, "1:1 punct   [\n1:2 integer 1\n1:3 punct   ]\n", r.stdout)

	r = runWith(t, `[1]`, "check", "-")
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Equal(t, "-: ok, 3 B, 3 tokens, 2 values, depth 2\n", r.stdout)
}

func TestDefaultCommand(t *testing.T) {
	path := writeFile(t, "input.json", `[true, null]`)
	r := runWith(t, "", path)
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Equal(t, "- [2]\n  - true\n  - (null)\n", r.stdout)
}

func TestTreePath(t *testing.T) {
	const input = `{"a": [1, {"b": "c"}]}`

	r := runWith(t, input, "tree", "-p", "$.a")
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Equal(t, "- a: [2]\n  - 1\n  - {1}\n    - b: c\n", r.stdout)

	r = runWith(t, input, "tree", "--path", "$.a[-1]['b']")
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Equal(t, "- b: c\n", r.stdout)

	r = runWith(t, input, "tree", "-p", "$.nonesuch")
	assert.Equal(t, exitInput, r.code)
	assert.Contains(t, r.stderr, `find $.nonesuch: key "nonesuch" not found`)
	assert.Empty(t, r.stdout)

	r = runWith(t, input, "tree", "-p", "$..a")
	assert.Equal(t, exitUsage, r.code)
	assert.Contains(t, r.stderr, "invalid --path")
}

func TestTokens(t *testing.T) {
	r := runWith(t, `[1, "x"]`, "tokens")
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Equal(t, strings.Join([]string{
		"1:1   punct   [",
		"1:2   integer 1",
		"1:3   punct   ,",
		"1:5-7 string  \"x\"",
		"1:8   punct   ]",
		"",
	}, "\n"), r.stdout)
}

func TestCheck(t *testing.T) {
	r := runWith(t, `{"a": [1, 2]}`, "check")
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Equal(t, "-: ok, 13 B, 9 tokens, 4 values, depth 3\n", r.stdout)
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		args  []string
		code  int
		diag  string
	}{
		{"Lex", `{"a": tru}`, []string{"tree"}, exitLex, "-:1:7: invalid Boolean literal"},
		{"LexTokens", `[1, @]`, []string{"tokens"}, exitLex, "-:1:5: unexpected character"},
		{"Empty", ``, []string{"check"}, exitLex, "-:1:1: expected JSON content"},
		{"Syntax", `{"a" 1}`, []string{"tree"}, exitSyntax, "-:1:6: expected colon after object key"},
		{"SyntaxEOF", "[1,\n", []string{"check"}, exitSyntax, "-:2:1: expected token but none found"},
		{"Trailing", `1 2`, []string{"check"}, exitSyntax, "-:1:3: unexpected token"},
		{"NoFile", ``, []string{"tree", filepath.Join(t.TempDir(), "nonesuch.json")}, exitInput, "read input"},
		{"BadFlag", `1`, []string{"--bogus"}, exitUsage, "bogus"},
		{"BadLevel", `1`, []string{"--log.level=loud", "tree"}, exitUsage, "loud"},
		{"ExtraArgs", `1`, []string{"tokens", "a", "b"}, exitUsage, "unexpected"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := runWith(t, tc.input, tc.args...)
			assert.Equal(t, tc.code, r.code)
			assert.Contains(t, r.stderr, tc.diag)
			assert.Empty(t, r.stdout)
		})
	}
}

func TestHuJSON(t *testing.T) {
	const input = "{\n  // comment\n  \"a\": 1,\n}\n"

	r := runWith(t, input, "tree")
	assert.Equal(t, exitLex, r.code)
	assert.Contains(t, r.stderr, "-:2:3: unexpected character")

	r = runWith(t, input, "--hujson", "tree")
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Equal(t, "- {1}\n  - a: 1\n", r.stdout)

	// Positions are preserved by standardization.
	r = runWith(t, "[/* c */ 1,]", "--hujson", "tokens")
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Equal(t, "1:1  punct   [\n1:10 integer 1\n1:12 punct   ]\n", r.stdout)

	// Invalid input is diagnosed by the parser, with its location.
	tests := []struct {
		input string
		diag  string
	}{
		{`{"a" 1}`, "-:1:6: expected colon after object key"},
		{`[1 2]`, "-:1:4: expected comma"},
		{`{"a": 1`, "-:1:8: expected end-of-object brace"},
	}
	for _, tc := range tests {
		r := runWith(t, tc.input, "--hujson", "check")
		assert.Equal(t, exitSyntax, r.code, "input %#q", tc.input)
		assert.Contains(t, r.stderr, tc.diag)
		assert.Empty(t, r.stdout)
	}
}

func TestLogLevel(t *testing.T) {
	r := runWith(t, `[]`, "--log.level=debug", "check")
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Contains(t, r.stderr, "level=debug")
	assert.Contains(t, r.stderr, `msg="lexed input"`)

	r = runWith(t, `[`, "--log.level=error", "check")
	assert.Equal(t, exitSyntax, r.code)
	assert.Contains(t, r.stderr, "level=error")
	assert.NotContains(t, r.stderr, "level=debug")
}

func TestHelp(t *testing.T) {
	r := runWith(t, "", "--help")
	assert.Equal(t, exitOK, r.code)
	assert.Contains(t, r.stderr, "tokens")
}
