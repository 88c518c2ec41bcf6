// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Program jsontree lexes and parses JSON input, and prints the resulting
// token stream or value tree.
//
// Usage:
//
//	jsontree [flags] [tree] [--path=$.a[0]] <file>
//	jsontree [flags] tokens <file>
//	jsontree [flags] check <file>
//
// A file named "-" denotes standard input. The exit status is 0 on success,
// 1 if the input cannot be read, 2 for a lexical error, 3 for a syntax error,
// and 64 for a command-line usage error.
package main

import (
	"io"
	"os"
)

// Exit codes.
const (
	exitOK     = 0
	exitInput  = 1
	exitLex    = 2
	exitSyntax = 3
	exitUsage  = 64
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command described by args and returns its exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	app := newApp(stdin, stdout, stderr)
	return app.run(args)
}
