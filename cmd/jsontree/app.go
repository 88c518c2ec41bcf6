// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/alecthomas/kingpin/v2"
	"github.com/creachadair/jsontree"
	"github.com/creachadair/jsontree/ast"
	"github.com/creachadair/jsontree/dump"
	"github.com/creachadair/jsontree/jpath"
	"github.com/dustin/go-humanize"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/tailscale/hujson"
)

// An app holds the settings and I/O streams for one invocation.
type app struct {
	stdin          io.Reader
	stdout, stderr io.Writer
	logger         log.Logger

	// Flags
	color    *bool
	hujson   *bool
	logLevel *string

	treeFile   *string
	treePath   *string
	tokensFile *string
	checkFile  *string

	ka *kingpin.Application
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	ka := kingpin.New("jsontree", "Lex and parse JSON input.")
	ka.UsageWriter(stderr)
	ka.ErrorWriter(stderr)
	ka.HelpFlag.Short('h')

	a.color = ka.Flag("color", "Render keys and token types in color.").
		Envar("JSONTREE_COLOR").Bool()
	a.hujson = ka.Flag("hujson", "Accept JWCC input with comments and trailing commas.").
		Envar("JSONTREE_HUJSON").Bool()
	a.logLevel = ka.Flag("log.level", "Only log messages at or above this level.").
		Default("info").Envar("JSONTREE_LOG_LEVEL").Enum("debug", "info", "warn", "error")

	tree := ka.Command("tree", "Parse the input and print its value tree.").Default()
	a.treeFile = tree.Arg("file", `Input file, or "-" for stdin.`).Default("-").String()
	a.treePath = tree.Flag("path", `Print only the value selected by this JSONPath, e.g. "$.a[0]".`).
		Short('p').Default("$").String()

	tokens := ka.Command("tokens", "Lex the input and print its tokens.")
	a.tokensFile = tokens.Arg("file", `Input file, or "-" for stdin.`).Default("-").String()

	check := ka.Command("check", "Parse the input and print a summary.")
	a.checkFile = check.Arg("file", `Input file, or "-" for stdin.`).Default("-").String()

	a.ka = ka
	return a
}

func (a *app) run(args []string) int {
	exit := -1
	a.ka.Terminate(func(code int) {
		if exit < 0 {
			exit = code
		}
	})
	cmd, err := a.ka.Parse(args)
	if exit >= 0 {
		return exit // help was printed
	} else if err != nil {
		fmt.Fprintf(a.stderr, "jsontree: %v\n", err)
		return exitUsage
	}
	a.logger = newLogger(a.stderr, *a.logLevel)
	level.Debug(a.logger).Log("msg", "starting", "command", cmd)

	switch cmd {
	case "tree":
		return a.runTree()
	case "tokens":
		return a.runTokens()
	case "check":
		return a.runCheck()
	}
	fmt.Fprintf(a.stderr, "jsontree: unknown command %q\n", cmd)
	return exitUsage
}

func newLogger(w io.Writer, lvl string) log.Logger {
	var opt level.Option
	switch lvl {
	case "debug":
		opt = level.AllowDebug()
	case "warn":
		opt = level.AllowWarn()
	case "error":
		opt = level.AllowError()
	default:
		opt = level.AllowInfo()
	}
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = level.NewFilter(logger, opt)
	return log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
}

// inputName normalizes a file argument. An empty argument denotes stdin, as
// does "-".
func inputName(arg string) string {
	if arg == "" {
		return "-"
	}
	return arg
}

// readInput reads the contents of the named file, or stdin if name is "-".
// If hujson standardization is enabled, it is applied to the result. Input
// that cannot be standardized is returned as read, so that the lexer and
// parser report its errors with their locations.
func (a *app) readInput(name string) ([]byte, int) {
	var src []byte
	var err error
	if name == "-" {
		src, err = io.ReadAll(a.stdin)
	} else {
		src, err = os.ReadFile(name)
	}
	if err != nil {
		a.report(name, errors.Wrap(err, "read input"))
		return nil, exitInput
	}
	level.Debug(a.logger).Log("msg", "read input", "file", name, "bytes", len(src))
	if *a.hujson {
		std, err := hujson.Standardize(slices.Clone(src))
		if err != nil {
			level.Warn(a.logger).Log("msg", "input is not valid JWCC, reading as JSON", "file", name, "err", err)
		} else {
			src = std
		}
	}
	return src, exitOK
}

// lex lexes src and reports any error. It returns the token stream and an
// exit code.
func (a *app) lex(name string, src []byte) (*jsontree.TokenStream, int) {
	ts, err := jsontree.Lex(src)
	if err != nil {
		a.report(name, errors.Wrap(err, "lex"))
		return ts, exitLex
	}
	level.Debug(a.logger).Log("msg", "lexed input", "file", name, "tokens", ts.Len())
	return ts, exitOK
}

// parse lexes and parses src and reports any error. It returns the root of
// the tree and an exit code.
func (a *app) parse(name string, src []byte) (*ast.Value, *jsontree.TokenStream, int) {
	ts, code := a.lex(name, src)
	if code != exitOK {
		return nil, nil, code
	}
	root, err := ast.Parse(ts)
	if err != nil {
		a.report(name, errors.Wrap(err, "parse"))
		return nil, nil, exitSyntax
	}
	return root, ts, exitOK
}

// report logs err and prints a diagnostic line for it. Lexical and syntax
// errors are prefixed with the file name and the location of the error.
func (a *app) report(name string, err error) {
	level.Error(a.logger).Log("msg", "failed", "file", name, "err", err)

	var lerr *jsontree.LexError
	var serr *ast.SyntaxError
	switch {
	case errors.As(err, &lerr):
		fmt.Fprintf(a.stderr, "%s:%s: %v\n", name, lerr.Location, lerr.Kind)
	case errors.As(err, &serr):
		fmt.Fprintf(a.stderr, "%s:%s: %v\n", name, serr.Location, serr.Kind)
	default:
		fmt.Fprintf(a.stderr, "%s: %v\n", name, err)
	}
}

func (a *app) printer() dump.Printer { return dump.Printer{Color: *a.color} }

func (a *app) runTree() int {
	expr, err := jpath.Parse(*a.treePath)
	if err != nil {
		fmt.Fprintf(a.stderr, "jsontree: invalid --path: %v\n", err)
		return exitUsage
	}
	name := inputName(*a.treeFile)
	src, code := a.readInput(name)
	if code != exitOK {
		return code
	}
	root, _, code := a.parse(name, src)
	if code != exitOK {
		return code
	}
	v, err := expr.Eval(root)
	if err != nil {
		a.report(name, errors.Wrapf(err, "find %s", expr))
		return exitInput
	}
	if err := a.printer().Tree(a.stdout, v); err != nil {
		a.report(name, errors.Wrap(err, "print tree"))
		return exitInput
	}
	return exitOK
}

func (a *app) runTokens() int {
	name := inputName(*a.tokensFile)
	src, code := a.readInput(name)
	if code != exitOK {
		return code
	}
	ts, code := a.lex(name, src)
	if code != exitOK {
		return code
	}
	if err := a.printer().Tokens(a.stdout, ts); err != nil {
		a.report(name, errors.Wrap(err, "print tokens"))
		return exitInput
	}
	return exitOK
}

func (a *app) runCheck() int {
	name := inputName(*a.checkFile)
	src, code := a.readInput(name)
	if code != exitOK {
		return code
	}
	root, ts, code := a.parse(name, src)
	if code != exitOK {
		return code
	}
	var values, depth int
	ast.Walk(root, func(_ *ast.Value, d int) error {
		values++
		depth = max(depth, d+1)
		return nil
	})
	fmt.Fprintf(a.stdout, "%s: ok, %s, %d tokens, %d values, depth %d\n",
		name, humanize.Bytes(uint64(len(src))), ts.Len(), values, depth)
	return exitOK
}
