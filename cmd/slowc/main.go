package main

import (
	"context"
	"fmt"
	"os"

	"nikand.dev/go/cli"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/slowc/compiler"
	"github.com/slowlang/slowc/compiler/format"
	"github.com/slowlang/slowc/compiler/tokenize"
)

func main() {
	parseCmd := &cli.Command{
		Name:        "parse",
		Description: "print typed syntax tree",
		Action:      parseAct,
		Args:        cli.Args{},
	}

	tokensCmd := &cli.Command{
		Name:        "tokens",
		Description: "print token stream",
		Action:      tokensAct,
		Args:        cli.Args{},
	}

	compileCmd := &cli.Command{
		Name:        "compile",
		Description: "compile file to assembly",
		Action:      compileAct,
		Flags: []*cli.Flag{
			cli.NewFlag("file,f", "", "source file"),
		},
	}

	app := &cli.Command{
		Name:        "slowc",
		Description: "slowc compiles a tiny C-like language to x86-64 assembly",
		Before:      before,
		Action:      rootAct,
		Args:        cli.Args{},
		Flags: []*cli.Flag{
			cli.NewFlag("verbosity,v", "", "tlog debug topics"),
			cli.HelpFlag,
		},
		Commands: []*cli.Command{
			parseCmd,
			tokensCmd,
			compileCmd,
		},
	}

	cli.RunAndExit(app, os.Args, os.Environ())
}

// verbose is set by --verbosity. Without it spans are not attached
// to the context and stderr carries nothing but diagnostics.
var verbose bool

func before(c *cli.Command) error {
	v := c.String("verbosity")

	verbose = v != ""
	tlog.SetVerbosity(v)

	return nil
}

func rootAct(c *cli.Command) (err error) {
	ctx := rootContext()

	if len(c.Args) != 1 {
		return errors.New("expected exactly one argument: program text")
	}

	text := []byte(c.Args[0])

	obj, err := compiler.Compile(ctx, "<arg>", text)
	if err != nil {
		fail(text, err)
	}

	fmt.Printf("%s", obj)

	return nil
}

func compileAct(c *cli.Command) (err error) {
	ctx := rootContext()

	name := c.String("file")
	if name == "" {
		return errors.New("--file is required")
	}

	obj, err := compiler.CompileFile(ctx, name)
	if err != nil {
		text, _ := os.ReadFile(name) // only to point into it

		fail(text, err)
	}

	fmt.Printf("%s", obj)

	return nil
}

func parseAct(c *cli.Command) (err error) {
	ctx := rootContext()

	for _, a := range c.Args {
		text := []byte(a)

		p, err := compiler.Parse(ctx, text)
		if err != nil {
			fail(text, err)
		}

		b, err := format.Format(ctx, nil, p)
		if err != nil {
			return errors.Wrap(err, "format")
		}

		fmt.Printf("%s", b)
	}

	return nil
}

func tokensAct(c *cli.Command) (err error) {
	ctx := rootContext()

	for _, a := range c.Args {
		text := []byte(a)

		toks, err := tokenize.Tokenize(ctx, text)
		if err != nil {
			fail(text, err)
		}

		for _, t := range toks {
			fmt.Printf("%4d  %v\n", t.Pos, t)
		}
	}

	return nil
}

func rootContext() context.Context {
	ctx := context.Background()

	if !verbose {
		return ctx
	}

	return tlog.ContextWithSpan(ctx, tlog.Root())
}

// fail reports err pointing into text and exits.
// Nothing is printed to stdout.
func fail(text []byte, err error) {
	tlog.V("diag").Printw("compile failed", "err", err)

	fmt.Fprintf(os.Stderr, "%s\n", compiler.Diagnose(text, err))

	os.Exit(1)
}
