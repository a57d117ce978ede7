package compiler

import (
	"context"
	"os"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/slowc/compiler/ast"
	"github.com/slowlang/slowc/compiler/back"
	"github.com/slowlang/slowc/compiler/diag"
	"github.com/slowlang/slowc/compiler/parse"
	"github.com/slowlang/slowc/compiler/tokenize"
)

func CompileFile(ctx context.Context, name string) (obj []byte, err error) {
	text, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	tlog.SpanFromContext(ctx).Printw("read file", "size", len(text), "name", name)

	return Compile(ctx, name, text)
}

// Compile translates program text into x86-64 assembly.
// Nothing is returned if any stage fails.
func Compile(ctx context.Context, name string, text []byte) (obj []byte, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "compile", "name", name, "size", len(text))
	defer tr.Finish("err", &err)

	p, err := Parse(ctx, text)
	if err != nil {
		return nil, err
	}

	obj, err = back.New().CompileProg(ctx, nil, p)
	if err != nil {
		return nil, errors.Wrap(err, "codegen")
	}

	return obj, nil
}

// Parse runs the front end: tokenizing and building the typed tree.
func Parse(ctx context.Context, text []byte) (p *ast.Prog, err error) {
	toks, err := tokenize.Tokenize(ctx, text)
	if err != nil {
		return nil, errors.Wrap(err, "tokenize")
	}

	p, err = parse.Parse(ctx, toks)
	if err != nil {
		return nil, errors.Wrap(err, "parse")
	}

	return p, nil
}

// Diagnose renders err against the source it came from.
// Errors without a position are returned as is.
func Diagnose(text []byte, err error) string {
	var e diag.Error

	if !errors.As(err, &e) {
		return err.Error()
	}

	return diag.Render(text, e.Position(), e.Error())
}
