package parse

import (
	"context"
	"fmt"

	"tlog.app/go/errors"
	"tlog.app/go/loc"
	"tlog.app/go/tlog"

	"github.com/slowlang/slowc/compiler/ast"
	"github.com/slowlang/slowc/compiler/tokenize"
	"github.com/slowlang/slowc/compiler/tp"
)

type (
	state struct {
		toks []tokenize.Token

		funcs map[string]*ast.Func
		fn    *ast.Func // being parsed
	}
)

// Parse builds typed functions out of tokens.
// Types are resolved while parsing, so the result is ready for code generation.
func Parse(ctx context.Context, toks []tokenize.Token) (p *ast.Prog, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "parse", "tokens", len(toks))
	defer tr.Finish("err", &err)

	if len(toks) == 0 || toks[len(toks)-1].Kind != tokenize.EOF {
		return nil, errors.New("token stream is not terminated by EOF")
	}

	s := &state{
		toks:  toks,
		funcs: make(map[string]*ast.Func),
	}

	p = &ast.Prog{}

	for i := 0; s.tok(i).Kind != tokenize.EOF; {
		var f *ast.Func

		f, i, err = s.function(ctx, i)
		if err != nil {
			return nil, err
		}

		p.Funcs = append(p.Funcs, f)
	}

	return p, nil
}

func (s *state) function(ctx context.Context, st int) (f *ast.Func, i int, err error) {
	name, i, err := s.ident(st)
	if err != nil {
		return nil, st, errors.Wrap(err, "function name")
	}

	if _, ok := s.funcs[name]; ok {
		return nil, st, NewRedefinedError(s.tok(st).Pos, "function", name)
	}

	f = &ast.Func{
		Base: ast.Base{Pos: s.tok(st).Pos},
		Name: name,
	}

	s.fn = f

	i, err = s.expect(i, "(")
	if err != nil {
		return nil, i, err
	}

	if !s.tok(i).Is(")") {
		for {
			pst := i

			var pname string
			pname, i, err = s.ident(i)
			if err != nil {
				return nil, i, errors.Wrap(err, "param")
			}

			if f.Lookup(pname) != nil {
				return nil, pst, NewRedefinedError(s.tok(pst).Pos, "parameter", pname)
			}

			if len(f.Params) == ast.MaxArgs {
				return nil, pst, NewTooManyArgsError(s.tok(pst).Pos, name)
			}

			l := f.Declare(pname, tp.Int{})
			f.Params = append(f.Params, l)

			if !s.tok(i).Is(",") {
				break
			}

			i++
		}
	}

	i, err = s.expect(i, ")")
	if err != nil {
		return nil, i, err
	}

	// registered before the body so it can call itself
	s.funcs[name] = f

	f.Body, i, err = s.block(ctx, i)
	if err != nil {
		return nil, i, errors.Wrap(err, "func %v", name)
	}

	if tlog.If("locals") {
		for _, l := range f.Locals {
			tlog.Printw("local", "func", name, "name", l.Name, "offset", l.Offset, "type", l.Type)
		}
	}

	return f, i, nil
}

// tok returns the token at i. Past the end it keeps returning EOF.
func (s *state) tok(i int) tokenize.Token {
	if i >= len(s.toks) {
		return s.toks[len(s.toks)-1]
	}

	return s.toks[i]
}

func (s *state) expect(st int, want string) (i int, err error) {
	t := s.tok(st)

	if t.Is(want) {
		return st + 1, nil
	}

	tlog.V("parse").Printw("unexpected token", "want", want, "got", t, "from", loc.Caller(1))

	return st, NewUnexpectedError(t.Pos, fmt.Sprintf("%q", want), t.Describe())
}

func (s *state) ident(st int) (name string, i int, err error) {
	t := s.tok(st)

	if t.Kind != tokenize.Ident {
		tlog.V("parse").Printw("unexpected token", "want", "identifier", "got", t, "from", loc.Caller(1))

		return "", st, NewUnexpectedError(t.Pos, "identifier", t.Describe())
	}

	return t.Text, st + 1, nil
}
