package parse

import (
	"context"

	"tlog.app/go/errors"

	"github.com/slowlang/slowc/compiler/ast"
	"github.com/slowlang/slowc/compiler/tokenize"
)

func (s *state) block(ctx context.Context, st int) (b *ast.Block, i int, err error) {
	i, err = s.expect(st, "{")
	if err != nil {
		return nil, i, err
	}

	b = &ast.Block{
		Base: ast.Base{Pos: s.tok(st).Pos},
	}

	for !s.tok(i).Is("}") {
		if s.tok(i).Kind == tokenize.EOF {
			return nil, i, NewUnexpectedError(s.tok(i).Pos, `"}"`, s.tok(i).Describe())
		}

		var x ast.Stmt

		x, i, err = s.statement(ctx, i)
		if err != nil {
			return nil, i, err
		}

		b.Stmts = append(b.Stmts, x)
	}

	return b, i + 1, nil
}

func (s *state) statement(ctx context.Context, st int) (x ast.Stmt, i int, err error) {
	t := s.tok(st)

	switch {
	case t.Is("{"):
		return s.block(ctx, st)
	case t.Is("if"):
		return s.ifStmt(ctx, st)
	case t.Is("while"):
		return s.whileStmt(ctx, st)
	case t.Is("for"):
		return s.forStmt(ctx, st)
	case t.Is("return"):
		v, i, err := s.expr(ctx, st+1)
		if err != nil {
			return nil, i, errors.Wrap(err, "return")
		}

		i, err = s.expect(i, ";")
		if err != nil {
			return nil, i, err
		}

		return &ast.Return{Base: ast.Base{Pos: t.Pos}, Value: v}, i, nil
	}

	e, i, err := s.expr(ctx, st)
	if err != nil {
		return nil, i, err
	}

	i, err = s.expect(i, ";")
	if err != nil {
		return nil, i, err
	}

	return &ast.ExprStmt{Base: ast.Base{Pos: t.Pos}, X: e}, i, nil
}

func (s *state) ifStmt(ctx context.Context, st int) (x *ast.If, i int, err error) {
	x = &ast.If{
		Base: ast.Base{Pos: s.tok(st).Pos},
	}

	x.Cond, i, err = s.cond(ctx, st+1)
	if err != nil {
		return nil, i, errors.Wrap(err, "if cond")
	}

	x.Then, i, err = s.statement(ctx, i)
	if err != nil {
		return nil, i, errors.Wrap(err, "then")
	}

	if !s.tok(i).Is("else") {
		return x, i, nil
	}

	x.Else, i, err = s.statement(ctx, i+1)
	if err != nil {
		return nil, i, errors.Wrap(err, "else")
	}

	return x, i, nil
}

func (s *state) whileStmt(ctx context.Context, st int) (x *ast.While, i int, err error) {
	x = &ast.While{
		Base: ast.Base{Pos: s.tok(st).Pos},
	}

	x.Cond, i, err = s.cond(ctx, st+1)
	if err != nil {
		return nil, i, errors.Wrap(err, "while cond")
	}

	x.Body, i, err = s.statement(ctx, i)
	if err != nil {
		return nil, i, errors.Wrap(err, "while body")
	}

	return x, i, nil
}

func (s *state) forStmt(ctx context.Context, st int) (x *ast.For, i int, err error) {
	x = &ast.For{
		Base: ast.Base{Pos: s.tok(st).Pos},
	}

	i, err = s.expect(st+1, "(")
	if err != nil {
		return nil, i, err
	}

	x.Init, i, err = s.optExpr(ctx, i, ";")
	if err != nil {
		return nil, i, errors.Wrap(err, "for init")
	}

	x.Cond, i, err = s.optExpr(ctx, i, ";")
	if err != nil {
		return nil, i, errors.Wrap(err, "for cond")
	}

	x.Inc, i, err = s.optExpr(ctx, i, ")")
	if err != nil {
		return nil, i, errors.Wrap(err, "for inc")
	}

	x.Body, i, err = s.statement(ctx, i)
	if err != nil {
		return nil, i, errors.Wrap(err, "for body")
	}

	return x, i, nil
}

// cond parses "(" expr ")".
func (s *state) cond(ctx context.Context, st int) (x ast.Expr, i int, err error) {
	i, err = s.expect(st, "(")
	if err != nil {
		return nil, i, err
	}

	x, i, err = s.expr(ctx, i)
	if err != nil {
		return nil, i, err
	}

	i, err = s.expect(i, ")")
	if err != nil {
		return nil, i, err
	}

	return x, i, nil
}

// optExpr parses expr? followed by end.
func (s *state) optExpr(ctx context.Context, st int, end string) (x ast.Expr, i int, err error) {
	i = st

	if !s.tok(i).Is(end) {
		x, i, err = s.expr(ctx, i)
		if err != nil {
			return nil, i, err
		}
	}

	i, err = s.expect(i, end)
	if err != nil {
		return nil, i, err
	}

	return x, i, nil
}
