package parse

import (
	"context"

	"tlog.app/go/errors"

	"github.com/slowlang/slowc/compiler/ast"
	"github.com/slowlang/slowc/compiler/tokenize"
	"github.com/slowlang/slowc/compiler/tp"
)

func (s *state) expr(ctx context.Context, st int) (x ast.Expr, i int, err error) {
	return s.assign(ctx, st)
}

func (s *state) assign(ctx context.Context, st int) (x ast.Expr, i int, err error) {
	x, i, err = s.equality(ctx, st)
	if err != nil {
		return nil, i, err
	}

	eq := s.tok(i)
	if !eq.Is("=") {
		return x, i, nil
	}

	r, i, err := s.assign(ctx, i+1)
	if err != nil {
		return nil, i, errors.Wrap(err, "assignment rhs")
	}

	if !ast.Addressable(x) {
		return nil, i, NewNotAddressableError(x.Position())
	}

	if v, ok := x.(*ast.LVar); ok && v.Local.Type == nil {
		v.Local.Type = r.Type()
	} else if !tp.Compatible(x.Type(), r.Type()) {
		return nil, i, NewMismatchError(eq.Pos, eq.Text, x.Type(), r.Type())
	}

	return &ast.Assign{
		Base:  ast.Base{Pos: eq.Pos},
		Left:  x,
		Right: r,
		T:     x.Type(),
	}, i, nil
}

func (s *state) equality(ctx context.Context, st int) (x ast.Expr, i int, err error) {
	x, i, err = s.relational(ctx, st)
	if err != nil {
		return nil, i, err
	}

	for {
		t := s.tok(i)

		var op ast.Op

		switch {
		case t.Is("=="):
			op = ast.Eq
		case t.Is("!="):
			op = ast.Ne
		default:
			return x, i, nil
		}

		var r ast.Expr

		r, i, err = s.relational(ctx, i+1)
		if err != nil {
			return nil, i, err
		}

		x, err = s.binop(op, t, x, r)
		if err != nil {
			return nil, i, err
		}
	}
}

func (s *state) relational(ctx context.Context, st int) (x ast.Expr, i int, err error) {
	x, i, err = s.add(ctx, st)
	if err != nil {
		return nil, i, err
	}

	for {
		t := s.tok(i)

		var op ast.Op
		swap := false

		switch {
		case t.Is("<"):
			op = ast.Lt
		case t.Is("<="):
			op = ast.Le
		case t.Is(">"):
			op, swap = ast.Lt, true
		case t.Is(">="):
			op, swap = ast.Le, true
		default:
			return x, i, nil
		}

		var r ast.Expr

		r, i, err = s.add(ctx, i+1)
		if err != nil {
			return nil, i, err
		}

		x, err = s.binop(op, t, x, r)
		if err != nil {
			return nil, i, err
		}

		if swap { // a > b is b < a
			b := x.(*ast.BinOp)
			b.Left, b.Right = b.Right, b.Left
		}
	}
}

func (s *state) add(ctx context.Context, st int) (x ast.Expr, i int, err error) {
	x, i, err = s.mul(ctx, st)
	if err != nil {
		return nil, i, err
	}

	for {
		t := s.tok(i)

		var op ast.Op

		switch {
		case t.Is("+"):
			op = ast.Add
		case t.Is("-"):
			op = ast.Sub
		default:
			return x, i, nil
		}

		var r ast.Expr

		r, i, err = s.mul(ctx, i+1)
		if err != nil {
			return nil, i, err
		}

		x, err = s.binop(op, t, x, r)
		if err != nil {
			return nil, i, err
		}
	}
}

func (s *state) mul(ctx context.Context, st int) (x ast.Expr, i int, err error) {
	x, i, err = s.unary(ctx, st)
	if err != nil {
		return nil, i, err
	}

	for {
		t := s.tok(i)

		var op ast.Op

		switch {
		case t.Is("*"):
			op = ast.Mul
		case t.Is("/"):
			op = ast.Div
		default:
			return x, i, nil
		}

		var r ast.Expr

		r, i, err = s.unary(ctx, i+1)
		if err != nil {
			return nil, i, err
		}

		x, err = s.binop(op, t, x, r)
		if err != nil {
			return nil, i, err
		}
	}
}

func (s *state) unary(ctx context.Context, st int) (x ast.Expr, i int, err error) {
	t := s.tok(st)

	switch {
	case t.Is("+"):
		return s.unary(ctx, st+1)
	case t.Is("-"):
		x, i, err = s.unary(ctx, st+1)
		if err != nil {
			return nil, i, err
		}

		zero := &ast.Num{Base: ast.Base{Pos: t.Pos}}

		x, err = s.binop(ast.Sub, t, zero, x)
		if err != nil {
			return nil, i, err
		}

		return x, i, nil
	case t.Is("*"):
		x, i, err = s.unary(ctx, st+1)
		if err != nil {
			return nil, i, err
		}

		if err = resolved(x); err != nil {
			return nil, i, err
		}

		pt, ok := tp.Pointee(x.Type())
		if !ok {
			return nil, i, NewNotAPointerError(t.Pos, x.Type())
		}

		return &ast.Deref{Base: ast.Base{Pos: t.Pos}, X: x, T: pt}, i, nil
	case t.Is("&"):
		x, i, err = s.unary(ctx, st+1)
		if err != nil {
			return nil, i, err
		}

		if err = resolved(x); err != nil {
			return nil, i, err
		}

		if !ast.Addressable(x) {
			return nil, i, NewNotAddressableError(x.Position())
		}

		return &ast.Addr{Base: ast.Base{Pos: t.Pos}, X: x, T: tp.PointerTo(x.Type())}, i, nil
	}

	return s.primary(ctx, st)
}

func (s *state) primary(ctx context.Context, st int) (x ast.Expr, i int, err error) {
	t := s.tok(st)

	switch {
	case t.Kind == tokenize.Num:
		return &ast.Num{Base: ast.Base{Pos: t.Pos}, Value: t.Val}, st + 1, nil
	case t.Is("("):
		x, i, err = s.expr(ctx, st+1)
		if err != nil {
			return nil, i, err
		}

		i, err = s.expect(i, ")")
		if err != nil {
			return nil, i, err
		}

		return x, i, nil
	case t.Kind == tokenize.Ident && s.tok(st+1).Is("("):
		return s.call(ctx, st)
	case t.Kind == tokenize.Ident:
		target := s.tok(st + 1).Is("=")
		l := s.fn.Lookup(t.Text)

		switch {
		case l != nil && (l.Type != nil || target):
		case l == nil && target:
			l = s.fn.Declare(t.Text, nil)
		default:
			return nil, st, NewUndefinedError(t.Pos, t.Text)
		}

		return &ast.LVar{Base: ast.Base{Pos: t.Pos}, Local: l}, st + 1, nil
	}

	return nil, st, NewUnexpectedError(t.Pos, "expression", t.Describe())
}

func (s *state) call(ctx context.Context, st int) (x *ast.Call, i int, err error) {
	t := s.tok(st)

	x = &ast.Call{
		Base: ast.Base{Pos: t.Pos},
		Name: t.Text,
		T:    tp.Int{},
	}

	i = st + 2 // name (

	if !s.tok(i).Is(")") {
		for {
			if len(x.Args) == ast.MaxArgs {
				return nil, i, NewTooManyArgsError(s.tok(i).Pos, x.Name)
			}

			var a ast.Expr

			a, i, err = s.assign(ctx, i)
			if err != nil {
				return nil, i, errors.Wrap(err, "arg %d", len(x.Args))
			}

			x.Args = append(x.Args, a)

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

	if f, ok := s.funcs[x.Name]; ok {
		if len(f.Params) != len(x.Args) {
			return nil, i, NewArityError(t.Pos, x.Name, len(f.Params), len(x.Args))
		}

		x.T = f.Signature().Out
	}

	return x, i, nil
}

// binop resolves the type of l op r.
func (s *state) binop(op ast.Op, t tokenize.Token, l, r ast.Expr) (x ast.Expr, err error) {
	if err = resolved(l); err != nil {
		return nil, err
	}

	if err = resolved(r); err != nil {
		return nil, err
	}

	lt, rt := l.Type(), r.Type()

	var typ tp.Type

	switch {
	case op.IsCmp():
		if tp.IsInt(lt) && tp.IsInt(rt) || tp.IsPtr(lt) && tp.Equal(lt, rt) {
			typ = tp.Int{}
		}
	case tp.IsInt(lt) && tp.IsInt(rt):
		typ = tp.Int{}
	case (op == ast.Add || op == ast.Sub) && tp.IsPtr(lt) && tp.IsInt(rt):
		typ = lt
	case op == ast.Add && tp.IsInt(lt) && tp.IsPtr(rt):
		typ = rt
	}

	if typ == nil {
		return nil, NewMismatchError(t.Pos, t.Text, lt, rt)
	}

	return &ast.BinOp{
		Base:  ast.Base{Pos: t.Pos},
		Op:    op,
		Left:  l,
		Right: r,
		T:     typ,
	}, nil
}

// resolved fails on a variable which is named but not assigned yet.
func resolved(x ast.Expr) error {
	v, ok := x.(*ast.LVar)
	if !ok || v.Local.Type != nil {
		return nil
	}

	return NewUndefinedError(v.Pos, v.Local.Name)
}
