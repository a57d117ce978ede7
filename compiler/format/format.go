package format

import (
	"context"

	"github.com/nikandfor/hacked/hfmt"
	"tlog.app/go/errors"

	"github.com/slowlang/slowc/compiler/ast"
)

// Format appends a readable dump of the typed tree.
// Expressions are fully parenthesized and annotated with their types.
func Format(ctx context.Context, b []byte, x any) ([]byte, error) {
	return format(ctx, b, x, 0)
}

func format(ctx context.Context, b []byte, x any, d int) ([]byte, error) {
	switch x := x.(type) {
	case *ast.Prog:
		return formatProg(ctx, b, x, d)
	case *ast.Func:
		return formatFunc(ctx, b, x, d)
	case ast.Stmt:
		return formatStmt(ctx, b, x, d)
	default:
		return nil, errors.New("unsupported type: %T", x)
	}
}

func formatProg(ctx context.Context, b []byte, x *ast.Prog, d int) (_ []byte, err error) {
	for i, f := range x.Funcs {
		if i != 0 {
			b = append(b, '\n')
		}

		b, err = formatFunc(ctx, b, f, d)
		if err != nil {
			return nil, errors.Wrap(err, "func %v", f.Name)
		}
	}

	return b, nil
}

func formatFunc(ctx context.Context, b []byte, x *ast.Func, d int) (_ []byte, err error) {
	b = app(b, d, "%v(", x.Name)

	for i, a := range x.Params {
		if i != 0 {
			b = append(b, ", "...)
		}

		b = app(b, 0, "%v", a.Name)
	}

	b = app(b, 0, ") frame %d\n", x.FrameSize())

	for _, l := range x.Locals {
		b = app(b, d, "// %v %v [rbp%+d]\n", l.Name, l.Type, l.Offset)
	}

	b, err = formatStmt(ctx, b, x.Body, d)
	if err != nil {
		return nil, errors.Wrap(err, "body")
	}

	return b, nil
}

func formatStmt(ctx context.Context, b []byte, x ast.Stmt, d int) (_ []byte, err error) {
	switch x := x.(type) {
	case *ast.Block:
		b = app(b, d, "{\n")

		for _, s := range x.Stmts {
			b, err = formatStmt(ctx, b, s, d+1)
			if err != nil {
				return nil, err
			}
		}

		b = app(b, d, "}\n")
	case *ast.ExprStmt:
		b = app(b, d, "")

		b, err = formatExpr(ctx, b, x.X)
		if err != nil {
			return nil, errors.Wrap(err, "expr")
		}

		b = append(b, ";\n"...)
	case *ast.Return:
		b = app(b, d, "return ")

		b, err = formatExpr(ctx, b, x.Value)
		if err != nil {
			return nil, errors.Wrap(err, "return")
		}

		b = append(b, ";\n"...)
	case *ast.If:
		b = app(b, d, "if ")

		b, err = formatExpr(ctx, b, x.Cond)
		if err != nil {
			return nil, errors.Wrap(err, "cond")
		}

		b = append(b, '\n')

		b, err = formatStmt(ctx, b, x.Then, d+1)
		if err != nil {
			return nil, errors.Wrap(err, "then")
		}

		if x.Else != nil {
			b = app(b, d, "else\n")

			b, err = formatStmt(ctx, b, x.Else, d+1)
			if err != nil {
				return nil, errors.Wrap(err, "else")
			}
		}
	case *ast.While:
		b = app(b, d, "while ")

		b, err = formatExpr(ctx, b, x.Cond)
		if err != nil {
			return nil, errors.Wrap(err, "cond")
		}

		b = append(b, '\n')

		b, err = formatStmt(ctx, b, x.Body, d+1)
		if err != nil {
			return nil, errors.Wrap(err, "body")
		}
	case *ast.For:
		b = app(b, d, "for ")

		for i, e := range []ast.Expr{x.Init, x.Cond, x.Inc} {
			if i != 0 {
				b = append(b, "; "...)
			}

			if e == nil {
				continue
			}

			b, err = formatExpr(ctx, b, e)
			if err != nil {
				return nil, errors.Wrap(err, "for clause %d", i)
			}
		}

		b = append(b, '\n')

		b, err = formatStmt(ctx, b, x.Body, d+1)
		if err != nil {
			return nil, errors.Wrap(err, "body")
		}
	default:
		return nil, errors.New("unsupported stmt: %T", x)
	}

	return b, nil
}

func formatExpr(ctx context.Context, b []byte, x ast.Expr) (_ []byte, err error) {
	switch x := x.(type) {
	case *ast.Num:
		b = hfmt.Appendf(b, "%d", x.Value)
	case *ast.LVar:
		b = append(b, x.Local.Name...)
	case *ast.Addr:
		b = append(b, "(&"...)

		b, err = formatExpr(ctx, b, x.X)
		if err != nil {
			return nil, errors.Wrap(err, "addr")
		}

		b = append(b, ')')
	case *ast.Deref:
		b = append(b, "(*"...)

		b, err = formatExpr(ctx, b, x.X)
		if err != nil {
			return nil, errors.Wrap(err, "deref")
		}

		b = append(b, ')')
	case *ast.Assign:
		b = append(b, '(')

		b, err = formatExpr(ctx, b, x.Left)
		if err != nil {
			return nil, errors.Wrap(err, "lhs")
		}

		b = append(b, " = "...)

		b, err = formatExpr(ctx, b, x.Right)
		if err != nil {
			return nil, errors.Wrap(err, "rhs")
		}

		b = append(b, ')')
	case *ast.BinOp:
		b = append(b, '(')

		b, err = formatExpr(ctx, b, x.Left)
		if err != nil {
			return nil, errors.Wrap(err, "left")
		}

		b = hfmt.Appendf(b, " %v ", x.Op)

		b, err = formatExpr(ctx, b, x.Right)
		if err != nil {
			return nil, errors.Wrap(err, "right")
		}

		b = append(b, ')')
	case *ast.Call:
		b = hfmt.Appendf(b, "%v(", x.Name)

		for i, a := range x.Args {
			if i != 0 {
				b = append(b, ", "...)
			}

			b, err = formatExpr(ctx, b, a)
			if err != nil {
				return nil, errors.Wrap(err, "arg %d", i)
			}
		}

		b = append(b, ')')
	default:
		return nil, errors.New("unsupported expr: %T", x)
	}

	if _, ok := x.(*ast.Num); !ok {
		b = hfmt.Appendf(b, ":%v", x.Type())
	}

	return b, nil
}

func app(b []byte, d int, f string, args ...any) []byte {
	const tabs = "\t\t\t\t\t\t\t\t\t\t\t\t\t\t\t"
	b = append(b, tabs[:d]...)
	b = hfmt.Appendf(b, f, args...)
	return b
}
