package back

import (
	"context"

	"github.com/nikandfor/hacked/hfmt"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/slowc/compiler/asm"
	"github.com/slowlang/slowc/compiler/asm/amd64"
	"github.com/slowlang/slowc/compiler/ast"
	"github.com/slowlang/slowc/compiler/tp"
)

type (
	// Compiler generates x86-64 assembly using the stack machine model:
	// every expression leaves exactly one value pushed on the stack.
	// It's meant to be used for one compilation.
	Compiler struct {
		labels int
	}

	funContext struct {
		*ast.Func

		tr tlog.Span

		depth int // values pushed by the stack machine
	}
)

func New() *Compiler {
	return &Compiler{}
}

func (c *Compiler) CompileProg(ctx context.Context, b []byte, p *ast.Prog) (_ []byte, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "back: compile prog", "funcs", len(p.Funcs))
	defer tr.Finish("err", &err)

	b = append(b, "\t.intel_syntax noprefix\n"...)

	for _, f := range p.Funcs {
		b = append(b, '\n')

		b, err = c.compileFunc(ctx, b, f)
		if err != nil {
			return nil, errors.Wrap(err, "func %v", f.Name)
		}
	}

	if tr.If("asm") {
		tr.Printw("asm", "text", string(b))
	}

	return b, nil
}

func (c *Compiler) compileFunc(ctx context.Context, b []byte, fn *ast.Func) (_ []byte, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "compile func", "name", fn.Name, "params", len(fn.Params), "frame", fn.FrameSize())
	defer tr.Finish("err", &err)

	if len(fn.Params) > len(amd64.ArgRegs) {
		return nil, errors.New("too many params: %d", len(fn.Params))
	}

	f := &funContext{Func: fn, tr: tr}

	// quoted, otherwise names like rax or offset parse as operands
	b = hfmt.Appendf(b, "\t.globl\t\"%s\"\n\"%[1]s\":\n", fn.Name)
	b = append(b, "\tpush\trbp\n\tmov\trbp, rsp\n"...)

	if size := fn.FrameSize(); size != 0 {
		b = hfmt.Appendf(b, "\tsub\trsp, %d\n", size)
	}

	for i, p := range fn.Params {
		b = hfmt.Appendf(b, "\tmov\t[rbp%+d], %v\n", p.Offset, amd64.ArgRegs[i])
	}

	b, err = c.stmt(ctx, b, f, fn.Body)
	if err != nil {
		return nil, errors.Wrap(err, "body")
	}

	if n := len(fn.Body.Stmts); n == 0 || !isReturn(fn.Body.Stmts[n-1]) {
		b = epilogue(b)
	}

	return b, nil
}

func (c *Compiler) stmt(ctx context.Context, b []byte, f *funContext, x ast.Stmt) (_ []byte, err error) {
	depth := f.depth

	if f.tr.If("gen") {
		f.tr.Printw("stmt", "func", f.Name, "pos", x.Position(), "typ", tlog.NextAsType, x, "depth", depth)
	}

	switch x := x.(type) {
	case *ast.Block:
		for _, s := range x.Stmts {
			b, err = c.stmt(ctx, b, f, s)
			if err != nil {
				return nil, err
			}
		}
	case *ast.ExprStmt:
		b, err = c.expr(ctx, b, f, x.X)
		if err != nil {
			return nil, errors.Wrap(err, "expr stmt")
		}

		b = f.pop(b, amd64.RAX)
	case *ast.Return:
		b, err = c.expr(ctx, b, f, x.Value)
		if err != nil {
			return nil, errors.Wrap(err, "return value")
		}

		b = f.pop(b, amd64.Ret)
		b = epilogue(b)
	case *ast.If:
		b, err = c.ifStmt(ctx, b, f, x)
	case *ast.While:
		b, err = c.whileStmt(ctx, b, f, x)
	case *ast.For:
		b, err = c.forStmt(ctx, b, f, x)
	default:
		return nil, errors.New("unsupported stmt: %T", x)
	}

	if err != nil {
		return nil, err
	}

	if f.depth != depth {
		return nil, errors.New("stack depth %d after %T, want %d", f.depth, x, depth)
	}

	return b, nil
}

func (c *Compiler) ifStmt(ctx context.Context, b []byte, f *funContext, x *ast.If) (_ []byte, err error) {
	n := c.next()
	els := asm.Label{Name: "else", N: n}
	end := asm.Label{Name: "end", N: n}

	b, err = c.expr(ctx, b, f, x.Cond)
	if err != nil {
		return nil, errors.Wrap(err, "if cond")
	}

	b = f.pop(b, amd64.RAX)
	b = append(b, "\tcmp\trax, 0\n"...)

	if x.Else == nil {
		b = jump(b, "je", end)
	} else {
		b = jump(b, "je", els)
	}

	b, err = c.stmt(ctx, b, f, x.Then)
	if err != nil {
		return nil, errors.Wrap(err, "then")
	}

	if x.Else != nil {
		b = jump(b, "jmp", end)
		b = label(b, els)

		b, err = c.stmt(ctx, b, f, x.Else)
		if err != nil {
			return nil, errors.Wrap(err, "else")
		}
	}

	b = label(b, end)

	return b, nil
}

func (c *Compiler) whileStmt(ctx context.Context, b []byte, f *funContext, x *ast.While) (_ []byte, err error) {
	n := c.next()
	begin := asm.Label{Name: "begin", N: n}
	end := asm.Label{Name: "end", N: n}

	b = label(b, begin)

	b, err = c.expr(ctx, b, f, x.Cond)
	if err != nil {
		return nil, errors.Wrap(err, "while cond")
	}

	b = f.pop(b, amd64.RAX)
	b = append(b, "\tcmp\trax, 0\n"...)
	b = jump(b, "je", end)

	b, err = c.stmt(ctx, b, f, x.Body)
	if err != nil {
		return nil, errors.Wrap(err, "while body")
	}

	b = jump(b, "jmp", begin)
	b = label(b, end)

	return b, nil
}

func (c *Compiler) forStmt(ctx context.Context, b []byte, f *funContext, x *ast.For) (_ []byte, err error) {
	n := c.next()
	begin := asm.Label{Name: "begin", N: n}
	end := asm.Label{Name: "end", N: n}

	if x.Init != nil {
		b, err = c.expr(ctx, b, f, x.Init)
		if err != nil {
			return nil, errors.Wrap(err, "for init")
		}

		b = f.pop(b, amd64.RAX)
	}

	b = label(b, begin)

	if x.Cond != nil {
		b, err = c.expr(ctx, b, f, x.Cond)
		if err != nil {
			return nil, errors.Wrap(err, "for cond")
		}

		b = f.pop(b, amd64.RAX)
		b = append(b, "\tcmp\trax, 0\n"...)
		b = jump(b, "je", end)
	}

	b, err = c.stmt(ctx, b, f, x.Body)
	if err != nil {
		return nil, errors.Wrap(err, "for body")
	}

	if x.Inc != nil {
		b, err = c.expr(ctx, b, f, x.Inc)
		if err != nil {
			return nil, errors.Wrap(err, "for inc")
		}

		b = f.pop(b, amd64.RAX)
	}

	b = jump(b, "jmp", begin)
	b = label(b, end)

	return b, nil
}

func (c *Compiler) expr(ctx context.Context, b []byte, f *funContext, x ast.Expr) (_ []byte, err error) {
	switch x := x.(type) {
	case *ast.Num:
		b = hfmt.Appendf(b, "\tpush\t%d\n", x.Value)
		f.depth++
	case *ast.LVar:
		b, err = c.addr(ctx, b, f, x)
		if err != nil {
			return nil, err
		}

		b = f.load(b)
	case *ast.Deref:
		b, err = c.expr(ctx, b, f, x.X)
		if err != nil {
			return nil, errors.Wrap(err, "deref")
		}

		b = f.load(b)
	case *ast.Addr:
		b, err = c.addr(ctx, b, f, x.X)
		if err != nil {
			return nil, errors.Wrap(err, "addr")
		}
	case *ast.Assign:
		b, err = c.addr(ctx, b, f, x.Left)
		if err != nil {
			return nil, errors.Wrap(err, "assign lhs")
		}

		b, err = c.expr(ctx, b, f, x.Right)
		if err != nil {
			return nil, errors.Wrap(err, "assign rhs")
		}

		b = f.pop(b, amd64.RDI)
		b = f.pop(b, amd64.RAX)
		b = append(b, "\tmov\t[rax], rdi\n"...)
		b = f.push(b, amd64.RDI)
	case *ast.BinOp:
		b, err = c.binop(ctx, b, f, x)
	case *ast.Call:
		b, err = c.call(ctx, b, f, x)
	default:
		return nil, errors.New("unsupported expr: %T", x)
	}

	if err != nil {
		return nil, err
	}

	return b, nil
}

// addr pushes the address of x.
func (c *Compiler) addr(ctx context.Context, b []byte, f *funContext, x ast.Expr) (_ []byte, err error) {
	switch x := x.(type) {
	case *ast.LVar:
		b = hfmt.Appendf(b, "\tlea\trax, [rbp%+d]\n", x.Local.Offset)
		b = f.push(b, amd64.RAX)
	case *ast.Deref:
		b, err = c.expr(ctx, b, f, x.X)
		if err != nil {
			return nil, errors.Wrap(err, "deref")
		}
	default:
		return nil, errors.New("not an lvalue: %T", x)
	}

	return b, nil
}

func (c *Compiler) binop(ctx context.Context, b []byte, f *funContext, x *ast.BinOp) (_ []byte, err error) {
	b, err = c.expr(ctx, b, f, x.Left)
	if err != nil {
		return nil, errors.Wrap(err, "%v x", x.Op)
	}

	b, err = c.expr(ctx, b, f, x.Right)
	if err != nil {
		return nil, errors.Wrap(err, "%v y", x.Op)
	}

	b = f.pop(b, amd64.RDI)
	b = f.pop(b, amd64.RAX)

	if x.Op == ast.Add || x.Op == ast.Sub {
		lt, rt := x.Left.Type(), x.Right.Type()

		if p, ok := tp.Pointee(lt); ok && tp.IsInt(rt) {
			b = hfmt.Appendf(b, "\timul\trdi, %d\n", p.Size())
		} else if p, ok := tp.Pointee(rt); ok && tp.IsInt(lt) {
			b = hfmt.Appendf(b, "\timul\trax, %d\n", p.Size())
		}
	}

	switch x.Op {
	case ast.Add:
		b = append(b, "\tadd\trax, rdi\n"...)
	case ast.Sub:
		b = append(b, "\tsub\trax, rdi\n"...)
	case ast.Mul:
		b = append(b, "\timul\trax, rdi\n"...)
	case ast.Div:
		b = append(b, "\tcqo\n\tidiv\trdi\n"...)
	case ast.Eq, ast.Ne, ast.Lt, ast.Le:
		b = append(b, "\tcmp\trax, rdi\n"...)
		b = hfmt.Appendf(b, "\t%s\tal\n", setcc[x.Op])
		b = append(b, "\tmovzb\trax, al\n"...)
	default:
		return nil, errors.New("unsupported op: %v", x.Op)
	}

	b = f.push(b, amd64.RAX)

	return b, nil
}

var setcc = map[ast.Op]string{
	ast.Eq: "sete",
	ast.Ne: "setne",
	ast.Lt: "setl",
	ast.Le: "setle",
}

func (c *Compiler) call(ctx context.Context, b []byte, f *funContext, x *ast.Call) (_ []byte, err error) {
	if len(x.Args) > len(amd64.ArgRegs) {
		return nil, errors.New("call %v: too many args: %d", x.Name, len(x.Args))
	}

	for i, a := range x.Args {
		b, err = c.expr(ctx, b, f, a)
		if err != nil {
			return nil, errors.Wrap(err, "call %v: arg %d", x.Name, i)
		}
	}

	for i := len(x.Args) - 1; i >= 0; i-- {
		b = f.pop(b, amd64.ArgRegs[i])
	}

	// rsp is 16 byte aligned right after the prologue, each push moves it by a word
	pad := f.depth*tp.Word%amd64.StackAlign != 0

	if pad {
		b = append(b, "\tsub\trsp, 8\n"...)
	}

	b = append(b, "\tmov\trax, 0\n"...)
	b = hfmt.Appendf(b, "\tcall\t\"%s\"\n", x.Name)

	if pad {
		b = append(b, "\tadd\trsp, 8\n"...)
	}

	b = f.push(b, amd64.Ret)

	return b, nil
}

func (c *Compiler) next() (n int) {
	n = c.labels
	c.labels++

	return n
}

func (f *funContext) push(b []byte, r amd64.Reg) []byte {
	f.depth++

	return hfmt.Appendf(b, "\tpush\t%v\n", r)
}

func (f *funContext) pop(b []byte, r amd64.Reg) []byte {
	f.depth--

	return hfmt.Appendf(b, "\tpop\t%v\n", r)
}

// load replaces the address on top of the stack with the word it points to.
func (f *funContext) load(b []byte) []byte {
	b = f.pop(b, amd64.RAX)
	b = append(b, "\tmov\trax, [rax]\n"...)

	return f.push(b, amd64.RAX)
}

func isReturn(x ast.Stmt) bool {
	_, ok := x.(*ast.Return)
	return ok
}

func epilogue(b []byte) []byte {
	return append(b, "\tmov\trsp, rbp\n\tpop\trbp\n\tret\n"...)
}

func label(b []byte, l asm.Label) []byte {
	b = l.Append(b)

	return append(b, ":\n"...)
}

func jump(b []byte, op string, l asm.Label) []byte {
	b = hfmt.Appendf(b, "\t%s\t", op)
	b = l.Append(b)

	return append(b, '\n')
}
