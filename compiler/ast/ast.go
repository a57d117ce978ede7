package ast

import (
	"github.com/slowlang/slowc/compiler/tp"
)

type (
	Node interface {
		Position() int
	}

	Expr interface {
		Node
		Type() tp.Type
	}

	Stmt interface {
		Node
	}

	Base struct {
		Pos int
	}

	Prog struct {
		Funcs []*Func
	}

	Func struct {
		Base `tlog:",embed"`

		Name   string
		Params []*Local
		Locals []*Local // params first, then in order of first mention
		Body   *Block
	}

	Local struct {
		Name   string
		Offset int
		Type   tp.Type // nil until the first assignment resolves it
	}

	Block struct {
		Base `tlog:",embed"`

		Stmts []Stmt
	}

	ExprStmt struct {
		Base `tlog:",embed"`

		X Expr
	}

	Return struct {
		Base `tlog:",embed"`

		Value Expr
	}

	If struct {
		Base `tlog:",embed"`

		Cond Expr
		Then Stmt
		Else Stmt // optional
	}

	While struct {
		Base `tlog:",embed"`

		Cond Expr
		Body Stmt
	}

	For struct {
		Base `tlog:",embed"`

		Init Expr // optional
		Cond Expr // optional, true if nil
		Inc  Expr // optional
		Body Stmt
	}

	Num struct {
		Base `tlog:",embed"`

		Value int64
	}

	LVar struct {
		Base `tlog:",embed"`

		Local *Local
	}

	BinOp struct {
		Base `tlog:",embed"`

		Op    Op
		Left  Expr
		Right Expr

		T tp.Type
	}

	Assign struct {
		Base `tlog:",embed"`

		Left  Expr
		Right Expr

		T tp.Type
	}

	Addr struct {
		Base `tlog:",embed"`

		X Expr

		T tp.Type
	}

	Deref struct {
		Base `tlog:",embed"`

		X Expr

		T tp.Type
	}

	Call struct {
		Base `tlog:",embed"`

		Name string
		Args []Expr

		T tp.Type
	}

	Op int
)

const (
	Add Op = iota
	Sub
	Mul
	Div
	Eq
	Ne
	Lt
	Le
)

// MaxArgs is how many arguments fit in registers.
const MaxArgs = 6

func (b Base) Position() int { return b.Pos }

func (x *Num) Type() tp.Type    { return tp.Int{} }
func (x *LVar) Type() tp.Type   { return x.Local.Type }
func (x *BinOp) Type() tp.Type  { return x.T }
func (x *Assign) Type() tp.Type { return x.T }
func (x *Addr) Type() tp.Type   { return x.T }
func (x *Deref) Type() tp.Type  { return x.T }
func (x *Call) Type() tp.Type   { return x.T }

func (op Op) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Eq:
		return "=="
	case Ne:
		return "!="
	case Lt:
		return "<"
	case Le:
		return "<="
	default:
		return "?"
	}
}

// IsCmp reports whether op yields a 0/1 truth value.
func (op Op) IsCmp() bool {
	return op >= Eq
}

// Addressable reports whether x denotes a memory location.
func Addressable(x Expr) bool {
	switch x.(type) {
	case *LVar, *Deref:
		return true
	default:
		return false
	}
}
