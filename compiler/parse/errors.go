package parse

import (
	"fmt"

	"github.com/slowlang/slowc/compiler/ast"
	"github.com/slowlang/slowc/compiler/diag"
	"github.com/slowlang/slowc/compiler/tp"
)

type (
	UnexpectedError struct {
		Pos  int
		Want string
		Got  string
	}

	UndefinedError struct {
		Pos  int
		Name string
	}

	RedefinedError struct {
		Pos  int
		What string
		Name string
	}

	TooManyArgsError struct {
		Pos  int
		Name string
	}

	ArityError struct {
		Pos  int
		Name string
		Want int
		Got  int
	}

	NotAPointerError struct {
		Pos int
		T   tp.Type
	}

	NotAddressableError struct {
		Pos int
	}

	MismatchError struct {
		Pos int
		Op  string
		X   tp.Type
		Y   tp.Type
	}
)

var (
	_ diag.Error = UnexpectedError{}
	_ diag.Error = UndefinedError{}
	_ diag.Error = RedefinedError{}
	_ diag.Error = TooManyArgsError{}
	_ diag.Error = ArityError{}
	_ diag.Error = NotAPointerError{}
	_ diag.Error = NotAddressableError{}
	_ diag.Error = MismatchError{}
)

func NewUnexpectedError(pos int, want, got string) UnexpectedError {
	return UnexpectedError{
		Pos:  pos,
		Want: want,
		Got:  got,
	}
}

func NewUndefinedError(pos int, name string) UndefinedError {
	return UndefinedError{
		Pos:  pos,
		Name: name,
	}
}

func NewRedefinedError(pos int, what, name string) RedefinedError {
	return RedefinedError{
		Pos:  pos,
		What: what,
		Name: name,
	}
}

func NewTooManyArgsError(pos int, name string) TooManyArgsError {
	return TooManyArgsError{
		Pos:  pos,
		Name: name,
	}
}

func NewArityError(pos int, name string, want, got int) ArityError {
	return ArityError{
		Pos:  pos,
		Name: name,
		Want: want,
		Got:  got,
	}
}

func NewNotAPointerError(pos int, t tp.Type) NotAPointerError {
	return NotAPointerError{
		Pos: pos,
		T:   t,
	}
}

func NewNotAddressableError(pos int) NotAddressableError {
	return NotAddressableError{
		Pos: pos,
	}
}

func NewMismatchError(pos int, op string, x, y tp.Type) MismatchError {
	return MismatchError{
		Pos: pos,
		Op:  op,
		X:   x,
		Y:   y,
	}
}

func (e UnexpectedError) Error() string {
	return fmt.Sprintf("expected %s, got %s", e.Want, e.Got)
}

func (e UndefinedError) Error() string {
	return fmt.Sprintf("undefined variable: %s", e.Name)
}

func (e RedefinedError) Error() string {
	return fmt.Sprintf("%s redefined: %s", e.What, e.Name)
}

func (e TooManyArgsError) Error() string {
	return fmt.Sprintf("too many arguments: %s takes at most %d", e.Name, ast.MaxArgs)
}

func (e ArityError) Error() string {
	return fmt.Sprintf("wrong number of arguments to %s: want %d, got %d", e.Name, e.Want, e.Got)
}

func (e NotAPointerError) Error() string {
	return fmt.Sprintf("not a pointer: %v", e.T)
}

func (e NotAddressableError) Error() string {
	return "not an lvalue"
}

func (e MismatchError) Error() string {
	return fmt.Sprintf("invalid operands to %s: %v and %v", e.Op, e.X, e.Y)
}

func (e UnexpectedError) Position() int     { return e.Pos }
func (e UndefinedError) Position() int      { return e.Pos }
func (e RedefinedError) Position() int      { return e.Pos }
func (e TooManyArgsError) Position() int    { return e.Pos }
func (e ArityError) Position() int          { return e.Pos }
func (e NotAPointerError) Position() int    { return e.Pos }
func (e NotAddressableError) Position() int { return e.Pos }
func (e MismatchError) Position() int       { return e.Pos }
