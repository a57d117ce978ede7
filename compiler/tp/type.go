package tp

import (
	"tlog.app/go/tlog/tlwire"
)

type (
	Type interface {
		Size() int
		String() string
	}

	Int struct{}

	Ptr struct {
		X Type
	}

	Func struct {
		In  []Type
		Out Type // nil if the function returns nothing
	}
)

// Word is the size of every value the language can hold.
const Word = 8

func (x Int) Size() int { return Word }

func (x Ptr) Size() int { return Word }

func (x Func) Size() int { return 0 }

func (x Int) String() string { return "int" }

func (x Ptr) String() string {
	if x.X == nil {
		return "*?"
	}

	return "*" + x.X.String()
}

func (x Func) String() string {
	s := "func("

	for i, t := range x.In {
		if i != 0 {
			s += ", "
		}

		s += t.String()
	}

	s += ")"

	if x.Out != nil {
		s += " " + x.Out.String()
	}

	return s
}

func (x Int) TlogAppend(b []byte) []byte  { return appendType(b, x) }
func (x Ptr) TlogAppend(b []byte) []byte  { return appendType(b, x) }
func (x Func) TlogAppend(b []byte) []byte { return appendType(b, x) }

func appendType(b []byte, x Type) []byte {
	var e tlwire.Encoder

	return e.AppendString(b, x.String())
}

func PointerTo(x Type) Ptr {
	return Ptr{X: x}
}

func IsInt(x Type) bool {
	_, ok := x.(Int)
	return ok
}

func IsPtr(x Type) bool {
	_, ok := x.(Ptr)
	return ok
}

// Pointee returns the type x points to.
func Pointee(x Type) (Type, bool) {
	p, ok := x.(Ptr)
	if !ok {
		return nil, false
	}

	return p.X, true
}

// Equal reports whether x and y have the same shape.
func Equal(x, y Type) bool {
	switch x := x.(type) {
	case Int:
		return IsInt(y)
	case Ptr:
		y, ok := y.(Ptr)
		return ok && Equal(x.X, y.X)
	case Func:
		y, ok := y.(Func)
		if !ok || len(x.In) != len(y.In) {
			return false
		}

		for i := range x.In {
			if !Equal(x.In[i], y.In[i]) {
				return false
			}
		}

		if x.Out == nil || y.Out == nil {
			return x.Out == nil && y.Out == nil
		}

		return Equal(x.Out, y.Out)
	default:
		return false
	}
}

// Compatible reports whether an operator may combine x and y:
// both Int, a Ptr with an Int, or two pointers of the same shape.
func Compatible(x, y Type) bool {
	switch {
	case IsInt(x) && IsInt(y):
		return true
	case IsPtr(x) && IsInt(y), IsInt(x) && IsPtr(y):
		return true
	case IsPtr(x) && IsPtr(y):
		return Equal(x, y)
	default:
		return false
	}
}
