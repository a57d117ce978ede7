package ast

import (
	"github.com/slowlang/slowc/compiler/tp"
)

// Lookup finds a local variable by name.
func (f *Func) Lookup(name string) *Local {
	for _, l := range f.Locals {
		if l.Name == name {
			return l
		}
	}

	return nil
}

// Declare allocates the next stack slot for name.
// The caller makes sure name is not declared yet.
func (f *Func) Declare(name string, t tp.Type) *Local {
	off := -tp.Word

	if n := len(f.Locals); n != 0 {
		off = f.Locals[n-1].Offset - tp.Word
	}

	l := &Local{
		Name:   name,
		Offset: off,
		Type:   t,
	}

	f.Locals = append(f.Locals, l)

	return l
}

// FrameSize is the stack space locals need, kept 16 byte aligned.
func (f *Func) FrameSize() int {
	size := 0

	for _, l := range f.Locals {
		if -l.Offset > size {
			size = -l.Offset
		}
	}

	return AlignTo(size, 16)
}

// Signature is the function type of f.
func (f *Func) Signature() tp.Func {
	t := tp.Func{
		Out: tp.Int{},
	}

	for _, p := range f.Params {
		t.In = append(t.In, p.Type)
	}

	return t
}

func AlignTo(n, align int) int {
	return (n + align - 1) / align * align
}
