package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slowlang/slowc/compiler/tp"
)

func TestDeclare(t *testing.T) {
	f := &Func{Name: "f"}

	a := f.Declare("a", tp.Int{})
	b := f.Declare("b", nil)
	c := f.Declare("c", tp.PointerTo(tp.Int{}))

	assert.Equal(t, -8, a.Offset)
	assert.Equal(t, -16, b.Offset)
	assert.Equal(t, -24, c.Offset)

	assert.Same(t, b, f.Lookup("b"))
	assert.Same(t, b, f.Lookup("b"))
	assert.Nil(t, f.Lookup("d"))

	assert.Equal(t, 32, f.FrameSize())
}

func TestFrameSize(t *testing.T) {
	f := &Func{}
	assert.Equal(t, 0, f.FrameSize())

	f.Declare("a", tp.Int{})
	assert.Equal(t, 16, f.FrameSize())

	f.Declare("b", tp.Int{})
	assert.Equal(t, 16, f.FrameSize())
}

func TestTypes(t *testing.T) {
	l := &Local{Name: "x", Offset: -8}
	v := &LVar{Local: l}

	assert.Nil(t, v.Type())

	l.Type = tp.PointerTo(tp.Int{})
	assert.Equal(t, tp.PointerTo(tp.Int{}), v.Type())

	assert.Equal(t, tp.Int{}, (&Num{Value: 1}).Type())

	assert.True(t, Addressable(v))
	assert.True(t, Addressable(&Deref{X: v}))
	assert.False(t, Addressable(&Num{}))
	assert.False(t, Addressable(&Addr{X: v}))
}

func TestOp(t *testing.T) {
	assert.False(t, Add.IsCmp())
	assert.False(t, Div.IsCmp())
	assert.True(t, Eq.IsCmp())
	assert.True(t, Le.IsCmp())
	assert.Equal(t, "<=", Le.String())
}
