package tp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompatible(t *testing.T) {
	pi := PointerTo(Int{})
	ppi := PointerTo(pi)

	assert.True(t, Compatible(Int{}, Int{}))
	assert.True(t, Compatible(pi, Int{}))
	assert.True(t, Compatible(Int{}, ppi))
	assert.True(t, Compatible(pi, pi))
	assert.True(t, Compatible(ppi, PointerTo(PointerTo(Int{}))))

	assert.False(t, Compatible(pi, ppi))
	assert.False(t, Compatible(Func{Out: Int{}}, Int{}))
}

func TestString(t *testing.T) {
	assert.Equal(t, "int", Int{}.String())
	assert.Equal(t, "**int", PointerTo(PointerTo(Int{})).String())
	assert.Equal(t, "func(int, *int) int", Func{In: []Type{Int{}, PointerTo(Int{})}, Out: Int{}}.String())
	assert.Equal(t, "func()", Func{}.String())
}

func TestPointee(t *testing.T) {
	x, ok := Pointee(PointerTo(PointerTo(Int{})))
	assert.True(t, ok)
	assert.Equal(t, PointerTo(Int{}), x)
	assert.Equal(t, Word, x.Size())

	_, ok = Pointee(Int{})
	assert.False(t, ok)
}
