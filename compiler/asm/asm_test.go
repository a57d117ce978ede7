package asm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabel(t *testing.T) {
	assert.Equal(t, ".L.else.3", Label{Name: "else", N: 3}.String())
	assert.Equal(t, "jmp .L.end.10", string(Label{Name: "end", N: 10}.Append([]byte("jmp "))))
}
