package asm

import (
	"github.com/nikandfor/hacked/hfmt"
)

type (
	// Label is a local assembler label. Labels with different N never collide.
	Label struct {
		Name string
		N    int
	}
)

func (l Label) String() string {
	return string(l.Append(nil))
}

func (l Label) Append(b []byte) []byte {
	return hfmt.Appendf(b, ".L.%s.%d", l.Name, l.N)
}
