package tokenize

import (
	"fmt"
)

type (
	Kind int

	Token struct {
		Kind Kind
		Text string
		Val  int64 // Num only
		Pos  int   // byte offset in the source
	}
)

const (
	Keyword Kind = iota
	Punct
	Ident
	Num
	EOF
)

var keywords = map[string]struct{}{
	"return": {},
	"if":     {},
	"else":   {},
	"while":  {},
	"for":    {},
}

// Two-character operators come first so they win over their prefixes.
var puncts = []string{
	"==", "!=", "<=", ">=",
	"+", "-", "*", "/", "(", ")", ";", "<", ">", "=", "!", "{", "}", ",", "&",
}

func (k Kind) String() string {
	switch k {
	case Keyword:
		return "keyword"
	case Punct:
		return "punct"
	case Ident:
		return "ident"
	case Num:
		return "num"
	case EOF:
		return "eof"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Is reports whether t is a keyword or punctuator spelled s.
func (t Token) Is(s string) bool {
	return (t.Kind == Punct || t.Kind == Keyword) && t.Text == s
}

// Describe is a human readable form used in error messages.
func (t Token) Describe() string {
	if t.Kind == EOF {
		return "end of input"
	}

	return fmt.Sprintf("%q", t.Text)
}

func (t Token) String() string {
	switch t.Kind {
	case EOF:
		return "EOF"
	case Num:
		return fmt.Sprintf("%v(%d)", t.Kind, t.Val)
	default:
		return fmt.Sprintf("%v(%s)", t.Kind, t.Text)
	}
}
