package tokenize

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"tlog.app/go/tlog"

	"github.com/slowlang/slowc/compiler/diag"
)

type (
	Error struct {
		Pos int
		Msg string
	}
)

// MaxNum is the largest integer literal the language accepts.
const MaxNum = 1<<16 - 1

// Tokenize splits text into tokens. The last token is always EOF.
func Tokenize(ctx context.Context, text []byte) (toks []Token, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "tokenize", "size", len(text))
	defer tr.Finish("err", &err)

	for i := 0; i < len(text); {
		r, w := utf8.DecodeRune(text[i:])

		switch {
		case unicode.IsSpace(r):
			i += w
			continue
		case isIdentStart(r):
			end := skipIdent(text, i+1)
			s := string(text[i:end])

			kind := Ident
			if _, ok := keywords[s]; ok {
				kind = Keyword
			}

			toks = append(toks, Token{Kind: kind, Text: s, Pos: i})
			i = end

			continue
		case isDigit(r):
			t, end, err := number(text, i)
			if err != nil {
				return nil, err
			}

			toks = append(toks, t)
			i = end

			continue
		}

		if p, ok := punct(text[i:]); ok {
			toks = append(toks, Token{Kind: Punct, Text: p, Pos: i})
			i += len(p)

			continue
		}

		return nil, NewError(i, "cannot tokenize")
	}

	toks = append(toks, Token{Kind: EOF, Pos: len(text)})

	if tr.If("tokens") {
		for _, t := range toks {
			tr.Printw("token", "pos", t.Pos, "kind", t.Kind, "text", t.Text)
		}
	}

	return toks, nil
}

func number(text []byte, st int) (t Token, i int, err error) {
	i = st

	var v int64

	for i < len(text) && isDigit(rune(text[i])) {
		if v <= MaxNum {
			v = v*10 + int64(text[i]-'0')
		}

		i++
	}

	if v > MaxNum {
		return t, st, NewError(st, fmt.Sprintf("number out of range: %s", text[st:i]))
	}

	return Token{Kind: Num, Text: string(text[st:i]), Val: v, Pos: st}, i, nil
}

func punct(b []byte) (string, bool) {
	s := string(b[:min(len(b), 2)])

	for _, p := range puncts {
		if strings.HasPrefix(s, p) {
			return p, true
		}
	}

	return "", false
}

func skipIdent(b []byte, i int) int {
	for i < len(b) && (b[i] == '_' ||
		b[i] >= 'A' && b[i] <= 'Z' ||
		b[i] >= 'a' && b[i] <= 'z' ||
		b[i] >= '0' && b[i] <= '9') {
		i++
	}

	return i
}

func isIdentStart(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '_'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func NewError(pos int, msg string) Error {
	return Error{
		Pos: pos,
		Msg: msg,
	}
}

func (e Error) Error() string { return e.Msg }

func (e Error) Position() int { return e.Pos }

var _ diag.Error = Error{}
