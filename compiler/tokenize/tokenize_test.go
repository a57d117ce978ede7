package tokenize

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	ctx := context.Background()

	toks, err := Tokenize(ctx, []byte("f(a,b){ if (a>=10) return a!=b; x1 = &a; }"))
	require.NoError(t, err)

	var got []string
	for _, t := range toks {
		got = append(got, t.String())
	}

	assert.Equal(t, []string{
		"ident(f)", "punct(()", "ident(a)", "punct(,)", "ident(b)", "punct())", "punct({)",
		"keyword(if)", "punct(()", "ident(a)", "punct(>=)", "num(10)", "punct())",
		"keyword(return)", "ident(a)", "punct(!=)", "ident(b)", "punct(;)",
		"ident(x1)", "punct(=)", "punct(&)", "ident(a)", "punct(;)",
		"punct(})", "EOF",
	}, got)

	assert.Equal(t, 0, toks[0].Pos)
	assert.Equal(t, len("f(a,b){ if (a>=10) return a!=b; x1 = &a; }"), toks[len(toks)-1].Pos)
}

func TestTokenizeNumbers(t *testing.T) {
	ctx := context.Background()

	toks, err := Tokenize(ctx, []byte("0 42 65535"))
	require.NoError(t, err)
	require.Len(t, toks, 4)

	assert.Equal(t, int64(0), toks[0].Val)
	assert.Equal(t, int64(42), toks[1].Val)
	assert.Equal(t, int64(MaxNum), toks[2].Val)
	assert.Equal(t, EOF, toks[3].Kind)

	_, err = Tokenize(ctx, []byte("1 65536"))
	var e Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, 2, e.Pos)
	assert.Contains(t, e.Msg, "out of range")

	_, err = Tokenize(ctx, []byte("99999999999999999999999"))
	require.ErrorAs(t, err, &e)
	assert.Equal(t, 0, e.Pos)
}

func TestTokenizeError(t *testing.T) {
	ctx := context.Background()

	_, err := Tokenize(ctx, []byte("main(){return 1@2;}"))

	var e Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, 15, e.Position())
	assert.Equal(t, "cannot tokenize", e.Error())

	_, err = Tokenize(ctx, []byte("a = あ;"))
	require.ErrorAs(t, err, &e)
	assert.Equal(t, 4, e.Pos)
}

func TestTokenizeEmpty(t *testing.T) {
	toks, err := Tokenize(context.Background(), []byte(" \t\n"))
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(t, EOF, toks[0].Kind)
	assert.Equal(t, "end of input", toks[0].Describe())
}

func TestTokenIs(t *testing.T) {
	assert.True(t, Token{Kind: Punct, Text: "="}.Is("="))
	assert.True(t, Token{Kind: Keyword, Text: "if"}.Is("if"))
	assert.False(t, Token{Kind: Ident, Text: "if"}.Is("if"))
	assert.False(t, Token{Kind: Punct, Text: "=="}.Is("="))
}
