package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	src := []byte("main(){return 1@2;}")

	assert.Equal(t, "main(){return 1@2;}\n               ^ cannot tokenize", Render(src, 15, "cannot tokenize"))
}

func TestRenderWide(t *testing.T) {
	src := []byte("main(){return あ;}")
	pos := len("main(){return ")

	assert.Equal(t, "main(){return あ;}\n              ^ cannot tokenize", Render(src, pos, "cannot tokenize"))

	src = []byte("main(){あ=1;return 1@2;}")
	pos = len("main(){あ=1;return 1")

	// the wide rune takes two columns
	assert.Equal(t, "main(){あ=1;return 1@2;}\n                    ^ x", Render(src, pos, "x"))
}

func TestRenderMultiline(t *testing.T) {
	src := []byte("main() {\n\treturn 1 $ 2;\n}\n")
	pos := len("main() {\n\treturn 1 ")

	assert.Equal(t, "\treturn 1 $ 2;\n\t         ^ cannot tokenize", Render(src, pos, "cannot tokenize"))
}

func TestRenderEnd(t *testing.T) {
	src := []byte("main(){")

	assert.Equal(t, "main(){\n       ^ expected \"}\"", Render(src, len(src), `expected "}"`))
}
