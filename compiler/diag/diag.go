package diag

import (
	"bytes"
	"strings"

	"github.com/mattn/go-runewidth"
)

type (
	// Error is an error which knows where in the source it happened.
	Error interface {
		error
		Position() int
	}
)

// Render formats a two line report: the source line containing pos
// and a caret under pos followed by msg.
func Render(src []byte, pos int, msg string) string {
	if pos < 0 {
		pos = 0
	}
	if pos > len(src) {
		pos = len(src)
	}

	st := bytes.LastIndexByte(src[:pos], '\n') + 1

	end := bytes.IndexByte(src[pos:], '\n')
	if end < 0 {
		end = len(src)
	} else {
		end += pos
	}

	line := string(src[st:end])

	var b strings.Builder

	b.Grow(2*len(line) + len(msg) + 4)

	b.WriteString(line)
	b.WriteByte('\n')
	b.WriteString(Pad(src[st:pos]))
	b.WriteString("^ ")
	b.WriteString(msg)

	return b.String()
}

// Pad returns blank space as wide on screen as prefix.
// Tabs are kept so the caret lines up whatever the tab width is.
func Pad(prefix []byte) string {
	var b strings.Builder

	for _, r := range string(prefix) {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}

		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}

	return b.String()
}
