package reporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/rivo/uniseg"
)

// MaxMessageWidth is the width diagnostics are word-wrapped to, to keep
// them within the bounds of a typical terminal.
const MaxMessageWidth = 80

// Renderer writes diagnostics in a terminal-friendly format:
//
//	foo.c:3:14: error: unterminated string
//
// Long messages are word-wrapped with continuation lines indented, unless
// Compact is set, in which case each diagnostic is exactly one line.
type Renderer struct {
	Compact bool

	// MaxWidth overrides MaxMessageWidth when positive.
	MaxWidth int
}

func (r Renderer) RenderError(w io.Writer, err ErrorWithPos) {
	r.render(w, "error", err)
}

func (r Renderer) RenderWarning(w io.Writer, err ErrorWithPos) {
	r.render(w, "warning", err)
}

func (r Renderer) render(w io.Writer, severity string, err ErrorWithPos) {
	head := fmt.Sprintf("%s: %s: ", err.GetPosition(), severity)
	msg := err.Unwrap().Error()
	if r.Compact {
		fmt.Fprintf(w, "%s%s\n", head, msg)
		return
	}

	max := r.MaxWidth
	if max <= 0 {
		max = MaxMessageWidth
	}
	// Measure in terminal columns, not bytes; identifiers quoted in
	// messages may contain multi-column graphemes.
	col := uniseg.StringWidth(head)
	indent := strings.Repeat(" ", 4)
	io.WriteString(w, head)
	for i, word := range strings.Fields(msg) {
		width := uniseg.StringWidth(word)
		if i > 0 && col+width+1 > max {
			fmt.Fprintf(w, "\n%s", indent)
			col = uniseg.StringWidth(indent)
		} else if i > 0 {
			io.WriteString(w, " ")
			col++
		}
		io.WriteString(w, word)
		col += width
	}
	io.WriteString(w, "\n")
}
