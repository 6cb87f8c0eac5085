package cclex

import (
	"fmt"
	"strings"

	"github.com/ccfront/cclex/token"
)

// DumpTokens renders tokens one per line in a stable, diff-friendly form:
// position, kind, spelling, then any flags. This is the format the cclex
// command prints and the golden-file tests compare against.
func DumpTokens(toks []*token.Token) string {
	var b strings.Builder
	for _, tok := range toks {
		fmt.Fprintf(&b, "%d:%d\t%s\t%s", tok.Pos.Line, tok.Pos.Col, tok.Kind, tok)
		if tok.BOL {
			b.WriteString("\tbol")
		}
		if tok.LeadingSpace {
			b.WriteString("\tspace")
		}
		b.WriteByte('\n')
	}
	return b.String()
}
