package reporter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderCompact(t *testing.T) {
	var b strings.Builder
	r := Renderer{Compact: true}
	r.RenderError(&b, Errorf(pos(1, 2), "unterminated string"))
	assert.Equal(t, "f.c:1:2: error: unterminated string\n", b.String())

	b.Reset()
	r.RenderWarning(&b, Errorf(pos(1, 2), "unknown escape"))
	assert.Equal(t, "f.c:1:2: warning: unknown escape\n", b.String())
}

func TestRenderWraps(t *testing.T) {
	var b strings.Builder
	r := Renderer{MaxWidth: 30}
	r.RenderError(&b, Errorf(pos(1, 2), "aaa bbb ccc ddd eee fff"))
	assert.Equal(t, "f.c:1:2: error: aaa bbb ccc\n    ddd eee fff\n", b.String())
}

func TestRenderShortMessageSingleLine(t *testing.T) {
	var b strings.Builder
	Renderer{}.RenderError(&b, Errorf(pos(7, 3), "unterminated char"))
	assert.Equal(t, "f.c:7:3: error: unterminated char\n", b.String())
}
