package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccfront/cclex/token"
)

// resume drains the lexer after SkipCondIncl and renders what comes back,
// so tests can check exactly where skipping stopped.
func resume(t *testing.T, input string) []string {
	t.Helper()
	lex := NewLexerFromString(input, nil)
	require.NoError(t, lex.SkipCondIncl())
	var got []string
	for {
		tok, err := lex.Next()
		require.NoError(t, err)
		if tok.Kind == token.EOF {
			return got
		}
		got = append(got, tok.Kind.String()+" "+tok.String())
	}
}

func TestSkipCondInclStopsAtElse(t *testing.T) {
	got := resume(t, "int skipped;\nmore skipped\n#else\nint kept;\n")
	want := []string{
		"punct #", "ident else", "newline \\n",
		"ident int", "ident kept", "punct ;", "newline \\n",
	}
	assert.Equal(t, want, got)
}

func TestSkipCondInclNested(t *testing.T) {
	// the inner group's #else and #endif must not end the outer skip
	got := resume(t, "#if FOO\n#else\n#endif\n#elif BAR\nrest\n")
	want := []string{
		"punct #", "ident elif", "ident BAR", "newline \\n",
		"ident rest", "newline \\n",
	}
	assert.Equal(t, want, got)
}

func TestSkipCondInclIgnoresLiteralsAndComments(t *testing.T) {
	input := "char *s = \"#else\";\n" +
		"char c = '\"';\n" +
		"// #else in a comment\n" +
		"#endif\nafter\n"
	got := resume(t, input)
	want := []string{
		"punct #", "ident endif", "newline \\n",
		"ident after", "newline \\n",
	}
	assert.Equal(t, want, got)
}

func TestSkipCondInclMidlineHashIgnored(t *testing.T) {
	// '#' not at the beginning of a line is not a directive
	got := resume(t, "a # else b\n#endif\n")
	want := []string{"punct #", "ident endif", "newline \\n"}
	assert.Equal(t, want, got)
}

func TestSkipCondInclToleratesEOF(t *testing.T) {
	// a missing #endif is diagnosed by the caller, not here
	assert.Empty(t, resume(t, "no terminator here\n"))
}

func TestSkipCondInclDirectiveTokenPosition(t *testing.T) {
	lex := NewLexerFromString("skipped\n#else\n", nil)
	require.NoError(t, lex.SkipCondIncl())

	hash, err := lex.Next()
	require.NoError(t, err)
	require.True(t, hash.IsPunct('#'))
	assert.True(t, hash.BOL)
	assert.Equal(t, 2, hash.Pos.Line)
	assert.Equal(t, 1, hash.Pos.Col)

	name, err := lex.Next()
	require.NoError(t, err)
	assert.True(t, name.IsIdent("else"))
}
