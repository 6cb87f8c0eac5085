package lexer

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// TestTokenSequences runs the fixture grid in testdata/tokens.yaml: each
// case is an input and the exact token sequence it must lex to.
func TestTokenSequences(t *testing.T) {
	data, err := os.ReadFile("testdata/tokens.yaml")
	require.NoError(t, err)

	var fixture struct {
		Cases []struct {
			Name   string   `yaml:"name"`
			Input  string   `yaml:"input"`
			Tokens []string `yaml:"tokens"`
		} `yaml:"cases"`
	}
	require.NoError(t, yaml.Unmarshal(data, &fixture))
	require.NotEmpty(t, fixture.Cases)

	for _, tc := range fixture.Cases {
		t.Run(tc.Name, func(t *testing.T) {
			got := lexAll(t, tc.Input)
			assert.Empty(t, cmp.Diff(tc.Tokens, got))
		})
	}
}
