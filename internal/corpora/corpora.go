// Package corpora runs table-driven tests whose "table" lives in the
// filesystem: a directory of C sources, each with golden files holding
// the expected token dump and diagnostics.
package corpora

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pmezard/go-difflib/difflib"
)

// Corpus describes one test corpus.
type Corpus struct {
	// Root of the corpus directory, relative to the test file that calls
	// Run.
	Root string

	// Refresh names an environment variable; when set to a glob, goldens
	// for the matching cases are rewritten instead of compared, and the
	// run fails so the refresh cannot be mistaken for a pass.
	Refresh string

	// Extension (without dot) of files that define a test case, e.g. "c".
	Extension string

	// Outputs the corpus checks, looked up as <case>.<output extension>.
	// A missing golden file is treated as expected-empty.
	Outputs []Output

	// Test runs one case and returns one string per entry in Outputs.
	Test func(t *testing.T, path, text string) []string
}

// Output is one expected artifact of a test case.
type Output struct {
	Extension string
	// Compare returns "" on match, or a rendered mismatch. Nil means a
	// unified diff of the raw strings.
	Compare func(got, want string) string
}

func (c Corpus) Run(t *testing.T) {
	testDir := callerDir(0)
	root := filepath.Join(testDir, c.Root)

	var cases []string
	err := filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.TrimPrefix(path.Ext(p), ".") == c.Extension {
			cases = append(cases, p)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("corpora: error walking %q: %v", root, err)
	}

	var refresh string
	if c.Refresh != "" {
		refresh = os.Getenv(c.Refresh)
		if !doublestar.ValidatePattern(refresh) {
			t.Fatalf("corpora: invalid glob in $%s: %q", c.Refresh, refresh)
		}
	}
	if refresh != "" {
		t.Logf("corpora: refreshing goldens because %s=%s", c.Refresh, refresh)
		t.Fail()
	}

	for _, casePath := range cases {
		name, _ := filepath.Rel(testDir, casePath)
		t.Run(name, func(t *testing.T) {
			text, err := os.ReadFile(casePath)
			if err != nil {
				t.Fatalf("corpora: error loading input %q: %v", casePath, err)
			}

			results := c.Test(t, name, string(text))
			if len(results) != len(c.Outputs) {
				t.Fatalf("corpora: Test returned %d results, want %d", len(results), len(c.Outputs))
			}

			refreshing, _ := doublestar.Match(refresh, name)
			for i, output := range c.Outputs {
				goldenPath := fmt.Sprint(casePath, ".", output.Extension)
				if refreshing {
					c.refreshGolden(t, goldenPath, results[i])
					continue
				}
				want, err := os.ReadFile(goldenPath)
				if err != nil && !errors.Is(err, os.ErrNotExist) {
					t.Errorf("corpora: error loading golden %q: %v", goldenPath, err)
					continue
				}
				compare := output.Compare
				if compare == nil {
					compare = diffCompare
				}
				if msg := compare(results[i], string(want)); msg != "" {
					t.Errorf("output mismatch for %q:\n%s", goldenPath, msg)
				}
			}
		})
	}
}

func (c Corpus) refreshGolden(t *testing.T, path, content string) {
	if content == "" {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			t.Errorf("corpora: error deleting golden %q: %v", path, err)
		}
		return
	}
	if err := os.WriteFile(path, []byte(content), 0o666); err != nil {
		t.Errorf("corpora: error writing golden %q: %v", path, err)
	}
}

func diffCompare(got, want string) string {
	if got == want {
		return ""
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}
	return diff
}

func callerDir(skip int) string {
	_, file, _, ok := runtime.Caller(skip + 2)
	if !ok {
		panic("corpora: could not determine test file's directory")
	}
	return filepath.Dir(file)
}
