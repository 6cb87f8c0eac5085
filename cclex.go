// Package cclex turns C source files into streams of preprocessing
// tokens. It implements translation phases 1 through 3 of the C standard:
// line-ending canonicalization, backslash-newline splicing and
// tokenization, with exact line and column tracking for diagnostics.
//
// The lexer package holds the core; this package provides a driver that
// lexes whole files, one lexer per file, with bounded parallelism across
// files. Each compilation remains strictly single-threaded internally.
package cclex

import (
	"context"
	"runtime"

	"golang.org/x/sync/semaphore"

	"github.com/ccfront/cclex/lexer"
	"github.com/ccfront/cclex/reporter"
	"github.com/ccfront/cclex/token"
)

// Runner lexes batches of files.
type Runner struct {
	// MaxParallelism bounds how many files are lexed at once. If
	// unspecified or non-positive, min(runtime.NumCPU(),
	// runtime.GOMAXPROCS(-1)) is used.
	MaxParallelism int

	// Reporter receives errors and warnings. If nil, the first error
	// aborts that file's lexing and warnings are dropped.
	Reporter reporter.Reporter
}

// Result is the outcome of lexing one file.
type Result struct {
	Path   string
	Tokens []*token.Token
	Files  []lexer.FileRecord
	Err    error
}

// LexFiles lexes each named file ("-" for stdin) to end of input and
// returns one Result per path, in the order given.
func (r *Runner) LexFiles(ctx context.Context, paths ...string) []Result {
	if len(paths) == 0 {
		return nil
	}

	par := r.MaxParallelism
	if par <= 0 {
		par = runtime.GOMAXPROCS(-1)
		if cpus := runtime.NumCPU(); par > cpus {
			par = cpus
		}
	}
	sem := semaphore.NewWeighted(int64(par))

	results := make([]Result, len(paths))
	done := make(chan int)
	for i, path := range paths {
		i, path := i, path
		go func() {
			defer func() { done <- i }()
			if err := sem.Acquire(ctx, 1); err != nil {
				results[i] = Result{Path: path, Err: err}
				return
			}
			defer sem.Release(1)
			results[i] = r.lexOne(path)
		}()
	}
	for range paths {
		<-done
	}
	return results
}

func (r *Runner) lexOne(path string) Result {
	handler := reporter.NewHandler(r.Reporter)
	lex, err := lexer.NewLexer(path, handler)
	if err != nil {
		return Result{Path: path, Err: err}
	}
	toks, err := LexAll(lex)
	res := Result{Path: path, Tokens: toks, Err: err}
	lex.Stream().Files().Range(func(rec lexer.FileRecord) bool {
		res.Files = append(res.Files, rec)
		return true
	})
	return res
}

// LexAll drains lex until end of input, returning every token produced.
// The EOF token itself is not included.
func LexAll(lex *lexer.Lexer) ([]*token.Token, error) {
	var toks []*token.Token
	for {
		tok, err := lex.Next()
		if err != nil {
			return toks, err
		}
		if tok.Kind == token.EOF {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}
