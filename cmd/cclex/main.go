// Command cclex lexes C source files into preprocessing tokens and dumps
// them, one token per line. Arguments may be file paths, doublestar globs
// or "-" for stdin.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ccfront/cclex"
	"github.com/ccfront/cclex/reporter"
)

func main() {
	jobs := flag.Int("jobs", 0, "max files lexed in parallel (0 = number of CPUs)")
	deps := flag.Bool("deps", false, "print the files each compilation opened instead of tokens")
	quiet := flag.Bool("q", false, "suppress token output; only report errors")
	compact := flag.Bool("compact", false, "one-line diagnostics without wrapping")
	flag.Parse()

	paths, err := expandArgs(flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, "cclex:", err)
		os.Exit(2)
	}
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "usage: cclex [flags] file.c ...")
		os.Exit(2)
	}

	rend := reporter.Renderer{Compact: *compact}
	rep := reporter.NewReporter(
		func(err reporter.ErrorWithPos) error {
			rend.RenderError(os.Stderr, err)
			return err
		},
		func(err reporter.ErrorWithPos) {
			rend.RenderWarning(os.Stderr, err)
		},
	)

	runner := cclex.Runner{MaxParallelism: *jobs, Reporter: rep}
	failed := false
	for _, res := range runner.LexFiles(context.Background(), paths...) {
		if res.Err != nil {
			failed = true
			continue
		}
		switch {
		case *deps:
			for _, rec := range res.Files {
				fmt.Printf("%s: %s\n", rec.Path, rec.ModTime.Format("2006-01-02T15:04:05"))
			}
		case !*quiet:
			os.Stdout.WriteString(cclex.DumpTokens(res.Tokens))
		}
	}
	if failed {
		os.Exit(1)
	}
}

// expandArgs resolves glob patterns to file paths; non-pattern arguments
// pass through untouched so missing files still produce open errors.
func expandArgs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[{") {
			paths = append(paths, arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}
