// Package lexer implements the C front end's character and token pipeline:
// translation phases 1 through 3. Raw bytes from files or strings are
// canonicalized into a logical character stream ("\r\n" and "\r" become
// "\n", backslash-newline pairs vanish, a missing final newline is
// synthesized) and that stream is cut into preprocessing tokens.
//
// Trigraphs are not supported, by standard permission.
package lexer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"
)

// EOF is the character value ReadChar produces when a source is exhausted.
const EOF = -1

// pushbackCap bounds per-source character pushback. Lexing needs at most a
// few characters of lookahead (carriage-return, splice and escape-prefix
// lookahead); blowing past this is a bug in the lexer, not bad input.
const pushbackCap = 8

// Source is one open input: either stream-backed (a file or stdin) or
// string-backed (macro text, command-line definitions). The position
// fields always describe the next unread character.
type Source struct {
	Name string
	Line int
	Col  int

	// ModTime is the file's modification time captured at open, for
	// __TIMESTAMP__ and dependency output. Zero for strings and stdin.
	ModTime time.Time

	in     *bufio.Reader // nil for string-backed sources
	closer io.Closer
	text   string
	cursor int

	last   int
	buf    [pushbackCap]int
	buflen int
	ntok   int
}

// NewSource wraps a reader as a Source. The reader is not closed when the
// source is exhausted unless it is also an io.Closer passed via Open.
func NewSource(in io.Reader, name string) *Source {
	return &Source{
		Name: name,
		Line: 1,
		Col:  1,
		in:   bufio.NewReader(in),
	}
}

// NewStringSource wraps in-memory text as a Source. No I/O can occur.
func NewStringSource(text string) *Source {
	return &Source{
		Name: "<string>",
		Line: 1,
		Col:  1,
		text: text,
	}
}

// Open opens the named file, or stdin for "-". Failure to open or stat the
// file is fatal to the compilation; the caller reports the returned error.
func Open(name string) (*Source, error) {
	if name == "-" {
		return NewSource(os.Stdin, "-"), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", name, err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("cannot stat %s: %w", name, err)
	}
	src := NewSource(f, name)
	src.closer = f
	src.ModTime = fi.ModTime()
	return src, nil
}

// Close releases the underlying file, if any.
func (s *Source) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

// readc produces the next canonicalized character from the underlying
// input, without touching the pushback buffer or position bookkeeping.
//
// Canonicalization: "\r\n" and "\r" collapse to '\n', and end-of-input not
// immediately after a newline yields one synthesized '\n' before EOF, so
// every logical line is newline-terminated whatever the file looks like.
func (s *Source) readc() int {
	if s.in != nil {
		return s.readStream()
	}
	return s.readString()
}

func (s *Source) readStream() int {
	var c int
	b, err := s.in.ReadByte()
	if err != nil {
		c = EOF
	} else {
		c = int(b)
	}
	if c == EOF {
		if s.last != '\n' && s.last != EOF {
			c = '\n'
		}
	} else if c == '\r' {
		b2, err := s.in.ReadByte()
		if err == nil && b2 != '\n' {
			s.in.UnreadByte()
		}
		c = '\n'
	}
	s.last = c
	return c
}

func (s *Source) readString() int {
	var c int
	switch {
	case s.cursor >= len(s.text):
		c = EOF
		if s.last != '\n' && s.last != EOF {
			c = '\n'
		}
	case s.text[s.cursor] == '\r':
		s.cursor++
		if s.cursor < len(s.text) && s.text[s.cursor] == '\n' {
			s.cursor++
		}
		c = '\n'
	default:
		c = int(s.text[s.cursor])
		s.cursor++
	}
	s.last = c
	return c
}
