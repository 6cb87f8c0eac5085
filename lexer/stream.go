package lexer

import (
	"github.com/ccfront/cclex/token"
)

// Stream owns the stack of open sources and exposes them as one logical
// character stream. A pushed source is drained completely, synthesized
// trailing newline included, before reading resumes from the source
// beneath it; this is what gives #include its depth-first order.
//
// A Stream is single-writer: exactly one lexer drives it.
type Stream struct {
	files   []*Source
	stashed [][]*Source
	fileset FileSet
}

func NewStream() *Stream {
	return &Stream{}
}

// Open opens the named file (or stdin for "-") and records it in the
// stream's FileSet. The source is returned unpushed.
func (st *Stream) Open(name string) (*Source, error) {
	src, err := Open(name)
	if err != nil {
		return nil, err
	}
	st.fileset.record(src.Name, src.ModTime)
	return src, nil
}

// Files returns the registry of every file opened through this stream.
func (st *Stream) Files() *FileSet {
	return &st.fileset
}

func (st *Stream) Push(src *Source) {
	st.files = append(st.files, src)
}

func (st *Stream) Pop() *Source {
	src := st.files[len(st.files)-1]
	st.files = st.files[:len(st.files)-1]
	return src
}

// Top returns the currently active source.
func (st *Stream) Top() *Source {
	return st.files[len(st.files)-1]
}

func (st *Stream) Depth() int {
	return len(st.files)
}

// Stash saves the whole active source stack and replaces it with a stack
// containing only src. Used to lex an isolated string without disturbing
// the real file-inclusion stack. Stash/Unstash calls must nest; the lexer
// is the only caller and always pairs them.
func (st *Stream) Stash(src *Source) {
	st.stashed = append(st.stashed, st.files)
	st.files = []*Source{src}
}

// Unstash restores the source stack saved by the matching Stash.
func (st *Stream) Unstash() {
	st.files = st.stashed[len(st.stashed)-1]
	st.stashed = st.stashed[:len(st.stashed)-1]
}

// Position reports the position of the next unread character.
func (st *Stream) Position() token.Position {
	if len(st.files) == 0 {
		return token.Position{}
	}
	f := st.Top()
	return token.Position{Filename: f.Name, Line: f.Line, Col: f.Col}
}

// ReadChar returns the next canonical character from the active source:
// the pushback buffer first, the underlying input otherwise. Position
// bookkeeping happens exactly once per logical character, here.
func (st *Stream) ReadChar() int {
	f := st.Top()
	var c int
	if f.buflen > 0 {
		f.buflen--
		c = f.buf[f.buflen]
	} else {
		c = f.readc()
	}
	if c == '\n' {
		f.Line++
		f.Col = 1
	} else if c != EOF {
		f.Col++
	}
	return c
}

// UnreadChar pushes c back onto the active source and reverses the
// position bookkeeping ReadChar performed for it. Unreading EOF is a
// no-op. Overflowing the pushback buffer means the lexer asked for more
// lookahead than it is specified to need, so it panics rather than
// corrupting positions.
func (st *Stream) UnreadChar(c int) {
	if c == EOF {
		return
	}
	f := st.Top()
	if f.buflen >= len(f.buf) {
		panic("lexer: pushback buffer overflow")
	}
	f.buf[f.buflen] = c
	f.buflen++
	if c == '\n' {
		f.Col = 1
		f.Line--
	} else {
		f.Col--
	}
}

// ReadCharAcrossFiles is the read the tokenizer uses. It behaves like
// ReadChar except that end-of-input pops exhausted sources while more
// remain beneath them, and backslash-newline pairs are spliced out here,
// invisibly to the caller.
func (st *Stream) ReadCharAcrossFiles() int {
	for {
		c := st.ReadChar()
		if c == EOF {
			if len(st.files) == 1 {
				return c
			}
			st.Pop().Close()
			continue
		}
		if c != '\\' {
			return c
		}
		c2 := st.ReadChar()
		if c2 == '\n' {
			continue
		}
		st.UnreadChar(c2)
		return c
	}
}
