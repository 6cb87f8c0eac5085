package lexer

import "bytes"

// ReadHeaderName lexes the operand of #include.
//
// Header names get their own lexer because their syntax is incompatible
// with normal tokenization: the name may be quoted by < and >, and even
// inside "" a backslash is a literal character, not an escape. That the
// preprocessor needs special lexer behavior only for #include is a known
// layering wart in the C grammar; this is the sole entry point for it.
//
// The return is (name, system, nil) on success, where system reports the
// <...> form. If the input does not start with '"' or '<', nothing is
// consumed and name comes back empty. Only callable while no pending
// token buffer is active, since pushed-back tokens cannot be re-read as
// raw header-name characters.
func (l *Lexer) ReadHeaderName() (name string, system bool, err error) {
	if !l.bufferEmpty() {
		return "", false, nil
	}
	if _, err := l.skipSpace(); err != nil {
		return "", false, err
	}
	pos := l.position(0)
	var quote int
	switch {
	case l.nextIs('"'):
		quote = '"'
	case l.nextIs('<'):
		quote = '>'
		system = true
	default:
		return "", false, nil
	}
	var b bytes.Buffer
	for !l.nextIs(quote) {
		c := l.stream.ReadCharAcrossFiles()
		if c == EOF || c == '\n' {
			return "", false, l.errorfAt(pos, "premature end of header name")
		}
		b.WriteByte(byte(c))
	}
	if b.Len() == 0 {
		return "", false, l.errorfAt(pos, "header name should not be empty")
	}
	return b.String(), system, nil
}

func (l *Lexer) bufferEmpty() bool {
	return len(l.buffers) == 1 && len(l.buffers[0]) == 0
}
