package lexer

import (
	"github.com/ccfront/cclex/reporter"
	"github.com/ccfront/cclex/token"
)

// Lexer cuts the canonical character stream into preprocessing tokens.
//
// Comments are treated as if they were a single space. Spaces are removed,
// but their presence is recorded on the token that follows them as the
// LeadingSpace flag. Newlines become Newline tokens; the preprocessor
// needs them to find directive boundaries.
//
// A Lexer is not safe for concurrent use; one compilation owns one Lexer.
type Lexer struct {
	stream  *Stream
	handler *reporter.Handler

	// buffers is the pending-token stack. The top buffer, when non-empty,
	// supplies tokens (popped from its end) before any fresh characters
	// are read; this realizes both token pushback and wholesale stream
	// substitution. StashBuffer/UnstashBuffer must be paired.
	buffers [][]*token.Token

	// pos is the marked start of the token currently being read.
	pos token.Position
}

// NewLexer opens path ("-" for stdin) as the initial source.
func NewLexer(path string, handler *reporter.Handler) (*Lexer, error) {
	if handler == nil {
		handler = reporter.NewHandler(nil)
	}
	st := NewStream()
	src, err := st.Open(path)
	if err != nil {
		return nil, handler.HandleError(err)
	}
	st.Push(src)
	return &Lexer{
		stream:  st,
		handler: handler,
		buffers: [][]*token.Token{nil},
	}, nil
}

// NewLexerFromString lexes in-memory text; no I/O can occur.
func NewLexerFromString(text string, handler *reporter.Handler) *Lexer {
	if handler == nil {
		handler = reporter.NewHandler(nil)
	}
	st := NewStream()
	st.Push(NewStringSource(text))
	return &Lexer{
		stream:  st,
		handler: handler,
		buffers: [][]*token.Token{nil},
	}
}

// Stream exposes the underlying input stream, mainly so the preprocessor
// can push #include sources and read positions.
func (l *Lexer) Stream() *Stream {
	return l.stream
}

// Next returns the next preprocessing token.
//
// Pending tokens win over fresh input. If more than one pending buffer is
// active but the top one is empty, a substituted token stream has been
// exhausted, and Next reports EOF rather than falling through to the real
// input.
func (l *Lexer) Next() (*token.Token, error) {
	if err := l.handler.ReporterError(); err != nil {
		return nil, err
	}
	buf := &l.buffers[len(l.buffers)-1]
	if n := len(*buf); n > 0 {
		tok := (*buf)[n-1]
		*buf = (*buf)[:n-1]
		return tok, nil
	}
	if len(l.buffers) > 1 {
		return l.eofToken(), nil
	}
	bol := l.stream.Top().Col == 1
	tok, err := l.readRaw()
	if err != nil {
		return nil, err
	}
	for tok.Kind == token.Space {
		tok, err = l.readRaw()
		if err != nil {
			return nil, err
		}
		tok.LeadingSpace = true
	}
	tok.BOL = bol
	return tok, nil
}

// Unget pushes tok back so the next call to Next returns it. Tokens must
// be pushed back in reverse of the order they were received. EOF tokens
// are silently dropped; EOF is re-synthesized on demand.
func (l *Lexer) Unget(tok *token.Token) {
	if tok.Kind == token.EOF {
		return
	}
	top := len(l.buffers) - 1
	l.buffers[top] = append(l.buffers[top], tok)
}

// StashBuffer temporarily switches the token source to the given list, so
// its tokens come back from Next (popped from the end). After they are
// exhausted, Next returns EOF until UnstashBuffer restores the previous
// state.
func (l *Lexer) StashBuffer(buf []*token.Token) {
	l.buffers = append(l.buffers, buf)
}

// UnstashBuffer pops the buffer pushed by the matching StashBuffer.
func (l *Lexer) UnstashBuffer() {
	l.buffers = l.buffers[:len(l.buffers)-1]
}

// LexString reads exactly one token from an isolated string, leaving the
// real input stack untouched. Anything left over beyond an optional
// trailing newline is an error; the preprocessor uses this for
// command-line macro definitions, which must be single tokens.
func (l *Lexer) LexString(s string) (*token.Token, error) {
	l.stream.Stash(NewStringSource(s))
	defer l.stream.Unstash()
	tok, err := l.readRaw()
	if err != nil {
		return nil, err
	}
	l.nextIs('\n')
	if l.peekChar() != EOF {
		return nil, l.errorfAt(l.position(0), "unconsumed input: %s", s)
	}
	return tok, nil
}

// readRaw reads one raw token: whitespace and comments collapse to a
// single Space token, everything else dispatches on its first character.
func (l *Lexer) readRaw() (*token.Token, error) {
	skipped, err := l.skipSpace()
	if err != nil {
		return nil, err
	}
	if skipped {
		return &token.Token{Kind: token.Space}, nil
	}
	l.mark()
	c := l.stream.ReadCharAcrossFiles()
	switch c {
	case EOF:
		return &token.Token{Kind: token.EOF, Pos: l.pos}, nil
	case '\n':
		return l.newToken(token.Newline), nil
	case ':':
		if l.nextIs('>') { // digraph :> is ]
			return l.punct(']'), nil
		}
		return l.punct(':'), nil
	case '#':
		if l.nextIs('#') {
			return l.punct(token.OpHashHash), nil
		}
		return l.punct('#'), nil
	case '+':
		return l.rep2('+', token.OpInc, '=', token.OpAddAssign, '+'), nil
	case '*':
		return l.rep('=', token.OpMulAssign, '*'), nil
	case '=':
		return l.rep('=', token.OpEq, '='), nil
	case '!':
		return l.rep('=', token.OpNe, '!'), nil
	case '&':
		return l.rep2('&', token.OpLogAnd, '=', token.OpAndAssign, '&'), nil
	case '|':
		return l.rep2('|', token.OpLogOr, '=', token.OpOrAssign, '|'), nil
	case '^':
		return l.rep('=', token.OpXorAssign, '^'), nil
	case '"':
		return l.readStringLit(token.EncNone)
	case '\'':
		return l.readCharLit(token.EncNone)
	case '/':
		return l.rep('=', token.OpDivAssign, '/'), nil
	case 'L', 'U':
		// Wide or char32_t literal, or just an identifier.
		enc := token.EncWide
		if c == 'U' {
			enc = token.EncUTF32
		}
		if l.nextIs('"') {
			return l.readStringLit(enc)
		}
		if l.nextIs('\'') {
			return l.readCharLit(enc)
		}
		return l.readIdent(c)
	case 'u':
		if l.nextIs('"') {
			return l.readStringLit(token.EncUTF16)
		}
		if l.nextIs('\'') {
			return l.readCharLit(token.EncUTF16)
		}
		// C11 6.4.5: u8 prefixes UTF-8 string literals only.
		if l.nextIs('8') {
			if l.nextIs('"') {
				return l.readStringLit(token.EncUTF8)
			}
			l.stream.UnreadChar('8')
		}
		return l.readIdent(c)
	case '.':
		if isDigit(l.peekChar()) {
			return l.readNumber(c), nil
		}
		if l.nextIs('.') {
			if l.nextIs('.') {
				return l.punct(token.OpEllipsis), nil
			}
			// Two dots with no third: deliberately lexed as one
			// two-character identifier, not two '.' punctuators.
			tok := l.newToken(token.Ident)
			tok.Text = ".."
			return tok, nil
		}
		return l.punct('.'), nil
	case '(', ')', ',', ';', '[', ']', '{', '}', '?', '~':
		return l.punct(token.OpID(c)), nil
	case '-':
		if l.nextIs('-') {
			return l.punct(token.OpDec), nil
		}
		if l.nextIs('>') {
			return l.punct(token.OpArrow), nil
		}
		if l.nextIs('=') {
			return l.punct(token.OpSubAssign), nil
		}
		return l.punct('-'), nil
	case '<':
		if l.nextIs('<') {
			return l.rep('=', token.OpShlAssign, token.OpShl), nil
		}
		if l.nextIs('=') {
			return l.punct(token.OpLe), nil
		}
		if l.nextIs(':') { // digraph <: is [
			return l.punct('['), nil
		}
		if l.nextIs('%') { // digraph <% is {
			return l.punct('{'), nil
		}
		return l.punct('<'), nil
	case '>':
		if l.nextIs('=') {
			return l.punct(token.OpGe), nil
		}
		if l.nextIs('>') {
			return l.rep('=', token.OpShrAssign, token.OpShr), nil
		}
		return l.punct('>'), nil
	case '%':
		if tok := l.readHashDigraph(); tok != nil {
			return tok, nil
		}
		return l.rep('=', token.OpModAssign, '%'), nil
	}
	switch {
	case isDigit(c):
		return l.readNumber(c), nil
	case isIdentStart(c):
		return l.readIdent(c)
	}
	tok := l.newToken(token.Invalid)
	tok.Rune = int32(c)
	return tok, nil
}

// readHashDigraph handles the digraphs starting with '%': %> is }, %: is #
// and %:%: is ##. Returns nil if the input is not one of them.
func (l *Lexer) readHashDigraph() *token.Token {
	if l.nextIs('>') {
		return l.punct('}')
	}
	if l.nextIs(':') {
		if l.nextIs('%') {
			if l.nextIs(':') {
				return l.punct(token.OpHashHash)
			}
			l.stream.UnreadChar('%')
		}
		return l.punct('#')
	}
	return nil
}

func (l *Lexer) rep(expect int, yes, no token.OpID) *token.Token {
	if l.nextIs(expect) {
		return l.punct(yes)
	}
	return l.punct(no)
}

func (l *Lexer) rep2(e1 int, t1 token.OpID, e2 int, t2 token.OpID, els token.OpID) *token.Token {
	if l.nextIs(e1) {
		return l.punct(t1)
	}
	return l.rep(e2, t2, els)
}

// mark records the position of the next unread character as the start of
// the token about to be read.
func (l *Lexer) mark() {
	l.pos = l.position(0)
}

func (l *Lexer) position(delta int) token.Position {
	f := l.stream.Top()
	return token.Position{Filename: f.Name, Line: f.Line, Col: f.Col + delta}
}

func (l *Lexer) newToken(kind token.Kind) *token.Token {
	f := l.stream.Top()
	tok := &token.Token{Kind: kind, Pos: l.pos, Index: f.ntok}
	f.ntok++
	return tok
}

func (l *Lexer) punct(op token.OpID) *token.Token {
	tok := l.newToken(token.Punct)
	tok.Op = op
	return tok
}

func (l *Lexer) eofToken() *token.Token {
	return &token.Token{Kind: token.EOF, Pos: l.position(0)}
}

// errorfAt reports a fatal condition. Even if the configured reporter
// elects to swallow the diagnostic, lexing cannot proceed, so the
// ErrInvalidSource fallback is returned in that case.
func (l *Lexer) errorfAt(pos token.Position, format string, args ...any) error {
	if err := l.handler.HandleErrorf(pos, format, args...); err != nil {
		return err
	}
	return l.handler.Error()
}

func (l *Lexer) peekChar() int {
	c := l.stream.ReadCharAcrossFiles()
	l.stream.UnreadChar(c)
	return c
}

// nextIs consumes the next character if it is expect, and otherwise puts
// it back.
func (l *Lexer) nextIs(expect int) bool {
	c := l.stream.ReadCharAcrossFiles()
	if c == expect {
		return true
	}
	l.stream.UnreadChar(c)
	return false
}

// skipLine discards input up to, but not including, the next newline.
func (l *Lexer) skipLine() {
	for {
		c := l.stream.ReadCharAcrossFiles()
		if c == EOF {
			return
		}
		if c == '\n' {
			l.stream.UnreadChar(c)
			return
		}
	}
}

// skipSpace skips horizontal whitespace and comments, reporting whether
// anything was skipped.
func (l *Lexer) skipSpace() (bool, error) {
	skipped, err := l.doSkipSpace()
	if !skipped || err != nil {
		return false, err
	}
	for {
		more, err := l.doSkipSpace()
		if err != nil {
			return true, err
		}
		if !more {
			return true, nil
		}
	}
}

func (l *Lexer) doSkipSpace() (bool, error) {
	c := l.stream.ReadCharAcrossFiles()
	if c == EOF {
		return false, nil
	}
	if isWhitespace(c) {
		return true, nil
	}
	if c == '/' {
		if l.nextIs('*') {
			if err := l.skipBlockComment(); err != nil {
				return false, err
			}
			return true, nil
		}
		if l.nextIs('/') {
			l.skipLine()
			return true, nil
		}
	}
	l.stream.UnreadChar(c)
	return false, nil
}

func (l *Lexer) skipBlockComment() error {
	pos := l.position(-2)
	maybeEnd := false
	for {
		c := l.stream.ReadCharAcrossFiles()
		if c == EOF {
			return l.errorfAt(pos, "premature end of block comment")
		}
		if c == '/' && maybeEnd {
			return nil
		}
		maybeEnd = c == '*'
	}
}

func isWhitespace(c int) bool {
	return c == ' ' || c == '\t' || c == '\f' || c == '\v'
}

func isDigit(c int) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c int) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlnum(c int) bool {
	return isAlpha(c) || isDigit(c)
}

// isIdentStart matches the characters that may begin an identifier once
// the encoding-prefix letters have been ruled out. Bytes 0x80..0xFD pass
// through raw so UTF-8 identifiers work without decoding.
func isIdentStart(c int) bool {
	return isAlpha(c) || c == '_' || c == '$' || (c >= 0x80 && c <= 0xFD)
}
