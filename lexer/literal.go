package lexer

import (
	"bytes"
	"fmt"

	"github.com/ccfront/cclex/token"
)

// readNumber reads a pp-number. The grammar here is deliberately loose:
// integers, floats and all bases come out as one undifferentiated token
// (".32e." is fine), and validation happens when the preprocessor or
// parser converts the token. A '+' or '-' continues the number only right
// after an exponent marker.
func (l *Lexer) readNumber(c int) *token.Token {
	var b bytes.Buffer
	b.WriteByte(byte(c))
	last := c
	for {
		c := l.stream.ReadCharAcrossFiles()
		expSign := (last == 'e' || last == 'E' || last == 'p' || last == 'P') &&
			(c == '+' || c == '-')
		if !isDigit(c) && !isAlpha(c) && c != '.' && !expSign {
			l.stream.UnreadChar(c)
			tok := l.newToken(token.Number)
			tok.Text = b.String()
			return tok
		}
		b.WriteByte(byte(c))
		last = c
	}
}

// readIdent reads an identifier. Raw bytes 0x80 and up are taken as-is, so
// UTF-8 names work without decoding; a \u or \U escape is decoded as a
// universal character name and re-encoded as UTF-8 (C11 6.4.2.1).
func (l *Lexer) readIdent(c int) (*token.Token, error) {
	var b bytes.Buffer
	b.WriteByte(byte(c))
	for {
		c = l.stream.ReadCharAcrossFiles()
		if isAlnum(c) || c == '_' || c == '$' || (c >= 0x80 && c <= 0xFD) {
			b.WriteByte(byte(c))
			continue
		}
		if c == '\\' && (l.peekChar() == 'u' || l.peekChar() == 'U') {
			r, err := l.readEscapedChar()
			if err != nil {
				return nil, err
			}
			b.WriteRune(rune(r))
			continue
		}
		l.stream.UnreadChar(c)
		tok := l.newToken(token.Ident)
		tok.Text = b.String()
		return tok, nil
	}
}

// readStringLit reads a string literal body after the opening quote.
// Escapes are decoded here: universal character names are re-encoded as
// UTF-8, everything else is stored as a single byte.
func (l *Lexer) readStringLit(enc token.Encoding) (*token.Token, error) {
	var b bytes.Buffer
	for {
		c := l.stream.ReadCharAcrossFiles()
		if c == EOF {
			return nil, l.errorfAt(l.pos, "unterminated string")
		}
		if c == '"' {
			break
		}
		if c != '\\' {
			b.WriteByte(byte(c))
			continue
		}
		isUCN := l.peekChar() == 'u' || l.peekChar() == 'U'
		r, err := l.readEscapedChar()
		if err != nil {
			return nil, err
		}
		if isUCN {
			b.WriteRune(rune(r))
			continue
		}
		b.WriteByte(byte(r))
	}
	tok := l.newToken(token.String)
	tok.Str = b.Bytes()
	tok.Enc = enc
	return tok, nil
}

// readCharLit reads a character literal body after the opening quote.
// For plain char literals the value is narrowed through a signed byte,
// matching how the constant behaves in expressions.
func (l *Lexer) readCharLit(enc token.Encoding) (*token.Token, error) {
	c := l.stream.ReadCharAcrossFiles()
	r := c
	if c == '\\' {
		var err error
		r, err = l.readEscapedChar()
		if err != nil {
			return nil, err
		}
	}
	if l.stream.ReadCharAcrossFiles() != '\'' {
		return nil, l.errorfAt(l.pos, "unterminated char")
	}
	tok := l.newToken(token.Char)
	if enc == token.EncNone {
		tok.Rune = int32(int8(r))
	} else {
		tok.Rune = int32(r)
	}
	tok.Enc = enc
	return tok, nil
}

// readEscapedChar decodes one escape sequence, the backslash already
// consumed. An unrecognized letter is taken as itself with a warning;
// everything else that goes wrong here is fatal.
func (l *Lexer) readEscapedChar() (int, error) {
	pos := l.position(-1)
	c := l.stream.ReadCharAcrossFiles()
	switch c {
	case '\'', '"', '?', '\\':
		return c, nil
	case 'a':
		return '\a', nil
	case 'b':
		return '\b', nil
	case 'f':
		return '\f', nil
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case 'v':
		return '\v', nil
	case 'e': // GNU extension
		return '\033', nil
	case 'x':
		return l.readHexChar()
	case 'u':
		return l.readUniversalChar(4)
	case 'U':
		return l.readUniversalChar(8)
	case '0', '1', '2', '3', '4', '5', '6', '7':
		return l.readOctalChar(c), nil
	}
	l.handler.HandleWarningf(pos, "unknown escape character: \\%c", c)
	return c, nil
}

// readOctalChar reads up to two more octal digits after the first.
func (l *Lexer) readOctalChar(c int) int {
	r := c - '0'
	if !l.nextOct() {
		return r
	}
	r = r<<3 | (l.stream.ReadCharAcrossFiles() - '0')
	if !l.nextOct() {
		return r
	}
	return r<<3 | (l.stream.ReadCharAcrossFiles() - '0')
}

func (l *Lexer) nextOct() bool {
	c := l.peekChar()
	return c >= '0' && c <= '7'
}

// readHexChar reads a \x escape: one or more hex digits, however many
// there are.
func (l *Lexer) readHexChar() (int, error) {
	pos := l.position(-2)
	c := l.stream.ReadCharAcrossFiles()
	if !isHexDigit(c) {
		return 0, l.errorfAt(pos, "\\x is not followed by a hexadecimal character: %c", c)
	}
	r := 0
	for ; ; c = l.stream.ReadCharAcrossFiles() {
		switch {
		case c >= '0' && c <= '9':
			r = r<<4 | (c - '0')
		case c >= 'a' && c <= 'f':
			r = r<<4 | (c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			r = r<<4 | (c - 'A' + 10)
		default:
			l.stream.UnreadChar(c)
			return r, nil
		}
	}
}

// readUniversalChar reads a \u or \U escape; length is 4 or 8.
func (l *Lexer) readUniversalChar(length int) (int, error) {
	pos := l.position(-2)
	r := 0
	for i := 0; i < length; i++ {
		c := l.stream.ReadCharAcrossFiles()
		switch {
		case c >= '0' && c <= '9':
			r = r<<4 | (c - '0')
		case c >= 'a' && c <= 'f':
			r = r<<4 | (c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			r = r<<4 | (c - 'A' + 10)
		default:
			return 0, l.errorfAt(pos, "invalid universal character: %c", c)
		}
	}
	if !isValidUCN(r) {
		return 0, l.errorfAt(pos, "invalid universal character: %s", ucnSpelling(length, r))
	}
	return r, nil
}

func ucnSpelling(length, r int) string {
	if length == 8 {
		return fmt.Sprintf("\\U%08x", r)
	}
	return fmt.Sprintf("\\u%04x", r)
}

// isValidUCN enforces C11 6.4.3: no surrogates (U+D800..U+DFFF), and no
// encoding of basic-set characters — code points below U+00A0 are out,
// except for '$', '@' and '`' (C11 5.2.1p3 exceptions).
func isValidUCN(c int) bool {
	if 0xD800 <= c && c <= 0xDFFF {
		return false
	}
	return c >= 0xA0 || c == '$' || c == '@' || c == '`'
}

func isHexDigit(c int) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
