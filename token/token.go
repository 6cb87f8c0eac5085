// Package token defines the preprocessing-token model produced by the
// lexer and consumed by the preprocessor and parser.
package token

import (
	"fmt"
	"strconv"
)

// Position identifies a location in a source file. Line and Col are
// 1-based; a zero Line means the position is unknown.
type Position struct {
	Filename string
	Line     int
	Col      int
}

func (pos Position) String() string {
	name := pos.Filename
	if name == "" {
		name = "(unknown)"
	}
	if pos.Line <= 0 {
		return name
	}
	return fmt.Sprintf("%s:%d:%d", name, pos.Line, pos.Col)
}

// Encoding tags a string or character literal with the encoding prefix it
// was written with.
type Encoding uint8

const (
	EncNone  Encoding = iota
	EncWide           // L"..."
	EncUTF16          // u"..."
	EncUTF32          // U"..."
	EncUTF8           // u8"..."
)

func (e Encoding) Prefix() string {
	switch e {
	case EncWide:
		return "L"
	case EncUTF16:
		return "u"
	case EncUTF32:
		return "U"
	case EncUTF8:
		return "u8"
	}
	return ""
}

// Token is a single preprocessing token.
//
// The position header is common to all kinds; which payload fields are
// meaningful depends on Kind. Tokens are immutable once produced, except
// for the BOL and LeadingSpace flags, which the tokenizer stamps exactly
// once before handing the token out.
type Token struct {
	Kind Kind

	// Pos is the position of the token's first character. Index is the
	// token's sequence number within its source, assigned in reading order.
	Pos   Position
	Index int

	// BOL reports that this token is the first on its line. LeadingSpace
	// reports that whitespace or comments immediately precede it.
	BOL          bool
	LeadingSpace bool

	// HideSet is an opaque handle owned by the macro expander; the lexer
	// only ever allocates it empty (zero).
	HideSet int

	Text string   // Ident, Number: raw text
	Str  []byte   // String: decoded bytes
	Rune int32    // Char: decoded code point; Invalid: offending byte
	Enc  Encoding // String, Char
	Op   OpID     // Punct
}

// IsIdent reports whether the token is an identifier with the given name.
func (t *Token) IsIdent(name string) bool {
	return t.Kind == Ident && t.Text == name
}

// IsPunct reports whether the token is the given punctuator.
func (t *Token) IsPunct(op OpID) bool {
	return t.Kind == Punct && t.Op == op
}

// String returns a readable rendition of the token, close to its source
// spelling. Used for diagnostics and token dumps.
func (t *Token) String() string {
	switch t.Kind {
	case Ident, Number:
		return t.Text
	case Punct:
		return t.Op.String()
	case String:
		return t.Enc.Prefix() + strconv.Quote(string(t.Str))
	case Char:
		return t.Enc.Prefix() + "'" + string(rune(t.Rune)) + "'"
	case Space:
		return " "
	case Newline:
		return "\\n"
	case EOF:
		return "(eof)"
	case Invalid:
		return strconv.Quote(string(rune(t.Rune)))
	}
	return "(bad token)"
}
