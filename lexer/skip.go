package lexer

import "github.com/ccfront/cclex/token"

// SkipCondIncl fast-forwards over a conditional-inclusion branch that the
// preprocessor has decided is false.
//
// C11 6.10 says skipped groups still have to be sequences of valid
// pp-tokens, but in practice compilers neither tokenize nor validate them,
// and neither do we: the body is scanned raw, just carefully enough not to
// mistake literal contents or nested conditionals for directive structure.
//
// On return the input is positioned exactly at the '#' of the balancing
// #else, #elif or #endif: both that '#' (with its recorded line and
// column) and the directive name have been pushed back, so the
// preprocessor's normal directive path takes over. Running off the end of
// input is tolerated here; the missing #endif is diagnosed elsewhere.
func (l *Lexer) SkipCondIncl() error {
	nest := 0
	for {
		bol := l.stream.Top().Col == 1
		if _, err := l.skipSpace(); err != nil {
			return err
		}
		c := l.stream.ReadCharAcrossFiles()
		if c == EOF {
			return nil
		}
		if c == '\'' {
			l.skipCharLit()
			continue
		}
		if c == '"' {
			l.skipStringLit()
			continue
		}
		if c != '#' || !bol {
			continue
		}
		col := l.stream.Top().Col - 1
		tok, err := l.Next()
		if err != nil {
			return err
		}
		if tok.Kind != token.Ident {
			continue
		}
		if nest == 0 && (tok.IsIdent("else") || tok.IsIdent("elif") || tok.IsIdent("endif")) {
			l.Unget(tok)
			hash := l.punct('#')
			hash.BOL = true
			hash.Pos.Col = col
			l.Unget(hash)
			return nil
		}
		switch {
		case tok.IsIdent("if"), tok.IsIdent("ifdef"), tok.IsIdent("ifndef"):
			nest++
		case nest > 0 && tok.IsIdent("endif"):
			nest--
		}
		l.skipLine()
	}
}

// skipCharLit consumes a character literal body without decoding it.
func (l *Lexer) skipCharLit() {
	if l.stream.ReadCharAcrossFiles() == '\\' {
		l.stream.ReadCharAcrossFiles()
	}
	c := l.stream.ReadCharAcrossFiles()
	for c != EOF && c != '\'' {
		c = l.stream.ReadCharAcrossFiles()
	}
}

// skipStringLit consumes a string literal body without decoding it.
func (l *Lexer) skipStringLit() {
	for c := l.stream.ReadCharAcrossFiles(); c != EOF && c != '"'; c = l.stream.ReadCharAcrossFiles() {
		if c == '\\' {
			l.stream.ReadCharAcrossFiles()
		}
	}
}
