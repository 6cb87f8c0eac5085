package token

// Kind classifies a preprocessing token.
//
// Note that pp-tokens are looser than the tokens the parser eventually
// consumes: a keyword such as "if" is still just an Ident here, and a
// Number carries raw, unvalidated text (".32e." is a perfectly fine
// pp-number). The preprocessor converts pp-tokens to regular tokens and
// rejects the invalid ones.
type Kind uint8

const (
	Ident Kind = iota
	// Punct covers both punctuators and the operator spellings synthesized
	// from them; the Punct field of the token identifies which one.
	Punct
	Number
	String
	Char
	// Space tokens never escape the tokenizer; a run of whitespace and
	// comments is folded into the LeadingSpace flag of the next real token.
	Space
	Newline
	EOF
	Invalid
)

var kindNames = [...]string{
	Ident:   "ident",
	Punct:   "punct",
	Number:  "number",
	String:  "string",
	Char:    "char",
	Space:   "space",
	Newline: "newline",
	EOF:     "eof",
	Invalid: "invalid",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}
