package token

import "fmt"

// OpID identifies a punctuator. Single-character punctuators use their
// character value directly; multi-character operators get ids above the
// byte range. Digraph spellings are mapped to the punctuator they alias
// before a token is ever produced, so no ids exist for them.
type OpID int32

const (
	OpInc OpID = iota + 256 // ++
	OpDec                   // --
	OpArrow                 // ->
	OpLogAnd                // &&
	OpLogOr                 // ||
	OpShl                   // <<
	OpShr                   // >>
	OpEq                    // ==
	OpNe                    // !=
	OpLe                    // <=
	OpGe                    // >=
	OpAddAssign             // +=
	OpSubAssign             // -=
	OpMulAssign             // *=
	OpDivAssign             // /=
	OpModAssign             // %=
	OpAndAssign             // &=
	OpOrAssign              // |=
	OpXorAssign             // ^=
	OpShlAssign             // <<=
	OpShrAssign             // >>=
	OpHashHash              // ##
	OpEllipsis              // ...
)

var opSpellings = map[OpID]string{
	OpInc:       "++",
	OpDec:       "--",
	OpArrow:     "->",
	OpLogAnd:    "&&",
	OpLogOr:     "||",
	OpShl:       "<<",
	OpShr:       ">>",
	OpEq:        "==",
	OpNe:        "!=",
	OpLe:        "<=",
	OpGe:        ">=",
	OpAddAssign: "+=",
	OpSubAssign: "-=",
	OpMulAssign: "*=",
	OpDivAssign: "/=",
	OpModAssign: "%=",
	OpAndAssign: "&=",
	OpOrAssign:  "|=",
	OpXorAssign: "^=",
	OpShlAssign: "<<=",
	OpShrAssign: ">>=",
	OpHashHash:  "##",
	OpEllipsis:  "...",
}

// String returns the canonical source spelling of the punctuator.
func (p OpID) String() string {
	if s, ok := opSpellings[p]; ok {
		return s
	}
	if p > 0 && p < 256 {
		return string(rune(p))
	}
	return fmt.Sprintf("op(%d)", int32(p))
}
