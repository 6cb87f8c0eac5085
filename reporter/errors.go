package reporter

import (
	"errors"
	"fmt"

	"github.com/ccfront/cclex/token"
)

// ErrInvalidSource is a sentinel error returned when lexing fails but the
// configured ErrorReporter swallowed every reported error by returning nil.
var ErrInvalidSource = errors.New("lex failed: invalid source")

// ErrorWithPos is an error about a source file that carries the location
// that caused it.
//
// The value of Error() contains both the position and the underlying
// message; Unwrap() yields only the underlying error.
type ErrorWithPos interface {
	error
	GetPosition() token.Position
	Unwrap() error
}

func Error(pos token.Position, err error) ErrorWithPos {
	return errorWithPos{pos: pos, underlying: err}
}

func Errorf(pos token.Position, format string, args ...any) ErrorWithPos {
	return errorWithPos{pos: pos, underlying: fmt.Errorf(format, args...)}
}

type errorWithPos struct {
	underlying error
	pos        token.Position
}

func (e errorWithPos) Error() string {
	return fmt.Sprintf("%s: %v", e.pos, e.underlying)
}

func (e errorWithPos) GetPosition() token.Position {
	return e.pos
}

func (e errorWithPos) Unwrap() error {
	return e.underlying
}

var _ ErrorWithPos = errorWithPos{}
