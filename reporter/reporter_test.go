package reporter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccfront/cclex/token"
)

func pos(line, col int) token.Position {
	return token.Position{Filename: "f.c", Line: line, Col: col}
}

func TestErrorWithPos(t *testing.T) {
	underlying := errors.New("unterminated string")
	err := Error(pos(3, 14), underlying)
	assert.Equal(t, "f.c:3:14: unterminated string", err.Error())
	assert.Equal(t, pos(3, 14), err.GetPosition())
	assert.Same(t, underlying, err.Unwrap())
	assert.ErrorIs(t, err, underlying)
}

func TestHandlerLatchesFirstError(t *testing.T) {
	h := NewHandler(nil)
	first := h.HandleErrorf(pos(1, 1), "first")
	require.Error(t, first)

	second := h.HandleErrorf(pos(2, 2), "second")
	assert.Equal(t, first, second)
	assert.Equal(t, first, h.Error())
	assert.Equal(t, first, h.ReporterError())
}

func TestHandlerSwallowedErrors(t *testing.T) {
	var seen []ErrorWithPos
	rep := NewReporter(func(err ErrorWithPos) error {
		seen = append(seen, err)
		return nil // keep going
	}, nil)
	h := NewHandler(rep)

	assert.NoError(t, h.HandleErrorf(pos(1, 1), "a"))
	assert.NoError(t, h.HandleErrorf(pos(2, 1), "b"))
	assert.Len(t, seen, 2)

	// errors were reported even though none stuck
	assert.ErrorIs(t, h.Error(), ErrInvalidSource)
	assert.NoError(t, h.ReporterError())
}

func TestHandlerPlainError(t *testing.T) {
	h := NewHandler(nil)
	plain := errors.New("cannot open foo.c")
	assert.Same(t, plain, h.HandleError(plain))
	assert.Same(t, plain, h.Error())
}

func TestHandlerWarnings(t *testing.T) {
	var warnings []ErrorWithPos
	rep := NewReporter(nil, func(err ErrorWithPos) {
		warnings = append(warnings, err)
	})
	h := NewHandler(rep)

	h.HandleWarningf(pos(5, 1), "unknown escape character: \\%c", 'q')
	require.Len(t, warnings, 1)
	assert.Equal(t, `f.c:5:1: unknown escape character: \q`, warnings[0].Error())

	// warnings never latch
	assert.NoError(t, h.Error())
}
