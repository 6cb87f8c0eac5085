// Package reporter contains the diagnostic machinery shared by the lexer
// and its callers: position-carrying errors, pluggable error/warning
// reporters, and a sticky handler that remembers the first fatal error.
package reporter

import (
	"sync"

	"github.com/ccfront/cclex/token"
)

// ErrorReporter is responsible for reporting the given error. If the
// reporter returns a non-nil error, lexing aborts with that error.
// Returning nil lets the caller keep pulling tokens to collect as many
// diagnostics as it can, though the lexer's own fatal conditions always
// abort regardless.
type ErrorReporter func(err ErrorWithPos) error

// WarningReporter is responsible for reporting the given warning. Warnings
// never stop lexing by themselves; a caller that wants warnings promoted
// to errors records that choice here and checks it after lexing.
type WarningReporter func(ErrorWithPos)

type Reporter interface {
	Error(ErrorWithPos) error
	Warning(ErrorWithPos)
}

func NewReporter(errs ErrorReporter, warnings WarningReporter) Reporter {
	return reporterFuncs{errs: errs, warnings: warnings}
}

type reporterFuncs struct {
	errs     ErrorReporter
	warnings WarningReporter
}

func (r reporterFuncs) Error(err ErrorWithPos) error {
	if r.errs == nil {
		return err
	}
	return r.errs(err)
}

func (r reporterFuncs) Warning(err ErrorWithPos) {
	if r.warnings != nil {
		r.warnings(err)
	}
}

// Handler wraps a Reporter and latches the first error it decides to keep.
// Once an error sticks, every later Handle call returns it unchanged.
type Handler struct {
	reporter Reporter

	mu           sync.Mutex
	errsReported bool
	err          error
}

func NewHandler(rep Reporter) *Handler {
	if rep == nil {
		rep = NewReporter(nil, nil)
	}
	return &Handler{reporter: rep}
}

func (h *Handler) HandleErrorf(pos token.Position, format string, args ...any) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.err != nil {
		return h.err
	}
	h.errsReported = true
	err := h.reporter.Error(Errorf(pos, format, args...))
	h.err = err
	return err
}

func (h *Handler) HandleError(err error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.err != nil {
		return h.err
	}
	if ewp, ok := err.(ErrorWithPos); ok {
		h.errsReported = true
		err = h.reporter.Error(ewp)
	}
	h.err = err
	return err
}

func (h *Handler) HandleWarningf(pos token.Position, format string, args ...any) {
	// no lock; warnings don't touch the latched state
	h.reporter.Warning(Errorf(pos, format, args...))
}

// Error returns the latched error, or ErrInvalidSource if errors were
// reported but the reporter suppressed all of them.
func (h *Handler) Error() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.errsReported && h.err == nil {
		return ErrInvalidSource
	}
	return h.err
}

// ReporterError returns the latched error without the ErrInvalidSource
// fallback. The lexer checks this to stop early once an error stuck.
func (h *Handler) ReporterError() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.err
}
