package teal

import (
	"fmt"

	"github.com/pkg/errors"
)

// ParseError is returned for malformed instruction text. It carries the
// 0-based index of the offending source line, matching the indexing the
// first parser pass walks lines with.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d: %s", e.Line, e.Msg)
}

func newParseError(line int, format string, args ...interface{}) *ParseError {
	return &ParseError{Line: line, Msg: fmt.Sprintf(format, args...)}
}

// Diagnostic is a non-fatal validation finding: a version or mode mismatch.
// Diagnostics never abort parsing; they accumulate on Program.Diagnostics.
type Diagnostic struct {
	Line int
	Msg  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d: %s", d.Line, d.Msg)
}

// CoreError is the single user-facing error kind for everything that isn't
// a parse error or a diagnostic: unknown detector/printer names, plugin
// misconfiguration, file I/O. The front-end (out of scope for this core)
// is expected to catch CoreError and surface it on its own output channel.
type CoreError struct {
	msg string
	err error
}

func newCoreError(msg string) *CoreError {
	return &CoreError{msg: msg}
}

func wrapCoreError(err error, msg string) *CoreError {
	return &CoreError{msg: msg, err: errors.Wrap(err, msg)}
}

func (e *CoreError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return e.msg
}

func (e *CoreError) Unwrap() error { return e.err }
