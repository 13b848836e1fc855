// Package diag defines the error shape and diagnostic sink shared by every
// compiler pass (spec §6/§7).
package diag

import (
	"fmt"
	"strings"

	"github.com/titpetric/stylesc/ast"
)

// Kind classifies a compile error per spec §6.
type Kind string

const (
	KindRead       Kind = "read"
	KindSyntax     Kind = "syntax"
	KindEvaluation Kind = "evaluation"
)

// Frame is one entry of a backtrace: where a mixin/function/import call
// was made, and from what caller.
type Frame struct {
	Path       string
	Line       int
	Column     int
	CallerName string
}

// Error is the structured error surfaced to the host, matching spec §6's
// {kind, path, line, column, message, backtrace} shape. Every internal
// pass returns *Error (or wraps one) rather than a bare error, following
// the teacher's fmt.Errorf("...: %w", err) wrapping idiom but with a
// concrete, inspectable type instead of a string chain.
type Error struct {
	Kind       Kind
	Path       string
	Line       int
	Column     int
	Message    string
	Backtrace  []Frame
	wrapped    error
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s error", e.Kind)
	if e.Path != "" {
		fmt.Fprintf(&b, " in %s", e.Path)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " at line %d", e.Line)
		if e.Column > 0 {
			fmt.Fprintf(&b, ", column %d", e.Column)
		}
	}
	fmt.Fprintf(&b, ": %s", e.Message)
	return b.String()
}

func (e *Error) Unwrap() error { return e.wrapped }

// New builds an error of the given kind anchored to the given node's position.
func New(kind Kind, pos ast.Position, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Path:    pos.Path,
		Line:    pos.Line,
		Column:  pos.Column,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap attaches pos/kind to an underlying error, preserving it via Unwrap.
func Wrap(kind Kind, pos ast.Position, err error) *Error {
	if err == nil {
		return nil
	}
	if de, ok := err.(*Error); ok {
		return de
	}
	return &Error{
		Kind:    kind,
		Path:    pos.Path,
		Line:    pos.Line,
		Column:  pos.Column,
		Message: err.Error(),
		wrapped: err,
	}
}

// PushFrame prepends a backtrace frame to e and returns e. No pass in this
// module calls it, so errors carry an empty Backtrace.
func (e *Error) PushFrame(f Frame) *Error {
	e.Backtrace = append([]Frame{f}, e.Backtrace...)
	return e
}

// Sink routes non-fatal diagnostics (@warn, @debug) to the host. @error is
// always fatal and surfaces as an *Error instead.
type Sink interface {
	Warn(pos ast.Position, message string)
	Debug(pos ast.Position, message string)
}

// StderrSink is the default Sink, matching the teacher CLI's direct
// fmt.Fprintf(os.Stderr, ...) diagnostics (cmd/lessgo/main.go).
type StderrSink struct {
	Write func(string)
}

// NewStderrSink builds a Sink that writes formatted lines via w (typically
// a closure over os.Stderr), so hosts that want actual stderr output can
// wire w = func(s string) { fmt.Fprint(os.Stderr, s) }.
func NewStderrSink(w func(string)) *StderrSink {
	return &StderrSink{Write: w}
}

func (s *StderrSink) Warn(pos ast.Position, message string) {
	if s.Write != nil {
		s.Write(fmt.Sprintf("WARNING: %s in %s\n", message, pos.String()))
	}
}

func (s *StderrSink) Debug(pos ast.Position, message string) {
	if s.Write != nil {
		s.Write(fmt.Sprintf("DEBUG: %s in %s\n", message, pos.String()))
	}
}

// NullSink discards all diagnostics.
type NullSink struct{}

func (NullSink) Warn(ast.Position, string)  {}
func (NullSink) Debug(ast.Position, string) {}
