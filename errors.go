// FILE: lixenwraith/petmaster/errors.go
package petmaster

import (
	"errors"
	"fmt"
)

// Sentinel errors matched with errors.Is.
var (
	// ErrIO marks a recoverable file failure: missing, unreadable, unwritable or a failed backup.
	ErrIO = errors.New("document i/o failure")

	// ErrSyntax marks a malformed document. It is fatal to a lifecycle run.
	ErrSyntax = errors.New("document syntax failure")

	// ErrDependencyUnavailable marks a feature downgraded because an optional dependency is absent.
	ErrDependencyUnavailable = errors.New("optional dependency unavailable")
)

// Kind classifies a DocumentError.
type Kind uint8

const (
	KindIO Kind = iota + 1
	KindSyntax
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindSyntax:
		return "syntax"
	default:
		return "unknown"
	}
}

// DocumentError describes a failure on one document.
type DocumentError struct {
	Kind Kind
	Op   string // load, create, read, save, backup, reload
	Path string
	Line int // 1-based; 0 when the parser reported no position
	Err  error
}

func (e *DocumentError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s %s (line %d): %v", e.Op, e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind.
func (e *DocumentError) Is(target error) bool {
	switch target {
	case ErrIO:
		return e.Kind == KindIO
	case ErrSyntax:
		return e.Kind == KindSyntax
	}
	return false
}

// DependencyError records a feature flag that was forced off.
type DependencyError struct {
	Flag  string
	Needs string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("feature %q disabled: requirement %q not satisfied", e.Flag, e.Needs)
}

func (e *DependencyError) Is(target error) bool {
	return target == ErrDependencyUnavailable
}

// IsFatal reports whether err must halt a lifecycle run.
func IsFatal(err error) bool {
	return errors.Is(err, ErrSyntax)
}

func ioError(op, path string, err error) error {
	return &DocumentError{Kind: KindIO, Op: op, Path: path, Err: err}
}

func syntaxError(op, path string, err error) error {
	return &DocumentError{Kind: KindSyntax, Op: op, Path: path, Line: syntaxLine(err), Err: err}
}

// syntaxLine extracts the position from yaml.v3 messages of the form "yaml: line N: ...".
func syntaxLine(err error) int {
	var line int
	if _, scanErr := fmt.Sscanf(err.Error(), "yaml: line %d:", &line); scanErr == nil {
		return line
	}
	return 0
}
