package site

import (
	"errors"
	"fmt"
)

// Severity classifies a pipeline failure. Fatal errors abort the whole run;
// Recoverable errors are logged and the run moves on to the next template.
type Severity int

const (
	Recoverable Severity = iota
	Fatal
)

// Error is a pipeline failure tied to a filesystem path. The render loop
// dispatches on Severity so individual steps don't each decide whether to
// abort or continue.
type Error struct {
	Severity Severity
	Path     string
	Msg      string
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Msg, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Msg, e.Path)
}

func (e *Error) Unwrap() error { return e.Err }

func fatal(path, msg string, err error) *Error {
	return &Error{Severity: Fatal, Path: path, Msg: msg, Err: err}
}

func recoverable(path, msg string, err error) *Error {
	return &Error{Severity: Recoverable, Path: path, Msg: msg, Err: err}
}

// IsFatal reports whether err (or anything it wraps) is a fatal pipeline error.
func IsFatal(err error) bool {
	var se *Error
	return errors.As(err, &se) && se.Severity == Fatal
}
