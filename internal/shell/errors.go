package shell

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures that stop the shell.
type ErrorKind string

const (
	KindUserInput  ErrorKind = "user_input"
	KindResolution ErrorKind = "resolution"
	KindSpawn      ErrorKind = "spawn"
	KindIO         ErrorKind = "io"
)

// Error wraps an underlying failure with the operation and kind.
type Error struct {
	Op   string
	Kind ErrorKind
	Path string // optional
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	msg := e.Op
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind reports whether err carries an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind == kind
	}
	return false
}
