package upstream

import (
	"errors"
	"fmt"
)

// Kind classifies why a fetch from the upstream API failed.
type Kind string

const (
	KindNetwork  Kind = "network"
	KindStatus   Kind = "status"
	KindNotFound Kind = "not_found"
	KindParse    Kind = "parse"
)

// Error is returned by every Fetcher in this package.
type Error struct {
	Kind       Kind
	StatusCode int
	Msg        string
	Err        error
}

func (e *Error) Error() string {
	msg := e.Msg
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("upstream %s: %s: %v", e.Kind, msg, e.Err)
	}
	return fmt.Sprintf("upstream %s: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of err, or "" if err is not an *Error.
func KindOf(err error) Kind {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Kind
	}
	return ""
}

func newError(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}
