package token

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a codec or verifier call failed
type ErrorKind string

// Failure kinds. Each one needs different guidance for the person holding
// the token, so callers must be able to tell them apart.
const (
	KindMalformedToken       ErrorKind = "MalformedToken"
	KindUnsupportedAlgorithm ErrorKind = "UnsupportedAlgorithm"
	KindInvalidHeader        ErrorKind = "InvalidHeader"
	KindInvalidPayload       ErrorKind = "InvalidPayload"
	KindSignatureMismatch    ErrorKind = "SignatureMismatch"
)

// Error is returned by Encode, Parse and Verify
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

// Error implements the error interface
func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	case e.Msg != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return string(e.Kind)
	}
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so the sentinels below work with errors.Is
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is
var (
	ErrMalformedToken       = &Error{Kind: KindMalformedToken}
	ErrUnsupportedAlgorithm = &Error{Kind: KindUnsupportedAlgorithm}
	ErrInvalidHeader        = &Error{Kind: KindInvalidHeader}
	ErrInvalidPayload       = &Error{Kind: KindInvalidPayload}
	ErrSignatureMismatch    = &Error{Kind: KindSignatureMismatch}
)

// KindOf returns the kind of a token error, or an empty kind for anything else
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func malformed(msg string, err error) *Error {
	return &Error{Kind: KindMalformedToken, Msg: msg, Err: err}
}
