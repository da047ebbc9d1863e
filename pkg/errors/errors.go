// Package errors classifies the failures seqdiag reports to users.
//
// The diagram core returns its own concrete errors: *lexer.Error and
// *parser.Error, each carrying a source line. The CLI, server and
// pipeline wrap those and their own failures in an [*Error] with a
// [Code]. The CLI prints [UserMessage]. The server turns the code into an
// HTTP status and a JSON body.
//
//	err := errors.Wrap(errors.ErrCodeSyntax, parseErr, "invalid diagram")
//	errors.Is(err, errors.ErrCodeSyntax) // true
//	errors.UserMessage(err)              // "line 3: end without matching block"
package errors

import (
	"errors"
	"fmt"
)

// Code is a stable, machine-readable error class. Codes appear in the
// server's JSON error bodies.
type Code string

const (
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidIDPrefix Code = "INVALID_ID_PREFIX"
	ErrCodeTooLarge        Code = "TOO_LARGE"

	// ErrCodeSyntax wraps a lexer or parser error.
	ErrCodeSyntax Code = "SYNTAX_ERROR"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a classified failure. Message is meant for people; Cause, when
// set, is reachable through the standard errors.Is and errors.As.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	s := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		s += ": " + e.Cause.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an *Error with a formatted message and no cause.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an *Error around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether any *Error in err's chain carries code.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// when there is none.
func GetCode(err error) Code {
	if e := outermost(err); e != nil {
		return e.Code
	}
	return ""
}

// UserMessage returns the text to show a user. Syntax errors show their
// cause, which names the offending line; other classified errors show
// their message without the code.
func UserMessage(err error) string {
	e := outermost(err)
	switch {
	case e == nil:
		return err.Error()
	case e.Code == ErrCodeSyntax && e.Cause != nil:
		return e.Cause.Error()
	default:
		return e.Message
	}
}

func outermost(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}
