package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

type ErrorKind string

const (
	ErrIO            ErrorKind = "io"
	ErrSQL           ErrorKind = "sql"
	ErrConfig        ErrorKind = "config"
	ErrQueryParse    ErrorKind = "query_parse"
	ErrUnknownField  ErrorKind = "unknown_field"
	ErrEscape        ErrorKind = "escape"
	ErrValueFormat   ErrorKind = "value_format"
	ErrDateFormat    ErrorKind = "date_format"
	ErrCriterionType ErrorKind = "criterion_type"
)

// Error is the single error type returned by every package of the module.
// Value carries the offending user text, Accepted the list of valid names
// for enumerated values.
type Error struct {
	Kind     ErrorKind
	Message  string
	Value    string
	Accepted []string
	Cause    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	base := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if len(e.Accepted) > 0 {
		base = fmt.Sprintf("%s (accepted: %s)", base, strings.Join(e.Accepted, ", "))
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", base, e.Cause)
	}
	return base
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func Wrap(kind ErrorKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

func New(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func EscapeError(msg string) *Error {
	return &Error{Kind: ErrEscape, Message: msg}
}

func ValueFormatError(value string, cause error) *Error {
	return &Error{Kind: ErrValueFormat, Message: fmt.Sprintf("invalid value %q", value), Value: value, Cause: cause}
}

func EnumValueError(value string, accepted []string) *Error {
	return &Error{Kind: ErrValueFormat, Message: fmt.Sprintf("invalid value %q", value), Value: value, Accepted: accepted}
}

func DateFormatError(value string) *Error {
	return &Error{Kind: ErrDateFormat, Message: fmt.Sprintf("invalid date format %q", value), Value: value}
}

func CriterionTypeError(msg string, cause error) *Error {
	return &Error{Kind: ErrCriterionType, Message: msg, Cause: cause}
}

func QueryParseError(msg string) *Error {
	return &Error{Kind: ErrQueryParse, Message: msg}
}

func UnknownFieldError(name string) *Error {
	return &Error{Kind: ErrUnknownField, Message: fmt.Sprintf("unknown named token %q", name), Value: name}
}

// IsKind reports whether err is, or wraps, an *Error of the given kind.
// Only the outermost *Error in the chain is inspected.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
