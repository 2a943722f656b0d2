package searchcrit

import scerrors "github.com/nonibytes/searchcrit/searchcrit/errors"

// Re-exported so callers of the facade need a single import.
type Error = scerrors.Error
type ErrorKind = scerrors.ErrorKind

const (
	ErrIO            = scerrors.ErrIO
	ErrSQL           = scerrors.ErrSQL
	ErrConfig        = scerrors.ErrConfig
	ErrQueryParse    = scerrors.ErrQueryParse
	ErrUnknownField  = scerrors.ErrUnknownField
	ErrEscape        = scerrors.ErrEscape
	ErrValueFormat   = scerrors.ErrValueFormat
	ErrDateFormat    = scerrors.ErrDateFormat
	ErrCriterionType = scerrors.ErrCriterionType
)

func IsKind(err error, kind ErrorKind) bool { return scerrors.IsKind(err, kind) }

func Wrap(kind ErrorKind, msg string, cause error) *Error { return scerrors.Wrap(kind, msg, cause) }
