package regexp

import (
	"errors"
	"regexp/syntax"

	pcresyntax "github.com/dlclark/regexp2/syntax"
)

// Code classifies a compile failure. The set mirrors RE2's error codes.
type Code int

const (
	NoError Code = iota
	ErrorInternal
	ErrorBadEscape
	ErrorBadCharClass
	ErrorBadCharRange
	ErrorMissingBracket
	ErrorMissingParen
	ErrorTrailingBackslash
	ErrorRepeatArgument
	ErrorRepeatSize
	ErrorRepeatOp
	ErrorBadPerlOp
	ErrorBadUTF8
	ErrorBadNamedCapture
	ErrorPatternTooLarge
)

// Error is a compile failure reported by a backend.
type Error struct {
	// Code is the classified failure.
	Code Code
	// Message is the backend's own error text.
	Message string
	// Arg is the offending fragment of the pattern.
	Arg string
	// Err is the backend error, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the backend error.
func (e *Error) Unwrap() error {
	return e.Err
}

var syntaxCodes = map[syntax.ErrorCode]Code{
	syntax.ErrInternalError:         ErrorInternal,
	syntax.ErrInvalidEscape:         ErrorBadEscape,
	syntax.ErrInvalidCharClass:      ErrorBadCharClass,
	syntax.ErrInvalidCharRange:      ErrorBadCharRange,
	syntax.ErrMissingBracket:        ErrorMissingBracket,
	syntax.ErrMissingParen:          ErrorMissingParen,
	syntax.ErrUnexpectedParen:       ErrorMissingParen,
	syntax.ErrTrailingBackslash:     ErrorTrailingBackslash,
	syntax.ErrMissingRepeatArgument: ErrorRepeatArgument,
	syntax.ErrInvalidRepeatSize:     ErrorRepeatSize,
	syntax.ErrInvalidRepeatOp:       ErrorRepeatOp,
	syntax.ErrInvalidPerlOp:         ErrorBadPerlOp,
	syntax.ErrInvalidUTF8:           ErrorBadUTF8,
	syntax.ErrInvalidNamedCapture:   ErrorBadNamedCapture,
	syntax.ErrNestingDepth:          ErrorPatternTooLarge,
	syntax.ErrLarge:                 ErrorPatternTooLarge,
}

// fromSyntax classifies an error returned by the RE2-syntax front end or a
// backend built on it (coregex wraps *syntax.Error).
func fromSyntax(err error) *Error {
	var se *syntax.Error
	if !errors.As(err, &se) {
		return &Error{Code: ErrorInternal, Message: err.Error(), Err: err}
	}

	code, ok := syntaxCodes[se.Code]
	if !ok {
		code = ErrorInternal
	}

	return &Error{Code: code, Message: se.Error(), Arg: se.Expr, Err: err}
}

// fromPCRE classifies a regexp2 parse error.
func fromPCRE(err error) *Error {
	var pe *pcresyntax.Error
	if !errors.As(err, &pe) {
		return &Error{Code: ErrorInternal, Message: err.Error(), Err: err}
	}

	code := ErrorInternal
	switch pe.Code {
	case pcresyntax.ErrMissingParen, pcresyntax.ErrUnexpectedParen:
		code = ErrorMissingParen
	case pcresyntax.ErrUnterminatedBracket:
		code = ErrorMissingBracket
	case pcresyntax.ErrInvalidRepeatSize:
		code = ErrorRepeatSize
	case pcresyntax.ErrMissingRepeatArgument:
		code = ErrorRepeatArgument
	case pcresyntax.ErrInvalidRepeatOp:
		code = ErrorRepeatOp
	case pcresyntax.ErrIllegalEndEscape:
		code = ErrorTrailingBackslash
	case pcresyntax.ErrReversedCharRange, pcresyntax.ErrInvalidCharRange:
		code = ErrorBadCharRange
	case pcresyntax.ErrUnrecognizedEscape:
		code = ErrorBadEscape
	case pcresyntax.ErrInvalidGroupName:
		code = ErrorBadNamedCapture
	case pcresyntax.ErrUnrecognizedGrouping:
		code = ErrorBadPerlOp
	}

	return &Error{Code: code, Message: pe.Error(), Arg: pe.Expr, Err: err}
}

func tooLarge(pattern string) *Error {
	return &Error{
		Code:    ErrorPatternTooLarge,
		Message: "pattern too large - compile failed",
		Arg:     pattern,
	}
}
