package re2

import (
	"errors"
	"fmt"

	"go.dw1.io/re2/regexp"
)

// ErrBadArgument indicates malformed input: an unknown or ill-typed option,
// a dead or uninitialized pattern handle, or a text pattern that failed to
// compile.
//
// It can be wrapped together with a [*CompileError].
var ErrBadArgument = errors.New("bad argument")

// ErrAllocationFailure indicates that a result buffer could not be obtained.
// No partial result is returned alongside it.
var ErrAllocationFailure = errors.New("allocation failure")

// ErrorCode is the stable tag of an engine failure.
type ErrorCode string

const (
	CodeNoError           ErrorCode = "no_error"
	CodeInternal          ErrorCode = "internal"
	CodeBadEscape         ErrorCode = "bad_escape"
	CodeBadCharClass      ErrorCode = "bad_char_class"
	CodeBadCharRange      ErrorCode = "bad_char_range"
	CodeMissingBracket    ErrorCode = "missing_bracket"
	CodeMissingParen      ErrorCode = "missing_paren"
	CodeTrailingBackslash ErrorCode = "trailing_backslash"
	CodeRepeatArgument    ErrorCode = "repeat_argument"
	CodeRepeatSize        ErrorCode = "repeat_size"
	CodeRepeatOp          ErrorCode = "repeat_op"
	CodeBadPerlOp         ErrorCode = "bad_perl_op"
	CodeBadUTF8           ErrorCode = "bad_utf8"
	CodeBadNamedCapture   ErrorCode = "bad_named_capture"
	CodePatternTooLarge   ErrorCode = "pattern_too_large"
)

var codeTags = map[regexp.Code]ErrorCode{
	regexp.NoError:                CodeNoError,
	regexp.ErrorInternal:          CodeInternal,
	regexp.ErrorBadEscape:         CodeBadEscape,
	regexp.ErrorBadCharClass:      CodeBadCharClass,
	regexp.ErrorBadCharRange:      CodeBadCharRange,
	regexp.ErrorMissingBracket:    CodeMissingBracket,
	regexp.ErrorMissingParen:      CodeMissingParen,
	regexp.ErrorTrailingBackslash: CodeTrailingBackslash,
	regexp.ErrorRepeatArgument:    CodeRepeatArgument,
	regexp.ErrorRepeatSize:        CodeRepeatSize,
	regexp.ErrorRepeatOp:          CodeRepeatOp,
	regexp.ErrorBadPerlOp:         CodeBadPerlOp,
	regexp.ErrorBadUTF8:           CodeBadUTF8,
	regexp.ErrorBadNamedCapture:   CodeBadNamedCapture,
	regexp.ErrorPatternTooLarge:   CodePatternTooLarge,
}

// MapCode returns the tag for an engine failure code. Codes outside the
// known set map to [CodeInternal].
func MapCode(c regexp.Code) ErrorCode {
	if tag, ok := codeTags[c]; ok {
		return tag
	}

	return CodeInternal
}

// CompileError is returned when the engine rejects a pattern.
type CompileError struct {
	// Code is the stable failure tag.
	Code ErrorCode
	// Message is the engine's description, verbatim.
	Message string
	// Fragment is the offending part of the pattern, verbatim. It may be
	// empty.
	Fragment string
}

func (e *CompileError) Error() string {
	if e.Fragment == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}

	return fmt.Sprintf("%s: %s (at %q)", e.Code, e.Message, e.Fragment)
}

// newCompileError converts an engine compile failure.
func newCompileError(err error) *CompileError {
	var re *regexp.Error
	if errors.As(err, &re) {
		return &CompileError{Code: MapCode(re.Code), Message: re.Message, Fragment: re.Arg}
	}

	return &CompileError{Code: CodeInternal, Message: err.Error()}
}

func badArgument(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrBadArgument}, args...)...)
}
