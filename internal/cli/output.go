package cli

import (
	"errors"
	"fmt"
	"io"

	"go.dw1.io/re2/internal/json"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // match found, replacement done, pattern valid
	ExitFailure      = 1 // no match, or the pattern was rejected
	ExitCommandError = 2 // bad flags, unreadable input, bad configuration
)

// Error codes reported besides the engine's compile error tags.
const (
	ErrCodeBadArgument       = "bad_argument"
	ErrCodeAllocationFailure = "allocation_failure"
	ErrCodeInput             = "input"
	ErrCodeGeneric           = "error"
)

// ExitError carries the exit code for an error that has already been
// reported to the user.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// GetExitCode extracts the exit code from an error. Errors that are not an
// *ExitError were raised before any command ran and map to
// ExitCommandError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	return ExitCommandError
}

// OutputFormatter writes results as text or JSON.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// Response is the JSON envelope of every command.
type Response struct {
	Status string         `json:"status"`
	Data   any            `json:"data,omitempty"`
	Error  *ResponseError `json:"error,omitempty"`
}

// ResponseError describes a failure.
type ResponseError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Fragment string `json:"fragment,omitempty"`
}

// Success writes data. text renders it in text format.
func (f *OutputFormatter) Success(data any, text func(io.Writer)) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(Response{Status: "ok", Data: data})
	}

	text(f.Writer)

	return nil
}

// Error writes a failure.
func (f *OutputFormatter) Error(e ResponseError) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(Response{Status: "error", Error: &e})
	}

	_, err := fmt.Fprintf(f.Writer, "Error [%s]: %s\n", e.Code, e.Message)

	return err
}
