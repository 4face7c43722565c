package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies failures surfaced to the user.
type ErrorType string

const (
	ErrorTypeInvalidArgument ErrorType = "invalid_argument"
	ErrorTypeFormat          ErrorType = "format"
	ErrorTypeNotFound        ErrorType = "not_found"

	// ErrorTypeInternal covers anything not raised by this package.
	ErrorTypeInternal ErrorType = "internal"
)

// ArgumentError reports a violated precondition, such as mismatched
// weights and numbers or a missing positional argument.
type ArgumentError struct {
	Type   ErrorType
	Field  string
	Reason string
}

// NewArgumentError creates an invalid-argument error for field.
func NewArgumentError(field, reason string) *ArgumentError {
	return &ArgumentError{
		Type:   ErrorTypeInvalidArgument,
		Field:  field,
		Reason: reason,
	}
}

func (e *ArgumentError) Error() string {
	return e.Reason
}

// FormatError reports a token that is not a real number.
type FormatError struct {
	Type       ErrorType
	Source     string
	Token      string
	Position   int
	Underlying error
}

// NewFormatError creates a format error for the token at position (0-based)
// in source. Source is a file path, or empty for command-line tokens.
func NewFormatError(source, token string, position int, err error) *FormatError {
	return &FormatError{
		Type:       ErrorTypeFormat,
		Source:     source,
		Token:      token,
		Position:   position,
		Underlying: err,
	}
}

func (e *FormatError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("invalid number %q at position %d in %s", e.Token, e.Position+1, e.Source)
	}
	return fmt.Sprintf("invalid number %q at position %d", e.Token, e.Position+1)
}

func (e *FormatError) Unwrap() error {
	return e.Underlying
}

// FileError reports an input file that does not exist or cannot be opened.
type FileError struct {
	Type       ErrorType
	Path       string
	Operation  string
	Underlying error
}

// NewFileError creates a not-found error for a file that is missing or
// cannot be opened or read. err keeps the OS cause.
func NewFileError(op, path string, err error) *FileError {
	return &FileError{
		Type:       ErrorTypeNotFound,
		Path:       path,
		Operation:  op,
		Underlying: err,
	}
}

func (e *FileError) Error() string {
	return fmt.Sprintf("file %s failed for %s: %v", e.Operation, e.Path, e.Underlying)
}

func (e *FileError) Unwrap() error {
	return e.Underlying
}

// IsInvalidArgument reports whether err carries an ArgumentError.
func IsInvalidArgument(err error) bool {
	var target *ArgumentError
	return errors.As(err, &target)
}

// IsFormat reports whether err carries a FormatError.
func IsFormat(err error) bool {
	var target *FormatError
	return errors.As(err, &target)
}

// IsNotFound reports whether err carries a FileError.
func IsNotFound(err error) bool {
	var target *FileError
	return errors.As(err, &target)
}

// KindOf returns the classification of err, or "" for nil.
func KindOf(err error) ErrorType {
	switch {
	case err == nil:
		return ""
	case IsInvalidArgument(err):
		return ErrorTypeInvalidArgument
	case IsFormat(err):
		return ErrorTypeFormat
	case IsNotFound(err):
		return ErrorTypeNotFound
	default:
		return ErrorTypeInternal
	}
}

// ExitCode maps err to a process exit status.
func ExitCode(err error) int {
	switch KindOf(err) {
	case "":
		return 0
	case ErrorTypeInvalidArgument:
		return 2
	case ErrorTypeFormat:
		return 3
	case ErrorTypeNotFound:
		return 4
	default:
		return 1
	}
}
