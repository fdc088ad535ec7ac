package template

import (
	"errors"
	"fmt"
)

// FormatErrorCode classifies template file failures.
type FormatErrorCode string

const (
	// ErrCodeRead is returned when the file cannot be read or written.
	ErrCodeRead FormatErrorCode = "T001"

	// ErrCodeCompression is returned for corrupt zstd data.
	ErrCodeCompression FormatErrorCode = "T002"

	// ErrCodeSyntax is returned for malformed JSON.
	ErrCodeSyntax FormatErrorCode = "T003"

	// ErrCodeSchema is returned when the document violates the template schema.
	ErrCodeSchema FormatErrorCode = "T004"

	// ErrCodeContent is returned for documents that pass the schema but
	// reference missing palette entries or unparseable states.
	ErrCodeContent FormatErrorCode = "T005"
)

// FormatError describes a template file that could not be loaded or saved.
type FormatError struct {
	Path    string
	Code    FormatErrorCode
	Message string
	Err     error
}

func (e *FormatError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: [%s] %s", e.Path, e.Code, e.Message)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// IsFormatError reports whether err is a FormatError with the given code.
func IsFormatError(err error, code FormatErrorCode) bool {
	var fe *FormatError
	if errors.As(err, &fe) {
		return fe.Code == code
	}
	return false
}
