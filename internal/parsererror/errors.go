// Package parsererror defines the typed errors returned by the statement
// converters. Callers distinguish failure kinds with errors.As.
package parsererror

import (
	"errors"
	"fmt"
)

// ErrNoText is the cause recorded when a document opens but yields no lines.
var ErrNoText = errors.New("document contains no extractable text")

// ExtractionError reports that text could not be read from the input document:
// the file is missing, corrupt, or has no extractable text.
type ExtractionError struct {
	FilePath string
	Err      error
}

func (e *ExtractionError) Error() string {
	if e.FilePath != "" {
		return fmt.Sprintf("failed to extract text from '%s': %v", e.FilePath, e.Err)
	}
	return fmt.Sprintf("failed to extract text: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// EmptyResultError reports that text was extracted but no line matched the
// header and data-row conventions.
type EmptyResultError struct {
	FilePath     string
	LinesScanned int
}

func (e *EmptyResultError) Error() string {
	if e.FilePath != "" {
		return fmt.Sprintf("no structured data found in '%s' (%d lines scanned)", e.FilePath, e.LinesScanned)
	}
	return fmt.Sprintf("no structured data found (%d lines scanned)", e.LinesScanned)
}

// ValidationError reports a user-supplied path that cannot be used as input.
type ValidationError struct {
	FilePath string
	Reason   string
	Err      error
}

func (e *ValidationError) Error() string {
	msg := "validation failed"
	if e.FilePath != "" {
		msg += " for " + e.FilePath
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// InvalidFormatError represents an error where the input file does not conform
// to the expected format for a specific parser.
type InvalidFormatError struct {
	FilePath             string
	ExpectedFormat       string
	ActualContentSnippet string // Optional: a snippet of the actual content for debugging
	Msg                  string
}

func (e *InvalidFormatError) Error() string {
	if e.ActualContentSnippet != "" {
		return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s. Content snippet: '%s'",
			e.FilePath, e.Msg, e.ExpectedFormat, e.ActualContentSnippet)
	}
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

// Reason maps a conversion error to the short, user-facing reason shown by the
// CLI and in batch logs.
func Reason(err error) string {
	var extractErr *ExtractionError
	var emptyErr *EmptyResultError
	var formatErr *InvalidFormatError
	var validationErr *ValidationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &extractErr):
		return "failed to extract text"
	case errors.As(err, &emptyErr):
		return "no structured data found"
	case errors.As(err, &formatErr):
		return "invalid file format"
	case errors.As(err, &validationErr):
		return validationErr.Reason
	default:
		return err.Error()
	}
}

// WithFilePath fills in the file path of extraction and empty-result errors
// that were raised before the path was known.
func WithFilePath(err error, filePath string) error {
	var extractErr *ExtractionError
	if errors.As(err, &extractErr) && extractErr.FilePath == "" {
		extractErr.FilePath = filePath
	}
	var emptyErr *EmptyResultError
	if errors.As(err, &emptyErr) && emptyErr.FilePath == "" {
		emptyErr.FilePath = filePath
	}
	return err
}
