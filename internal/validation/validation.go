// Package validation checks user-supplied paths and options before work starts.
package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/fsv-csv/internal/models"
	"fjacquet/fsv-csv/internal/parsererror"
)

// InputFile checks that path exists and is a regular file. Failures are
// *parsererror.ValidationError.
func InputFile(path string) error {
	if path == "" {
		return &parsererror.ValidationError{Reason: "input file must be specified"}
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return &parsererror.ValidationError{FilePath: path, Reason: "path does not exist"}
	}
	if err != nil {
		return &parsererror.ValidationError{FilePath: path, Reason: "error checking path", Err: err}
	}
	if !info.Mode().IsRegular() {
		return &parsererror.ValidationError{FilePath: path, Reason: "not a regular file"}
	}
	return nil
}

// Directory checks that path exists and is a directory. Failures are
// *parsererror.ValidationError.
func Directory(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return &parsererror.ValidationError{FilePath: path, Reason: "directory does not exist"}
	}
	if err != nil {
		return &parsererror.ValidationError{FilePath: path, Reason: "error checking path", Err: err}
	}
	if !info.IsDir() {
		return &parsererror.ValidationError{FilePath: path, Reason: "not a directory"}
	}
	return nil
}

// OutputFormat checks if the given format is supported.
func OutputFormat(format string) error {
	switch strings.ToLower(format) {
	case models.FormatCSV, models.FormatXLSX:
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s. Supported formats are '%s', '%s'",
			format, models.FormatCSV, models.FormatXLSX)
	}
}

// Extension checks that the extension of name is one of allowed, ignoring case.
func Extension(name string, allowed []string) error {
	ext := filepath.Ext(name)
	if ext != "" {
		for _, a := range allowed {
			if strings.EqualFold(ext, a) {
				return nil
			}
		}
	}
	return fmt.Errorf("file extension %q is not one of %s", ext, strings.Join(allowed, ", "))
}
