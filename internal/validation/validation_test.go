package validation_test

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/fsv-csv/internal/parsererror"
	"fjacquet/fsv-csv/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputFile(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "statement.pdf")
	require.NoError(t, os.WriteFile(testFile, []byte("%PDF-1.4"), 0600))

	tests := []struct {
		name        string
		path        string
		errContains string
	}{
		{name: "regular file", path: testFile},
		{name: "empty path", path: "", errContains: "must be specified"},
		{name: "missing file", path: filepath.Join(tmpDir, "absent.pdf"), errContains: "path does not exist"},
		{name: "directory", path: tmpDir, errContains: "not a regular file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.InputFile(tt.path)
			if tt.errContains == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.errContains)
			var validationErr *parsererror.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.path, validationErr.FilePath)
			assert.Equal(t, validationErr.Reason, parsererror.Reason(err))
		})
	}
}

func TestDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "file.txt")
	require.NoError(t, os.WriteFile(testFile, []byte("x"), 0600))

	assert.NoError(t, validation.Directory(tmpDir))
	assert.ErrorContains(t, validation.Directory(filepath.Join(tmpDir, "absent")), "directory does not exist")
	assert.ErrorContains(t, validation.Directory(testFile), "not a directory")

	var validationErr *parsererror.ValidationError
	require.ErrorAs(t, validation.Directory(testFile), &validationErr)
	assert.Equal(t, testFile, validationErr.FilePath)
}

func TestOutputFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"csv", false},
		{"xlsx", false},
		{"XLSX", false},
		{"", true},
		{"json", true},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			err := validation.OutputFormat(tt.format)
			if tt.wantErr {
				assert.ErrorContains(t, err, "unsupported output format")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExtension(t *testing.T) {
	allowed := []string{".pdf"}

	assert.NoError(t, validation.Extension("statement.pdf", allowed))
	assert.NoError(t, validation.Extension("STATEMENT.PDF", allowed))
	assert.Error(t, validation.Extension("statement.docx", allowed))
	assert.Error(t, validation.Extension("statement", allowed))
	assert.Error(t, validation.Extension("statement.pdf", nil))
}
