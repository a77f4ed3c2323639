package common

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"fjacquet/fsv-csv/internal/fileutils"
	"fjacquet/fsv-csv/internal/logging"
	"fjacquet/fsv-csv/internal/models"
)

// ExportOptions selects the output format of a table.
type ExportOptions struct {
	Format    string // models.FormatCSV or models.FormatXLSX
	SheetName string // XLSX only
}

// WriteTable writes the table to w in the requested format.
func WriteTable(w io.Writer, table *models.Table, opts ExportOptions) error {
	switch strings.ToLower(opts.Format) {
	case models.FormatCSV, "":
		return WriteTableCSV(w, table)
	case models.FormatXLSX:
		return WriteTableXLSX(w, table, opts.SheetName)
	default:
		return fmt.Errorf("unsupported output format: %s", opts.Format)
	}
}

// WriteTableFile writes the table to outputFile, creating parent directories
// as needed. An empty opts.Format is resolved from the file extension.
func WriteTableFile(table *models.Table, outputFile string, opts ExportOptions, logger logging.Logger) (err error) {
	if table == nil {
		return fmt.Errorf("cannot write nil table")
	}
	if opts.Format == "" {
		opts.Format = FormatFromPath(outputFile, models.FormatCSV)
	}

	logger.Info("Writing table to file",
		logging.Field{Key: logging.FieldFile, Value: outputFile},
		logging.Field{Key: logging.FieldFormat, Value: opts.Format},
		logging.Field{Key: logging.FieldCount, Value: table.Len()})

	file, err := fileutils.CreateFile(outputFile)
	if err != nil {
		logger.WithError(err).Error("Failed to create output file")
		return fmt.Errorf("error creating output file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("error closing output file: %w", cerr)
		}
	}()

	if err := WriteTable(file, table, opts); err != nil {
		logger.WithError(err).Error("Failed to write table")
		return err
	}
	return nil
}

// FormatFromPath maps a file extension to an export format, returning fallback
// for unknown extensions.
func FormatFromPath(path, fallback string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return models.FormatCSV
	case ".xlsx":
		return models.FormatXLSX
	default:
		return fallback
	}
}

// ContentType returns the MIME type of an export format.
func ContentType(format string) string {
	if strings.EqualFold(format, models.FormatXLSX) {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Extension returns the file extension, with dot, of an export format.
func Extension(format string) string {
	if strings.EqualFold(format, models.FormatXLSX) {
		return ".xlsx"
	}
	return ".csv"
}
