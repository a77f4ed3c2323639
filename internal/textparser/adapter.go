// Package textparser converts already-extracted statement text, such as the
// debug dump of a PDF conversion, into tables.
package textparser

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"fjacquet/fsv-csv/internal/fileutils"
	"fjacquet/fsv-csv/internal/logging"
	"fjacquet/fsv-csv/internal/models"
	"fjacquet/fsv-csv/internal/parser"
	"fjacquet/fsv-csv/internal/parsererror"
)

// Source labels conversions of this adapter in logs and metrics.
const Source = "text"

// Adapter implements parser.FullParser for plain UTF-8 text, one report line
// per text line.
type Adapter struct {
	parser.BaseParser
}

// NewAdapter creates a new text adapter.
func NewAdapter(logger logging.Logger) *Adapter {
	return &Adapter{BaseParser: parser.NewBaseParser(logger)}
}

// ConvertText parses text and returns its records.
func (a *Adapter) ConvertText(text string) (*models.Table, error) {
	start := time.Now()
	table, err := a.convertText(text)
	a.ObserveConversion(Source, start, table, err)
	return table, err
}

func (a *Adapter) convertText(text string) (*models.Table, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &parsererror.ExtractionError{Err: parsererror.ErrNoText}
	}
	return a.ParseLines(strings.Split(text, "\n"))
}

// Parse reads all of r as text and converts it.
func (a *Adapter) Parse(r io.Reader) (*models.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading text data: %w", err)
	}
	return a.ConvertText(string(data))
}

// ConvertToFile converts inputFile and writes the table to outputFile.
func (a *Adapter) ConvertToFile(inputFile, outputFile string) error {
	data, err := a.readInput(inputFile)
	if err != nil {
		return err
	}

	a.GetLogger().Info("Converting statement text",
		logging.Field{Key: logging.FieldInputFile, Value: inputFile},
		logging.Field{Key: logging.FieldOutputFile, Value: outputFile})

	table, err := a.ConvertText(string(data))
	if err != nil {
		return parsererror.WithFilePath(err, inputFile)
	}
	return a.WriteToFile(table, outputFile)
}

// ValidateFormat accepts UTF-8 text files without NUL bytes. Rejected files
// yield *parsererror.InvalidFormatError.
func (a *Adapter) ValidateFormat(file string) error {
	data, err := a.readInput(file)
	if err != nil {
		return err
	}
	if utf8.Valid(data) && bytes.IndexByte(data, 0) < 0 {
		return nil
	}

	err = &parsererror.InvalidFormatError{
		FilePath:       file,
		ExpectedFormat: "text",
		Msg:            "file is not plain UTF-8 text",
	}
	a.ObserveConversion(Source, time.Now(), nil, err)
	return err
}

// readInput reads file and reports failures as *parsererror.ExtractionError.
func (a *Adapter) readInput(file string) ([]byte, error) {
	start := time.Now()
	data, err := fileutils.ReadFile(file)
	if err != nil {
		extractErr := &parsererror.ExtractionError{FilePath: file, Err: err}
		a.ObserveConversion(Source, start, nil, extractErr)
		return nil, extractErr
	}
	return data, nil
}
