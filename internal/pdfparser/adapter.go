// Package pdfparser converts FSV statement PDFs into tables.
package pdfparser

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
	"unicode"

	"fjacquet/fsv-csv/internal/fileutils"
	"fjacquet/fsv-csv/internal/logging"
	"fjacquet/fsv-csv/internal/models"
	"fjacquet/fsv-csv/internal/parser"
	"fjacquet/fsv-csv/internal/parsererror"
)

// Source labels conversions of this adapter in logs and metrics.
const Source = "pdf"

var pdfMagic = []byte("%PDF-")

const snippetLength = 16

// Adapter implements parser.FullParser for FSV statement PDFs.
type Adapter struct {
	parser.BaseParser
	extractor PDFExtractor
	debugDump string

	dumpMu sync.Mutex // serializes writes to debugDump
}

// NewAdapter creates a new adapter for the pdfparser with dependency injection.
func NewAdapter(logger logging.Logger, extractor PDFExtractor) *Adapter {
	if extractor == nil {
		extractor = NewLedongthucExtractor()
	}
	return &Adapter{
		BaseParser: parser.NewBaseParser(logger),
		extractor:  extractor,
	}
}

// SetDebugDump makes every conversion write the extracted lines to path.
// An empty path disables the dump.
func (a *Adapter) SetDebugDump(path string) {
	a.debugDump = path
}

// Convert extracts the lines of a PDF document and parses them. It returns
// *parsererror.ExtractionError when the document cannot be read or holds no
// text, and *parsererror.EmptyResultError when no record is found.
func (a *Adapter) Convert(data []byte) (*models.Table, error) {
	start := time.Now()
	table, err := a.convert(data)
	a.ObserveConversion(Source, start, table, err)
	return table, err
}

func (a *Adapter) convert(data []byte) (*models.Table, error) {
	lines, err := a.ExtractLines(data)
	if err != nil {
		return nil, err
	}
	a.writeDebugDump(lines)
	return a.ParseLines(lines)
}

// ExtractLines runs the extractor and wraps its failures in
// *parsererror.ExtractionError.
func (a *Adapter) ExtractLines(data []byte) ([]string, error) {
	lines, err := a.extractor.ExtractLines(data)
	if err != nil {
		return nil, &parsererror.ExtractionError{Err: err}
	}
	if len(lines) == 0 {
		return nil, &parsererror.ExtractionError{Err: parsererror.ErrNoText}
	}

	a.GetLogger().Debug("Extracted text lines from PDF",
		logging.Field{Key: logging.FieldLines, Value: len(lines)})
	return lines, nil
}

func (a *Adapter) writeDebugDump(lines []string) {
	if a.debugDump == "" {
		return
	}
	a.dumpMu.Lock()
	defer a.dumpMu.Unlock()
	if err := fileutils.WriteLines(a.debugDump, lines); err != nil {
		a.GetLogger().WithError(err).Warn("Failed to write debug file",
			logging.Field{Key: logging.FieldFile, Value: a.debugDump})
		return
	}
	a.GetLogger().Debug("Wrote extracted PDF text to debug file",
		logging.Field{Key: logging.FieldFile, Value: a.debugDump})
}

// Parse reads a whole PDF document from r and converts it.
func (a *Adapter) Parse(r io.Reader) (*models.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading PDF data: %w", err)
	}
	return a.Convert(data)
}

// ConvertToFile converts inputFile and writes the table to outputFile.
func (a *Adapter) ConvertToFile(inputFile, outputFile string) error {
	data, err := a.readInput(inputFile)
	if err != nil {
		return err
	}

	a.GetLogger().Info("Converting PDF statement",
		logging.Field{Key: logging.FieldInputFile, Value: inputFile},
		logging.Field{Key: logging.FieldOutputFile, Value: outputFile})

	table, err := a.Convert(data)
	if err != nil {
		return parsererror.WithFilePath(err, inputFile)
	}
	return a.WriteToFile(table, outputFile)
}

// ValidateFormat checks that file starts with a PDF header and that text can
// be extracted from it. A rejected file yields *parsererror.InvalidFormatError
// and an unreadable one *parsererror.ExtractionError; both are counted as
// failed conversions.
func (a *Adapter) ValidateFormat(file string) error {
	a.GetLogger().Info("Validating PDF format",
		logging.Field{Key: logging.FieldFile, Value: file})

	data, err := a.readInput(file)
	if err != nil {
		return err
	}

	start := time.Now()
	if !bytes.HasPrefix(data, pdfMagic) {
		err = &parsererror.InvalidFormatError{
			FilePath:             file,
			ExpectedFormat:       "PDF",
			ActualContentSnippet: contentSnippet(data),
			Msg:                  "missing %PDF- header",
		}
	} else if _, extractErr := a.ExtractLines(data); extractErr != nil {
		err = &parsererror.InvalidFormatError{
			FilePath:       file,
			ExpectedFormat: "PDF",
			Msg:            fmt.Sprintf("no extractable text: %v", extractErr),
		}
	}
	if err != nil {
		a.ObserveConversion(Source, start, nil, err)
		return err
	}
	return nil
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

func contentSnippet(data []byte) string {
	if len(data) > snippetLength {
		data = data[:snippetLength]
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return '.'
	}, strings.ToValidUTF8(string(data), "."))
}
