package parser

import (
	"io"

	"fjacquet/fsv-csv/internal/logging"
	"fjacquet/fsv-csv/internal/models"
)

// Parser reads a statement from r and returns the records it contains.
// Implementations return *parsererror.ExtractionError when no text can be read
// and *parsererror.EmptyResultError when the text holds no records; a returned
// table is never empty.
type Parser interface {
	Parse(r io.Reader) (*models.Table, error)
}

// Validator checks whether a file can be handled by a parser. A rejected file
// yields *parsererror.InvalidFormatError and an unreadable one
// *parsererror.ExtractionError.
type Validator interface {
	ValidateFormat(filePath string) error
}

// FileConverter converts an input file and writes the table to an output file.
type FileConverter interface {
	ConvertToFile(inputFile, outputFile string) error
	WriteToFile(table *models.Table, outputFile string) error
}

// LoggerConfigurable is implemented by components whose logger can be replaced.
type LoggerConfigurable interface {
	SetLogger(logger logging.Logger)
}

// FullParser combines every parser capability; the container hands these out.
type FullParser interface {
	Parser
	Validator
	FileConverter
	LoggerConfigurable
}
