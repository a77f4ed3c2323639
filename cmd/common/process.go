// Package common contains shared functionality for command handlers
package common

import (
	"fmt"
	"path/filepath"
	"strings"

	"fjacquet/fsv-csv/internal/common"
	"fjacquet/fsv-csv/internal/logging"
	"fjacquet/fsv-csv/internal/parser"
	"fjacquet/fsv-csv/internal/validation"
)

// ProcessFile converts inputFile to outputFile using the given parser. With
// validate set, the input is checked first and the validator's error, such as
// *parsererror.InvalidFormatError, is returned without converting.
func ProcessFile(p parser.FullParser, inputFile, outputFile string, validate bool, log logging.Logger) error {
	if err := validation.InputFile(inputFile); err != nil {
		return err
	}

	// Set the logger on the parser using the new interface
	p.SetLogger(log)

	if validate {
		log.Info("Validating format...")
		if err := p.ValidateFormat(inputFile); err != nil {
			return err
		}
		log.Info("Validation successful.")
	}

	if err := p.ConvertToFile(inputFile, outputFile); err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}
	log.Info("Conversion completed successfully!",
		logging.Field{Key: logging.FieldInputFile, Value: inputFile},
		logging.Field{Key: logging.FieldOutputFile, Value: outputFile})
	return nil
}

// OutputFile returns output when set, otherwise the input path with its
// extension replaced by the one of format.
func OutputFile(input, output, format string) string {
	if output != "" {
		return output
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + common.Extension(format)
}
