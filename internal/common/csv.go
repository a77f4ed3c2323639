// Package common provides the table writers shared by every converter.
package common

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"fjacquet/fsv-csv/internal/models"

	"github.com/gocarina/gocsv"
)

// Delimiter is the field separator used for CSV output.
var Delimiter rune = ','

func init() {
	// Fallback to environment variable for backward compatibility
	if val := os.Getenv("CSV_DELIMITER"); val != "" {
		SetDelimiter([]rune(val)[0])
	}
}

// SetDelimiter sets the delimiter for CSV output.
func SetDelimiter(delim rune) {
	Delimiter = delim
}

// WriteTableCSV writes the table as CSV: a header row with the fixed column
// names followed by one row per record.
func WriteTableCSV(w io.Writer, table *models.Table) error {
	if table == nil {
		return fmt.Errorf("cannot write nil table to CSV")
	}

	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = Delimiter

	records := table.Records
	if records == nil {
		records = []models.Record{}
	}
	if err := gocsv.MarshalCSV(records, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}
