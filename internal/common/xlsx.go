package common

import (
	"fmt"
	"io"

	"fjacquet/fsv-csv/internal/models"

	"github.com/xuri/excelize/v2"
)

// DefaultSheetName is the name of the only worksheet of an exported workbook.
const DefaultSheetName = "Sheet1"

// WriteTableXLSX writes the table as a single-sheet workbook. Row 1 holds the
// column names; records follow in table order.
func WriteTableXLSX(w io.Writer, table *models.Table, sheetName string) (err error) {
	if table == nil {
		return fmt.Errorf("cannot write nil table to XLSX")
	}
	if sheetName == "" {
		sheetName = DefaultSheetName
	}

	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("error closing workbook: %w", cerr)
		}
	}()

	if sheetName != DefaultSheetName {
		if err := f.SetSheetName(DefaultSheetName, sheetName); err != nil {
			return fmt.Errorf("error naming sheet %q: %w", sheetName, err)
		}
	}

	for i, row := range table.Rows() {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("error addressing row %d: %w", i+1, err)
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("error writing row %d: %w", i+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("error writing XLSX data: %w", err)
	}
	return nil
}
