package models

// Export column headers, in output order.
const (
	ColumnLevel1      = "Level 1"
	ColumnLevel2      = "Level 2"
	ColumnLevel3Code  = "Level 3 Code"
	ColumnLevel3      = "Level 3"
	ColumnID          = "ID"
	ColumnNumericCode = "Numeric_Code"
	ColumnDescription = "Description"
)

// Export formats
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Columns returns the fixed export column order.
func Columns() []string {
	return []string{
		ColumnLevel1,
		ColumnLevel2,
		ColumnLevel3Code,
		ColumnLevel3,
		ColumnID,
		ColumnNumericCode,
		ColumnDescription,
	}
}
