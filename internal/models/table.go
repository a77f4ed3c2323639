package models

// Table is the ordered collection of records produced by one conversion.
// Row order equals the order in which data lines appeared in the source text.
type Table struct {
	Records []Record
}

// Len returns the number of records in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// IsEmpty reports whether the table holds no records.
func (t *Table) IsEmpty() bool {
	return t.Len() == 0
}

// Rows returns the header row followed by one row per record.
func (t *Table) Rows() [][]string {
	rows := make([][]string, 0, t.Len()+1)
	rows = append(rows, Columns())
	if t == nil {
		return rows
	}
	for _, r := range t.Records {
		rows = append(rows, r.Values())
	}
	return rows
}
