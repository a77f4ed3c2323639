package fsvparser

import "fjacquet/fsv-csv/internal/models"

// TableBuilder accumulates records in encounter order.
type TableBuilder struct {
	records []models.Record
}

// Add appends a record.
func (b *TableBuilder) Add(r models.Record) {
	b.records = append(b.records, r)
}

// Len returns the number of records added so far.
func (b *TableBuilder) Len() int {
	return len(b.records)
}

// Table returns the finished table. Later calls to Add do not affect it.
func (b *TableBuilder) Table() *models.Table {
	records := make([]models.Record, len(b.records))
	copy(records, b.records)
	return &models.Table{Records: records}
}
