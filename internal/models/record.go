// Package models provides the data structures used throughout the application.
package models

// HierarchyContext is the header context in effect while walking a statement.
// Level2 is only meaningful under the Level1 that set it, and the Level3 pair
// only under the Level1/Level2 that were active when it was set.
type HierarchyContext struct {
	Level1     string
	Level2     string
	Level3Code string
	Level3Desc string
}

// Record is one flattened statement line item annotated with its hierarchy.
type Record struct {
	Level1      string `csv:"Level 1"`      // Top-level section label
	Level2      string `csv:"Level 2"`      // Sub-section label
	Level3Code  string `csv:"Level 3 Code"` // Leaf account group code
	Level3Desc  string `csv:"Level 3"`      // Leaf account group label
	ID          string `csv:"ID"`           // Identifier code, e.g. CADTX123
	NumericCode string `csv:"Numeric_Code"` // GL/numeric account code, digits only
	Description string `csv:"Description"`  // Free-text line description
}

// NewRecord builds a Record from a hierarchy snapshot and decoded row fields.
func NewRecord(ctx HierarchyContext, id, numericCode, description string) Record {
	return Record{
		Level1:      ctx.Level1,
		Level2:      ctx.Level2,
		Level3Code:  ctx.Level3Code,
		Level3Desc:  ctx.Level3Desc,
		ID:          id,
		NumericCode: numericCode,
		Description: description,
	}
}

// IsValid reports whether the record carries an identifier or a numeric code.
func (r Record) IsValid() bool {
	return r.ID != "" || r.NumericCode != ""
}

// Values returns the record fields in export column order.
func (r Record) Values() []string {
	return []string{
		r.Level1,
		r.Level2,
		r.Level3Code,
		r.Level3Desc,
		r.ID,
		r.NumericCode,
		r.Description,
	}
}
