// Package fsvparser turns the text lines of a financial statement version (FSV)
// report into a flat table of hierarchy-annotated line items.
//
// A report is a sequence of lines of five kinds: three levels of numbered
// headers ("001 Net Revenue", "001.1 Service Revenue", "4010 Gross Service
// Revenue"), data rows tagged with the X delimiter
// ("CADTX123 - 40102345 _X_ Fee income") and noise such as page footers. The
// parser walks the lines once, tracks the active headers and emits one record
// per accepted data row.
package fsvparser

import (
	"fmt"
	"strings"
	"unicode"
)

// Default grammar values for the reports this parser was built for.
const (
	DefaultIDPrefix      = "CADT"
	DefaultDelimiter     = "X"
	DefaultMinCodeLength = 8
)

// DefaultSkipMarkers are substrings identifying page footers and report titles.
var DefaultSkipMarkers = []string{
	"PAGE",
	"Deloitte India Management Reporting",
}

// Options configures line classification and data-row decoding.
// The zero value is not usable; start from DefaultOptions.
type Options struct {
	// SkipMarkers lists case-sensitive substrings; a line containing any of
	// them is ignored.
	SkipMarkers []string
	// IDPrefix starts an identifier token, e.g. "CADT" in "CADTX123".
	IDPrefix string
	// Delimiter is the literal token separating the codes from the description.
	Delimiter string
	// MinCodeLength is the minimum number of digits of a numeric code.
	MinCodeLength int
}

// DefaultOptions returns the options matching the standard FSV layout.
func DefaultOptions() Options {
	markers := make([]string, len(DefaultSkipMarkers))
	copy(markers, DefaultSkipMarkers)
	return Options{
		SkipMarkers:   markers,
		IDPrefix:      DefaultIDPrefix,
		Delimiter:     DefaultDelimiter,
		MinCodeLength: DefaultMinCodeLength,
	}
}

// Validate checks that the options describe an unambiguous grammar.
func (o Options) Validate() error {
	if o.IDPrefix == "" {
		return fmt.Errorf("id prefix must not be empty")
	}
	for _, r := range o.IDPrefix {
		if !isWordRune(r) {
			return fmt.Errorf("id prefix %q must contain only letters, digits or underscores", o.IDPrefix)
		}
	}
	if o.Delimiter == "" {
		return fmt.Errorf("delimiter must not be empty")
	}
	first := []rune(o.Delimiter)[0]
	if unicode.IsDigit(first) || unicode.IsSpace(first) || first == '_' || first == '-' {
		return fmt.Errorf("delimiter %q must not start with a digit, space, '_' or '-'", o.Delimiter)
	}
	if o.MinCodeLength < 1 {
		return fmt.Errorf("minimum code length must be positive, got %d", o.MinCodeLength)
	}
	for _, m := range o.SkipMarkers {
		if strings.TrimSpace(m) == "" {
			return fmt.Errorf("skip markers must not be blank")
		}
	}
	return nil
}
