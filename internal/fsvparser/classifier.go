package fsvparser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// LineKind is the classification of a single report line.
type LineKind int

const (
	// KindSkip is an empty line, page footer or report title.
	KindSkip LineKind = iota
	// KindLevel1 is a top-level section header, e.g. "001 Net Revenue".
	KindLevel1
	// KindLevel2 is a sub-section header, e.g. "001.1 Service Revenue".
	KindLevel2
	// KindLevel3 is a leaf group header, e.g. "4010 Gross Service Revenue".
	KindLevel3
	// KindDataRow is any other line; it still has to decode to be emitted.
	KindDataRow
)

func (k LineKind) String() string {
	switch k {
	case KindSkip:
		return "skip"
	case KindLevel1:
		return "level1"
	case KindLevel2:
		return "level2"
	case KindLevel3:
		return "level3"
	case KindDataRow:
		return "data_row"
	default:
		return "unknown"
	}
}

// Classify assigns a trimmed line to exactly one LineKind. The checks run in a
// fixed order: skip markers, Level 1, Level 2, Level 3, then data row.
func Classify(line string, opts Options) LineKind {
	if line == "" || containsAny(line, opts.SkipMarkers) {
		return KindSkip
	}
	level2 := isLevel2Header(line)
	level3 := isLevel3Header(line)
	switch {
	case isLevel1Header(line) && !level2 && !level3:
		return KindLevel1
	case level2:
		return KindLevel2
	case level3:
		return KindLevel3
	default:
		return KindDataRow
	}
}

// isLevel1Header matches exactly three digits followed by whitespace.
func isLevel1Header(line string) bool {
	n := leadingDigits(line)
	return runeCount(line[:n]) == 3 && startsWithSpace(line[n:])
}

// isLevel2Header matches three digits, '.', one or more digits, whitespace.
func isLevel2Header(line string) bool {
	n := leadingDigits(line)
	if runeCount(line[:n]) != 3 || !strings.HasPrefix(line[n:], ".") {
		return false
	}
	rest := line[n+1:]
	m := leadingDigits(rest)
	return m > 0 && startsWithSpace(rest[m:])
}

// isLevel3Header matches exactly four digits followed by whitespace.
func isLevel3Header(line string) bool {
	n := leadingDigits(line)
	return runeCount(line[:n]) == 4 && startsWithSpace(line[n:])
}

// leadingDigits returns the byte length of the run of decimal digits at the
// start of s.
func leadingDigits(s string) int {
	for i, r := range s {
		if !unicode.IsDigit(r) {
			return i
		}
	}
	return len(s)
}

func startsWithSpace(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	return size > 0 && unicode.IsSpace(r)
}

func runeCount(s string) int {
	return utf8.RuneCountInString(s)
}

func containsAny(line string, markers []string) bool {
	for _, m := range markers {
		if m != "" && strings.Contains(line, m) {
			return true
		}
	}
	return false
}

// splitFirstField splits a trimmed line into its first whitespace-delimited
// token and the trimmed remainder.
func splitFirstField(line string) (string, string) {
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimSpace(line[i:])
}
