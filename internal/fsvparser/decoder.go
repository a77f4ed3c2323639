package fsvparser

import (
	"strings"
	"unicode"
)

// DataRow holds the fields decoded from one data-row line.
type DataRow struct {
	ID          string
	NumericCode string
	Description string
}

// DecodeDataRow decodes a data-row candidate of the form
//
//	[ID] - [CODE] [_]X[_] DESCRIPTION
//
// where ID is the id prefix followed by word characters and CODE is a run of
// at least MinCodeLength digits. ok is false when the line does not follow the
// grammar or carries neither an ID nor a numeric code.
func DecodeDataRow(line string, opts Options) (DataRow, bool) {
	row, matched := decodeDataRow(line, opts)
	if !matched || (row.ID == "" && row.NumericCode == "") {
		return DataRow{}, false
	}
	return row, true
}

// decodeDataRow reports whether line follows the data-row grammar. A matched
// row may still carry neither an ID nor a numeric code.
func decodeDataRow(line string, opts Options) (row DataRow, matched bool) {
	rs := []rune(line)
	i := 0

	if hasRunePrefix(rs, 0, opts.IDPrefix) {
		end := len([]rune(opts.IDPrefix))
		for end < len(rs) && isWordRune(rs[end]) {
			end++
		}
		if end > len([]rune(opts.IDPrefix)) {
			if k := skipSpaces(rs, end); k < len(rs) && rs[k] == '-' {
				row.ID = string(rs[:end])
				i = end
			}
		}
	}

	i = skipSpaces(rs, i)
	if i >= len(rs) || rs[i] != '-' {
		return DataRow{}, false
	}
	i = skipSpaces(rs, i+1)

	digitsEnd := i
	for digitsEnd < len(rs) && unicode.IsDigit(rs[digitsEnd]) {
		digitsEnd++
	}
	switch n := digitsEnd - i; {
	case n >= opts.MinCodeLength:
		row.NumericCode = string(rs[i:digitsEnd])
		i = digitsEnd
	case n > 0:
		return DataRow{}, false
	}

	i = skipUnderscoreSeparator(rs, i)
	if !hasRunePrefix(rs, i, opts.Delimiter) {
		return DataRow{}, false
	}
	i = skipUnderscoreSeparator(rs, i+len([]rune(opts.Delimiter)))
	row.Description = strings.TrimSpace(string(rs[i:]))

	if row.ID != "" && row.NumericCode == "" {
		row.NumericCode, row.Description = promoteFusedCode(row.Description, opts.MinCodeLength)
	}
	return row, true
}

// promoteFusedCode recovers a numeric code that ended up as the first word of
// the description. It only applies when more text follows the code.
func promoteFusedCode(description string, minLen int) (string, string) {
	first, rest := splitFirstField(description)
	if rest == "" || !isAllDigits(first) || len([]rune(first)) < minLen {
		return "", description
	}
	return first, rest
}

// skipUnderscoreSeparator skips optional spaces, one optional '_' and
// optional spaces.
func skipUnderscoreSeparator(rs []rune, i int) int {
	i = skipSpaces(rs, i)
	if i < len(rs) && rs[i] == '_' {
		i++
	}
	return skipSpaces(rs, i)
}

func skipSpaces(rs []rune, i int) int {
	for i < len(rs) && unicode.IsSpace(rs[i]) {
		i++
	}
	return i
}

func hasRunePrefix(rs []rune, at int, prefix string) bool {
	p := []rune(prefix)
	if len(p) == 0 || at+len(p) > len(rs) {
		return false
	}
	for k, r := range p {
		if rs[at+k] != r {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
