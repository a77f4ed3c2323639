package pdfparser

import (
	"math"
	"sort"
	"strings"
)

// DefaultYTolerance groups glyphs whose baselines differ by up to two points.
const DefaultYTolerance = 2.0

// Fragment is a positioned piece of text on a page. Y grows upwards, as in
// PDF user space.
type Fragment struct {
	X, Y     float64
	W        float64 // advance width, 0 when unknown
	FontSize float64
	S        string
}

// AssembleLines merges the fragments of one page into text lines. Fragments
// are ordered top to bottom, then left to right; fragments whose baselines are
// within tolerance of the first fragment of a line join that line. A space is
// inserted where two fragments are visibly apart. Lines are trimmed and empty
// lines dropped.
func AssembleLines(fragments []Fragment, tolerance float64) []string {
	if len(fragments) == 0 {
		return nil
	}

	sorted := make([]Fragment, len(fragments))
	copy(sorted, fragments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Y > sorted[j].Y
	})

	var rows [][]Fragment
	var anchor float64
	for _, f := range sorted {
		if len(rows) > 0 && math.Abs(anchor-f.Y) <= tolerance {
			rows[len(rows)-1] = append(rows[len(rows)-1], f)
			continue
		}
		anchor = f.Y
		rows = append(rows, []Fragment{f})
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		if line := joinRow(row); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func joinRow(row []Fragment) string {
	sort.SliceStable(row, func(i, j int) bool {
		return row[i].X < row[j].X
	})

	var b strings.Builder
	for i, f := range row {
		if i > 0 && needsSpace(row[i-1], f) {
			b.WriteByte(' ')
		}
		b.WriteString(f.S)
	}
	return strings.TrimSpace(b.String())
}

// needsSpace reports whether the horizontal gap between prev and next is wide
// enough to be a word break that the document did not encode as a glyph.
func needsSpace(prev, next Fragment) bool {
	if prev.W <= 0 {
		return false
	}
	if strings.HasSuffix(prev.S, " ") || strings.HasPrefix(next.S, " ") {
		return false
	}
	gap := next.X - (prev.X + prev.W)
	threshold := 0.2 * prev.FontSize
	if threshold < 1 {
		threshold = 1
	}
	return gap > threshold
}
