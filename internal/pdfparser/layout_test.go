package pdfparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// glyphs lays out s one character per fragment in a 6pt-wide monospace font.
func glyphs(s string, x, y float64) []Fragment {
	var out []Fragment
	for _, r := range s {
		if r != ' ' {
			out = append(out, Fragment{X: x, Y: y, W: 6, FontSize: 10, S: string(r)})
		}
		x += 6
	}
	return out
}

func TestAssembleLines(t *testing.T) {
	tests := []struct {
		name      string
		fragments []Fragment
		want      []string
	}{
		{
			name:      "no fragments",
			fragments: nil,
			want:      nil,
		},
		{
			name: "top to bottom regardless of stream order",
			fragments: append(append(
				glyphs("4010 Gross Service Revenue", 40, 722),
				glyphs("001 Net Revenue", 40, 750)...),
				glyphs("001.1 Service Revenue", 40, 736)...),
			want: []string{"001 Net Revenue", "001.1 Service Revenue", "4010 Gross Service Revenue"},
		},
		{
			name: "baseline jitter stays on one line",
			fragments: append(
				glyphs("CADTX1 -", 40, 700),
				glyphs("40102345 _X_ Fee", 94, 701.5)...),
			want: []string{"CADTX1 - 40102345 _X_ Fee"},
		},
		{
			name: "columns drawn right to left are reordered",
			fragments: []Fragment{
				{X: 200, Y: 500, W: 30, FontSize: 10, S: "Fee income"},
				{X: 40, Y: 500, W: 48, FontSize: 10, S: "CADTX123"},
				{X: 100, Y: 500, W: 6, FontSize: 10, S: "-"},
			},
			want: []string{"CADTX123 - Fee income"},
		},
		{
			name: "touching fragments are not separated",
			fragments: []Fragment{
				{X: 40, Y: 500, W: 12, FontSize: 10, S: "_X"},
				{X: 52, Y: 500, W: 6, FontSize: 10, S: "_"},
			},
			want: []string{"_X_"},
		},
		{
			name: "unknown widths rely on explicit spaces",
			fragments: []Fragment{
				{X: 40, Y: 500, S: "PAGE "},
				{X: 90, Y: 500, S: "1"},
			},
			want: []string{"PAGE 1"},
		},
		{
			name: "blank lines are dropped",
			fragments: []Fragment{
				{X: 40, Y: 600, W: 6, FontSize: 10, S: " "},
				{X: 40, Y: 580, W: 6, FontSize: 10, S: "A"},
			},
			want: []string{"A"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AssembleLines(tt.fragments, DefaultYTolerance))
		})
	}
}

func TestAssembleLines_DoesNotReorderInput(t *testing.T) {
	fragments := []Fragment{
		{X: 40, Y: 100, W: 6, S: "b"},
		{X: 40, Y: 200, W: 6, S: "a"},
	}

	AssembleLines(fragments, DefaultYTolerance)

	assert.Equal(t, "b", fragments[0].S)
}

func TestAssembleLines_Tolerance(t *testing.T) {
	fragments := []Fragment{
		{X: 40, Y: 500, W: 6, FontSize: 10, S: "A"},
		{X: 46, Y: 497, W: 6, FontSize: 10, S: "B"},
	}

	assert.Equal(t, []string{"A", "B"}, AssembleLines(fragments, DefaultYTolerance))
	assert.Equal(t, []string{"AB"}, AssembleLines(fragments, 3.5))
}
