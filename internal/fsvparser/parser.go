package fsvparser

import (
	"fmt"
	"strings"

	"fjacquet/fsv-csv/internal/logging"
	"fjacquet/fsv-csv/internal/models"
	"fjacquet/fsv-csv/internal/parsererror"
)

// Stats counts what happened to each line during one parse.
type Stats struct {
	Lines     int // lines seen, including blank ones
	Skipped   int // blank lines and lines carrying a skip marker
	Level1    int
	Level2    int
	Level3    int
	Records   int // data rows emitted
	Unmatched int // data-row candidates that did not follow the grammar
	Rejected  int // grammar matches without ID or numeric code
}

// Headers returns the total number of header lines.
func (s Stats) Headers() int {
	return s.Level1 + s.Level2 + s.Level3
}

// Parser converts report lines into a table. A Parser holds only immutable
// options and may be shared between goroutines; every call to Parse uses its
// own hierarchy and table.
type Parser struct {
	opts   Options
	logger logging.Logger
}

// NewParser creates a parser. A nil logger falls back to an info-level logrus
// adapter.
func NewParser(opts Options, logger logging.Logger) (*Parser, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid parser options: %w", err)
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Parser{opts: opts, logger: logger}, nil
}

// NewDefaultParser creates a parser with DefaultOptions.
func NewDefaultParser(logger logging.Logger) *Parser {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Parser{opts: DefaultOptions(), logger: logger}
}

// Options returns the parser configuration.
func (p *Parser) Options() Options {
	return p.opts
}

// Parse walks lines in order and returns the records found. Lines are trimmed
// before classification. The returned table is never nil.
func (p *Parser) Parse(lines []string) (*models.Table, Stats) {
	var (
		stats   Stats
		state   Hierarchy
		builder TableBuilder
	)

	for n, raw := range lines {
		stats.Lines++
		line := strings.TrimSpace(raw)

		switch Classify(line, p.opts) {
		case KindSkip:
			stats.Skipped++
		case KindLevel1:
			stats.Level1++
			state.EnterLevel1(line)
		case KindLevel2:
			stats.Level2++
			state.EnterLevel2(line)
		case KindLevel3:
			stats.Level3++
			state.EnterLevel3(line)
		case KindDataRow:
			row, matched := decodeDataRow(line, p.opts)
			if !matched {
				stats.Unmatched++
				continue
			}
			record := models.NewRecord(state.Snapshot(), row.ID, row.NumericCode, row.Description)
			if !record.IsValid() {
				stats.Rejected++
				p.logger.Debug("Rejected data row without identifier or numeric code",
					logging.Field{Key: logging.FieldLineNumber, Value: n + 1},
					logging.Field{Key: logging.FieldLine, Value: line})
				continue
			}
			builder.Add(record)
			stats.Records++
		}
	}

	p.logger.Debug("Parsed statement lines",
		logging.Field{Key: logging.FieldLines, Value: stats.Lines},
		logging.Field{Key: logging.FieldRecords, Value: stats.Records},
		logging.Field{Key: "headers", Value: stats.Headers()},
		logging.Field{Key: "skipped", Value: stats.Skipped},
		logging.Field{Key: "unmatched", Value: stats.Unmatched},
		logging.Field{Key: "rejected", Value: stats.Rejected})

	return builder.Table(), stats
}

// Convert parses lines and fails with *parsererror.EmptyResultError when no
// record is found, so callers never see an empty table.
func (p *Parser) Convert(lines []string) (*models.Table, Stats, error) {
	table, stats := p.Parse(lines)
	if table.IsEmpty() {
		return nil, stats, &parsererror.EmptyResultError{LinesScanned: stats.Lines}
	}
	return table, stats, nil
}
