// Package parser provides the base parser functionality and common interfaces.
package parser

import (
	"time"

	"fjacquet/fsv-csv/internal/common"
	"fjacquet/fsv-csv/internal/fsvparser"
	"fjacquet/fsv-csv/internal/logging"
	"fjacquet/fsv-csv/internal/metrics"
	"fjacquet/fsv-csv/internal/models"
	"fjacquet/fsv-csv/internal/parsererror"
)

// BaseParser provides common functionality for all parser implementations.
// Parsers embed it to inherit logger handling and table output:
//
//	type MyParser struct {
//		BaseParser
//		// parser-specific fields
//	}
type BaseParser struct {
	logger  logging.Logger
	export  common.ExportOptions
	lines   *fsvparser.Parser
	metrics *metrics.Metrics
}

// NewBaseParser creates a new BaseParser instance with the provided logger.
// If logger is nil, a default logger will be used.
func NewBaseParser(logger logging.Logger) BaseParser {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	return BaseParser{
		logger: logger,
		lines:  fsvparser.NewDefaultParser(logger),
	}
}

// SetLogger implements the LoggerConfigurable interface.
func (b *BaseParser) SetLogger(logger logging.Logger) {
	if logger != nil {
		b.logger = logger
	}
}

// GetLogger returns the current logger instance.
func (b *BaseParser) GetLogger() logging.Logger {
	return b.logger
}

// SetExportOptions sets the format used by WriteToFile. An empty format means
// "derive from the output file extension".
func (b *BaseParser) SetExportOptions(opts common.ExportOptions) {
	b.export = opts
}

// ExportOptions returns the configured output options.
func (b *BaseParser) ExportOptions() common.ExportOptions {
	return b.export
}

// WriteToFile writes the table to outputFile using the common writers.
func (b *BaseParser) WriteToFile(table *models.Table, outputFile string) error {
	b.logger.Info("Writing table using common writer",
		logging.Field{Key: logging.FieldFile, Value: outputFile},
		logging.Field{Key: logging.FieldCount, Value: table.Len()})

	return common.WriteTableFile(table, outputFile, b.export, b.logger)
}

// SetLineParser replaces the statement line parser, which defaults to one
// using fsvparser.DefaultOptions.
func (b *BaseParser) SetLineParser(p *fsvparser.Parser) {
	if p != nil {
		b.lines = p
	}
}

// SetMetrics sets the collectors updated by every conversion; nil disables them.
func (b *BaseParser) SetMetrics(m *metrics.Metrics) {
	b.metrics = m
}

// ParseLines turns extracted lines into a table. It fails with
// *parsererror.EmptyResultError when no record is found.
func (b *BaseParser) ParseLines(lines []string) (*models.Table, error) {
	table, stats, err := b.lines.Convert(lines)
	b.metrics.ObserveParse(stats)

	b.logger.Debug("Line classification finished",
		logging.Field{Key: logging.FieldLines, Value: stats.Lines},
		logging.Field{Key: logging.FieldRecords, Value: stats.Records},
		logging.Field{Key: "headers", Value: stats.Headers()},
		logging.Field{Key: "rejected", Value: stats.Rejected})
	return table, err
}

// ObserveConversion logs and counts the outcome of one conversion started at
// start.
func (b *BaseParser) ObserveConversion(source string, start time.Time, table *models.Table, err error) {
	elapsed := time.Since(start)
	b.metrics.ObserveConversion(source, metrics.OutcomeFor(err), elapsed)

	if err != nil {
		b.logger.WithError(err).Warn("Conversion failed",
			logging.Field{Key: logging.FieldParser, Value: source},
			logging.Field{Key: logging.FieldReason, Value: parsererror.Reason(err)},
			logging.Field{Key: logging.FieldDuration, Value: elapsed.Milliseconds()})
		return
	}
	b.logger.Info("Conversion finished",
		logging.Field{Key: logging.FieldParser, Value: source},
		logging.Field{Key: logging.FieldRecords, Value: table.Len()},
		logging.Field{Key: logging.FieldDuration, Value: elapsed.Milliseconds()})
}
