// Package container provides dependency injection for the fsv-csv application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"
	"path/filepath"
	"strings"

	"fjacquet/fsv-csv/internal/common"
	"fjacquet/fsv-csv/internal/config"
	"fjacquet/fsv-csv/internal/fsvparser"
	"fjacquet/fsv-csv/internal/logging"
	"fjacquet/fsv-csv/internal/metrics"
	"fjacquet/fsv-csv/internal/parser"
	"fjacquet/fsv-csv/internal/pdfparser"
	"fjacquet/fsv-csv/internal/textparser"
)

// ParserType defines the types of parsers available.
type ParserType string

const (
	PDF  ParserType = "pdf"
	Text ParserType = "text"
)

// Container holds all application dependencies and provides methods to access them.
// It is immutable after creation; dependencies are reached through getters.
type Container struct {
	logger  logging.Logger
	config  *config.Config
	metrics *metrics.Metrics

	parsers map[ParserType]parser.FullParser
}

// Option adjusts how NewContainer builds dependencies.
type Option func(*options)

type options struct {
	logger    logging.Logger
	extractor pdfparser.PDFExtractor
}

// WithLogger replaces the logger built from the log configuration.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithPDFExtractor replaces the ledongthuc-based extractor.
func WithPDFExtractor(extractor pdfparser.PDFExtractor) Option {
	return func(o *options) { o.extractor = extractor }
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	// Create logger first as it's needed by other components
	logger := o.logger
	if logger == nil {
		logger = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	}

	if cfg.CSV.Delimiter != "" {
		common.SetDelimiter(cfg.CSVDelimiter())
	}

	lineParser, err := fsvparser.NewParser(cfg.ParserOptions(), logger)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	export := cfg.ExportOptions()
	// The output file extension decides the format on the command line.
	export.Format = ""

	extractor := o.extractor
	if extractor == nil {
		ledongthuc := pdfparser.NewLedongthucExtractor()
		if cfg.Parser.YTolerance > 0 {
			ledongthuc.YTolerance = cfg.Parser.YTolerance
		}
		extractor = ledongthuc
	}

	parsers := make(map[ParserType]parser.FullParser)

	pdfParser := pdfparser.NewAdapter(logger, extractor)
	pdfParser.SetLineParser(lineParser)
	pdfParser.SetMetrics(m)
	pdfParser.SetExportOptions(export)
	if cfg.Parser.DebugDump {
		pdfParser.SetDebugDump(cfg.Parser.DebugDumpFile)
	}
	parsers[PDF] = pdfParser

	textParser := textparser.NewAdapter(logger)
	textParser.SetLineParser(lineParser)
	textParser.SetMetrics(m)
	textParser.SetExportOptions(export)
	parsers[Text] = textParser

	logger.Debug("Container initialized successfully",
		logging.Field{Key: "parsers_count", Value: len(parsers)},
		logging.Field{Key: logging.FieldDelimiter, Value: string(common.Delimiter)})

	return &Container{
		logger:  logger,
		config:  cfg,
		metrics: m,
		parsers: parsers,
	}, nil
}

// GetParser returns a parser for the given type.
func (c *Container) GetParser(pt ParserType) (parser.FullParser, error) {
	p, ok := c.parsers[pt]
	if !ok {
		return nil, fmt.Errorf("unknown parser type: %s", pt)
	}
	return p, nil
}

// GetParsers returns a copy of the parser registry.
func (c *Container) GetParsers() map[ParserType]parser.FullParser {
	result := make(map[ParserType]parser.FullParser, len(c.parsers))
	for k, v := range c.parsers {
		result[k] = v
	}
	return result
}

// ParserTypeForFile picks the parser for a file by its extension.
func ParserTypeForFile(path string) (ParserType, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return PDF, nil
	case ".txt":
		return Text, nil
	default:
		return "", fmt.Errorf("no parser for file %s", filepath.Base(path))
	}
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetMetrics returns the collectors shared by all parsers.
func (c *Container) GetMetrics() *metrics.Metrics {
	return c.metrics
}

// DisableDebugDump turns off the extracted-text dump of the PDF parser.
// Servers call it before handling requests so that concurrent conversions do
// not share one dump file.
func (c *Container) DisableDebugDump() {
	pdf, ok := c.parsers[PDF].(*pdfparser.Adapter)
	if !ok || !c.config.Parser.DebugDump {
		return
	}
	pdf.SetDebugDump("")
	c.logger.Warn("Debug dump is not supported in server mode; disabled",
		logging.Field{Key: logging.FieldFile, Value: c.config.Parser.DebugDumpFile})
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	c.logger.Debug("Container closed")
	return nil
}
