// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"os"
	"strings"

	"fjacquet/fsv-csv/internal/common"
	"fjacquet/fsv-csv/internal/fsvparser"
	"fjacquet/fsv-csv/internal/models"
	"fjacquet/fsv-csv/internal/validation"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by the configuration,
// e.g. FSV_LOG_LEVEL for log.level.
const EnvPrefix = "FSV"

// Config represents the complete application configuration
type Config struct {
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
	CSV    CSVConfig    `mapstructure:"csv" yaml:"csv"`
	Export ExportConfig `mapstructure:"export" yaml:"export"`
	Parser ParserConfig `mapstructure:"parser" yaml:"parser"`
	Server ServerConfig `mapstructure:"server" yaml:"server"`
	Batch  BatchConfig  `mapstructure:"batch" yaml:"batch"`
}

// LogConfig selects the log level and output format.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// CSVConfig controls CSV output.
type CSVConfig struct {
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
}

// ExportConfig controls the default output format.
type ExportConfig struct {
	Format    string `mapstructure:"format" yaml:"format"`
	SheetName string `mapstructure:"sheet_name" yaml:"sheet_name"`
}

// ParserConfig holds the statement grammar and extraction settings.
type ParserConfig struct {
	SkipMarkers    []string `mapstructure:"skip_markers" yaml:"skip_markers"`
	IDPrefix       string   `mapstructure:"id_prefix" yaml:"id_prefix"`
	DelimiterToken string   `mapstructure:"delimiter_token" yaml:"delimiter_token"`
	MinCodeLength  int      `mapstructure:"min_code_length" yaml:"min_code_length"`
	YTolerance     float64  `mapstructure:"y_tolerance" yaml:"y_tolerance"`
	DebugDump      bool     `mapstructure:"debug_dump" yaml:"debug_dump"`
	DebugDumpFile  string   `mapstructure:"debug_dump_file" yaml:"debug_dump_file"`
}

// ServerConfig configures the conversion service.
type ServerConfig struct {
	Port                   int      `mapstructure:"port" yaml:"port"`
	MaxUploadBytes         int64    `mapstructure:"max_upload_bytes" yaml:"max_upload_bytes"`
	AllowedExtensions      []string `mapstructure:"allowed_extensions" yaml:"allowed_extensions"`
	ReadTimeoutSeconds     int      `mapstructure:"read_timeout_seconds" yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds    int      `mapstructure:"write_timeout_seconds" yaml:"write_timeout_seconds"`
	ShutdownTimeoutSeconds int      `mapstructure:"shutdown_timeout_seconds" yaml:"shutdown_timeout_seconds"`
}

// BatchConfig configures directory conversion.
type BatchConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	return LoadConfig("")
}

// LoadConfig loads defaults, then the config file, then FSV_* environment
// variables. An empty configFile searches $HOME/.fsv-csv, .fsv-csv and the
// current directory for config.yaml; a named file must exist.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.fsv-csv")
		v.AddConfigPath(".fsv-csv")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file
	if err := v.ReadInConfig(); err != nil {
		if configFile != "" {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Continue with defaults and env vars
			fmt.Fprintf(os.Stderr, "Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// CSV defaults
	v.SetDefault("csv.delimiter", ",")

	// Export defaults
	v.SetDefault("export.format", models.FormatXLSX)
	v.SetDefault("export.sheet_name", common.DefaultSheetName)

	// Parser defaults
	v.SetDefault("parser.skip_markers", fsvparser.DefaultOptions().SkipMarkers)
	v.SetDefault("parser.id_prefix", fsvparser.DefaultIDPrefix)
	v.SetDefault("parser.delimiter_token", fsvparser.DefaultDelimiter)
	v.SetDefault("parser.min_code_length", fsvparser.DefaultMinCodeLength)
	v.SetDefault("parser.y_tolerance", 2.0)
	v.SetDefault("parser.debug_dump", false)
	v.SetDefault("parser.debug_dump_file", "debug_pdf_extract.txt")

	// Server defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.max_upload_bytes", 50<<20)
	v.SetDefault("server.allowed_extensions", []string{".pdf"})
	v.SetDefault("server.read_timeout_seconds", 60)
	v.SetDefault("server.write_timeout_seconds", 120)
	v.SetDefault("server.shutdown_timeout_seconds", 10)

	// Batch defaults
	v.SetDefault("batch.workers", 4)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	// Validate log level
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	// Validate log format
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	// Validate CSV delimiter
	if len([]rune(config.CSV.Delimiter)) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	// Validate export settings
	if err := validation.OutputFormat(config.Export.Format); err != nil {
		return fmt.Errorf("invalid export format: %s (must be 'csv' or 'xlsx')", config.Export.Format)
	}
	if strings.TrimSpace(config.Export.SheetName) == "" {
		return fmt.Errorf("export.sheet_name must not be empty")
	}

	// Validate parser grammar
	if err := config.ParserOptions().Validate(); err != nil {
		return fmt.Errorf("invalid parser settings: %w", err)
	}
	if config.Parser.YTolerance <= 0 {
		return fmt.Errorf("parser.y_tolerance must be positive, got: %f", config.Parser.YTolerance)
	}

	// Validate server settings
	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got: %d", config.Server.Port)
	}
	if config.Server.MaxUploadBytes < 1 {
		return fmt.Errorf("server.max_upload_bytes must be positive, got: %d", config.Server.MaxUploadBytes)
	}
	if len(config.Server.AllowedExtensions) == 0 {
		return fmt.Errorf("server.allowed_extensions must list at least one extension")
	}
	if config.Server.ReadTimeoutSeconds < 1 || config.Server.WriteTimeoutSeconds < 1 {
		return fmt.Errorf("server timeouts must be at least one second")
	}

	// Validate batch settings
	if config.Batch.Workers < 1 || config.Batch.Workers > 64 {
		return fmt.Errorf("batch.workers must be between 1 and 64, got: %d", config.Batch.Workers)
	}

	return nil
}

// Validate checks a configuration changed after loading, e.g. by flags.
func (c *Config) Validate() error {
	return validateConfig(c)
}

// ParserOptions maps the parser section onto the statement grammar.
func (c *Config) ParserOptions() fsvparser.Options {
	markers := make([]string, len(c.Parser.SkipMarkers))
	copy(markers, c.Parser.SkipMarkers)
	return fsvparser.Options{
		SkipMarkers:   markers,
		IDPrefix:      c.Parser.IDPrefix,
		Delimiter:     c.Parser.DelimiterToken,
		MinCodeLength: c.Parser.MinCodeLength,
	}
}

// ExportOptions returns the configured default output format.
func (c *Config) ExportOptions() common.ExportOptions {
	return common.ExportOptions{
		Format:    strings.ToLower(c.Export.Format),
		SheetName: c.Export.SheetName,
	}
}

// CSVDelimiter returns the CSV delimiter as a rune.
func (c *Config) CSVDelimiter() rune {
	return []rune(c.CSV.Delimiter)[0]
}
