// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/fsv-csv/internal/config"
	"fjacquet/fsv-csv/internal/container"
	"fjacquet/fsv-csv/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input    string
	Output   string
	Validate bool
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "fsv-csv",
		Short: "A CLI tool to convert financial statement version PDFs to CSV or Excel.",
		Long: `fsv-csv extracts the line items of hierarchical financial statement
PDFs and writes them as a flat table with the active Level 1, Level 2 and
Level 3 headers repeated on every row.

The output format follows the output file extension (.csv or .xlsx).`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to fsv-csv!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initialize()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if appContainer != nil {
				if err := appContainer.Close(); err != nil {
					Log.Warnf("Failed to close container: %v", err)
				}
			}
		},
		SilenceUsage: true,
	}

	// Common flags accessible to all commands
	SharedFlags = CommonFlags{}

	// Configuration flags
	ConfigFile   string
	LogLevel     string
	LogFormat    string
	CSVDelimiter string

	appConfig    *config.Config
	appContainer *container.Container
	appLogger    logging.Logger
)

// Init initializes the root command and all flags
func Init() {
	// Add persistent flags to root command for common options
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
	Cmd.PersistentFlags().BoolVarP(&SharedFlags.Validate, "validate", "v", false, "Validate file format before conversion")

	Cmd.PersistentFlags().StringVar(&ConfigFile, "config", "", "Config file (default searches $HOME/.fsv-csv, .fsv-csv and . for config.yaml)")
	Cmd.PersistentFlags().StringVar(&LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	Cmd.PersistentFlags().StringVar(&LogFormat, "log-format", "", "Log format (text, json)")
	Cmd.PersistentFlags().StringVar(&CSVDelimiter, "csv-delimiter", "", "CSV delimiter character")
}

// initialize loads the configuration, applies flag overrides and wires the
// container used by subcommands.
func initialize() error {
	cfg, err := config.LoadConfig(ConfigFile)
	if err != nil {
		return err
	}
	if LogLevel != "" {
		cfg.Log.Level = LogLevel
	}
	if LogFormat != "" {
		cfg.Log.Format = LogFormat
	}
	if CSVDelimiter != "" {
		cfg.CSV.Delimiter = CSVDelimiter
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	Log = configureLogrus(cfg.Log)
	logger := logging.NewLogrusAdapterFromLogger(Log)

	c, err := container.NewContainer(cfg, container.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	appConfig = cfg
	appContainer = c
	appLogger = logger
	return nil
}

func configureLogrus(cfg config.LogConfig) *logrus.Logger {
	log := logrus.New()
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	if cfg.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log
}

// GetContainer returns the container built for the running command.
func GetContainer() *container.Container {
	return appContainer
}

// GetConfig returns the effective configuration of the running command.
func GetConfig() *config.Config {
	return appConfig
}

// GetLogrusAdapter returns the command logger behind the logging interface.
func GetLogrusAdapter() logging.Logger {
	if appLogger == nil {
		appLogger = logging.NewLogrusAdapterFromLogger(Log)
	}
	return appLogger
}
