// Package config holds the configuration commands.
package config

import (
	"path/filepath"

	"fjacquet/fsv-csv/cmd/root"
	appconfig "fjacquet/fsv-csv/internal/config"
	"fjacquet/fsv-csv/internal/logging"

	"github.com/spf13/cobra"
)

var (
	path  string
	force bool
)

// Cmd groups the configuration subcommands.
var Cmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the fsv-csv configuration",
}

// InitCmd writes the effective configuration to a file.
var InitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the effective configuration as YAML",
	Long: `Write the effective configuration, defaults merged with any config file
and FSV_* environment variables, to a YAML file that can then be edited.

Example:
  fsv-csv config init --path .fsv-csv/config.yaml`,
	Run: initFunc,
}

func init() {
	InitCmd.Flags().StringVar(&path, "path", filepath.Join(".fsv-csv", "config.yaml"), "Where to write the configuration")
	InitCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	Cmd.AddCommand(InitCmd)
}

func initFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogrusAdapter()

	cfg := root.GetConfig()
	if cfg == nil {
		logger.Fatal("Configuration not loaded")
		return
	}

	if err := appconfig.WriteConfigFile(cfg, path, force); err != nil {
		logger.Fatalf("Error writing configuration: %v", err)
		return
	}
	logger.Info("Configuration written", logging.Field{Key: logging.FieldFile, Value: path})
}
