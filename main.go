package main

import (
	"fmt"
	"os"
	"strings"

	"fjacquet/fsv-csv/cmd/batch"
	configcmd "fjacquet/fsv-csv/cmd/config"
	"fjacquet/fsv-csv/cmd/convert"
	"fjacquet/fsv-csv/cmd/root"
	"fjacquet/fsv-csv/cmd/serve"
	"fjacquet/fsv-csv/cmd/text"
	"fjacquet/fsv-csv/internal/config"

	"github.com/sirupsen/logrus"
)

func init() {
	// 1. Load environment variables silently first (no logging yet)
	_, _ = config.LoadEnv()

	// 2. Configure global log level directly
	configureLogLevelDirectly()

	// 3. Initialize root command and add subcommands
	root.Init()
	root.Cmd.AddCommand(convert.Cmd)
	root.Cmd.AddCommand(text.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
	root.Cmd.AddCommand(configcmd.Cmd)
}

// configureLogLevelDirectly sets the global logrus level from LOG_LEVEL so
// anything logged before the configuration is read honours it.
func configureLogLevelDirectly() {
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info"
	}

	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
