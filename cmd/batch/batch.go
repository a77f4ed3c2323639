// Package batch handles batch processing of files
package batch

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fjacquet/fsv-csv/cmd/root"
	"fjacquet/fsv-csv/internal/batch"
	"fjacquet/fsv-csv/internal/container"
	"fjacquet/fsv-csv/internal/logging"
	"fjacquet/fsv-csv/internal/validation"

	"github.com/spf13/cobra"
)

var (
	workers int
	format  string
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Batch process files from a directory",
	Long: `Batch process files from an input directory and output them to another directory.

The batch command converts every PDF in the input directory, several at a
time. Each file is converted independently: a file that fails is reported
and the others are still written.

Example:
  fsv-csv batch -i input_dir/ -o output_dir/ --format csv`,
	Run: batchFunc,
}

func init() {
	Cmd.Flags().IntVar(&workers, "workers", 0, "Number of files converted in parallel (default from batch.workers)")
	Cmd.Flags().StringVar(&format, "format", "", "Output format, csv or xlsx (default from export.format)")

	// Override the usage text for the input/output flags in batch context
	Cmd.SetUsageTemplate(`Usage:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

Aliases:
  {{.NameAndAliases}}{{end}}{{if .HasExample}}

Examples:
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}

Available Commands:{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

Global Flags (for batch, -i/-o refer to directories):
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasHelpSubCommands}}

Additional help topics:{{range .Commands}}{{if .IsAdditionalHelpTopicCommand}}
  {{rpad .CommandPath .CommandPathPadding}} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`)
}

func batchFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogrusAdapter()
	logger.Info("Batch command called")

	inputDir := root.SharedFlags.Input
	outputDir := root.SharedFlags.Output
	if inputDir == "" || outputDir == "" {
		logger.Fatal("Input and output directories must be specified")
		return
	}

	appContainer := root.GetContainer()
	if appContainer == nil {
		logger.Fatal("Container not initialized")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := runBatch(ctx, appContainer, inputDir, outputDir, workers, format)
	if err != nil {
		logger.Fatalf("Error during batch conversion: %v", err)
		return
	}

	logger.Info(fmt.Sprintf("Batch processing completed. %d files converted.", result.Count()))
	for _, failed := range result.Failed {
		logger.WithError(failed.Err).Warn("File not converted",
			logging.Field{Key: logging.FieldInputFile, Value: failed.File})
	}
}

// runBatch converts the PDFs of inputDir with the container's PDF parser.
// Zero workers or an empty format fall back to the configuration.
func runBatch(ctx context.Context, c *container.Container, inputDir, outputDir string, workers int, format string) (batch.Result, error) {
	cfg := c.GetConfig()
	if workers <= 0 {
		workers = cfg.Batch.Workers
	}
	if format == "" {
		format = cfg.Export.Format
	}
	if err := validation.Directory(inputDir); err != nil {
		return batch.Result{}, err
	}
	if err := validation.OutputFormat(format); err != nil {
		return batch.Result{}, err
	}

	p, err := c.GetParser(container.PDF)
	if err != nil {
		return batch.Result{}, fmt.Errorf("failed to get PDF parser: %w", err)
	}

	converter := batch.NewConverter(c.GetLogger(), workers, ".pdf", format)
	return converter.ConvertDir(ctx, inputDir, outputDir, p)
}
