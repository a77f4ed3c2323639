// Package convert handles PDF statement conversion commands
package convert

import (
	"fjacquet/fsv-csv/cmd/common"
	"fjacquet/fsv-csv/cmd/root"
	"fjacquet/fsv-csv/internal/container"
	"fjacquet/fsv-csv/internal/logging"
	"fjacquet/fsv-csv/internal/parsererror"

	"github.com/spf13/cobra"
)

// Cmd represents the convert command
var Cmd = &cobra.Command{
	Use:     "convert",
	Aliases: []string{"pdf"},
	Short:   "Convert an FSV statement PDF to CSV or Excel",
	Long: `Convert a financial statement version PDF to a flat table.

A .txt input is read as already extracted text. The output format follows
the extension of --output. Without --output the
table is written next to the input using the configured export format.

Example:
  fsv-csv convert -i statement.pdf -o statement.xlsx`,
	Run: convertFunc,
}

func convertFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogrusAdapter()
	logger.Info("PDF convert command called")

	appContainer := root.GetContainer()
	if appContainer == nil {
		logger.Fatal("Container not initialized")
		return
	}

	input := root.SharedFlags.Input
	parserType, err := container.ParserTypeForFile(input)
	if err != nil {
		parserType = container.PDF
	}
	p, err := appContainer.GetParser(parserType)
	if err != nil {
		logger.Fatalf("Error getting %s parser: %v", parserType, err)
		return
	}

	output := common.OutputFile(input, root.SharedFlags.Output, appContainer.GetConfig().Export.Format)
	logger.Info("Converting statement",
		logging.Field{Key: logging.FieldInputFile, Value: input},
		logging.Field{Key: logging.FieldOutputFile, Value: output})

	if err := common.ProcessFile(p, input, output, root.SharedFlags.Validate, logger); err != nil {
		logger.WithError(err).Fatalf("Conversion failed: %s", parsererror.Reason(err))
	}
}
