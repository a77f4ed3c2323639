// Package text converts already extracted statement text.
package text

import (
	"fjacquet/fsv-csv/cmd/common"
	"fjacquet/fsv-csv/cmd/root"
	"fjacquet/fsv-csv/internal/container"
	"fjacquet/fsv-csv/internal/parsererror"

	"github.com/spf13/cobra"
)

// Cmd represents the text command
var Cmd = &cobra.Command{
	Use:   "text",
	Short: "Convert extracted statement text to CSV or Excel",
	Long: `Convert a plain-text extraction of a statement, one line per text line,
without reading a PDF. The debug dump written with parser.debug_dump is
such a file.

Example:
  fsv-csv text -i debug_pdf_extract.txt -o statement.csv`,
	Run: textFunc,
}

func textFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogrusAdapter()

	appContainer := root.GetContainer()
	if appContainer == nil {
		logger.Fatal("Container not initialized")
		return
	}

	p, err := appContainer.GetParser(container.Text)
	if err != nil {
		logger.Fatalf("Error getting text parser: %v", err)
		return
	}

	input := root.SharedFlags.Input
	output := common.OutputFile(input, root.SharedFlags.Output, appContainer.GetConfig().Export.Format)
	if err := common.ProcessFile(p, input, output, root.SharedFlags.Validate, logger); err != nil {
		logger.WithError(err).Fatalf("Conversion failed: %s", parsererror.Reason(err))
	}
}
