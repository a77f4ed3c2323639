package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fjacquet/fsv-csv/internal/common"
	"fjacquet/fsv-csv/internal/fsvparser"
	"fjacquet/fsv-csv/internal/logging"
	"fjacquet/fsv-csv/internal/metrics"
	"fjacquet/fsv-csv/internal/models"
	"fjacquet/fsv-csv/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBaseParser(t *testing.T) {
	t.Run("with provided logger", func(t *testing.T) {
		mockLog := logging.NewMockLogger()
		baseParser := NewBaseParser(mockLog)

		assert.Equal(t, mockLog, baseParser.GetLogger())
	})

	t.Run("with nil logger uses default", func(t *testing.T) {
		baseParser := NewBaseParser(nil)

		assert.NotNil(t, baseParser.GetLogger())
	})
}

func TestBaseParser_SetLogger(t *testing.T) {
	t.Run("sets new logger", func(t *testing.T) {
		baseParser := NewBaseParser(nil)
		mockLog := logging.NewMockLogger()

		baseParser.SetLogger(mockLog)

		assert.Equal(t, mockLog, baseParser.GetLogger())
	})

	t.Run("ignores nil logger", func(t *testing.T) {
		mockLog := logging.NewMockLogger()
		baseParser := NewBaseParser(mockLog)

		baseParser.SetLogger(nil)

		assert.Equal(t, mockLog, baseParser.GetLogger())
	})
}

func TestBaseParser_WriteToFile(t *testing.T) {
	table := &models.Table{Records: []models.Record{
		{Level1: "Net Revenue", ID: "CADTX1", NumericCode: "40102345", Description: "Fee income"},
		{Level1: "Net Revenue", NumericCode: "40109999", Description: "Commission income"},
	}}

	t.Run("extension selects csv", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "out.csv")
		mockLog := logging.NewMockLogger()
		baseParser := NewBaseParser(mockLog)

		require.NoError(t, baseParser.WriteToFile(table, out))

		content, err := os.ReadFile(out)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(content)), "\n")
		assert.Len(t, lines, 3)
		assert.Contains(t, lines[1], "CADTX1")
		assert.True(t, mockLog.HasEntry("INFO", "Writing table using common writer"))
	})

	t.Run("configured format wins over extension", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "out.dat")
		baseParser := NewBaseParser(logging.NewMockLogger())
		baseParser.SetExportOptions(common.ExportOptions{Format: models.FormatXLSX})

		require.NoError(t, baseParser.WriteToFile(table, out))

		content, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(content), "PK"))
	})

	t.Run("nil table", func(t *testing.T) {
		baseParser := NewBaseParser(logging.NewMockLogger())

		err := baseParser.WriteToFile(nil, filepath.Join(t.TempDir(), "out.csv"))
		assert.Error(t, err)
	})
}

func TestBaseParser_InterfaceCompliance(t *testing.T) {
	var _ LoggerConfigurable = &BaseParser{}
}

func TestBaseParser_ParseLines(t *testing.T) {
	t.Run("default grammar", func(t *testing.T) {
		baseParser := NewBaseParser(logging.NewMockLogger())

		table, err := baseParser.ParseLines([]string{"001 Net Revenue", "CADTX1 - 40102345 _X_ Fee"})

		require.NoError(t, err)
		require.Equal(t, 1, table.Len())
		assert.Equal(t, "Net Revenue", table.Records[0].Level1)
	})

	t.Run("configured grammar", func(t *testing.T) {
		opts := fsvparser.DefaultOptions()
		opts.IDPrefix = "GL"
		lines, err := fsvparser.NewParser(opts, nil)
		require.NoError(t, err)

		baseParser := NewBaseParser(logging.NewMockLogger())
		baseParser.SetLineParser(lines)

		table, err := baseParser.ParseLines([]string{"GL77 - X Rebates"})
		require.NoError(t, err)
		assert.Equal(t, "GL77", table.Records[0].ID)
	})

	t.Run("no records", func(t *testing.T) {
		baseParser := NewBaseParser(logging.NewMockLogger())

		table, err := baseParser.ParseLines([]string{"001 Net Revenue"})

		assert.Nil(t, table)
		var emptyErr *parsererror.EmptyResultError
		assert.ErrorAs(t, err, &emptyErr)
	})
}

func TestBaseParser_ObserveConversion(t *testing.T) {
	mockLog := logging.NewMockLogger()
	baseParser := NewBaseParser(mockLog)
	baseParser.SetMetrics(metrics.New())

	table := &models.Table{Records: []models.Record{{ID: "CADTX1"}}}
	baseParser.ObserveConversion("pdf", time.Now(), table, nil)
	baseParser.ObserveConversion("pdf", time.Now(), nil, &parsererror.ExtractionError{Err: parsererror.ErrNoText})

	assert.True(t, mockLog.HasEntry("INFO", "Conversion finished"))
	warnings := mockLog.GetEntriesByLevel("WARN")
	require.Len(t, warnings, 1)
	assert.Equal(t, "Conversion failed", warnings[0].Message)
}
