package common_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/fsv-csv/cmd/common"
	"fjacquet/fsv-csv/internal/logging"
	"fjacquet/fsv-csv/internal/metrics"
	"fjacquet/fsv-csv/internal/models"
	"fjacquet/fsv-csv/internal/parsererror"
	"fjacquet/fsv-csv/internal/pdfparser"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockFullParser implements parser.FullParser for testing
type MockFullParser struct {
	mock.Mock
	logger logging.Logger
}

func (m *MockFullParser) Parse(r io.Reader) (*models.Table, error) {
	args := m.Called(r)
	table, _ := args.Get(0).(*models.Table)
	return table, args.Error(1)
}

func (m *MockFullParser) ConvertToFile(inputFile, outputFile string) error {
	args := m.Called(inputFile, outputFile)
	return args.Error(0)
}

func (m *MockFullParser) WriteToFile(table *models.Table, outputFile string) error {
	args := m.Called(table, outputFile)
	return args.Error(0)
}

func (m *MockFullParser) SetLogger(logger logging.Logger) {
	m.Called(logger)
	m.logger = logger
}

func (m *MockFullParser) ValidateFormat(file string) error {
	args := m.Called(file)
	return args.Error(0)
}

func writeInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0600))
	return path
}

func TestProcessFile_Success(t *testing.T) {
	input := writeInput(t)
	log := logging.NewMockLogger()
	p := &MockFullParser{}
	p.On("SetLogger", log).Return()
	p.On("ConvertToFile", input, "out.xlsx").Return(nil)

	err := common.ProcessFile(p, input, "out.xlsx", false, log)

	require.NoError(t, err)
	p.AssertExpectations(t)
	p.AssertNotCalled(t, "ValidateFormat", mock.Anything)
	assert.Same(t, log, p.logger)
	assert.True(t, log.HasEntry("INFO", "Conversion completed successfully!"))
}

func TestProcessFile_ValidateFirst(t *testing.T) {
	input := writeInput(t)
	log := logging.NewMockLogger()
	p := &MockFullParser{}
	p.On("SetLogger", log).Return()
	p.On("ValidateFormat", input).Return(nil)
	p.On("ConvertToFile", input, "out.csv").Return(nil)

	require.NoError(t, common.ProcessFile(p, input, "out.csv", true, log))

	p.AssertExpectations(t)
	assert.True(t, log.HasEntry("INFO", "Validation successful."))
}

func TestProcessFile_Failures(t *testing.T) {
	conversionErr := &parsererror.EmptyResultError{FilePath: "in.pdf", LinesScanned: 4}
	formatErr := &parsererror.InvalidFormatError{FilePath: "in.pdf", ExpectedFormat: "PDF", Msg: "missing %PDF- header"}

	tests := []struct {
		name        string
		setup       func(p *MockFullParser, input string)
		validate    bool
		wantIs      error
		wantConvert bool
	}{
		{
			name: "rejected by validation",
			setup: func(p *MockFullParser, input string) {
				p.On("ValidateFormat", input).Return(formatErr)
			},
			validate: true,
			wantIs:   formatErr,
		},
		{
			name: "validation error",
			setup: func(p *MockFullParser, input string) {
				p.On("ValidateFormat", input).Return(io.ErrUnexpectedEOF)
			},
			validate: true,
			wantIs:   io.ErrUnexpectedEOF,
		},
		{
			name: "conversion error",
			setup: func(p *MockFullParser, input string) {
				p.On("ConvertToFile", input, "out.xlsx").Return(conversionErr)
			},
			wantIs:      conversionErr,
			wantConvert: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := writeInput(t)
			log := logging.NewMockLogger()
			p := &MockFullParser{}
			p.On("SetLogger", mock.Anything).Return()
			tt.setup(p, input)

			err := common.ProcessFile(p, input, "out.xlsx", tt.validate, log)

			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantIs), "got %v", err)
			if !tt.wantConvert {
				p.AssertNotCalled(t, "ConvertToFile", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestProcessFile_MissingInput(t *testing.T) {
	for _, input := range []string{"", filepath.Join(t.TempDir(), "absent.pdf")} {
		p := &MockFullParser{}

		err := common.ProcessFile(p, input, "out.csv", false, logging.NewMockLogger())

		var validationErr *parsererror.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, input, validationErr.FilePath)
		p.AssertNotCalled(t, "SetLogger", mock.Anything)
	}
}

func TestProcessFile_ValidateRejectsNonPDF(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "notes.pdf")
	output := filepath.Join(dir, "notes.csv")
	require.NoError(t, os.WriteFile(input, []byte("plain notes, not a PDF"), 0600))

	m := metrics.New()
	adapter := pdfparser.NewAdapter(nil, pdfparser.NewMockPDFExtractor([]string{"001 Net Revenue"}, nil))
	adapter.SetMetrics(m)

	err := common.ProcessFile(adapter, input, output, true, logging.NewMockLogger())

	var formatErr *parsererror.InvalidFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, input, formatErr.FilePath)
	assert.Equal(t, "invalid file format", parsererror.Reason(err))
	assert.NoFileExists(t, output)

	expected := `
# HELP fsv_csv_conversions_total Conversions by source and outcome.
# TYPE fsv_csv_conversions_total counter
fsv_csv_conversions_total{outcome="invalid_input",source="pdf"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "fsv_csv_conversions_total"))
}

func TestOutputFile(t *testing.T) {
	tests := []struct {
		input, output, format, want string
	}{
		{"statements/march.pdf", "", "xlsx", "statements/march.xlsx"},
		{"statements/march.pdf", "", "csv", "statements/march.csv"},
		{"dump.txt", "", "", "dump.csv"},
		{"march.pdf", "out/report.csv", "xlsx", "out/report.csv"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, common.OutputFile(tt.input, tt.output, tt.format))
		})
	}
}
