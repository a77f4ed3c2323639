package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"fjacquet/fsv-csv/internal/logging"
	"fjacquet/fsv-csv/internal/models"
	"fjacquet/fsv-csv/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConverter writes the input name to the output and fails for inputs
// whose name contains "broken".
type fakeConverter struct {
	mu      sync.Mutex
	calls   []string
	active  int32
	maxSeen int32
}

func (f *fakeConverter) ConvertToFile(inputFile, outputFile string) error {
	n := atomic.AddInt32(&f.active, 1)
	defer atomic.AddInt32(&f.active, -1)
	for {
		seen := atomic.LoadInt32(&f.maxSeen)
		if n <= seen || atomic.CompareAndSwapInt32(&f.maxSeen, seen, n) {
			break
		}
	}

	f.mu.Lock()
	f.calls = append(f.calls, filepath.Base(inputFile))
	f.mu.Unlock()

	if strings.Contains(inputFile, "broken") {
		return &parsererror.EmptyResultError{FilePath: inputFile}
	}
	return os.WriteFile(outputFile, []byte(filepath.Base(inputFile)), 0600)
}

func (f *fakeConverter) WriteToFile(table *models.Table, outputFile string) error {
	return errors.New("not used")
}

func writeInputs(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("%PDF-1.4"), 0600))
	}
}

func TestConverter_ConvertDir(t *testing.T) {
	input := t.TempDir()
	output := filepath.Join(t.TempDir(), "out")
	writeInputs(t, input, "b.pdf", "a.PDF", "broken.pdf", "notes.txt")
	require.NoError(t, os.Mkdir(filepath.Join(input, "nested.pdf"), 0750))

	logger := logging.NewMockLogger()
	fake := &fakeConverter{}
	c := NewConverter(logger, 2, ".pdf", models.FormatXLSX)

	result, err := c.ConvertDir(context.Background(), input, output, fake)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Count())
	assert.Equal(t, []string{filepath.Join(output, "a.xlsx"), filepath.Join(output, "b.xlsx")}, result.Converted)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, filepath.Join(input, "broken.pdf"), result.Failed[0].File)
	assert.Contains(t, result.Failed[0].Error(), "broken.pdf")
	assert.ElementsMatch(t, []string{"a.PDF", "b.pdf", "broken.pdf"}, fake.calls)
	assert.LessOrEqual(t, fake.maxSeen, int32(2))
	assert.True(t, logger.HasEntry("WARN", "Failed to convert file"))

	content, err := os.ReadFile(filepath.Join(output, "a.xlsx"))
	require.NoError(t, err)
	assert.Equal(t, "a.PDF", string(content))
}

func TestConverter_EmptyDirectory(t *testing.T) {
	logger := logging.NewMockLogger()
	c := NewConverter(logger, 4, ".pdf", models.FormatCSV)

	result, err := c.ConvertDir(context.Background(), t.TempDir(), t.TempDir(), &fakeConverter{})

	require.NoError(t, err)
	assert.Zero(t, result.Count())
	assert.True(t, logger.HasEntry("WARN", "No supported files found in input directory"))
}

func TestConverter_MissingDirectory(t *testing.T) {
	c := NewConverter(logging.NewMockLogger(), 1, ".pdf", models.FormatCSV)

	_, err := c.ConvertDir(context.Background(), filepath.Join(t.TempDir(), "missing"), t.TempDir(), &fakeConverter{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read input directory")
}

func TestConverter_CancelledContext(t *testing.T) {
	input := t.TempDir()
	writeInputs(t, input, "a.pdf", "b.pdf")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fake := &fakeConverter{}
	c := NewConverter(logging.NewMockLogger(), 1, ".pdf", models.FormatCSV)
	_, err := c.ConvertDir(ctx, input, t.TempDir(), fake)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, fake.calls)
}

func TestConverter_OutputPath(t *testing.T) {
	c := NewConverter(nil, 0, ".pdf", models.FormatCSV)

	assert.Equal(t, filepath.Join("out", "fsv.2024.csv"), c.OutputPath(filepath.Join("in", "fsv.2024.pdf"), "out"))
	assert.Equal(t, 1, c.workers)
}
