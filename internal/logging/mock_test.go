package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLogger_CapturesEntries(t *testing.T) {
	m := NewMockLogger()

	m.Info("started", Field{Key: FieldFile, Value: "a.pdf"})
	m.Debug("line skipped")

	entries := m.GetEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "INFO", entries[0].Level)
	assert.Equal(t, "started", entries[0].Message)
	assert.Equal(t, []Field{{Key: FieldFile, Value: "a.pdf"}}, entries[0].Fields)
	assert.True(t, m.HasEntry("DEBUG", "line skipped"))
}

func TestMockLogger_DerivedLoggersShareEntries(t *testing.T) {
	m := NewMockLogger()
	err := errors.New("bad pdf")

	m.WithField(FieldParser, "pdf").WithError(err).Error("conversion failed")

	errs := m.GetEntriesByLevel("ERROR")
	require.Len(t, errs, 1)
	assert.Equal(t, err, errs[0].Error)
	assert.Equal(t, []Field{{Key: FieldParser, Value: "pdf"}}, errs[0].Fields)
}

func TestMockLogger_ZeroValueUsable(t *testing.T) {
	var m MockLogger

	m.Warn("careful")
	m.Fatalf("exit %d", 1)

	assert.True(t, m.HasEntry("WARN", "careful"))
	assert.True(t, m.HasEntry("FATAL", "exit 1"))

	m.Clear()
	assert.Empty(t, m.GetEntries())
}
