package common

import (
	"bytes"
	"testing"

	"fjacquet/fsv-csv/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteTableXLSX(t *testing.T) {
	tests := []struct {
		name      string
		sheetName string
		wantSheet string
	}{
		{name: "default sheet", sheetName: "", wantSheet: DefaultSheetName},
		{name: "named sheet", sheetName: "FSV", wantSheet: "FSV"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteTableXLSX(&buf, sampleTable(), tt.sheetName))

			f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
			require.NoError(t, err)
			defer func() { _ = f.Close() }()

			assert.Equal(t, []string{tt.wantSheet}, f.GetSheetList())

			rows, err := f.GetRows(tt.wantSheet)
			require.NoError(t, err)
			require.Len(t, rows, 4)
			assert.Equal(t, models.Columns(), rows[0])
			assert.Equal(t, sampleTable().Records[0].Values(), rows[1])
			assert.Equal(t, "00001234", rows[3][5])
		})
	}
}

func TestWriteTableXLSX_NilTable(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteTableXLSX(&buf, nil, ""))
}
