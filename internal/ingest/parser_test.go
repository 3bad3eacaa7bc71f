package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apierrors "sentimeter/internal/errors"
)

func TestParseCSV(t *testing.T) {
	data := []byte("text,rating\nGreat product,5\nTerrible,1\n")

	table, err := Parse("reviews.csv", data)
	require.NoError(t, err)

	assert.Equal(t, []string{"text", "rating"}, table.Header)
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, "Great product", table.Value(0, 0))
	assert.Equal(t, "1", table.Value(1, 1))
}

func TestParseDelimiterSniffing(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		header []string
	}{
		{
			name:   "semicolon",
			data:   "text;rating\nbuena compra;5\n",
			header: []string{"text", "rating"},
		},
		{
			name:   "tab",
			data:   "text\trating\nok\t3\n",
			header: []string{"text", "rating"},
		},
		{
			name:   "comma wins over stray semicolon",
			data:   "text,rating,source\na;b,5,web\n",
			header: []string{"text", "rating", "source"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Parse("data.csv", []byte(tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.header, table.Header)
			assert.Equal(t, 1, table.Len())
		})
	}
}

func TestParseTrimsHeaderWhitespace(t *testing.T) {
	table, err := Parse("data.csv", []byte(" text , rating \nfine,4\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"text", "rating"}, table.Header)
}

func TestParseRaggedRows(t *testing.T) {
	table, err := Parse("data.csv", []byte("text,rating\nonly text\nboth,5\n"))
	require.NoError(t, err)

	assert.Equal(t, 2, table.Len())
	assert.Equal(t, "only text", table.Value(0, 0))
	// Missing cells read as empty instead of erroring.
	assert.Equal(t, "", table.Value(0, 1))
}

func TestParseEmptyFile(t *testing.T) {
	_, err := Parse("data.csv", nil)

	var appErr *apierrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apierrors.ErrTypeFormat, appErr.Type)
}

func TestParseHeaderOnlyFile(t *testing.T) {
	table, err := Parse("data.csv", []byte("text,rating\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]string{"text", "rating"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]string{"Loved it", "5"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]string{"Hated it", "1"}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	table, err := Parse("reviews.xlsx", buf.Bytes())
	require.NoError(t, err)

	assert.Equal(t, []string{"text", "rating"}, table.Header)
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, "Hated it", table.Value(1, 0))
}

func TestParseXLSXGarbageBytes(t *testing.T) {
	_, err := Parse("reviews.xlsx", []byte("this is not a zip archive"))

	var appErr *apierrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apierrors.ErrTypeFormat, appErr.Type)
}

func TestParseRowLimit(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("text\n")
	for i := 0; i < 50001; i++ {
		sb.WriteString("row\n")
	}

	_, err := Parse("data.csv", []byte(sb.String()))

	var appErr *apierrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apierrors.ErrTypeFormat, appErr.Type)
	assert.Contains(t, appErr.Message, "row limit")
}
