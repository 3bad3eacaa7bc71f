package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentimeter/internal/config"
)

func TestNormalizeDropsEmptyAndNullRows(t *testing.T) {
	table := &Table{
		Header: []string{"text"},
		Rows: [][]string{
			{"Great service"},
			{"   "},
			{"NaN"},
			{"Would buy again"},
		},
	}

	cleaned := Normalize(table, "text")

	require.Len(t, cleaned, 2)
	assert.Equal(t, 0, cleaned[0].Index)
	assert.Equal(t, "Great service", cleaned[0].Text)
	assert.Equal(t, 3, cleaned[1].Index)
	assert.Equal(t, "Would buy again", cleaned[1].Text)
}

func TestNormalizeNullLiterals(t *testing.T) {
	for _, literal := range []string{"nan", "NULL", "None", "n/a", "NA"} {
		t.Run(literal, func(t *testing.T) {
			table := &Table{Header: []string{"text"}, Rows: [][]string{{literal}}}
			assert.Empty(t, Normalize(table, "text"))
		})
	}
}

func TestNormalizeTrimsAndTruncates(t *testing.T) {
	long := strings.Repeat("x", config.MaxTextLength+100)
	table := &Table{
		Header: []string{"text"},
		Rows:   [][]string{{"  padded  "}, {long}},
	}

	cleaned := Normalize(table, "text")

	require.Len(t, cleaned, 2)
	assert.Equal(t, "padded", cleaned[0].Text)
	assert.Len(t, []rune(cleaned[1].Text), config.MaxTextLength)
}

func TestTruncateIsRuneSafe(t *testing.T) {
	s := strings.Repeat("é", 10)
	got := Truncate(s, 4)
	assert.Equal(t, "éééé", got)
}

func TestNormalizeMissingColumn(t *testing.T) {
	table := &Table{Header: []string{"text"}, Rows: [][]string{{"hello"}}}
	assert.Nil(t, Normalize(table, "nonexistent"))
}
