package ingest

import (
	"strings"

	"sentimeter/internal/config"
	"sentimeter/pkg/contracts/domain"
)

// nullLiterals are cell values treated as missing data. Spreadsheet exports
// commonly serialize missing cells as one of these strings.
var nullLiterals = map[string]struct{}{
	"nan":  {},
	"null": {},
	"none": {},
	"n/a":  {},
	"na":   {},
}

// Normalize projects the resolved text column out of the table and cleans
// each value: whitespace is trimmed, empty and null-like rows are silently
// dropped, and oversized texts are truncated to the pinned maximum length.
// Dropped rows never reach aggregation, so the final total reflects only
// surviving rows. Row order and original indices are preserved.
func Normalize(t *Table, textColumn string) []domain.CleanedRow {
	col := t.ColumnIndex(textColumn)
	if col < 0 {
		return nil
	}

	cleaned := make([]domain.CleanedRow, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		text := strings.TrimSpace(t.Value(i, col))
		if text == "" {
			continue
		}
		if _, isNull := nullLiterals[strings.ToLower(text)]; isNull {
			continue
		}

		cleaned = append(cleaned, domain.CleanedRow{
			Index: i,
			Text:  Truncate(text, config.MaxTextLength),
		})
	}
	return cleaned
}

// Truncate caps s at max runes. Truncation is rune-based so multi-byte text
// is never cut mid-character.
func Truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
