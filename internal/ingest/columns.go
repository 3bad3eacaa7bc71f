package ingest

import (
	"strings"

	"sentimeter/internal/config"
	"sentimeter/internal/errors"
)

// ResolveTextColumn picks the text-bearing column from the table header.
// The accepted list is walked in priority order: when a header contains both
// "text" and "comment", "text" wins even if "comment" appears first in the
// file. Matching is case-insensitive and exact. The returned name keeps the
// header's original spelling.
func ResolveTextColumn(header []string) (string, error) {
	for _, accepted := range config.AcceptedTextColumns {
		for _, col := range header {
			if strings.ToLower(strings.TrimSpace(col)) == accepted {
				return col, nil
			}
		}
	}
	return "", errors.NewNoTextColumnError(config.AcceptedTextColumns)
}

// ResolveGroundTruthColumn looks for a column carrying ground-truth sentiment
// labels. Absence is not an error; validation is simply skipped.
func ResolveGroundTruthColumn(header []string) (string, bool) {
	for _, accepted := range config.GroundTruthColumns {
		for _, col := range header {
			if strings.ToLower(strings.TrimSpace(col)) == accepted {
				return col, true
			}
		}
	}
	return "", false
}
