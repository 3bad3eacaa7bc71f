package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"sentimeter/internal/config"
	"sentimeter/internal/errors"
)

// Parse reads uploaded file bytes into a Table. The format is chosen by the
// filename extension: .xlsx/.xlsm files go through excelize, everything else
// is treated as delimited text with the delimiter sniffed from the header
// line. Unparseable bytes raise a typed format error.
func Parse(filename string, data []byte) (*Table, error) {
	if len(data) == 0 {
		return nil, errors.NewFormatError("uploaded file is empty", nil)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return parseExcel(data)
	default:
		return parseDelimited(data)
	}
}

// parseDelimited parses CSV-style text. The delimiter is sniffed from the
// first line among comma, semicolon and tab.
func parseDelimited(data []byte) (*Table, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1 // ragged rows read as short; Table pads on access
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.NewFormatError("failed to read header row", err)
	}
	if len(header) == 0 || (len(header) == 1 && strings.TrimSpace(header[0]) == "") {
		return nil, errors.NewFormatError("header row is empty", nil)
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewFormatError("failed to read data row", err)
		}
		rows = append(rows, record)
		if len(rows) > config.MaxRows {
			return nil, errors.NewFormatError(
				fmt.Sprintf("file exceeds the %d row limit", config.MaxRows), nil)
		}
	}

	slog.Debug("parsed delimited file",
		slog.Int("columns", len(header)),
		slog.Int("rows", len(rows)))

	return &Table{Header: trimHeader(header), Rows: rows}, nil
}

// parseExcel parses an XLSX workbook, taking the first sheet that has a
// non-empty header row.
func parseExcel(data []byte) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.NewFormatError("failed to open workbook", err)
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil || len(rows) == 0 {
			continue
		}

		header := rows[0]
		if !hasContent(header) {
			continue
		}
		if len(rows)-1 > config.MaxRows {
			return nil, errors.NewFormatError(
				fmt.Sprintf("file exceeds the %d row limit", config.MaxRows), nil)
		}

		slog.Debug("parsed workbook sheet",
			slog.String("sheet", sheet),
			slog.Int("columns", len(header)),
			slog.Int("rows", len(rows)-1))

		return &Table{Header: trimHeader(header), Rows: rows[1:]}, nil
	}

	return nil, errors.NewFormatError("workbook contains no sheet with a header row", nil)
}

// sniffDelimiter picks the delimiter that splits the first line into the
// most fields.
func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}

	best, bestCount := ',', bytes.Count(line, []byte{','})
	for _, cand := range []byte{';', '\t'} {
		if n := bytes.Count(line, []byte{cand}); n > bestCount {
			best, bestCount = rune(cand), n
		}
	}
	return best
}

func trimHeader(header []string) []string {
	out := make([]string, len(header))
	for i, col := range header {
		out[i] = strings.TrimSpace(col)
	}
	return out
}

func hasContent(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return true
		}
	}
	return false
}
