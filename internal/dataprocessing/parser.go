package dataprocessing

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/abdullah-binmadhi/Car-Sales-Dashboard/internal/errors"
	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/pkg/contracts/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// LoadFile reads a listings dataset from a .csv or .xlsx file. For workbooks
// sheet selects the sheet; empty means the first one. Any failure rejects the
// whole file.
func LoadFile(path, sheet string) ([]domain.RawRecord, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, apperrors.NewStorageError("failed to open dataset", err).
				WithContext("path", path)
		}
		defer f.Close()
		return ReadCSV(f)
	case ".xlsx", ".xlsm":
		return ReadWorkbook(path, sheet)
	default:
		return nil, apperrors.NewParsingError(
			fmt.Sprintf("unsupported dataset format %q", filepath.Ext(path)), nil).
			WithContext("path", path)
	}
}

// ReadCSV parses a header-first CSV stream. Blank lines are skipped and a
// leading UTF-8 byte order mark is ignored.
func ReadCSV(r io.Reader) ([]domain.RawRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read dataset", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.NewParsingError("malformed CSV dataset", err)
	}
	return recordsFromRows(rows)
}

// ReadWorkbook parses the first row of a sheet as the header and every
// following row as a record.
func ReadWorkbook(path, sheet string) ([]domain.RawRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to open workbook", err).
			WithContext("path", path)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, apperrors.NewParsingError("workbook has no sheets", nil).
				WithContext("path", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read sheet", err).
			WithContext("path", path).
			WithContext("sheet", sheet)
	}

	slog.Debug("read workbook sheet",
		slog.String("path", path),
		slog.String("sheet", sheet),
		slog.Int("rows", len(rows)))

	return recordsFromRows(rows)
}

func recordsFromRows(rows [][]string) ([]domain.RawRecord, error) {
	rows = dropBlankRows(rows)
	if len(rows) == 0 {
		return nil, apperrors.NewParsingError("dataset has no header row", nil)
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}
	if !hasColumn(header, domain.ColumnPrice) {
		return nil, apperrors.NewParsingError(
			fmt.Sprintf("dataset is missing the %q column", domain.ColumnPrice), nil)
	}

	records := make([]domain.RawRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(domain.RawRecord, len(header))
		for i, col := range header {
			if col == "" || i >= len(row) {
				continue
			}
			rec[col] = row[i]
		}
		records = append(records, rec)
	}
	return records, nil
}

func dropBlankRows(rows [][]string) [][]string {
	out := rows[:0:0]
	for _, row := range rows {
		blank := true
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				blank = false
				break
			}
		}
		if !blank {
			out = append(out, row)
		}
	}
	return out
}

func hasColumn(header []string, name string) bool {
	for _, h := range header {
		if h == name {
			return true
		}
	}
	return false
}
