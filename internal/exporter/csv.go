package exporter

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Field is one cell of an exported row.
type Field struct {
	Value  string
	Quoted bool
}

// Text returns a quoted string field.
func Text(s string) Field { return Field{Value: s, Quoted: true} }

// Number returns a bare numeric field.
func Number(f float64) Field { return Field{Value: formatFloat(f)} }

// Int returns a bare integer field.
func Int(i int) Field { return Field{Value: formatInt(int64(i))} }

// Table is a header row plus data rows.
type Table struct {
	Headers []string
	Rows    [][]Field
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger.With(slog.String("component", "csv_writer"))}
}

// Write renders the table to out. Rows are separated by a single newline.
func (w *CSVWriter) Write(out io.Writer, table Table, options WriteOptions) error {
	buf := bufio.NewWriter(out)

	if options.BOMPrefix {
		if _, err := buf.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	if _, err := buf.WriteString(strings.Join(table.Headers, ",")); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for i, row := range table.Rows {
		if err := buf.WriteByte('\n'); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
		if _, err := buf.WriteString(encodeRow(row)); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	return buf.Flush()
}

// WriteFile writes the table to filePath, creating parent directories.
func (w *CSVWriter) WriteFile(filePath string, table Table, options WriteOptions) error {
	w.logger.Info("Writing CSV file",
		slog.String("file_path", filePath),
		slog.Int("record_count", len(table.Rows)))

	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}

	if err := w.Write(file, table, options); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func encodeRow(row []Field) string {
	cells := make([]string, len(row))
	for i, f := range row {
		if f.Quoted {
			cells[i] = `"` + strings.ReplaceAll(f.Value, `"`, `""`) + `"`
		} else {
			cells[i] = f.Value
		}
	}
	return strings.Join(cells, ",")
}
