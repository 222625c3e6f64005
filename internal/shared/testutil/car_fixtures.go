package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/pkg/contracts/domain"
)

// CarRow builds a complete raw record.
func CarRow(company, model, engine, horsePower, price, fuel string) domain.RawRecord {
	return domain.RawRecord{
		domain.ColumnCompany:     company,
		domain.ColumnModel:       model,
		domain.ColumnEngine:      engine,
		domain.ColumnCapacity:    "2998 cc",
		domain.ColumnHorsePower:  horsePower,
		domain.ColumnTotalSpeed:  "250 km/h",
		domain.ColumnPerformance: "5.0 sec",
		domain.ColumnPrice:       price,
		domain.ColumnFuelType:    fuel,
		domain.ColumnSeats:       "4",
		domain.ColumnTorque:      "500 Nm",
	}
}

// SampleRows returns a small mixed dataset. The last row has no usable price
// and is dropped by the transformer.
func SampleRows() []domain.RawRecord {
	return []domain.RawRecord{
		CarRow("FERRARI", "SF90 STRADALE", "V8", "963 hp", "$1,100,000", "plug in hyrbrid"),
		CarRow("TOYOTA", "Corolla Sedan", "Inline-4", "138 hp", "$26,700", "Hybrid"),
		CarRow("TESLA", "Model X", "Electric Motor", "1,020 hp", "$108,490", "Electric"),
		CarRow("BMW", "X5 M", "V8", "617 hp", "$105,100", "Petrol"),
		CarRow("TOYOTA", "Hilux Pickup", "I4", "201 hp", "$30,000-$40,000", "Diesel"),
		CarRow("LADA", "Niva", "I4", "83 hp", "N/A", "Petrol"),
	}
}

// WriteCSV writes rows as a dataset file and returns its path.
func WriteCSV(t *testing.T, rows []domain.RawRecord) string {
	t.Helper()

	var b strings.Builder
	b.WriteString(quoteJoin(domain.Columns))
	b.WriteByte('\n')
	for _, row := range rows {
		cells := make([]string, len(domain.Columns))
		for i, col := range domain.Columns {
			cells[i] = row[col]
		}
		b.WriteString(quoteJoin(cells))
		b.WriteByte('\n')
	}

	path := filepath.Join(t.TempDir(), "cars.csv")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}

func quoteJoin(cells []string) string {
	quoted := make([]string, len(cells))
	for i, c := range cells {
		quoted[i] = `"` + strings.ReplaceAll(c, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}
