package dataprocessing

import (
	"log/slog"
	"strings"

	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/pkg/contracts/domain"
)

// TransformStatistics describes the outcome of one transformation pass.
type TransformStatistics struct {
	InputRecords   int `json:"input_records"`
	OutputRecords  int `json:"output_records"`
	DroppedRecords int `json:"dropped_records"`
}

// RecordTransformer turns raw dataset rows into normalized cars.
type RecordTransformer struct {
	logger *slog.Logger
}

// NewRecordTransformer creates a transformer. A nil logger falls back to the
// default logger.
func NewRecordTransformer(logger *slog.Logger) *RecordTransformer {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecordTransformer{
		logger: logger.With(slog.String("component", "record_transformer")),
	}
}

// Transform normalizes every row and drops those without a positive price.
// Source order is preserved.
func (t *RecordTransformer) Transform(rows []domain.RawRecord) []domain.Car {
	cars, _ := t.TransformWithStats(rows)
	return cars
}

// TransformWithStats is Transform plus drop counts.
func (t *RecordTransformer) TransformWithStats(rows []domain.RawRecord) ([]domain.Car, TransformStatistics) {
	stats := TransformStatistics{InputRecords: len(rows)}
	cars := make([]domain.Car, 0, len(rows))

	for i, row := range rows {
		car := normalizeRecord(row)
		if car.Price <= 0 {
			stats.DroppedRecords++
			t.logger.Debug("dropping record without a valid price",
				slog.Int("row", i),
				slog.String("company", car.CompanyName),
				slog.String("model", car.ModelName),
				slog.String("raw_price", row[domain.ColumnPrice]))
			continue
		}
		cars = append(cars, car)
	}

	stats.OutputRecords = len(cars)
	return cars, stats
}

// ProcessCarData normalizes raw rows with a default transformer.
func ProcessCarData(rows []domain.RawRecord) []domain.Car {
	return NewRecordTransformer(nil).Transform(rows)
}

func normalizeRecord(row domain.RawRecord) domain.Car {
	return domain.Car{
		CompanyName: trimmedOrUnknown(row[domain.ColumnCompany]),
		ModelName:   trimmedOrUnknown(row[domain.ColumnModel]),
		Price:       ParsePrice(row[domain.ColumnPrice]),
		Performance: ParsePerformance(row[domain.ColumnPerformance]),
		HorsePower:  ParseHorsepower(row[domain.ColumnHorsePower]),
		Torque:      ParseTorque(row[domain.ColumnTorque]),
		TotalSpeed:  ParseSpeed(row[domain.ColumnTotalSpeed]),
		FuelType:    StandardizeFuelType(row[domain.ColumnFuelType]),
		EngineType:  StandardizeEngineType(row[domain.ColumnEngine]),
		Raw:         row.Clone(),
	}
}

func trimmedOrUnknown(s string) string {
	if v := strings.TrimSpace(s); v != "" {
		return v
	}
	return domain.UnknownValue
}
