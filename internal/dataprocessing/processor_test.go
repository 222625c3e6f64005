package dataprocessing

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/pkg/contracts/domain"
)

func sf90Row() domain.RawRecord {
	return domain.RawRecord{
		domain.ColumnCompany:     "FERRARI",
		domain.ColumnModel:       "SF90 STRADALE",
		domain.ColumnEngine:      "V8",
		domain.ColumnCapacity:    "3990 cc",
		domain.ColumnHorsePower:  "963 hp",
		domain.ColumnTotalSpeed:  "340 km/h",
		domain.ColumnPerformance: "2.5 sec",
		domain.ColumnPrice:       "$1,100,000",
		domain.ColumnFuelType:    "plug in hyrbrid",
		domain.ColumnSeats:       "2",
		domain.ColumnTorque:      "800 Nm",
	}
}

func TestProcessCarData(t *testing.T) {
	cars := ProcessCarData([]domain.RawRecord{sf90Row()})

	require.Len(t, cars, 1)
	car := cars[0]
	assert.Equal(t, "FERRARI", car.CompanyName)
	assert.Equal(t, "SF90 STRADALE", car.ModelName)
	assert.Equal(t, 1100000.0, car.Price)
	assert.Equal(t, 2.5, car.Performance)
	assert.Equal(t, 963.0, car.HorsePower)
	assert.Equal(t, 800.0, car.Torque)
	assert.Equal(t, 340.0, car.TotalSpeed)
	assert.Equal(t, "Hybrid", car.FuelType)
	assert.Equal(t, "V8", car.EngineType)
	assert.Equal(t, sf90Row(), car.Raw, "raw fields are preserved")
	assert.Equal(t, "3990 cc", car.Capacity())
	assert.Equal(t, "2", car.Seats())
	assert.Equal(t, "FERRARI-SF90 STRADALE", car.ID())
}

func TestProcessCarDataDropsRecordsWithoutPrice(t *testing.T) {
	noPrice := sf90Row()
	noPrice[domain.ColumnPrice] = "N/A"
	missingPrice := sf90Row()
	delete(missingPrice, domain.ColumnPrice)
	zeroPrice := sf90Row()
	zeroPrice[domain.ColumnPrice] = "$0"

	second := sf90Row()
	second[domain.ColumnCompany] = "  TOYOTA  "
	second[domain.ColumnPrice] = "$26,700"

	cars := ProcessCarData([]domain.RawRecord{noPrice, sf90Row(), missingPrice, zeroPrice, second})

	require.Len(t, cars, 2)
	assert.Equal(t, "FERRARI", cars[0].CompanyName)
	assert.Equal(t, "TOYOTA", cars[1].CompanyName, "company names are trimmed and order kept")
	for _, c := range cars {
		assert.Greater(t, c.Price, 0.0)
	}
}

func TestProcessCarDataDefaults(t *testing.T) {
	cars := ProcessCarData([]domain.RawRecord{{
		domain.ColumnCompany: "   ",
		domain.ColumnPrice:   "$10,000",
	}})

	require.Len(t, cars, 1)
	assert.Equal(t, "Unknown", cars[0].CompanyName)
	assert.Equal(t, "Unknown", cars[0].ModelName)
	assert.Equal(t, "Unknown", cars[0].FuelType)
	assert.Equal(t, "Unknown", cars[0].EngineType)
	assert.Zero(t, cars[0].HorsePower)
	assert.Equal(t, "N/A", cars[0].RawValue(domain.ColumnSeats))
}

func TestProcessCarDataEmpty(t *testing.T) {
	cars := ProcessCarData(nil)
	assert.NotNil(t, cars)
	assert.Empty(t, cars)
}

func TestTransformWithStats(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	transformer := NewRecordTransformer(logger)

	bad := sf90Row()
	bad[domain.ColumnPrice] = ""

	cars, stats := transformer.TransformWithStats([]domain.RawRecord{sf90Row(), bad})

	assert.Len(t, cars, 1)
	assert.Equal(t, TransformStatistics{InputRecords: 2, OutputRecords: 1, DroppedRecords: 1}, stats)
	assert.Contains(t, buf.String(), "dropping record without a valid price")
	assert.Contains(t, buf.String(), `"component":"record_transformer"`)
}

func TestTransformDoesNotShareRawRecords(t *testing.T) {
	row := sf90Row()
	cars := ProcessCarData([]domain.RawRecord{row})
	require.Len(t, cars, 1)

	row[domain.ColumnModel] = "changed"
	assert.Equal(t, "SF90 STRADALE", cars[0].Raw[domain.ColumnModel])
}
