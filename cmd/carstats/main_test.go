package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/internal/shared/testutil"
	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/pkg/contracts"
)

// execute runs the root command with args and returns its stdout
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestReport(t *testing.T) {
	path := testutil.WriteCSV(t, testutil.SampleRows())

	out, err := execute(t, "report", "--dataset", path, "--brands", "TOYOTA")
	require.NoError(t, err)

	var got report
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 5, got.TotalRecords)
	assert.Equal(t, 2, got.FilteredCount)
	assert.Equal(t, 2, got.KPIs.TotalVehicles)
	assert.Equal(t, []string{"TOYOTA"}, got.Filter.Brands)
	require.Len(t, got.MarketShare, 1)
	assert.Equal(t, "TOYOTA", got.MarketShare[0].Name)
	assert.Len(t, got.Options.Brands, 4)
}

func TestReport_Unfiltered(t *testing.T) {
	path := testutil.WriteCSV(t, testutil.SampleRows())

	out, err := execute(t, "report", "--dataset", filepath.Dir(path), "--buckets", "4")
	require.NoError(t, err)

	var got report
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 5, got.FilteredCount)
	assert.True(t, got.Filter.IsDefault())
	assert.Len(t, got.PriceDistribution, 4)
}

func TestExport(t *testing.T) {
	path := testutil.WriteCSV(t, testutil.SampleRows())
	dest := filepath.Join(t.TempDir(), "exports", "market_share.csv")

	_, err := execute(t, "export", "market-share", "--dataset", path, "--brands", " TOYOTA ", "-o", dest)
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "name,value,percentage\n\"TOYOTA\",2,100", string(data))
}

func TestExport_Stdout(t *testing.T) {
	path := testutil.WriteCSV(t, testutil.SampleRows())

	out, err := execute(t, "export", "market-share", "--dataset", path, "--min-price", "100000", "--bom")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix([]byte(out), []byte{0xEF, 0xBB, 0xBF}))
	assert.Contains(t, out, `"FERRARI"`)
	assert.NotContains(t, out, `"TOYOTA"`)
}

func TestCommandErrors(t *testing.T) {
	path := testutil.WriteCSV(t, testutil.SampleRows())

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"dataset required", []string{"report", "--brands", "BMW"}, "--dataset is required"},
		{"unknown export", []string{"export", "sales", "--dataset", path}, `unknown export dataset "sales"`},
		{"export needs a dataset name", []string{"export", "--dataset", path}, "accepts 1 arg"},
		{"missing dataset file", []string{"report", "--dataset", filepath.Join(t.TempDir(), "missing.csv")}, "dataset load failed"},
		{"inverted price range", []string{"report", "--dataset", path, "--min-price", "50000", "--max-price", "100"}, "invalid filter"},
		{"unknown body type", []string{"report", "--dataset", path, "--body", "Truck"}, "invalid filter"},
		{"export to a directory", []string{"export", "cars", "--dataset", path, "-o", t.TempDir()}, "is a directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, contracts.Version)

	out, err = execute(t, "version", "--json")
	require.NoError(t, err)
	var info contracts.VersionInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, contracts.APIVersion, info.APIVersion)
}
