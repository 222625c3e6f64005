package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFileValidator_ValidateDataset(t *testing.T) {
	tests := []struct {
		name          string
		setupFunc     func(t *testing.T) string
		wantErr       bool
		errorContains string
	}{
		{
			name: "csv file",
			setupFunc: func(t *testing.T) string {
				return writeFile(t, t.TempDir(), "cars.csv", "Company Names\n")
			},
		},
		{
			name: "workbook extension is case-insensitive",
			setupFunc: func(t *testing.T) string {
				return writeFile(t, t.TempDir(), "Cars.XLSX", "PK")
			},
		},
		{
			name: "unsupported extension",
			setupFunc: func(t *testing.T) string {
				return writeFile(t, t.TempDir(), "cars.json", "[]")
			},
			wantErr:       true,
			errorContains: "unsupported dataset format",
		},
		{
			name: "temporary workbook",
			setupFunc: func(t *testing.T) string {
				return writeFile(t, t.TempDir(), "~$cars.xlsx", "PK")
			},
			wantErr:       true,
			errorContains: "temporary workbook",
		},
		{
			name: "missing file",
			setupFunc: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "missing.csv")
			},
			wantErr:       true,
			errorContains: "does not exist",
		},
		{
			name: "directory with dataset extension",
			setupFunc: func(t *testing.T) string {
				dir := filepath.Join(t.TempDir(), "cars.csv")
				require.NoError(t, os.Mkdir(dir, 0755))
				return dir
			},
			wantErr:       true,
			errorContains: "is a directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewFileValidator(nil).ValidateDataset(tt.setupFunc(t))
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestFileValidator_SizeLimit(t *testing.T) {
	path := writeFile(t, t.TempDir(), "cars.csv", "0123456789")

	err := NewFileValidator(nil).WithMaxSize(5).ValidateFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "limit is 5")

	assert.NoError(t, NewFileValidator(nil).WithMaxSize(0).ValidateFile(path))
	assert.NoError(t, NewFileValidator(nil).WithMaxSize(10).ValidateFile(path))
}

func TestFileValidator_ValidateOutputDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, NewFileValidator(nil).ValidateOutputDirectory(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, err = os.Stat(filepath.Join(dir, ".write_test"))
	assert.True(t, os.IsNotExist(err))
}

func TestFileValidator_ValidateExportPath(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"new file in new directory", filepath.Join(root, "exports", "car_data.csv"), false},
		{"wrong extension", filepath.Join(root, "car_data.txt"), true},
		{"directory", root, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewFileValidator(nil).ValidateExportPath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
