package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/internal/shared/testutil"
)

type stubDataset struct {
	state DatasetState
	err   error
}

func (s stubDataset) State() (DatasetState, error) { return s.state, s.err }

type stubHub int

func (h stubHub) ClientCount() int { return int(h) }

func TestHealthService_ReadinessCheck(t *testing.T) {
	tests := []struct {
		name        string
		dataset     DatasetStateProvider
		hub         ClientCounter
		wantStatus  string
		wantDataset string
	}{
		{
			name:        "ready",
			dataset:     stubDataset{state: StateReady},
			hub:         stubHub(2),
			wantStatus:  "ready",
			wantDataset: "ready",
		},
		{
			name:        "loading",
			dataset:     stubDataset{state: StateLoading},
			hub:         stubHub(0),
			wantStatus:  "not_ready",
			wantDataset: "not_ready",
		},
		{
			name:        "failed",
			dataset:     stubDataset{state: StateFailed, err: errors.New("no price column")},
			wantStatus:  "not_ready",
			wantDataset: "failed",
		},
		{
			name:        "no dataset",
			wantStatus:  "not_ready",
			wantDataset: "not_ready",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := testutil.NewTestLogger(t)
			hs := NewHealthService("v1.2.0", "https://example.com/repo", "", tt.dataset, tt.hub, logger)

			status := hs.ReadinessCheck(context.Background())

			assert.Equal(t, tt.wantStatus, status.Status)
			dataset := status.Services["dataset"].(ServiceHealth)
			assert.Equal(t, tt.wantDataset, dataset.Status)
		})
	}
}

func TestHealthService_ReadinessWithRealService(t *testing.T) {
	s := loadedService(t, 0)
	hs := NewHealthService("dev", "", "", s, nil, nil)

	assert.Equal(t, "ready", hs.ReadinessCheck(context.Background()).Status)
}

func TestHealthService_HealthAndLiveness(t *testing.T) {
	hs := NewHealthService("v1.2.0", "", "2026-10-01T00:00:00Z", nil, nil, nil)
	ctx := context.Background()

	health := hs.HealthCheck(ctx)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "v1.2.0", health.Version)

	live := hs.LivenessCheck(ctx)
	assert.Equal(t, "alive", live.Status)
	assert.Contains(t, live.Runtime, "goroutines")

	version := hs.Version()
	assert.Equal(t, "v1.2.0", version["version"])
	assert.Equal(t, "2026-10-01T00:00:00Z", version["build_time"])
}
