// Package api contains the request and response contracts of the dashboard
// HTTP API. Version v1 is the current API version.
package api

import (
	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/pkg/contracts/domain"
)

// FilterState is the body of GET /api/dashboard/filter. Pending is nil when
// no change is waiting for its debounce window.
type FilterState struct {
	Filter  domain.Filter  `json:"filter"`
	Pending *domain.Filter `json:"pending"`
}

// ExportDataset describes one downloadable dataset.
type ExportDataset struct {
	Name     string `json:"name"`
	FileName string `json:"fileName"`
	URL      string `json:"url"`
}

// ExportList is the body of GET /api/dashboard/export.
type ExportList struct {
	Datasets []ExportDataset `json:"datasets"`
}
