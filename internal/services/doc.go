// Package services implements the business logic layer of the dashboard.
// It sits between the HTTP and WebSocket transports and the pure pipeline in
// internal/dataprocessing.
//
// # Dashboard coordination
//
// DashboardService is the single owner of mutable dashboard state:
//
//	- the normalized car set, loaded once and never modified afterwards
//	- the active filter and the filtered view derived from it
//	- at most one pending filter waiting for its debounce window
//
// Filter changes are merged into the pending filter and applied when the
// window elapses. A newer change replaces the pending one before it is ever
// applied, so subscribers observe snapshots in the order changes settle.
//
// # Dataset lifecycle
//
// The service starts in the loading state. A successful Load moves it to
// ready. A loader failure moves it to failed, which is terminal: data
// accessors return ErrDatasetLoadFailed from then on.
//
// # Health
//
// HealthService reports liveness, readiness (dataset loaded, hub running)
// and build information.
package services
