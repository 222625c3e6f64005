package config

import "time"

// Application constants
const (
	// Application Info
	AppName = "Car Sales Dashboard"

	// Configuration sources
	EnvPrefix     = "CARS"
	ConfigFileEnv = "CARS_CONFIG"
	EnvFileEnv    = "CARS_ENV_FILE"

	// Dataset
	DefaultDatasetPath = "data/Cars Datasets 2025.csv"

	// Dashboard
	DefaultDebounceWindow  = 300 * time.Millisecond
	DefaultMaxPrice        = 5_000_000
	DefaultBucketCount     = 10
	DefaultCacheSize       = 64
	DefaultPageSize        = 10
	DefaultComparisonSize  = 3
	DefaultRequestTimeout  = 30 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// WebSocket
	WebSocketReadBufferSize  = 1024
	WebSocketWriteBufferSize = 1024
	WebSocketPingPeriod      = 30 * time.Second
	WebSocketPongWait        = 60 * time.Second

	// Endpoints
	APIBasePath       = "/api"
	DashboardPath     = "/api/dashboard"
	HealthEndpoint    = "/api/health"
	MetricsEndpoint   = "/metrics"
	WebSocketEndpoint = "/ws"
)

// configFileLocations are searched in order when no file is named explicitly.
var configFileLocations = []string{
	"config.yaml",
	"configs/config.yaml",
	"../configs/config.yaml",
}
