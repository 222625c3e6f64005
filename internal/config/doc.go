// Package config provides centralized configuration management for the
// dashboard. It handles loading configuration from multiple sources, validation,
// and provides a type-safe API for accessing configuration values.
//
// # Configuration Sources
//
// Configuration is layered in the following order, later sources winning:
//
//	1. Default values (Default)
//	2. A YAML configuration file
//	3. Environment variables
//
// The configuration file is named by CARS_CONFIG or found in config.yaml or
// configs/config.yaml.
//
// # Environment Variables
//
// All environment variables follow the pattern CARS_<SECTION>_<FIELD>:
//
//	CARS_SERVER_PORT=8080
//	CARS_DATASET_PATH=data/cars.xlsx
//	CARS_DASHBOARD_DEBOUNCE_WINDOW=300ms
//	CARS_LOGGING_LEVEL=debug
//	CARS_TELEMETRY_TRACING_EXPORTER=stdout
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
