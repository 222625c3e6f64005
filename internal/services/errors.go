package services

import "errors"

// Dashboard service errors
var (
	// Dataset lifecycle
	ErrDatasetNotLoaded     = errors.New("dataset not loaded")
	ErrDatasetLoadFailed    = errors.New("dataset load failed")
	ErrDatasetAlreadyLoaded = errors.New("dataset already loaded")

	// Lookups
	ErrCarNotFound   = errors.New("car not found")
	ErrUnknownExport = errors.New("unknown export dataset")

	// Requests
	ErrInvalidInput = errors.New("invalid input")
)
