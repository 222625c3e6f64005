package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError_ProblemType(t *testing.T) {
	tests := []struct {
		name       string
		err        *APIError
		wantStatus int
		wantType   string
	}{
		{"rate limit", ErrRateLimitExceeded, http.StatusTooManyRequests, TypeRateLimit},
		{"not loaded", ErrDatasetNotLoaded, http.StatusServiceUnavailable, TypeDatasetNotLoaded},
		{"load failed", DatasetLoadFailedError(errors.New("x")), http.StatusServiceUnavailable, TypeDatasetLoadFailed},
		{"car not found", CarNotFoundError("BMW-X5"), http.StatusNotFound, TypeCarNotFound},
		{"not found", NotFoundError("export dataset"), http.StatusNotFound, TypeNotFound},
		{"invalid request", InvalidRequestWithError(errors.New("x")), http.StatusBadRequest, TypeValidation},
		{"invalid json", New(http.StatusBadRequest, "INVALID_JSON", "bad"), http.StatusBadRequest, TypeValidation},
		{"timeout", New(http.StatusGatewayTimeout, "REQUEST_TIMEOUT", "slow"), http.StatusGatewayTimeout, TypeTimeout},
		{"unmapped code", New(http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "big"), http.StatusRequestEntityTooLarge, TypeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, tt.err.StatusCode)
			assert.Equal(t, tt.wantType, tt.err.ProblemType())
			assert.Equal(t, tt.err.Message, tt.err.Error())
		})
	}
}

func TestErrorHelpers(t *testing.T) {
	t.Run("invalid request carries cause", func(t *testing.T) {
		err := InvalidRequestWithError(errors.New("unexpected EOF"))
		assert.Equal(t, CodeInvalidRequest, err.ErrorCode)
		assert.Equal(t, "unexpected EOF", err.Details)
	})

	t.Run("validation names field", func(t *testing.T) {
		err := ErrValidation("priceRange", "min exceeds max")
		require.IsType(t, ValidationError{}, err.Details)
		assert.Equal(t, "priceRange", err.Details.(ValidationError).Field)
	})

	t.Run("not found", func(t *testing.T) {
		err := NotFoundError("dataset")
		assert.Equal(t, "dataset not found", err.Message)
	})

	t.Run("car not found keeps the id", func(t *testing.T) {
		err := CarNotFoundError("car not found: LADA-Niva")
		assert.Equal(t, CodeCarNotFound, err.ErrorCode)
		assert.Equal(t, "car not found: LADA-Niva", err.Details)
	})

	t.Run("dataset load failed", func(t *testing.T) {
		err := DatasetLoadFailedError(errors.New("missing price column"))
		assert.Equal(t, http.StatusServiceUnavailable, err.StatusCode)
		assert.Equal(t, "missing price column", err.Details)
	})

	t.Run("multiple validation errors", func(t *testing.T) {
		err := NewValidationErrors([]ValidationError{
			{Field: "brands", Message: "required"},
			{Field: "bodyTypes", Message: "oneof"},
		})
		details, ok := err.Details.(ValidationErrors)
		require.True(t, ok)
		assert.Len(t, details.Errors, 2)
	})
}

func TestProblemDetails_MarshalJSON(t *testing.T) {
	problem := NewProblemDetails(http.StatusBadRequest, TypeValidation, "Validation Failed", "", "/api/dashboard/filter").
		WithExtension("trace_id", "req-1")

	data, err := json.Marshal(problem)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, TypeValidation, body["type"])
	assert.Equal(t, float64(http.StatusBadRequest), body["status"])
	assert.Equal(t, "req-1", body["trace_id"])
	assert.Equal(t, "/api/dashboard/filter", body["instance"])
	assert.NotContains(t, body, "detail")
}

func TestProblemDetails_ExtensionsCannotOverrideMembers(t *testing.T) {
	problem := NewProblemDetails(http.StatusNotFound, TypeNotFound, "Not Found", "gone", "").
		WithExtension("status", 200)

	data, err := json.Marshal(problem)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, float64(http.StatusNotFound), body["status"])
}
