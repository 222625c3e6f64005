package errors

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// Error codes carried in the error_code extension of a problem response
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeNotFound         = "NOT_FOUND"
	CodeCarNotFound      = "CAR_NOT_FOUND"
	CodeRateLimit        = "RATE_LIMIT_EXCEEDED"
	CodeDatasetNotLoaded = "DATASET_NOT_LOADED"
	CodeDatasetFailed    = "DATASET_LOAD_FAILED"
)

// problemTypes maps error codes onto RFC 7807 type URIs.
// Codes missing here render as TypeInternal.
var problemTypes = map[string]string{
	CodeInvalidRequest:   TypeValidation,
	CodeValidationFailed: TypeValidation,
	CodeNotFound:         TypeNotFound,
	CodeCarNotFound:      TypeCarNotFound,
	CodeRateLimit:        TypeRateLimit,
	CodeDatasetNotLoaded: TypeDatasetNotLoaded,
	CodeDatasetFailed:    TypeDatasetLoadFailed,
	"INVALID_JSON":       TypeValidation,
	"REQUEST_TIMEOUT":    TypeTimeout,
}

// APIError is an error raised at the HTTP boundary with its status and code
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// ProblemType returns the RFC 7807 type URI for the error code
func (e *APIError) ProblemType() string {
	if t, ok := problemTypes[e.ErrorCode]; ok {
		return t
	}
	return TypeInternal
}

// ValidationError describes one rejected field
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors groups every rejected field of one request
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

var (
	ErrRateLimitExceeded = New(http.StatusTooManyRequests, CodeRateLimit, "Rate limit exceeded")
	ErrDatasetNotLoaded  = New(http.StatusServiceUnavailable, CodeDatasetNotLoaded, "Dataset is still loading")
)

// InvalidRequestWithError reports a malformed request body or query
func InvalidRequestWithError(err error) *APIError {
	return NewWithDetails(http.StatusBadRequest, CodeInvalidRequest, "Invalid request format", err.Error())
}

// ErrValidation reports a single rejected field
func ErrValidation(field, message string) *APIError {
	return NewWithDetails(http.StatusBadRequest, CodeValidationFailed, "Request validation failed", ValidationError{
		Field:   field,
		Message: message,
	})
}

// NewValidationErrors reports every rejected field at once
func NewValidationErrors(errors []ValidationError) *APIError {
	return NewWithDetails(http.StatusBadRequest, CodeValidationFailed, "Request validation failed",
		ValidationErrors{Errors: errors})
}

func NotFoundError(resource string) *APIError {
	return NewWithDetails(http.StatusNotFound, CodeNotFound, fmt.Sprintf("%s not found", resource), resource)
}

// CarNotFoundError reports an id that is not in the filtered view
func CarNotFoundError(id string) *APIError {
	return NewWithDetails(http.StatusNotFound, CodeCarNotFound, "Car not found", id)
}

// DatasetLoadFailedError is the terminal dataset error; the cause goes in details
func DatasetLoadFailedError(err error) *APIError {
	return NewWithDetails(http.StatusServiceUnavailable, CodeDatasetFailed, "Dataset could not be loaded", err.Error())
}
