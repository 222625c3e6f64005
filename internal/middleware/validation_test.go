package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/abdullah-binmadhi/Car-Sales-Dashboard/internal/errors"
	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/pkg/contracts/domain"
)

func newValidation() *ValidationMiddleware {
	return NewValidationMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)), quietErrorHandler())
}

func priceRange(min, max float64) *domain.PriceRange {
	pr := domain.PriceRange{min, max}
	return &pr
}

func TestValidateStruct_FilterPatch(t *testing.T) {
	v := newValidation()

	tests := []struct {
		name      string
		patch     domain.FilterPatch
		wantField string
	}{
		{name: "empty patch", patch: domain.FilterPatch{}},
		{name: "valid range", patch: domain.FilterPatch{PriceRange: priceRange(0, 100000)}},
		{name: "equal bounds", patch: domain.FilterPatch{PriceRange: priceRange(5000, 5000)}},
		{name: "inverted range", patch: domain.FilterPatch{PriceRange: priceRange(10, 5)}, wantField: "priceRange"},
		{name: "negative min", patch: domain.FilterPatch{PriceRange: priceRange(-1, 5)}, wantField: "priceRange"},
		{name: "known body types", patch: domain.FilterPatch{BodyTypes: []string{"SUV", "Van/MPV"}}},
		{name: "unknown body type", patch: domain.FilterPatch{BodyTypes: []string{"Tank"}}, wantField: "bodyTypes[0]"},
		{name: "blank brand", patch: domain.FilterPatch{Brands: []string{"TOYOTA", ""}}, wantField: "brands[1]"},
		{name: "empty brand list clears", patch: domain.FilterPatch{Brands: []string{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(tt.patch)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var apiErr *apperrors.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
			assert.Equal(t, "VALIDATION_FAILED", apiErr.ErrorCode)

			details, ok := apiErr.Details.(apperrors.ValidationErrors)
			require.True(t, ok)
			require.NotEmpty(t, details.Errors)
			assert.Equal(t, tt.wantField, details.Errors[0].Field)
		})
	}
}

func TestValidateRequest(t *testing.T) {
	v := newValidation()
	var gotBody string
	h := v.ValidateRequest(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusAccepted)
	}))

	tests := []struct {
		name       string
		method     string
		body       string
		wantStatus int
	}{
		{name: "valid json", method: http.MethodPatch, body: `{"brands":["BMW"]}`, wantStatus: http.StatusAccepted},
		{name: "invalid json", method: http.MethodPatch, body: `{"brands":`, wantStatus: http.StatusBadRequest},
		{name: "oversized", method: http.MethodPatch, body: `"` + strings.Repeat("x", 1<<20) + `"`, wantStatus: http.StatusRequestEntityTooLarge},
		{name: "get skipped", method: http.MethodGet, body: `not json`, wantStatus: http.StatusAccepted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, "/api/dashboard/filter", strings.NewReader(tt.body)))
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusAccepted {
				assert.Equal(t, tt.body, gotBody, "body restored for the handler")
			}
		})
	}
}

func TestContentTypeValidator(t *testing.T) {
	h := ContentTypeValidator(quietErrorHandler(), "application/json")(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodPatch, "/api/dashboard/filter", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodPatch, "/api/dashboard/filter", strings.NewReader(`brands=BMW`))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestQueryParamValidator(t *testing.T) {
	qv := NewQueryParamValidator(quietErrorHandler())

	tests := []struct {
		query  string
		want   int
		wantOK bool
	}{
		{query: "", want: 10, wantOK: true},
		{query: "page=3", want: 3, wantOK: true},
		{query: "page=0", wantOK: false},
		{query: "page=abc", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := httptest.NewRecorder()
			got, ok := qv.ValidateInt(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard/cars?"+tt.query, nil), "page", 1, 100, 10)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			} else {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			}
		})
	}

	rec := httptest.NewRecorder()
	order, ok := qv.ValidateEnum(rec, httptest.NewRequest(http.MethodGet, "/?order=desc", nil), "order", []string{"asc", "desc"}, "asc")
	assert.True(t, ok)
	assert.Equal(t, "desc", order)

	rec = httptest.NewRecorder()
	_, ok = qv.ValidateEnum(rec, httptest.NewRequest(http.MethodGet, "/?order=up", nil), "order", []string{"asc", "desc"}, "asc")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
