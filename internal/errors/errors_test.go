package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError_Error(t *testing.T) {
	err := New(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format")
	assert.Equal(t, "Invalid request format", err.Error())
}

func TestAPIError_Render(t *testing.T) {
	tests := []struct {
		name     string
		apiError *APIError
	}{
		{"bad request", ErrUnsupportedFormat},
		{"not found", ErrNoTableLoaded},
		{"unprocessable", ErrInsufficientData},
		{"rate limited", ErrRateLimitExceeded},
		{"internal", ErrForecastFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", nil)

			require.NoError(t, render.Render(w, r, NewErrorResponse(tt.apiError)))
			assert.Equal(t, tt.apiError.StatusCode, w.Code)

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.apiError.ErrorCode, body.Error.ErrorCode)
		})
	}
}

func TestNewWithDetails(t *testing.T) {
	err := NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", "bad", "field x")
	assert.Equal(t, "field x", err.Details)
}

func TestExtractionError(t *testing.T) {
	err := ExtractionError(errors.New("open workbook: zip: not a valid zip file"))
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "EXTRACTION_FAILED", err.ErrorCode)
	assert.Contains(t, err.Details, "zip")
}

func TestPivotWarning(t *testing.T) {
	err := PivotWarning("mean")
	assert.Equal(t, http.StatusUnprocessableEntity, err.StatusCode)
	assert.Equal(t, "NO_VALUE_COLUMNS", err.ErrorCode)
	assert.Contains(t, err.Message, `"mean"`)
}

func TestErrValidation(t *testing.T) {
	err := ErrValidation("horizon", "must be at least 1")
	detail, ok := err.Details.(ValidationError)
	require.True(t, ok)
	assert.Equal(t, "horizon", detail.Field)
}
