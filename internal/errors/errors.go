package errors

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// APIError represents a structured API error response
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// ValidationError represents validation errors
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates a new APIError with the given parameters
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// NewWithDetails creates a new APIError with additional details
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

// Predefined error types for common scenarios
var (
	// 400 Bad Request
	ErrInvalidRequest     = New(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format")
	ErrValidationFailed   = New(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed")
	ErrUnsupportedFormat  = New(http.StatusBadRequest, "UNSUPPORTED_FORMAT", "File format is not supported")
	ErrUnknownAggregation = New(http.StatusBadRequest, "UNKNOWN_AGGREGATION", "Unknown aggregation function")
	ErrUnknownFrequency   = New(http.StatusBadRequest, "UNKNOWN_FREQUENCY", "Unknown resampling frequency")

	// 404 Not Found
	ErrNotFound      = New(http.StatusNotFound, "NOT_FOUND", "Resource not found")
	ErrNoTableLoaded = New(http.StatusNotFound, "NO_TABLE_LOADED", "No table has been loaded in this session")

	// 422 Unprocessable Entity: the request was well-formed but the data
	// cannot support the operation. These map the core's recoverable
	// warnings; the previously loaded table and results stay untouched.
	ErrEmptyTable       = New(http.StatusUnprocessableEntity, "EMPTY_TABLE", "Table is empty after cleaning")
	ErrNoValidRows      = New(http.StatusUnprocessableEntity, "NO_VALID_ROWS", "No valid data rows remain after cleaning")
	ErrNoValueColumns   = New(http.StatusUnprocessableEntity, "NO_VALUE_COLUMNS", "Pivot requires at least one value column for this aggregation")
	ErrInsufficientData = New(http.StatusUnprocessableEntity, "INSUFFICIENT_DATA", "Not enough data points to forecast (need at least 2)")
	ErrNoTables         = New(http.StatusUnprocessableEntity, "NO_TABLES", "No tables were found in the document")

	// 429 Too Many Requests
	ErrRateLimitExceeded = New(http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Rate limit exceeded")

	// 500 Internal Server Error
	ErrInternalServer = New(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
	ErrForecastFailed = New(http.StatusInternalServerError, "FORECAST_FAILED", "Forecast computation failed")
	ErrExportFailed   = New(http.StatusInternalServerError, "EXPORT_FAILED", "Report export failed")
)

// Helper functions for specific error types

// InvalidRequestWithError creates an invalid request error with details
func InvalidRequestWithError(err error) *APIError {
	return NewWithDetails(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format", err.Error())
}

// ErrValidation creates a validation error with field details
func ErrValidation(field, message string) *APIError {
	return NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed", ValidationError{
		Field:   field,
		Message: message,
	})
}

// ExtractionError wraps a malformed-source failure from the extractors. The
// core is never invoked for these.
func ExtractionError(err error) *APIError {
	return NewWithDetails(http.StatusBadRequest, "EXTRACTION_FAILED", "Could not read file", err.Error())
}

// ForecastError wraps a numerical fitting failure with its reason string.
func ForecastError(err error) *APIError {
	return NewWithDetails(http.StatusInternalServerError, "FORECAST_FAILED", "Forecast computation failed", err.Error())
}

// PivotWarning names the aggregation that was rejected for missing value
// columns.
func PivotWarning(agg string) *APIError {
	return NewWithDetails(http.StatusUnprocessableEntity, "NO_VALUE_COLUMNS",
		fmt.Sprintf("Aggregation %q requires at least one value column", agg), agg)
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   *APIError `json:"error"`
}

// NewErrorResponse creates a new error response
func NewErrorResponse(err *APIError) *ErrorResponse {
	return &ErrorResponse{
		Success: false,
		Error:   err,
	}
}

// Render implements the render.Renderer interface
func (e *ErrorResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return e.Error.Render(w, r)
}
