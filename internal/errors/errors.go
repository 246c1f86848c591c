// Package errors defines the API error taxonomy and the central HTTP error
// handler. Domain packages return typed errors; the handler maps them onto a
// structured JSON body with a stable error code.
package errors

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// APIError represents a structured API error response.
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// Render implements render.Renderer for chi/render.
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// New creates a new APIError.
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// NewWithDetails creates a new APIError with additional details.
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

// Predefined errors for the dashboard's failure modes.
var (
	// 400 Bad Request
	ErrInvalidRequest = New(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format")

	// 404 Not Found
	ErrNotFound = New(http.StatusNotFound, "NOT_FOUND", "Resource not found")

	// 500 Internal Server Error
	ErrInternalServer = New(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
)

// ConfigurationError maps a missing required setting (e.g. a document ID that
// was never configured) onto a 500 with a distinct code.
func ConfigurationError(err error) *APIError {
	return NewWithDetails(http.StatusInternalServerError, "CONFIG_MISSING",
		"Required configuration is missing", err.Error())
}

// AuthenticationError signals that every credential strategy was exhausted.
func AuthenticationError(err error) *APIError {
	return NewWithDetails(http.StatusBadGateway, "AUTH_FAILED",
		"Could not authenticate against the document store", err.Error())
}

// RemoteFetchError wraps a transport failure while fetching a remote document.
func RemoteFetchError(err error) *APIError {
	return NewWithDetails(http.StatusBadGateway, "REMOTE_FETCH_FAILED",
		"Failed to fetch remote document", err.Error())
}

// SchemaError signals that an expected column disappeared from a sheet.
func SchemaError(err error) *APIError {
	return NewWithDetails(http.StatusInternalServerError, "SHEET_SCHEMA_CHANGED",
		"Sheet layout no longer matches the expected schema", err.Error())
}

// WorkbookNotFoundError signals a missing local workbook file.
func WorkbookNotFoundError(err error) *APIError {
	return NewWithDetails(http.StatusInternalServerError, "WORKBOOK_NOT_FOUND",
		"Workbook file not found", err.Error())
}

// SheetError wraps a missing sheet or an unreadable sheet layout.
func SheetError(err error) *APIError {
	return NewWithDetails(http.StatusInternalServerError, "SHEET_PARSE_FAILED",
		"Could not read the requested sheet", err.Error())
}

// ErrValidation creates a validation error with field details.
func ErrValidation(field, message string) *APIError {
	return NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed",
		map[string]string{"field": field, "message": message})
}

// ErrorResponse is the envelope written for every error.
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   *APIError `json:"error"`
}

// NewErrorResponse creates a new error response.
func NewErrorResponse(err *APIError) *ErrorResponse {
	return &ErrorResponse{Success: false, Error: err}
}

// Render implements render.Renderer.
func (e *ErrorResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return e.Error.Render(w, r)
}

// WriteError writes an error response directly, for use outside chi handlers.
func WriteError(w http.ResponseWriter, err *APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.StatusCode)
	json.NewEncoder(w).Encode(NewErrorResponse(err))
}

// ErrPanic creates the error rendered after panic recovery.
func ErrPanic(rec interface{}) *APIError {
	return NewWithDetails(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR",
		"Internal server error", fmt.Sprintf("%v", rec))
}
