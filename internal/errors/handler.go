package errors

import (
	stderrors "errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/conectamos-mx/dashboard-ova/internal/graph"
	"github.com/conectamos-mx/dashboard-ova/internal/records"
	"github.com/conectamos-mx/dashboard-ova/internal/tablesource"
)

// ErrorHandler centralizes the translation of domain errors into API error
// responses. Handlers pass whatever error bubbled up; classification happens
// here so the taxonomy stays in one place.
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler.
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ErrorHandler{logger: logger.With(slog.String("component", "error_handler"))}
}

// HandleError classifies err, logs it and writes the JSON error response.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := h.classify(err)

	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("error_code", apiErr.ErrorCode),
		slog.String("error", err.Error()),
	)

	render.Render(w, r, NewErrorResponse(apiErr))
}

func (h *ErrorHandler) classify(err error) *APIError {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr
	}

	var schemaErr *records.SchemaError
	if stderrors.As(err, &schemaErr) {
		return SchemaError(err)
	}

	var fetchErr *graph.FetchError
	if stderrors.As(err, &fetchErr) {
		return RemoteFetchError(err)
	}

	switch {
	case stderrors.Is(err, graph.ErrTokenUnavailable):
		return AuthenticationError(err)
	case stderrors.Is(err, tablesource.ErrDocumentNotConfigured):
		return ConfigurationError(err)
	case stderrors.Is(err, tablesource.ErrWorkbookNotFound):
		return WorkbookNotFoundError(err)
	case stderrors.Is(err, tablesource.ErrSheetNotFound),
		stderrors.Is(err, tablesource.ErrSheetLayout):
		return SheetError(err)
	}

	return NewWithDetails(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR",
		"Internal server error", err.Error())
}
