package errors

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"vendescli/internal/ingest"
)

// ErrorHandler provides centralized error handling for the HTTP
// transport: it logs the failure with request context and maps pipeline
// errors onto the structured API error shape.
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ErrorHandler{
		logger: logger.With(slog.String("component", "error_handler")),
	}
}

// HandleError converts any error to the API error format and responds
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	reqID := middleware.GetReqID(r.Context())

	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("error", err.Error()),
		slog.String("request_id", reqID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)

	apiErr := h.toAPIError(err)
	render.Status(r, apiErr.StatusCode)
	render.JSON(w, r, NewErrorResponse(apiErr))
}

// toAPIError maps ingestion sentinels and context errors onto the
// structured responses; everything else is an internal error whose
// detail is not leaked to the client.
func (h *ErrorHandler) toAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return New(http.StatusGatewayTimeout, "TIMEOUT", "The request took too long to process")
	case errors.Is(err, ingest.ErrEmptyWorkbook):
		return NewWithDetails(ErrEmptyWorkbook.StatusCode, ErrEmptyWorkbook.ErrorCode, ErrEmptyWorkbook.Message, err.Error())
	case errors.Is(err, ingest.ErrHeaderNotFound):
		return NewWithDetails(ErrHeaderNotFound.StatusCode, ErrHeaderNotFound.ErrorCode, ErrHeaderNotFound.Message, err.Error())
	}
	return ErrInternalServer
}
