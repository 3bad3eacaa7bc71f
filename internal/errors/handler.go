package errors

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

// ErrorHandler provides centralized error handling for the HTTP boundary.
// It is the only place where internal typed failures become caller-facing
// structured errors.
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger.With(slog.String("component", "error_handler")),
	}
}

// HandleError converts any error to the structured response shape and responds
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
	render.Render(w, r, NewErrorResponse(apiErr))
}

// toAPIError maps internal errors to the caller-facing APIError shape
func (h *ErrorHandler) toAPIError(err error) *APIError {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return New(http.StatusGatewayTimeout, "TIMEOUT", "The request took too long to process and was cancelled")
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return h.appErrorToAPIError(appErr)
	}

	return ErrInternalServer
}

// appErrorToAPIError maps pipeline error types onto HTTP status codes
func (h *ErrorHandler) appErrorToAPIError(appErr *AppError) *APIError {
	switch appErr.Type {
	case ErrTypeFormat:
		return NewWithDetails(http.StatusBadRequest, string(ErrTypeFormat),
			"Uploaded file could not be parsed as tabular data", appErr.Message)
	case ErrTypeNoTextColumn:
		return NewWithDetails(http.StatusUnprocessableEntity, string(ErrTypeNoTextColumn),
			"No accepted text column found in the file header", appErr.Context)
	case ErrTypeEmptyInput:
		return NewWithDetails(http.StatusUnprocessableEntity, string(ErrTypeEmptyInput),
			"No usable rows remain after cleaning", appErr.Message)
	case ErrTypeClassification:
		return NewWithDetails(http.StatusBadGateway, string(ErrTypeClassification),
			"The sentiment model failed to classify the input", appErr.Message)
	case ErrTypeValidation:
		return NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED",
			"Request validation failed", appErr.Message)
	default:
		return ErrInternalServer
	}
}
