package errors

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"cbmcli/internal/middleware"
)

// ErrorHandler provides centralized error handling for the HTTP surface.
// It maps application errors onto APIError responses and logs them with
// request context.
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

// HandleError converts any error to a structured response and renders it
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	reqID := middleware.GetRequestID(r.Context())

	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("error", err.Error()),
		slog.String("request_id", reqID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)

	render.Render(w, r, NewErrorResponse(h.toAPIError(err)))
}

// toAPIError maps application errors to their HTTP representation.
func (h *ErrorHandler) toAPIError(err error) *APIError {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr
	}

	var appErr *AppError
	if As(err, &appErr) {
		switch appErr.Type {
		case ErrTypeLoad:
			return FileLoadError(appErr)
		case ErrTypeValidation:
			return NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", appErr.Message, appErr.Context)
		case ErrTypeNotFound:
			return New(http.StatusNotFound, "NOT_FOUND", appErr.Message)
		case ErrTypeParsing:
			return NewWithDetails(http.StatusUnprocessableEntity, "PARSING_FAILED", appErr.Message, appErr.Context)
		case ErrTypeStorage:
			return New(http.StatusInternalServerError, "STORAGE_ERROR", appErr.Message)
		}
	}

	return ErrInternalServer
}
