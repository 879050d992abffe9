package controllers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"filetags/internal/delivery/http/helpers"
	"filetags/internal/delivery/http/middleware"
	"filetags/internal/domain"
)

// writeManagerError maps a TagManager error onto the API envelope. Errors
// outside the domain taxonomy are logged and reported as 500.
func writeManagerError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrNoSuchTag), errors.Is(err, domain.ErrNoSuchFile):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, err.Error())
	case errors.Is(err, domain.ErrTagAlreadyExists), errors.Is(err, domain.ErrTagNotEmpty):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
	case errors.Is(err, domain.ErrReservedTag):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		logger.WarnContext(r.Context(), "request timed out", "path", r.URL.Path, "method", r.Method, "request_id", middleware.RequestIDFromContext(r.Context()))
		helpers.WriteJSONError(w, http.StatusGatewayTimeout, helpers.ErrCodeTimeout, "request timed out")
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "request_id", middleware.RequestIDFromContext(r.Context()), "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}
