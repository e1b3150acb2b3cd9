package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kicho-app/kicho_backend/internal/apperrors"
	"github.com/kicho-app/kicho_backend/internal/middleware"
)

// respondError translates a service error into an HTTP response using the
// error's kind. Validation maps to 400, missing resources to 404, business
// rejections to 409, everything infrastructural to 500.
func respondError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	kind := apperrors.KindOf(err)
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case kind == apperrors.KindValidation:
		status = http.StatusBadRequest
	case kind == apperrors.KindBusiness:
		status = http.StatusConflict
	}

	body := gin.H{"error": err.Error(), "kind": kind}
	if fields := apperrors.FieldsOf(err); len(fields) > 0 {
		body["fields"] = fields
	}

	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", slog.String("error", err.Error()), slog.String("kind", string(kind)))
	} else {
		logger.Warn("Request rejected", slog.String("error", err.Error()), slog.String("kind", string(kind)))
	}
	c.JSON(status, body)
}
