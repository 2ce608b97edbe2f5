package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mcomanduci/diario-de-gratidao/internal/application"
	"github.com/mcomanduci/diario-de-gratidao/internal/domain/repository"
	"github.com/mcomanduci/diario-de-gratidao/pkg/response"
)

// writeServiceError maps application errors onto HTTP statuses. Storage
// failures surface as a generic message; internals never leak to the
// caller.
func writeServiceError(c *gin.Context, logger *logrus.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, application.ErrInvalidInput):
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
	case errors.Is(err, application.ErrEmailTaken):
		response.Error[any](c, http.StatusConflict, "email already registered", nil)
	case errors.Is(err, application.ErrUserNotFound), errors.Is(err, repository.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, "not found", nil)
	default:
		if logger != nil {
			logger.WithError(err).WithField("path", c.FullPath()).Error(fallback)
		}
		response.Error[any](c, http.StatusInternalServerError, fallback, nil)
	}
}
