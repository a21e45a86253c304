package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/example/crane-asset-manager/internal/application"
)

// respondError maps application errors to HTTP status codes with a JSON
// error body.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, application.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, application.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, application.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, application.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, application.ErrForbidden):
		status = http.StatusForbidden
	}

	if status == http.StatusInternalServerError {
		logrus.WithError(err).Error("Request failed")
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
