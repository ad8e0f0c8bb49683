// internal/interfaces/http/handlers/respond.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-api/internal/pkg/apperrors"
)

// respondError maps a service error to an HTTP status and JSON body
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		status = http.StatusBadRequest
		message = err.Error()
	case apperrors.KindNotFound:
		status = http.StatusNotFound
		message = err.Error()
	case apperrors.KindAuthentication:
		status = http.StatusUnauthorized
		message = err.Error()
	}

	c.JSON(status, gin.H{
		"error": message,
	})
}
