package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pizzamate/pizza-mate-api/internal/models"
)

// respondError maps the core error taxonomy onto HTTP status codes using the
// standard APIError envelope. StorageError is reported as retryable.
func respondError(ctx *gin.Context, err error) {
	var notFound *models.NotFoundError
	var validation *models.ValidationError
	var storage *models.StorageError

	switch {
	case errors.As(err, &notFound):
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrNotFound, notFound.Error()))
	case errors.As(err, &validation):
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, validation.Error()))
	case errors.As(err, &storage):
		ctx.JSON(http.StatusServiceUnavailable, models.NewAPIError(models.ErrStorageFailed,
			"Order could not be persisted, please retry",
			map[string]interface{}{"retryable": true}))
	default:
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Unexpected error"))
	}
}

// currentUserID reads the authenticated user id set by the JWT middleware.
func currentUserID(ctx *gin.Context) (uint, bool) {
	value, exists := ctx.Get("userID")
	if !exists {
		return 0, false
	}
	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		return uint(v), true
	default:
		return 0, false
	}
}
