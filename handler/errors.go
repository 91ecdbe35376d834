package handler

import (
	"errors"

	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps the usecase error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is a store failure and stays opaque to the caller.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		utils.NotFound(c, err.Error())
	case errors.Is(err, usecase.ErrForbidden):
		utils.Forbidden(c, err.Error())
	case errors.Is(err, usecase.ErrValidation):
		utils.BadRequest(c, err.Error())
	case errors.Is(err, usecase.ErrConflict):
		utils.Conflict(c, err.Error())
	default:
		utils.TrackError("http", "internal_error")
		utils.InternalError(c, "Internal server error")
	}
}
