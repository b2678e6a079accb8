package handlers

import (
	"errors"
	"net/http"

	"servicehub/database/repository"
	"servicehub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps a service error to its HTTP status. AppError messages are
// returned as details; anything unrecognised is logged and reported as 500.
func respondError(c *gin.Context, err error, message string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, repository.ErrDuplicate), errors.Is(err, utils.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, utils.ErrBadRequest):
		status = http.StatusBadRequest
	case errors.Is(err, utils.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, utils.ErrUnprocessable):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, utils.ErrUnavailable):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		getLogger(c).Error(message, zap.String("path", c.FullPath()), zap.Error(err))
		utils.JSONError(c, status, message, "")
		return
	}

	details := err.Error()
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		details = appErr.Message
	}
	utils.JSONError(c, status, message, details)
}

// badInput reports a request body that could not be bound.
func badInput(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
}
