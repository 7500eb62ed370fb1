package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-medication-alarm/internal/domain"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func respondError(c *gin.Context, status int, errType, message string) {
	c.JSON(status, errorResponse{Error: errType, Message: message})
}

// reminderID reads the :id path parameter. It responds and returns false
// when the id is not a non-negative integer.
func reminderID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "reminder id must be an integer")
		return 0, false
	}
	if id < 0 {
		respondError(c, http.StatusBadRequest, "validation_error", domain.ErrInvalidReminder.Error())
		return 0, false
	}
	return id, true
}

func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidReminder),
		errors.Is(err, domain.ErrInvalidSnoozeDuration),
		errors.Is(err, domain.ErrUnknownAction):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "processing_error", "failed to process request")
	}
}
