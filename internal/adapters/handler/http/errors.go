package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-habits/internal/core/calendar"
	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

var badRequest = []error{
	domain.ErrHabitNameEmpty,
	domain.ErrHabitNameTooLong,
	domain.ErrInvalidColor,
	domain.ErrInvalidEntry,
	domain.ErrInvalidRange,
	calendar.ErrInvalidDate,
}

// handleError writes the JSON error response for err. Internal errors are
// logged and never echoed to the client.
func handleError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrHabitNotFound), errors.Is(err, domain.ErrCompletionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	for _, target := range badRequest {
		if errors.Is(err, target) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	log.Error("Request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
