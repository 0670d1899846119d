package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
)

type CompletionHandler struct {
	svc *services.CompletionService
	log *zap.Logger
}

func NewCompletionHandler(svc *services.CompletionService, log *zap.Logger) *CompletionHandler {
	return &CompletionHandler{
		svc: svc,
		log: log,
	}
}

type toggleRequest struct {
	// Date defaults to today when omitted.
	Date string `json:"date"`
}

func (h *CompletionHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits/:id")
	{
		habits.POST("/toggle", h.Toggle)
		habits.GET("/completions", h.List)
	}
}

func (h *CompletionHandler) Toggle(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.svc.Toggle(c.Request.Context(), services.ToggleInput{
		HabitID: c.Param("id"),
		Date:    req.Date,
	})
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *CompletionHandler) List(c *gin.Context) {
	dates, err := h.svc.ListDates(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"habit_id": c.Param("id"),
		"dates":    dates,
	})
}
