package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
)

type StatsHandler struct {
	svc *services.StatsService
	log *zap.Logger
}

func NewStatsHandler(svc *services.StatsService, log *zap.Logger) *StatsHandler {
	return &StatsHandler{
		svc: svc,
		log: log,
	}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/habits/:id", h.GetHabitSummary)
	r.GET("/board", h.GetBoard)
}

// summaryInput reads ?today=YYYY-MM-DD&days=N. Both are optional; the
// service fills in defaults and validates the values.
func summaryInput(c *gin.Context) (domain.SummaryInput, error) {
	input := domain.SummaryInput{Today: c.Query("today")}

	if raw := c.Query("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			return input, fmt.Errorf("%w: days=%q", domain.ErrInvalidRange, raw)
		}
		input.Days = days
	}
	return input, nil
}

func (h *StatsHandler) GetHabitSummary(c *gin.Context) {
	input, err := summaryInput(c)
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	summary, err := h.svc.GetHabitSummary(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *StatsHandler) GetBoard(c *gin.Context) {
	input, err := summaryInput(c)
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	board, err := h.svc.GetBoard(c.Request.Context(), input)
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, board)
}
