package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slotify/models"
	"slotify/services/availability"
	"slotify/utils"
)

// AvailabilityHandler exposes the day and month availability queries.
type AvailabilityHandler struct {
	Engine availability.AvailabilityService
	Logger *zap.Logger
}

func NewAvailabilityHandler(engine availability.AvailabilityService, logger *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{Engine: engine, Logger: logger}
}

// GetDaySlots handles GET /api/availability/day.
func (h *AvailabilityHandler) GetDaySlots(c *gin.Context) {
	var q models.DayQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid query", err.Error())
		return
	}

	slots, err := h.Engine.GetDaySlots(c.Request.Context(), q)
	if err != nil {
		if errors.Is(err, availability.ErrInvalidRequest) {
			utils.JSONError(c, http.StatusBadRequest, "invalid query", err.Error())
			return
		}
		h.Logger.Error("day availability failed", zap.Any("query", q), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to compute availability", "")
		return
	}

	// An empty day is a successful result, not an error.
	if slots == nil {
		slots = []models.Slot{}
	}
	c.JSON(http.StatusOK, gin.H{"date": q.Date, "slots": slots})
}

// GetMonthSummary handles GET /api/availability/month.
func (h *AvailabilityHandler) GetMonthSummary(c *gin.Context) {
	var q models.MonthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid query", err.Error())
		return
	}

	summaries, err := h.Engine.GetMonthSummary(c.Request.Context(), q)
	if err != nil {
		if errors.Is(err, availability.ErrInvalidRequest) {
			utils.JSONError(c, http.StatusBadRequest, "invalid query", err.Error())
			return
		}
		h.Logger.Error("month availability failed", zap.Any("query", q), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to compute availability", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"month": q.Month, "days": summaries})
}
