package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slotify/models"
	"slotify/services/booking"
	"slotify/utils"
)

// BookingHandler exposes booking submission and lifecycle endpoints.
type BookingHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// Create handles POST /api/bookings. A slot taken between the client's
// availability read and this submission yields 409; the client should
// re-query availability.
func (h *BookingHandler) Create(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	b, err := h.Service.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrInvalidBooking):
			utils.JSONError(c, http.StatusBadRequest, "invalid booking", err.Error())
		case errors.Is(err, booking.ErrSlotConflict):
			utils.JSONError(c, http.StatusConflict, "slot no longer available", "this time is no longer available, please pick another")
		default:
			h.Logger.Error("booking creation failed", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "failed to create booking", "")
		}
		return
	}

	c.JSON(http.StatusCreated, b)
}

// Confirm handles POST /api/bookings/:id/confirm.
func (h *BookingHandler) Confirm(c *gin.Context) {
	h.transition(c, h.Service.Confirm)
}

// Cancel handles POST /api/bookings/:id/cancel.
func (h *BookingHandler) Cancel(c *gin.Context) {
	h.transition(c, h.Service.Cancel)
}

// Get handles GET /api/bookings/:id.
func (h *BookingHandler) Get(c *gin.Context) {
	b, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "booking not found", "")
			return
		}
		h.Logger.Error("booking lookup failed", zap.String("id", c.Param("id")), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to load booking", "")
		return
	}
	c.JSON(http.StatusOK, b)
}

// List handles GET /api/bookings?date=YYYY-MM-DD.
func (h *BookingHandler) List(c *gin.Context) {
	date := c.Query("date")
	bookings, err := h.Service.ListByDate(c.Request.Context(), date)
	if err != nil {
		if errors.Is(err, booking.ErrInvalidBooking) {
			utils.JSONError(c, http.StatusBadRequest, "invalid query", err.Error())
			return
		}
		h.Logger.Error("booking list failed", zap.String("date", date), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to list bookings", "")
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "bookings": bookings})
}

// transition applies a status change (confirm or cancel) to the booking named
// in the path.
func (h *BookingHandler) transition(c *gin.Context, fn func(ctx context.Context, id string) (*models.Booking, error)) {
	id := c.Param("id")
	b, err := fn(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrNotFound):
			utils.JSONError(c, http.StatusNotFound, "booking not found", "")
		case errors.Is(err, booking.ErrInvalidBooking):
			utils.JSONError(c, http.StatusBadRequest, "invalid transition", err.Error())
		default:
			h.Logger.Error("booking transition failed", zap.String("id", id), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "failed to update booking", "")
		}
		return
	}
	c.JSON(http.StatusOK, b)
}
