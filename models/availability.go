package models

import "time"

// AvailabilityConfig is an immutable snapshot of the engine's tuning knobs.
// It is passed into every engine call so computations stay pure functions of
// their inputs.
type AvailabilityConfig struct {
	StepMin   int            // slot start-time granularity, minutes
	BufferMin int            // minimum gap around existing bookings, minutes
	DayTTL    time.Duration  // cache TTL for day queries
	MonthTTL  time.Duration  // cache TTL for month queries
	Location  *time.Location // wall-clock timezone for "today" handling
}

// DayQuery asks for the bookable slots of a single day.
type DayQuery struct {
	ServiceID  string `form:"service_id" json:"service_id"`
	AgentID    string `form:"agent_id" json:"agent_id"` // empty = any qualified agent
	LocationID string `form:"location_id" json:"location_id"`
	Date       string `form:"date" json:"date"` // "2006-01-02"
}

// MonthQuery asks for a per-day availability summary of a calendar month.
type MonthQuery struct {
	ServiceID  string `form:"service_id" json:"service_id"`
	AgentID    string `form:"agent_id" json:"agent_id"`
	LocationID string `form:"location_id" json:"location_id"`
	StepMin    int    `form:"interval_step" json:"interval_step"` // 0 = configured default
	Month      string `form:"month" json:"month"`                 // "2006-01"
	WithSlots  bool   `form:"with_slots" json:"with_slots"`
}

// BookingRequest is the payload for creating a booking.
type BookingRequest struct {
	ServiceID  string   `json:"service_id" binding:"required"`
	AgentID    string   `json:"agent_id"` // empty = any qualified agent
	LocationID string   `json:"location_id"`
	Date       string   `json:"date" binding:"required"` // "2006-01-02"
	Start      int      `json:"start"`                   // minutes from midnight
	Customer   Customer `json:"customer" binding:"required"`
	Notes      string   `json:"notes"`
	PayInCash  bool     `json:"pay_in_cash"` // skips the payment gate; booking starts as pending
}
