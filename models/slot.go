package models

// Slot is an ephemeral bookable time range for one service/agent/date. Slots
// are recomputed per request and never persisted.
type Slot struct {
	Start int    `json:"start"` // minutes from midnight
	End   int    `json:"end"`
	Label string `json:"label"` // e.g. "09:00 - 09:30"
}

// NewSlot builds a slot with its display label.
func NewSlot(start, end int) Slot {
	return Slot{Start: start, End: end, Label: Clock(start) + " - " + Clock(end)}
}

// DaySummary is one day's entry in a month availability response.
type DaySummary struct {
	Date     string `json:"date"` // "2006-01-02"
	HasSlots bool   `json:"has_slots"`
	Count    int    `json:"count"`
	Slots    []Slot `json:"slots,omitempty"`
	// Unknown marks a day whose computation failed; it carries no
	// availability information rather than a falsely empty calendar.
	Unknown bool `json:"unknown,omitempty"`
}
