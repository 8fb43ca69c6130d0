package bookingRepo

import (
	"context"
	"errors"
	"time"

	"slotify/models"
)

// ErrSlotTaken is returned by CreateIfFree when the requested interval
// overlaps an existing non-cancelled booking at write time.
var ErrSlotTaken = errors.New("booking: slot already taken")

// ErrNotFound is returned when a booking does not exist.
var ErrNotFound = errors.New("booking: not found")

// BookingRepository owns the booking table: the single source of truth for
// occupied time.
type BookingRepository interface {
	// CreateIfFree atomically re-checks the no-overlap invariant against
	// live booking rows and inserts the booking only if the (buffered)
	// interval is still free for its agent and date. Returns ErrSlotTaken
	// on conflict. The availability cache is never consulted here.
	CreateIfFree(ctx context.Context, b *models.Booking, bufferMin int) error

	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// ActiveByAgentDate returns the non-cancelled bookings for one agent
	// and date, sorted by start time.
	ActiveByAgentDate(ctx context.Context, agentID, date string) ([]models.Booking, error)
	ListByDate(ctx context.Context, date string) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, id, status, paymentStatus string) error
	// StalePendingPayment returns pending_payment bookings created before
	// the cutoff, for the cleanup sweep.
	StalePendingPayment(ctx context.Context, cutoff time.Time) ([]models.Booking, error)
}
