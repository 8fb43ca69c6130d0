package booking

import (
	"errors"
	"fmt"
)

// ErrSlotConflict means the requested time is no longer available: either a
// racing booking won the slot, or the interval does not lie inside the
// agent's working hours anymore. The caller should re-query availability and
// offer a fresh slot list.
var ErrSlotConflict = errors.New("slot is no longer available")

// ErrInvalidBooking marks malformed booking submissions.
var ErrInvalidBooking = errors.New("invalid booking request")

// ErrNotFound means the referenced booking does not exist.
var ErrNotFound = errors.New("booking not found")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidBooking, fmt.Sprintf(format, args...))
}
