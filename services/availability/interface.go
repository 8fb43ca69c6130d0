package availability

import (
	"context"
	"time"

	bookingRepo "slotify/database/repository/booking"
	catalogRepo "slotify/database/repository/catalog"
	scheduleRepo "slotify/database/repository/schedule"
	"slotify/models"
)

// AvailabilityService computes bookable slots. Reads flow schedule resolver
// -> conflict filter -> slot generator -> cache; zero slots is a successful
// result.
type AvailabilityService interface {
	// GetDaySlots returns the ordered bookable slots for one day. An empty
	// AgentID means "any qualified agent": a slot is offered if at least
	// one qualified agent can serve it.
	GetDaySlots(ctx context.Context, q models.DayQuery) ([]models.Slot, error)
	// GetMonthSummary returns a per-day availability summary for painting
	// calendar indicators. A day whose computation fails degrades to
	// Unknown instead of failing the whole month.
	GetMonthSummary(ctx context.Context, q models.MonthQuery) ([]models.DaySummary, error)
}

// DefaultAvailabilityEngine is the production implementation.
type DefaultAvailabilityEngine struct {
	Catalog  catalogRepo.CatalogRepository
	Schedule scheduleRepo.ScheduleRepository
	Bookings bookingRepo.BookingRepository
	Cache    CacheStore
	Config   models.AvailabilityConfig
	// Now is overridable for tests; nil means time.Now.
	Now func() time.Time
}

func (e *DefaultAvailabilityEngine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *DefaultAvailabilityEngine) location() *time.Location {
	if e.Config.Location != nil {
		return e.Config.Location
	}
	return time.Local
}

// stepFor resolves the slot step: explicit request value, then per-service
// override, then the configured default.
func (e *DefaultAvailabilityEngine) stepFor(svc *models.Service, requested int) int {
	if requested > 0 {
		return requested
	}
	if svc.StepMin != nil && *svc.StepMin > 0 {
		return *svc.StepMin
	}
	if e.Config.StepMin > 0 {
		return e.Config.StepMin
	}
	return 15
}

// bufferFor resolves the booking buffer: per-service override, then the
// configured default.
func (e *DefaultAvailabilityEngine) bufferFor(svc *models.Service) int {
	if svc.BufferMin != nil && *svc.BufferMin >= 0 {
		return *svc.BufferMin
	}
	return e.Config.BufferMin
}
