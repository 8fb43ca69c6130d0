package booking

import (
	"context"
	"time"

	bookingRepo "slotify/database/repository/booking"
	catalogRepo "slotify/database/repository/catalog"
	"slotify/models"
	"slotify/services/availability"
)

// BookingService owns the booking lifecycle. Creation re-validates
// availability against live rows inside a transaction; the availability
// cache is never consulted on this path.
type BookingService interface {
	Create(ctx context.Context, req models.BookingRequest) (*models.Booking, error)
	Confirm(ctx context.Context, id string) (*models.Booking, error)
	Cancel(ctx context.Context, id string) (*models.Booking, error)
	Get(ctx context.Context, id string) (*models.Booking, error)
	ListByDate(ctx context.Context, date string) ([]models.Booking, error)
}

// ReminderScheduler enqueues a reminder for a confirmed booking. The cron
// package provides the asynq-backed implementation.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, b *models.Booking) error
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Catalog   catalogRepo.CatalogRepository
	Bookings  bookingRepo.BookingRepository
	Engine    *availability.DefaultAvailabilityEngine
	Reminders ReminderScheduler
	Config    models.AvailabilityConfig
	// Now is overridable for tests; nil means time.Now.
	Now func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultBookingService) location() *time.Location {
	if s.Config.Location != nil {
		return s.Config.Location
	}
	return time.Local
}

func (s *DefaultBookingService) bufferFor(svc *models.Service) int {
	if svc.BufferMin != nil && *svc.BufferMin >= 0 {
		return *svc.BufferMin
	}
	return s.Config.BufferMin
}
