package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingRepo "slotify/database/repository/booking"
	catalogRepo "slotify/database/repository/catalog"
	"slotify/models"
	"slotify/utils"
)

// Create reserves a slot. The flow is: validate the request, re-resolve the
// agent's working intervals (the slot must still lie inside one), then insert
// through the repository's transactional conflict check. Cached availability
// is deliberately ignored here; stale slots surface as ErrSlotConflict.
// Successful creation does not invalidate the availability cache: entries
// expire within one short TTL window, so other clients may see the taken slot
// for at most that long.
func (s *DefaultBookingService) Create(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	logger := utils.GetLogger()

	if req.ServiceID == "" {
		return nil, invalidf("service_id is required")
	}
	day, err := time.ParseInLocation("2006-01-02", req.Date, s.location())
	if err != nil {
		return nil, invalidf("bad date %q, want YYYY-MM-DD", req.Date)
	}
	if req.Start < 0 || req.Start >= 24*60 {
		return nil, invalidf("start must be minutes from midnight in [0, 1440)")
	}
	if req.Customer.Name == "" || req.Customer.Email == "" {
		return nil, invalidf("customer name and email are required")
	}

	svc, err := s.Catalog.GetService(ctx, req.ServiceID)
	if errors.Is(err, catalogRepo.ErrNotFound) {
		return nil, invalidf("unknown service %q", req.ServiceID)
	}
	if err != nil {
		return nil, fmt.Errorf("load service %s: %w", req.ServiceID, err)
	}
	if !svc.Active {
		return nil, invalidf("service %q is not bookable", req.ServiceID)
	}

	end := req.Start + svc.DurationMin
	startAt := day.Add(time.Duration(req.Start) * time.Minute)
	if startAt.Before(s.now().In(s.location())) {
		return nil, invalidf("cannot book a time in the past")
	}

	candidates, err := s.candidateAgents(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, ErrSlotConflict
	}

	status := models.BookingPendingPayment
	if req.PayInCash {
		status = models.BookingPending
	}
	buffer := s.bufferFor(svc)

	// Try each candidate agent; each attempt is individually atomic, so two
	// racing "any agent" submissions can land on different agents, and for
	// the identical slot on one agent exactly one submission wins.
	for _, agentID := range candidates {
		ok, err := s.slotWithinWorkingHours(ctx, agentID, req.LocationID, req.Date, req.Start, end)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		b := &models.Booking{
			ID:            uuid.New().String(),
			ServiceID:     svc.ID,
			AgentID:       agentID,
			LocationID:    req.LocationID,
			Customer:      req.Customer,
			Date:          req.Date,
			Start:         req.Start,
			End:           end,
			Status:        status,
			PaymentStatus: models.PaymentUnpaid,
			Notes:         req.Notes,
		}
		err = s.Bookings.CreateIfFree(ctx, b, buffer)
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("create booking: %w", err)
		}

		logger.Info("booking created",
			zap.String("bookingID", b.ID),
			zap.String("agentID", b.AgentID),
			zap.String("date", b.Date),
			zap.Int("start", b.Start),
			zap.String("status", b.Status))
		return b, nil
	}

	return nil, ErrSlotConflict
}

// Confirm marks a booking confirmed and paid (payment success, or free/cash
// acceptance) and schedules its reminder.
func (s *DefaultBookingService) Confirm(ctx context.Context, id string) (*models.Booking, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status == models.BookingCancelled {
		return nil, invalidf("booking %s is cancelled", id)
	}

	if err := s.Bookings.UpdateStatus(ctx, id, models.BookingConfirmed, models.PaymentPaid); err != nil {
		return nil, fmt.Errorf("confirm booking %s: %w", id, err)
	}
	b.Status = models.BookingConfirmed
	b.PaymentStatus = models.PaymentPaid

	if s.Reminders != nil {
		if err := s.Reminders.ScheduleReminder(ctx, b); err != nil {
			// Reminders are best-effort; the confirmation stands.
			utils.GetLogger().Warn("failed to schedule reminder",
				zap.String("bookingID", id), zap.Error(err))
		}
	}
	return b, nil
}

// Cancel releases a booking's time. The freed interval becomes visible to
// availability reads once the relevant cache entries expire.
func (s *DefaultBookingService) Cancel(ctx context.Context, id string) (*models.Booking, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status == models.BookingCancelled {
		return b, nil
	}

	if err := s.Bookings.UpdateStatus(ctx, id, models.BookingCancelled, b.PaymentStatus); err != nil {
		return nil, fmt.Errorf("cancel booking %s: %w", id, err)
	}
	b.Status = models.BookingCancelled
	return b, nil
}

func (s *DefaultBookingService) Get(ctx context.Context, id string) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(ctx, id)
	if errors.Is(err, bookingRepo.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load booking %s: %w", id, err)
	}
	return b, nil
}

func (s *DefaultBookingService) ListByDate(ctx context.Context, date string) ([]models.Booking, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, invalidf("bad date %q, want YYYY-MM-DD", date)
	}
	return s.Bookings.ListByDate(ctx, date)
}

// candidateAgents returns the agents to attempt, in order: the explicitly
// requested one, or every active agent qualified for the service.
func (s *DefaultBookingService) candidateAgents(ctx context.Context, req models.BookingRequest) ([]string, error) {
	if req.AgentID != models.AnyAgent {
		return []string{req.AgentID}, nil
	}
	agents, err := s.Catalog.AgentsForService(ctx, req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("load agents for service %s: %w", req.ServiceID, err)
	}
	ids := make([]string, 0, len(agents))
	for _, a := range agents {
		ids = append(ids, a.ID)
	}
	return ids, nil
}

// slotWithinWorkingHours re-resolves the agent's schedule and checks that the
// requested interval lies entirely inside one working interval.
func (s *DefaultBookingService) slotWithinWorkingHours(ctx context.Context, agentID, locationID, date string, start, end int) (bool, error) {
	working, err := s.Engine.ResolveWorkingIntervals(ctx, agentID, locationID, date)
	if err != nil {
		return false, fmt.Errorf("resolve working intervals: %w", err)
	}
	for _, iv := range working {
		if start >= iv.Start && end <= iv.End {
			return true, nil
		}
	}
	return false, nil
}
