package availability

import (
	"context"
	"fmt"
	"sync"
	"time"

	catalogRepo "slotify/database/repository/catalog"
	"slotify/models"
)

// In-memory repository fakes shared by the engine and resolver tests.

type fakeCatalog struct {
	services        map[string]*models.Service
	agentsByService map[string][]models.Agent
	getServiceCalls int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		services:        make(map[string]*models.Service),
		agentsByService: make(map[string][]models.Agent),
	}
}

func (f *fakeCatalog) CreateService(_ context.Context, svc *models.Service) error {
	f.services[svc.ID] = svc
	return nil
}

func (f *fakeCatalog) GetService(_ context.Context, id string) (*models.Service, error) {
	f.getServiceCalls++
	svc, ok := f.services[id]
	if !ok {
		return nil, catalogRepo.ErrNotFound
	}
	return svc, nil
}

func (f *fakeCatalog) ListServices(_ context.Context) ([]models.Service, error) {
	out := make([]models.Service, 0, len(f.services))
	for _, svc := range f.services {
		out = append(out, *svc)
	}
	return out, nil
}

func (f *fakeCatalog) UpdateService(_ context.Context, svc *models.Service) error {
	f.services[svc.ID] = svc
	return nil
}

func (f *fakeCatalog) DeleteService(_ context.Context, id string) error {
	delete(f.services, id)
	return nil
}

func (f *fakeCatalog) CreateAgent(_ context.Context, _ *models.Agent) error  { return nil }
func (f *fakeCatalog) GetAgent(_ context.Context, _ string) (*models.Agent, error) {
	return nil, catalogRepo.ErrNotFound
}
func (f *fakeCatalog) ListAgents(_ context.Context) ([]models.Agent, error) { return nil, nil }
func (f *fakeCatalog) UpdateAgent(_ context.Context, _ *models.Agent) error { return nil }
func (f *fakeCatalog) DeleteAgent(_ context.Context, _ string) error        { return nil }
func (f *fakeCatalog) LinkAgentService(_ context.Context, _, _ string) error {
	return nil
}
func (f *fakeCatalog) UnlinkAgentService(_ context.Context, _, _ string) error {
	return nil
}

func (f *fakeCatalog) AgentsForService(_ context.Context, serviceID string) ([]models.Agent, error) {
	return f.agentsByService[serviceID], nil
}

type fakeSchedule struct {
	rules     []models.ScheduleRule
	overrides map[string]*models.ScheduleOverride
	holidays  []models.Holiday
	// failFor makes reads for one date error, simulating a broken store.
	failFor string
}

func newFakeSchedule() *fakeSchedule {
	return &fakeSchedule{overrides: make(map[string]*models.ScheduleOverride)}
}

func overrideKey(agentID, date string) string { return agentID + "|" + date }

func (f *fakeSchedule) CreateRule(_ context.Context, rule *models.ScheduleRule) error {
	f.rules = append(f.rules, *rule)
	return nil
}

func (f *fakeSchedule) DeleteRule(_ context.Context, _ string) error { return nil }

func (f *fakeSchedule) RulesForAgent(_ context.Context, agentID string) ([]models.ScheduleRule, error) {
	var out []models.ScheduleRule
	for _, r := range f.rules {
		if r.AgentID == agentID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeSchedule) RulesForAgentWeekday(_ context.Context, agentID string, weekday int) ([]models.ScheduleRule, error) {
	var out []models.ScheduleRule
	for _, r := range f.rules {
		if r.AgentID == agentID && r.Weekday == weekday {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeSchedule) UpsertOverride(_ context.Context, ov *models.ScheduleOverride) error {
	f.overrides[overrideKey(ov.AgentID, ov.Date)] = ov
	return nil
}

func (f *fakeSchedule) DeleteOverride(_ context.Context, _ string) error { return nil }

func (f *fakeSchedule) OverrideFor(_ context.Context, agentID, date string) (*models.ScheduleOverride, error) {
	if f.failFor != "" && f.failFor == date {
		return nil, fmt.Errorf("schedule store down")
	}
	return f.overrides[overrideKey(agentID, date)], nil
}

func (f *fakeSchedule) CreateHoliday(_ context.Context, h *models.Holiday) error {
	f.holidays = append(f.holidays, *h)
	return nil
}

func (f *fakeSchedule) DeleteHoliday(_ context.Context, _ string) error { return nil }

func (f *fakeSchedule) ListHolidays(_ context.Context) ([]models.Holiday, error) {
	return f.holidays, nil
}

func (f *fakeSchedule) HolidaysCovering(_ context.Context, date string) ([]models.Holiday, error) {
	var out []models.Holiday
	for _, h := range f.holidays {
		switch {
		case h.EndDate == "" && h.Date == date:
			out = append(out, h)
		case h.EndDate != "" && h.Date <= date && date <= h.EndDate:
			out = append(out, h)
		}
	}
	return out, nil
}

type fakeBookings struct {
	mu          sync.Mutex
	items       []models.Booking
	activeCalls int
}

func (f *fakeBookings) CreateIfFree(_ context.Context, b *models.Booking, _ int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, *b)
	return nil
}

func (f *fakeBookings) GetByID(_ context.Context, id string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id {
			b := f.items[i]
			return &b, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (f *fakeBookings) ActiveByAgentDate(_ context.Context, agentID, date string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.activeCalls++
	var out []models.Booking
	for _, b := range f.items {
		if b.AgentID == agentID && b.Date == date && b.OccupiesTime() {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookings) ListByDate(_ context.Context, date string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.items {
		if b.Date == date {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookings) UpdateStatus(_ context.Context, id, status, paymentStatus string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Status = status
			f.items[i].PaymentStatus = paymentStatus
			return nil
		}
	}
	return fmt.Errorf("not found")
}

func (f *fakeBookings) StalePendingPayment(_ context.Context, cutoff time.Time) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.items {
		if b.Status == models.BookingPendingPayment && b.CreatedAt.Before(cutoff) {
			out = append(out, b)
		}
	}
	return out, nil
}

func intPtr(v int) *int { return &v }

// newTestEngine wires an engine over fresh fakes with a memory cache and a
// fixed clock well before any test date.
func newTestEngine() (*DefaultAvailabilityEngine, *fakeCatalog, *fakeSchedule, *fakeBookings, *MemoryCacheStore) {
	catalog := newFakeCatalog()
	schedule := newFakeSchedule()
	bookings := &fakeBookings{}
	cache := NewMemoryCacheStore()
	engine := &DefaultAvailabilityEngine{
		Catalog:  catalog,
		Schedule: schedule,
		Bookings: bookings,
		Cache:    cache,
		Config: models.AvailabilityConfig{
			StepMin:   30,
			BufferMin: 0,
			DayTTL:    time.Minute,
			MonthTTL:  5 * time.Minute,
			Location:  time.UTC,
		},
		Now: func() time.Time {
			return time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
		},
	}
	return engine, catalog, schedule, bookings, cache
}
