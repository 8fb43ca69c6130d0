package availability

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"slotify/models"
)

func seedService(catalog *fakeCatalog, id string, durationMin int) *models.Service {
	svc := &models.Service{ID: id, Name: id, DurationMin: durationMin, Active: true}
	catalog.services[id] = svc
	return svc
}

func seedWeekday(schedule *fakeSchedule, agentID string, weekday, start, end int) {
	schedule.rules = append(schedule.rules, models.ScheduleRule{
		AgentID: agentID, Weekday: weekday, Start: start, End: end,
	})
}

func TestGetDaySlotsPipeline(t *testing.T) {
	engine, catalog, schedule, bookings, _ := newTestEngine()
	seedService(catalog, "cut", 60)
	seedWeekday(schedule, "a1", 1, 540, 780) // Monday 09:00 - 13:00
	bookings.items = []models.Booking{{
		ID: "b1", AgentID: "a1", Date: monday, Start: 600, End: 660,
		Status: models.BookingConfirmed,
	}}

	got, err := engine.GetDaySlots(context.Background(), models.DayQuery{
		ServiceID: "cut", AgentID: "a1", Date: monday,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Step 30, duration 60: the 10:00-11:00 booking removes every start that
	// would overlap it.
	want := []int{540, 660, 690, 720}
	if !reflect.DeepEqual(starts(got), want) {
		t.Errorf("slot starts = %v, want %v", starts(got), want)
	}
}

func TestGetDaySlotsValidation(t *testing.T) {
	engine, catalog, _, _, _ := newTestEngine()
	seedService(catalog, "cut", 60)

	cases := []models.DayQuery{
		{AgentID: "a1", Date: monday},                       // missing service
		{ServiceID: "cut", AgentID: "a1", Date: "bad-date"}, // malformed date
		{ServiceID: "nope", AgentID: "a1", Date: monday},    // unknown service
	}
	for _, q := range cases {
		if _, err := engine.GetDaySlots(context.Background(), q); !errors.Is(err, ErrInvalidRequest) {
			t.Errorf("query %+v: expected ErrInvalidRequest, got %v", q, err)
		}
	}
}

func TestGetDaySlotsInactiveService(t *testing.T) {
	engine, catalog, schedule, _, _ := newTestEngine()
	svc := seedService(catalog, "cut", 60)
	svc.Active = false
	seedWeekday(schedule, "a1", 1, 540, 780)

	got, err := engine.GetDaySlots(context.Background(), models.DayQuery{
		ServiceID: "cut", AgentID: "a1", Date: monday,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("inactive service should yield no slots, got %v", got)
	}
}

func TestGetDaySlotsAnyAgentUnion(t *testing.T) {
	engine, catalog, schedule, _, _ := newTestEngine()
	seedService(catalog, "cut", 60)
	catalog.agentsByService["cut"] = []models.Agent{
		{ID: "a1", Active: true},
		{ID: "a2", Active: true},
	}
	seedWeekday(schedule, "a1", 1, 540, 660)  // 09:00 - 11:00
	seedWeekday(schedule, "a2", 1, 600, 720)  // 10:00 - 12:00

	got, err := engine.GetDaySlots(context.Background(), models.DayQuery{
		ServiceID: "cut", AgentID: models.AnyAgent, Date: monday,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// a1 offers 09:00, 09:30, 10:00; a2 offers 10:00, 10:30, 11:00. The union
	// deduplicates the shared 10:00 start.
	want := []int{540, 570, 600, 630, 660}
	if !reflect.DeepEqual(starts(got), want) {
		t.Errorf("union starts = %v, want %v", starts(got), want)
	}
}

func TestGetDaySlotsTodayExcludesPast(t *testing.T) {
	engine, catalog, schedule, _, _ := newTestEngine()
	seedService(catalog, "cut", 30)
	seedWeekday(schedule, "a1", 1, 540, 720)
	// Clock set to 10:05 on the queried day.
	engine.Now = func() time.Time {
		return time.Date(2026, 3, 2, 10, 5, 0, 0, time.UTC)
	}

	got, err := engine.GetDaySlots(context.Background(), models.DayQuery{
		ServiceID: "cut", AgentID: "a1", Date: monday,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{630, 660, 690}
	if !reflect.DeepEqual(starts(got), want) {
		t.Errorf("slot starts = %v, want %v", starts(got), want)
	}
}

func TestGetDaySlotsReadThroughCache(t *testing.T) {
	engine, catalog, schedule, bookings, cache := newTestEngine()
	seedService(catalog, "cut", 60)
	seedWeekday(schedule, "a1", 1, 540, 780)

	q := models.DayQuery{ServiceID: "cut", AgentID: "a1", Date: monday}
	first, err := engine.GetDaySlots(context.Background(), q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bookings.activeCalls != 1 {
		t.Fatalf("expected 1 booking read on a cold cache, got %d", bookings.activeCalls)
	}

	second, err := engine.GetDaySlots(context.Background(), q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bookings.activeCalls != 1 {
		t.Errorf("expected the second query to hit the cache, got %d booking reads", bookings.activeCalls)
	}
	if !reflect.DeepEqual(starts(first), starts(second)) {
		t.Errorf("cached result %v differs from computed %v", starts(second), starts(first))
	}

	// Expire the entry; the next read recomputes.
	cache.NowFn = func() time.Time { return time.Now().Add(2 * time.Minute) }
	if _, err := engine.GetDaySlots(context.Background(), q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bookings.activeCalls != 2 {
		t.Errorf("expected a recompute after TTL expiry, got %d booking reads", bookings.activeCalls)
	}
}

func TestGetDaySlotsServiceStepOverride(t *testing.T) {
	engine, catalog, schedule, _, _ := newTestEngine()
	svc := seedService(catalog, "cut", 60)
	svc.StepMin = intPtr(60)
	seedWeekday(schedule, "a1", 1, 540, 780)

	got, err := engine.GetDaySlots(context.Background(), models.DayQuery{
		ServiceID: "cut", AgentID: "a1", Date: monday,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{540, 600, 660, 720}
	if !reflect.DeepEqual(starts(got), want) {
		t.Errorf("slot starts = %v, want %v", starts(got), want)
	}
}

func TestGetMonthSummary(t *testing.T) {
	engine, catalog, schedule, _, _ := newTestEngine()
	seedService(catalog, "cut", 60)
	seedWeekday(schedule, "a1", 1, 540, 660) // Mondays only

	got, err := engine.GetMonthSummary(context.Background(), models.MonthQuery{
		ServiceID: "cut", AgentID: "a1", Month: "2026-03",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 31 {
		t.Fatalf("expected 31 days for March, got %d", len(got))
	}

	byDate := make(map[string]models.DaySummary, len(got))
	for _, d := range got {
		byDate[d.Date] = d
	}
	if !byDate[monday].HasSlots || byDate[monday].Count != 3 {
		t.Errorf("Monday should have 3 slots, got %+v", byDate[monday])
	}
	if byDate["2026-03-03"].HasSlots {
		t.Errorf("Tuesday should be empty, got %+v", byDate["2026-03-03"])
	}
	for _, d := range got {
		if d.Slots != nil {
			t.Errorf("slots must be omitted unless with_slots is set, got %+v", d)
		}
	}
}

func TestGetMonthSummaryWithSlots(t *testing.T) {
	engine, catalog, schedule, _, _ := newTestEngine()
	seedService(catalog, "cut", 60)
	seedWeekday(schedule, "a1", 1, 540, 660)

	got, err := engine.GetMonthSummary(context.Background(), models.MonthQuery{
		ServiceID: "cut", AgentID: "a1", Month: "2026-03", WithSlots: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, d := range got {
		if d.Date == monday && len(d.Slots) != 3 {
			t.Errorf("expected Monday slots in the payload, got %+v", d)
		}
	}
}

func TestGetMonthSummaryDegradesFailedDay(t *testing.T) {
	engine, catalog, schedule, _, _ := newTestEngine()
	seedService(catalog, "cut", 60)
	seedWeekday(schedule, "a1", 1, 540, 660)
	schedule.failFor = "2026-03-10"

	got, err := engine.GetMonthSummary(context.Background(), models.MonthQuery{
		ServiceID: "cut", AgentID: "a1", Month: "2026-03",
	})
	if err != nil {
		t.Fatalf("one broken day must not fail the month: %v", err)
	}

	for _, d := range got {
		switch d.Date {
		case "2026-03-10":
			if !d.Unknown {
				t.Errorf("failed day should be marked unknown, got %+v", d)
			}
			if d.HasSlots || d.Count != 0 {
				t.Errorf("unknown day must not claim availability, got %+v", d)
			}
		case monday:
			if !d.HasSlots {
				t.Errorf("healthy days should still compute, got %+v", d)
			}
		}
	}
}

func TestGetMonthSummaryPopulatesDayCache(t *testing.T) {
	engine, catalog, schedule, bookings, _ := newTestEngine()
	seedService(catalog, "cut", 60)
	seedWeekday(schedule, "a1", 1, 540, 660)

	if _, err := engine.GetMonthSummary(context.Background(), models.MonthQuery{
		ServiceID: "cut", AgentID: "a1", Month: "2026-03",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	readsAfterMonth := bookings.activeCalls

	// A follow-up single-day query inside the month must be a cache hit.
	if _, err := engine.GetDaySlots(context.Background(), models.DayQuery{
		ServiceID: "cut", AgentID: "a1", Date: monday,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bookings.activeCalls != readsAfterMonth {
		t.Errorf("day query after a month scan should hit the cache, reads went %d -> %d",
			readsAfterMonth, bookings.activeCalls)
	}
}

func TestGetMonthSummaryValidation(t *testing.T) {
	engine, catalog, _, _, _ := newTestEngine()
	seedService(catalog, "cut", 60)

	cases := []models.MonthQuery{
		{AgentID: "a1", Month: "2026-03"},
		{ServiceID: "cut", Month: "March 2026"},
		{ServiceID: "nope", Month: "2026-03"},
	}
	for _, q := range cases {
		if _, err := engine.GetMonthSummary(context.Background(), q); !errors.Is(err, ErrInvalidRequest) {
			t.Errorf("query %+v: expected ErrInvalidRequest, got %v", q, err)
		}
	}
}
