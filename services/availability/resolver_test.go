package availability

import (
	"context"
	"reflect"
	"testing"

	"slotify/models"
)

// 2026-03-02 is a Monday.
const monday = "2026-03-02"

func TestResolveWorkingIntervalsWeeklyRules(t *testing.T) {
	engine, _, schedule, _, _ := newTestEngine()
	schedule.rules = []models.ScheduleRule{
		{AgentID: "a1", Weekday: 1, Start: 780, End: 1020},
		{AgentID: "a1", Weekday: 1, Start: 540, End: 720},
		{AgentID: "a1", Weekday: 2, Start: 540, End: 720}, // other weekday, ignored
		{AgentID: "a2", Weekday: 1, Start: 540, End: 720}, // other agent, ignored
	}

	got, err := engine.ResolveWorkingIntervals(context.Background(), "a1", "", monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []models.Interval{iv(540, 720), iv(780, 1020)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ResolveWorkingIntervals() = %v, want %v", got, want)
	}
}

func TestResolveWorkingIntervalsNoSchedule(t *testing.T) {
	engine, _, _, _, _ := newTestEngine()

	got, err := engine.ResolveWorkingIntervals(context.Background(), "a1", "", monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no intervals for an unscheduled agent, got %v", got)
	}
}

func TestResolveWorkingIntervalsOverrideWins(t *testing.T) {
	engine, _, schedule, _, _ := newTestEngine()
	schedule.rules = []models.ScheduleRule{
		{AgentID: "a1", Weekday: 1, Start: 540, End: 1020},
	}
	schedule.overrides[overrideKey("a1", monday)] = &models.ScheduleOverride{
		AgentID:   "a1",
		Date:      monday,
		Intervals: []models.Interval{iv(600, 660)},
	}

	got, err := engine.ResolveWorkingIntervals(context.Background(), "a1", "", monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []models.Interval{iv(600, 660)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("override should replace weekly rules, got %v, want %v", got, want)
	}
}

func TestResolveWorkingIntervalsClosedOverride(t *testing.T) {
	engine, _, schedule, _, _ := newTestEngine()
	schedule.rules = []models.ScheduleRule{
		{AgentID: "a1", Weekday: 1, Start: 540, End: 1020},
	}
	schedule.overrides[overrideKey("a1", monday)] = &models.ScheduleOverride{
		AgentID: "a1",
		Date:    monday,
		Closed:  true,
	}

	got, err := engine.ResolveWorkingIntervals(context.Background(), "a1", "", monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("closed override should yield no intervals, got %v", got)
	}
}

func TestResolveWorkingIntervalsHoliday(t *testing.T) {
	engine, _, schedule, _, _ := newTestEngine()
	schedule.rules = []models.ScheduleRule{
		{AgentID: "a1", Weekday: 1, Start: 540, End: 1020},
	}
	schedule.holidays = []models.Holiday{{ID: "h1", Date: monday}}

	got, err := engine.ResolveWorkingIntervals(context.Background(), "a1", "", monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("holiday should close the day, got %v", got)
	}
}

func TestResolveWorkingIntervalsHolidayOtherLocation(t *testing.T) {
	engine, _, schedule, _, _ := newTestEngine()
	schedule.rules = []models.ScheduleRule{
		{AgentID: "a1", Weekday: 1, Start: 540, End: 720},
	}
	schedule.holidays = []models.Holiday{{ID: "h1", Date: monday, LocationID: "loc-north"}}

	got, err := engine.ResolveWorkingIntervals(context.Background(), "a1", "loc-south", monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []models.Interval{iv(540, 720)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("holiday scoped to another location should not apply, got %v, want %v", got, want)
	}
}

func TestResolveWorkingIntervalsOverrideBeatsHoliday(t *testing.T) {
	engine, _, schedule, _, _ := newTestEngine()
	schedule.holidays = []models.Holiday{{ID: "h1", Date: monday}}
	schedule.overrides[overrideKey("a1", monday)] = &models.ScheduleOverride{
		AgentID:   "a1",
		Date:      monday,
		Intervals: []models.Interval{iv(540, 720)},
	}

	got, err := engine.ResolveWorkingIntervals(context.Background(), "a1", "", monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []models.Interval{iv(540, 720)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("override should open the day despite a holiday, got %v, want %v", got, want)
	}
}

func TestResolveWorkingIntervalsStoreFailure(t *testing.T) {
	engine, _, schedule, _, _ := newTestEngine()
	schedule.failFor = monday

	if _, err := engine.ResolveWorkingIntervals(context.Background(), "a1", "", monday); err == nil {
		t.Errorf("a broken store must surface as an error, not an empty calendar")
	}
}

func TestResolveWorkingIntervalsBadDate(t *testing.T) {
	engine, _, _, _, _ := newTestEngine()

	if _, err := engine.ResolveWorkingIntervals(context.Background(), "a1", "", "03/02/2026"); err == nil {
		t.Errorf("expected an error for a malformed date")
	}
}
