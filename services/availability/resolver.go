package availability

import (
	"context"
	"fmt"
	"time"

	"slotify/models"
)

// ResolveWorkingIntervals determines when an agent is nominally open on a
// date, before booking conflicts are subtracted. Precedence: a date override
// wins outright (possibly declaring the day closed), then a covering holiday
// closes the day, then the weekly recurring rules apply. An agent with no
// schedule configured simply yields no intervals; storage failures propagate
// so callers never mistake a broken store for an empty calendar.
func (e *DefaultAvailabilityEngine) ResolveWorkingIntervals(ctx context.Context, agentID, locationID, date string) ([]models.Interval, error) {
	day, err := time.ParseInLocation("2006-01-02", date, e.location())
	if err != nil {
		return nil, invalidf("bad date %q", date)
	}

	ov, err := e.Schedule.OverrideFor(ctx, agentID, date)
	if err != nil {
		return nil, fmt.Errorf("load override: %w", err)
	}
	if ov != nil {
		if ov.Closed {
			return nil, nil
		}
		return MergeIntervals(ov.Intervals), nil
	}

	holidays, err := e.Schedule.HolidaysCovering(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("load holidays: %w", err)
	}
	for _, h := range holidays {
		if h.Covers(date, locationID) {
			return nil, nil
		}
	}

	rules, err := e.Schedule.RulesForAgentWeekday(ctx, agentID, int(day.Weekday()))
	if err != nil {
		return nil, fmt.Errorf("load weekly rules: %w", err)
	}
	intervals := make([]models.Interval, 0, len(rules))
	for _, rule := range rules {
		intervals = append(intervals, models.Interval{Start: rule.Start, End: rule.End})
	}
	return MergeIntervals(intervals), nil
}
