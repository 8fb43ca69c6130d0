package scheduleRepo

import (
	"context"

	"slotify/models"
)

// ScheduleRepository provides the working-time data the availability engine
// resolves against: weekly rules, date overrides and the holiday calendar.
type ScheduleRepository interface {
	// Weekly rules.
	CreateRule(ctx context.Context, rule *models.ScheduleRule) error
	DeleteRule(ctx context.Context, id string) error
	RulesForAgent(ctx context.Context, agentID string) ([]models.ScheduleRule, error)
	// RulesForAgentWeekday returns the recurring windows for one weekday,
	// unordered; the resolver normalizes and merges them.
	RulesForAgentWeekday(ctx context.Context, agentID string, weekday int) ([]models.ScheduleRule, error)

	// Date overrides.
	UpsertOverride(ctx context.Context, ov *models.ScheduleOverride) error
	DeleteOverride(ctx context.Context, id string) error
	// OverrideFor returns the override for (agent, date), or nil when none
	// exists.
	OverrideFor(ctx context.Context, agentID, date string) (*models.ScheduleOverride, error)

	// Holidays.
	CreateHoliday(ctx context.Context, h *models.Holiday) error
	DeleteHoliday(ctx context.Context, id string) error
	ListHolidays(ctx context.Context) ([]models.Holiday, error)
	// HolidaysCovering returns the holidays whose date (or range) includes
	// the given date, before location scoping.
	HolidaysCovering(ctx context.Context, date string) ([]models.Holiday, error)
}
