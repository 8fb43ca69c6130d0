package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	catalogRepo "slotify/database/repository/catalog"
	"slotify/models"
	"slotify/utils"
)

// GetDaySlots computes the bookable slots for one day, read-through the
// availability cache.
func (e *DefaultAvailabilityEngine) GetDaySlots(ctx context.Context, q models.DayQuery) ([]models.Slot, error) {
	if q.ServiceID == "" {
		return nil, invalidf("service_id is required")
	}
	if _, err := time.Parse("2006-01-02", q.Date); err != nil {
		return nil, invalidf("bad date %q, want YYYY-MM-DD", q.Date)
	}

	svc, err := e.loadService(ctx, q.ServiceID)
	if err != nil {
		return nil, err
	}
	if !svc.Active {
		return nil, nil
	}

	step := e.stepFor(svc, 0)
	return e.daySlotsCached(ctx, svc, q.AgentID, q.LocationID, q.Date, step)
}

// GetMonthSummary fans out one day computation per calendar day, populating
// day-level cache entries as a side effect so a follow-up single-day query
// for the same month is a cache hit. Days are computed serially; only the
// final per-day result is contractual.
func (e *DefaultAvailabilityEngine) GetMonthSummary(ctx context.Context, q models.MonthQuery) ([]models.DaySummary, error) {
	if q.ServiceID == "" {
		return nil, invalidf("service_id is required")
	}
	first, err := time.ParseInLocation("2006-01", q.Month, e.location())
	if err != nil {
		return nil, invalidf("bad month %q, want YYYY-MM", q.Month)
	}

	svc, err := e.loadService(ctx, q.ServiceID)
	if err != nil {
		return nil, err
	}
	step := e.stepFor(svc, q.StepMin)

	monthKey := MonthKey(q.ServiceID, q.AgentID, q.LocationID, step, q.Month, q.WithSlots)
	if cached, ok := e.cacheGet(ctx, monthKey); ok {
		var summaries []models.DaySummary
		if err := json.Unmarshal(cached, &summaries); err == nil {
			return summaries, nil
		}
	}

	logger := utils.GetLogger()
	daysInMonth := first.AddDate(0, 1, -1).Day()
	summaries := make([]models.DaySummary, 0, daysInMonth)
	for dayNum := 1; dayNum <= daysInMonth; dayNum++ {
		date := time.Date(first.Year(), first.Month(), dayNum, 0, 0, 0, 0, e.location()).Format("2006-01-02")
		summary := models.DaySummary{Date: date}

		if !svc.Active {
			summaries = append(summaries, summary)
			continue
		}

		slots, err := e.daySlotsCached(ctx, svc, q.AgentID, q.LocationID, date, step)
		if err != nil {
			// One broken day must not fail the whole month; mark it
			// unknown so the client does not paint it as empty.
			logger.Warn("month fan-out: day computation failed",
				zap.String("date", date), zap.Error(err))
			summary.Unknown = true
			summaries = append(summaries, summary)
			continue
		}
		summary.HasSlots = len(slots) > 0
		summary.Count = len(slots)
		if q.WithSlots {
			summary.Slots = slots
		}
		summaries = append(summaries, summary)
	}

	e.cacheSet(ctx, monthKey, summaries, e.monthTTL())
	return summaries, nil
}

// daySlotsCached is the shared read-through path for day computations.
// Concurrent misses may recompute the same key; last writer wins, which is
// fine for an advisory cache.
func (e *DefaultAvailabilityEngine) daySlotsCached(ctx context.Context, svc *models.Service, agentID, locationID, date string, step int) ([]models.Slot, error) {
	key := DayKey(svc.ID, agentID, locationID, step, date)
	if cached, ok := e.cacheGet(ctx, key); ok {
		var slots []models.Slot
		if err := json.Unmarshal(cached, &slots); err == nil {
			return slots, nil
		}
	}

	slots, err := e.computeDaySlots(ctx, svc, agentID, locationID, date, step)
	if err != nil {
		return nil, err
	}
	e.cacheSet(ctx, key, slots, e.dayTTL())
	return slots, nil
}

// computeDaySlots is the uncached resolver -> conflict filter -> generator
// pipeline. For "any agent" requests the pipeline runs per qualified agent
// and the slot lists are unioned.
func (e *DefaultAvailabilityEngine) computeDaySlots(ctx context.Context, svc *models.Service, agentID, locationID, date string, step int) ([]models.Slot, error) {
	if agentID != models.AnyAgent {
		return e.agentDaySlots(ctx, svc, agentID, locationID, date, step)
	}

	agents, err := e.Catalog.AgentsForService(ctx, svc.ID)
	if err != nil {
		return nil, fmt.Errorf("load agents for service %s: %w", svc.ID, err)
	}
	lists := make([][]models.Slot, 0, len(agents))
	for _, agent := range agents {
		slots, err := e.agentDaySlots(ctx, svc, agent.ID, locationID, date, step)
		if err != nil {
			return nil, err
		}
		lists = append(lists, slots)
	}
	return UnionSlots(lists...), nil
}

func (e *DefaultAvailabilityEngine) agentDaySlots(ctx context.Context, svc *models.Service, agentID, locationID, date string, step int) ([]models.Slot, error) {
	working, err := e.ResolveWorkingIntervals(ctx, agentID, locationID, date)
	if err != nil {
		return nil, err
	}
	if len(working) == 0 {
		return nil, nil
	}

	bookings, err := e.Bookings.ActiveByAgentDate(ctx, agentID, date)
	if err != nil {
		return nil, fmt.Errorf("load bookings for agent %s on %s: %w", agentID, date, err)
	}
	free := SubtractBookings(working, bookings, e.bufferFor(svc))

	now := e.now().In(e.location())
	isToday := now.Format("2006-01-02") == date
	nowMin := now.Hour()*60 + now.Minute()
	return GenerateSlots(free, svc.DurationMin, step, nowMin, isToday), nil
}

func (e *DefaultAvailabilityEngine) loadService(ctx context.Context, serviceID string) (*models.Service, error) {
	svc, err := e.Catalog.GetService(ctx, serviceID)
	if errors.Is(err, catalogRepo.ErrNotFound) {
		return nil, invalidf("unknown service %q", serviceID)
	}
	if err != nil {
		return nil, fmt.Errorf("load service %s: %w", serviceID, err)
	}
	return svc, nil
}

// cacheGet reads the advisory cache; failures are logged and treated as a
// miss so a broken cache never breaks availability reads.
func (e *DefaultAvailabilityEngine) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	if e.Cache == nil {
		return nil, false
	}
	val, ok, err := e.Cache.Get(ctx, key)
	if err != nil {
		utils.GetLogger().Warn("availability cache get failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return val, ok
}

func (e *DefaultAvailabilityEngine) cacheSet(ctx context.Context, key string, val any, ttl time.Duration) {
	if e.Cache == nil || ttl <= 0 {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	if err := e.Cache.Set(ctx, key, data, ttl); err != nil {
		utils.GetLogger().Warn("availability cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (e *DefaultAvailabilityEngine) dayTTL() time.Duration {
	if e.Config.DayTTL > 0 {
		return e.Config.DayTTL
	}
	return 60 * time.Second
}

func (e *DefaultAvailabilityEngine) monthTTL() time.Duration {
	if e.Config.MonthTTL > 0 {
		return e.Config.MonthTTL
	}
	return 300 * time.Second
}
