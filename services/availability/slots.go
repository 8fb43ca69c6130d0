package availability

import (
	"sort"

	"slotify/models"
)

// GenerateSlots discretizes free intervals into bookable slots. The cursor
// walks each interval in stepMin increments, emitting [t, t+durationMin)
// while it still fits; the step controls start-time granularity independently
// of how long the appointment occupies the calendar. When isToday is set,
// slots starting before nowMin are skipped entirely rather than emitted
// disabled.
func GenerateSlots(free []models.Interval, durationMin, stepMin, nowMin int, isToday bool) []models.Slot {
	if durationMin <= 0 || stepMin <= 0 {
		return nil
	}

	var slots []models.Slot
	seen := make(map[int]bool)
	for _, iv := range free {
		for t := iv.Start; t+durationMin <= iv.End; t += stepMin {
			if isToday && t < nowMin {
				continue
			}
			// The conflict filter guarantees non-overlapping inputs, so
			// duplicate start times indicate corrupted input; drop them.
			if seen[t] {
				continue
			}
			seen[t] = true
			slots = append(slots, models.NewSlot(t, t+durationMin))
		}
	}
	return slots
}

// UnionSlots merges per-agent slot lists for "any agent" queries: a start
// time is offered if at least one agent can serve it. Output is ascending
// and de-duplicated.
func UnionSlots(lists ...[]models.Slot) []models.Slot {
	byStart := make(map[int]models.Slot)
	for _, list := range lists {
		for _, s := range list {
			if _, ok := byStart[s.Start]; !ok {
				byStart[s.Start] = s
			}
		}
	}
	if len(byStart) == 0 {
		return nil
	}
	starts := make([]int, 0, len(byStart))
	for start := range byStart {
		starts = append(starts, start)
	}
	sort.Ints(starts)
	out := make([]models.Slot, 0, len(starts))
	for _, start := range starts {
		out = append(out, byStart[start])
	}
	return out
}
