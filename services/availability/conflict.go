package availability

import (
	"sort"

	"slotify/models"
)

// SubtractBookings removes the time consumed by existing non-cancelled
// bookings (expanded by bufferMin on each side) from the working intervals.
// The result is sorted, non-overlapping, with zero-length intervals dropped.
func SubtractBookings(intervals []models.Interval, bookings []models.Booking, bufferMin int) []models.Interval {
	free := make([]models.Interval, 0, len(intervals))
	for _, iv := range intervals {
		if !iv.Empty() {
			free = append(free, iv)
		}
	}

	for _, b := range bookings {
		if !b.OccupiesTime() {
			continue
		}
		busy := models.Interval{Start: b.Start - bufferMin, End: b.End + bufferMin}
		free = subtractInterval(free, busy)
	}

	sort.Slice(free, func(i, j int) bool { return free[i].Start < free[j].Start })
	return free
}

// subtractInterval removes busy from every interval in the list. A single
// subtraction yields zero, one or two pieces.
func subtractInterval(intervals []models.Interval, busy models.Interval) []models.Interval {
	if busy.Empty() {
		return intervals
	}
	out := make([]models.Interval, 0, len(intervals)+1)
	for _, iv := range intervals {
		if !iv.Overlaps(busy) {
			out = append(out, iv)
			continue
		}
		if left := (models.Interval{Start: iv.Start, End: busy.Start}); !left.Empty() {
			out = append(out, left)
		}
		if right := (models.Interval{Start: busy.End, End: iv.End}); !right.Empty() {
			out = append(out, right)
		}
	}
	return out
}

// MergeIntervals normalizes a set of raw windows into an ascending list of
// non-overlapping intervals, coalescing windows that touch or overlap.
func MergeIntervals(intervals []models.Interval) []models.Interval {
	clean := make([]models.Interval, 0, len(intervals))
	for _, iv := range intervals {
		if !iv.Empty() {
			clean = append(clean, iv)
		}
	}
	if len(clean) == 0 {
		return nil
	}
	sort.Slice(clean, func(i, j int) bool { return clean[i].Start < clean[j].Start })

	merged := []models.Interval{clean[0]}
	for _, iv := range clean[1:] {
		last := &merged[len(merged)-1]
		if iv.Start <= last.End {
			if iv.End > last.End {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}
