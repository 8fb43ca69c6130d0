package models

import "fmt"

// Interval is a half-open [Start, End) time range in minutes from midnight.
type Interval struct {
	Start int `bson:"start" json:"start"`
	End   int `bson:"end" json:"end"`
}

// Overlaps reports whether two half-open intervals share any time.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && other.Start < iv.End
}

// Empty reports whether the interval covers no time.
func (iv Interval) Empty() bool {
	return iv.End <= iv.Start
}

// Clock renders minutes from midnight as "HH:MM" (e.g. 540 -> "09:00").
func Clock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
