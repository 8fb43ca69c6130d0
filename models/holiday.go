package models

// Holiday closes all agents on a date (or inclusive date range) unless a
// ScheduleOverride explicitly opens an agent that day. LocationID scopes the
// holiday to one location; empty means global.
type Holiday struct {
	ID         string `bson:"id" json:"id"`
	Name       string `bson:"name,omitempty" json:"name,omitempty"`
	Date       string `bson:"date" json:"date"`                               // "2006-01-02"
	EndDate    string `bson:"end_date,omitempty" json:"end_date,omitempty"`   // inclusive; empty for a single day
	LocationID string `bson:"location_id,omitempty" json:"location_id,omitempty"`
}

// Covers reports whether the holiday applies to the given date and location.
func (h Holiday) Covers(date, locationID string) bool {
	if h.LocationID != "" && h.LocationID != locationID {
		return false
	}
	if h.EndDate == "" {
		return h.Date == date
	}
	return h.Date <= date && date <= h.EndDate
}
