package models

// ScheduleRule is a recurring weekly working window for an agent.
// An agent may have several non-overlapping windows on the same weekday
// (e.g. a morning/afternoon split).
type ScheduleRule struct {
	ID      string `bson:"id" json:"id"`
	AgentID string `bson:"agent_id" json:"agent_id"`
	Weekday int    `bson:"weekday" json:"weekday"` // 0 = Sunday ... 6 = Saturday
	Start   int    `bson:"start" json:"start"`     // minutes from midnight
	End     int    `bson:"end" json:"end"`
}

// ScheduleOverride replaces the weekly rules for one agent on one date.
// Closed (or an empty interval list) means the agent does not work that day,
// regardless of weekly rules or holidays.
type ScheduleOverride struct {
	ID        string     `bson:"id" json:"id"`
	AgentID   string     `bson:"agent_id" json:"agent_id"`
	Date      string     `bson:"date" json:"date"` // "2006-01-02"
	Intervals []Interval `bson:"intervals,omitempty" json:"intervals,omitempty"`
	Closed    bool       `bson:"closed" json:"closed"`
}
