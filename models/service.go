package models

import "time"

// Service represents a bookable service offering.
type Service struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	DurationMin int       `bson:"duration_min" json:"duration_min"` // appointment length in minutes
	Active      bool      `bson:"active" json:"active"`
	BufferMin   *int      `bson:"buffer_min,omitempty" json:"buffer_min,omitempty"`     // overrides the global buffer when set
	StepMin     *int      `bson:"step_min,omitempty" json:"step_min,omitempty"`         // overrides the global interval step when set
	LocationID  string    `bson:"location_id,omitempty" json:"location_id,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}
