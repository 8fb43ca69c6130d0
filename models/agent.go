package models

import "time"

// Agent represents a bookable staff member.
type Agent struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email,omitempty" json:"email,omitempty"`
	Active    bool      `bson:"active" json:"active"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// AgentService links an agent to a service they are qualified to perform.
type AgentService struct {
	AgentID   string `bson:"agent_id" json:"agent_id"`
	ServiceID string `bson:"service_id" json:"service_id"`
}

// AnyAgent is the sentinel agent id meaning "any qualified agent".
const AnyAgent = ""
