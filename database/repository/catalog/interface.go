package catalogRepo

import (
	"context"

	"slotify/models"
)

// CatalogRepository manages agents, services and the agent-service links the
// availability engine reads.
type CatalogRepository interface {
	// Services.
	CreateService(ctx context.Context, svc *models.Service) error
	GetService(ctx context.Context, id string) (*models.Service, error)
	ListServices(ctx context.Context) ([]models.Service, error)
	UpdateService(ctx context.Context, svc *models.Service) error
	DeleteService(ctx context.Context, id string) error

	// Agents.
	CreateAgent(ctx context.Context, agent *models.Agent) error
	GetAgent(ctx context.Context, id string) (*models.Agent, error)
	ListAgents(ctx context.Context) ([]models.Agent, error)
	UpdateAgent(ctx context.Context, agent *models.Agent) error
	DeleteAgent(ctx context.Context, id string) error

	// Agent-service qualification links.
	LinkAgentService(ctx context.Context, agentID, serviceID string) error
	UnlinkAgentService(ctx context.Context, agentID, serviceID string) error
	// AgentsForService returns the active agents qualified for a service,
	// used by "any agent" availability and booking flows.
	AgentsForService(ctx context.Context, serviceID string) ([]models.Agent, error)
}
