package catalogRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"slotify/database"
	"slotify/models"
)

// ErrNotFound is returned when a catalog entity does not exist.
var ErrNotFound = errors.New("catalog: not found")

// MongoCatalogRepo is the MongoDB implementation of CatalogRepository.
type MongoCatalogRepo struct {
	serviceColl *mongo.Collection
	agentColl   *mongo.Collection
	linkColl    *mongo.Collection
}

// NewMongoCatalogRepo builds a repo bound to the application database.
func NewMongoCatalogRepo() *MongoCatalogRepo {
	db := database.DB()
	return &MongoCatalogRepo{
		serviceColl: db.Collection("services"),
		agentColl:   db.Collection("agents"),
		linkColl:    db.Collection("agent_services"),
	}
}

func (r *MongoCatalogRepo) CreateService(ctx context.Context, svc *models.Service) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if svc.CreatedAt.IsZero() {
		svc.CreatedAt = time.Now()
	}
	if _, err := r.serviceColl.InsertOne(ctx, svc); err != nil {
		return fmt.Errorf("insert service: %w", err)
	}
	return nil
}

func (r *MongoCatalogRepo) GetService(ctx context.Context, id string) (*models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var svc models.Service
	err := r.serviceColl.FindOne(ctx, bson.M{"id": id}).Decode(&svc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find service %s: %w", id, err)
	}
	return &svc, nil
}

func (r *MongoCatalogRepo) ListServices(ctx context.Context) ([]models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	cursor, err := r.serviceColl.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer cursor.Close(ctx)
	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("decode services: %w", err)
	}
	return services, nil
}

func (r *MongoCatalogRepo) UpdateService(ctx context.Context, svc *models.Service) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	res, err := r.serviceColl.ReplaceOne(ctx, bson.M{"id": svc.ID}, svc)
	if err != nil {
		return fmt.Errorf("update service %s: %w", svc.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoCatalogRepo) DeleteService(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	res, err := r.serviceColl.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete service %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	// Links referencing the service are dead weight once it is gone.
	_, _ = r.linkColl.DeleteMany(ctx, bson.M{"service_id": id})
	return nil
}

func (r *MongoCatalogRepo) CreateAgent(ctx context.Context, agent *models.Agent) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if agent.CreatedAt.IsZero() {
		agent.CreatedAt = time.Now()
	}
	if _, err := r.agentColl.InsertOne(ctx, agent); err != nil {
		return fmt.Errorf("insert agent: %w", err)
	}
	return nil
}

func (r *MongoCatalogRepo) GetAgent(ctx context.Context, id string) (*models.Agent, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var agent models.Agent
	err := r.agentColl.FindOne(ctx, bson.M{"id": id}).Decode(&agent)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find agent %s: %w", id, err)
	}
	return &agent, nil
}

func (r *MongoCatalogRepo) ListAgents(ctx context.Context) ([]models.Agent, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	cursor, err := r.agentColl.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	defer cursor.Close(ctx)
	var agents []models.Agent
	if err := cursor.All(ctx, &agents); err != nil {
		return nil, fmt.Errorf("decode agents: %w", err)
	}
	return agents, nil
}

func (r *MongoCatalogRepo) UpdateAgent(ctx context.Context, agent *models.Agent) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	res, err := r.agentColl.ReplaceOne(ctx, bson.M{"id": agent.ID}, agent)
	if err != nil {
		return fmt.Errorf("update agent %s: %w", agent.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoCatalogRepo) DeleteAgent(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	res, err := r.agentColl.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete agent %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	_, _ = r.linkColl.DeleteMany(ctx, bson.M{"agent_id": id})
	return nil
}

func (r *MongoCatalogRepo) LinkAgentService(ctx context.Context, agentID, serviceID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	link := models.AgentService{AgentID: agentID, ServiceID: serviceID}
	filter := bson.M{"agent_id": agentID, "service_id": serviceID}
	if _, err := r.linkColl.ReplaceOne(ctx, filter, link, options.Replace().SetUpsert(true)); err != nil {
		return fmt.Errorf("link agent %s to service %s: %w", agentID, serviceID, err)
	}
	return nil
}

func (r *MongoCatalogRepo) UnlinkAgentService(ctx context.Context, agentID, serviceID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := r.linkColl.DeleteOne(ctx, bson.M{"agent_id": agentID, "service_id": serviceID}); err != nil {
		return fmt.Errorf("unlink agent %s from service %s: %w", agentID, serviceID, err)
	}
	return nil
}

func (r *MongoCatalogRepo) AgentsForService(ctx context.Context, serviceID string) ([]models.Agent, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	cursor, err := r.linkColl.Find(ctx, bson.M{"service_id": serviceID})
	if err != nil {
		return nil, fmt.Errorf("find links for service %s: %w", serviceID, err)
	}
	defer cursor.Close(ctx)
	var links []models.AgentService
	if err := cursor.All(ctx, &links); err != nil {
		return nil, fmt.Errorf("decode links: %w", err)
	}
	if len(links) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.AgentID)
	}
	agentCursor, err := r.agentColl.Find(ctx, bson.M{"id": bson.M{"$in": ids}, "active": true})
	if err != nil {
		return nil, fmt.Errorf("find agents for service %s: %w", serviceID, err)
	}
	defer agentCursor.Close(ctx)
	var agents []models.Agent
	if err := agentCursor.All(ctx, &agents); err != nil {
		return nil, fmt.Errorf("decode agents: %w", err)
	}
	return agents, nil
}
