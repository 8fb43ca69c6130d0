package scheduleRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"slotify/database"
	"slotify/models"
)

// ErrNotFound is returned when a schedule entity does not exist.
var ErrNotFound = errors.New("schedule: not found")

// MongoScheduleRepo is the MongoDB implementation of ScheduleRepository.
type MongoScheduleRepo struct {
	ruleColl     *mongo.Collection
	overrideColl *mongo.Collection
	holidayColl  *mongo.Collection
}

// NewMongoScheduleRepo builds a repo bound to the application database.
func NewMongoScheduleRepo() *MongoScheduleRepo {
	db := database.DB()
	return &MongoScheduleRepo{
		ruleColl:     db.Collection("schedule_rules"),
		overrideColl: db.Collection("schedule_overrides"),
		holidayColl:  db.Collection("holidays"),
	}
}

func (r *MongoScheduleRepo) CreateRule(ctx context.Context, rule *models.ScheduleRule) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if rule.ID == "" {
		rule.ID = uuid.New().String()
	}
	if _, err := r.ruleColl.InsertOne(ctx, rule); err != nil {
		return fmt.Errorf("insert schedule rule: %w", err)
	}
	return nil
}

func (r *MongoScheduleRepo) DeleteRule(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	res, err := r.ruleColl.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete schedule rule %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoScheduleRepo) RulesForAgent(ctx context.Context, agentID string) ([]models.ScheduleRule, error) {
	return r.findRules(ctx, bson.M{"agent_id": agentID})
}

func (r *MongoScheduleRepo) RulesForAgentWeekday(ctx context.Context, agentID string, weekday int) ([]models.ScheduleRule, error) {
	return r.findRules(ctx, bson.M{"agent_id": agentID, "weekday": weekday})
}

func (r *MongoScheduleRepo) findRules(ctx context.Context, filter bson.M) ([]models.ScheduleRule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	cursor, err := r.ruleColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find schedule rules: %w", err)
	}
	defer cursor.Close(ctx)
	var rules []models.ScheduleRule
	if err := cursor.All(ctx, &rules); err != nil {
		return nil, fmt.Errorf("decode schedule rules: %w", err)
	}
	return rules, nil
}

func (r *MongoScheduleRepo) UpsertOverride(ctx context.Context, ov *models.ScheduleOverride) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if ov.ID == "" {
		ov.ID = uuid.New().String()
	}
	filter := bson.M{"agent_id": ov.AgentID, "date": ov.Date}
	if _, err := r.overrideColl.ReplaceOne(ctx, filter, ov, options.Replace().SetUpsert(true)); err != nil {
		return fmt.Errorf("upsert override for agent %s on %s: %w", ov.AgentID, ov.Date, err)
	}
	return nil
}

func (r *MongoScheduleRepo) DeleteOverride(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	res, err := r.overrideColl.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete override %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoScheduleRepo) OverrideFor(ctx context.Context, agentID, date string) (*models.ScheduleOverride, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var ov models.ScheduleOverride
	err := r.overrideColl.FindOne(ctx, bson.M{"agent_id": agentID, "date": date}).Decode(&ov)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find override for agent %s on %s: %w", agentID, date, err)
	}
	return &ov, nil
}

func (r *MongoScheduleRepo) CreateHoliday(ctx context.Context, h *models.Holiday) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	if _, err := r.holidayColl.InsertOne(ctx, h); err != nil {
		return fmt.Errorf("insert holiday: %w", err)
	}
	return nil
}

func (r *MongoScheduleRepo) DeleteHoliday(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	res, err := r.holidayColl.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete holiday %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoScheduleRepo) ListHolidays(ctx context.Context) ([]models.Holiday, error) {
	return r.findHolidays(ctx, bson.M{})
}

func (r *MongoScheduleRepo) HolidaysCovering(ctx context.Context, date string) ([]models.Holiday, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"end_date": bson.M{"$in": bson.A{nil, ""}}, "date": date},
		bson.M{"date": bson.M{"$lte": date}, "end_date": bson.M{"$gte": date}},
	}}
	return r.findHolidays(ctx, filter)
}

func (r *MongoScheduleRepo) findHolidays(ctx context.Context, filter bson.M) ([]models.Holiday, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	cursor, err := r.holidayColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find holidays: %w", err)
	}
	defer cursor.Close(ctx)
	var holidays []models.Holiday
	if err := cursor.All(ctx, &holidays); err != nil {
		return nil, fmt.Errorf("decode holidays: %w", err)
	}
	return holidays, nil
}
