package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dogcafe6ix/dogcafe-api/internal/server/model"
)

// PlanRepository defines the interface for plan-related database operations.
// Plans are reference data: seeded once, then read-only.
type PlanRepository interface {
	ListPlans(ctx context.Context) ([]*model.Plan, error)
	GetPlan(ctx context.Context, id bson.ObjectID) (*model.Plan, error)
	CountPlans(ctx context.Context) (int64, error)
	CreatePlans(ctx context.Context, plans []*model.Plan) error
}

const planCollection = "plans"

type planMongoRepository struct {
	db *mongo.Database
}

// NewPlanMongoRepository creates a new MongoDB repository for plans.
func NewPlanMongoRepository(db *mongo.Database) PlanRepository {
	return &planMongoRepository{db: db}
}

func (r *planMongoRepository) ListPlans(ctx context.Context) ([]*model.Plan, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "price", Value: 1}})

	cursor, err := r.db.Collection(planCollection).Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var plans []*model.Plan
	for cursor.Next(ctx) {
		var plan model.Plan
		if err := cursor.Decode(&plan); err != nil {
			return nil, err
		}
		plans = append(plans, &plan)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return plans, nil
}

func (r *planMongoRepository) GetPlan(ctx context.Context, id bson.ObjectID) (*model.Plan, error) {
	result := r.db.Collection(planCollection).FindOne(ctx, bson.M{"_id": id})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var plan model.Plan
	if err := result.Decode(&plan); err != nil {
		return nil, err
	}

	return &plan, nil
}

func (r *planMongoRepository) CountPlans(ctx context.Context) (int64, error) {
	return r.db.Collection(planCollection).CountDocuments(ctx, bson.M{})
}

func (r *planMongoRepository) CreatePlans(ctx context.Context, plans []*model.Plan) error {
	documents := make([]any, 0, len(plans))
	for _, plan := range plans {
		documents = append(documents, plan)
	}

	_, err := r.db.Collection(planCollection).InsertMany(ctx, documents)
	return err
}
