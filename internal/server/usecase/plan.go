package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/dogcafe6ix/dogcafe-api/internal/server/model"
	"github.com/dogcafe6ix/dogcafe-api/internal/server/repository"
)

// PlanUsecase defines the business logic for visit plan operations.
type PlanUsecase interface {
	// ListPlans returns all plans ordered by ascending price.
	ListPlans(ctx context.Context) ([]*model.Plan, error)
	GetPlan(ctx context.Context, id bson.ObjectID) (*model.Plan, error)

	// SeedDefaultPlans inserts the default plans when the collection is
	// empty. It is a no-op otherwise.
	SeedDefaultPlans(ctx context.Context) error
}

var ErrPlanNotFound = errors.New("plan not found")

type planUsecase struct {
	planRepo repository.PlanRepository
	logger   *zerolog.Logger
}

// NewPlanUsecase creates a new instance of PlanUsecase.
func NewPlanUsecase(planRepo repository.PlanRepository, logger *zerolog.Logger) PlanUsecase {
	return &planUsecase{
		planRepo: planRepo,
		logger:   logger,
	}
}

func (u *planUsecase) ListPlans(ctx context.Context) ([]*model.Plan, error) {
	return u.planRepo.ListPlans(ctx)
}

func (u *planUsecase) GetPlan(ctx context.Context, id bson.ObjectID) (*model.Plan, error) {
	plan, err := u.planRepo.GetPlan(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	return plan, nil
}

func (u *planUsecase) SeedDefaultPlans(ctx context.Context) error {
	count, err := u.planRepo.CountPlans(ctx)
	if err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	if err := u.planRepo.CreatePlans(ctx, defaultPlans()); err != nil {
		return err
	}

	u.logger.Info().Msg("default plans created")

	return nil
}

func defaultPlans() []*model.Plan {
	return []*model.Plan{
		{
			Name:        "Plan A",
			Price:       50,
			Description: "1-hour visit with any dog of your choice, includes a beverage",
			Duration:    1,
			MaxDogs:     1,
			Image:       "https://images.unsplash.com/photo-1552053831-71594a27632d?ixlib=rb-1.2.1&auto=format&fit=crop&w=500&q=80",
		},
		{
			Name:        "Plan B",
			Price:       70,
			Description: "2-hour visit with any 2 dogs, includes a beverage and snack",
			Duration:    2,
			MaxDogs:     2,
			Image:       "https://images.unsplash.com/photo-1554692918-08fa0fdc9db3?ixlib=rb-1.2.1&auto=format&fit=crop&w=500&q=80",
		},
		{
			Name:        "Plan C",
			Price:       100,
			Description: "3-hour visit with any 3 dogs, includes full meal and priority booking",
			Duration:    3,
			MaxDogs:     3,
			Image:       "https://images.unsplash.com/photo-1605568427561-40dd23c2acea?ixlib=rb-1.2.1&auto=format&fit=crop&w=500&q=80",
		},
	}
}
