package usecase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dogcafe6ix/dogcafe-api/internal/server/model"
	"github.com/dogcafe6ix/dogcafe-api/internal/server/testutil"
	"github.com/dogcafe6ix/dogcafe-api/internal/server/usecase"
)

func TestPlanUsecase_SeedDefaultPlans(t *testing.T) {
	logger := zerolog.Nop()
	planRepo := testutil.NewMemoryPlanRepository()
	planUsecase := usecase.NewPlanUsecase(planRepo, &logger)
	ctx := context.Background()

	require.NoError(t, planUsecase.SeedDefaultPlans(ctx))

	plans, err := planUsecase.ListPlans(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 3)

	assert.Equal(t, "Plan A", plans[0].Name)
	assert.Equal(t, float64(50), plans[0].Price)
	assert.Equal(t, "Plan B", plans[1].Name)
	assert.Equal(t, float64(70), plans[1].Price)
	assert.Equal(t, "Plan C", plans[2].Name)
	assert.Equal(t, float64(100), plans[2].Price)
}

func TestPlanUsecase_SeedDefaultPlans_SkipsWhenPopulated(t *testing.T) {
	logger := zerolog.Nop()
	planRepo := testutil.NewMemoryPlanRepository()
	planUsecase := usecase.NewPlanUsecase(planRepo, &logger)
	ctx := context.Background()

	require.NoError(t, planRepo.CreatePlans(ctx, []*model.Plan{
		{Name: "Puppy Hour", Price: 25, Duration: 1, MaxDogs: 1},
	}))

	require.NoError(t, planUsecase.SeedDefaultPlans(ctx))

	plans, err := planUsecase.ListPlans(ctx)
	require.NoError(t, err)
	assert.Len(t, plans, 1)
	assert.Equal(t, "Puppy Hour", plans[0].Name)
}

func TestPlanUsecase_GetPlan_NotFound(t *testing.T) {
	logger := zerolog.Nop()
	planUsecase := usecase.NewPlanUsecase(testutil.NewMemoryPlanRepository(), &logger)

	_, err := planUsecase.GetPlan(context.Background(), bson.NewObjectID())
	assert.ErrorIs(t, err, usecase.ErrPlanNotFound)
}
