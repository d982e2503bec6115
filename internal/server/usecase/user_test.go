package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dogcafe6ix/dogcafe-api/internal/server/model"
	"github.com/dogcafe6ix/dogcafe-api/internal/server/repository"
	"github.com/dogcafe6ix/dogcafe-api/internal/server/testutil"
	"github.com/dogcafe6ix/dogcafe-api/internal/server/usecase"
)

func TestUserUsecase_UpdateProfile_PartialUpdate(t *testing.T) {
	userRepo := testutil.NewMemoryUserRepository()
	userUsecase := usecase.NewUserUsecase(userRepo)
	ctx := context.Background()

	user, err := userRepo.CreateUser(ctx, &model.User{
		Email:          "bella@example.com",
		Username:       "bella",
		ProfilePicture: "https://example.com/bella.jpg",
	})
	require.NoError(t, err)

	username := "bella_the_golden"
	updated, err := userUsecase.UpdateProfile(ctx, user.ID, repository.UpdateUserParams{
		Username: &username,
	})
	require.NoError(t, err)

	assert.Equal(t, "bella_the_golden", updated.Username)
	// Untouched fields survive a partial update.
	assert.Equal(t, "https://example.com/bella.jpg", updated.ProfilePicture)
}

func TestUserUsecase_UpdateProfile_NoFields(t *testing.T) {
	userRepo := testutil.NewMemoryUserRepository()
	userUsecase := usecase.NewUserUsecase(userRepo)
	ctx := context.Background()

	user, err := userRepo.CreateUser(ctx, &model.User{Email: "bella@example.com", Username: "bella"})
	require.NoError(t, err)

	updated, err := userUsecase.UpdateProfile(ctx, user.ID, repository.UpdateUserParams{})
	require.NoError(t, err)
	assert.Equal(t, "bella", updated.Username)
}

func TestUserUsecase_UpdateProfile_UnknownUser(t *testing.T) {
	userUsecase := usecase.NewUserUsecase(testutil.NewMemoryUserRepository())

	username := "ghost"
	_, err := userUsecase.UpdateProfile(context.Background(), bson.NewObjectID(), repository.UpdateUserParams{
		Username: &username,
	})
	assert.ErrorIs(t, err, usecase.ErrUserNotFound)
}

func TestUserUsecase_GetUser_Unknown(t *testing.T) {
	userUsecase := usecase.NewUserUsecase(testutil.NewMemoryUserRepository())

	_, err := userUsecase.GetUser(context.Background(), bson.NewObjectID())
	assert.ErrorIs(t, err, usecase.ErrUserNotFound)
}
