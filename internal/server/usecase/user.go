package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/dogcafe6ix/dogcafe-api/internal/server/model"
	"github.com/dogcafe6ix/dogcafe-api/internal/server/repository"
)

// UserUsecase defines the business logic for user profile operations.
type UserUsecase interface {
	GetUser(ctx context.Context, id bson.ObjectID) (*model.User, error)

	// UpdateProfile applies only the provided fields to the user.
	UpdateProfile(ctx context.Context, id bson.ObjectID, params repository.UpdateUserParams) (*model.User, error)
}

var ErrUserNotFound = errors.New("user not found")

type userUsecase struct {
	userRepo repository.UserRepository
}

// NewUserUsecase creates a new instance of UserUsecase.
func NewUserUsecase(userRepo repository.UserRepository) UserUsecase {
	return &userUsecase{userRepo: userRepo}
}

func (u *userUsecase) GetUser(ctx context.Context, id bson.ObjectID) (*model.User, error) {
	user, err := u.userRepo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

func (u *userUsecase) UpdateProfile(
	ctx context.Context,
	id bson.ObjectID,
	params repository.UpdateUserParams,
) (*model.User, error) {
	user, err := u.userRepo.UpdateUser(ctx, id, params)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}
