package payload

import (
	"time"

	"github.com/dogcafe6ix/dogcafe-api/internal/server/model"
)

type UpdateProfileRequest struct {
	Username       *string `json:"username,omitempty"       validate:"omitempty,min=1"`
	ProfilePicture *string `json:"profilePicture,omitempty" validate:"omitempty,url"`
}

type UserResponse struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Username       string    `json:"username,omitempty"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// NewUserResponse maps a user record to its JSON shape.
func NewUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:             user.ID.Hex(),
		Email:          user.Email,
		Username:       user.Username,
		ProfilePicture: user.ProfilePicture,
		CreatedAt:      user.CreatedAt,
	}
}
