package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/dogcafe6ix/dogcafe-api/internal/server/repository"
	"github.com/dogcafe6ix/dogcafe-api/internal/server/usecase"
	"github.com/dogcafe6ix/dogcafe-api/shared/payload"
)

// UserHandler serves the profile endpoints.
type UserHandler struct {
	userUsecase usecase.UserUsecase
	logger      *zerolog.Logger
}

// NewUserHandler creates a new UserHandler instance.
func NewUserHandler(userUsecase usecase.UserUsecase, logger *zerolog.Logger) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		logger:      logger,
	}
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	respondJSON(w, http.StatusOK, payload.NewUserResponse(user))
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req payload.UpdateProfileRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.userUsecase.UpdateProfile(r.Context(), user.ID, repository.UpdateUserParams{
		Username:       req.Username,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "user not found")
			return
		}

		h.logger.Error().Err(err).Msg("failed to update profile")
		respondError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	respondJSON(w, http.StatusOK, payload.NewUserResponse(updated))
}
