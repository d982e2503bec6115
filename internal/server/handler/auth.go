package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/dogcafe6ix/dogcafe-api/internal/server/usecase"
	"github.com/dogcafe6ix/dogcafe-api/shared/payload"
)

// AuthHandler serves the email code sign-in endpoints.
type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	logger      *zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(authUsecase usecase.AuthUsecase, logger *zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		logger:      logger,
	}
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req payload.SignInRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.authUsecase.SignIn(r.Context(), req.Email); err != nil {
		h.logger.Error().Err(err).Msg("failed to sign in")
		respondError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	// The same acknowledgement is returned whether or not the user was
	// just created, so the endpoint cannot be used to probe for accounts.
	respondJSON(w, http.StatusOK, payload.SignInResponse{Message: "Verification code sent"})
}

func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req payload.VerifyRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	token, user, err := h.authUsecase.Verify(r.Context(), req.Email, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCode):
			respondError(w, http.StatusBadRequest, "invalid verification code")
		case errors.Is(err, usecase.ErrCodeExpired):
			respondError(w, http.StatusBadRequest, "verification code expired")
		default:
			h.logger.Error().Err(err).Msg("failed to verify code")
			respondError(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	respondJSON(w, http.StatusOK, payload.VerifyResponse{
		Token: token,
		User:  payload.NewUserResponse(user),
	})
}
