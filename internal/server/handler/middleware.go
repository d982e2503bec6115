package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dogcafe6ix/dogcafe-api/internal/server/model"
	"github.com/dogcafe6ix/dogcafe-api/internal/server/usecase"
)

type contextKey struct{}

var userContextKey = contextKey{}

// Authenticator guards protected routes. It resolves the bearer token to a
// user and binds the user to the request context for the handler's duration.
type Authenticator struct {
	authUsecase usecase.AuthUsecase
	logger      *zerolog.Logger
}

// NewAuthenticator creates a new Authenticator instance.
func NewAuthenticator(authUsecase usecase.AuthUsecase, logger *zerolog.Logger) *Authenticator {
	return &Authenticator{
		authUsecase: authUsecase,
		logger:      logger,
	}
}

// Middleware rejects requests without a valid bearer token.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			respondError(w, http.StatusUnauthorized, "invalid authorization header format")
			return
		}

		user, err := a.authUsecase.Authenticate(r.Context(), parts[1])
		if err != nil {
			respondError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserFromContext returns the authenticated user bound by the Authenticator,
// or nil on unguarded routes.
func UserFromContext(ctx context.Context) *model.User {
	user, ok := ctx.Value(userContextKey).(*model.User)
	if !ok {
		return nil
	}

	return user
}

// CORSMiddleware allows the browser-hosted client to call the API.
func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
