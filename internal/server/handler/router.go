package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter assembles the API route tree.
func NewRouter(
	authenticator *Authenticator,
	authHandler *AuthHandler,
	userHandler *UserHandler,
	planHandler *PlanHandler,
	bookingHandler *BookingHandler,
	postHandler *PostHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(CORSMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signin", authHandler.SignIn)
			r.Post("/verify", authHandler.Verify)
		})

		r.Get("/plans", planHandler.List)
		r.Get("/plans/{id}", planHandler.Get)
		r.Get("/posts", postHandler.List)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authenticator.Middleware)

			r.Get("/users/me", userHandler.Me)
			r.Put("/users/profile", userHandler.UpdateProfile)

			r.Post("/bookings", bookingHandler.Create)
			r.Get("/bookings/user", bookingHandler.ListMine)
			r.Put("/bookings/{id}/cancel", bookingHandler.Cancel)

			r.Post("/posts", postHandler.Create)
			r.Post("/posts/{id}/like", postHandler.ToggleLike)
			r.Post("/posts/{id}/comments", postHandler.AddComment)
		})
	})

	return r
}
