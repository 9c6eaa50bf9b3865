package api

import (
	"context"
	"net/http"
	"time"

	"flight_tracker/internal/api/handler"
	"flight_tracker/internal/app/service"
	"flight_tracker/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	flightService *service.FlightService,
	pingDB func(ctx context.Context) error,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Parses a bearer token into the request context when one is presented.
	// Every route is public; tokens minted at login are not required anywhere.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	// Account routes (public, legacy paths without the /api prefix)
	authHandler := handler.NewAuthHandler(authService)
	authHandler.RegisterRoutes(r)

	r.Route("/api", func(api chi.Router) {
		healthHandler := handler.NewHealthHandler(pingDB)
		healthHandler.RegisterRoutes(api)

		flightHandler := handler.NewFlightHandler(flightService)
		api.Route("/flights", flightHandler.RegisterRoutes)
	})

	return r
}
