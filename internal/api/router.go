package api

import (
	"net/http"

	"github.com/harlowdev/imposter-arena/internal/api/handlers"
	"github.com/harlowdev/imposter-arena/internal/api/middleware"
	"github.com/harlowdev/imposter-arena/internal/room"
	"github.com/harlowdev/imposter-arena/internal/service"
	"github.com/harlowdev/imposter-arena/internal/store"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the REST surface that fronts the realtime core: health
// check, the reference auth broker's register/login/me/logout, the
// public room-listing mirror of get_rooms, and the websocket upgrade
// endpoint itself.
func NewRouter(authService *service.AuthService, hub *room.Hub, st *store.Store) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	authHandler := handlers.NewAuthHandler(authService)
	roomsHandler := handlers.NewRoomsHandler(st)
	wsHandler := handlers.NewWebSocketHandler(hub, authService)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(authService))
				r.Get("/me", authHandler.Me)
				r.Post("/logout", authHandler.Logout)
			})
		})

		r.Get("/rooms", roomsHandler.List)

		r.Get("/ws", wsHandler.Handle)
	})

	return r
}
