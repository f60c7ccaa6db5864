package routers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"whiteboard/internal/api"
	"whiteboard/internal/config"
	"whiteboard/internal/metrics"
)

func New(cfg *config.Config, h *api.Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))

	r.Get("/api/v1/healthz", h.Health)
	r.Get("/api/v1/rooms/{roomKey}", h.RoomStatus)

	r.Get("/ws/board", h.BoardWS)

	r.Handle("/metrics", metrics.Handler())

	return r
}
