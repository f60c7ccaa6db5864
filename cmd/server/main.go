package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"whiteboard/internal/api"
	"whiteboard/internal/config"
	"whiteboard/internal/metrics"
	"whiteboard/internal/presence"
	"whiteboard/internal/routers"
	"whiteboard/internal/session"
	"whiteboard/internal/store"
	"whiteboard/internal/utils"
)

var (
	listenAndServe = http.ListenAndServe
	exitFunc       = defaultExit
	exit           = os.Exit
)

func defaultExit(err error) {
	log.Printf("whiteboard-svc failed: %v", err)
	exit(1)
}

func main() {
	if err := run(context.Background()); err != nil {
		exitFunc(err)
	}
}

func run(_ context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	st := store.NewRoomStore()
	tracker := presence.NewTracker()
	coord := session.NewCoordinator(st, tracker, logger)
	handlers := api.NewHandlers(logger, coord, st, cfg.MaxMessageBytes)

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		metrics.Middleware,
	)
	r.Mount("/", routers.New(cfg, handlers))

	logger.Info("whiteboard-svc listening", zap.String("addr", cfg.Addr()))
	return listenAndServe(cfg.Addr(), r)
}
