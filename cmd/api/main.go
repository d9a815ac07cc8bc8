package main

import (
	"context"
	"log"

	"cvsec-backend/internal/config"
	"cvsec-backend/internal/shared/server"
	"cvsec-backend/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	telemetry.Init(cfg.Debug)
	defer telemetry.Sync()

	r, err := server.NewRouter(context.Background(), cfg)
	if err != nil {
		log.Fatalf("startup error: %v", err)
	}

	addr := server.Addr(cfg.Port)
	telemetry.Info("server.starting", map[string]any{
		"addr":              addr,
		"env":               cfg.Env,
		"staging_backend":   cfg.StagingBackend,
		"concurrency_limit": cfg.ConcurrentRequestsLimit,
	})

	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
