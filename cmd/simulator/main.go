package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/Althaf00710/resq-livemap/internal/config"
	"github.com/Althaf00710/resq-livemap/internal/logging"
	"github.com/Althaf00710/resq-livemap/internal/postgres"
	"github.com/Althaf00710/resq-livemap/internal/redis"
	"github.com/Althaf00710/resq-livemap/internal/sim"
	"github.com/Althaf00710/resq-livemap/internal/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logging.Init(cfg.LogLevel, "resq-simulator.log")

	// Fleet storage is optional: without it the built-in seed runs in
	// memory only.
	if cfg.DBUrl != "" {
		postgres.Init(cfg.DBUrl)
	}
	if cfg.RedisUrl != "" {
		redis.Init(cfg.RedisUrl)
	}
	defer closeConnections()

	setupSignalHandler()

	svc := sim.GetFleetService()
	if err := svc.InitService(context.Background()); err != nil {
		log.Fatalf("Failed to initialize fleet service: %v", err)
	}

	hub := sim.NewHub()
	worker.StartAllWorkers(svc, hub)

	r := gin.Default()
	sim.SetupRoutes(r, svc, hub)

	port := cfg.Port
	if port == ":8080" {
		// Default apart from the livemap service so both run locally.
		port = ":9090"
	}

	log.Infof("resq-simulator listening on %s with %d vehicles", port, svc.Count())
	if err := r.Run(port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

func closeConnections() {
	if err := postgres.Close(); err != nil {
		log.Errorf("Error closing PostgreSQL connection: %v", err)
	}
	if err := redis.Close(); err != nil {
		log.Errorf("Error closing Redis connection: %v", err)
	}
}

func setupSignalHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Info("Shutdown signal received, closing connections...")
		closeConnections()
		os.Exit(0)
	}()
}
