package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/Althaf00710/resq-livemap/internal/api"
	"github.com/Althaf00710/resq-livemap/internal/config"
	"github.com/Althaf00710/resq-livemap/internal/logging"
	"github.com/Althaf00710/resq-livemap/internal/mapsurface"
	"github.com/Althaf00710/resq-livemap/internal/upstream"
	"github.com/Althaf00710/resq-livemap/internal/view"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logging.Init(cfg.LogLevel, cfg.LogFilePath)

	client := upstream.NewClient(cfg.UpstreamHTTPUrl, cfg.UpstreamWSUrl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Background session with a disabled surface: keeps the vehicle list
	// endpoint serving even when no browser map is connected.
	listSession := view.NewSession(client, mapsurface.NewDisabled())
	listSession.Start(ctx)

	setupSignalHandler(cancel, listSession)

	r := gin.Default()
	api.SetupRouter(r, api.Deps{
		Upstream:  client,
		ListStore: listSession.Store(),
	})

	log.Infof("resq-livemap listening on %s (upstream %s)", cfg.Port, cfg.UpstreamHTTPUrl)
	if err := r.Run(cfg.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

func setupSignalHandler(cancel context.CancelFunc, session *view.Session) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Info("Shutdown signal received, closing sessions...")
		session.Close()
		cancel()
		os.Exit(0)
	}()
}
