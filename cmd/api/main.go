package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"archibridge/infrastructure/config"
	"archibridge/infrastructure/di"
	"archibridge/interfaces/http/rest"
)

func main() {
	// Cancelled on interrupt so the server can drain
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize dependency container
	container, cleanup, err := di.InitializeContainer(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer cleanup()

	router := rest.NewRouter(
		container.CommandBus,
		container.QueryBus,
		cfg,
		container.Metrics,
		container.Logger,
	)
	handler, err := router.Setup()
	if err != nil {
		container.Logger.Fatal("Failed to set up routes", zap.Error(err))
	}

	if err := rest.Serve(ctx, cfg, handler, container.Logger); err != nil {
		container.Logger.Error("Server stopped with error", zap.Error(err))
		cleanup()
		log.Fatal(err)
	}
	container.Logger.Info("Server exited")
}
