package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"agent-gateway/config"
	"agent-gateway/internal/gateway/cluster"
	gatewayHTTP "agent-gateway/internal/gateway/delivery/http"
	"agent-gateway/internal/gateway/kong"
	"agent-gateway/internal/gateway/syncer"
	"agent-gateway/internal/httpserver"
	"agent-gateway/pkg/log"
)

func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Agent Gateway Registry...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Gateway admin URL: %s", cfg.Gateway.AdminURL)

	// 3. Gateway reconciliation
	admin := kong.NewClient(logger, cfg.Gateway.AdminURL)

	discovery := cluster.NewClient(logger, cluster.Config{
		Enabled:         cfg.Cluster.Enabled,
		APIServer:       cfg.Cluster.APIServer,
		TokenPath:       cfg.Cluster.TokenPath,
		AgentsNamespace: cfg.Cluster.AgentsNamespace,
	})

	reconciler := syncer.New(logger, admin, discovery, syncer.Config{
		Interval:       cfg.Gateway.SyncInterval,
		AuthServiceURL: cfg.Gateway.AuthURL,
		BackendHost:    cfg.Gateway.BackendHost,
		WebHost:        cfg.Gateway.WebHost,
		AuthHost:       cfg.Gateway.AuthHost,
		RouterHost:     cfg.Gateway.RouterHost,
		WorkflowHost:   cfg.Gateway.WorkflowHost,
	})

	go reconciler.Run(ctx)

	// 4. HTTP delivery
	registryHandler := gatewayHTTP.New(logger, reconciler)

	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		ServiceName:     "agent-gateway-registry",
		RegistryHandler: registryHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 5. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
