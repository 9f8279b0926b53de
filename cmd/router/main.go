package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"agent-gateway/config"
	_ "agent-gateway/docs" // Swagger docs
	"agent-gateway/internal/httpserver"
	"agent-gateway/internal/middleware"
	"agent-gateway/internal/routing/agentclient"
	"agent-gateway/internal/routing/catalog"
	routingHTTP "agent-gateway/internal/routing/delivery/http"
	"agent-gateway/internal/routing/engine"
	"agent-gateway/internal/routing/orchestrator"
	"agent-gateway/pkg/embeddings"
	"agent-gateway/pkg/gemini"
	"agent-gateway/pkg/log"
)

// @title       Agent Gateway Router API
// @description Routes user requests to the best-matching agent and streams progress events.
// @version     1
// @host        localhost:8080
// @schemes     http
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

	logger.Info(ctx, "Starting Agent Gateway Router...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Registry URL: %s", cfg.Registry.URL)

	// 3. Routing pipeline
	embedder, err := embeddings.New(embeddings.Config{
		Endpoint: cfg.Embeddings.URL,
		APIKey:   cfg.Embeddings.APIKey,
		Model:    cfg.Embeddings.Model,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize embeddings client: ", err)
		return
	}

	llm := gemini.NewClient(cfg.Gemini.APIKey)
	if cfg.Gemini.Model != "" {
		llm = llm.WithModel(cfg.Gemini.Model)
	}
	if cfg.Gemini.APIURL != "" {
		llm = llm.WithBaseURL(cfg.Gemini.APIURL)
	}

	catalogClient := catalog.New(logger, catalog.Config{
		BaseURL:  cfg.Registry.URL,
		Timeout:  cfg.Router.RequestTimeout,
		CacheTTL: cfg.Registry.CacheTTL,
	})

	selector := engine.New(llm, logger)

	invoker := agentclient.New(logger, agentclient.Config{
		Timeout: cfg.Router.RequestTimeout,
	})

	orch := orchestrator.New(logger, catalogClient, embedder, selector, invoker)

	// 4. HTTP delivery
	mw := middleware.New(logger, cfg)
	routerHandler := routingHTTP.New(logger, orch, cfg.Router.MaxFileSize)

	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:        logger,
		Port:          cfg.HTTPServer.Port,
		Mode:          cfg.HTTPServer.Mode,
		Environment:   cfg.Environment.Name,
		ServiceName:   "agent-gateway-router",
		RouterHandler: routerHandler,
		Middleware:    &mw,
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
