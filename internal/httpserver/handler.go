package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	gatewayHTTP "agent-gateway/internal/gateway/delivery/http"
	"agent-gateway/internal/model"
	routingHTTP "agent-gateway/internal/routing/delivery/http"
)

func (srv *HTTPServer) mapHandlers() error {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()
	srv.registerDomainRoutes()
	return nil
}

func (srv *HTTPServer) registerMiddlewares() {
	srv.gin.Use(gin.Recovery())

	ctx := context.Background()
	if srv.middleware != nil {
		srv.gin.Use(srv.middleware.CORS())
		if srv.environment == string(model.EnvironmentProduction) {
			srv.l.Infof(ctx, "CORS mode: production")
		} else {
			srv.l.Infof(ctx, "CORS mode: %s", srv.environment)
		}
	}
}

func (srv *HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

// registerDomainRoutes registers whichever domains this binary wired.
// The registry owns GET /health when present; the router shell exposes
// the same probe itself.
func (srv *HTTPServer) registerDomainRoutes() {
	ctx := context.Background()

	if srv.routerHandler != nil && srv.middleware != nil {
		routingHTTP.RegisterRoutes(srv.gin, srv.routerHandler, *srv.middleware)
		srv.l.Infof(ctx, "Router routes registered at POST /router")
	}

	if srv.registryHandler != nil {
		gatewayHTTP.RegisterRoutes(srv.gin, srv.registryHandler)
		srv.l.Infof(ctx, "Registry routes registered at GET /status")
	} else {
		srv.gin.GET("/health", srv.healthCheck)
	}
}
