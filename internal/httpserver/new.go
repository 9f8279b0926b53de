package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	gatewayHTTP "agent-gateway/internal/gateway/delivery/http"
	"agent-gateway/internal/middleware"
	routingHTTP "agent-gateway/internal/routing/delivery/http"
	"agent-gateway/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server. The same
// shell serves both binaries; each wires only its own handler.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string
	serviceName string

	// Router domain
	routerHandler routingHTTP.Handler
	middleware    *middleware.Middleware

	// Registry domain
	registryHandler gatewayHTTP.Handler
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string
	ServiceName string

	// Router domain
	RouterHandler routingHTTP.Handler
	Middleware    *middleware.Middleware

	// Registry domain
	RegistryHandler gatewayHTTP.Handler
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		serviceName:     cfg.ServiceName,
		routerHandler:   cfg.RouterHandler,
		middleware:      cfg.Middleware,
		registryHandler: cfg.RegistryHandler,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv *HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.routerHandler == nil && srv.registryHandler == nil {
		return errors.New("at least one domain handler is required")
	}
	return nil
}
