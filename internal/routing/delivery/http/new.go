package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"agent-gateway/internal/routing"
	"agent-gateway/internal/routing/orchestrator"
	pkgLog "agent-gateway/pkg/log"
)

// Handler is the interface for the routing HTTP delivery layer.
type Handler interface {
	ProcessRequest(c *gin.Context)
	Health(c *gin.Context)
	Metrics(c *gin.Context)
}

// Processor runs the routing pipeline for one request.
type Processor interface {
	Process(ctx context.Context, req routing.UserRequest, files []routing.File, token string) <-chan routing.Event
	HealthCheck(ctx context.Context) orchestrator.HealthStatus
}

type handler struct {
	l           pkgLog.Logger
	proc        Processor
	maxFileSize int64
	metrics     *metrics
}

// New creates a new HTTP handler for the routing domain.
func New(l pkgLog.Logger, proc Processor, maxFileSize int64) *handler {
	return &handler{
		l:           l,
		proc:        proc,
		maxFileSize: maxFileSize,
		metrics:     &metrics{},
	}
}
