package http

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	pkgLog "agent-gateway/pkg/log"
)

// Handler is the interface for the registry HTTP delivery layer.
type Handler interface {
	Health(c *gin.Context)
	Status(c *gin.Context)
	Services(c *gin.Context)
	Sync(c *gin.Context)
}

// Registrar is the syncer surface the delivery layer reads and pokes.
type Registrar interface {
	Healthy(ctx context.Context) bool
	Services() []string
	LastSync() (time.Time, bool)
	SyncOnce(ctx context.Context) (int, error)
}

type handler struct {
	l         pkgLog.Logger
	registrar Registrar
}

// New creates a new HTTP handler for the gateway registry.
func New(l pkgLog.Logger, registrar Registrar) *handler {
	return &handler{
		l:         l,
		registrar: registrar,
	}
}
