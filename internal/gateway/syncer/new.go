package syncer

import (
	"context"
	"sync/atomic"
	"time"

	"agent-gateway/internal/gateway/cluster"
	"agent-gateway/internal/gateway/kong"
	pkgLog "agent-gateway/pkg/log"
)

// GatewayAdmin is the control-plane surface the syncer drives.
type GatewayAdmin interface {
	Healthy(ctx context.Context) bool
	GetService(ctx context.Context, name string) (*kong.Service, bool, error)
	CreateService(ctx context.Context, svc kong.Service) error
	UpdateService(ctx context.Context, name string, svc kong.Service) error
	DeleteService(ctx context.Context, name string) error
	ListServices(ctx context.Context) ([]kong.Service, error)
	GetRoute(ctx context.Context, name string) (*kong.Route, bool, error)
	CreateRoute(ctx context.Context, serviceName string, route kong.Route) error
	UpdateRoute(ctx context.Context, name string, route kong.Route) error
	DeleteRoute(ctx context.Context, idOrName string) error
	ListRoutesForService(ctx context.Context, serviceName string) ([]kong.Route, error)
	CreatePlugin(ctx context.Context, plugin kong.Plugin) error
}

// Discoverer lists the backend services to expose.
type Discoverer interface {
	ListAgentServices(ctx context.Context) ([]cluster.ServiceInfo, error)
}

// Config configures the reconciliation loop.
type Config struct {
	Interval time.Duration

	// Upstream hosts for the static proxies.
	AuthServiceURL string // called by the auth-check plugin
	BackendHost    string
	WebHost        string
	AuthHost       string
	RouterHost     string
	WorkflowHost   string
}

// Syncer reconciles discovered services into the gateway on a fixed
// interval. One loop, no overlapping cycles.
type Syncer struct {
	l         pkgLog.Logger
	admin     GatewayAdmin
	discovery Discoverer
	cfg       Config

	// staticDone flips once the static proxies are registered; they
	// are retried each cycle until that succeeds.
	staticDone bool

	// current is the service-name snapshot read by the status
	// endpoints; replaced wholesale at the end of each cycle.
	current  atomic.Pointer[[]string]
	lastSync atomic.Pointer[time.Time]
}

// New creates a new gateway syncer.
func New(l pkgLog.Logger, admin GatewayAdmin, discovery Discoverer, cfg Config) *Syncer {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	s := &Syncer{
		l:         l,
		admin:     admin,
		discovery: discovery,
		cfg:       cfg,
	}
	empty := []string{}
	s.current.Store(&empty)
	return s
}
