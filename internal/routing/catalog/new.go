package catalog

import (
	"net/http"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"agent-gateway/internal/routing"
	pkgLog "agent-gateway/pkg/log"
)

// Client fetches agent descriptors from the registry service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	l          pkgLog.Logger

	// cache holds per-token catalog snapshots; nil when TTL is zero,
	// so routing stays fully per-call fresh by default.
	cache *expirable.LRU[string, []routing.AgentDescriptor]
}

// Config configures the catalog client.
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration // 0 disables caching
}

// New creates a new catalog client.
func New(l pkgLog.Logger, cfg Config) *Client {
	c := &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		l:          l,
	}
	if cfg.CacheTTL > 0 {
		c.cache = expirable.NewLRU[string, []routing.AgentDescriptor](cacheSize, nil, cfg.CacheTTL)
	}
	return c
}
