package agentclient

import (
	"context"
	"net/http"
	"time"

	"agent-gateway/internal/routing"
	pkgLog "agent-gateway/pkg/log"
)

// Invoker sends routed requests to agents
type Invoker interface {
	SendRequest(ctx context.Context, agentURL string, req routing.UserRequest, files []routing.File, token string) (string, error)
	HealthCheck(ctx context.Context, agentURL string) bool
}

// Client talks JSON-RPC 2.0 to agent endpoints
type Client struct {
	httpClient *http.Client
	l          pkgLog.Logger

	acceptedOutputModes []string
	historyLength       *int
	blocking            bool
}

// Config configures the agent client.
type Config struct {
	Timeout time.Duration

	// Optional configuration forwarded inside the JSON-RPC envelope.
	// Nil/empty optionals are omitted from the wire payload.
	AcceptedOutputModes []string
	HistoryLength       *int
}

// Ensure Client implements Invoker interface
var _ Invoker = (*Client)(nil)

// New creates a new agent client.
func New(l pkgLog.Logger, cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient:          &http.Client{Timeout: timeout},
		l:                   l,
		acceptedOutputModes: cfg.AcceptedOutputModes,
		historyLength:       cfg.HistoryLength,
		blocking:            true,
	}
}
